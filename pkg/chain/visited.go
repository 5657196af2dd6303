package chain

import "github.com/bits-and-blooms/bitset"

// VisitedSet is a fixed-size membership set over node ids, one bit per node.
// It is sized once for the graph it tracks and never grows.
//
// A VisitedSet belongs to exactly one search and is not safe for concurrent use.
type VisitedSet struct {
	bits *bitset.BitSet
}

// NewVisitedSet returns an empty set able to hold ids in [0, n).
func NewVisitedSet(n int) *VisitedSet {
	return &VisitedSet{bits: bitset.New(uint(n))}
}

// Add marks id as visited.
func (v *VisitedSet) Add(id int) { v.bits.Set(uint(id)) }

// Has reports whether id is marked.
func (v *VisitedSet) Has(id int) bool { return v.bits.Test(uint(id)) }

// Remove clears the mark on id.
func (v *VisitedSet) Remove(id int) { v.bits.Clear(uint(id)) }

// Count returns the number of marked ids.
func (v *VisitedSet) Count() int { return int(v.bits.Count()) }
