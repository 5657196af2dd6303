package chain

import "unicode/utf8"

// overlap is the number of characters two chained words share.
const overlap = 2

// Graph is the overlap graph of a word list.
//
// Successor lists are stored back to back in a single slice (offsets[u] up to
// offsets[u+1] index the successors of u), which keeps the whole adjacency in
// two allocations regardless of the node count.
//
// A Graph is immutable after Build and safe for concurrent readers.
type Graph struct {
	items   []string
	offsets []int
	edges   []int
}

// Build constructs the overlap graph of items. Node i is items[i]; there is
// an edge i -> j for every j != i whose prefix equals the suffix of i.
//
// Successors of a node appear in ascending input order. Parallel edges are not
// collapsed because distinct nodes sharing a prefix are distinct successors.
// Build keeps a reference to items; callers must not modify it afterwards.
func Build(items []string) *Graph {
	n := len(items)

	buckets := make(map[string][]int)
	for i, s := range items {
		key := prefix(s)
		buckets[key] = append(buckets[key], i)
	}

	offsets := make([]int, n+1)
	edges := make([]int, 0, n)
	for i, s := range items {
		for _, j := range buckets[suffix(s)] {
			if j != i {
				edges = append(edges, j)
			}
		}
		offsets[i+1] = len(edges)
	}

	return &Graph{items: items, offsets: offsets, edges: edges}
}

// NodeCount returns the number of nodes, which equals the number of items.
func (g *Graph) NodeCount() int { return len(g.items) }

// EdgeCount returns the total number of overlap edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Items returns the words the graph was built from, indexed by node id.
// The returned slice must not be modified.
func (g *Graph) Items() []string { return g.items }

// Item returns the word for node u.
func (g *Graph) Item(u int) string { return g.items[u] }

// Neighbors returns the successors of u in adjacency order.
// The returned slice is shared with the graph and must not be modified;
// its capacity is clipped so appending to it never writes into the graph.
func (g *Graph) Neighbors(u int) []int {
	lo, hi := g.offsets[u], g.offsets[u+1]
	return g.edges[lo:hi:hi]
}

// OutDegree returns the number of successors of u.
func (g *Graph) OutDegree(u int) int {
	return g.offsets[u+1] - g.offsets[u]
}

// HasEdge reports whether u -> v is an edge of the graph.
func (g *Graph) HasEdge(u, v int) bool {
	for _, w := range g.Neighbors(u) {
		if w == v {
			return true
		}
	}
	return false
}

// prefix returns the first two characters of s, or all of s if it is shorter.
func prefix(s string) string {
	i := 0
	for n := 0; n < overlap && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

// suffix returns the last two characters of s, or all of s if it is shorter.
func suffix(s string) string {
	i := len(s)
	for n := 0; n < overlap && i > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return s[i:]
}

// tail returns s without its first two characters.
func tail(s string) string {
	return s[len(prefix(s)):]
}
