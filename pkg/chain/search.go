package chain

import "slices"

// SearchStats counts the work done by a search.
type SearchStats struct {
	Visits int64 // nodes entered, counting re-entries from other branches
	Leaves int64 // terminal nodes reached
}

// Add returns the element-wise sum of s and o.
func (s SearchStats) Add(o SearchStats) SearchStats {
	return SearchStats{Visits: s.Visits + o.Visits, Leaves: s.Leaves + o.Leaves}
}

// Searcher runs exhaustive backtracking searches over one graph and keeps the
// longest path found across all of them.
//
// The visited set, the path stack and the running best are owned by the
// Searcher, so repeated calls to Search accumulate into a single result.
// A Searcher is not safe for concurrent use; give each goroutine its own.
type Searcher struct {
	g       *Graph
	visited *VisitedSet
	path    []int
	best    Path
	stats   SearchStats
}

// NewSearcher returns a Searcher over g with an empty best path.
func NewSearcher(g *Graph) *Searcher {
	n := g.NodeCount()
	return &Searcher{
		g:       g,
		visited: NewVisitedSet(n),
		path:    make([]int, 0, n),
	}
}

// Search explores every simple path that starts at start and records the
// longest one if it beats the current best. start must be a node of the graph.
func (s *Searcher) Search(start int) {
	s.visit(start)
}

// Run searches from each of starts in order and returns the best path.
func (s *Searcher) Run(starts []int) Path {
	for _, u := range starts {
		s.Search(u)
	}
	return s.Best()
}

// Best returns a copy of the longest path found so far.
func (s *Searcher) Best() Path { return slices.Clone(s.best) }

// Stats returns the counters accumulated over all searches.
func (s *Searcher) Stats() SearchStats { return s.stats }

// visit walks every unvisited successor of u. A node none of whose successors
// could be entered ends the current path; the path then replaces the best
// only when strictly longer, so the first of several equal paths is kept.
func (s *Searcher) visit(u int) {
	s.enter(u)
	defer s.leave(u)

	leaf := true
	for _, v := range s.g.Neighbors(u) {
		if s.visited.Has(v) {
			continue
		}
		leaf = false
		s.visit(v)
	}

	if leaf {
		s.stats.Leaves++
		if len(s.path) > len(s.best) {
			s.best = append(s.best[:0], s.path...)
		}
	}
}

// enter pushes u onto the path and marks it visited.
func (s *Searcher) enter(u int) {
	s.stats.Visits++
	s.visited.Add(u)
	s.path = append(s.path, u)
}

// leave undoes enter so sibling branches can reuse u.
func (s *Searcher) leave(u int) {
	s.path = s.path[:len(s.path)-1]
	s.visited.Remove(u)
}
