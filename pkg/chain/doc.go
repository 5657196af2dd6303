// Package chain finds the longest overlap chain in a list of words.
//
// # Overview
//
// Two words overlap when the last two characters of the first equal the first
// two characters of the second. Chaining overlapping words end to end gives a
// merged string in which each shared pair appears once:
//
//	aaxx + xxyy + yyzz + zzaa = aaxxyyzzaa
//
// The package treats every word as a node, draws an edge i -> j whenever
// word i overlaps word j, and searches that graph for the longest simple path.
//
// # Graph Construction
//
// [Build] buckets node ids by their two-character prefix and then links every
// node to the bucket named by its two-character suffix. Self edges are never
// created. Successors keep input order, and a graph is read-only once built,
// so a single [Graph] can be searched by any number of goroutines at once.
//
// Words shorter than two characters are accepted. Their prefix and suffix are
// the whole word, and they contribute nothing to the merged string after the
// first position.
//
// # Search
//
// [Searcher] is an exhaustive depth-first backtracking search. Starting from
// each requested root it explores every simple path, keeping a private
// visited set ([VisitedSet]), a path stack and the longest path seen so far.
// There is no pruning or memoization, so the cost is exponential in the worst
// case.
//
// When several paths share the maximum length the first one reached wins.
// Roots are tried in the order given and successors in adjacency order, so the
// winner is stable for a given input but carries no further meaning.
//
// # Parallel Search
//
// [Pool] splits the node range into equal contiguous chunks with [Partition]
// and hands one chunk to each worker goroutine. Workers share the graph
// read-only and own everything else. The coordinator waits for every chunk
// and reduces the per-worker paths with [Longest], preferring the lowest
// worker index on ties. Chunks are fixed up front, so one expensive chunk can
// dominate the wall time.
//
// # Usage
//
//	s, err := chain.NewSolver(chain.Options{Mode: chain.ModeParallel})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	res, err := s.Solve([]string{"aaxx", "xxyy", "yyzz", "zzaa"}, "")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Text) // aaxxyyzzaa
package chain
