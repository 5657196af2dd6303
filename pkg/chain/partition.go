package chain

// Range is the half-open interval [Start, End) of node ids.
type Range struct {
	Start int
	End   int
}

// Len returns the number of ids in r.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether r holds no ids.
func (r Range) Empty() bool { return r.End <= r.Start }

// Nodes returns the ids in r in ascending order.
func (r Range) Nodes() []int {
	if r.Empty() {
		return nil
	}
	ids := make([]int, r.Len())
	for i := range ids {
		ids[i] = r.Start + i
	}
	return ids
}

// Partition splits [0, n) into exactly workers contiguous ranges of
// ceil(n/workers) ids each. The last non-empty range may be shorter, and any
// ranges after it are empty, which happens whenever n is not a multiple of
// the chunk size or n < workers. A workers value below 1 is treated as 1.
func Partition(n, workers int) []Range {
	if workers < 1 {
		workers = 1
	}
	size := (n + workers - 1) / workers

	ranges := make([]Range, workers)
	for i := range ranges {
		start := min(i*size, n)
		ranges[i] = Range{Start: start, End: min(start+size, n)}
	}
	return ranges
}
