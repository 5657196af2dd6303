package chain

import "strings"

// Path is an ordered sequence of node ids. Paths returned by this package
// never repeat a node and every consecutive pair is an overlap edge.
type Path []int

// Len returns the number of nodes on the path.
func (p Path) Len() int { return len(p) }

// Text merges the words on the path. See [Join].
func (p Path) Text(items []string) string { return Join(p, items) }

// Valid reports whether p is a simple path of overlapping words in items.
// An empty path is valid.
func (p Path) Valid(items []string) bool {
	seen := make(map[int]bool, len(p))
	for k, id := range p {
		if id < 0 || id >= len(items) || seen[id] {
			return false
		}
		seen[id] = true
		if k > 0 && suffix(items[p[k-1]]) != prefix(items[id]) {
			return false
		}
	}
	return true
}

// Join merges the words on path into one string. The first word is kept
// whole; every later word contributes only what follows its first two
// characters, since those were already supplied by its predecessor.
//
// An empty path yields the empty string. A word shorter than two characters
// contributes nothing after the first position.
func Join(path Path, items []string) string {
	if len(path) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(items[path[0]])
	for _, id := range path[1:] {
		b.WriteString(tail(items[id]))
	}
	return b.String()
}

// Longest returns the longest of paths. Ties go to the earliest path in the
// slice, so callers control precedence through ordering. It returns nil when
// paths is empty or every path is empty.
func Longest(paths []Path) Path {
	var best Path
	for _, p := range paths {
		if len(p) > len(best) {
			best = p
		}
	}
	return best
}
