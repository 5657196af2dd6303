package chain

import (
	"slices"
	"testing"
)

func TestBuild_Cycle(t *testing.T) {
	g := Build([]string{"aaxx", "xxyy", "yyzz", "zzaa"})

	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}

	want := map[int][]int{0: {1}, 1: {2}, 2: {3}, 3: {0}}
	for u, succ := range want {
		if got := g.Neighbors(u); !slices.Equal(got, succ) {
			t.Errorf("Neighbors(%d) = %v, want %v", u, got, succ)
		}
	}
}

func TestBuild_NoSelfEdges(t *testing.T) {
	// "abab" ends with its own prefix.
	g := Build([]string{"abab", "abcd"})

	if g.HasEdge(0, 0) {
		t.Error("Build() created a self edge")
	}
	if !g.HasEdge(0, 1) {
		t.Error("Build() missing edge 0 -> 1")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestBuild_SharedPrefixKeepsInputOrder(t *testing.T) {
	g := Build([]string{"abyy", "xxab", "abzz", "abww"})

	if got, want := g.Neighbors(1), []int{0, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Neighbors(1) = %v, want %v", got, want)
	}
	if g.OutDegree(1) != 3 {
		t.Errorf("OutDegree(1) = %d, want 3", g.OutDegree(1))
	}
	for _, u := range []int{0, 2, 3} {
		if g.OutDegree(u) != 0 {
			t.Errorf("OutDegree(%d) = %d, want 0", u, g.OutDegree(u))
		}
	}
}

func TestBuild_ShortItems(t *testing.T) {
	// One-character words key on themselves; empty words key on "".
	g := Build([]string{"a", "a", "", ""})

	tests := []struct {
		u    int
		want []int
	}{
		{0, []int{1}},
		{1, []int{0}},
		{2, []int{3}},
		{3, []int{2}},
	}
	for _, tt := range tests {
		if got := g.Neighbors(tt.u); !slices.Equal(got, tt.want) {
			t.Errorf("Neighbors(%d) = %v, want %v", tt.u, got, tt.want)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	g := Build(nil)

	if g.NodeCount() != 0 {
		t.Errorf("NodeCount() = %d, want 0", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount() = %d, want 0", g.EdgeCount())
	}
}

func TestBuild_EdgesMatchOverlap(t *testing.T) {
	items := []string{"abcd", "cdab", "cdef", "efab", "abab", "zz"}
	g := Build(items)

	for i := range items {
		for j := range items {
			want := i != j && suffix(items[i]) == prefix(items[j])
			if got := g.HasEdge(i, j); got != want {
				t.Errorf("HasEdge(%d, %d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestNeighbors_AppendDoesNotAlias(t *testing.T) {
	g := Build([]string{"aabb", "bbcc", "bbdd", "ccaa"})

	succ := g.Neighbors(0)
	_ = append(succ, 99)

	if got := g.Neighbors(1); !slices.Equal(got, []int{3}) {
		t.Errorf("Neighbors(1) = %v after append to Neighbors(0), want [3]", got)
	}
}

func TestOverlapKeys(t *testing.T) {
	tests := []struct {
		in     string
		prefix string
		suffix string
		tail   string
	}{
		{"abcd", "ab", "cd", "cd"},
		{"abc", "ab", "bc", "c"},
		{"ab", "ab", "ab", ""},
		{"a", "a", "a", ""},
		{"", "", "", ""},
		{"héllo", "hé", "lo", "llo"},
		{"日本語", "日本", "本語", "語"},
	}

	for _, tt := range tests {
		if got := prefix(tt.in); got != tt.prefix {
			t.Errorf("prefix(%q) = %q, want %q", tt.in, got, tt.prefix)
		}
		if got := suffix(tt.in); got != tt.suffix {
			t.Errorf("suffix(%q) = %q, want %q", tt.in, got, tt.suffix)
		}
		if got := tail(tt.in); got != tt.tail {
			t.Errorf("tail(%q) = %q, want %q", tt.in, got, tt.tail)
		}
	}
}
