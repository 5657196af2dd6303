package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordchain/pkg/cache"
	"github.com/matzehuels/wordchain/pkg/chain"
	"github.com/matzehuels/wordchain/pkg/errors"
	"github.com/matzehuels/wordchain/pkg/observability"
	"github.com/matzehuels/wordchain/pkg/render/nodelink"
)

var cycle = []string{"aaxx", "xxyy", "yyzz", "zzaa"}

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	s, err := chain.NewSolver(chain.Options{Mode: chain.ModeSingle, Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(s, c, nil, log.New(&bytes.Buffer{}))
	t.Cleanup(func() { r.Close() })
	return r
}

func newFileCache(t *testing.T) *cache.FileCache {
	t.Helper()
	c, err := cache.NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"json", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestRunner_Solve(t *testing.T) {
	r := newTestRunner(t, nil)

	for _, mode := range []string{"", "single", "parallel"} {
		res, err := r.Solve(context.Background(), cycle, Options{Mode: mode})
		if err != nil {
			t.Fatalf("Solve(%q) error: %v", mode, err)
		}
		if res.Text != "aaxxyyzzaa" {
			t.Errorf("Solve(%q).Text = %q", mode, res.Text)
		}
		if res.Cached {
			t.Errorf("Solve(%q) should not hit a null cache", mode)
		}
		if res.InputHash != cache.HashItems(cycle) {
			t.Errorf("InputHash = %q", res.InputHash)
		}
	}
}

func TestRunner_Solve_DefaultModeFromSolver(t *testing.T) {
	r := newTestRunner(t, nil)

	res, err := r.Solve(context.Background(), cycle, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Mode != chain.ModeSingle {
		t.Errorf("Mode = %q, want the solver default", res.Mode)
	}
}

func TestRunner_Solve_InvalidMode(t *testing.T) {
	r := newTestRunner(t, nil)

	_, err := r.Solve(context.Background(), cycle, Options{Mode: "quantum"})
	if !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Fatalf("error = %v, want INVALID_MODE", err)
	}
	if !strings.Contains(errors.UserMessage(err), "invalid mode") {
		t.Errorf("UserMessage = %q", errors.UserMessage(err))
	}
}

func TestRunner_Solve_Cached(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t, newFileCache(t))

	first, err := r.Solve(ctx, cycle, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first solve should miss")
	}

	second, err := r.Solve(ctx, cycle, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second solve should hit")
	}
	if second.Text != first.Text || !slices.Equal(second.Path, first.Path) {
		t.Errorf("cached result %q %v differs from %q %v", second.Text, second.Path, first.Text, first.Path)
	}
	if second.Nodes != 4 || second.Edges != 4 {
		t.Errorf("cached Nodes, Edges = %d, %d", second.Nodes, second.Edges)
	}

	refreshed, err := r.Solve(ctx, cycle, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.Cached {
		t.Error("Refresh should bypass the cache")
	}

	other, err := r.Solve(ctx, cycle, Options{Mode: "parallel"})
	if err != nil {
		t.Fatal(err)
	}
	if other.Cached {
		t.Error("a different mode should not share the cache entry")
	}
}

func TestRunner_Solve_EmptyCached(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t, newFileCache(t))

	for i := range 2 {
		res, err := r.Solve(ctx, nil, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if res.Text != "" || res.Path.Len() != 0 {
			t.Errorf("run %d: Solve(nil) = %q %v", i, res.Text, res.Path)
		}
		if res.Cached != (i == 1) {
			t.Errorf("run %d: Cached = %v", i, res.Cached)
		}
	}
}

// badCache fails every read and write.
type badCache struct{}

var errDown = stderrors.New("backend down")

func (badCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errDown }
func (badCache) Set(context.Context, string, []byte, time.Duration) error {
	return errDown
}
func (badCache) Delete(context.Context, string) error { return nil }
func (badCache) Close() error                         { return nil }

func TestRunner_Solve_CacheFailureIsNotFatal(t *testing.T) {
	r := newTestRunner(t, badCache{})

	res, err := r.Solve(context.Background(), cycle, Options{})
	if err != nil {
		t.Fatalf("Solve with failing cache error: %v", err)
	}
	if res.Text != "aaxxyyzzaa" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestRunner_Solve_IgnoresForeignEntry(t *testing.T) {
	ctx := context.Background()
	c := newFileCache(t)
	r := newTestRunner(t, c)

	key := r.Keyer.ResultKey(cache.HashItems(cycle), keyOpts(chain.ModeSingle, r.Solver.Workers()))
	if err := c.Set(ctx, key, []byte(`{"path":[0,2],"text":"bogus"}`), 0); err != nil {
		t.Fatal(err)
	}

	res, err := r.Solve(ctx, cycle, Options{Mode: "single"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Cached || res.Text != "aaxxyyzzaa" {
		t.Errorf("Solve = %q cached=%v, want a fresh result", res.Text, res.Cached)
	}
}

func TestRunner_Solve_AfterClose(t *testing.T) {
	r := newTestRunner(t, nil)
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	_, err := r.Solve(context.Background(), cycle, Options{Mode: "parallel"})
	if !errors.Is(err, errors.ErrCodeUnavailable) {
		t.Errorf("error = %v, want UNAVAILABLE", err)
	}
}

type recordingHooks struct {
	observability.NoopSolveHooks
	observability.NoopCacheHooks
	starts, completes, hits, misses, sets int
	lastCached                            bool
}

func (h *recordingHooks) OnSolveStart(context.Context, string, int) { h.starts++ }
func (h *recordingHooks) OnSolveComplete(_ context.Context, _ string, _ int, cached bool, _ time.Duration, _ error) {
	h.completes++
	h.lastCached = cached
}
func (h *recordingHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *recordingHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *recordingHooks) OnCacheSet(context.Context, string, int) { h.sets++ }

func TestRunner_Solve_Hooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetSolveHooks(h)
	observability.SetCacheHooks(h)
	t.Cleanup(observability.Reset)

	r := newTestRunner(t, newFileCache(t))
	for range 2 {
		if _, err := r.Solve(context.Background(), cycle, Options{}); err != nil {
			t.Fatal(err)
		}
	}

	if h.starts != 2 || h.completes != 2 {
		t.Errorf("starts, completes = %d, %d; want 2, 2", h.starts, h.completes)
	}
	if h.misses != 1 || h.hits != 1 || h.sets != 1 {
		t.Errorf("misses, hits, sets = %d, %d, %d; want 1, 1, 1", h.misses, h.hits, h.sets)
	}
	if !h.lastCached {
		t.Error("second completion should report a cached result")
	}
}

func TestRenderGraph(t *testing.T) {
	g := chain.Build(cycle)
	best := chain.Path{0, 1, 2, 3}

	dot, err := RenderGraph(context.Background(), g, best, FormatDOT, nodelink.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(dot, []byte("digraph G {")) {
		t.Errorf("dot output = %q", dot)
	}

	js, err := RenderGraph(context.Background(), g, best, FormatJSON, nodelink.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(js, []byte(`"result": "aaxxyyzzaa"`)) {
		t.Errorf("json output = %s", js)
	}

	if _, err := RenderGraph(context.Background(), g, best, "png", nodelink.Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("png error = %v, want INVALID_FORMAT", err)
	}
}
