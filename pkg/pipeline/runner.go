package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordchain/pkg/cache"
	"github.com/matzehuels/wordchain/pkg/chain"
	"github.com/matzehuels/wordchain/pkg/errors"
	"github.com/matzehuels/wordchain/pkg/observability"
)

const keyTypeResult = "result"

// Runner encapsulates solving with caching. Both CLI and API use it.
//
// A Runner holds no per-solve state and may be shared between goroutines;
// parallel solves queue on the Solver's pool.
type Runner struct {
	Solver *chain.Solver
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects DefaultKeyer and a nil logger selects log.Default().
func NewRunner(s *chain.Solver, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Solver: s, Cache: c, Keyer: keyer, Logger: logger}
}

// Solve returns the longest chain of items, from the cache when possible.
func (r *Runner) Solve(ctx context.Context, items []string, opts Options) (res *Result, err error) {
	mode, err := opts.mode(r.Solver.Mode())
	if err != nil {
		return nil, err
	}

	hooks := observability.Solve()
	hooks.OnSolveStart(ctx, string(mode), len(items))
	start := time.Now()
	defer func() {
		length := 0
		cached := false
		if res != nil {
			length, cached = len(res.Path), res.Cached
		}
		hooks.OnSolveComplete(ctx, string(mode), length, cached, time.Since(start), err)
	}()

	hash := cache.HashItems(items)
	key := r.Keyer.ResultKey(hash, keyOpts(mode, r.Solver.Workers()))

	if !opts.Refresh {
		if res, ok := r.lookup(ctx, key, items); ok {
			res.Mode = mode
			res.InputHash = hash
			res.Elapsed = time.Since(start)
			r.Logger.Debug("cache hit", "key", key, "length", len(res.Path))
			return res, nil
		}
	}

	out, err := r.Solver.Solve(items, mode)
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		if stderrors.Is(err, chain.ErrPoolClosed) {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "solver is shut down")
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "solve failed")
	}

	r.store(ctx, key, out, opts.ttl())

	return &Result{
		Mode:      out.Mode,
		Path:      out.Path,
		Text:      out.Text,
		Elapsed:   out.Elapsed,
		Nodes:     out.Nodes,
		Edges:     out.Edges,
		InputHash: hash,
	}, nil
}

// lookup returns a cached result for key. Entries whose path does not fit
// items are ignored.
func (r *Runner) lookup(ctx context.Context, key string, items []string) (*Result, bool) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache get failed", "key", key, "err", err)
		hooks.OnCacheError(ctx, keyTypeResult, err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}

	var c cachedResult
	if err := json.Unmarshal(data, &c); err != nil || !chain.Path(c.Path).Valid(items) {
		r.Logger.Debug("discarding unusable cache entry", "key", key)
		hooks.OnCacheMiss(ctx, keyTypeResult)
		return nil, false
	}

	hooks.OnCacheHit(ctx, keyTypeResult)
	return &Result{
		Path:   chain.Path(c.Path),
		Text:   c.Text,
		Nodes:  c.Nodes,
		Edges:  c.Edges,
		Cached: true,
	}, true
}

// store writes out under key; failures are logged only.
func (r *Runner) store(ctx context.Context, key string, out *chain.Result, ttl time.Duration) {
	c := cachedResult{Path: out.Path, Text: out.Text, Nodes: out.Nodes, Edges: out.Edges}
	if c.Path == nil {
		c.Path = []int{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache set failed", "key", key, "err", err)
		observability.Cache().OnCacheError(ctx, keyTypeResult, err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeResult, len(data))
	r.Logger.Debug("cached result", "key", key, "entry", c)
}

// Close stops the solver and releases the cache.
func (r *Runner) Close() error {
	var firstErr error
	if r.Solver != nil {
		firstErr = r.Solver.Close()
	}
	if r.Cache != nil {
		if err := r.Cache.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
