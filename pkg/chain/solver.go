package chain

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Mode selects how a [Solver] runs the search.
type Mode string

const (
	// ModeSingle searches every start node on the calling goroutine.
	ModeSingle Mode = "single"
	// ModeParallel spreads start nodes over a [Pool].
	ModeParallel Mode = "parallel"
)

// DefaultMode is the mode used when none is given.
const DefaultMode = ModeParallel

// ValidModes is the set of supported modes.
var ValidModes = map[Mode]bool{
	ModeSingle:   true,
	ModeParallel: true,
}

// ParseMode converts s to a Mode. The empty string selects [DefaultMode].
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return DefaultMode, nil
	}
	m := Mode(s)
	if !ValidModes[m] {
		return "", fmt.Errorf("invalid mode: %q (must be one of: single, parallel)", s)
	}
	return m, nil
}

// Options configures a Solver.
type Options struct {
	// Mode is used when Solve is called without an explicit mode.
	Mode Mode
	// Workers is the parallel pool size; 0 selects runtime.NumCPU().
	Workers int
	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// WithDefaults returns a copy of o with zero fields filled in.
func (o Options) WithDefaults() Options {
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// Result is the outcome of one solve.
type Result struct {
	Mode    Mode
	Path    Path
	Text    string
	Elapsed time.Duration // graph build, search and merge
	Nodes   int
	Edges   int
	Stats   SearchStats
}

// Solver builds the overlap graph for a word list and finds its longest
// chain in either mode.
//
// The worker pool is started by NewSolver when the default mode is parallel,
// and on first use otherwise. Close stops it. A Solver may be shared by
// several goroutines; parallel solves queue on the pool.
type Solver struct {
	opts Options

	mu     sync.Mutex // guards pool and closed
	pool   *Pool
	closed bool
}

// NewSolver validates opts and returns a ready Solver.
func NewSolver(opts Options) (*Solver, error) {
	opts = opts.WithDefaults()
	if !ValidModes[opts.Mode] {
		return nil, fmt.Errorf("invalid mode: %q", opts.Mode)
	}

	s := &Solver{opts: opts}
	if opts.Mode == ModeParallel {
		_, _ = s.workers()
	}
	return s, nil
}

// Mode returns the default mode.
func (s *Solver) Mode() Mode { return s.opts.Mode }

// Workers returns the configured pool size.
func (s *Solver) Workers() int { return s.opts.Workers }

// Solve finds the longest chain in items. An empty mode selects the Solver's
// default. Errors are limited to an unknown mode and a parallel solve after
// Close.
func (s *Solver) Solve(items []string, mode Mode) (*Result, error) {
	if mode == "" {
		mode = s.opts.Mode
	}
	if !ValidModes[mode] {
		return nil, fmt.Errorf("invalid mode: %q", mode)
	}

	logger := s.opts.Logger
	start := time.Now()

	g := Build(items)
	logger.Debug("built overlap graph",
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", time.Since(start))

	var (
		path  Path
		stats SearchStats
	)
	searchStart := time.Now()
	switch mode {
	case ModeSingle:
		sr := NewSearcher(g)
		path = sr.Run(Range{Start: 0, End: g.NodeCount()}.Nodes())
		stats = sr.Stats()
	case ModeParallel:
		pool, err := s.workers()
		if err != nil {
			return nil, err
		}
		if path, stats, err = pool.Solve(g); err != nil {
			return nil, err
		}
	}
	logger.Debug("search finished",
		"mode", mode,
		"length", len(path),
		"visits", stats.Visits,
		"leaves", stats.Leaves,
		"duration", time.Since(searchStart))

	text := Join(path, items)

	return &Result{
		Mode:    mode,
		Path:    path,
		Text:    text,
		Elapsed: time.Since(start),
		Nodes:   g.NodeCount(),
		Edges:   g.EdgeCount(),
		Stats:   stats,
	}, nil
}

// Close stops the worker pool if it was started. Later parallel solves fail
// with ErrPoolClosed; single solves keep working.
func (s *Solver) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.pool == nil {
		return nil
	}
	return s.pool.Close()
}

// workers returns the pool, starting it on first use.
func (s *Solver) workers() (*Pool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrPoolClosed
	}
	if s.pool == nil {
		s.pool = NewPool(s.opts.Workers)
		s.opts.Logger.Debug("started worker pool", "workers", s.pool.Workers())
	}
	return s.pool, nil
}
