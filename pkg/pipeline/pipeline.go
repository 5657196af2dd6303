// Package pipeline runs cache-aware solves for the CLI and the HTTP API.
//
// A [Runner] wraps a [chain.Solver] with a result cache: the input is hashed,
// combined with the options that affect the answer, and looked up before any
// search runs. Cache failures are logged and treated as misses; they never
// fail a solve.
//
//	solver, _ := chain.NewSolver(chain.Options{Logger: logger})
//	runner := pipeline.NewRunner(solver, fileCache, nil, logger)
//	defer runner.Close()
//
//	res, err := runner.Solve(ctx, items, pipeline.Options{Mode: "single"})
//	fmt.Println(res.Text, res.Cached)
//
// [RenderGraph] turns a solved list into one of the export formats.
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/wordchain/pkg/cache"
	"github.com/matzehuels/wordchain/pkg/chain"
	"github.com/matzehuels/wordchain/pkg/errors"
)

// DefaultTTL is how long results stay cached when Options.TTL is zero.
const DefaultTTL = 24 * time.Hour

// Export formats for RenderGraph.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Formats lists the export formats in display order.
var Formats = []string{FormatDOT, FormatSVG, FormatJSON}

// ValidateFormat checks that format is one of Formats.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// Options controls a single solve.
type Options struct {
	// Mode is "single" or "parallel". Empty selects the Solver's default.
	Mode string
	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool
	// TTL overrides the cache lifetime of the result.
	TTL time.Duration
}

// Result is a solve outcome plus cache information.
type Result struct {
	Mode      chain.Mode
	Path      chain.Path
	Text      string
	Elapsed   time.Duration
	Nodes     int
	Edges     int
	Cached    bool
	InputHash string
}

// mode resolves o.Mode against fallback.
func (o Options) mode(fallback chain.Mode) (chain.Mode, error) {
	if o.Mode == "" {
		return fallback, nil
	}
	m, err := chain.ParseMode(o.Mode)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidMode, err, "%s", err)
	}
	return m, nil
}

func (o Options) ttl() time.Duration {
	if o.TTL > 0 {
		return o.TTL
	}
	return DefaultTTL
}

// keyOpts returns the cache key options for a solve in mode.
func keyOpts(mode chain.Mode, workers int) cache.ResultKeyOpts {
	return cache.ResultKeyOpts{Mode: string(mode), Workers: workers}
}

// cachedResult is the stored form of a Result.
type cachedResult struct {
	Path  []int  `json:"path"`
	Text  string `json:"text"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

func (c cachedResult) String() string {
	return fmt.Sprintf("%d items, %d chars", len(c.Path), len(c.Text))
}
