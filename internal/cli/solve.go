package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordchain/pkg/errors"
	"github.com/matzehuels/wordchain/pkg/io"
	"github.com/matzehuels/wordchain/pkg/pipeline"
)

// runSolve solves the word list at path and prints
//
//	Result: <merged chain>
//	Time: <milliseconds> ms
func (c *CLI) runSolve(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	items, err := readItems(path)
	if err != nil {
		return err
	}
	logger.Debug("read word list", "path", path, "items", len(items))

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger, log.DebugLevel)
	res, err := runner.Solve(ctx, items, pipeline.Options{
		Refresh: c.flags.refresh,
		TTL:     cfg.Cache.TTL.Duration,
	})
	if err != nil {
		return err
	}
	prog.done("solved word list",
		"items", len(items),
		"mode", res.Mode,
		"length", len(res.Path),
		"nodes", res.Nodes,
		"edges", res.Edges,
		"cached", res.Cached)

	fmt.Fprintf(cmd.OutOrStdout(), "Result: %s\nTime: %.2f ms\n", res.Text, millis(res.Elapsed))
	return nil
}

// readItems loads a word list and classifies failures.
func readItems(path string) ([]string, error) {
	items, err := io.ImportItems(path)
	switch {
	case err == nil:
		return items, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot read %s: no such file", path)
	default:
		reason := err
		var pe *fs.PathError
		if stderrors.As(err, &pe) {
			reason = pe.Err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read %s: %v", path, reason)
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
