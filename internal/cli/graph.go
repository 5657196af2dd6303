package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordchain/pkg/chain"
	"github.com/matzehuels/wordchain/pkg/errors"
	"github.com/matzehuels/wordchain/pkg/pipeline"
	"github.com/matzehuels/wordchain/pkg/render/nodelink"
)

type graphFlags struct {
	output   string
	format   string
	onlyPath bool
	detailed bool
}

// graphCommand exports the overlap graph with the longest chain highlighted.
func (c *CLI) graphCommand() *cobra.Command {
	var flags graphFlags

	cmd := &cobra.Command{
		Use:   "graph <data-file>",
		Short: "Export the overlap graph with the longest chain highlighted",
		Long: `Solve a word list and export its overlap graph. Nodes are items, edges join
items whose last two characters begin the next item, and the longest chain is
highlighted.

The format is taken from --format, or from the extension of --output.`,
		Example: `  wordchain graph words.txt > graph.dot
  wordchain graph words.txt -o graph.svg
  wordchain graph words.txt --format json --only-path`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				flags.format = formatFromPath(flags.output, flags.format)
			}
			return c.runGraph(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", pipeline.FormatDOT, "output format: "+strings.Join(pipeline.Formats, ", "))
	cmd.Flags().BoolVar(&flags.onlyPath, "only-path", false, "keep only the items on the chain")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "label nodes with index and out-degree")

	return cmd
}

func (c *CLI) runGraph(cmd *cobra.Command, path string, flags graphFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := pipeline.ValidateFormat(flags.format); err != nil {
		return err
	}
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}
	items, err := readItems(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Solve(ctx, items, pipeline.Options{
		Refresh: c.flags.refresh,
		TTL:     cfg.Cache.TTL.Duration,
	})
	if err != nil {
		return err
	}

	prog := newProgress(logger, log.InfoLevel)
	data, err := pipeline.RenderGraph(ctx, chain.Build(items), res.Path, flags.format, nodelink.Options{
		OnlyPath: flags.onlyPath,
		Detailed: flags.detailed,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render %s", flags.format)
	}
	prog.done("rendered overlap graph", "format", flags.format, "bytes", len(data))

	if flags.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Exported overlap graph")
	printFile(out, flags.output)
	printStats(out, res.Path.Len(), res.Nodes, res.Edges, res.Cached)
	if flags.format == pipeline.FormatDOT {
		printNextStep(out, "Render with graphviz", "dot -Tpng "+flags.output)
	}
	return nil
}

// formatFromPath infers the export format from an output file extension.
func formatFromPath(path, fallback string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case pipeline.FormatDOT, "gv":
		return pipeline.FormatDOT
	case pipeline.FormatSVG, pipeline.FormatJSON:
		return ext
	}
	return fallback
}
