// Package cli implements the wordchain command-line interface.
//
// The root command solves a word list file and prints the merged chain and
// the solve time. Subcommands export the overlap graph, serve the HTTP API
// and manage the result cache. Settings come from the TOML config file and
// are overridden by flags.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordchain/pkg/buildinfo"
	"github.com/matzehuels/wordchain/pkg/cache"
	"github.com/matzehuels/wordchain/pkg/chain"
	"github.com/matzehuels/wordchain/pkg/config"
	"github.com/matzehuels/wordchain/pkg/errors"
	"github.com/matzehuels/wordchain/pkg/pipeline"
)

const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds state shared by all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	flags      solveFlags
}

// solveFlags are the persistent flags that override config values.
type solveFlags struct {
	mode    string
	workers int
	noCache bool
	refresh bool
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "wordchain <data-file>",
		Short: "Find the longest overlapping word chain in a list",
		Long: `wordchain reads a newline-separated word list and finds the longest chain in
which every word begins with the last two characters of the word before it.
The chain is printed merged, with each overlap written once.`,
		Example: `  wordchain words.txt
  wordchain --mode single words.txt
  wordchain graph words.txt -o graph.svg`,
		Version:       buildinfo.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errors.New(errors.ErrCodeInvalidInput, "missing data file argument")
			}
			return c.runSolve(cmd, args[0])
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wordchain/config.toml)")
	pf.StringVar(&c.flags.mode, "mode", "", "search mode: single or parallel (default parallel)")
	pf.IntVar(&c.flags.workers, "workers", 0, "parallel workers (default one per CPU)")
	pf.BoolVar(&c.flags.noCache, "no-cache", false, "disable the result cache")
	pf.BoolVar(&c.flags.refresh, "refresh", false, "recompute even when a cached result exists")

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies flags the user set.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", err)
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = c.flags.mode
	}
	if flags.Changed("workers") {
		cfg.Workers = c.flags.workers
	}
	if c.flags.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	if err := cfg.Validate(); err != nil {
		if _, merr := chain.ParseMode(cfg.Mode); merr != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidMode, err, "%s", err)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", err)
	}
	return cfg, nil
}

// newRunner creates a solver and cache from cfg.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, error) {
	mode, _ := chain.ParseMode(cfg.Mode)
	solver, err := chain.NewSolver(chain.Options{
		Mode:    mode,
		Workers: cfg.Workers,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMode, err, "%s", err)
	}

	store, keyer := newCache(ctx, cfg, c.Logger)
	return pipeline.NewRunner(solver, store, keyer, c.Logger), nil
}

// newCache builds the configured backend. The cache is best-effort: a
// backend that cannot be opened is logged and replaced by a NullCache.
func newCache(ctx context.Context, cfg *config.Config, logger *log.Logger) (cache.Cache, cache.Keyer) {
	var keyer cache.Keyer
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Prefix)
	}

	switch cfg.Cache.Backend {
	case config.BackendFile:
		dir, err := cacheDir(cfg)
		if err != nil {
			logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), keyer
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warn("cache disabled", "dir", dir, "err", err)
			return cache.NewNullCache(), keyer
		}
		logger.Debug("using file cache", "dir", dir)
		return fc, keyer
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
		if err != nil {
			logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), keyer
		}
		logger.Debug("using redis cache", "addr", cfg.Cache.RedisAddr)
		return rc, keyer
	default:
		return cache.NewNullCache(), keyer
	}
}

// cacheDir returns the file cache directory: the configured one, or the XDG
// default (~/.cache/wordchain/).
func cacheDir(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	dir, err := config.CacheDir()
	if err != nil {
		return "", fmt.Errorf("locate cache dir: %w", err)
	}
	return dir, nil
}
