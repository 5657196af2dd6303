package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordchain/internal/server"
	"github.com/matzehuels/wordchain/pkg/observability"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var maxItems int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Start an HTTP server exposing POST /v1/solve, GET /healthz and Prometheus
metrics on GET /metrics. The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("max-items") {
				cfg.Server.MaxItems = maxItems
			}

			runner, err := c.newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv, err := server.New(runner, server.Config{
				Addr:     cfg.Server.Addr,
				MaxItems: cfg.Server.MaxItems,
			}, logger)
			if err != nil {
				return err
			}

			m := srv.Metrics()
			observability.SetSolveHooks(m)
			observability.SetCacheHooks(m)
			observability.SetHTTPHooks(m)
			defer observability.Reset()

			out := cmd.OutOrStdout()
			printKeyValue(out, "address", cfg.Server.Addr)
			printKeyValue(out, "mode", cfg.Mode)
			workers := "auto"
			if cfg.Workers > 0 {
				workers = strconv.Itoa(cfg.Workers)
			}
			printKeyValue(out, "workers", workers)
			printKeyValue(out, "cache", cfg.Cache.Backend)

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().IntVar(&maxItems, "max-items", 0, "maximum items per request")

	return cmd
}
