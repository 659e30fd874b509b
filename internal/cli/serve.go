package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linebalance/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		backend string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Serve starts the HTTP API. Runs are archived in memory unless --store or
the [store] table selects another backend.`,
		Example: `  linebalance serve --addr :8080
  curl -s localhost:8080/v1/solve -d '{"alb": "...", "iterations": 500}'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := *c.config()
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ch, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			if backend == "" && cfg.Store.Backend == "none" {
				backend = "memory"
			}
			st, err := c.newStore(ctx, backend)
			if err != nil {
				ch.Close()
				return err
			}

			srv := server.New(&cfg, ch, st, c.Logger)
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Close(closeCtx); err != nil {
					c.Logger.Warn("close server resources", "err", err)
				}
			}()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringVar(&backend, "store", "", "run archive: memory or mongo (default memory)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}
