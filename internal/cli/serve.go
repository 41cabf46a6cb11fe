package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgraph/internal/server"
	"github.com/matzehuels/assetgraph/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP host.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP host",
		Long: `Run the HTTP host.

Routes:
  GET  /healthz
  POST /v1/visualize/{dims}
  POST /v1/traverse

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			defaults := pipeline.Options{}
			c.setCLIDefaults(&defaults)
			return server.New(runner, c.Logger, defaults).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
