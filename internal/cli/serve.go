package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/internal/server"
	"github.com/matzehuels/bstviz/pkg/session"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		ttl          time.Duration
		cleanup      time.Duration
		cacheEntries int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree API over HTTP",
		Long: `Serve exposes in-memory tree sessions over a JSON HTTP API.

Sessions idle for longer than --session-ttl are discarded.`,
		Example: `  bstviz serve --addr :9000
  curl -X POST localhost:9000/trees -d '{"values":[50,30,70]}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("session-ttl") {
				cfg.SessionTTL.Duration = ttl
			}

			logger := loggerFromContext(cmd.Context()).WithPrefix("server")
			store := session.NewMemoryStore(cfg.SessionTTL.Duration)
			srv := server.New(server.Config{
				Addr:            cfg.Addr,
				CleanupInterval: cleanup,
				Render:          c.renderOptions(),
				CacheEntries:    cacheEntries,
			}, store, logger)

			printInfo("Serving on %s", StyleValue.Render(cfg.Addr))
			printDetail("sessions expire after %s idle", cfg.SessionTTL.Duration)
			printNextStep("Create a tree", "curl -X POST http://localhost"+cfg.Addr+"/trees")
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&ttl, "session-ttl", 0, "idle time before a session is discarded (default from config, 30m)")
	cmd.Flags().DurationVar(&cleanup, "cleanup-interval", server.DefaultCleanupInterval, "how often expired sessions are purged")
	cmd.Flags().IntVar(&cacheEntries, "cache-entries", 0, "rendered artifacts to cache (0 = default, negative disables)")

	return cmd
}
