package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/dot/internal/devserver"
	"github.com/vango-dev/dot/internal/logging"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port    int
		host    string
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the example application",
		Long: `Serve the example application, its REST API and the
operational endpoints.

The app is served under the configured prefix (default /example/)
with index.html as the fallback for client-side routes.

Examples:
  dot serve
  dot serve --port=3000
  dot serve --config=dot.yaml --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if metrics {
				cfg.Metrics.Enabled = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printBanner(w)
			info(w, "App:     %s%s", cfg.URL(), cfg.Static.Prefix)
			info(w, "API:     %s/api", cfg.URL())
			if cfg.Metrics.Enabled {
				info(w, "Metrics: %s%s", cfg.URL(), cfg.Metrics.Path)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := logging.New(cfg.Log, cmd.ErrOrStderr())
			if err := devserver.New(cfg, logger).ListenAndServe(ctx); err != nil {
				return err
			}
			success(w, "Server stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics")

	return cmd
}
