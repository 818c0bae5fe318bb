package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/internal/server"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/cache"
)

// keyPrefix namespaces the service's keys in a shared Redis.
const keyPrefix = appName + ":"

// serveCommand creates the serve command, which runs the render service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

Documents are POSTed to /v1/render, /v1/validate and /v1/hit. Defaults for
layout and rendering come from the [layout] and [render] config sections;
the [server] section sets the address, request timeout and body limit.
With [cache] redis_url set, instances share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: [server] addr or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, keyPrefix)

	defaults := c.cfg.PipelineOptions()
	defaults.Logger = c.Logger

	srv := server.New(runner,
		server.WithDefaults(defaults),
		server.WithMaxBodyBytes(c.cfg.Server.MaxBodyBytes),
		server.WithTimeout(c.cfg.Server.Timeout.Duration),
		server.WithLogger(c.Logger),
	)

	printInfo("Serving on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}
