package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bluefish/internal/server"
	"github.com/matzehuels/bluefish/pkg/cache"
	"github.com/matzehuels/bluefish/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints:
  GET  /healthz            build information
  POST /render?format=svg  lay out the request body and render it
  POST /snapshot           lay out the request body and return the scenegraph

Artifacts are cached in Redis when cache.redis_url (BLUEFISH_CACHE_REDIS_URL)
is set, and in the local cache directory otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	runner, err := c.newServerRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	printInfo("Listening on %s", StyleHighlight.Render(c.Config.Server.Addr))
	return server.New(runner, c.Config, c.Logger).ListenAndServe(ctx)
}

// newServerRunner picks the shared Redis cache when one is configured.
// File-cache entries are scoped with the configured prefix so that they do
// not mix with the CLI's own entries.
func (c *CLI) newServerRunner(ctx context.Context) (*pipeline.Runner, error) {
	cfg := c.Config.Cache
	if cfg.Disabled || cfg.RedisURL == "" {
		cc, err := c.newCache(false)
		if err != nil {
			return nil, err
		}
		r := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, cfg.Prefix), c.Logger)
		r.TTL = cfg.TTL
		return r, nil
	}

	rc, err := connectRedis(ctx, cfg.RedisURL, cfg.Prefix)
	if err != nil {
		return nil, err
	}
	c.Logger.Info("using redis cache", "prefix", cfg.Prefix)
	r := pipeline.NewRunner(rc, nil, c.Logger)
	r.TTL = cfg.TTL
	return r, nil
}

// connectRedis opens the shared cache behind a spinner; the connection is
// retried with backoff and may take a few seconds to fail.
func connectRedis(ctx context.Context, url, prefix string) (*cache.RedisCache, error) {
	var rc *cache.RedisCache
	err := withSpinner(ctx, "Connecting to redis...", "Connected to redis", "Redis unavailable", func() error {
		var err error
		rc, err = cache.NewRedisCache(ctx, cache.RedisConfig{URL: url, Prefix: prefix})
		return err
	})
	return rc, err
}
