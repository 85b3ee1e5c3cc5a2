package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bluefish/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. With --redis it
// clears the shared cache configured for the server instead.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redis bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if redis {
				if c.Config.Cache.RedisURL == "" {
					return fmt.Errorf("no redis cache configured (set cache.redis_url or BLUEFISH_CACHE_REDIS_URL)")
				}
				rc, err := connectRedis(ctx, c.Config.Cache.RedisURL, c.Config.Cache.Prefix)
				if err != nil {
					return err
				}
				defer rc.Close()
				if err := rc.Clear(ctx); err != nil {
					return err
				}
				printSuccess("Cleared redis cache")
				printDetail("Prefix: %s", c.Config.Cache.Prefix)
				return nil
			}

			dir, err := c.Config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(ctx); err != nil {
				return err
			}
			printSuccess("Cleared cache")
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().BoolVar(&redis, "redis", false, "clear the configured redis cache")

	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.Config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
