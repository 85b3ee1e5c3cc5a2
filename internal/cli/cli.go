package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bluefish/internal/config"
	"github.com/matzehuels/bluefish/pkg/buildinfo"
	"github.com/matzehuels/bluefish/pkg/cache"
	"github.com/matzehuels/bluefish/pkg/pipeline"
	"github.com/matzehuels/bluefish/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "bluefish"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config *config.Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Bluefish lays out declarative diagrams",
		Long:         `Bluefish is a CLI tool for laying out declarative diagrams: rows, columns, alignments and references resolved into boxes on a shared scenegraph, then rendered as SVG, PNG, PDF, JSON or Graphviz.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/bluefish/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and environment, then attaches the
// logger to the command context.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "max_passes", cfg.Layout.MaxPasses, "cache_disabled", cfg.Cache.Disabled)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

// newCache opens the local file cache. A cache directory that cannot be
// determined disables caching rather than failing the command.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions returns options carrying the configured defaults.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		MaxPasses:  c.Config.Layout.MaxPasses,
		Background: c.Config.Render.Background,
		Scale:      c.Config.Render.Scale,
		Logger:     c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
