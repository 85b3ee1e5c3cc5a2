package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bluefish/pkg/cache"
	"github.com/matzehuels/bluefish/pkg/layout"
	"github.com/matzehuels/bluefish/pkg/observability"
)

// keyType labels artifact lookups in cache hooks.
const keyType = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner holds no per-run state; multiple goroutines can use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.DefaultTTL,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{DocHash: cache.DocumentHash(string(opts.Syntax), opts.Source)}

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, result.DocHash, opts); ok {
			r.Logger.Info("served from cache", "formats", opts.Formats)
			result.Artifacts = artifacts
			result.CacheHit = true
			return result, nil
		}
	}

	// Stage 1: Parse
	parseStart := time.Now()
	doc, d, err := Parse(opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Document = doc
	result.Stats.ParseTime = time.Since(parseStart)

	// Stage 2: Layout
	tree, stats, err := r.Layout(ctx, d, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Tree = tree
	result.Snapshot = tree.Scenegraph().Snapshot()
	result.Stats.Nodes = tree.Len()
	result.Stats.Passes = stats.Passes
	result.Stats.Rejections = stats.Rejections
	result.Stats.LayoutTime = stats.Duration

	r.Logger.Info("computed layout",
		"nodes", tree.Len(),
		"passes", stats.Passes,
		"rejections", stats.Rejections,
		"duration", stats.Duration)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := Render(ctx, tree, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	r.store(ctx, result.DocHash, opts, artifacts)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Layout is [Layout] with the runner's logger as default.
func (r *Runner) Layout(ctx context.Context, d *layout.Diagram, opts Options) (*layout.Tree, layout.Stats, error) {
	r.applyLogger(&opts)
	return Layout(ctx, d, opts)
}

// cached returns every requested artifact, or false if any is missing.
func (r *Runner) cached(ctx context.Context, docHash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, keyType)
			return nil, false
		}
		hooks.OnCacheHit(ctx, keyType)
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) store(ctx context.Context, docHash string, opts Options, artifacts map[string][]byte) {
	hooks := observability.Cache()
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		hooks.OnCacheSet(ctx, keyType, len(data))
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
