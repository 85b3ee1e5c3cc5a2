// Package pipeline runs a diagram document through parse → layout → render.
//
// The CLI and the HTTP API both go through this package so that documents
// are validated, laid out and cached the same way everywhere.
//
// # Stages
//
//  1. Parse: decode the document (JSON, YAML or TOML) and build the element tree
//  2. Layout: mount the tree on a fresh scenegraph and run it to a fixpoint
//  3. Render: produce each requested format (svg, png, pdf, json, dot)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  data,
//	    Syntax:  io.TOML,
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Rendered artifacts are cached by document content and render options.
// When every requested format is cached, Execute skips layout entirely and
// the result carries no tree or snapshot.
package pipeline

import (
	"fmt"
	stdio "io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bluefish/pkg/cache"
	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/io"
	"github.com/matzehuels/bluefish/pkg/layout"
	"github.com/matzehuels/bluefish/pkg/render"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultFormat is rendered when no format is requested.
	DefaultFormat = string(render.FormatSVG)
)

// Options configures a pipeline run.
type Options struct {
	// Source is the raw document; Syntax says how to decode it.
	Source []byte    `json:"-"`
	Syntax io.Syntax `json:"syntax"`

	// Layout options
	MaxPasses int `json:"max_passes,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Background string   `json:"background,omitempty"` // overrides the document's background
	Bounds     bool     `json:"bounds,omitempty"`     // outline container boxes in SVG output
	Scale      float64  `json:"scale,omitempty"`      // PNG scale factor
	Detailed   bool     `json:"detailed,omitempty"`   // owners and translations in DOT output

	// Refresh ignores cached artifacts (fresh results are still stored).
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed document.
	Document *io.Document

	// DocHash is the content hash of Source, used in cache keys.
	DocHash string

	// Tree is the laid-out element tree; nil on a full cache hit.
	Tree *layout.Tree

	// Snapshot is the scenegraph after layout; zero on a full cache hit.
	Snapshot scenegraph.Snapshot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats Stats

	// CacheHit reports that every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Nodes      int
	Passes     int
	Rejections int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	_, err := render.ParseFormat(format)
	return err
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Source) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "document is empty")
	}
	if _, err := io.ParseSyntax(string(o.Syntax)); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.MaxPasses < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "max passes cannot be negative")
	}
	if o.MaxPasses == 0 {
		o.MaxPasses = layout.DefaultMaxPasses
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if err := errors.ValidateColor(o.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(stdio.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, MaxPasses: o.MaxPasses}
	switch render.Format(format) {
	case render.FormatSVG, render.FormatPDF:
		opts.Background, opts.Bounds = o.Background, o.Bounds
	case render.FormatPNG:
		opts.Background, opts.Bounds, opts.Scale = o.Background, o.Bounds, o.Scale
	case render.FormatDOT:
		opts.Detailed = o.Detailed
	}
	return opts
}
