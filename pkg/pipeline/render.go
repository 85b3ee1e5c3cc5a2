package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/bluefish/pkg/io"
	"github.com/matzehuels/bluefish/pkg/layout"
	"github.com/matzehuels/bluefish/pkg/observability"
	"github.com/matzehuels/bluefish/pkg/render"
	"github.com/matzehuels/bluefish/pkg/render/dot"
	"github.com/matzehuels/bluefish/pkg/render/svg"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, tree *layout.Tree, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := renderFormats(ctx, tree, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, tree *layout.Tree, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var image []byte
	diagram := func() []byte {
		if image == nil {
			image = svg.RenderSVG(tree, svgOptions(opts)...)
		}
		return image
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch render.Format(format) {
		case render.FormatSVG:
			data = diagram()
		case render.FormatPNG:
			data, err = render.ToPNG(ctx, diagram(), opts.Scale)
		case render.FormatPDF:
			data, err = render.ToPDF(ctx, diagram())
		case render.FormatJSON:
			var buf bytes.Buffer
			err = io.WriteSnapshot(tree.Scenegraph().Snapshot(), &buf)
			data = buf.Bytes()
		case render.FormatDOT:
			data = []byte(dot.ToDOT(tree.Scenegraph().Snapshot(), dot.Options{Detailed: opts.Detailed}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func svgOptions(opts Options) []svg.Option {
	var out []svg.Option
	if opts.Background != "" {
		out = append(out, svg.WithBackground(opts.Background))
	}
	if opts.Bounds {
		out = append(out, svg.WithBounds())
	}
	return out
}
