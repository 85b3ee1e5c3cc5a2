// Package render turns laid-out diagrams into output formats.
//
// # Overview
//
// The subpackages do the drawing:
//
//   - [svg]: the diagram itself, one SVG group per container
//   - [dot]: the scenegraph behind it, as a Graphviz graph for debugging
//
// This package holds what they share: the [Format] names used by the CLI and
// the HTTP API, and conversion of SVG to PDF or PNG.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). Without it they fail with an UNSUPPORTED error.
//
//	out := svg.RenderSVG(tree)
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0) // 2x scale
//
// [svg]: github.com/matzehuels/bluefish/pkg/render/svg
// [dot]: github.com/matzehuels/bluefish/pkg/render/dot
package render
