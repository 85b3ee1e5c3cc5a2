package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bluefish/pkg/render"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Options configures scenegraph visualization.
type Options struct {
	// Detailed adds box, translation and owners to each node label.
	// When false, only the node ID and effective box are shown.
	Detailed bool
}

// ToDOT converts a scenegraph snapshot to Graphviz DOT. Parent/child
// structure is drawn as solid edges; each reference gets a dashed edge to
// the node it aliases. Nodes that failed to resolve are drawn in red.
func ToDOT(snap scenegraph.Snapshot, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range snap.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
	}

	buf.WriteString("\n")
	for _, n := range snap.Nodes {
		for _, c := range n.Children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, c)
		}
	}
	for _, n := range snap.Nodes {
		if n.Kind == scenegraph.KindReference {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=\"#1f77b4\", constraint=false];\n", n.ID, n.RefID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n scenegraph.NodeRecord, detailed bool) string {
	lines := []string{n.ID}
	if n.Kind == scenegraph.KindReference {
		lines[0] += " → " + n.RefID
	}
	if n.Error != "" {
		return strings.Join(append(lines, n.Error), "\n")
	}
	lines = append(lines, "effective "+fmtBox(n.Effective))
	if !detailed {
		return strings.Join(lines, "\n")
	}
	if n.Kind == scenegraph.KindGeometry {
		lines = append(lines, "box "+fmtBox(n.Box))
		lines = append(lines, fmt.Sprintf("owners %s %s %s %s",
			owner(n.BoxOwners.Left), owner(n.BoxOwners.Top), owner(n.BoxOwners.Width), owner(n.BoxOwners.Height)))
	}
	lines = append(lines, fmt.Sprintf("translation (%s, %s) by %s %s",
		n.Translation.X, n.Translation.Y, owner(n.TranslationOwners.X), owner(n.TranslationOwners.Y)))
	return strings.Join(lines, "\n")
}

func fmtBox(b scenegraph.Box) string {
	return fmt.Sprintf("[%s %s %s×%s]", b.Left, b.Top, b.Width, b.Height)
}

func owner(o scenegraph.Owner) string {
	if o == "" {
		return "-"
	}
	return string(o)
}

func fmtAttrs(n scenegraph.NodeRecord, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Error != "":
		attrs = append(attrs, "color=red", "fontcolor=red")
	case n.Kind == scenegraph.KindReference:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
