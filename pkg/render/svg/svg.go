package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/bluefish/pkg/layout"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

const boundsStroke = "#e4572e"

type Option func(*renderer)

type renderer struct {
	sg          *scenegraph.Scenegraph
	background  string
	bounds      bool
	strokeWidth float64
}

// WithBackground overrides the diagram's background color.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// WithBounds outlines every container's box with a dashed line.
func WithBounds() Option { return func(r *renderer) { r.bounds = true } }

// WithStrokeWidth sets the stroke width of rects that have a stroke but no
// width of their own.
func WithStrokeWidth(w float64) Option { return func(r *renderer) { r.strokeWidth = w } }

// RenderSVG draws a laid-out tree. Containers become groups translated by
// their own translation, so every leaf is drawn at its box in its parent's
// frame. Unset coordinates are drawn as 0; references draw nothing.
func RenderSVG(t *layout.Tree, opts ...Option) []byte {
	r := renderer{sg: t.Scenegraph(), strokeWidth: 1}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := r.frame(t.Root())
	background := r.background
	if d, ok := t.Root().(*layout.Diagram); ok && background == "" {
		background = d.Background
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(w), num(h), w, h)
	if background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escape(background))
	}
	r.element(&buf, t.Root(), 1)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) frame(root layout.Element) (w, h float64) {
	if d, ok := root.(*layout.Diagram); ok {
		return d.Width, d.Height
	}
	b, err := r.sg.EffectiveBox(root.Key())
	if err != nil {
		return 0, 0
	}
	return b.Right().Or(0), b.Bottom().Or(0)
}

func (r *renderer) element(buf *bytes.Buffer, el layout.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	switch e := el.(type) {
	case *layout.Rect:
		r.rect(buf, indent, e)
	case *layout.Text:
		r.text(buf, indent, e)
	case layout.Referencer:
	default:
		r.group(buf, indent, el, depth)
	}
}

func (r *renderer) box(id string) scenegraph.Box {
	b, _ := r.sg.EffectiveBox(id)
	return b
}

func (r *renderer) rect(buf *bytes.Buffer, indent string, e *layout.Rect) {
	b := r.box(e.Key())
	fmt.Fprintf(buf, `%s<rect id="%s" x="%s" y="%s" width="%s" height="%s"`,
		indent, escape(e.Key()), num(b.Left.Or(0)), num(b.Top.Or(0)), num(b.Width.Or(0)), num(b.Height.Or(0)))
	if e.Rx > 0 {
		fmt.Fprintf(buf, ` rx="%s"`, num(e.Rx))
	}
	if e.Fill != "" {
		fmt.Fprintf(buf, ` fill="%s"`, escape(e.Fill))
	}
	if e.Stroke != "" {
		sw := e.StrokeWidth
		if sw <= 0 {
			sw = r.strokeWidth
		}
		fmt.Fprintf(buf, ` stroke="%s" stroke-width="%s"`, escape(e.Stroke), num(sw))
	}
	buf.WriteString("/>\n")
}

func (r *renderer) text(buf *bytes.Buffer, indent string, e *layout.Text) {
	b := r.box(e.Key())
	fs := e.FontSize
	if fs <= 0 {
		fs = layout.DefaultFontSize
	}
	y := b.Top.Or(0) + b.Height.Or(0)/2
	fmt.Fprintf(buf, `%s<text id="%s" x="%s" y="%s" font-size="%s" dominant-baseline="central"`,
		indent, escape(e.Key()), num(b.Left.Or(0)), num(y), num(fs))
	if e.FontFamily != "" {
		fmt.Fprintf(buf, ` font-family="%s"`, escape(e.FontFamily))
	}
	if e.Fill != "" {
		fmt.Fprintf(buf, ` fill="%s"`, escape(e.Fill))
	}
	fmt.Fprintf(buf, ">%s</text>\n", escape(e.Content))
}

func (r *renderer) group(buf *bytes.Buffer, indent string, el layout.Element, depth int) {
	id := el.Key()
	if r.bounds {
		b := r.box(id)
		fmt.Fprintf(buf, `%s<rect class="bounds" x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-dasharray="4 2"/>`+"\n",
			indent, num(b.Left.Or(0)), num(b.Top.Or(0)), num(b.Width.Or(0)), num(b.Height.Or(0)), boundsStroke)
	}
	tr, _, _ := r.sg.OwnTranslation(id)
	fmt.Fprintf(buf, `%s<g id="%s" transform="translate(%s, %s)">`+"\n", indent, escape(id), num(tr.X.Or(0)), num(tr.Y.Or(0)))
	for _, c := range el.Children() {
		r.element(buf, c, depth+1)
	}
	fmt.Fprintf(buf, "%s</g>\n", indent)
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
