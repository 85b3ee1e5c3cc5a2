// Package dot draws a scenegraph as a Graphviz graph.
//
// It is a debugging aid: each node shows its effective box, and with
// [Options].Detailed also its intrinsic box, translation and the writer
// owning every field. References point at their targets with dashed edges.
//
//	dot := dot.ToDOT(sg.Snapshot(), dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, dot)
//
// Graphviz is linked in through github.com/goccy/go-graphviz, so no
// external binary is needed for SVG. PDF and PNG go through rsvg-convert
// like the diagram renderer.
package dot
