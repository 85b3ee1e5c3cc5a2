// Package svg renders a laid-out element tree as SVG.
//
// The output mirrors the element tree: the root and every container become
// a <g> translated by the container's own translation, and rects and texts
// are drawn at their effective box, which is relative to the enclosing
// group. References are not drawn; they only steer layout.
//
//	tree, _ := layout.Mount(sg, diagram)
//	tree.Run(ctx, layout.RunOptions{})
//	out := svg.RenderSVG(tree, svg.WithBounds())
//
// Text has no font metrics behind it. Its box comes from the layout
// package's estimate and the text is drawn vertically centered in that box.
package svg
