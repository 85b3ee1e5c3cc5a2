// Package layout provides the diagram operators and the driver that runs
// them against a scenegraph.
//
// A diagram is a tree of [Element] values: leaves such as [Rect] and [Text],
// containers such as [Row], [Col], [Align], [Distribute] and [Group], and
// [Ref] aliases that let a container arrange an element declared elsewhere.
// [Mount] registers one scenegraph node per element; [Tree.Run] then calls
// every element's Layout in post-order, pass after pass, until a pass
// changes nothing:
//
//	d := &layout.Diagram{Width: 200, Height: 100, Elements: []layout.Element{
//	    &layout.Row{Spacing: 10, Elements: []layout.Element{
//	        &layout.Rect{Base: layout.Base{ID: "a"}, Width: 50, Height: 50},
//	        &layout.Rect{Base: layout.Base{ID: "b"}, Width: 50, Height: 50},
//	    }},
//	}}
//	tree, err := layout.Mount(scenegraph.New(), d)
//	if err != nil { ... }
//	stats, err := tree.Run(ctx, layout.RunOptions{})
//
// Operators never override each other: every write goes through the
// scenegraph's ownership rules, and a child placed by one operator is left
// where it is by the others.
package layout
