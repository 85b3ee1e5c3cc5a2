// Package scenegraph stores and arbitrates the geometry of diagram elements.
//
// Every element is a node in a tree. A [GeometryNode] holds an intrinsic
// [Box] (left, top, width, height in its parent's frame) and a [Translation]
// applied on top of it. A [ReferenceNode] holds no box: it aliases another
// node anywhere in the tree, plus an optional offset, so that one element can
// be positioned by operators that live in different subtrees.
//
// # Ownership
//
// Each of the six scalars of a geometry node is claimed by the first writer
// that sets it. Later writes by the same writer overwrite; writes by anyone
// else are rejected with OWNERSHIP_CONFLICT and leave the node untouched.
// Rejections are an ordinary part of layout negotiation, see [IsRejection].
//
// # Reading and writing
//
// Layout code reads positions only through [Scenegraph.EffectiveBox], which
// follows references and composes the translations between frames. Writes go
// through [Scenegraph.SetBox], which targets fields directly, or
// [Scenegraph.SetSmartBox], which takes an effective position and decides
// whether to store it in the box or in the translation based on who owns
// what:
//
//	sg := scenegraph.New()
//	_ = sg.CreateGeometryNode("row", "")
//	_ = sg.CreateGeometryNode("a", "row")
//	_ = sg.SetBox("a", scenegraph.Box{Width: scenegraph.Some(50)}, scenegraph.Translation{}, "a")
//	_ = sg.SetSmartBox("a", scenegraph.Box{Left: scenegraph.Some(10)}, "row")
//	eff, _ := sg.EffectiveBox("a") // eff.Left == 10, eff.Width == 50
//
// Unknown quantities are represented by the unset [Scalar] and propagate
// through arithmetic instead of defaulting to zero.
//
// A Scenegraph is a plain value owned by one goroutine; it has no locks.
package scenegraph
