// Package io reads and writes diagram documents and scenegraph snapshots.
//
// # Documents
//
// A document is a canvas size plus a tree of elements. It can be written in
// JSON, YAML or TOML; the three are equivalent:
//
//	width = 300
//	height = 120
//
//	[[elements]]
//	type = "row"
//	spacing = 10
//
//	  [[elements.children]]
//	  type = "rect"
//	  id = "a"
//	  width = 50
//	  height = 50
//	  fill = "steelblue"
//
//	  [[elements.children]]
//	  type = "ref"
//	  ref = "label"
//
// Element types are rect, text, group, row, col, align, distribute and ref.
// Positions (x, y) are optional everywhere: an element without one is placed
// by its container.
//
// Use [ImportFile] to read a document by path (the extension selects the
// syntax) or [Parse] / [Read] with an explicit [Syntax]. [Build] validates a
// document and converts it into a [layout.Diagram]; validation failures carry
// the INVALID_DOCUMENT code and the element path.
//
// # Snapshots
//
// [WriteSnapshot] and [ExportSnapshot] write a [scenegraph.Snapshot] as JSON:
// every node with its box, translation, owners and effective box. The format
// is what `bluefish render -f json` and the HTTP API's /snapshot endpoint
// return.
//
// [layout.Diagram]: github.com/matzehuels/bluefish/pkg/layout.Diagram
// [scenegraph.Snapshot]: github.com/matzehuels/bluefish/pkg/scenegraph.Snapshot
package io
