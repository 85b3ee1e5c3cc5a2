// Package pkg provides the core libraries for Bluefish diagram layout.
//
// # Overview
//
// Bluefish lays out declarative diagrams. A diagram is a tree of elements
// (shapes, groups and layout relations such as rows, columns and alignments)
// whose positions are resolved cooperatively: each relation claims the box
// fields it decides, and a field once claimed by one relation cannot be
// overwritten by another. References let an element take part in a relation
// outside its own subtree without being moved there.
//
// # Architecture
//
// The typical data flow:
//
//	Document (JSON / YAML / TOML)
//	         ↓
//	    [io] package (decode, validate, build elements)
//	         ↓
//	    [layout] package (mount on a scenegraph, run to a fixpoint)
//	         ↓
//	    [scenegraph] package (boxes, translations, ownership, references)
//	         ↓
//	    [render] packages (SVG, PNG, PDF, JSON snapshot, Graphviz)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/bluefish/pkg/io"
//	    "github.com/matzehuels/bluefish/pkg/layout"
//	    "github.com/matzehuels/bluefish/pkg/render/svg"
//	    "github.com/matzehuels/bluefish/pkg/scenegraph"
//	)
//
//	doc, _, _ := io.ImportFile("planets.toml")
//	d, _ := io.Build(doc)
//
//	tree, _ := layout.Mount(scenegraph.New(), d)
//	tree.Run(context.Background(), layout.RunOptions{})
//
//	out := svg.RenderSVG(tree)
//
// # Main Packages
//
// [scenegraph] - The registry of geometry and reference nodes. Every box and
// translation field is optional and carries an owner; writes by a different
// owner are rejected. Effective boxes are resolved through reference chains
// and the translations between a node and its ancestors.
//
// [layout] - Elements (Rect, Text, Group, Row, Col, Align, Distribute, Ref)
// and the pass loop that runs them until the scenegraph stops changing.
//
// [io] - Document decoding and validation, snapshot export.
//
// [render] - Output formats. [render/svg] draws the laid-out tree,
// [render/dot] draws the scenegraph itself with Graphviz, and the package
// root converts SVG to PDF and PNG.
//
// [pipeline] - Parse → layout → render with artifact caching, shared by the
// CLI and the HTTP API.
//
// [cache] - File, Redis and no-op caches for rendered artifacts.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for layout, pipeline, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/scenegraph/...         # Specific package
//	go test -tags integration ./pkg/...  # Include Redis tests
//
// [scenegraph]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/scenegraph
// [layout]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/layout
// [io]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/render/svg
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/render/dot
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bluefish/pkg/observability
package pkg
