package pipeline

import (
	"github.com/matzehuels/bluefish/pkg/io"
	"github.com/matzehuels/bluefish/pkg/layout"
)

// Parse decodes the document in opts and builds its element tree.
func Parse(opts Options) (*io.Document, *layout.Diagram, error) {
	doc, err := io.Parse(opts.Source, opts.Syntax)
	if err != nil {
		return nil, nil, err
	}
	d, err := io.Build(doc)
	if err != nil {
		return doc, nil, err
	}
	return doc, d, nil
}
