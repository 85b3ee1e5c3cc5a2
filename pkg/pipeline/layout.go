package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/bluefish/pkg/layout"
	"github.com/matzehuels/bluefish/pkg/observability"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Layout mounts d on a new scenegraph and runs it until it settles.
//
// A run that does not settle within opts.MaxPasses returns the tree along
// with the NON_CONVERGENT error, so callers can still inspect it.
func Layout(ctx context.Context, d *layout.Diagram, opts Options) (*layout.Tree, layout.Stats, error) {
	hooks := observability.Pipeline()
	sg := scenegraph.New(scenegraph.WithLogger(opts.Logger))

	tree, err := layout.Mount(sg, d)
	if err != nil {
		return nil, layout.Stats{}, err
	}

	hooks.OnLayoutStart(ctx, tree.Len())
	start := time.Now()
	stats, err := tree.Run(ctx, layout.RunOptions{MaxPasses: opts.MaxPasses, Logger: opts.Logger})
	hooks.OnLayoutComplete(ctx, tree.Len(), time.Since(start), err)
	return tree, stats, err
}
