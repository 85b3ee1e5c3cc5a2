package layout

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/observability"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// DefaultMaxPasses bounds a layout run when RunOptions.MaxPasses is zero.
const DefaultMaxPasses = 32

// Tree is an element tree mounted onto a scenegraph.
type Tree struct {
	root  Element
	sg    *scenegraph.Scenegraph
	order []mounted // post-order: children before parents
	byID  map[string]Element
}

type mounted struct {
	el       Element
	children []string
}

// Mount creates one scenegraph node per element in pre-order. Elements
// without an id are given a random one. A duplicate id or a structural error
// aborts mounting.
func Mount(sg *scenegraph.Scenegraph, root Element) (*Tree, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to mount")
	}
	t := &Tree{root: root, sg: sg, byID: make(map[string]Element)}
	if err := t.mount(root, ""); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) mount(el Element, parent string) error {
	id := el.Key()
	if id == "" {
		ks, ok := el.(interface{ SetKey(string) })
		if !ok {
			return errors.New(errors.ErrCodeInvalidElementID, "%T has no id", el)
		}
		id = uuid.NewString()
		ks.SetKey(id)
	}

	var err error
	if ref, ok := el.(Referencer); ok {
		err = t.sg.CreateReferenceNode(id, ref.Target(), parent)
	} else {
		err = t.sg.CreateGeometryNode(id, parent)
	}
	if err != nil {
		return fmt.Errorf("mount %s: %w", id, err)
	}
	t.byID[id] = el

	children := el.Children()
	ids := make([]string, 0, len(children))
	for _, c := range children {
		if err := t.mount(c, id); err != nil {
			return err
		}
		ids = append(ids, c.Key())
	}
	t.order = append(t.order, mounted{el: el, children: ids})
	return nil
}

// Root returns the mounted root element.
func (t *Tree) Root() Element { return t.root }

// Scenegraph returns the scenegraph the tree is mounted on.
func (t *Tree) Scenegraph() *scenegraph.Scenegraph { return t.sg }

// Lookup returns the element mounted under id.
func (t *Tree) Lookup(id string) (Element, bool) {
	el, ok := t.byID[id]
	return el, ok
}

// Len returns the number of mounted elements.
func (t *Tree) Len() int { return len(t.order) }

// RunOptions configures a layout run.
type RunOptions struct {
	MaxPasses int
	Logger    *log.Logger
}

// Stats summarizes a layout run.
type Stats struct {
	Passes     int           `json:"passes"`
	Rejections int           `json:"rejections"`
	Converged  bool          `json:"converged"`
	Duration   time.Duration `json:"duration"`
}

// Run lays the tree out by repeating passes until one pass leaves the
// scenegraph unchanged. Each pass runs every element's Layout in post-order,
// so a container sees its children's sizes and may then reposition them.
//
// Run fails with NON_CONVERGENT if MaxPasses passes all changed something.
// The context is checked between passes.
func (t *Tree) Run(ctx context.Context, opts RunOptions) (Stats, error) {
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	hooks := observability.Layout()

	start := time.Now()
	rejected := t.sg.Rejections()
	stats := Stats{}
	finish := func(err error) (Stats, error) {
		stats.Rejections = t.sg.Rejections() - rejected
		stats.Duration = time.Since(start)
		hooks.OnConverged(ctx, stats.Passes, stats.Duration, err)
		return stats, err
	}

	for stats.Passes < maxPasses {
		if err := ctx.Err(); err != nil {
			return finish(errors.Wrap(errors.ErrCodeTimeout, err, "layout interrupted after %d passes", stats.Passes))
		}
		before := t.sg.Version()
		if err := t.pass(ctx, logger); err != nil {
			return finish(err)
		}
		stats.Passes++
		changed := t.sg.Version() != before
		hooks.OnPass(ctx, stats.Passes, changed)
		logger.Debug("layout pass", "pass", stats.Passes, "changed", changed)
		if !changed {
			stats.Converged = true
			return finish(nil)
		}
	}
	return finish(errors.New(errors.ErrCodeNonConvergent, "layout did not settle after %d passes", maxPasses))
}

func (t *Tree) pass(ctx context.Context, logger *log.Logger) error {
	for _, m := range t.order {
		c := &Context{ctx: ctx, sg: t.sg, id: m.el.Key(), children: m.children, logger: logger}
		if err := m.el.Layout(c); err != nil {
			return fmt.Errorf("layout %s: %w", m.el.Key(), err)
		}
	}
	return nil
}
