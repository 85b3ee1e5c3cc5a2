package layout

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Context is an element's only channel to the scenegraph during Layout.
// Writes are made on behalf of the element being laid out.
//
// Rejected writes (ownership conflicts, NaN) are part of normal negotiation
// between operators: the scenegraph logs them and the Context reports
// success. Only hard failures such as reference cycles are returned.
type Context struct {
	ctx      context.Context
	sg       *scenegraph.Scenegraph
	id       string
	children []string
	logger   *log.Logger
}

// Context returns the context of the layout run.
func (c *Context) Context() context.Context { return c.ctx }

// ID returns the id of the element being laid out.
func (c *Context) ID() string { return c.id }

// Children returns the ids of the element's children.
func (c *Context) Children() []string { return slices.Clone(c.children) }

// Logger returns the run's logger.
func (c *Context) Logger() *log.Logger { return c.logger }

func (c *Context) writer() scenegraph.Owner { return scenegraph.Owner(c.id) }

// Box returns the effective box of id.
func (c *Context) Box(id string) (scenegraph.Box, error) {
	return c.sg.EffectiveBox(id)
}

// Node returns the geometry node id resolves to, for inspecting ownership.
func (c *Context) Node(id string) (scenegraph.GeometryNode, error) {
	g, _, err := c.sg.Resolve(id)
	return g, err
}

// canMove reports whether the element being laid out may still move id along
// ax: the translation there is unclaimed or already its own.
func (c *Context) canMove(id string, ax axis) (bool, error) {
	g, err := c.Node(id)
	if err != nil {
		return false, err
	}
	owner := ax.translationOwner(g.TranslationOwners)
	return owner == "" || owner == c.writer(), nil
}

// movedBySelf reports whether the element being laid out already owns id's
// translation along ax.
func (c *Context) movedBySelf(id string, ax axis) (bool, error) {
	g, err := c.Node(id)
	if err != nil {
		return false, err
	}
	return ax.translationOwner(g.TranslationOwners) == c.writer(), nil
}

// SetBox writes box and translation fields of id.
func (c *Context) SetBox(id string, box scenegraph.Box, tr scenegraph.Translation) error {
	return soft(c.sg.SetBox(id, box, tr, c.writer()))
}

// SetSmartBox moves or resizes id in effective coordinates.
func (c *Context) SetSmartBox(id string, box scenegraph.Box) error {
	return soft(c.sg.SetSmartBox(id, box, c.writer()))
}

// SetOwn writes the element's own box and translation.
func (c *Context) SetOwn(box scenegraph.Box, tr scenegraph.Translation) error {
	return c.SetBox(c.id, box, tr)
}

// SetReferenceOffset writes the offset of a reference element.
func (c *Context) SetReferenceOffset(id string, tr scenegraph.Translation) error {
	return soft(c.sg.SetReferenceOffset(id, tr, c.writer()))
}

// settle fills the element's undetermined translation with unclaimed zeros.
func (c *Context) settle() error {
	return c.sg.SettleTranslation(c.id)
}

func soft(err error) error {
	if err == nil || scenegraph.IsRejection(err) {
		return nil
	}
	return err
}
