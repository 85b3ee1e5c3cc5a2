package layout

import (
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Align lines its children up on one or both axes, e.g. Center stacks them
// on a common center point. A child already positioned by another operator
// stays put and the others are aligned to it.
type Align struct {
	Base
	X, Y      scenegraph.Scalar
	Alignment Alignment
	Elements  []Element
}

func (a *Align) Children() []Element { return a.Elements }

func (a *Align) Layout(c *Context) error {
	ids := c.Children()
	v, h := a.Alignment.Split()
	if err := alignAxis(c, ids, vertical, v.anchor()); err != nil {
		return err
	}
	if err := alignAxis(c, ids, horizontal, h.anchor()); err != nil {
		return err
	}
	b, err := bounds(c, ids)
	if err != nil {
		return err
	}
	return frame(c, b, a.X, a.Y)
}

// alignAxis moves every child it may move so that its anchor on ax matches
// the reference value: the anchor of the first child positioned by someone
// else, or 0 if there is none.
func alignAxis(c *Context, ids []string, ax axis, a anchor) error {
	if a == anchorNone {
		return nil
	}

	value := scenegraph.Some(0)
	for _, id := range ids {
		own, err := c.movedBySelf(id, ax)
		if err != nil {
			return err
		}
		if own {
			continue
		}
		b, err := c.Box(id)
		if err != nil {
			return err
		}
		if v := a.value(ax.pos(b), ax.size(b)); v.Valid() {
			value = v
			break
		}
	}

	for _, id := range ids {
		ok, err := c.canMove(id, ax)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		b, err := c.Box(id)
		if err != nil {
			return err
		}
		pos := a.position(value, ax.size(b))
		if !pos.Valid() {
			continue
		}
		if err := c.SetSmartBox(id, ax.at(pos)); err != nil {
			return err
		}
	}
	return nil
}
