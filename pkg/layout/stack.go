package layout

import (
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Row places its children left to right, Spacing apart, and aligns them
// vertically (top by default).
type Row struct {
	Base
	X, Y      scenegraph.Scalar
	Spacing   float64
	Alignment VerticalAlignment
	Elements  []Element
}

func (r *Row) Children() []Element { return r.Elements }

func (r *Row) Layout(c *Context) error {
	cross := r.Alignment.anchor()
	if cross == anchorNone {
		cross = anchorStart
	}
	return stack(c, horizontal, r.Spacing, cross, r.X, r.Y)
}

// Col places its children top to bottom, Spacing apart, and aligns them
// horizontally (left by default).
type Col struct {
	Base
	X, Y      scenegraph.Scalar
	Spacing   float64
	Alignment HorizontalAlignment
	Elements  []Element
}

func (k *Col) Children() []Element { return k.Elements }

func (k *Col) Layout(c *Context) error {
	cross := k.Alignment.anchor()
	if cross == anchorNone {
		cross = anchorStart
	}
	return stack(c, vertical, k.Spacing, cross, k.X, k.Y)
}

// stack lays children out along main and aligns them on the cross axis.
//
// A child already positioned by someone else on the main axis is never
// moved; the first such child anchors the sequence and the others are
// placed around it. Children of unknown size defer placement to a later
// pass.
func stack(c *Context, main axis, spacing float64, cross anchor, x, y scenegraph.Scalar) error {
	ids := c.Children()
	if err := spread(c, ids, main, spacing); err != nil {
		return err
	}
	if err := alignAxis(c, ids, main.cross(), cross); err != nil {
		return err
	}
	b, err := bounds(c, ids)
	if err != nil {
		return err
	}
	return frame(c, b, x, y)
}

func spread(c *Context, ids []string, main axis, spacing float64) error {
	sizes := make([]float64, len(ids))
	movable := make([]bool, len(ids))
	fixed := -1
	var fixedPos scenegraph.Scalar
	for i, id := range ids {
		b, err := c.Box(id)
		if err != nil {
			return err
		}
		s, ok := main.size(b).Get()
		if !ok {
			c.Logger().Debug("layout deferred: child size unknown", "element", c.ID(), "child", id)
			return nil
		}
		sizes[i] = s
		if movable[i], err = c.canMove(id, main); err != nil {
			return err
		}
		if !movable[i] && fixed < 0 {
			fixed, fixedPos = i, main.pos(b)
		}
	}

	start := 0.0
	if fixed >= 0 {
		p, ok := fixedPos.Get()
		if !ok {
			return nil
		}
		start = p - spacing*float64(fixed)
		for _, s := range sizes[:fixed] {
			start -= s
		}
	}

	p := start
	for i, id := range ids {
		if movable[i] {
			if err := c.SetSmartBox(id, main.at(scenegraph.Some(p))); err != nil {
				return err
			}
		}
		p += sizes[i] + spacing
	}
	return nil
}
