package layout

import (
	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Direction is the axis a Distribute spreads its children along.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

func (d Direction) axis() (axis, bool) {
	switch d {
	case Horizontal:
		return horizontal, true
	case Vertical:
		return vertical, true
	}
	return horizontal, false
}

// Distribute spaces its children evenly along Direction.
//
// With Spacing and Total set, children whose size on that axis is not
// claimed by anyone else are stretched to fill Total. With only Spacing the
// extent follows from the children; with only Total the spacing does. A
// child positioned by another operator stays fixed and the sequence is laid
// out around it.
type Distribute struct {
	Base
	X, Y      scenegraph.Scalar
	Direction Direction
	Spacing   scenegraph.Scalar
	Total     scenegraph.Scalar
	Elements  []Element
}

func (d *Distribute) Children() []Element { return d.Elements }

func (d *Distribute) Layout(c *Context) error {
	main, ok := d.Direction.axis()
	if !ok {
		return errors.New(errors.ErrCodeInvalidInput, "distribute %s: unknown direction %q", c.ID(), d.Direction)
	}
	ids := c.Children()
	if len(ids) == 0 {
		return nil
	}

	var stretch []string
	var occupied float64
	for _, id := range ids {
		g, err := c.Node(id)
		if err != nil {
			return err
		}
		if owner := main.sizeOwner(g.BoxOwners); owner == "" || owner == c.writer() {
			stretch = append(stretch, id)
			continue
		}
		occupied += main.size(g.Box).Or(0)
	}

	gaps := float64(len(ids) - 1)
	var spacing, total float64
	switch {
	case d.Spacing.Valid() && d.Total.Valid():
		spacing, total = d.Spacing.Or(0), d.Total.Or(0)
		if len(stretch) > 0 {
			share := (total - occupied - spacing*gaps) / float64(len(stretch))
			for _, id := range stretch {
				if err := c.SetSmartBox(id, main.sized(scenegraph.Some(share))); err != nil {
					return err
				}
			}
		}
	case d.Spacing.Valid():
		if len(stretch) > 0 {
			c.Logger().Error("distribute cannot determine its extent: not every child has a size",
				"element", c.ID(), "axis", main)
			return nil
		}
		spacing = d.Spacing.Or(0)
		total = occupied + spacing*gaps
	case d.Total.Valid():
		if len(stretch) > 0 {
			c.Logger().Error("distribute cannot determine its spacing: not every child has a size",
				"element", c.ID(), "axis", main)
			return nil
		}
		total = d.Total.Or(0)
		if gaps > 0 {
			spacing = (total - occupied) / gaps
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "distribute %s needs spacing, total or both", c.ID())
	}

	boxes := make([]scenegraph.Box, len(ids))
	fixed := -1
	for i, id := range ids {
		b, err := c.Box(id)
		if err != nil {
			return err
		}
		if !main.size(b).Valid() {
			c.Logger().Debug("layout deferred: child size unknown", "element", c.ID(), "child", id)
			return nil
		}
		boxes[i] = b
		if fixed < 0 {
			movable, err := c.canMove(id, main)
			if err != nil {
				return err
			}
			if !movable {
				fixed = i
			}
		}
	}

	start := 0.0
	if fixed >= 0 {
		p, ok := main.pos(boxes[fixed]).Get()
		if !ok {
			return nil
		}
		start = p - spacing*float64(fixed)
		for _, b := range boxes[:fixed] {
			start -= main.size(b).Or(0)
		}
	}

	p := start
	for i, id := range ids {
		if i != fixed {
			if err := c.SetSmartBox(id, main.at(scenegraph.Some(p))); err != nil {
				return err
			}
		}
		p += main.size(boxes[i]).Or(0) + spacing
	}

	b, err := bounds(c, ids)
	if err != nil {
		return err
	}
	if main == vertical {
		b.Top, b.Height = scenegraph.Some(start), scenegraph.Some(total)
	} else {
		b.Left, b.Width = scenegraph.Some(start), scenegraph.Some(total)
	}
	return frame(c, b, d.X, d.Y)
}
