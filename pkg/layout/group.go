package layout

import (
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Group gathers elements without moving them. Its box is the union of its
// children's boxes; X and Y, when set, place that union.
type Group struct {
	Base
	X, Y     scenegraph.Scalar
	Elements []Element
}

func (g *Group) Children() []Element { return g.Elements }

func (g *Group) Layout(c *Context) error {
	b, err := bounds(c, c.Children())
	if err != nil {
		return err
	}
	return frame(c, b, g.X, g.Y)
}

// bounds is the union of the effective boxes of ids. Children whose position
// is still undetermined do not contribute on that axis; an axis no child
// contributes to stays unset.
func bounds(c *Context, ids []string) (scenegraph.Box, error) {
	var out scenegraph.Box
	for _, ax := range []axis{horizontal, vertical} {
		var lo, hi float64
		seen := false
		for _, id := range ids {
			b, err := c.Box(id)
			if err != nil {
				return scenegraph.Box{}, err
			}
			start, ok1 := ax.pos(b).Get()
			end, ok2 := ax.pos(b).Add(ax.size(b)).Get()
			if !ok1 || !ok2 {
				continue
			}
			if !seen {
				lo, hi, seen = start, end, true
				continue
			}
			lo, hi = min(lo, start), max(hi, end)
		}
		if !seen {
			continue
		}
		if ax == vertical {
			out.Top, out.Height = scenegraph.Some(lo), scenegraph.Some(hi-lo)
		} else {
			out.Left, out.Width = scenegraph.Some(lo), scenegraph.Some(hi-lo)
		}
	}
	return out, nil
}

// frame records a container's box and, when x or y is set, the translation
// that puts the box's effective left/top there. An axis without a position
// gets an unclaimed zero translation so that the container's parent may
// still move it.
func frame(c *Context, b scenegraph.Box, x, y scenegraph.Scalar) error {
	tr := scenegraph.Translation{X: x.Sub(b.Left), Y: y.Sub(b.Top)}
	if err := c.SetOwn(b, tr); err != nil {
		return err
	}
	if x.Valid() && y.Valid() {
		return nil
	}
	return c.settle()
}
