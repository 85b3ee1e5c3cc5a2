package layout

import (
	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Element is one node of a diagram description. Each element owns a
// scenegraph node of the same id and computes its geometry in Layout.
type Element interface {
	// Key is the element's scenegraph id and its writer identity.
	Key() string
	// Children returns the nested elements in document order.
	Children() []Element
	// Layout reads and writes geometry through c. It is called once per
	// pass, after the element's children have been laid out.
	Layout(c *Context) error
}

// Referencer is implemented by elements that alias another element instead
// of holding geometry of their own.
type Referencer interface {
	Element
	Target() string
}

// Base carries the id shared by every element.
type Base struct {
	ID string
}

func (b *Base) Key() string { return b.ID }

// SetKey assigns the id. Mount uses it to name anonymous elements.
func (b *Base) SetKey(id string) { b.ID = id }

// Children returns nil; containers override it.
func (b *Base) Children() []Element { return nil }

// Alignment names where children are aligned, either on both axes
// (TopLeft ... BottomRight) or on one (Top, Left, CenterHorizontally ...).
type Alignment string

const (
	TopLeft      Alignment = "topLeft"
	TopCenter    Alignment = "topCenter"
	TopRight     Alignment = "topRight"
	CenterLeft   Alignment = "centerLeft"
	Center       Alignment = "center"
	CenterRight  Alignment = "centerRight"
	BottomLeft   Alignment = "bottomLeft"
	BottomCenter Alignment = "bottomCenter"
	BottomRight  Alignment = "bottomRight"

	Top                Alignment = "top"
	CenterVertically   Alignment = "centerVertically"
	Bottom             Alignment = "bottom"
	Left               Alignment = "left"
	CenterHorizontally Alignment = "centerHorizontally"
	Right              Alignment = "right"
)

// VerticalAlignment is the vertical half of an Alignment.
type VerticalAlignment string

const (
	AlignTop    VerticalAlignment = "top"
	AlignMiddle VerticalAlignment = "center"
	AlignBottom VerticalAlignment = "bottom"
)

// HorizontalAlignment is the horizontal half of an Alignment.
type HorizontalAlignment string

const (
	AlignLeft   HorizontalAlignment = "left"
	AlignCenter HorizontalAlignment = "center"
	AlignRight  HorizontalAlignment = "right"
)

// Split returns the vertical and horizontal components of a. Either is empty
// when a does not constrain that axis.
func (a Alignment) Split() (VerticalAlignment, HorizontalAlignment) {
	var v VerticalAlignment
	var h HorizontalAlignment
	switch a {
	case Top, TopLeft, TopCenter, TopRight:
		v = AlignTop
	case CenterVertically, CenterLeft, Center, CenterRight:
		v = AlignMiddle
	case Bottom, BottomLeft, BottomCenter, BottomRight:
		v = AlignBottom
	}
	switch a {
	case Left, TopLeft, CenterLeft, BottomLeft:
		h = AlignLeft
	case CenterHorizontally, TopCenter, Center, BottomCenter:
		h = AlignCenter
	case Right, TopRight, CenterRight, BottomRight:
		h = AlignRight
	}
	return v, h
}

// ParseAlignment validates an alignment name.
func ParseAlignment(s string) (Alignment, error) {
	a := Alignment(s)
	if v, h := a.Split(); v == "" && h == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown alignment %q", s)
	}
	return a, nil
}

// anchor is a position along one axis: start, middle or end of a box.
type anchor int

const (
	anchorNone anchor = iota
	anchorStart
	anchorMiddle
	anchorEnd
)

func (v VerticalAlignment) anchor() anchor {
	switch v {
	case AlignTop:
		return anchorStart
	case AlignMiddle:
		return anchorMiddle
	case AlignBottom:
		return anchorEnd
	}
	return anchorNone
}

func (h HorizontalAlignment) anchor() anchor {
	switch h {
	case AlignLeft:
		return anchorStart
	case AlignCenter:
		return anchorMiddle
	case AlignRight:
		return anchorEnd
	}
	return anchorNone
}

// value is the coordinate of the anchor on a box spanning [pos, pos+size].
func (a anchor) value(pos, size scenegraph.Scalar) scenegraph.Scalar {
	switch a {
	case anchorStart:
		return pos
	case anchorMiddle:
		if s, ok := size.Get(); ok {
			return pos.Add(scenegraph.Some(s / 2))
		}
	case anchorEnd:
		return pos.Add(size)
	}
	return scenegraph.Unset
}

// position inverts value: the box start that puts the anchor at v.
func (a anchor) position(v, size scenegraph.Scalar) scenegraph.Scalar {
	switch a {
	case anchorStart:
		return v
	case anchorMiddle:
		if s, ok := size.Get(); ok {
			return v.Sub(scenegraph.Some(s / 2))
		}
	case anchorEnd:
		return v.Sub(size)
	}
	return scenegraph.Unset
}

// axis selects the horizontal or vertical components of boxes and owners.
type axis int

const (
	horizontal axis = iota
	vertical
)

func (a axis) String() string {
	if a == vertical {
		return "vertical"
	}
	return "horizontal"
}

func (a axis) cross() axis { return 1 - a }

func (a axis) pos(b scenegraph.Box) scenegraph.Scalar {
	if a == vertical {
		return b.Top
	}
	return b.Left
}

func (a axis) size(b scenegraph.Box) scenegraph.Scalar {
	if a == vertical {
		return b.Height
	}
	return b.Width
}

// at is a request placing a box's start at v on this axis.
func (a axis) at(v scenegraph.Scalar) scenegraph.Box {
	if a == vertical {
		return scenegraph.Box{Top: v}
	}
	return scenegraph.Box{Left: v}
}

// sized is a request setting a box's extent on this axis.
func (a axis) sized(v scenegraph.Scalar) scenegraph.Box {
	if a == vertical {
		return scenegraph.Box{Height: v}
	}
	return scenegraph.Box{Width: v}
}

func (a axis) translationOwner(o scenegraph.TranslationOwners) scenegraph.Owner {
	if a == vertical {
		return o.Y
	}
	return o.X
}

func (a axis) sizeOwner(o scenegraph.BoxOwners) scenegraph.Owner {
	if a == vertical {
		return o.Height
	}
	return o.Width
}
