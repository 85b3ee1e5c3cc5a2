package layout

import (
	"unicode/utf8"

	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Text metrics used to size text elements without a font rasterizer.
const (
	textCharWidth   = 0.55
	textLineHeight  = 1.2
	DefaultFontSize = 14.0
)

// Diagram is the root element. It pins itself to a fixed frame at the
// origin; everything else is laid out inside that frame.
type Diagram struct {
	Base
	Width, Height float64
	Background    string
	Elements      []Element
}

func (d *Diagram) Children() []Element { return d.Elements }

func (d *Diagram) Layout(c *Context) error {
	return c.SetOwn(scenegraph.Box{
		Left:   scenegraph.Some(0),
		Top:    scenegraph.Some(0),
		Width:  scenegraph.Some(d.Width),
		Height: scenegraph.Some(d.Height),
	}, scenegraph.Zero)
}

// Rect is a rectangle of fixed size. X and Y, when set, pin its position.
type Rect struct {
	Base
	X, Y          scenegraph.Scalar
	Width, Height float64
	Fill          string
	Stroke        string
	StrokeWidth   float64
	Rx            float64
}

func (r *Rect) Layout(c *Context) error {
	return place(c, r.X, r.Y, r.Width, r.Height)
}

// Text is a single line of text. Its box is estimated from the font size.
type Text struct {
	Base
	X, Y       scenegraph.Scalar
	Content    string
	FontSize   float64
	FontFamily string
	Fill       string
}

// Size returns the estimated width and height of the text.
func (t *Text) Size() (w, h float64) {
	fs := t.fontSize()
	return float64(utf8.RuneCountInString(t.Content)) * fs * textCharWidth, fs * textLineHeight
}

func (t *Text) fontSize() float64 {
	if t.FontSize > 0 {
		return t.FontSize
	}
	return DefaultFontSize
}

func (t *Text) Layout(c *Context) error {
	w, h := t.Size()
	return place(c, t.X, t.Y, w, h)
}

// place sizes a leaf and, if a position was given, pins it there.
func place(c *Context, x, y scenegraph.Scalar, w, h float64) error {
	size := scenegraph.Box{Width: scenegraph.Some(w), Height: scenegraph.Some(h)}
	if err := c.SetOwn(size, scenegraph.Translation{}); err != nil {
		return err
	}
	if !x.Valid() && !y.Valid() {
		return nil
	}
	return c.SetSmartBox(c.ID(), scenegraph.Box{Left: x, Top: y})
}

// Ref aliases the element with id To. Operators that receive a Ref as a
// child read and move the aliased element, while the Ref stays in the
// operator's subtree. Offset shifts the alias relative to its target.
type Ref struct {
	Base
	To     string
	Offset scenegraph.Translation
}

func (r *Ref) Target() string { return r.To }

func (r *Ref) Layout(c *Context) error {
	if !r.Offset.X.Valid() && !r.Offset.Y.Valid() {
		return nil
	}
	return c.SetReferenceOffset(c.ID(), r.Offset)
}
