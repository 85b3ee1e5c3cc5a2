package scenegraph

// Box is the intrinsic, parent-local geometry of a geometry node.
// Any field may be unset ("not yet determined").
type Box struct {
	Left   Scalar `json:"left"`
	Top    Scalar `json:"top"`
	Width  Scalar `json:"width"`
	Height Scalar `json:"height"`
}

// Right returns Left+Width.
func (b Box) Right() Scalar { return b.Left.Add(b.Width) }

// Bottom returns Top+Height.
func (b Box) Bottom() Scalar { return b.Top.Add(b.Height) }

func (b Box) hasNaN() bool {
	return b.Left.IsNaN() || b.Top.IsNaN() || b.Width.IsNaN() || b.Height.IsNaN()
}

// Translation is an offset applied on top of a Box to produce the effective
// position. It is kept apart from Box so that one writer can move an element
// while another sizes it.
type Translation struct {
	X Scalar `json:"x"`
	Y Scalar `json:"y"`
}

// Zero is the fully determined identity translation.
var Zero = Translation{X: Some(0), Y: Some(0)}

// Add composes two translations component-wise; unset propagates.
func (t Translation) Add(o Translation) Translation {
	return Translation{X: t.X.Add(o.X), Y: t.Y.Add(o.Y)}
}

// Sub returns t-o component-wise; unset propagates.
func (t Translation) Sub(o Translation) Translation {
	return Translation{X: t.X.Sub(o.X), Y: t.Y.Sub(o.Y)}
}

func (t Translation) hasNaN() bool { return t.X.IsNaN() || t.Y.IsNaN() }

// Owner identifies the writer (usually a layout operator instance) that has
// claimed a geometric field. The empty Owner means unclaimed.
type Owner string

// BoxOwners records the owner of each Box field.
type BoxOwners struct {
	Left   Owner `json:"left,omitempty"`
	Top    Owner `json:"top,omitempty"`
	Width  Owner `json:"width,omitempty"`
	Height Owner `json:"height,omitempty"`
}

// TranslationOwners records the owner of each Translation component.
type TranslationOwners struct {
	X Owner `json:"x,omitempty"`
	Y Owner `json:"y,omitempty"`
}

// Field names used in diagnostics and hooks.
const (
	FieldLeft         = "box.left"
	FieldTop          = "box.top"
	FieldWidth        = "box.width"
	FieldHeight       = "box.height"
	FieldTranslationX = "translation.x"
	FieldTranslationY = "translation.y"
)

// slot is one ownable scalar of a node: its name, a pointer to the stored
// value and a pointer to its owner.
type slot struct {
	name  string
	value *Scalar
	owner *Owner
}

func boxSlots(b *Box, o *BoxOwners) []slot {
	return []slot{
		{FieldLeft, &b.Left, &o.Left},
		{FieldTop, &b.Top, &o.Top},
		{FieldWidth, &b.Width, &o.Width},
		{FieldHeight, &b.Height, &o.Height},
	}
}

func translationSlots(t *Translation, o *TranslationOwners) []slot {
	return []slot{
		{FieldTranslationX, &t.X, &o.X},
		{FieldTranslationY, &t.Y, &o.Y},
	}
}

func boxRequest(b Box) []Scalar {
	return []Scalar{b.Left, b.Top, b.Width, b.Height}
}

func translationRequest(t Translation) []Scalar {
	return []Scalar{t.X, t.Y}
}
