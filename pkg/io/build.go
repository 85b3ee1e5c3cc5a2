package io

import (
	"fmt"

	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/layout"
	"github.com/matzehuels/bluefish/pkg/scenegraph"
)

// Build validates doc and turns it into an element tree rooted at a
// [layout.Diagram]. Errors name the offending element by path, e.g.
// "elements[1].children[0]".
func Build(doc *Document) (*layout.Diagram, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "empty document")
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "width and height must be positive (got %gx%g)", doc.Width, doc.Height)
	}
	if err := errors.ValidateColor(doc.Background); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	d := &layout.Diagram{Width: doc.Width, Height: doc.Height, Background: doc.Background}
	d.ID = doc.ID
	if d.ID == "" {
		d.ID = "diagram"
	}
	if err := errors.ValidateElementID(d.ID); err != nil {
		return nil, err
	}

	b := &builder{ids: map[string]string{d.ID: "document"}}
	els, err := b.elements(doc.Elements, "elements")
	if err != nil {
		return nil, err
	}
	d.Elements = els

	for path, target := range b.refs {
		if _, ok := b.ids[target]; !ok {
			return nil, invalid(path, "ref %q does not name an element", target)
		}
	}
	return d, nil
}

type builder struct {
	ids  map[string]string // id -> path
	refs map[string]string // path -> target
}

func invalid(path, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidDocument, "%s: %s", path, fmt.Sprintf(format, args...))
}

func (b *builder) elements(specs []ElementSpec, path string) ([]layout.Element, error) {
	out := make([]layout.Element, 0, len(specs))
	for i := range specs {
		el, err := b.element(&specs[i], fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func (b *builder) element(s *ElementSpec, path string) (layout.Element, error) {
	if s.ID != "" {
		if err := errors.ValidateElementID(s.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if prev, dup := b.ids[s.ID]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateID, "%s: id %q already used at %s", path, s.ID, prev)
		}
		b.ids[s.ID] = path
	}
	for _, c := range []string{s.Fill, s.Stroke} {
		if err := errors.ValidateColor(c); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if s.Type != TypeRef && (s.DX != nil || s.DY != nil) {
		return nil, invalid(path, "dx/dy only apply to refs")
	}

	children, err := b.elements(s.Children, path+".children")
	if err != nil {
		return nil, err
	}
	base := layout.Base{ID: s.ID}
	x, y := scalar(s.X), scalar(s.Y)

	switch s.Type {
	case TypeRect:
		if s.Width == nil || s.Height == nil {
			return nil, invalid(path, "rect needs width and height")
		}
		if *s.Width < 0 || *s.Height < 0 {
			return nil, invalid(path, "rect size cannot be negative")
		}
		if err := leaf(s, path); err != nil {
			return nil, err
		}
		return &layout.Rect{
			Base: base, X: x, Y: y, Width: *s.Width, Height: *s.Height,
			Fill: s.Fill, Stroke: s.Stroke, StrokeWidth: s.StrokeWidth, Rx: s.Rx,
		}, nil

	case TypeText:
		if s.Text == "" {
			return nil, invalid(path, "text needs text")
		}
		if s.FontSize < 0 {
			return nil, invalid(path, "font_size cannot be negative")
		}
		if err := leaf(s, path); err != nil {
			return nil, err
		}
		return &layout.Text{
			Base: base, X: x, Y: y, Content: s.Text,
			FontSize: s.FontSize, FontFamily: s.FontFamily, Fill: s.Fill,
		}, nil

	case TypeRef:
		if s.Ref == "" {
			return nil, invalid(path, "ref needs a target")
		}
		if s.X != nil || s.Y != nil {
			return nil, invalid(path, "refs are positioned with dx/dy, not x/y")
		}
		if err := leaf(s, path); err != nil {
			return nil, err
		}
		if b.refs == nil {
			b.refs = make(map[string]string)
		}
		b.refs[path] = s.Ref
		return &layout.Ref{
			Base: base, To: s.Ref,
			Offset: scenegraph.Translation{X: scalar(s.DX), Y: scalar(s.DY)},
		}, nil

	case TypeGroup:
		return &layout.Group{Base: base, X: x, Y: y, Elements: children}, nil

	case TypeRow:
		row := &layout.Row{Base: base, X: x, Y: y, Spacing: value(s.Spacing), Elements: children}
		if s.Alignment != "" {
			a, err := layout.ParseAlignment(s.Alignment)
			v, h := a.Split()
			if err != nil || v == "" || h != "" {
				return nil, invalid(path, "row alignment must be top, centerVertically or bottom (got %q)", s.Alignment)
			}
			row.Alignment = v
		}
		return row, nil

	case TypeCol:
		col := &layout.Col{Base: base, X: x, Y: y, Spacing: value(s.Spacing), Elements: children}
		if s.Alignment != "" {
			a, err := layout.ParseAlignment(s.Alignment)
			v, h := a.Split()
			if err != nil || h == "" || v != "" {
				return nil, invalid(path, "col alignment must be left, centerHorizontally or right (got %q)", s.Alignment)
			}
			col.Alignment = h
		}
		return col, nil

	case TypeAlign:
		a, err := layout.ParseAlignment(s.Alignment)
		if err != nil {
			return nil, invalid(path, "%s", errors.UserMessage(err))
		}
		return &layout.Align{Base: base, X: x, Y: y, Alignment: a, Elements: children}, nil

	case TypeDistribute:
		dir := layout.Direction(s.Direction)
		if dir != layout.Horizontal && dir != layout.Vertical {
			return nil, invalid(path, "distribute direction must be horizontal or vertical (got %q)", s.Direction)
		}
		if s.Spacing == nil && s.Total == nil {
			return nil, invalid(path, "distribute needs spacing, total or both")
		}
		return &layout.Distribute{
			Base: base, X: x, Y: y, Direction: dir,
			Spacing: scalar(s.Spacing), Total: scalar(s.Total), Elements: children,
		}, nil

	case "":
		return nil, invalid(path, "missing type")
	default:
		return nil, invalid(path, "unknown type %q", s.Type)
	}
}

func leaf(s *ElementSpec, path string) error {
	if len(s.Children) > 0 {
		return invalid(path, "%s cannot have children", s.Type)
	}
	return nil
}

func scalar(p *float64) scenegraph.Scalar {
	if p == nil {
		return scenegraph.Unset
	}
	return scenegraph.Some(*p)
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
