package scenegraph

import (
	"github.com/matzehuels/bluefish/pkg/errors"
)

// Resolve follows the alias chain starting at id until it reaches a geometry
// node. It returns a copy of that node together with the translation
// accumulated over the reference hops, which may be partially or fully unset.
// For a geometry node the accumulated translation is zero.
//
// A chain that revisits a node is a configuration error and yields
// REFERENCE_CYCLE.
func (s *Scenegraph) Resolve(id string) (GeometryNode, Translation, error) {
	return s.resolve(id, s.structural)
}

// resolve is Resolve with the cycle diagnostic routed through report.
func (s *Scenegraph) resolve(id string, report func(*errors.Error) error) (GeometryNode, Translation, error) {
	acc := Zero
	seen := make(map[string]struct{})
	limit := s.maxDepth()
	for cur := id; ; {
		if _, loop := seen[cur]; loop || len(seen) >= limit {
			return GeometryNode{}, Translation{}, report(cycleError(id))
		}
		seen[cur] = struct{}{}

		switch n := s.nodes[cur].(type) {
		case *GeometryNode:
			return *n.clone(), acc, nil
		case *ReferenceNode:
			hop, err := s.composed(n)
			if err != nil {
				return GeometryNode{}, Translation{}, err
			}
			acc = acc.Add(hop)
			cur = n.RefID
		default:
			return GeometryNode{}, Translation{}, s.missing(cur, id)
		}
	}
}

// EffectiveBox returns the on-screen box of id in its parent's frame:
// left/top are the intrinsic left/top plus the resolved translation, width and
// height pass through from the intrinsic box. Unset operands give unset
// coordinates; no default is substituted.
//
// This is the only sanctioned way for layout operators to read positions,
// since reading raw fields bypasses reference indirection.
func (s *Scenegraph) EffectiveBox(id string) (Box, error) {
	return s.effectiveBox(id, s.structural)
}

func (s *Scenegraph) effectiveBox(id string, report func(*errors.Error) error) (Box, error) {
	g, acc, err := s.resolve(id, report)
	if err != nil {
		return Box{}, err
	}
	tr := g.Translation.Add(acc)
	return Box{
		Left:   g.Box.Left.Add(tr.X),
		Top:    g.Box.Top.Add(tr.Y),
		Width:  g.Box.Width,
		Height: g.Box.Height,
	}, nil
}

// composed is the translation one reference hop contributes: the frame change
// between the reference and its target plus the reference's own offset. Unset
// offset components count as zero; an alias that was never moved sits on its
// target.
func (s *Scenegraph) composed(ref *ReferenceNode) (Translation, error) {
	if _, ok := s.nodes[ref.RefID]; !ok {
		return Translation{}, s.missing(ref.RefID, ref.ID)
	}
	diff, err := s.TransformDiff(ref.ID, ref.RefID)
	if err != nil {
		return Translation{}, err
	}
	offset := Translation{X: Some(ref.Translation.X.Or(0)), Y: Some(ref.Translation.Y.Or(0))}
	return diff.Add(offset), nil
}

// target follows references to the underlying geometry node without
// accumulating transforms. The returned pointer is live registry state.
func (s *Scenegraph) target(id string) (*GeometryNode, error) {
	seen := make(map[string]struct{})
	limit := s.maxDepth()
	for cur := id; ; {
		if _, loop := seen[cur]; loop || len(seen) >= limit {
			return nil, s.cycle(id)
		}
		seen[cur] = struct{}{}

		switch n := s.nodes[cur].(type) {
		case *GeometryNode:
			return n, nil
		case *ReferenceNode:
			cur = n.RefID
		default:
			return nil, s.missing(cur, id)
		}
	}
}

func (s *Scenegraph) cycle(id string) error {
	return s.structural(cycleError(id))
}

func cycleError(id string) *errors.Error {
	return errors.New(errors.ErrCodeReferenceCycle, "reference chain starting at %q does not terminate", id)
}

func (s *Scenegraph) missing(id, from string) error {
	if id == from {
		return errors.New(errors.ErrCodeNotFound, "node %q does not exist", id)
	}
	return errors.New(errors.ErrCodeNotFound, "node %q (reached from %q) does not exist", id, from)
}
