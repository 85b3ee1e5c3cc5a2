package scenegraph

import (
	"github.com/matzehuels/bluefish/pkg/errors"
)

// SetSmartBox moves id so that its effective left and/or top equal the
// requested values, without the caller knowing whether position is currently
// held in the box or in the translation. Width and height in req are written
// to the box with the usual arbitration.
//
// For a reference node the request is rewritten into the target's frame and
// forwarded to the target. If the frame change between the two is not yet
// determined on an axis, every undetermined translation component on that
// axis along both LCA suffixes is first set to 0 without claiming ownership.
//
// For a geometry node, per requested axis:
//   - a translation owned by another writer rejects the whole call;
//   - a box field owned by writer is rewritten and the translation reset to 0;
//   - a translation owned by writer is set to V minus the box value;
//   - an unowned box field is claimed together with the translation (box = V,
//     translation = 0);
//   - a box field owned by someone else leaves the box alone and claims the
//     translation instead.
//
// Translation writes against an undetermined box are deferred: that axis is
// skipped and the call still succeeds. All writes to one node are applied
// atomically.
func (s *Scenegraph) SetSmartBox(id string, req Box, writer Owner) error {
	if writer == "" {
		return s.structural(errors.New(errors.ErrCodeInvalidInput, "write to %q has no writer", id))
	}
	if req.hasNaN() {
		return s.rejectNaN(id, writer)
	}
	return s.smart(id, id, req, writer, 0)
}

func (s *Scenegraph) smart(origin, id string, req Box, writer Owner, hops int) error {
	if hops > s.maxDepth() {
		return s.cycle(origin)
	}
	switch n := s.nodes[id].(type) {
	case *ReferenceNode:
		fwd, err := s.forward(n, req)
		if err != nil {
			return err
		}
		return s.smart(origin, n.RefID, fwd, writer, hops+1)
	case *GeometryNode:
		return s.smartGeometry(n, req, writer)
	default:
		return s.missing(id, origin)
	}
}

// forward rewrites a positional request addressed to ref into its target's
// frame.
func (s *Scenegraph) forward(ref *ReferenceNode, req Box) (Box, error) {
	composed, err := s.composed(ref)
	if err != nil {
		return Box{}, err
	}

	wanted := [2]Scalar{req.Left, req.Top}
	have := [2]Scalar{composed.X, composed.Y}
	backfilled := false
	for axis := range 2 {
		if !wanted[axis].Valid() || have[axis].Valid() {
			continue
		}
		if _, err := s.target(ref.RefID); err != nil {
			continue
		}
		if err := s.backfill(ref.ID, ref.RefID, axis); err != nil {
			return Box{}, err
		}
		backfilled = true
	}
	if backfilled {
		if composed, err = s.composed(ref); err != nil {
			return Box{}, err
		}
	}

	return Box{
		Left:   req.Left.Sub(composed.X),
		Top:    req.Top.Sub(composed.Y),
		Width:  req.Width,
		Height: req.Height,
	}, nil
}

// backfill sets every undetermined translation component on axis (0 = x,
// 1 = y) along the LCA suffixes of a and b to 0. Backfilled components stay
// unowned so the first real writer can still claim them.
func (s *Scenegraph) backfill(a, b string, axis int) error {
	sa, sb, err := s.LCASuffixes(a, b)
	if err != nil {
		return err
	}
	for _, id := range append(sa, sb...) {
		if slots := s.translationSlotsOf(id); slots != nil {
			s.zeroUnset(id, slots[axis])
		}
	}
	return nil
}

// SettleTranslation sets each undetermined component of id's own
// translation to 0 without claiming it. Containers that are not placed
// explicitly use it so that frames crossing them resolve, while a parent
// operator can still claim and move them.
func (s *Scenegraph) SettleTranslation(id string) error {
	slots := s.translationSlotsOf(id)
	if slots == nil {
		return s.missing(id, id)
	}
	for _, sl := range slots {
		s.zeroUnset(id, sl)
	}
	return nil
}

func (s *Scenegraph) zeroUnset(id string, sl slot) {
	if sl.value.Valid() {
		return
	}
	*sl.value = Some(0)
	s.version++
	s.logger.Debug("scenegraph: backfilled translation", "node", id, "field", sl.name)
	s.hooks.OnBackfill(id, sl.name)
}

func (s *Scenegraph) translationSlotsOf(id string) []slot {
	switch n := s.nodes[id].(type) {
	case *GeometryNode:
		return translationSlots(&n.Translation, &n.TranslationOwners)
	case *ReferenceNode:
		return translationSlots(&n.Translation, &n.TranslationOwners)
	}
	return nil
}

func (s *Scenegraph) smartGeometry(g *GeometryNode, req Box, writer Owner) error {
	wanted := [2]Scalar{req.Left, req.Top}
	boxes := boxSlots(&g.Box, &g.BoxOwners)
	trs := translationSlots(&g.Translation, &g.TranslationOwners)

	for axis := range 2 {
		if !wanted[axis].Valid() {
			continue
		}
		tr := trs[axis]
		if owner := *tr.owner; owner != "" && owner != writer {
			return s.rejectConflict(g.ID, tr.name, wanted[axis], *tr.value, owner, writer)
		}
	}

	box := Box{Width: req.Width, Height: req.Height}
	var move Translation
	boxOut := [2]*Scalar{&box.Left, &box.Top}
	trOut := [2]*Scalar{&move.X, &move.Y}

	for axis := range 2 {
		v := wanted[axis]
		if !v.Valid() {
			continue
		}
		b, tr := boxes[axis], trs[axis]
		switch {
		case *b.owner == writer:
			*boxOut[axis] = v
			*trOut[axis] = Some(0)
		case *tr.owner == writer, *b.owner != "":
			// Position lives in the translation; the box value is someone
			// else's or fixed by an earlier move.
			if !b.value.Valid() {
				s.logger.Debug("scenegraph: write deferred, box undetermined",
					"node", g.ID, "field", b.name, "writer", writer)
				continue
			}
			*trOut[axis] = v.Sub(*b.value)
		default:
			*boxOut[axis] = v
			*trOut[axis] = Some(0)
		}
	}

	return s.commitGeometry(g, box, move, writer)
}
