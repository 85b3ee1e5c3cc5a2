package scenegraph

import (
	"github.com/matzehuels/bluefish/pkg/errors"
)

// SetBox writes the set fields of box and tr on behalf of writer.
//
// Each field present in the request is claimed for writer if unowned, or
// overwritten if writer already owns it. If any field is owned by a different
// writer the whole call is rejected with OWNERSHIP_CONFLICT and nothing is
// mutated. NaN anywhere in the request is rejected with INVALID_NUMBER.
//
// If id names a reference node the write is forwarded, with the same writer,
// to the geometry node at the end of its alias chain; the reference's own
// state is not touched. SetBox does not recompute anything that depends on
// the written node.
func (s *Scenegraph) SetBox(id string, box Box, tr Translation, writer Owner) error {
	if writer == "" {
		return s.structural(errors.New(errors.ErrCodeInvalidInput, "write to %q has no writer", id))
	}
	if box.hasNaN() || tr.hasNaN() {
		return s.rejectNaN(id, writer)
	}
	g, err := s.target(id)
	if err != nil {
		return err
	}
	return s.commitGeometry(g, box, tr, writer)
}

// SetReferenceOffset writes the reference node's own translation, the offset
// it adds on top of its target's geometry. Ownership is arbitrated exactly as
// in SetBox, scoped to the alias.
func (s *Scenegraph) SetReferenceOffset(id string, tr Translation, writer Owner) error {
	if writer == "" {
		return s.structural(errors.New(errors.ErrCodeInvalidInput, "write to %q has no writer", id))
	}
	if tr.hasNaN() {
		return s.rejectNaN(id, writer)
	}
	switch n := s.nodes[id].(type) {
	case *ReferenceNode:
		return s.commit(id, translationSlots(&n.Translation, &n.TranslationOwners), translationRequest(tr), writer)
	case *GeometryNode:
		return s.structural(errors.New(errors.ErrCodeInvalidStructure, "%q is not a reference node", id))
	default:
		return s.missing(id, id)
	}
}

func (s *Scenegraph) commitGeometry(g *GeometryNode, box Box, tr Translation, writer Owner) error {
	slots := append(boxSlots(&g.Box, &g.BoxOwners), translationSlots(&g.Translation, &g.TranslationOwners)...)
	req := append(boxRequest(box), translationRequest(tr)...)
	return s.commit(g.ID, slots, req, writer)
}

// commit applies req to slots all-or-nothing. Unset request entries are
// skipped.
func (s *Scenegraph) commit(id string, slots []slot, req []Scalar, writer Owner) error {
	for i, sl := range slots {
		if !req[i].Valid() {
			continue
		}
		if owner := *sl.owner; owner != "" && owner != writer {
			return s.rejectConflict(id, sl.name, req[i], *sl.value, owner, writer)
		}
	}

	changed := false
	for i, sl := range slots {
		if !req[i].Valid() {
			continue
		}
		if !sl.value.Equal(req[i]) || *sl.owner != writer {
			changed = true
		}
		*sl.value = req[i]
		*sl.owner = writer
	}
	if changed {
		s.version++
	}
	return nil
}

func (s *Scenegraph) rejectConflict(id, field string, attempted, current Scalar, owner, writer Owner) error {
	err := errors.New(errors.ErrCodeOwnershipConflict,
		"%s tried to set %s's %s to %s but it is owned by %s (current value %s)",
		writer, id, field, attempted, owner, current)
	s.rejections++
	s.logger.Warn("scenegraph: write rejected",
		"node", id, "field", field, "writer", writer,
		"attempted", attempted, "current", current, "owner", owner)
	s.hooks.OnRejected(id, field, string(writer), string(errors.ErrCodeOwnershipConflict))
	return err
}

func (s *Scenegraph) rejectNaN(id string, writer Owner) error {
	s.rejections++
	s.logger.Warn("scenegraph: NaN write rejected", "node", id, "writer", writer)
	s.hooks.OnRejected(id, "", string(writer), string(errors.ErrCodeInvalidNumber))
	return errors.New(errors.ErrCodeInvalidNumber, "%s tried to write NaN to %s", writer, id)
}

// IsRejection reports whether err is a negotiation outcome rather than a
// failure: an ownership conflict or an invalid number. Layout operators are
// expected to tolerate these and carry on.
func IsRejection(err error) bool {
	return errors.Is(err, errors.ErrCodeOwnershipConflict) || errors.Is(err, errors.ErrCodeInvalidNumber)
}
