package scenegraph

import (
	"slices"

	"github.com/matzehuels/bluefish/pkg/errors"
)

// AncestorChain returns the ancestors of id ordered from its parent up to the
// top-level node. A top-level node has an empty chain.
func (s *Scenegraph) AncestorChain(id string) ([]string, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "node %q does not exist", id)
	}
	var chain []string
	limit := s.maxDepth()
	for p := n.ParentID(); p != ""; {
		if len(chain) >= limit {
			return nil, errors.New(errors.ErrCodeInvalidStructure, "ancestor chain of %q does not terminate", id)
		}
		chain = append(chain, p)
		parent, ok := s.nodes[p]
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "ancestor %q of %q does not exist", p, id)
		}
		p = parent.ParentID()
	}
	return chain, nil
}

// LCASuffixes returns the parts of a's and b's ancestor chains strictly below
// their lowest common ancestor, each ordered from the node's parent toward the
// LCA. Nodes in different top-level trees share no ancestor, so their
// suffixes are their whole chains.
func (s *Scenegraph) LCASuffixes(a, b string) (sa, sb []string, err error) {
	ca, err := s.AncestorChain(a)
	if err != nil {
		return nil, nil, err
	}
	cb, err := s.AncestorChain(b)
	if err != nil {
		return nil, nil, err
	}

	// Chains are aligned at the root end.
	common := 0
	for common < len(ca) && common < len(cb) &&
		ca[len(ca)-1-common] == cb[len(cb)-1-common] {
		common++
	}
	return slices.Clone(ca[:len(ca)-common]), slices.Clone(cb[:len(cb)-common]), nil
}

// TransformDiff returns the translation that carries coordinates expressed in
// b's parent frame into a's parent frame: the sum of the translations along
// b's LCA suffix minus the sum along a's. A component is unset as soon as any
// contributing translation component is unset.
func (s *Scenegraph) TransformDiff(a, b string) (Translation, error) {
	sa, sb, err := s.LCASuffixes(a, b)
	if err != nil {
		return Translation{}, err
	}
	diff := Zero
	for _, id := range sb {
		diff = diff.Add(s.ownTranslation(id))
	}
	for _, id := range sa {
		diff = diff.Sub(s.ownTranslation(id))
	}
	return diff, nil
}

func (s *Scenegraph) ownTranslation(id string) Translation {
	switch n := s.nodes[id].(type) {
	case *GeometryNode:
		return n.Translation
	case *ReferenceNode:
		return n.Translation
	}
	return Translation{}
}
