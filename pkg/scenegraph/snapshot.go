package scenegraph

import "slices"

// Snapshot is an immutable copy of the registry taken at one version.
type Snapshot struct {
	Version uint64       `json:"version"`
	Roots   []string     `json:"roots"`
	Nodes   []NodeRecord `json:"nodes"`
}

// NodeRecord is one node as seen in a Snapshot. Box and BoxOwners are empty
// for reference nodes. Effective is the node's effective box; it is the zero
// Box when resolution failed (see Error).
type NodeRecord struct {
	ID                string            `json:"id"`
	Kind              Kind              `json:"kind"`
	Parent            string            `json:"parent,omitempty"`
	Children          []string          `json:"children,omitempty"`
	RefID             string            `json:"ref,omitempty"`
	Depth             int               `json:"depth"`
	Box               Box               `json:"box"`
	BoxOwners         BoxOwners         `json:"box_owners"`
	Translation       Translation       `json:"translation"`
	TranslationOwners TranslationOwners `json:"translation_owners"`
	Effective         Box               `json:"effective"`
	Error             string            `json:"error,omitempty"`
}

// Snapshot copies the registry. Nodes are listed in pre-order starting from
// the roots in registration order.
func (s *Scenegraph) Snapshot() Snapshot {
	snap := Snapshot{
		Version: s.version,
		Roots:   slices.Clone(s.roots),
		Nodes:   make([]NodeRecord, 0, len(s.nodes)),
	}
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		n, ok := s.nodes[id]
		if !ok {
			return
		}
		snap.Nodes = append(snap.Nodes, s.record(n, depth))
		if g, ok := n.(*GeometryNode); ok {
			for _, c := range g.Children {
				walk(c, depth+1)
			}
		}
	}
	for _, r := range s.roots {
		walk(r, 0)
	}
	return snap
}

func (s *Scenegraph) record(n Node, depth int) NodeRecord {
	rec := NodeRecord{ID: n.NodeID(), Kind: n.Kind(), Parent: n.ParentID(), Depth: depth}
	switch n := n.(type) {
	case *GeometryNode:
		rec.Children = slices.Clone(n.Children)
		rec.Box, rec.BoxOwners = n.Box, n.BoxOwners
		rec.Translation, rec.TranslationOwners = n.Translation, n.TranslationOwners
	case *ReferenceNode:
		rec.RefID = n.RefID
		rec.Translation, rec.TranslationOwners = n.Translation, n.TranslationOwners
	}
	eff, err := s.effectiveBox(rec.ID, s.quiet)
	if err != nil {
		rec.Error = err.Error()
	} else {
		rec.Effective = eff
	}
	return rec
}

// Node returns the record for id.
func (snap Snapshot) Node(id string) (NodeRecord, bool) {
	for _, n := range snap.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeRecord{}, false
}
