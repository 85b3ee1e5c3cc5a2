package scenegraph

import (
	"fmt"
	"slices"
)

// Kind enumerates the two node variants of the scenegraph.
type Kind int

const (
	KindGeometry  Kind = iota // holds its own box and translation
	KindReference             // aliases another node's geometry
)

func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "geometry"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "geometry":
		*k = KindGeometry
	case "reference":
		*k = KindReference
	default:
		return fmt.Errorf("unknown node kind %q", text)
	}
	return nil
}

// Node is one entry of the scenegraph. It is either a *GeometryNode or a
// *ReferenceNode; code that needs variant data switches on the concrete type.
type Node interface {
	NodeID() string
	ParentID() string
	Kind() Kind
	node() // marker method restricting implementations to this package
}

// GeometryNode owns its box and translation state.
type GeometryNode struct {
	ID                string
	Parent            string // "" for a top-level node
	Children          []string
	Box               Box
	BoxOwners         BoxOwners
	Translation       Translation
	TranslationOwners TranslationOwners
}

func (n *GeometryNode) NodeID() string   { return n.ID }
func (n *GeometryNode) ParentID() string { return n.Parent }
func (n *GeometryNode) Kind() Kind       { return KindGeometry }
func (n *GeometryNode) node()            {}

func (n *GeometryNode) clone() *GeometryNode {
	c := *n
	c.Children = slices.Clone(n.Children)
	return &c
}

// ReferenceNode aliases the node named by RefID, which may itself be a
// reference. It has no box of its own; Translation is an additional offset
// relative to the referenced geometry.
type ReferenceNode struct {
	ID                string
	Parent            string
	RefID             string
	Translation       Translation
	TranslationOwners TranslationOwners
}

func (n *ReferenceNode) NodeID() string   { return n.ID }
func (n *ReferenceNode) ParentID() string { return n.Parent }
func (n *ReferenceNode) Kind() Kind       { return KindReference }
func (n *ReferenceNode) node()            {}

func (n *ReferenceNode) clone() *ReferenceNode {
	c := *n
	return &c
}

// cloneNode deep-copies a node so callers never alias registry state.
func cloneNode(n Node) Node {
	switch n := n.(type) {
	case *GeometryNode:
		return n.clone()
	case *ReferenceNode:
		return n.clone()
	default:
		panic(fmt.Sprintf("scenegraph: unexpected node type %T", n))
	}
}
