package scenegraph

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bluefish/pkg/errors"
	"github.com/matzehuels/bluefish/pkg/observability"
)

// Scenegraph is the node registry. It owns every node's lifetime; nodes refer
// to each other only by id.
//
// A Scenegraph is not safe for concurrent use. Layout runs are single-threaded
// and cooperative; all mutation happens through synchronous calls.
type Scenegraph struct {
	nodes      map[string]Node
	roots      []string
	logger     *log.Logger
	hooks      observability.SceneHooks
	maxHops    int
	version    uint64
	rejections int
}

// Option configures a Scenegraph.
type Option func(*Scenegraph)

// WithLogger sets the logger used for conflict and structural diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Scenegraph) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHooks overrides the globally registered scene hooks.
func WithHooks(h observability.SceneHooks) Option {
	return func(s *Scenegraph) {
		if h != nil {
			s.hooks = h
		}
	}
}

// WithMaxReferenceDepth bounds reference chain walks. By default the bound is
// the number of nodes in the registry, which no acyclic chain can exceed.
func WithMaxReferenceDepth(n int) Option {
	return func(s *Scenegraph) { s.maxHops = n }
}

// New creates an empty scenegraph.
func New(opts ...Option) *Scenegraph {
	s := &Scenegraph{
		nodes:  make(map[string]Node),
		logger: log.Default(),
		hooks:  observability.Scene(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateGeometryNode registers an empty geometry node under parentID ("" for
// a top-level node) and appends it to the parent's children.
//
// Re-registering an existing id is rejected with DUPLICATE_ID and leaves the
// first registration in place. A reference node cannot have children.
func (s *Scenegraph) CreateGeometryNode(id, parentID string) error {
	if err := s.checkCreate(id, parentID); err != nil {
		return err
	}
	s.insert(&GeometryNode{ID: id, Parent: parentID})
	return nil
}

// CreateReferenceNode registers a reference node aliasing refID. The target
// does not need to exist yet; it is looked up on resolution.
func (s *Scenegraph) CreateReferenceNode(id, refID, parentID string) error {
	if err := s.checkCreate(id, parentID); err != nil {
		return err
	}
	if refID == "" {
		return s.structural(errors.New(errors.ErrCodeInvalidInput, "reference %q has no target", id))
	}
	if refID == id {
		return s.structural(errors.New(errors.ErrCodeReferenceCycle, "reference %q targets itself", id))
	}
	s.insert(&ReferenceNode{ID: id, Parent: parentID, RefID: refID})
	return nil
}

func (s *Scenegraph) checkCreate(id, parentID string) error {
	if id == "" {
		return s.structural(errors.New(errors.ErrCodeInvalidInput, "node id cannot be empty"))
	}
	if _, exists := s.nodes[id]; exists {
		return s.structural(errors.New(errors.ErrCodeDuplicateID, "node %q already exists", id))
	}
	if parentID == "" {
		return nil
	}
	parent, ok := s.nodes[parentID]
	if !ok {
		return s.structural(errors.New(errors.ErrCodeNotFound, "parent %q of %q does not exist", parentID, id))
	}
	switch parent.(type) {
	case *GeometryNode:
		return nil
	case *ReferenceNode:
		return s.structural(errors.New(errors.ErrCodeInvalidStructure,
			"cannot add %q under reference node %q: references have no children", id, parentID))
	}
	return nil
}

func (s *Scenegraph) insert(n Node) {
	id, parentID := n.NodeID(), n.ParentID()
	s.nodes[id] = n
	if parentID == "" {
		s.roots = append(s.roots, id)
	} else if p, ok := s.nodes[parentID].(*GeometryNode); ok {
		p.Children = append(p.Children, id)
	}
	s.version++
}

// structural logs a configuration error and returns it.
func (s *Scenegraph) structural(err *errors.Error) error {
	s.logger.Error("scenegraph: "+err.Message, "code", err.Code)
	return err
}

// quiet reports err at debug level. Snapshots use it since the error is
// already carried in the record.
func (s *Scenegraph) quiet(err *errors.Error) error {
	s.logger.Debug("scenegraph: "+err.Message, "code", err.Code)
	return err
}

// Lookup returns a copy of the node registered under id.
func (s *Scenegraph) Lookup(id string) (Node, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, false
	}
	return cloneNode(n), true
}

// Kind returns the variant of the node registered under id.
func (s *Scenegraph) Kind(id string) (Kind, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return 0, false
	}
	return n.Kind(), true
}

// Parent returns the parent id of id ("" for top-level nodes).
func (s *Scenegraph) Parent(id string) (string, bool) {
	n, ok := s.nodes[id]
	if !ok {
		return "", false
	}
	return n.ParentID(), true
}

// Children returns the ordered child ids of id. Reference nodes have none.
func (s *Scenegraph) Children(id string) []string {
	if n, ok := s.nodes[id].(*GeometryNode); ok {
		return slices.Clone(n.Children)
	}
	return nil
}

// Roots returns the top-level node ids in registration order.
func (s *Scenegraph) Roots() []string { return slices.Clone(s.roots) }

// Len returns the number of registered nodes.
func (s *Scenegraph) Len() int { return len(s.nodes) }

// Version increases every time any node's state changes. Writes that store
// the value already present do not count as changes.
func (s *Scenegraph) Version() uint64 { return s.version }

// Rejections returns how many writes have been rejected so far.
func (s *Scenegraph) Rejections() int { return s.rejections }

// IntrinsicBox returns the raw box and box owners of the geometry node that id
// resolves to. Layout operators use it to inspect ownership before deciding
// whether they may claim a size; positions must be read with EffectiveBox.
func (s *Scenegraph) IntrinsicBox(id string) (Box, BoxOwners, error) {
	g, err := s.target(id)
	if err != nil {
		return Box{}, BoxOwners{}, err
	}
	return g.Box, g.BoxOwners, nil
}

// OwnTranslation returns the translation stored on id itself, without
// following references.
func (s *Scenegraph) OwnTranslation(id string) (Translation, TranslationOwners, error) {
	switch n := s.nodes[id].(type) {
	case *GeometryNode:
		return n.Translation, n.TranslationOwners, nil
	case *ReferenceNode:
		return n.Translation, n.TranslationOwners, nil
	default:
		return Translation{}, TranslationOwners{}, errors.New(errors.ErrCodeNotFound, "node %q does not exist", id)
	}
}

// maxDepth is the longest reference chain or ancestor walk tolerated before
// the walk is declared cyclic.
func (s *Scenegraph) maxDepth() int {
	if s.maxHops > 0 {
		return s.maxHops
	}
	return len(s.nodes) + 1
}
