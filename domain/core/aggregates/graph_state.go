package aggregates

import (
	"sync"

	"clusterview-backend/domain/core/entities"
	"clusterview-backend/domain/core/valueobjects"
	"clusterview-backend/domain/events"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/google/uuid"
)

// GraphState owns the in-memory node and edge collections for the
// session. It is the explicit state object passed by reference into the
// clusterer; there is no ambient module-level graph. Nodes and edges are
// immutable after load except for single-field weight edits, which go
// through UpdateEdgeWeight.
//
// List order is preserved from the document: the clusterer depends on it
// for deterministic component discovery.
type GraphState struct {
	mu sync.RWMutex

	nodes     []*entities.Node
	nodesByID map[valueobjects.NodeID]*entities.Node

	edges     []*entities.Edge
	edgesByID map[string]*entities.Edge
	// edgesByPair maps the source->target composite key to the first edge
	// with that pair, the fallback used when an edit carries no edge id.
	edgesByPair map[string]*entities.Edge

	loaded bool

	uncommitted []events.DomainEvent
}

// NewGraphState creates an empty, unloaded graph state.
func NewGraphState() *GraphState {
	return &GraphState{
		nodesByID:   make(map[valueobjects.NodeID]*entities.Node),
		edgesByID:   make(map[string]*entities.Edge),
		edgesByPair: make(map[string]*entities.Edge),
	}
}

// Load replaces the session's node and edge collections with a freshly
// ingested document. Duplicate node ids are rejected; edges referencing
// unknown nodes are kept (the clusterer filters them silently). Edges
// without an id get one assigned so that later edits can address them.
func (s *GraphState) Load(nodes []*entities.Node, edges []*entities.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nodesByID := make(map[valueobjects.NodeID]*entities.Node, len(nodes))
	for _, node := range nodes {
		if _, exists := nodesByID[node.ID()]; exists {
			return pkgerrors.NewConflict("duplicate node id: " + node.ID().String())
		}
		nodesByID[node.ID()] = node
	}

	edgesByID := make(map[string]*entities.Edge, len(edges))
	edgesByPair := make(map[string]*entities.Edge, len(edges))
	for _, edge := range edges {
		if edge.ID() == "" {
			edge.AssignID(uuid.New().String())
		}
		if _, exists := edgesByID[edge.ID()]; exists {
			return pkgerrors.NewConflict("duplicate edge id: " + edge.ID())
		}
		edgesByID[edge.ID()] = edge
		if _, exists := edgesByPair[edge.CompositeKey()]; !exists {
			edgesByPair[edge.CompositeKey()] = edge
		}
	}

	s.nodes = nodes
	s.nodesByID = nodesByID
	s.edges = edges
	s.edgesByID = edgesByID
	s.edgesByPair = edgesByPair
	s.loaded = true

	s.uncommitted = append(s.uncommitted, events.NewGraphLoaded(len(nodes), len(edges)))

	return nil
}

// IsLoaded reports whether a document has been ingested yet. Render paths
// must no-op until this is true.
func (s *GraphState) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Snapshot returns the node and edge lists in document order. The slices
// are copies; the entities are shared.
func (s *GraphState) Snapshot() ([]*entities.Node, []*entities.Edge) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodes := make([]*entities.Node, len(s.nodes))
	copy(nodes, s.nodes)
	edges := make([]*entities.Edge, len(s.edges))
	copy(edges, s.edges)
	return nodes, edges
}

// NodeCount returns the number of loaded nodes.
func (s *GraphState) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// EdgeCount returns the number of loaded edges.
func (s *GraphState) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// LabelFor resolves a node id to its display label.
func (s *GraphState) LabelFor(id valueobjects.NodeID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodesByID[id]
	if !ok {
		return "", false
	}
	return node.Label(), true
}

// FindEdge resolves an edit key to an edge, matching by stable edge id
// first and falling back to the source->target composite key.
func (s *GraphState) FindEdge(key string) (*entities.Edge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findEdgeLocked(key)
}

func (s *GraphState) findEdgeLocked(key string) (*entities.Edge, error) {
	if edge, ok := s.edgesByID[key]; ok {
		return edge, nil
	}
	if edge, ok := s.edgesByPair[key]; ok {
		return edge, nil
	}
	return nil, pkgerrors.NewNotFound("edge: " + key)
}

// UpdateEdgeWeight mutates a single edge's weight in place. The mutation
// is atomic with respect to Snapshot: a recompute triggered afterwards
// sees the fully applied value.
func (s *GraphState) UpdateEdgeWeight(key string, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edge, err := s.findEdgeLocked(key)
	if err != nil {
		return err
	}

	old := edge.Weight()
	if err := edge.SetWeight(weight); err != nil {
		return err
	}

	s.uncommitted = append(s.uncommitted, events.NewEdgeWeightUpdated(edge.ID(), old, weight))
	return nil
}

// GetUncommittedEvents returns all uncommitted domain events.
func (s *GraphState) GetUncommittedEvents() []events.DomainEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]events.DomainEvent, len(s.uncommitted))
	copy(out, s.uncommitted)
	return out
}

// MarkEventsAsCommitted clears the uncommitted events.
func (s *GraphState) MarkEventsAsCommitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uncommitted = nil
}
