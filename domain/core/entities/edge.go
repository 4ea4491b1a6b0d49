package entities

import (
	"fmt"

	"clusterview-backend/domain/core/valueobjects"
	pkgerrors "clusterview-backend/pkg/errors"
)

// Edge is an undirected weighted connection between two nodes. The weight
// is the only mutable field for the session; everything else is fixed at
// ingestion. Multiple edges between the same pair are allowed and each
// contributes independently to aggregate weight. Self-loops are not
// rejected.
type Edge struct {
	id     string
	source valueobjects.NodeID
	target valueobjects.NodeID
	weight float64
}

// NewEdge creates an edge. The id may be empty; the owning graph state
// assigns one at load time so that edits can address the edge later.
func NewEdge(id string, source, target valueobjects.NodeID, weight float64) (*Edge, error) {
	if source.IsZero() || target.IsZero() {
		return nil, pkgerrors.NewValidation("edge endpoints are required")
	}
	if weight < 0 || weight > 1 {
		return nil, pkgerrors.NewValidationf("edge weight %v outside [0,1]", weight)
	}

	return &Edge{id: id, source: source, target: target, weight: weight}, nil
}

// ID returns the edge identifier.
func (e *Edge) ID() string {
	return e.id
}

// AssignID sets the identifier once. Used by the graph state for edges
// loaded without one.
func (e *Edge) AssignID(id string) {
	if e.id == "" {
		e.id = id
	}
}

// Source returns the source endpoint.
func (e *Edge) Source() valueobjects.NodeID {
	return e.source
}

// Target returns the target endpoint.
func (e *Edge) Target() valueobjects.NodeID {
	return e.target
}

// Weight returns the current weight.
func (e *Edge) Weight() float64 {
	return e.weight
}

// SetWeight mutates the weight in place. The caller is responsible for
// triggering a recompute afterwards.
func (e *Edge) SetWeight(weight float64) error {
	if weight < 0 || weight > 1 {
		return pkgerrors.NewValidationf("edge weight %v outside [0,1]", weight)
	}
	e.weight = weight
	return nil
}

// CompositeKey is the source->target fallback key used to address an edge
// when no stable edge id is known.
func (e *Edge) CompositeKey() string {
	return CompositeEdgeKey(e.source, e.target)
}

// CompositeEdgeKey builds the source->target composite key for a pair of
// endpoints.
func CompositeEdgeKey(source, target valueobjects.NodeID) string {
	return fmt.Sprintf("%s->%s", source.String(), target.String())
}
