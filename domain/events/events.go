package events

import (
	"time"
)

// Event type constants
const (
	TypeGraphLoaded       = "graph.loaded"
	TypeEdgeWeightUpdated = "graph.edge_weight_updated"
)

// DomainEvent is implemented by everything the graph state records
type DomainEvent interface {
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent carries fields shared by all domain events
type BaseEvent struct {
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

// GetEventType returns the event type
func (e BaseEvent) GetEventType() string { return e.EventType }

// GetTimestamp returns when the event occurred
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// GraphLoaded is recorded when a document has been ingested into the
// graph state, replacing whatever was loaded before.
type GraphLoaded struct {
	BaseEvent
	NodeCount int `json:"nodeCount"`
	EdgeCount int `json:"edgeCount"`
}

// NewGraphLoaded creates a graph loaded event
func NewGraphLoaded(nodeCount, edgeCount int) *GraphLoaded {
	return &GraphLoaded{
		BaseEvent: BaseEvent{EventType: TypeGraphLoaded, Timestamp: time.Now()},
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}

// EdgeWeightUpdated is recorded when an edit mutates a single edge's
// weight in place.
type EdgeWeightUpdated struct {
	BaseEvent
	EdgeID    string  `json:"edgeId"`
	OldWeight float64 `json:"oldWeight"`
	NewWeight float64 `json:"newWeight"`
}

// NewEdgeWeightUpdated creates an edge weight updated event
func NewEdgeWeightUpdated(edgeID string, oldWeight, newWeight float64) *EdgeWeightUpdated {
	return &EdgeWeightUpdated{
		BaseEvent: BaseEvent{EventType: TypeEdgeWeightUpdated, Timestamp: time.Now()},
		EdgeID:    edgeID,
		OldWeight: oldWeight,
		NewWeight: newWeight,
	}
}
