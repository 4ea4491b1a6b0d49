package entities

import (
	"strings"

	"clusterview-backend/domain/core/valueobjects"
	pkgerrors "clusterview-backend/pkg/errors"
)

// Node is a labeled item in the loaded document. Nodes are immutable for
// the lifetime of a session: the group is assigned exactly once at
// ingestion and never recomputed.
type Node struct {
	id    valueobjects.NodeID
	label string
	group string
}

// NewNode creates a node with its statically assigned group.
func NewNode(id valueobjects.NodeID, label, group string) (*Node, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidation("node id is required")
	}

	label = strings.TrimSpace(label)
	if label == "" {
		return nil, pkgerrors.NewValidation("node label cannot be empty")
	}

	group = strings.TrimSpace(group)
	if group == "" {
		return nil, pkgerrors.NewValidation("node group cannot be empty")
	}

	return &Node{id: id, label: label, group: group}, nil
}

// ID returns the node's unique identifier.
func (n *Node) ID() valueobjects.NodeID {
	return n.id
}

// Label returns the display label.
func (n *Node) Label() string {
	return n.label
}

// Group returns the static category assigned at ingestion. Clustering
// never crosses group boundaries.
func (n *Node) Group() string {
	return n.group
}
