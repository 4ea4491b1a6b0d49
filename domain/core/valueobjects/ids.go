package valueobjects

import (
	"strings"

	pkgerrors "clusterview-backend/pkg/errors"
)

// NodeID identifies a node within a loaded document. IDs come from the
// document itself, so they are opaque strings rather than generated UUIDs.
type NodeID struct {
	value string
}

// NewNodeID validates and wraps a raw node identifier.
func NewNodeID(raw string) (NodeID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NodeID{}, pkgerrors.NewValidation("node id cannot be empty")
	}
	return NodeID{value: raw}, nil
}

// MustNodeID wraps a raw identifier and panics on invalid input.
// Intended for tests and fixtures only.
func MustNodeID(raw string) NodeID {
	id, err := NewNodeID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the raw identifier.
func (id NodeID) String() string {
	return id.value
}

// Equals checks identity with another NodeID.
func (id NodeID) Equals(other NodeID) bool {
	return id.value == other.value
}

// IsZero reports whether the ID is the zero value.
func (id NodeID) IsZero() bool {
	return id.value == ""
}
