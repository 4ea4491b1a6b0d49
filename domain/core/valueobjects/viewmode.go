package valueobjects

import (
	pkgerrors "clusterview-backend/pkg/errors"
)

// ViewMode selects how clusters are visually encoded by the renderer.
type ViewMode string

const (
	ViewPie    ViewMode = "pie"
	ViewBubble ViewMode = "bubble"
	ViewForce  ViewMode = "force"
)

// ParseViewMode converts a raw string into a ViewMode.
func ParseViewMode(raw string) (ViewMode, error) {
	mode := ViewMode(raw)
	if !mode.IsValid() {
		return "", pkgerrors.NewValidation("view mode must be one of: pie, bubble, force")
	}
	return mode, nil
}

// IsValid checks if the view mode is one of the supported encodings.
func (m ViewMode) IsValid() bool {
	switch m {
	case ViewPie, ViewBubble, ViewForce:
		return true
	default:
		return false
	}
}

// String returns the string representation of the view mode.
func (m ViewMode) String() string {
	return string(m)
}
