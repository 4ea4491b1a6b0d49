package services

import (
	"fmt"
	"strings"

	"clusterview-backend/application/ports"
)

// maxDetailLabels caps how many member labels a detail string lists
// before collapsing the rest into a "+N more" suffix.
const maxDetailLabels = 18

// FormatClusterDetail renders the opaque detail string handed to the
// detail-display collaborator when a cluster is selected.
func FormatClusterDetail(view ports.ClusterView) string {
	labels := view.Members
	overflow := 0
	if len(labels) > maxDetailLabels {
		overflow = len(labels) - maxDetailLabels
		labels = labels[:maxDetailLabels]
	}

	detail := fmt.Sprintf("%s (weight %.2f): %s", view.ID, view.Weight, strings.Join(labels, ", "))
	if overflow > 0 {
		detail += fmt.Sprintf(" +%d more", overflow)
	}
	return detail
}
