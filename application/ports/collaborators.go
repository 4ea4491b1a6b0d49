// Package ports defines the interfaces the application layer depends on.
// Rendering, detail display, and document loading are external
// collaborators: the controller only hands them the data they need to do
// their job, never raw node/edge internals.
package ports

import (
	"context"

	"clusterview-backend/domain/core/entities"
	"clusterview-backend/domain/core/valueobjects"
)

// ClusterView is the per-cluster payload exposed to renderers: identity,
// aggregate weight, and the sorted member labels. Nothing else from the
// underlying entities leaks out.
type ClusterView struct {
	ID          string   `json:"id"`
	Weight      float64  `json:"weight"`
	Members     []string `json:"members"`
	MemberCount int      `json:"memberCount"`
}

// Frame is a complete render payload: the visible clusters for the
// current threshold plus the active view mode. The threshold is carried
// for display only.
type Frame struct {
	Clusters  []ClusterView         `json:"clusters"`
	View      valueobjects.ViewMode `json:"view"`
	Threshold float64               `json:"threshold"`
}

// Renderer draws a frame. Pie, bubble, and force encodings are all
// behind this one method; the controller does not care which is active.
type Renderer interface {
	Render(ctx context.Context, frame Frame) error
}

// DetailSink receives the formatted description of a selected cluster.
type DetailSink interface {
	ShowDetail(ctx context.Context, detail string) error
}

// GraphSource loads the input document and converts it into domain
// entities. Implementations own fetching and parsing; a load failure is
// fatal to rendering but never reaches the clusterer.
type GraphSource interface {
	Load(ctx context.Context) ([]*entities.Node, []*entities.Edge, error)
}
