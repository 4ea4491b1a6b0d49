package services

import (
	"context"
	"errors"
	"testing"

	"clusterview-backend/application/ports"
	"clusterview-backend/domain/core/aggregates"
	"clusterview-backend/domain/core/entities"
	"clusterview-backend/domain/core/valueobjects"
	domainservices "clusterview-backend/domain/services"
	pkgerrors "clusterview-backend/pkg/errors"
	"clusterview-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingRenderer keeps every frame it receives and can be told to fail.
type recordingRenderer struct {
	frames []ports.Frame
	err    error
}

func (r *recordingRenderer) Render(_ context.Context, frame ports.Frame) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, frame)
	return nil
}

type recordingDetailSink struct {
	details []string
}

func (d *recordingDetailSink) ShowDetail(_ context.Context, detail string) error {
	d.details = append(d.details, detail)
	return nil
}

type stubSource struct {
	nodes []*entities.Node
	edges []*entities.Edge
	err   error
}

func (s *stubSource) Load(context.Context) ([]*entities.Node, []*entities.Edge, error) {
	return s.nodes, s.edges, s.err
}

func mustNode(t *testing.T, id, label, group string) *entities.Node {
	t.Helper()
	node, err := entities.NewNode(valueobjects.MustNodeID(id), label, group)
	require.NoError(t, err)
	return node
}

func mustEdge(t *testing.T, id, source, target string, weight float64) *entities.Edge {
	t.Helper()
	edge, err := entities.NewEdge(id, valueobjects.MustNodeID(source), valueobjects.MustNodeID(target), weight)
	require.NoError(t, err)
	return edge
}

func newTestController(t *testing.T, threshold float64, view valueobjects.ViewMode) (*ViewController, *recordingRenderer, *recordingDetailSink, *aggregates.GraphState) {
	t.Helper()
	renderer := &recordingRenderer{}
	sink := &recordingDetailSink{}
	state := aggregates.NewGraphState()
	controller := NewViewController(
		state,
		domainservices.NewClusterer(),
		renderer,
		sink,
		zap.NewNop(),
		observability.NewCollector("test"),
		threshold,
		view,
	)
	return controller, renderer, sink, state
}

// loadScenario ingests the three-node single-group document used across
// these tests: (a,b,0.8) and (b,c,0.3).
func loadScenario(t *testing.T, controller *ViewController) {
	t.Helper()
	source := &stubSource{
		nodes: []*entities.Node{
			mustNode(t, "a", "Alpha", "GroupX"),
			mustNode(t, "b", "Beta", "GroupX"),
			mustNode(t, "c", "Gamma", "GroupX"),
		},
		edges: []*entities.Edge{
			mustEdge(t, "e1", "a", "b", 0.8),
			mustEdge(t, "e2", "b", "c", 0.3),
		},
	}
	require.NoError(t, controller.LoadFrom(context.Background(), source))
}

func TestViewController_RenderIsNoOpBeforeLoad(t *testing.T) {
	// Arrange
	controller, renderer, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)

	// Act
	frame, err := controller.SetThreshold(context.Background(), 0.5)

	// Assert: no data yet, so nothing reaches the renderer and no error
	// surfaces.
	require.NoError(t, err)
	assert.Empty(t, renderer.frames)
	assert.Empty(t, frame.Clusters)
	assert.InDelta(t, 0.5, frame.Threshold, 1e-9)
}

func TestViewController_LoadRendersInitialFrame(t *testing.T) {
	// Arrange
	controller, renderer, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)

	// Act
	loadScenario(t, controller)

	// Assert
	require.Len(t, renderer.frames, 1)
	frame := renderer.frames[0]
	require.Len(t, frame.Clusters, 1)
	assert.Equal(t, "GroupX", frame.Clusters[0].ID)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, frame.Clusters[0].Members)
	assert.InDelta(t, 1.1, frame.Clusters[0].Weight, 1e-9)
	assert.Equal(t, valueobjects.ViewPie, frame.View)
}

func TestViewController_SetThresholdClampsAndRerenders(t *testing.T) {
	// Arrange
	controller, renderer, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)

	// Act: out-of-range request clamps to the ceiling, splitting the
	// group apart entirely.
	frame, err := controller.SetThreshold(context.Background(), 1.5)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 0.96, frame.Threshold, 1e-9)
	assert.Len(t, renderer.frames, 2)
}

func TestViewController_SetView(t *testing.T) {
	// Arrange
	controller, renderer, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)

	// Act
	frame, err := controller.SetView(context.Background(), "force")

	// Assert: same threshold, recomputed frame, new encoding.
	require.NoError(t, err)
	assert.Equal(t, valueobjects.ViewForce, frame.View)
	assert.InDelta(t, 0.2, frame.Threshold, 1e-9)
	require.Len(t, renderer.frames, 2)
	assert.Equal(t, renderer.frames[0].Clusters, renderer.frames[1].Clusters)
}

func TestViewController_SetView_RejectsUnknownMode(t *testing.T) {
	controller, renderer, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)

	_, err := controller.SetView(context.Background(), "donut")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
	assert.Len(t, renderer.frames, 1, "a rejected mode must not re-render")
}

func TestViewController_InvalidInitialViewFallsBackToPie(t *testing.T) {
	controller, _, _, _ := newTestController(t, 0.2, valueobjects.ViewMode("spiral"))

	frame := controller.Snapshot(context.Background())

	assert.Equal(t, valueobjects.ViewPie, frame.View)
}

func TestViewController_ApplyWeightEdit_RoundTrip(t *testing.T) {
	// Arrange: at threshold 0.5 the scenario renders one visible cluster.
	controller, renderer, _, _ := newTestController(t, 0.5, valueobjects.ViewPie)
	loadScenario(t, controller)

	// Act: pushing (b,c) above the threshold merges the group back into
	// one component.
	frame, err := controller.ApplyWeightEdit(context.Background(), "e2", 0.9)

	// Assert
	require.NoError(t, err)
	require.Len(t, frame.Clusters, 1)
	assert.Equal(t, "GroupX", frame.Clusters[0].ID)
	assert.InDelta(t, 0.8+0.9, frame.Clusters[0].Weight, 1e-9)
	assert.Len(t, renderer.frames, 2)

	// The mutation sticks: the editing collaborator reads the new weight
	// back through the same key.
	id, weight, err := controller.EdgeWeight("e2")
	require.NoError(t, err)
	assert.Equal(t, "e2", id)
	assert.InDelta(t, 0.9, weight, 1e-9)
}

func TestViewController_ApplyWeightEdit_CompositeKeyFallback(t *testing.T) {
	controller, _, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)

	frame, err := controller.ApplyWeightEdit(context.Background(), "b->c", 0.05)

	require.NoError(t, err)
	require.Len(t, frame.Clusters, 2, "the weakened edge drops below the threshold")

	_, weight, err := controller.EdgeWeight("b->c")
	require.NoError(t, err)
	assert.InDelta(t, 0.05, weight, 1e-9)
}

func TestViewController_ApplyWeightEdit_UnknownEdge(t *testing.T) {
	controller, renderer, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)

	_, err := controller.ApplyWeightEdit(context.Background(), "missing", 0.5)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Len(t, renderer.frames, 1, "a failed edit must not re-render")
}

func TestViewController_LoadFrom_SourceFailure(t *testing.T) {
	controller, renderer, _, state := newTestController(t, 0.2, valueobjects.ViewPie)

	err := controller.LoadFrom(context.Background(), &stubSource{err: errors.New("fetch: connection refused")})

	require.Error(t, err)
	assert.False(t, state.IsLoaded())
	assert.Empty(t, renderer.frames)
}

func TestViewController_RendererFailureSurfacesAsInternal(t *testing.T) {
	controller, renderer, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)
	renderer.err = errors.New("canvas gone")

	_, err := controller.SetThreshold(context.Background(), 0.4)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsInternal(err))
}

func TestViewController_ClusterDetail(t *testing.T) {
	// Arrange
	controller, _, sink, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)

	// Act
	detail, err := controller.ClusterDetail(context.Background(), "GroupX")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "GroupX (weight 1.10): Alpha, Beta, Gamma", detail)
	assert.Equal(t, []string{detail}, sink.details)
}

func TestViewController_ClusterDetail_NotFound(t *testing.T) {
	controller, _, sink, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)

	_, err := controller.ClusterDetail(context.Background(), "GroupZ")

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
	assert.Empty(t, sink.details)
}

func TestViewController_SnapshotDoesNotRender(t *testing.T) {
	controller, renderer, _, _ := newTestController(t, 0.2, valueobjects.ViewPie)
	loadScenario(t, controller)
	rendered := len(renderer.frames)

	frame := controller.Snapshot(context.Background())

	assert.Len(t, renderer.frames, rendered, "read paths must not delegate to the renderer")
	require.Len(t, frame.Clusters, 1)
	assert.Equal(t, "GroupX", frame.Clusters[0].ID)
}
