package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"clusterview-backend/application/ports"
	"clusterview-backend/domain/core/aggregates"
	"clusterview-backend/domain/core/valueobjects"
	domainservices "clusterview-backend/domain/services"
	pkgerrors "clusterview-backend/pkg/errors"
	"clusterview-backend/pkg/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("clusterview-backend/application/services")

// ViewController holds the interactive state of the visualization: the
// current threshold and view mode. Every trigger (threshold change, view
// switch, weight edit, document load) runs the same path: recompute the
// full cluster set and hand the resulting frame to the renderer. There
// is no incremental clustering and no caching worth protecting; a full
// recompute is linear in nodes + edges.
type ViewController struct {
	state     *aggregates.GraphState
	clusterer *domainservices.Clusterer
	renderer  ports.Renderer
	detail    ports.DetailSink
	logger    *zap.Logger
	metrics   *observability.Collector

	// mu serializes triggers: the original runs on a single-threaded
	// event loop, here concurrent HTTP requests take turns instead.
	mu        sync.Mutex
	threshold valueobjects.Threshold
	view      valueobjects.ViewMode
}

// NewViewController creates a controller with its collaborators and the
// configured initial threshold and view mode.
func NewViewController(
	state *aggregates.GraphState,
	clusterer *domainservices.Clusterer,
	renderer ports.Renderer,
	detail ports.DetailSink,
	logger *zap.Logger,
	metrics *observability.Collector,
	initialThreshold float64,
	initialView valueobjects.ViewMode,
) *ViewController {
	if !initialView.IsValid() {
		initialView = valueobjects.ViewPie
	}

	return &ViewController{
		state:     state,
		clusterer: clusterer,
		renderer:  renderer,
		detail:    detail,
		logger:    logger,
		metrics:   metrics,
		threshold: valueobjects.ClampThreshold(initialThreshold),
		view:      initialView,
	}
}

// SetThreshold clamps the requested threshold into [0, 0.96], stores it,
// and re-renders through the standard path.
func (vc *ViewController) SetThreshold(ctx context.Context, raw float64) (ports.Frame, error) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	vc.threshold = valueobjects.ClampThreshold(raw)
	vc.logger.Debug("threshold updated",
		zap.Float64("requested", raw),
		zap.Float64("applied", vc.threshold.Float()),
	)

	return vc.render(ctx)
}

// SetView switches the visual encoding and re-renders at the current
// threshold. Recomputation is cheap enough that no snapshot is cached.
func (vc *ViewController) SetView(ctx context.Context, rawMode string) (ports.Frame, error) {
	mode, err := valueobjects.ParseViewMode(rawMode)
	if err != nil {
		return ports.Frame{}, err
	}

	vc.mu.Lock()
	defer vc.mu.Unlock()

	vc.view = mode
	vc.logger.Debug("view mode updated", zap.String("mode", mode.String()))

	return vc.render(ctx)
}

// ApplyWeightEdit handles a confirmed edit from the editing collaborator.
// The edge is matched by stable id, falling back to the source->target
// composite key, and its weight is mutated in place before the recompute.
// The weight arrives pre-validated as a float in [0,1]; the entity
// re-checks the range, nothing downstream does.
func (vc *ViewController) ApplyWeightEdit(ctx context.Context, edgeKey string, weight float64) (ports.Frame, error) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	if err := vc.state.UpdateEdgeWeight(edgeKey, weight); err != nil {
		return ports.Frame{}, err
	}

	vc.metrics.WeightEdits.Inc()
	vc.logger.Info("edge weight updated",
		zap.String("edge", edgeKey),
		zap.Float64("weight", weight),
	)

	return vc.render(ctx)
}

// EdgeWeight exposes an edge's identity and current weight to the
// editing collaborator.
func (vc *ViewController) EdgeWeight(edgeKey string) (string, float64, error) {
	edge, err := vc.state.FindEdge(edgeKey)
	if err != nil {
		return "", 0, err
	}
	return edge.ID(), edge.Weight(), nil
}

// LoadFrom ingests a document from the source, replaces the session
// state, and renders the initial frame.
func (vc *ViewController) LoadFrom(ctx context.Context, source ports.GraphSource) error {
	nodes, edges, err := source.Load(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "document load failed")
	}

	vc.mu.Lock()
	defer vc.mu.Unlock()

	if err := vc.state.Load(nodes, edges); err != nil {
		return err
	}

	vc.metrics.DocumentLoads.Inc()
	vc.logger.Info("document loaded",
		zap.Int("nodes", len(nodes)),
		zap.Int("edges", len(edges)),
	)

	_, err = vc.render(ctx)
	return err
}

// Snapshot recomputes the current frame without delegating to the
// renderer. Used by read paths that only inspect state.
func (vc *ViewController) Snapshot(ctx context.Context) ports.Frame {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.compute(ctx)
}

// ClusterDetail formats the selected cluster for the detail-display
// collaborator: id, weight to two decimals, and up to 18 member labels
// with a "+N more" suffix beyond that.
func (vc *ViewController) ClusterDetail(ctx context.Context, clusterID string) (string, error) {
	vc.mu.Lock()
	frame := vc.compute(ctx)
	vc.mu.Unlock()

	for _, cluster := range frame.Clusters {
		if cluster.ID != clusterID {
			continue
		}
		detail := FormatClusterDetail(cluster)
		if vc.detail != nil {
			if err := vc.detail.ShowDetail(ctx, detail); err != nil {
				vc.logger.Warn("detail sink failed", zap.Error(err))
			}
		}
		return detail, nil
	}

	return "", pkgerrors.NewNotFound("cluster: " + clusterID)
}

// render recomputes and forwards the frame to the active renderer.
// Callers hold the controller lock.
func (vc *ViewController) render(ctx context.Context) (ports.Frame, error) {
	if !vc.state.IsLoaded() {
		// No data yet: render is a no-op, not an error.
		vc.logger.Debug("render skipped, no document loaded")
		return ports.Frame{View: vc.view, Threshold: vc.threshold.Float()}, nil
	}

	frame := vc.compute(ctx)

	if err := vc.renderer.Render(ctx, frame); err != nil {
		return frame, pkgerrors.NewInternal("renderer failed", err)
	}

	vc.drainEvents()
	return frame, nil
}

// compute runs the clusterer against the current state and shapes the
// result for collaborators. Callers hold the controller lock.
func (vc *ViewController) compute(ctx context.Context) ports.Frame {
	if !vc.state.IsLoaded() {
		return ports.Frame{View: vc.view, Threshold: vc.threshold.Float()}
	}

	_, span := tracer.Start(ctx, "clusterer.compute")
	defer span.End()

	nodes, edges := vc.state.Snapshot()

	started := time.Now()
	clusters := vc.clusterer.Cluster(nodes, edges, vc.threshold)
	elapsed := time.Since(started)

	vc.metrics.Clusterings.Inc()
	vc.metrics.ClusteringDuration.Observe(elapsed.Seconds())
	vc.metrics.VisibleClusters.Set(float64(len(clusters)))

	views := make([]ports.ClusterView, 0, len(clusters))
	for _, cluster := range clusters {
		labels := make([]string, 0, len(cluster.Members))
		for _, member := range cluster.Members {
			if label, ok := vc.state.LabelFor(member); ok {
				labels = append(labels, label)
			}
		}
		sort.Strings(labels)

		views = append(views, ports.ClusterView{
			ID:          cluster.ID,
			Weight:      cluster.Weight,
			Members:     labels,
			MemberCount: len(cluster.Members),
		})
	}

	span.SetAttributes(
		attribute.Float64("threshold", vc.threshold.Float()),
		attribute.Int("clusters.visible", len(views)),
	)

	return ports.Frame{
		Clusters:  views,
		View:      vc.view,
		Threshold: vc.threshold.Float(),
	}
}

// drainEvents logs and clears whatever the aggregate recorded since the
// last trigger.
func (vc *ViewController) drainEvents() {
	for _, event := range vc.state.GetUncommittedEvents() {
		vc.logger.Debug("domain event",
			zap.String("type", event.GetEventType()),
			zap.Time("at", event.GetTimestamp()),
		)
	}
	vc.state.MarkEventsAsCommitted()
}
