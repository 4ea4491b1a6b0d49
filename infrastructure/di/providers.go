package di

import (
	"net/http"

	"clusterview-backend/application/ports"
	"clusterview-backend/application/services"
	"clusterview-backend/domain/core/aggregates"
	"clusterview-backend/domain/core/valueobjects"
	domainservices "clusterview-backend/domain/services"
	"clusterview-backend/infrastructure/config"
	"clusterview-backend/infrastructure/ingestion"
	"clusterview-backend/infrastructure/persistence/memory"
	"clusterview-backend/infrastructure/rendering"
	"clusterview-backend/interfaces/http/rest"
	"clusterview-backend/pkg/observability"

	"go.uber.org/zap"
)

// ProvideLogger creates a zap logger based on the environment
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}

	logCfg := zap.NewDevelopmentConfig()
	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		logCfg.Level = level
	}
	return logCfg.Build()
}

// ProvideMetrics creates the Prometheus metrics collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("clusterview")
}

// ProvideClassifier creates the keyword classifier used to group unlabeled nodes
func ProvideClassifier() domainservices.GroupClassifier {
	return domainservices.NewKeywordClassifier(domainservices.DefaultRules(), domainservices.DefaultGroup)
}

// ProvideClusterer creates the clustering service
func ProvideClusterer() *domainservices.Clusterer {
	return domainservices.NewClusterer()
}

// ProvideGraphState creates the in-memory graph aggregate
func ProvideGraphState() *aggregates.GraphState {
	return aggregates.NewGraphState()
}

// ProvideGraphSource creates the document loader
func ProvideGraphSource(cfg *config.Config, classifier domainservices.GroupClassifier, logger *zap.Logger) ports.GraphSource {
	return ingestion.NewDocumentLoader(cfg, classifier, logger)
}

// ProvideRenderer creates the frame renderer
func ProvideRenderer(logger *zap.Logger) ports.Renderer {
	return rendering.NewLogRenderer(logger)
}

// ProvideDetailSink creates the cluster detail sink
func ProvideDetailSink(logger *zap.Logger) ports.DetailSink {
	return rendering.NewLogDetailSink(logger)
}

// ProvideViewController creates the view controller with defaults from config
func ProvideViewController(
	cfg *config.Config,
	state *aggregates.GraphState,
	clusterer *domainservices.Clusterer,
	renderer ports.Renderer,
	detail ports.DetailSink,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.ViewController {
	return services.NewViewController(state, clusterer, renderer, detail, logger, metrics, cfg.DefaultThreshold, valueobjects.ViewMode(cfg.DefaultView))
}

// ProvideSnapshotStore creates the snapshot store
func ProvideSnapshotStore(cfg *config.Config, logger *zap.Logger) *memory.SnapshotStore {
	return memory.NewSnapshotStore(cfg.SnapshotDir, logger)
}

// ProvideHandler builds the HTTP handler from the router
func ProvideHandler(
	cfg *config.Config,
	controller *services.ViewController,
	state *aggregates.GraphState,
	source ports.GraphSource,
	snapshots *memory.SnapshotStore,
	collector *observability.Collector,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(controller, state, source, snapshots, collector, logger, cfg.EnableCORS).Setup()
}
