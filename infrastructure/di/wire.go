//go:build wireinject
// +build wireinject

package di

import (
	"net/http"

	"clusterview-backend/application/ports"
	"clusterview-backend/application/services"
	"clusterview-backend/domain/core/aggregates"
	domainservices "clusterview-backend/domain/services"
	"clusterview-backend/infrastructure/config"
	"clusterview-backend/infrastructure/persistence/memory"
	"clusterview-backend/pkg/observability"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Metrics       *observability.Collector
	Classifier    domainservices.GroupClassifier
	Clusterer     *domainservices.Clusterer
	GraphState    *aggregates.GraphState
	GraphSource   ports.GraphSource
	Renderer      ports.Renderer
	DetailSink    ports.DetailSink
	Controller    *services.ViewController
	SnapshotStore *memory.SnapshotStore
	Handler       http.Handler
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideClassifier,
	ProvideClusterer,
	ProvideGraphState,
	ProvideGraphSource,
	ProvideRenderer,
	ProvideDetailSink,
	ProvideViewController,
	ProvideSnapshotStore,
	ProvideHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
