package rest

import (
	"net/http"

	"clusterview-backend/application/ports"
	"clusterview-backend/application/services"
	"clusterview-backend/domain/core/aggregates"
	"clusterview-backend/infrastructure/persistence/memory"
	"clusterview-backend/interfaces/http/rest/handlers"
	"clusterview-backend/interfaces/http/rest/middleware"
	"clusterview-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	controller *services.ViewController
	state      *aggregates.GraphState
	source     ports.GraphSource
	snapshots  *memory.SnapshotStore
	collector  *observability.Collector
	logger     *zap.Logger
	enableCORS bool
}

// NewRouter creates a new router instance
func NewRouter(
	controller *services.ViewController,
	state *aggregates.GraphState,
	source ports.GraphSource,
	snapshots *memory.SnapshotStore,
	collector *observability.Collector,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		controller: controller,
		state:      state,
		source:     source,
		snapshots:  snapshots,
		collector:  collector,
		logger:     logger,
		enableCORS: enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.collector))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health and metrics
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Method(http.MethodGet, "/metrics", rt.collector.Handler())

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		clusterHandler := handlers.NewClusterHandler(rt.controller, rt.logger)
		r.Route("/clusters", func(r chi.Router) {
			r.Get("/", clusterHandler.GetClusters)
			r.Get("/{clusterID}/detail", clusterHandler.GetClusterDetail)
		})

		r.Route("/view", func(r chi.Router) {
			r.Put("/threshold", clusterHandler.SetThreshold)
			r.Put("/mode", clusterHandler.SetView)
		})

		edgeHandler := handlers.NewEdgeHandler(rt.controller, rt.logger)
		r.Route("/edges", func(r chi.Router) {
			r.Get("/{edgeID}", edgeHandler.GetEdge)
			r.Patch("/{edgeID}/weight", edgeHandler.PatchWeight)
		})

		graphHandler := handlers.NewGraphHandler(rt.controller, rt.state, rt.source, rt.logger)
		r.Route("/graph", func(r chi.Router) {
			r.Get("/stats", graphHandler.GetStats)
			r.Post("/reload", graphHandler.Reload)
		})

		snapshotHandler := handlers.NewSnapshotHandler(rt.controller, rt.snapshots, rt.logger)
		r.Route("/snapshots", func(r chi.Router) {
			r.Post("/", snapshotHandler.Export)
			r.Get("/", snapshotHandler.List)
			r.Get("/{snapshotID}", snapshotHandler.Get)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck reports ready once a document has been ingested.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !rt.state.IsLoaded() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"waiting for document"}`))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
