package handlers

import (
	"net/http"

	"clusterview-backend/application/ports"
	"clusterview-backend/application/services"
	"clusterview-backend/domain/core/aggregates"

	"go.uber.org/zap"
)

// GraphHandler serves graph-level operations: stats and re-ingestion.
type GraphHandler struct {
	controller *services.ViewController
	state      *aggregates.GraphState
	source     ports.GraphSource
	logger     *zap.Logger
}

// NewGraphHandler creates a new graph handler.
func NewGraphHandler(
	controller *services.ViewController,
	state *aggregates.GraphState,
	source ports.GraphSource,
	logger *zap.Logger,
) *GraphHandler {
	return &GraphHandler{controller: controller, state: state, source: source, logger: logger}
}

type graphStatsResponse struct {
	Loaded    bool `json:"loaded"`
	NodeCount int  `json:"nodeCount"`
	EdgeCount int  `json:"edgeCount"`
}

// GetStats handles GET /graph/stats.
func (h *GraphHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, graphStatsResponse{
		Loaded:    h.state.IsLoaded(),
		NodeCount: h.state.NodeCount(),
		EdgeCount: h.state.EdgeCount(),
	})
}

// Reload handles POST /graph/reload: re-ingest the configured document.
func (h *GraphHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.LoadFrom(r.Context(), h.source); err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, graphStatsResponse{
		Loaded:    h.state.IsLoaded(),
		NodeCount: h.state.NodeCount(),
		EdgeCount: h.state.EdgeCount(),
	})
}
