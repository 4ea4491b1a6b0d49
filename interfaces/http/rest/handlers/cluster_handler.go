package handlers

import (
	"encoding/json"
	"net/http"

	"clusterview-backend/application/services"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ClusterHandler serves the cluster snapshot and the view-state triggers
// (threshold slider, view switch).
type ClusterHandler struct {
	controller *services.ViewController
	logger     *zap.Logger
}

// NewClusterHandler creates a new cluster handler.
func NewClusterHandler(controller *services.ViewController, logger *zap.Logger) *ClusterHandler {
	return &ClusterHandler{controller: controller, logger: logger}
}

// GetClusters handles GET /clusters: the current frame without a render
// side effect.
func (h *ClusterHandler) GetClusters(w http.ResponseWriter, r *http.Request) {
	frame := h.controller.Snapshot(r.Context())
	respondJSON(w, h.logger, http.StatusOK, frame)
}

type setThresholdRequest struct {
	Threshold float64 `json:"threshold"`
}

// SetThreshold handles PUT /view/threshold. Out-of-range values are
// clamped, never rejected.
func (h *ClusterHandler) SetThreshold(w http.ResponseWriter, r *http.Request) {
	var req setThresholdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, pkgerrors.NewValidation("threshold must be a number"))
		return
	}

	frame, err := h.controller.SetThreshold(r.Context(), req.Threshold)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, frame)
}

type setViewRequest struct {
	Mode string `json:"mode"`
}

// SetView handles PUT /view/mode.
func (h *ClusterHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req setViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, pkgerrors.NewValidation("mode must be a string"))
		return
	}

	frame, err := h.controller.SetView(r.Context(), req.Mode)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, frame)
}

// GetClusterDetail handles GET /clusters/{clusterID}/detail: the
// formatted selection string for the detail display.
func (h *ClusterHandler) GetClusterDetail(w http.ResponseWriter, r *http.Request) {
	clusterID := chi.URLParam(r, "clusterID")
	if clusterID == "" {
		respondError(w, h.logger, pkgerrors.NewValidation("cluster id is required"))
		return
	}

	detail, err := h.controller.ClusterDetail(r.Context(), clusterID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{"detail": detail})
}
