package handlers

import (
	"encoding/json"
	"net/http"

	"clusterview-backend/application/services"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EdgeHandler serves the edit-widget integration: reading an edge's
// current weight and applying a confirmed edit. The edgeID path segment
// accepts either the stable edge id or the source->target composite key.
type EdgeHandler struct {
	controller *services.ViewController
	logger     *zap.Logger
}

// NewEdgeHandler creates a new edge handler.
func NewEdgeHandler(controller *services.ViewController, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{controller: controller, logger: logger}
}

type edgeResponse struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}

// GetEdge handles GET /edges/{edgeID}: the identifier and current weight
// handed to the editing collaborator.
func (h *EdgeHandler) GetEdge(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "edgeID")
	if key == "" {
		respondError(w, h.logger, pkgerrors.NewValidation("edge id is required"))
		return
	}

	id, weight, err := h.controller.EdgeWeight(key)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, edgeResponse{ID: id, Weight: weight})
}

type weightEditRequest struct {
	Weight *float64 `json:"weight"`
}

// PatchWeight handles PATCH /edges/{edgeID}/weight. Non-numeric payloads
// never reach the controller; the range check lives in the domain.
func (h *EdgeHandler) PatchWeight(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "edgeID")
	if key == "" {
		respondError(w, h.logger, pkgerrors.NewValidation("edge id is required"))
		return
	}

	var req weightEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Weight == nil {
		respondError(w, h.logger, pkgerrors.NewValidation("weight must be a number"))
		return
	}

	frame, err := h.controller.ApplyWeightEdit(r.Context(), key, *req.Weight)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, frame)
}
