package handlers

import (
	"net/http"

	"clusterview-backend/application/services"
	"clusterview-backend/infrastructure/persistence/memory"
	pkgerrors "clusterview-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SnapshotHandler exports the current frame as a client-local snapshot.
type SnapshotHandler struct {
	controller *services.ViewController
	store      *memory.SnapshotStore
	logger     *zap.Logger
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(controller *services.ViewController, store *memory.SnapshotStore, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{controller: controller, store: store, logger: logger}
}

// Export handles POST /snapshots.
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	frame := h.controller.Snapshot(r.Context())
	if len(frame.Clusters) == 0 {
		respondError(w, h.logger, pkgerrors.NewConflict("nothing to export: no visible clusters"))
		return
	}

	snapshot, err := h.store.Export(r.Context(), frame)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, snapshot)
}

// Get handles GET /snapshots/{snapshotID}.
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "snapshotID")
	snapshot, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, snapshot)
}

// List handles GET /snapshots.
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, h.store.List(r.Context()))
}
