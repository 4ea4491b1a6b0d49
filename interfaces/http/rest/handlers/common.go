package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "clusterview-backend/pkg/errors"

	"go.uber.org/zap"
)

// respondJSON writes a JSON response with the given status.
func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// respondError maps application errors onto HTTP status codes.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError

	var appErr *pkgerrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case pkgerrors.ErrorTypeValidation:
			status = http.StatusBadRequest
		case pkgerrors.ErrorTypeNotFound:
			status = http.StatusNotFound
		case pkgerrors.ErrorTypeConflict:
			status = http.StatusConflict
		}
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}

	respondJSON(w, logger, status, map[string]string{"error": err.Error()})
}
