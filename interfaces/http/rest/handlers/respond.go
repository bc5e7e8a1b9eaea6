// Package handlers contains the HTTP request handlers. Each handler decodes
// and validates its request, resolves the session from the request context
// and delegates to an application service.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/RodCacioli/Authos-v2/pkg/errors"

	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// respondAppError maps application error types to HTTP status codes.
func respondAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case apperrors.IsValidation(err):
		respondError(w, logger, http.StatusBadRequest, err.Error())
	case apperrors.IsNotFound(err):
		respondError(w, logger, http.StatusNotFound, err.Error())
	case apperrors.IsUnauthorized(err):
		respondError(w, logger, http.StatusUnauthorized, err.Error())
	case apperrors.IsUnavailable(err):
		respondError(w, logger, http.StatusServiceUnavailable, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		respondError(w, logger, http.StatusInternalServerError, "internal error")
	}
}
