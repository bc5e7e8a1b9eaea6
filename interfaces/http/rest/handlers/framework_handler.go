package handlers

import (
	"net/http"

	"github.com/RodCacioli/Authos-v2/domain"

	"go.uber.org/zap"
)

// FrameworkHandler serves the static writing catalogs: intentions, formats,
// focus areas and copywriting frameworks.
type FrameworkHandler struct {
	logger *zap.Logger
}

// NewFrameworkHandler creates a new framework handler
func NewFrameworkHandler(logger *zap.Logger) *FrameworkHandler {
	return &FrameworkHandler{logger: logger}
}

// ListCatalogs handles GET /frameworks, returning every catalog in one
// response.
func (h *FrameworkHandler) ListCatalogs(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"intentions": domain.Intentions,
		"formats":    domain.Formats,
		"focusAreas": domain.FocusAreas,
		"frameworks": domain.Frameworks,
	})
}
