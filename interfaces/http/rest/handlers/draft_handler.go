package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DraftHandler handles content draft HTTP requests
type DraftHandler struct {
	drafts *services.DraftService
	logger *zap.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(drafts *services.DraftService, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{drafts: drafts, logger: logger}
}

// DraftRequest is one draft in a save request
type DraftRequest struct {
	ID            string `json:"id"`
	Title         string `json:"title" validate:"omitempty,max=300"`
	Content       string `json:"content" validate:"required"`
	Platform      string `json:"platform" validate:"required,oneof=twitter linkedin blog instagram"`
	Status        string `json:"status" validate:"omitempty,oneof=draft scheduled published"`
	Date          string `json:"date"`
	ScheduledDate string `json:"scheduledDate"`
}

func (r DraftRequest) toDomain() domain.ContentDraft {
	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}
	status := r.Status
	if status == "" {
		status = string(domain.StatusDraft)
	}
	return domain.ContentDraft{
		ID:            id,
		Title:         r.Title,
		Content:       r.Content,
		Platform:      domain.Platform(r.Platform),
		Status:        domain.DraftStatus(status),
		Date:          r.Date,
		ScheduledDate: r.ScheduledDate,
	}
}

// ListDrafts handles GET /drafts
func (h *DraftHandler) ListDrafts(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	drafts, err := h.drafts.List(r.Context(), sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, drafts)
}

// SaveDrafts handles PUT /drafts, replacing the whole collection. Drafts
// missing from the array are deleted.
func (h *DraftHandler) SaveDrafts(w http.ResponseWriter, r *http.Request) {
	var reqs []DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	drafts := make([]domain.ContentDraft, len(reqs))
	for i, req := range reqs {
		if err := utils.ValidateStruct(req); err != nil {
			respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
		drafts[i] = req.toDomain()
	}

	sess := auth.SessionFromContext(r.Context())
	if err := h.drafts.SaveAll(r.Context(), sess, drafts); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, drafts)
}

// UpsertDraft handles POST /drafts: replace the draft with a matching id or
// prepend it, then return the saved collection.
func (h *DraftHandler) UpsertDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sess := auth.SessionFromContext(r.Context())
	drafts, err := h.drafts.Upsert(r.Context(), sess, req.toDomain())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, drafts)
}
