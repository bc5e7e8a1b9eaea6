package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/observability"
	"github.com/RodCacioli/Authos-v2/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MemoryHandler handles memory bank HTTP requests
type MemoryHandler struct {
	memories   *services.MemoryService
	generation *services.GenerationService
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(
	memories *services.MemoryService,
	generation *services.GenerationService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *MemoryHandler {
	return &MemoryHandler{memories: memories, generation: generation, metrics: metrics, logger: logger}
}

// CreateMemoryRequest is the request body for adding a memory
type CreateMemoryRequest struct {
	Type          string   `json:"type" validate:"omitempty,oneof=STORY BELIEF FAILURE LESSON ANALOGY EMOTION FACT STYLE_REFERENCE PERSONA"`
	Title         string   `json:"title" validate:"omitempty,max=300"`
	Content       string   `json:"content" validate:"required"`
	Tags          []string `json:"tags" validate:"omitempty,max=20"`
	EmotionalTone string   `json:"emotionalTone"`
	SourceAudio   bool     `json:"sourceAudio"`
	// Enrich asks the generator to fill in title, type and tags when the
	// caller left them blank.
	Enrich bool `json:"enrich"`
}

// UpdateMemoryRequest carries the mutable fields of a memory
type UpdateMemoryRequest struct {
	Title         string   `json:"title" validate:"required,max=300"`
	Content       string   `json:"content" validate:"required"`
	Tags          []string `json:"tags" validate:"omitempty,max=20"`
	EmotionalTone string   `json:"emotionalTone"`
	UsageCount    int      `json:"usageCount" validate:"omitempty,min=0"`
}

// ListMemories handles GET /memories, newest first.
func (h *MemoryHandler) ListMemories(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	memories, err := h.memories.List(r.Context(), sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, memories)
}

// CreateMemory handles POST /memories. The new memory is prepended and the
// whole updated collection comes back.
func (h *MemoryHandler) CreateMemory(w http.ResponseWriter, r *http.Request) {
	var req CreateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	m := domain.Memory{
		ID:            uuid.New().String(),
		Type:          domain.MemoryType(req.Type),
		Title:         req.Title,
		Content:       req.Content,
		Tags:          req.Tags,
		CreatedAt:     utils.NowRFC3339(),
		EmotionalTone: req.EmotionalTone,
		SourceAudio:   req.SourceAudio,
	}

	if req.Enrich && (m.Title == "" || m.Type == "") {
		suggestion := h.generation.EnrichMemory(r.Context(), req.Content)
		if m.Title == "" {
			m.Title = suggestion.Title
		}
		if m.Type == "" {
			m.Type = suggestion.Type
		}
		if len(m.Tags) == 0 {
			m.Tags = suggestion.Tags
		}
		if m.EmotionalTone == "" {
			m.EmotionalTone = suggestion.EmotionalTone
		}
	}
	if m.Type == "" {
		m.Type = domain.MemoryTypeStory
	}
	if m.Title == "" {
		m.Title = "New Memory"
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}

	sess := auth.SessionFromContext(r.Context())
	memories, err := h.memories.Add(r.Context(), sess, m)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	h.metrics.MemoriesCreated.Inc()
	respondJSON(w, h.logger, http.StatusCreated, memories)
}

// UpdateMemory handles PUT /memories/{memoryID}. Only the mutable fields
// change; type and creation time never do.
func (h *MemoryHandler) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	memoryID := chi.URLParam(r, "memoryID")

	var req UpdateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sess := auth.SessionFromContext(r.Context())
	memories, err := h.memories.Update(r.Context(), sess, domain.Memory{
		ID:            memoryID,
		Title:         req.Title,
		Content:       req.Content,
		Tags:          req.Tags,
		EmotionalTone: req.EmotionalTone,
		UsageCount:    req.UsageCount,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, memories)
}

// DeleteMemory handles DELETE /memories/{memoryID}. Deleting an unknown id
// succeeds.
func (h *MemoryHandler) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	memoryID := chi.URLParam(r, "memoryID")

	sess := auth.SessionFromContext(r.Context())
	memories, err := h.memories.Delete(r.Context(), sess, memoryID)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, memories)
}
