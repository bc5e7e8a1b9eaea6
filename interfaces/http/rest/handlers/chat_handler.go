package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/utils"

	"go.uber.org/zap"
)

// ChatHandler handles the memory-grounded assistant conversation
type ChatHandler struct {
	chat       *services.ChatService
	profiles   *services.ProfileService
	memories   *services.MemoryService
	generation *services.GenerationService
	logger     *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	chat *services.ChatService,
	profiles *services.ProfileService,
	memories *services.MemoryService,
	generation *services.GenerationService,
	logger *zap.Logger,
) *ChatHandler {
	return &ChatHandler{
		chat:       chat,
		profiles:   profiles,
		memories:   memories,
		generation: generation,
		logger:     logger,
	}
}

// ChatRequest is one user turn
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries the assistant reply and the updated history
type ChatResponse struct {
	Reply   string               `json:"reply"`
	History []domain.ChatMessage `json:"history"`
}

// GetHistory handles GET /chat/history. Chat history is local-only.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	history, err := h.chat.Load(r.Context(), sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, history)
}

// SendMessage handles POST /chat: answers the turn grounded in the profile
// and memory bank, then appends both turns to the stored history.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := r.Context()
	sess := auth.SessionFromContext(ctx)

	profile := domain.Profile{}
	if p, err := h.profiles.Load(ctx, sess); err == nil && p != nil {
		profile = *p
	}
	memories, err := h.memories.List(ctx, sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	history, err := h.chat.Load(ctx, sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	reply := h.generation.Chat(ctx, profile, memories, history, req.Message)

	now := time.Now().UnixMilli()
	updated, err := h.chat.Append(ctx, sess,
		domain.ChatMessage{Role: domain.RoleUser, Text: req.Message, Timestamp: now},
		domain.ChatMessage{Role: domain.RoleModel, Text: reply, Timestamp: time.Now().UnixMilli()},
	)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, ChatResponse{Reply: reply, History: updated})
}

// ClearHistory handles DELETE /chat/history
func (h *ChatHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if err := h.chat.Clear(r.Context(), sess); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "cleared"})
}
