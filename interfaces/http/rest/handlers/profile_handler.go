package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/utils"

	"go.uber.org/zap"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profiles *services.ProfileService
	local    ports.LocalStore
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *services.ProfileService, local ports.LocalStore, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, local: local, logger: logger}
}

// SaveProfileRequest is the request body for replacing the profile
type SaveProfileRequest struct {
	Name               string   `json:"name" validate:"required,max=200"`
	Niche              string   `json:"niche"`
	Values             []string `json:"values"`
	ContrarianViews    []string `json:"contrarianViews"`
	Audience           string   `json:"audience"`
	Tone               string   `json:"tone"`
	EmojiUsage         string   `json:"emojiUsage" validate:"omitempty,oneof=none minimal heavy"`
	OnboardingComplete bool     `json:"onboardingComplete"`
	VoiceAnalysis      string   `json:"voiceAnalysis"`
}

func (r SaveProfileRequest) toDomain() domain.Profile {
	emoji := r.EmojiUsage
	if emoji == "" {
		emoji = string(domain.EmojiMinimal)
	}
	return domain.Profile{
		Name:               r.Name,
		Niche:              r.Niche,
		Values:             r.Values,
		ContrarianViews:    r.ContrarianViews,
		Audience:           r.Audience,
		Tone:               r.Tone,
		EmojiUsage:         domain.EmojiUsage(emoji),
		OnboardingComplete: r.OnboardingComplete,
		VoiceAnalysis:      r.VoiceAnalysis,
	}
}

// GetProfile handles GET /profile. A missing profile is a JSON null body,
// not an error.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())

	profile, err := h.profiles.Load(r.Context(), sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, profile)
}

// SaveProfile handles PUT /profile, replacing the profile wholesale.
func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile := req.toDomain()
	sess := auth.SessionFromContext(r.Context())
	if err := h.profiles.Store(r.Context(), sess, profile); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, profile)
}

// ClearStorage handles DELETE /storage, wiping every collection for the
// current session scope in the local store. Remote rows are untouched.
func (h *ProfileHandler) ClearStorage(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFromContext(r.Context())
	if err := services.ClearAll(r.Context(), h.local, sess); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "cleared"})
}
