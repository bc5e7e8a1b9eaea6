package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/auth"
	"github.com/RodCacioli/Authos-v2/pkg/observability"
	"github.com/RodCacioli/Authos-v2/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerationHandler handles all text-generation HTTP requests. Generation
// failures surface as degraded content in a 200 response, never as errors.
type GenerationHandler struct {
	generation *services.GenerationService
	profiles   *services.ProfileService
	memories   *services.MemoryService
	products   *services.ProductService
	metrics    *observability.Collector
	logger     *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(
	generation *services.GenerationService,
	profiles *services.ProfileService,
	memories *services.MemoryService,
	products *services.ProductService,
	metrics *observability.Collector,
	logger *zap.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generation: generation,
		profiles:   profiles,
		memories:   memories,
		products:   products,
		metrics:    metrics,
		logger:     logger,
	}
}

// GenerateContentRequest selects everything the writer surface can dial in
type GenerateContentRequest struct {
	Topic           string `json:"topic" validate:"required"`
	Platform        string `json:"platform" validate:"required,oneof=twitter linkedin blog instagram"`
	FrameworkID     string `json:"frameworkId"`
	FormatID        string `json:"formatId"`
	FocusID         string `json:"focusId"`
	SourceMaterial  string `json:"sourceMaterial"`
	StyleReference  string `json:"styleReference"`
	ProductID       string `json:"productId"`
	PersonaMemoryID string `json:"personaMemoryId"`
}

// GenerateContentResponse carries the generated piece
type GenerateContentResponse struct {
	Content string `json:"content"`
}

// GenerateContent handles POST /generate/content
func (h *GenerationHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req GenerateContentRequest
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

	profile, memories := h.loadContext(w, r)
	if profile == nil {
		return
	}

	opts := services.GenerateOptions{
		Profile:        *profile,
		Memories:       memories,
		Topic:          req.Topic,
		Platform:       req.Platform,
		FrameworkID:    req.FrameworkID,
		FormatID:       req.FormatID,
		FocusID:        req.FocusID,
		SourceMaterial: req.SourceMaterial,
		StyleReference: req.StyleReference,
	}

	if req.ProductID != "" {
		products, err := h.products.List(ctx, sess)
		if err != nil {
			respondAppError(w, h.logger, err)
			return
		}
		for i := range products {
			if products[i].ID == req.ProductID {
				opts.Product = &products[i]
				break
			}
		}
	}

	if req.PersonaMemoryID != "" {
		for _, m := range memories {
			if m.ID == req.PersonaMemoryID && m.Type == domain.MemoryTypePersona {
				opts.Persona = m.Content
				break
			}
		}
	}

	content := h.generation.GenerateContent(ctx, opts)
	h.metrics.Generations.WithLabelValues("content", generationOutcome(content)).Inc()
	respondJSON(w, h.logger, http.StatusOK, GenerateContentResponse{Content: content})
}

// HumanizeRequest is the request body for the humanize pass
type HumanizeRequest struct {
	Content string `json:"content" validate:"required"`
}

// Humanize handles POST /generate/humanize. On failure the input comes back
// unchanged.
func (h *GenerationHandler) Humanize(w http.ResponseWriter, r *http.Request) {
	var req HumanizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, _ := h.loadContext(w, r)
	if profile == nil {
		return
	}

	content := h.generation.Humanize(r.Context(), req.Content, *profile)
	// Humanize hands the input back unchanged on failure, so an untouched
	// result is the degraded signal here.
	outcome := generationOutcome(content)
	if content == req.Content {
		outcome = "degraded"
	}
	h.metrics.Generations.WithLabelValues("humanize", outcome).Inc()
	respondJSON(w, h.logger, http.StatusOK, GenerateContentResponse{Content: content})
}

// RepurposeRequest is the request body for cross-platform rewriting
type RepurposeRequest struct {
	Content      string `json:"content" validate:"required"`
	FromPlatform string `json:"fromPlatform" validate:"required"`
	ToPlatform   string `json:"toPlatform" validate:"required,oneof=twitter linkedin blog instagram"`
}

// Repurpose handles POST /generate/repurpose
func (h *GenerationHandler) Repurpose(w http.ResponseWriter, r *http.Request) {
	var req RepurposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, _ := h.loadContext(w, r)
	if profile == nil {
		return
	}

	content := h.generation.Repurpose(r.Context(), req.Content, req.FromPlatform, req.ToPlatform, *profile)
	h.metrics.Generations.WithLabelValues("repurpose", generationOutcome(content)).Inc()
	respondJSON(w, h.logger, http.StatusOK, GenerateContentResponse{Content: content})
}

// AnglesRequest names the memory to build hooks from
type AnglesRequest struct {
	MemoryID string `json:"memoryId"`
	Content  string `json:"content"`
}

// Angles handles POST /generate/angles. The memory can be referenced by id
// or passed inline.
func (h *GenerationHandler) Angles(w http.ResponseWriter, r *http.Request) {
	var req AnglesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.MemoryID == "" && req.Content == "" {
		respondError(w, h.logger, http.StatusBadRequest, "memoryId or content is required")
		return
	}

	profile, memories := h.loadContext(w, r)
	if profile == nil {
		return
	}

	content := req.Content
	if req.MemoryID != "" {
		for _, m := range memories {
			if m.ID == req.MemoryID {
				content = m.Content
				break
			}
		}
		if content == "" {
			respondError(w, h.logger, http.StatusNotFound, "memory not found")
			return
		}
	}

	angles := h.generation.AnglesFromMemory(r.Context(), *profile, content)
	respondJSON(w, h.logger, http.StatusOK, map[string][]string{"angles": angles})
}

// BrainDumpRequest carries a block of unstructured thoughts
type BrainDumpRequest struct {
	Text string `json:"text" validate:"required"`
}

// BrainDump handles POST /generate/brain-dump: extracts content angles from
// raw unstructured text. Failures come back as an empty angle list.
func (h *GenerationHandler) BrainDump(w http.ResponseWriter, r *http.Request) {
	var req BrainDumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	angles := h.generation.AnalyzeBrainDump(r.Context(), req.Text)
	respondJSON(w, h.logger, http.StatusOK, map[string][]services.BrainDumpAngle{"angles": angles})
}

// Topics handles GET /generate/topics
func (h *GenerationHandler) Topics(w http.ResponseWriter, r *http.Request) {
	profile, memories := h.loadContext(w, r)
	if profile == nil {
		return
	}

	topics := h.generation.TopicSuggestions(r.Context(), *profile, memories)
	respondJSON(w, h.logger, http.StatusOK, map[string][]string{"topics": topics})
}

// Persona handles POST /generate/persona: turns questionnaire answers into a
// structured debriefing and stores it as a PERSONA memory.
func (h *GenerationHandler) Persona(w http.ResponseWriter, r *http.Request) {
	var input services.PersonaInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	ctx := r.Context()
	report := h.generation.GeneratePersonaReport(ctx, input)
	if report == nil {
		h.metrics.Generations.WithLabelValues("persona", "degraded").Inc()
		respondError(w, h.logger, http.StatusBadGateway, "persona generation failed")
		return
	}
	h.metrics.Generations.WithLabelValues("persona", "ok").Inc()

	serialized, err := json.Marshal(report)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	sess := auth.SessionFromContext(ctx)
	memory := domain.Memory{
		ID:        uuid.New().String(),
		Type:      domain.MemoryTypePersona,
		Title:     "Persona: " + report.Snapshot.Name,
		Content:   string(serialized),
		Tags:      []string{"persona"},
		CreatedAt: utils.NowRFC3339(),
	}
	if _, err := h.memories.Add(ctx, sess, memory); err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"memoryId": memory.ID,
		"report":   report,
	})
}

// loadContext fetches the profile and memory bank for a generation request.
// A missing profile is a 400; generation without onboarding has nothing to
// ground on. Returns nils after writing the error response.
func (h *GenerationHandler) loadContext(w http.ResponseWriter, r *http.Request) (*domain.Profile, []domain.Memory) {
	ctx := r.Context()
	sess := auth.SessionFromContext(ctx)

	profile, err := h.profiles.Load(ctx, sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return nil, nil
	}
	if profile == nil {
		respondError(w, h.logger, http.StatusBadRequest, "no profile found, complete onboarding first")
		return nil, nil
	}

	memories, err := h.memories.List(ctx, sess)
	if err != nil {
		respondAppError(w, h.logger, err)
		return nil, nil
	}
	return profile, memories
}

func generationOutcome(content string) string {
	switch content {
	case "", services.FallbackContent, services.FallbackEmpty:
		return "degraded"
	default:
		return "ok"
	}
}
