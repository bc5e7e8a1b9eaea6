package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/application/services"
	"github.com/RodCacioli/Authos-v2/domain"
	"github.com/RodCacioli/Authos-v2/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory LocalStore for handler tests.
type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(ctx context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// cannedGenerator returns fixed text for every request.
type cannedGenerator struct {
	text string
	err  error
}

func (g *cannedGenerator) Generate(ctx context.Context, req ports.GenerateRequest) (string, error) {
	return g.text, g.err
}

type testEnv struct {
	local      *memStore
	profiles   *services.ProfileService
	memories   *services.MemoryService
	products   *services.ProductService
	drafts     *services.DraftService
	chat       *services.ChatService
	generation *services.GenerationService
	metrics    *observability.Collector
	logger     *zap.Logger
}

func newTestEnv(t *testing.T, gen ports.Generator) *testEnv {
	t.Helper()
	if gen == nil {
		gen = &cannedGenerator{text: "generated"}
	}
	local := newMemStore()
	logger := zap.NewNop()
	return &testEnv{
		local:      local,
		profiles:   services.NewProfileService(local, nil, logger),
		memories:   services.NewMemoryService(local, nil, logger),
		products:   services.NewProductService(local, nil, logger),
		drafts:     services.NewDraftService(local, nil, logger),
		chat:       services.NewChatService(local, logger),
		generation: services.NewGenerationService(gen, logger),
		metrics:    observability.NewCollector("authos"),
		logger:     logger,
	}
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestProfileHandler_GetMissingProfileIsNull(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewProfileHandler(env.profiles, env.local, env.logger)

	// Act
	rec := doJSON(t, h.GetProfile, http.MethodGet, "/profile", "")

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}

func TestProfileHandler_SaveAndGet(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewProfileHandler(env.profiles, env.local, env.logger)
	body := `{"name":"Ada","niche":"engineering","emojiUsage":"none"}`

	// Act
	saveRec := doJSON(t, h.SaveProfile, http.MethodPut, "/profile", body)
	getRec := doJSON(t, h.GetProfile, http.MethodGet, "/profile", "")

	// Assert
	require.Equal(t, http.StatusOK, saveRec.Code)
	require.Equal(t, http.StatusOK, getRec.Code)
	var p domain.Profile
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &p))
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, domain.EmojiNone, p.EmojiUsage)
}

func TestProfileHandler_Save_DefaultsEmojiToMinimal(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewProfileHandler(env.profiles, env.local, env.logger)

	// Act
	rec := doJSON(t, h.SaveProfile, http.MethodPut, "/profile", `{"name":"Ada"}`)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var p domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, domain.EmojiMinimal, p.EmojiUsage)
}

func TestProfileHandler_Save_ValidationErrors(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewProfileHandler(env.profiles, env.local, env.logger)

	// Act & Assert
	rec := doJSON(t, h.SaveProfile, http.MethodPut, "/profile", `{"niche":"engineering"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "name is required")

	rec = doJSON(t, h.SaveProfile, http.MethodPut, "/profile", `{"name":"Ada","emojiUsage":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "emoji usage is a closed set")

	rec = doJSON(t, h.SaveProfile, http.MethodPut, "/profile", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileHandler_ClearStorage(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewProfileHandler(env.profiles, env.local, env.logger)
	doJSON(t, h.SaveProfile, http.MethodPut, "/profile", `{"name":"Ada"}`)
	require.NotEmpty(t, env.local.data)

	// Act
	rec := doJSON(t, h.ClearStorage, http.MethodDelete, "/storage", "")

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, env.local.data)
}

func TestMemoryHandler_CreateAppliesDefaults(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewMemoryHandler(env.memories, env.generation, env.metrics, env.logger)

	// Act
	rec := doJSON(t, h.CreateMemory, http.MethodPost, "/memories", `{"content":"we lost a region"}`)

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code)
	var memories []domain.Memory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &memories))
	require.Len(t, memories, 1)
	assert.NotEmpty(t, memories[0].ID)
	assert.NotEmpty(t, memories[0].CreatedAt)
	assert.Equal(t, domain.MemoryTypeStory, memories[0].Type)
	assert.Equal(t, "New Memory", memories[0].Title)
	assert.NotNil(t, memories[0].Tags)
}

func TestMemoryHandler_CreateWithEnrichment(t *testing.T) {
	// Arrange
	gen := &cannedGenerator{text: `{"title":"The Outage","type":"FAILURE","tags":["ops"],"emotionalTone":"Tense"}`}
	env := newTestEnv(t, gen)
	h := NewMemoryHandler(env.memories, env.generation, env.metrics, env.logger)

	// Act
	rec := doJSON(t, h.CreateMemory, http.MethodPost, "/memories", `{"content":"we lost a region","enrich":true}`)

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code)
	var memories []domain.Memory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &memories))
	require.Len(t, memories, 1)
	assert.Equal(t, "The Outage", memories[0].Title)
	assert.Equal(t, domain.MemoryTypeFailure, memories[0].Type)
	assert.Equal(t, []string{"ops"}, memories[0].Tags)
}

func TestMemoryHandler_Create_RejectsUnknownType(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewMemoryHandler(env.memories, env.generation, env.metrics, env.logger)

	// Act
	rec := doJSON(t, h.CreateMemory, http.MethodPost, "/memories", `{"content":"x","type":"DIARY"}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMemoryHandler_UpdateAndDeleteViaRouter(t *testing.T) {
	// Arrange: URL params only resolve through a chi router.
	env := newTestEnv(t, nil)
	h := NewMemoryHandler(env.memories, env.generation, env.metrics, env.logger)
	router := chi.NewRouter()
	router.Post("/memories", h.CreateMemory)
	router.Put("/memories/{memoryID}", h.UpdateMemory)
	router.Delete("/memories/{memoryID}", h.DeleteMemory)

	createReq := httptest.NewRequest(http.MethodPost, "/memories", strings.NewReader(`{"content":"original","title":"t"}`))
	createRec := httptest.NewRecorder()
	router.ServeHTTP(createRec, createReq)
	require.Equal(t, http.StatusCreated, createRec.Code)
	var created []domain.Memory
	require.NoError(t, json.Unmarshal(createRec.Body.Bytes(), &created))
	id := created[0].ID

	// Act: update
	updateReq := httptest.NewRequest(http.MethodPut, "/memories/"+id, strings.NewReader(`{"title":"renamed","content":"edited"}`))
	updateRec := httptest.NewRecorder()
	router.ServeHTTP(updateRec, updateReq)

	// Assert
	require.Equal(t, http.StatusOK, updateRec.Code)
	var updated []domain.Memory
	require.NoError(t, json.Unmarshal(updateRec.Body.Bytes(), &updated))
	require.Len(t, updated, 1)
	assert.Equal(t, "renamed", updated[0].Title)
	assert.Equal(t, "edited", updated[0].Content)

	// Act: delete
	deleteReq := httptest.NewRequest(http.MethodDelete, "/memories/"+id, nil)
	deleteRec := httptest.NewRecorder()
	router.ServeHTTP(deleteRec, deleteReq)

	// Assert
	require.Equal(t, http.StatusOK, deleteRec.Code)
	var remaining []domain.Memory
	require.NoError(t, json.Unmarshal(deleteRec.Body.Bytes(), &remaining))
	assert.Empty(t, remaining)
}

func TestDraftHandler_SaveDraftsReplacesCollection(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewDraftHandler(env.drafts, env.logger)
	initial := `[{"id":"d1","content":"one","platform":"twitter"},{"id":"d2","content":"two","platform":"blog"}]`
	rec := doJSON(t, h.SaveDrafts, http.MethodPut, "/drafts", initial)
	require.Equal(t, http.StatusOK, rec.Code)

	// Act: save again without d2.
	rec = doJSON(t, h.SaveDrafts, http.MethodPut, "/drafts", `[{"id":"d1","content":"one","platform":"twitter"}]`)
	require.Equal(t, http.StatusOK, rec.Code)
	listRec := doJSON(t, h.ListDrafts, http.MethodGet, "/drafts", "")

	// Assert
	var drafts []domain.ContentDraft
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &drafts))
	require.Len(t, drafts, 1)
	assert.Equal(t, "d1", drafts[0].ID)
	assert.Equal(t, domain.StatusDraft, drafts[0].Status, "missing status defaults to draft")
}

func TestDraftHandler_SaveDrafts_InvalidPlatform(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewDraftHandler(env.drafts, env.logger)

	// Act
	rec := doJSON(t, h.SaveDrafts, http.MethodPut, "/drafts", `[{"content":"x","platform":"myspace"}]`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDraftHandler_UpsertGeneratesIDAndPrepends(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewDraftHandler(env.drafts, env.logger)
	rec := doJSON(t, h.UpsertDraft, http.MethodPost, "/drafts", `{"content":"first","platform":"twitter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Act
	rec = doJSON(t, h.UpsertDraft, http.MethodPost, "/drafts", `{"content":"second","platform":"blog"}`)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var drafts []domain.ContentDraft
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &drafts))
	require.Len(t, drafts, 2)
	assert.Equal(t, "second", drafts[0].Content)
	assert.NotEmpty(t, drafts[0].ID)
	assert.NotEmpty(t, drafts[0].Date)
}

func TestChatHandler_SendMessageAppendsBothTurns(t *testing.T) {
	// Arrange
	env := newTestEnv(t, &cannedGenerator{text: "hello back"})
	h := NewChatHandler(env.chat, env.profiles, env.memories, env.generation, env.logger)

	// Act
	rec := doJSON(t, h.SendMessage, http.MethodPost, "/chat", `{"message":"hello"}`)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello back", resp.Reply)
	require.Len(t, resp.History, 2)
	assert.Equal(t, domain.RoleUser, resp.History[0].Role)
	assert.Equal(t, "hello", resp.History[0].Text)
	assert.Equal(t, domain.RoleModel, resp.History[1].Role)
}

func TestChatHandler_ClearHistory(t *testing.T) {
	// Arrange
	env := newTestEnv(t, &cannedGenerator{text: "reply"})
	h := NewChatHandler(env.chat, env.profiles, env.memories, env.generation, env.logger)
	doJSON(t, h.SendMessage, http.MethodPost, "/chat", `{"message":"hello"}`)

	// Act
	rec := doJSON(t, h.ClearHistory, http.MethodDelete, "/chat/history", "")
	histRec := doJSON(t, h.GetHistory, http.MethodGet, "/chat/history", "")

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	var history []domain.ChatMessage
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &history))
	assert.Empty(t, history)
}

func TestFrameworkHandler_ListCatalogs(t *testing.T) {
	// Arrange
	env := newTestEnv(t, nil)
	h := NewFrameworkHandler(env.logger)

	// Act
	rec := doJSON(t, h.ListCatalogs, http.MethodGet, "/frameworks", "")

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var catalogs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalogs))
	assert.Contains(t, catalogs, "intentions")
	assert.Contains(t, catalogs, "formats")
	assert.Contains(t, catalogs, "focusAreas")
	assert.Contains(t, catalogs, "frameworks")
}
