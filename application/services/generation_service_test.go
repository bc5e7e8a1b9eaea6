package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeGenerator returns canned text or an error and records the last request.
type fakeGenerator struct {
	text string
	err  error
	last ports.GenerateRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req ports.GenerateRequest) (string, error) {
	f.last = req
	return f.text, f.err
}

func TestGenerationService_GenerateContent_StripsDraftTags(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: "preamble <draft>\nThe actual post.\n</draft> trailing"}
	svc := NewGenerationService(gen, zap.NewNop())

	// Act
	content := svc.GenerateContent(context.Background(), GenerateOptions{
		Profile: domain.Profile{Name: "Ada"},
		Topic:   "burnout",
	})

	// Assert
	assert.Equal(t, "The actual post.", content)
}

func TestGenerationService_GenerateContent_NoTagsReturnsRaw(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: "just plain text"}
	svc := NewGenerationService(gen, zap.NewNop())

	// Act
	content := svc.GenerateContent(context.Background(), GenerateOptions{Topic: "x"})

	// Assert
	assert.Equal(t, "just plain text", content)
}

func TestGenerationService_GenerateContent_Fallbacks(t *testing.T) {
	// Arrange
	failing := NewGenerationService(&fakeGenerator{err: errors.New("rate limited")}, zap.NewNop())
	empty := NewGenerationService(&fakeGenerator{text: ""}, zap.NewNop())

	// Act & Assert
	assert.Equal(t, FallbackContent, failing.GenerateContent(context.Background(), GenerateOptions{}))
	assert.Equal(t, FallbackEmpty, empty.GenerateContent(context.Background(), GenerateOptions{}))
}

func TestGenerationService_GenerateContent_PromptCarriesContext(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: "ok"}
	svc := NewGenerationService(gen, zap.NewNop())
	opts := GenerateOptions{
		Profile: domain.Profile{Name: "Ada", Niche: "engineering", Values: []string{"candor"}},
		Memories: []domain.Memory{
			{ID: "m1", Type: domain.MemoryTypeStory, Title: "The outage", Content: "We lost a region."},
			{ID: "m2", Type: domain.MemoryTypeStyleRef, Content: "ship it", Tags: []string{"voice_jargon"}},
		},
		Topic:    "incident response",
		Platform: "linkedin",
		Product:  &domain.Product{Name: "Oncall Course", Solution: "calmer oncall"},
		Persona:  "Overwhelmed SRE lead",
	}

	// Act
	svc.GenerateContent(context.Background(), opts)

	// Assert
	assert.Contains(t, gen.last.System, "ghostwriter for Ada")
	assert.Contains(t, gen.last.System, "The outage")
	assert.Contains(t, gen.last.System, `"ship it"`)
	assert.Contains(t, gen.last.System, "Oncall Course")
	assert.Contains(t, gen.last.System, "Overwhelmed SRE lead")
	assert.Contains(t, gen.last.Prompt, "TOPIC: incident response")
	assert.NotContains(t, gen.last.System, "ship it\nCONTENT", "style references stay out of the narrative database")
}

func TestGenerationService_FocusCapLimitsMemories(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: "ok"}
	svc := NewGenerationService(gen, zap.NewNop())
	svc.SetLimitsProvider(func() GenerationLimits {
		return GenerationLimits{FocusMemoryCap: 1, ChatMemoryCap: 1}
	})
	opts := GenerateOptions{
		FocusID: "story",
		Memories: []domain.Memory{
			{ID: "m1", Type: domain.MemoryTypeFact, Title: "dropped", Content: "b"},
			{ID: "m2", Type: domain.MemoryTypeStory, Title: "kept", Content: "a"},
		},
	}

	// Act
	svc.GenerateContent(context.Background(), opts)

	// Assert: the focus-matching story is prioritized and the cap drops the rest.
	assert.Contains(t, gen.last.System, "kept")
	assert.NotContains(t, gen.last.System, "dropped")
}

func TestGenerationService_Humanize_FailureReturnsInput(t *testing.T) {
	// Arrange
	svc := NewGenerationService(&fakeGenerator{err: errors.New("down")}, zap.NewNop())

	// Act
	out := svc.Humanize(context.Background(), "original words", domain.Profile{Tone: "direct"})

	// Assert
	assert.Equal(t, "original words", out)
}

func TestGenerationService_AnglesFromMemory_ParsesJSON(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: "```json\n{\"angles\": [\"a\", \"b\", \"c\"]}\n```"}
	svc := NewGenerationService(gen, zap.NewNop())

	// Act
	angles := svc.AnglesFromMemory(context.Background(), domain.Profile{Niche: "x"}, "I got fired")

	// Assert
	assert.Equal(t, []string{"a", "b", "c"}, angles)
	assert.True(t, gen.last.JSONMode)
}

func TestGenerationService_AnalyzeBrainDump_ParsesAngles(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: "```json\n[{\"type\": \"Story\", \"title\": \"Fired at dawn\", \"hook\": \"The day it happened.\", \"description\": \"Concrete anecdote.\"}]\n```"}
	svc := NewGenerationService(gen, zap.NewNop())

	// Act
	angles := svc.AnalyzeBrainDump(context.Background(), "i got fired and it changed everything")

	// Assert
	require.Len(t, angles, 1)
	assert.Equal(t, "Story", angles[0].Type)
	assert.Equal(t, "Fired at dawn", angles[0].Title)
	assert.Equal(t, "The day it happened.", angles[0].Hook)
	assert.True(t, gen.last.JSONMode)
	assert.Contains(t, gen.last.Prompt, "i got fired and it changed everything")
}

func TestGenerationService_AnalyzeBrainDump_FailuresAreEmpty(t *testing.T) {
	// Arrange
	failing := NewGenerationService(&fakeGenerator{err: errors.New("rate limited")}, zap.NewNop())
	malformed := NewGenerationService(&fakeGenerator{text: "not json at all"}, zap.NewNop())

	// Act
	fromErr := failing.AnalyzeBrainDump(context.Background(), "thoughts")
	fromGarbage := malformed.AnalyzeBrainDump(context.Background(), "thoughts")

	// Assert
	assert.NotNil(t, fromErr)
	assert.Empty(t, fromErr)
	assert.NotNil(t, fromGarbage)
	assert.Empty(t, fromGarbage)
}

func TestGenerationService_TopicSuggestions_MalformedJSONIsEmpty(t *testing.T) {
	// Arrange
	svc := NewGenerationService(&fakeGenerator{text: "sorry, no JSON today"}, zap.NewNop())

	// Act
	topics := svc.TopicSuggestions(context.Background(), domain.Profile{}, nil)

	// Assert
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestGenerationService_EnrichMemory(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: `{"title":"The Outage","type":"FAILURE","tags":["ops","outage"],"emotionalTone":"Tense"}`}
	svc := NewGenerationService(gen, zap.NewNop())

	// Act
	suggestion := svc.EnrichMemory(context.Background(), "we lost a region for six hours")

	// Assert
	assert.Equal(t, "The Outage", suggestion.Title)
	assert.Equal(t, domain.MemoryTypeFailure, suggestion.Type)
	assert.Equal(t, "Tense", suggestion.EmotionalTone)
}

func TestGenerationService_EnrichMemory_InvalidTypeFallsBack(t *testing.T) {
	// Arrange
	svc := NewGenerationService(&fakeGenerator{text: `{"title":"x","type":"NONSENSE"}`}, zap.NewNop())

	// Act
	suggestion := svc.EnrichMemory(context.Background(), "anything")

	// Assert
	assert.Equal(t, "New Memory", suggestion.Title)
	assert.Equal(t, domain.MemoryTypeStory, suggestion.Type)
}

func TestGenerationService_GeneratePersonaReport(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: `{"snapshot":{"name":"Maya","summary":"stuck"},"executiveSummary":"..."}`}
	svc := NewGenerationService(gen, zap.NewNop())

	// Act
	report := svc.GeneratePersonaReport(context.Background(), PersonaInput{Name: "Maya"})

	// Assert
	require.NotNil(t, report)
	assert.Equal(t, "Maya", report.Snapshot.Name)

	// Malformed output yields nil, not a partial report.
	svc = NewGenerationService(&fakeGenerator{text: "not json"}, zap.NewNop())
	assert.Nil(t, svc.GeneratePersonaReport(context.Background(), PersonaInput{Name: "Maya"}))
}

func TestGenerationService_Chat_CapsMemoryContext(t *testing.T) {
	// Arrange
	gen := &fakeGenerator{text: "answer"}
	svc := NewGenerationService(gen, zap.NewNop())
	svc.SetLimitsProvider(func() GenerationLimits {
		return GenerationLimits{FocusMemoryCap: 30, ChatMemoryCap: 1}
	})
	memories := []domain.Memory{
		{Type: domain.MemoryTypeStory, Title: "first", Content: "a"},
		{Type: domain.MemoryTypeStory, Title: "overflow", Content: "b"},
	}
	history := []domain.ChatMessage{{Role: domain.RoleUser, Text: "earlier question"}}

	// Act
	reply := svc.Chat(context.Background(), domain.Profile{Name: "Ada"}, memories, history, "what did I learn?")

	// Assert
	assert.Equal(t, "answer", reply)
	assert.Contains(t, gen.last.System, "first")
	assert.NotContains(t, gen.last.System, "overflow")
	assert.Contains(t, gen.last.Prompt, "earlier question")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(gen.last.Prompt), "what did I learn?"))
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name, in, want string
	}{
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"preamble", `Here you go: {"a":1}`, `{"a":1}`},
		{"array", `text ["a","b"] trailing`, `["a","b"]`},
		{"plain", `{"a":1}`, `{"a":1}`},
		{"no json", "nothing here", "nothing here"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractJSONObject(tc.in))
		})
	}
}
