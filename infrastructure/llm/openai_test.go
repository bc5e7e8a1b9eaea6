package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RodCacioli/Authos-v2/application/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAICompatible_Generate(t *testing.T) {
	// Arrange
	var captured openaiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"hello from the model"}}]}`))
	}))
	defer server.Close()

	gen := newOpenAICompatible("test-key", server.URL, "gpt-4o-mini")

	// Act
	text, err := gen.Generate(context.Background(), ports.GenerateRequest{
		System: "be brief",
		Prompt: "say hello",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", text)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Nil(t, captured.ResponseFormat)
}

func TestOpenAICompatible_JSONMode(t *testing.T) {
	// Arrange
	var captured openaiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer server.Close()

	gen := newOpenAICompatible("k", server.URL, "m")

	// Act
	_, err := gen.Generate(context.Background(), ports.GenerateRequest{Prompt: "p", JSONMode: true})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
}

func TestOpenAICompatible_ErrorResponses(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	gen := newOpenAICompatible("k", server.URL, "m")

	// Act
	_, err := gen.Generate(context.Background(), ports.GenerateRequest{Prompt: "p"})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAICompatible_NoChoices(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	gen := newOpenAICompatible("k", server.URL, "m")

	// Act
	_, err := gen.Generate(context.Background(), ports.GenerateRequest{Prompt: "p"})

	// Assert
	assert.Error(t, err)
}

func TestNew_ProviderSelection(t *testing.T) {
	cases := []struct {
		provider string
		ok       bool
	}{
		{"claude", true},
		{"openai", true},
		{"ollama", true},
		{"groq", true},
		{"mistral", true},
		{"", false},
		{"carrier-pigeon", false},
	}
	for _, tc := range cases {
		t.Run("provider "+tc.provider, func(t *testing.T) {
			gen, err := New(Config{Provider: tc.provider, APIKey: "k"})
			if tc.ok {
				require.NoError(t, err)
				assert.NotNil(t, gen)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
