// Package llm provides text-generation providers behind the Generator port.
// Claude uses the Anthropic SDK; everything else speaks the OpenAI-compatible
// chat completions API.
package llm

import (
	"fmt"

	"github.com/RodCacioli/Authos-v2/application/ports"
)

// OpenAI-compatible providers and their base URLs.
var openAICompatibleProviders = map[string]string{
	"mistral":  "https://api.mistral.ai/v1",
	"groq":     "https://api.groq.com/openai/v1",
	"together": "https://api.together.xyz/v1",
	"deepseek": "https://api.deepseek.com/v1",
}

// Config selects and configures a provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// New builds a generator for the configured provider.
func New(cfg Config) (ports.Generator, error) {
	switch cfg.Provider {
	case "claude":
		return newClaude(cfg.APIKey, cfg.Model), nil
	case "openai":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		return newOpenAICompatible(cfg.APIKey, baseURL, model), nil
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		model := cfg.Model
		if model == "" {
			model = "qwen2:0.5b"
		}
		// Ollama's OpenAI-compatible endpoint
		return newOpenAICompatible("ollama", baseURL+"/v1", model), nil
	default:
		if baseURL, ok := openAICompatibleProviders[cfg.Provider]; ok {
			if cfg.BaseURL != "" {
				baseURL = cfg.BaseURL
			}
			return newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model), nil
		}
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// IsKnownProvider checks if a provider is recognized.
func IsKnownProvider(provider string) bool {
	switch provider {
	case "claude", "openai", "ollama":
		return true
	default:
		_, ok := openAICompatibleProviders[provider]
		return ok
	}
}
