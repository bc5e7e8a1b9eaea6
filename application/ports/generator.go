package ports

import "context"

// GenerateRequest is the contract with the external text-generation service:
// system-level constraints plus the user prompt. JSONMode asks the provider
// for a raw JSON document instead of free text.
type GenerateRequest struct {
	System   string
	Prompt   string
	JSONMode bool
}

// Generator produces text from a request. One request, one response; callers
// own the degraded-result policy when it fails.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}
