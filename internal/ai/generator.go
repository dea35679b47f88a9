// Package ai generates structured travel plans from a generative text backend, walking an
// ordered list of candidate models until one produces output the normalizer accepts.
package ai

import "context"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// GenerationRequest is one text-generation call against a single model.
type GenerationRequest struct {
	Model           string
	Prompt          string
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// TextGenerator is a generative text backend. Implementations return an error that wraps
// ErrModelNotFound when the requested model does not exist.
type TextGenerator interface {
	Provider() string
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	GenerateStream(ctx context.Context, req GenerationRequest, onChunk func(string)) error
	Close() error
}

// DefaultModel is the preferred model for a provider when none is configured.
func DefaultModel(provider string) string {
	if provider == ProviderOpenAI {
		return "gpt-4o-mini"
	}
	return "gemini-2.5-flash"
}

// DefaultFallbackModels is the fixed candidate list tried after the preferred model.
func DefaultFallbackModels(provider string) []string {
	if provider == ProviderOpenAI {
		return []string{"gpt-4o-mini", "gpt-4.1-mini", "gpt-4o"}
	}
	return []string{"gemini-2.5-flash", "gemini-2.0-flash", "gemini-2.0-flash-lite", "gemini-1.5-flash"}
}
