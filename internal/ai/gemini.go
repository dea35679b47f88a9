package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

// GeminiGenerator implements TextGenerator using Google's Gemini models
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a new Gemini client
func NewGeminiGenerator(ctx context.Context, apiKey string, opts ...option.ClientOption) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiGenerator{client: client}, nil
}

func (g *GeminiGenerator) Provider() string { return ProviderGemini }

func (g *GeminiGenerator) model(req GenerationRequest) *genai.GenerativeModel {
	m := g.client.GenerativeModel(req.Model)
	m.SetTemperature(req.Temperature)
	m.SetTopP(req.TopP)
	m.SetTopK(req.TopK)
	m.SetMaxOutputTokens(req.MaxOutputTokens)
	return m
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	resp, err := g.model(req).GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", classifyGeminiError(req.Model, err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini: empty response from %s", req.Model)
	}
	return text, nil
}

func (g *GeminiGenerator) GenerateStream(ctx context.Context, req GenerationRequest, onChunk func(string)) error {
	iter := g.model(req).GenerateContentStream(ctx, genai.Text(req.Prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return classifyGeminiError(req.Model, err)
		}
		if chunk := responseText(resp); chunk != "" {
			onChunk(chunk)
		}
	}
}

func (g *GeminiGenerator) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}

func classifyGeminiError(model string, err error) error {
	status := 0
	var gErr *googleapi.Error
	var apiErr *apierror.APIError
	switch {
	case errors.As(err, &gErr):
		status = gErr.Code
	case errors.As(err, &apiErr):
		status = apiErr.HTTPCode()
		if st := apiErr.GRPCStatus(); st != nil && st.Code() == codes.NotFound {
			return &modelNotFoundError{model: model, cause: err}
		}
	}
	if IsModelNotFoundSignal(status, err.Error()) {
		return &modelNotFoundError{model: model, cause: err}
	}
	return fmt.Errorf("gemini: %w", err)
}
