package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator implements TextGenerator on the chat completions API.
// The API has no top-k parameter, so GenerationRequest.TopK is not sent.
type OpenAIGenerator struct {
	client *openai.Client
}

// NewOpenAIGenerator creates a client; baseURL may be empty for the public API.
func NewOpenAIGenerator(apiKey, baseURL string) *OpenAIGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIGenerator{client: openai.NewClientWithConfig(config)}
}

func (g *OpenAIGenerator) Provider() string { return ProviderOpenAI }

func chatRequest(req GenerationRequest) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   int(req.MaxOutputTokens),
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, chatRequest(req))
	if err != nil {
		return "", classifyOpenAIError(req.Model, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: empty response from %s", req.Model)
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) GenerateStream(ctx context.Context, req GenerationRequest, onChunk func(string)) error {
	stream, err := g.client.CreateChatCompletionStream(ctx, chatRequest(req))
	if err != nil {
		return classifyOpenAIError(req.Model, err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return classifyOpenAIError(req.Model, err)
		}
		for _, choice := range resp.Choices {
			if choice.Delta.Content != "" {
				onChunk(choice.Delta.Content)
			}
		}
	}
}

func (g *OpenAIGenerator) Close() error { return nil }

func classifyOpenAIError(model string, err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		if code, ok := apiErr.Code.(string); ok && strings.EqualFold(code, "model_not_found") {
			return &modelNotFoundError{model: model, cause: err}
		}
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if IsModelNotFoundSignal(status, err.Error()) {
		return &modelNotFoundError{model: model, cause: err}
	}
	return fmt.Errorf("openai: %w", err)
}
