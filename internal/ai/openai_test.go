package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenAIServer(t *testing.T, handler http.HandlerFunc) *OpenAIGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIGenerator("test-key", srv.URL+"/v1")
}

func TestOpenAIGenerate(t *testing.T) {
	var body map[string]any
	gen := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"},"finish_reason":"stop"}]}`)
	})

	out, err := gen.Generate(context.Background(), GenerationRequest{
		Model: "gpt-4o-mini", Prompt: "plan", Temperature: Temperature, TopP: TopP, TopK: TopK, MaxOutputTokens: MaxOutputTokens,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, "gpt-4o-mini", body["model"])
	assert.EqualValues(t, 4096, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 1e-6)
}

func TestOpenAIModelNotFound(t *testing.T) {
	gen := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"The model 'gpt-9' does not exist","type":"invalid_request_error","code":"model_not_found"}}`)
	})

	_, err := gen.Generate(context.Background(), GenerationRequest{Model: "gpt-9", Prompt: "plan"})
	require.ErrorIs(t, err, ErrModelNotFound)
}

func TestOpenAIOtherErrorsAreNotModelNotFound(t *testing.T) {
	gen := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`)
	})

	_, err := gen.Generate(context.Background(), GenerationRequest{Model: "gpt-4o-mini", Prompt: "plan"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrModelNotFound)
}

func TestOpenAIGenerateStream(t *testing.T) {
	gen := newOpenAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{`{\"a\":`, `1}`} {
			fmt.Fprintf(w, "data: {\"id\":\"c1\",\"object\":\"chat.completion.chunk\",\"choices\":[{\"index\":0,\"delta\":{\"content\":\"%s\"}}]}\n\n", part)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	})

	var chunks []string
	err := gen.GenerateStream(context.Background(), GenerationRequest{Model: "gpt-4o-mini", Prompt: "plan"}, func(s string) {
		chunks = append(chunks, s)
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, strings.Join(chunks, ""))
}

func TestIsModelNotFoundSignal(t *testing.T) {
	assert.True(t, IsModelNotFoundSignal(404, ""))
	assert.True(t, IsModelNotFoundSignal(400, "models/gemini-x is NOT FOUND for API version v1beta"))
	assert.False(t, IsModelNotFoundSignal(500, "internal error"))
}
