package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"travelplan/internal/normalizer"
	"travelplan/pkg/metrics"
)

// Decoding parameters sent with every candidate call.
const (
	Temperature     float32 = 0.7
	TopP            float32 = 0.8
	TopK            int32   = 40
	MaxOutputTokens int32   = 4096

	DefaultTimeout = 30 * time.Second
)

// Result is a normalized plan and the model that produced it.
type Result struct {
	Plan     *normalizer.Plan
	Model    string
	Provider string
	Duration time.Duration
}

type StreamEventType string

const (
	StreamChunk StreamEventType = "chunk"
	// StreamReset tells the observer to discard text received so far; Model names the failed candidate.
	StreamReset StreamEventType = "reset"
)

type StreamEvent struct {
	Type  StreamEventType
	Model string
	Text  string
}

// StreamObserver receives raw chunks as they arrive. It is called from the request goroutine.
type StreamObserver func(StreamEvent)

// PlanGeneratorInterface produces structured plans for the orchestration layer.
type PlanGeneratorInterface interface {
	Generate(ctx context.Context, prompt PlanPrompt) (*Result, error)
	GenerateStream(ctx context.Context, prompt PlanPrompt, observer StreamObserver) (*Result, error)
}

type FallbackConfig struct {
	PreferredModel string
	FallbackModels []string
	Timeout        time.Duration
}

// FallbackClient tries the preferred model followed by the fallback list and remembers the
// last model that worked as the new preferred one.
type FallbackClient struct {
	backend   TextGenerator
	fallbacks []string
	preferred atomic.Pointer[string]
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewFallbackClient(backend TextGenerator, cfg FallbackConfig, logger zerolog.Logger) *FallbackClient {
	preferred := cfg.PreferredModel
	if preferred == "" {
		preferred = DefaultModel(backend.Provider())
	}
	fallbacks := cfg.FallbackModels
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbackModels(backend.Provider())
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &FallbackClient{
		backend:   backend,
		fallbacks: append([]string(nil), fallbacks...),
		timeout:   timeout,
		logger:    logger.With().Str("component", "ai").Str("provider", backend.Provider()).Logger(),
	}
	c.preferred.Store(&preferred)
	return c
}

func (c *FallbackClient) PreferredModel() string {
	return *c.preferred.Load()
}

// Candidates returns the preferred model followed by the fallback list, without duplicates.
func (c *FallbackClient) Candidates() []string {
	seen := make(map[string]struct{}, len(c.fallbacks)+1)
	out := make([]string, 0, len(c.fallbacks)+1)
	for _, m := range append([]string{c.PreferredModel()}, c.fallbacks...) {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}

type callFunc func(ctx context.Context, req GenerationRequest) (string, error)

func (c *FallbackClient) Generate(ctx context.Context, prompt PlanPrompt) (*Result, error) {
	return c.run(ctx, prompt, c.backend.Generate, nil)
}

// GenerateStream forwards raw chunks to observer while accumulating them; the text is
// normalized once the stream ends. A failed candidate is followed by a reset event.
func (c *FallbackClient) GenerateStream(ctx context.Context, prompt PlanPrompt, observer StreamObserver) (*Result, error) {
	if observer == nil {
		observer = func(StreamEvent) {}
	}
	call := func(ctx context.Context, req GenerationRequest) (string, error) {
		var sb strings.Builder
		err := c.backend.GenerateStream(ctx, req, func(chunk string) {
			sb.WriteString(chunk)
			observer(StreamEvent{Type: StreamChunk, Model: req.Model, Text: chunk})
		})
		return sb.String(), err
	}
	reset := func(model string) {
		observer(StreamEvent{Type: StreamReset, Model: model})
	}
	return c.run(ctx, prompt, call, reset)
}

func (c *FallbackClient) run(ctx context.Context, prompt PlanPrompt, call callFunc, onRetry func(model string)) (*Result, error) {
	candidates := c.Candidates()
	if len(candidates) == 0 {
		return nil, ErrUpstreamUnavailable
	}
	text := prompt.Text()
	opts := prompt.NormalizeOptions()

	var lastErr error
	for i, model := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
		}

		start := time.Now()
		plan, err := c.attempt(ctx, call, model, text, prompt.Kind, opts)
		elapsed := time.Since(start)

		if err == nil {
			metrics.RecordGeneration(c.backend.Provider(), model, "success", elapsed.Seconds())
			if previous := c.PreferredModel(); previous != model {
				c.preferred.Store(&model)
				c.logger.Info().Str("previous", previous).Str("model", model).Msg("preferred model updated")
			}
			c.logger.Debug().Str("model", model).Int("attempt", i+1).Dur("latency", elapsed).Msg("plan generated")
			return &Result{Plan: plan, Model: model, Provider: c.backend.Provider(), Duration: elapsed}, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrCancelled, ctxErr)
		}
		lastErr = err
		last := i == len(candidates)-1

		if errors.Is(err, ErrModelNotFound) {
			metrics.RecordGeneration(c.backend.Provider(), model, "model_not_found", elapsed.Seconds())
			c.logger.Debug().Str("model", model).Int("attempt", i+1).Msg("model not available, trying next candidate")
		} else {
			metrics.RecordGeneration(c.backend.Provider(), model, "error", elapsed.Seconds())
			c.logger.Warn().Err(err).Str("model", model).Int("attempt", i+1).Bool("last", last).Msg("plan generation attempt failed")
			if last {
				return nil, &GenerationFailedError{Model: model, Attempts: i + 1, Err: err}
			}
		}

		if onRetry != nil && !last {
			onRetry(model)
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, lastErr)
}

func (c *FallbackClient) attempt(ctx context.Context, call callFunc, model, prompt string, kind normalizer.Kind, opts []normalizer.Option) (*normalizer.Plan, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := call(callCtx, GenerationRequest{
		Model:           model,
		Prompt:          prompt,
		Temperature:     Temperature,
		TopP:            TopP,
		TopK:            TopK,
		MaxOutputTokens: MaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}
	return normalizer.Normalize(raw, kind, opts...)
}
