package ai_fx

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"travelplan/internal/ai"
	"travelplan/internal/config"
)

var Module = fx.Provide(
	ProvideTextGenerator,
	ProvidePlanGenerator)

// ProvideTextGenerator builds the backend selected by AI_PROVIDER.
func ProvideTextGenerator(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (ai.TextGenerator, error) {
	var gen ai.TextGenerator
	switch cfg.AIProvider {
	case ai.ProviderGemini:
		client, err := ai.NewGeminiGenerator(context.Background(), cfg.GoogleAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		gen = client
	case ai.ProviderOpenAI:
		gen = ai.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s. Use 'openai' or 'gemini'", cfg.AIProvider)
	}

	log.Info().Str("provider", gen.Provider()).Msg("initialized text generation backend")
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return gen.Close()
		},
	})
	return gen, nil
}

func ProvidePlanGenerator(backend ai.TextGenerator, cfg *config.Config, log zerolog.Logger) ai.PlanGeneratorInterface {
	client := ai.NewFallbackClient(backend, ai.FallbackConfig{
		PreferredModel: cfg.AIModel,
		FallbackModels: cfg.AIFallbackModels,
		Timeout:        cfg.AITimeout,
	}, log)
	log.Info().Strs("candidates", client.Candidates()).Msg("model fallback order")
	return client
}
