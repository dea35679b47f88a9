package config_fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"travelplan/internal/config"
	"travelplan/pkg/logger"
)

var Module = fx.Provide(provideConfig, provideLogger)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(cfg *config.Config) (zerolog.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}
	return log.With().Str("env", cfg.Environment).Logger(), nil
}
