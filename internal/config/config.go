package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config holds the environment driven configuration for the travel plan API.
type Config struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"`

	DatabaseURL    string `env:"DATABASE_URL,notEmpty"`
	AutoMigrate    bool   `env:"AUTO_MIGRATE" envDefault:"false"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`

	AIProvider       string        `env:"AI_PROVIDER" envDefault:"gemini"`
	GoogleAPIKey     string        `env:"GOOGLE_API_KEY"`
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"OPENAI_BASE_URL"`
	AIModel          string        `env:"AI_MODEL"`
	AIFallbackModels []string      `env:"AI_FALLBACK_MODELS" envSeparator:","`
	AITimeout        time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`

	ClerkJWKSURL           string        `env:"CLERK_JWKS_URL"`
	ClerkIssuer            string        `env:"CLERK_ISSUER"`
	ClerkAuthorizedParties []string      `env:"CLERK_AUTHORIZED_PARTIES" envSeparator:","`
	JWKSRefreshInterval    time.Duration `env:"JWKS_REFRESH_INTERVAL" envDefault:"1h"`
	JWTSecret              string        `env:"JWT_SECRET"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and parses environment variables into Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))
	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, production or test, got %q", c.Environment)
	}

	switch c.AIProvider {
	case "gemini":
		if strings.TrimSpace(c.GoogleAPIKey) == "" {
			return errors.New("GOOGLE_API_KEY is required when AI_PROVIDER is gemini")
		}
	case "openai":
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return errors.New("OPENAI_API_KEY is required when AI_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("unsupported AI_PROVIDER %q, use gemini or openai", c.AIProvider)
	}

	if strings.TrimSpace(c.ClerkJWKSURL) == "" && strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("either CLERK_JWKS_URL or JWT_SECRET must be set")
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive, got %s", c.AITimeout)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// GinMode maps the environment onto gin's debug, test and release modes.
func (c *Config) GinMode() string {
	switch c.Environment {
	case "development":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}

// UsesJWKS reports whether tokens are verified against Clerk's JWKS endpoint.
func (c *Config) UsesJWKS() bool {
	return strings.TrimSpace(c.ClerkJWKSURL) != ""
}
