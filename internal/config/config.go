package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider names accepted by LLM_PROVIDER.
const (
	ProviderNone       = "none"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	HTTPAddr    string     `env:"HTTP_ADDR"    envDefault:":8080"`
	LogLevel    slog.Level `env:"LOG_LEVEL"    envDefault:"info"`
	Environment string     `env:"APP_ENV"      envDefault:"development"`

	LLMProvider       string        `env:"LLM_PROVIDER"        envDefault:"none"`
	LLMModel          string        `env:"LLM_MODEL"           envDefault:"qwen/qwen3-4b:free"`
	LLMFallbackModels []string      `env:"LLM_FALLBACK_MODELS" envSeparator:","`
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMTimeout        time.Duration `env:"LLM_TIMEOUT"         envDefault:"10s"`

	AllowReversed bool   `env:"TAROT_ALLOW_REVERSED" envDefault:"true"`
	Shuffle       bool   `env:"TAROT_SHUFFLE"        envDefault:"true"`
	DefaultDeck   string `env:"TAROT_DEFAULT_DECK"   envDefault:"tarot"`

	TracesExporter string `env:"OTEL_TRACES_EXPORTER" envDefault:"none"`
}

func Load() (Config, error) {
	c, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	c.LLMProvider = strings.ToLower(strings.TrimSpace(c.LLMProvider))
	c.LLMFallbackModels = compact(c.LLMFallbackModels)

	switch c.LLMProvider {
	case ProviderNone:
	case ProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			return Config{}, fmt.Errorf("OPENROUTER_API_KEY is required when LLM_PROVIDER=openrouter")
		}
	default:
		return Config{}, fmt.Errorf("invalid LLM_PROVIDER %q", c.LLMProvider)
	}

	if c.LLMTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %s", c.LLMTimeout)
	}

	return c, nil
}

// Development reports whether APP_ENV names a development environment.
func (c Config) Development() bool {
	return strings.EqualFold(c.Environment, "development")
}

// InterpretationEnabled reports whether an LLM provider is configured.
func (c Config) InterpretationEnabled() bool {
	return c.LLMProvider != ProviderNone
}

func compact(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
