package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "CPRCOACH_"

// Endpoint is one provider's credentials and model choice.
type Endpoint struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL"`
	BaseURL string `env:"BASE_URL"`
}

// Config selects and configures a provider. Every field can be set from
// CPRCOACH_* variables, e.g. CPRCOACH_LLM_PROVIDER or
// CPRCOACH_GEMINI_MODEL.
type Config struct {
	// Provider is anthropic, openai, gemini, openrouter or mock.
	Provider string        `env:"LLM_PROVIDER"`
	Timeout  time.Duration `env:"LLM_TIMEOUT"`

	Anthropic  Endpoint `envPrefix:"ANTHROPIC_"`
	OpenAI     Endpoint `envPrefix:"OPENAI_"`
	Gemini     Endpoint `envPrefix:"GEMINI_"`
	OpenRouter Endpoint `envPrefix:"OPENROUTER_"`

	Retry RetryPolicy
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Timeout:    30 * time.Second,
		Anthropic:  Endpoint{Model: "claude-haiku"},
		OpenAI:     Endpoint{Model: "gpt-4o-mini"},
		Gemini:     Endpoint{Model: "gemini-flash"},
		OpenRouter: Endpoint{Model: "google/gemini-2.5-flash"},
		Retry: RetryPolicy{
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			MaxDelay:    10 * time.Second,
		},
	}
}

// endpoint returns the settings for the selected provider.
func (c Config) endpoint() (Endpoint, bool) {
	switch c.Provider {
	case "anthropic":
		return c.Anthropic, true
	case "openai":
		return c.OpenAI, true
	case "gemini":
		return c.Gemini, true
	case "openrouter":
		return c.OpenRouter, true
	}
	return Endpoint{}, false
}

// ConfigFromEnv overlays CPRCOACH_* variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return cfg, fmt.Errorf("parse llm env: %w", err)
	}
	return cfg, nil
}

// wellKnownKeys are the vendors' own variables, probed in this order.
var wellKnownKeys = []struct{ provider, variable string }{
	{"anthropic", "ANTHROPIC_API_KEY"},
	{"openai", "OPENAI_API_KEY"},
	{"gemini", "GEMINI_API_KEY"},
	{"openrouter", "OPENROUTER_API_KEY"},
}

// discover fills in the first provider whose standard key variable is set.
func discover(cfg Config) (Config, bool) {
	for _, k := range wellKnownKeys {
		v := os.Getenv(k.variable)
		if v == "" {
			continue
		}
		cfg.Provider = k.provider
		switch k.provider {
		case "anthropic":
			cfg.Anthropic.APIKey = v
		case "openai":
			cfg.OpenAI.APIKey = v
		case "gemini":
			cfg.Gemini.APIKey = v
		case "openrouter":
			cfg.OpenRouter.APIKey = v
		}
		return cfg, true
	}
	return cfg, false
}

// ResolveConfig returns a usable config, or ok=false when the coach should
// stay off. An explicitly chosen provider without a key is an error; with
// no explicit choice the vendors' own key variables are probed.
func ResolveConfig() (cfg Config, ok bool, err error) {
	cfg, err = ConfigFromEnv()
	if err != nil {
		return cfg, false, err
	}
	verr := cfg.Validate()
	if verr == nil {
		return cfg, true, nil
	}
	if os.Getenv(envPrefix+"LLM_PROVIDER") != "" {
		return cfg, false, verr
	}
	cfg, ok = discover(cfg)
	return cfg, ok, nil
}

// Validate checks that the selected provider exists and has a key.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	ep, known := c.endpoint()
	if !known {
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if ep.APIKey == "" {
		return errMissingKey(c.Provider)
	}
	return nil
}

func errMissingKey(provider string) error {
	return fmt.Errorf("%s provider needs an API key (set %s%s_API_KEY)",
		provider, envPrefix, strings.ToUpper(provider))
}

// NewProvider builds the call chain timeout → retry → logging → provider.
// rec and logger may be nil.
func NewProvider(ctx context.Context, cfg Config, rec RequestRecorder, logger *slog.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = newAnthropic(cfg.Anthropic)
	case "openai":
		base, err = newOpenAI(cfg.OpenAI)
	case "gemini":
		base, err = newGemini(ctx, cfg.Gemini)
	case "openrouter":
		base, err = newOpenRouter(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	p := WithLogging(base, cfg.Provider, rec, logger)
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}
