package llm

import (
	"context"
	"testing"
	"time"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CPRCOACH_LLM_PROVIDER", "CPRCOACH_LLM_TIMEOUT",
		"CPRCOACH_ANTHROPIC_API_KEY", "CPRCOACH_ANTHROPIC_MODEL", "CPRCOACH_ANTHROPIC_BASE_URL",
		"CPRCOACH_OPENAI_API_KEY", "CPRCOACH_OPENAI_MODEL", "CPRCOACH_OPENAI_BASE_URL",
		"CPRCOACH_GEMINI_API_KEY", "CPRCOACH_GEMINI_MODEL", "CPRCOACH_GEMINI_BASE_URL",
		"CPRCOACH_OPENROUTER_API_KEY", "CPRCOACH_OPENROUTER_MODEL", "CPRCOACH_OPENROUTER_BASE_URL",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CPRCOACH_LLM_PROVIDER", "openai")
	t.Setenv("CPRCOACH_OPENAI_API_KEY", "sk-test")
	t.Setenv("CPRCOACH_OPENAI_MODEL", "gpt-4o")
	t.Setenv("CPRCOACH_OPENAI_BASE_URL", "http://localhost:8080/v1")
	t.Setenv("CPRCOACH_LLM_TIMEOUT", "45s")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	want := Endpoint{APIKey: "sk-test", Model: "gpt-4o", BaseURL: "http://localhost:8080/v1"}
	if cfg.Provider != "openai" || cfg.OpenAI != want {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Anthropic.Model != "claude-haiku" || cfg.Retry.MaxAttempts != 3 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestConfigFromEnv_BadTimeout(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CPRCOACH_LLM_TIMEOUT", "soon")
	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolveConfig(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		clearLLMEnv(t)
		if _, ok, err := ResolveConfig(); ok || err != nil {
			t.Fatalf("ok=%v err=%v, want false nil", ok, err)
		}
	})

	t.Run("discovered key keeps env timeout", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-test")
		t.Setenv("CPRCOACH_LLM_TIMEOUT", "5s")
		cfg, ok, err := ResolveConfig()
		if !ok || err != nil {
			t.Fatalf("ok=%v err=%v", ok, err)
		}
		if cfg.Provider != "gemini" || cfg.Gemini.APIKey != "g-test" || cfg.Timeout != 5*time.Second {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("discovery order", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("OPENROUTER_API_KEY", "or")
		t.Setenv("OPENAI_API_KEY", "oa")
		cfg, ok, _ := ResolveConfig()
		if !ok || cfg.Provider != "openai" {
			t.Errorf("provider = %q, want openai", cfg.Provider)
		}
	})

	t.Run("explicit provider missing key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("CPRCOACH_LLM_PROVIDER", "anthropic")
		t.Setenv("OPENAI_API_KEY", "sk-ignored")
		if _, ok, err := ResolveConfig(); ok || err == nil {
			t.Fatalf("ok=%v err=%v, want validation error", ok, err)
		}
	})

	t.Run("explicit provider with key", func(t *testing.T) {
		clearLLMEnv(t)
		t.Setenv("CPRCOACH_LLM_PROVIDER", "openrouter")
		t.Setenv("CPRCOACH_OPENROUTER_API_KEY", "sk-or")
		cfg, ok, err := ResolveConfig()
		if !ok || err != nil || cfg.Provider != "openrouter" {
			t.Fatalf("cfg=%+v ok=%v err=%v", cfg, ok, err)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"mock needs nothing", Config{Provider: "mock"}, false},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: Endpoint{APIKey: "k"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"unknown", Config{Provider: "bogus"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, quietLogger())
	if err != nil {
		t.Fatalf("mock: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
	if _, ok := p.(*retrying); !ok {
		t.Errorf("zero timeout should leave the retry stage outermost, got %T", p)
	}

	cfg := DefaultConfig()
	cfg.Provider = "openrouter"
	cfg.OpenRouter.APIKey = "sk-or-test"
	p, err = NewProvider(context.Background(), cfg, nil, quietLogger())
	if err != nil {
		t.Fatalf("openrouter: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
	if _, ok := p.(*deadline); !ok {
		t.Errorf("expected timeout stage outermost, got %T", p)
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "bogus"}, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
