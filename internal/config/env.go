package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig holds raw env values. Pointers distinguish unset from empty.
type envConfig struct {
	Language *string `env:"CPRCOACH_LANG"`
	AgeGroup *string `env:"CPRCOACH_AGE_GROUP"`
	DB       *string `env:"CPRCOACH_DB"`
	Persist  *bool   `env:"CPRCOACH_PERSIST"`
	LogFile  *string `env:"CPRCOACH_LOG"`
	LogLevel *string `env:"CPRCOACH_LOG_LEVEL"`
	Coach    *bool   `env:"CPRCOACH_COACH"`

	// Locale variables consulted when no language is configured.
	LCAll      string `env:"LC_ALL"`
	LCMessages string `env:"LC_MESSAGES"`
	Lang       string `env:"LANG"`
}

// parseEnv loads configuration from environment variables.
func parseEnv() (envConfig, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return raw, nil
}

// locale returns the effective POSIX locale, LC_ALL first.
func (e envConfig) locale() string {
	for _, v := range []string{e.LCAll, e.LCMessages, e.Lang} {
		if v != "" {
			return v
		}
	}
	return ""
}
