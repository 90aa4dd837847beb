// Package config resolves runtime configuration from defaults, an optional
// TOML file, CPRCOACH_* environment variables and command-line flags, in
// increasing priority.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/progress"
)

// Config is the resolved runtime configuration.
type Config struct {
	Settings progress.Settings
	// Explicit marks the settings that came from a file, env or flag
	// rather than from defaults or locale detection.
	Explicit SettingsMask

	// DBPath enables the journal when non-empty.
	DBPath   string
	LogFile  string
	LogLevel slog.Level
	// Coach allows LLM feedback when a provider is configured.
	Coach bool
}

// Default returns the built-in configuration: in-memory, no log file.
func Default() Config {
	return Config{
		Settings: progress.DefaultSettings(),
		LogLevel: slog.LevelInfo,
		Coach:    true,
	}
}

// SettingsMask flags individual learner settings.
type SettingsMask struct {
	Language     bool
	AgeGroup     bool
	Sound        bool
	Haptics      bool
	HighContrast bool
	ProfileName  bool
}

// ApplySettings writes the explicitly configured settings into ps. Call it
// after restoring a saved snapshot so configuration still wins over the
// journal.
func (c Config) ApplySettings(ps *progress.Store) {
	m, s := c.Explicit, c.Settings
	if m.Language {
		ps.SetLanguage(s.Language)
	}
	if m.AgeGroup {
		ps.SetAgeGroup(s.AgeGroup)
	}
	if m.Sound {
		ps.SetSoundEnabled(s.SoundEnabled)
	}
	if m.Haptics {
		ps.SetHapticsEnabled(s.HapticsEnabled)
	}
	if m.HighContrast {
		ps.SetHighContrastMode(s.HighContrastMode)
	}
	if m.ProfileName {
		ps.SetProfileName(s.ProfileName)
	}
}

// Overrides carries flag values. Nil fields were not set on the command line.
type Overrides struct {
	Language *string
	AgeGroup *string
	DBPath   *string
	Persist  *bool
	LogFile  *string
}

// Load resolves the configuration. configPath may be empty for the default
// location; a missing file is not an error.
func Load(configPath string, o Overrides) (Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	file, err := LoadFile(configPath)
	if err != nil {
		return Config{}, err
	}
	raw, err := parseEnv()
	if err != nil {
		return Config{}, err
	}
	return resolve(file, raw, o)
}

func resolve(file FileConfig, raw envConfig, o Overrides) (Config, error) {
	cfg := Default()
	var (
		lang, age, db, logFile, level *string
		persist, coach                *bool
	)

	// file
	fs := file.Settings
	lang, age = fs.Language, fs.AgeGroup
	if fs.Sound != nil {
		cfg.Settings.SoundEnabled = *fs.Sound
		cfg.Explicit.Sound = true
	}
	if fs.Haptics != nil {
		cfg.Settings.HapticsEnabled = *fs.Haptics
		cfg.Explicit.Haptics = true
	}
	if fs.HighContrast != nil {
		cfg.Settings.HighContrastMode = *fs.HighContrast
		cfg.Explicit.HighContrast = true
	}
	if fs.ProfileName != nil {
		cfg.Settings.ProfileName = *fs.ProfileName
		cfg.Explicit.ProfileName = true
	}
	db, persist = file.Storage.DB, file.Storage.Persist
	logFile, level = file.Logging.File, file.Logging.Level
	coach = file.Coach.Enabled

	// env
	lang = pick(lang, raw.Language)
	age = pick(age, raw.AgeGroup)
	db = pick(db, raw.DB)
	persist = pick(persist, raw.Persist)
	logFile = pick(logFile, raw.LogFile)
	level = pick(level, raw.LogLevel)
	coach = pick(coach, raw.Coach)

	// flags
	lang = pick(lang, o.Language)
	age = pick(age, o.AgeGroup)
	db = pick(db, o.DBPath)
	persist = pick(persist, o.Persist)
	logFile = pick(logFile, o.LogFile)

	if lang != nil && *lang != "" {
		l, ok := i18n.Parse(*lang)
		if !ok {
			return Config{}, fmt.Errorf("unsupported language %q", *lang)
		}
		cfg.Settings.Language = l
		cfg.Explicit.Language = true
	} else if loc := raw.locale(); loc != "" {
		cfg.Settings.Language = i18n.Detect(loc)
	}

	if age != nil && *age != "" {
		g := progress.AgeGroup(strings.ToLower(*age))
		if !g.Valid() {
			return Config{}, fmt.Errorf("unknown age group %q (want children, teens or adults)", *age)
		}
		cfg.Settings.AgeGroup = g
		cfg.Explicit.AgeGroup = true
	}

	if db != nil {
		cfg.DBPath = *db
	}
	if cfg.DBPath == "" && persist != nil && *persist {
		cfg.DBPath = DefaultDBPath()
	}
	if logFile != nil {
		cfg.LogFile = *logFile
	}
	if level != nil && *level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(*level)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q: %w", *level, err)
		}
		cfg.LogLevel = l
	}
	if coach != nil {
		cfg.Coach = *coach
	}
	return cfg, nil
}

func pick[T any](cur, next *T) *T {
	if next != nil {
		return next
	}
	return cur
}
