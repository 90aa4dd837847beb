package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil.
type FileConfig struct {
	Settings SettingsFile `toml:"settings"`
	Storage  StorageFile  `toml:"storage"`
	Logging  LoggingFile  `toml:"logging"`
	Coach    CoachFile    `toml:"coach"`
}

// SettingsFile maps the learner settings table.
type SettingsFile struct {
	Language     *string `toml:"language"`
	AgeGroup     *string `toml:"age_group"`
	Sound        *bool   `toml:"sound"`
	Haptics      *bool   `toml:"haptics"`
	HighContrast *bool   `toml:"high_contrast"`
	ProfileName  *string `toml:"profile_name"`
}

// StorageFile maps the journal table.
type StorageFile struct {
	DB      *string `toml:"db"`
	Persist *bool   `toml:"persist"`
}

// LoggingFile maps the logging table.
type LoggingFile struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// CoachFile maps the coach table.
type CoachFile struct {
	Enabled *bool `toml:"enabled"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
