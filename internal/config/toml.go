// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Study     StudyConfig     `toml:"study"`
	Pronounce PronounceConfig `toml:"pronounce"`
}

// StudyConfig maps study-related settings.
type StudyConfig struct {
	Catalog      *string `toml:"catalog"`
	Sort         *string `toml:"sort"`
	Tag          *string `toml:"tag"`
	DueOnly      *bool   `toml:"due-only"`
	FavoriteOnly *bool   `toml:"favorite-only"`
}

// PronounceConfig maps pronunciation settings.
type PronounceConfig struct {
	Variant *string `toml:"variant"`
	Player  *string `toml:"player"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
