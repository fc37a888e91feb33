// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Plot    PlotConfig    `toml:"plot"`
	History HistoryConfig `toml:"history"`
}

// PlotConfig maps the startup function, window and bounds.
type PlotConfig struct {
	Function *string  `toml:"function"`
	XMin     *float64 `toml:"x-min"`
	XMax     *float64 `toml:"x-max"`
	YMin     *float64 `toml:"y-min"`
	YMax     *float64 `toml:"y-max"`
	Lower    *float64 `toml:"lower"`
	Upper    *float64 `toml:"upper"`
	Step     *float64 `toml:"step"`
}

// HistoryConfig maps history recording settings.
type HistoryConfig struct {
	Enabled *bool `toml:"enabled"`
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
