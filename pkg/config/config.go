// Package config provides configuration loading and management for fitsview.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go-simpler.org/env"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPath overrides the default configuration file location
	EnvPath = "FITSVIEW_CONFIG"

	defaultPath = "~/.config/fitsview/config.yaml"
)

// Config represents the application configuration loaded from YAML.
// Every value can be overridden by the FITSVIEW_* variable in its env tag.
type Config struct {
	// Render parameters, used as command line defaults
	Render struct {
		// Stretch is the normalization curve: linear, log or asinh
		Stretch string `yaml:"stretch" env:"FITSVIEW_STRETCH"`

		// Colormap names the palette of the image layer
		Colormap string `yaml:"colormap" env:"FITSVIEW_CMAP"`

		// PlotType is image, contours or image-contours
		PlotType string `yaml:"plotType" env:"FITSVIEW_PLOT_TYPE"`

		// ContourColor is the color of contour lines and labels
		ContourColor string `yaml:"contourColor" env:"FITSVIEW_CONTOUR_COLOR"`
	} `yaml:"render"`

	// Display parameters
	Display struct {
		// Enabled opens the interactive window after rendering
		Enabled bool `yaml:"enabled" env:"FITSVIEW_DISPLAY"`
	} `yaml:"display"`

	// Logging parameters
	Logging struct {
		// Level is debug, info, warn or error
		Level string `yaml:"level" env:"FITSVIEW_LOG_LEVEL"`

		// Format is text or json
		Format string `yaml:"format" env:"FITSVIEW_LOG_FORMAT"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Render.Stretch = "linear"
	cfg.Render.Colormap = "viridis"
	cfg.Render.PlotType = "image-contours"
	cfg.Render.ContourColor = "white"

	cfg.Display.Enabled = true

	cfg.Logging.Level = "warn"
	cfg.Logging.Format = "text"

	return cfg
}

// Path returns the configuration file location: explicit when given,
// else $FITSVIEW_CONFIG, else ~/.config/fitsview/config.yaml
func Path(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		path = defaultPath
	}
	return expandUser(path)
}

// LoadConfig loads configuration from a YAML file, then applies the
// environment overrides.
// If the file doesn't exist, the defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides cfg with the FITSVIEW_* variables that are set.
// Unset variables leave the current values alone.
func ApplyEnv(cfg *Config) error {
	if err := env.Load(cfg, nil); err != nil {
		return fmt.Errorf("error reading environment: %w", err)
	}
	return nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

func expandUser(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if path == "~" {
		return home, nil
	}

	return filepath.Join(home, path[2:]), nil
}
