// Package config provides configuration loading for radview.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Display parameters
	Display struct {
		// WindowWidth and WindowHeight are the initial application window size
		WindowWidth  int `yaml:"windowWidth"`
		WindowHeight int `yaml:"windowHeight"`

		// InvertByDefault starts new images with inverted grayscale
		InvertByDefault bool `yaml:"invertByDefault"`

		// HeatmapOpacity is the initial opacity for AI heatmap overlays
		HeatmapOpacity float64 `yaml:"heatmapOpacity"`

		// DefaultPreset is the window/level preset applied at startup,
		// by name ("Default", "Bone", "Soft Tissue")
		DefaultPreset string `yaml:"defaultPreset"`
	} `yaml:"display"`

	// Annotation parameters
	Annotation struct {
		// DefaultColor is the draw color for new annotations, hex RGB like "#FFFF00"
		DefaultColor string `yaml:"defaultColor"`

		// DefaultStrokeWidth is the stroke width in pixels for new annotations
		DefaultStrokeWidth float64 `yaml:"defaultStrokeWidth"`
	} `yaml:"annotation"`

	// History parameters
	History struct {
		// Depth is the number of undo steps kept per image
		Depth int `yaml:"depth"`
	} `yaml:"history"`

	// Logging parameters
	Logging struct {
		// Level is the slog level name (DEBUG, INFO, WARN, ERROR)
		Level string `yaml:"level"`

		// Dir is the directory for rotated log files; empty logs to stdout only
		Dir string `yaml:"dir"`
	} `yaml:"logging"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Display.WindowWidth = 1280
	cfg.Display.WindowHeight = 900
	cfg.Display.InvertByDefault = false
	cfg.Display.HeatmapOpacity = 0.5
	cfg.Display.DefaultPreset = "Default"

	cfg.Annotation.DefaultColor = "#FFFF00"
	cfg.Annotation.DefaultStrokeWidth = 2

	cfg.History.Depth = 50

	cfg.Logging.Level = "INFO"
	cfg.Logging.Dir = ""

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// ParseColor parses a "#RRGGBB" hex string into an opaque RGBA color.
func ParseColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// SaveConfig saves the configuration to a YAML file.
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
