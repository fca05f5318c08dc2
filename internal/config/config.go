// Package config provides the runtime configuration for the renderer.
// Values are loaded from a YAML file over the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Backend names accepted in Config.Backend.
const (
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
)

// Config holds all runtime settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Font     FontConfig     `yaml:"font"`
	Movement MovementConfig `yaml:"movement"`
	Audio    AudioConfig    `yaml:"audio"`

	// Backend selects the presentation layer: "ebiten" or "terminal".
	Backend string `yaml:"backend"`

	// ScenePath overrides the embedded scene when set.
	ScenePath string `yaml:"scene"`

	// SettingsApp is the application name used for persisted preferences.
	// Empty disables persistence.
	SettingsApp string `yaml:"settings_app"`
}

// WindowConfig defines the initial window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	SizeIndex int    `yaml:"size_index"` // index into the candidate window sizes
}

// FontConfig defines the glyph font.
type FontConfig struct {
	Path string  `yaml:"path"` // TTF file; empty uses the embedded mono face
	Size float64 `yaml:"size"` // points at 72 DPI
}

// MovementConfig defines horizontal character movement.
type MovementConfig struct {
	Speed      float64 `yaml:"speed"`      // cells per second
	Multiplier float64 `yaml:"multiplier"` // tuning factor applied to Speed
}

// AudioConfig defines the reveal chime.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	ToneHz     float64 `yaml:"tone_hz"`
	DurationMs int     `yaml:"duration_ms"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "The Fabricof",
			SizeIndex: 2,
		},
		Font: FontConfig{
			Size: 8,
		},
		Movement: MovementConfig{
			Speed:      10,
			Multiplier: 1,
		},
		Audio: AudioConfig{
			Enabled:    true,
			ToneHz:     660,
			DurationMs: 60,
		},
		Backend:     BackendEbiten,
		SettingsApp: "fabricof",
	}
}

// LoadConfig loads config from a YAML file. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendEbiten, BackendTerminal:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.Font.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.Font.Size)
	}
	if c.Window.SizeIndex < 0 {
		return fmt.Errorf("window size index must not be negative, got %d", c.Window.SizeIndex)
	}
	if c.Audio.Enabled && c.Audio.ToneHz <= 0 {
		return fmt.Errorf("audio tone must be positive, got %v", c.Audio.ToneHz)
	}
	return nil
}

// Step returns the horizontal distance covered in dt seconds.
func (m MovementConfig) Step(dt float64) float64 {
	return m.Speed * m.Multiplier * dt
}
