// Package config handles configuration loading and validation for histline.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/core/viewport"
)

// DefaultStartYear is the year the view scrolls to after it opens.
const DefaultStartYear = 2024

// Config holds the application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Timeline TimelineConfig `yaml:"timeline"`
	Serve    ServeConfig    `yaml:"serve"`
	TUI      TUIConfig      `yaml:"tui"`
}

// DataConfig locates the event list.
type DataConfig struct {
	// Source is an http(s) URL, a file path or a doublestar glob.
	Source string `yaml:"source"`
}

// TimelineConfig controls the strip geometry and the view's starting state.
type TimelineConfig struct {
	MinYear   int                `yaml:"min_year"`
	MaxYear   int                `yaml:"max_year"`
	Scale     float64            `yaml:"scale" env:"HISTLINE_SCALE"`
	ScaleMode viewport.ScaleMode `yaml:"scale_mode" env:"HISTLINE_SCALE_MODE"`
	// StartYear is a pointer so an explicit year 0 survives defaulting.
	StartYear     *int           `yaml:"start_year"`
	Variant       layout.Variant `yaml:"variant" env:"HISTLINE_VARIANT"`
	DenseMaxScale float64        `yaml:"dense_max_scale"`
	StrictEra     bool           `yaml:"strict_era" env:"HISTLINE_STRICT_ERA"`
	// Diagnostics shows load failures and unreadable-year counts in the
	// views. They are always logged.
	Diagnostics bool `yaml:"diagnostics" env:"HISTLINE_DIAGNOSTICS"`
}

// ServeConfig holds settings for the serve command.
type ServeConfig struct {
	Listen string `yaml:"listen" env:"HISTLINE_LISTEN"`
}

// TUIConfig holds settings for the interactive view.
type TUIConfig struct {
	Theme string `yaml:"theme" env:"HISTLINE_THEME"`
	// ScrollStep is the number of cells moved per arrow key press.
	ScrollStep int `yaml:"scroll_step"`
	// ScrollFrames is the number of frames a jump animates over.
	ScrollFrames int `yaml:"scroll_frames"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	start := DefaultStartYear
	return Config{
		Data: DataConfig{
			Source: "data.json",
		},
		Timeline: TimelineConfig{
			MinYear:       timeline.DefaultMinYear,
			MaxYear:       timeline.DefaultMaxYear,
			Scale:         viewport.DefaultScale,
			ScaleMode:     viewport.ScaleBounded,
			StartYear:     &start,
			Variant:       layout.VariantCentury,
			DenseMaxScale: layout.DefaultDenseMaxScale,
		},
		Serve: ServeConfig{
			Listen: "127.0.0.1:8080",
		},
		TUI: TUIConfig{
			Theme:        styles.DefaultTheme,
			ScrollStep:   8,
			ScrollFrames: viewport.DefaultScrollFrames,
		},
	}
}

// Load reads configuration from the given path, then applies HISTLINE_*
// environment overrides. If configPath is empty or doesn't exist, defaults
// are used.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Timeline.MinYear == 0 && c.Timeline.MaxYear == 0 {
		c.Timeline.MinYear = defaults.Timeline.MinYear
		c.Timeline.MaxYear = defaults.Timeline.MaxYear
	}
	if c.Timeline.Scale == 0 {
		c.Timeline.Scale = defaults.Timeline.Scale
	}
	if c.Timeline.ScaleMode == "" {
		c.Timeline.ScaleMode = defaults.Timeline.ScaleMode
	}
	if c.Timeline.StartYear == nil {
		c.Timeline.StartYear = defaults.Timeline.StartYear
	}
	if c.Timeline.Variant == "" {
		c.Timeline.Variant = defaults.Timeline.Variant
	}
	if c.Timeline.DenseMaxScale == 0 {
		c.Timeline.DenseMaxScale = defaults.Timeline.DenseMaxScale
	}
	if c.Serve.Listen == "" {
		c.Serve.Listen = defaults.Serve.Listen
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ScrollStep == 0 {
		c.TUI.ScrollStep = defaults.TUI.ScrollStep
	}
	if c.TUI.ScrollFrames == 0 {
		c.TUI.ScrollFrames = defaults.TUI.ScrollFrames
	}
}

// Bounds returns the configured year range.
func (c *Config) Bounds() timeline.Bounds {
	return timeline.Bounds{MinYear: c.Timeline.MinYear, MaxYear: c.Timeline.MaxYear}
}

// StartYear returns the configured initial jump target.
func (c *Config) StartYear() int {
	if c.Timeline.StartYear == nil {
		return DefaultStartYear
	}
	return *c.Timeline.StartYear
}

// ParseOptions returns the years parsing options.
func (c *Config) ParseOptions() timeline.ParseOptions {
	return timeline.ParseOptions{StrictEra: c.Timeline.StrictEra}
}

// LayoutOptions returns layout options for scale. Pixel sizes are left at
// their defaults; terminal renderers override them.
func (c *Config) LayoutOptions(scale float64, currentYear int) layout.Options {
	return layout.Options{
		Bounds:        c.Bounds(),
		Variant:       c.Timeline.Variant,
		Scale:         scale,
		CurrentYear:   currentYear,
		DenseMaxScale: c.Timeline.DenseMaxScale,
		Parse:         c.ParseOptions(),
	}
}
