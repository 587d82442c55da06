package config

import (
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/viewport"
	"github.com/hay-kot/histline/internal/data/source"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("timeline.max_year", c.Timeline, validYearRange),
		criterio.Run("timeline.scale", c.Timeline, validScale),
		criterio.Run("timeline.scale_mode", c.Timeline.ScaleMode, validScaleMode),
		criterio.Run("timeline.variant", c.Timeline, validVariant),
		criterio.Run("timeline.dense_max_scale", c.Timeline.DenseMaxScale, positive),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("tui.scroll_step", c.TUI.ScrollStep, atLeastOne),
	)
}

// ValidateDeep runs Validate and then checks the config file, the event
// source and the listen address.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data.source", c.Data.Source, sourceReachable),
		criterio.Run("serve.listen", c.Serve.Listen, validListenAddr),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	start := c.StartYear()
	if !c.Bounds().Contains(start) {
		warnings = append(warnings, ValidationWarning{
			Category: "Timeline",
			Item:     "start_year",
			Message:  fmt.Sprintf("start year %d is outside %d..%d and will be clamped", start, c.Timeline.MinYear, c.Timeline.MaxYear),
		})
	}

	if c.Timeline.Variant == layout.VariantDense && c.Timeline.Scale > c.Timeline.DenseMaxScale {
		warnings = append(warnings, ValidationWarning{
			Category: "Timeline",
			Item:     "dense_max_scale",
			Message:  "initial scale is above dense_max_scale; gridlines start hidden",
		})
	}

	return warnings
}

func validYearRange(t TimelineConfig) error {
	if t.MinYear >= t.MaxYear {
		return fmt.Errorf("must be greater than min_year (%d >= %d)", t.MinYear, t.MaxYear)
	}
	return nil
}

func validScale(t TimelineConfig) error {
	if math.IsNaN(t.Scale) || math.IsInf(t.Scale, 0) || t.Scale < viewport.MinScale {
		return fmt.Errorf("must be a finite number >= %v", viewport.MinScale)
	}
	if t.ScaleMode == viewport.ScaleBounded && t.Scale > viewport.MaxScale {
		return fmt.Errorf("must be <= %v in bounded mode", viewport.MaxScale)
	}
	return nil
}

func validScaleMode(m viewport.ScaleMode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown mode %q (want %q or %q)", m, viewport.ScaleBounded, viewport.ScaleFree)
	}
	return nil
}

func validVariant(t TimelineConfig) error {
	if !t.Variant.Valid() {
		return fmt.Errorf("unknown variant %q (want century or dense)", t.Variant)
	}
	return nil
}

func positive(v float64) error {
	if v <= 0 {
		return errors.New("must be greater than 0")
	}
	return nil
}

func atLeastOne(v int) error {
	if v < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// sourceReachable checks local sources only; URLs are not fetched during
// validation.
func sourceReachable(location string) error {
	loader, err := source.New(location)
	if err != nil {
		return err
	}

	fl, ok := loader.(*source.FileLoader)
	if !ok {
		return nil
	}

	paths, err := fl.Paths()
	if err != nil {
		return err
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("cannot access: %w", err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory, not a file", p)
		}
	}
	return nil
}

func validListenAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}
	return nil
}
