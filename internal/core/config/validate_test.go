package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/histline/internal/core/viewport"
)

// validConfig returns a Config with every field set to a valid value.
func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := DefaultConfig()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	cfg.Data.Source = path
	return &cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{
			name:   "inverted year range",
			mutate: func(c *Config) { c.Timeline.MinYear, c.Timeline.MaxYear = 2100, -10000 },
			field:  "timeline.max_year",
		},
		{
			name:   "scale below one",
			mutate: func(c *Config) { c.Timeline.Scale = 0.5 },
			field:  "timeline.scale",
		},
		{
			name:   "scale above bounded cap",
			mutate: func(c *Config) { c.Timeline.Scale = 150 },
			field:  "timeline.scale",
		},
		{
			name:   "unknown scale mode",
			mutate: func(c *Config) { c.Timeline.ScaleMode = "sideways" },
			field:  "timeline.scale_mode",
		},
		{
			name:   "unknown variant",
			mutate: func(c *Config) { c.Timeline.Variant = "decade" },
			field:  "timeline.variant",
		},
		{
			name:   "non-positive dense threshold",
			mutate: func(c *Config) { c.Timeline.DenseMaxScale = -1 },
			field:  "timeline.dense_max_scale",
		},
		{
			name:   "unknown theme",
			mutate: func(c *Config) { c.TUI.Theme = "no-such-theme" },
			field:  "tui.theme",
		},
		{
			name:   "zero scroll step",
			mutate: func(c *Config) { c.TUI.ScrollStep = 0 },
			field:  "tui.scroll_step",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestValidate_FreeModeAllowsLargeScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timeline.ScaleMode = viewport.ScaleFree
	cfg.Timeline.Scale = 400

	assert.NoError(t, cfg.Validate())
}

func TestValidateDeep_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_MissingSource(t *testing.T) {
	cfg := validConfig(t)
	cfg.Data.Source = filepath.Join(t.TempDir(), "missing.json")

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "data.source", fieldErrs[0].Field)
}

func TestValidateDeep_GlobWithoutMatches(t *testing.T) {
	cfg := validConfig(t)
	cfg.Data.Source = filepath.Join(t.TempDir(), "**", "*.json")

	err := cfg.ValidateDeep("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestValidateDeep_URLSourceNotFetched(t *testing.T) {
	cfg := validConfig(t)
	cfg.Data.Source = "http://127.0.0.1:1/data.json"

	assert.NoError(t, cfg.ValidateDeep(""))
}

func TestValidateDeep_BadListenAddress(t *testing.T) {
	cfg := validConfig(t)
	cfg.Serve.Listen = "8080"

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "serve.listen", fieldErrs[0].Field)
}

func TestValidateDeep_ConfigPathIsDirectory(t *testing.T) {
	cfg := validConfig(t)

	err := cfg.ValidateDeep(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestValidateDeep_StopsOnStructuralErrors(t *testing.T) {
	cfg := validConfig(t)
	cfg.Timeline.Scale = 0
	cfg.Data.Source = filepath.Join(t.TempDir(), "missing.json")

	err := cfg.ValidateDeep("")

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "timeline.scale", fieldErrs[0].Field)
}

func TestWarnings(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Warnings())

	start := 3000
	cfg.Timeline.StartYear = &start
	cfg.Timeline.Variant = "dense"
	cfg.Timeline.Scale = 20

	warnings := cfg.Warnings()
	require.Len(t, warnings, 2)
	assert.Equal(t, "start_year", warnings[0].Item)
	assert.Equal(t, "dense_max_scale", warnings[1].Item)
}
