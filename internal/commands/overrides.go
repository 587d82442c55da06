package commands

import (
	"fmt"

	"github.com/hay-kot/histline/internal/core/viewport"
)

// applyViewOverrides parses --year and --scale flag values into year and
// scale. Empty values leave the targets unchanged. Unlike keyboard input,
// a malformed flag is an error.
func applyViewOverrides(year *int, scale *float64, yearText, scaleText string) error {
	if yearText != "" {
		y, err := parseYearFlag("year", yearText)
		if err != nil {
			return err
		}
		*year = y
	}

	if scaleText != "" {
		s, err := parseScaleFlag(scaleText)
		if err != nil {
			return err
		}
		*scale = s
	}

	return nil
}

func parseYearFlag(name, text string) (int, error) {
	y, ok := viewport.ParseYear(text)
	if !ok {
		return 0, fmt.Errorf("invalid --%s %q", name, text)
	}
	return y, nil
}

func parseScaleFlag(text string) (float64, error) {
	s, ok := viewport.ParseScale(text)
	if !ok {
		return 0, fmt.Errorf("invalid --scale %q: must be a number >= %g", text, viewport.MinScale)
	}
	return s, nil
}
