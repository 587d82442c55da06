// Package viewport holds the transient view state of the timeline: the
// zoom scale, the horizontal scroll offset and the jump target.
package viewport

import (
	"math"
	"strconv"
	"strings"
)

// Scale limits in pixels per year.
const (
	MinScale     = 1.0
	MaxScale     = 100.0
	DefaultScale = 10.0
)

// ScaleMode selects how the scale may change.
type ScaleMode string

const (
	// ScaleBounded keeps the scale inside [MinScale, MaxScale].
	ScaleBounded ScaleMode = "bounded"
	// ScaleFree accepts any finite scale >= MinScale from text input.
	ScaleFree ScaleMode = "free"
)

// Valid reports whether m is a known mode.
func (m ScaleMode) Valid() bool {
	return m == ScaleBounded || m == ScaleFree
}

// ZoomIn doubles scale, capped at MaxScale.
func ZoomIn(scale float64) float64 {
	return math.Min(scale*2, MaxScale)
}

// ZoomOut halves scale, floored at MinScale.
func ZoomOut(scale float64) float64 {
	return math.Max(scale/2, MinScale)
}

// ParseScale parses a pixels-per-year value typed by the user. It reports
// false for anything that is not a finite number >= MinScale.
func ParseScale(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < MinScale {
		return 0, false
	}
	return v, true
}

// ParseYear parses a jump target typed by the user. Thousands separators
// are dropped, so "10,000" is 10000.
func ParseYear(text string) (int, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if n, err := strconv.Atoi(text); err == nil {
		return n, true
	}
	// Number inputs may hand over values like "1969.0".
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Trunc(v)), true
}
