// Package timeline maps historical years onto a horizontal pixel strip.
//
// All positions are measured in pixels from the left edge of the strip. The
// year range is closed and every year is clamped into it before it is
// positioned, so positions are never negative.
package timeline

import "math"

// Default year range of the strip.
const (
	DefaultMinYear = -10000
	DefaultMaxYear = 2100
)

// Event is one historical occurrence as stored in the event list.
type Event struct {
	Years       string `json:"years"`
	Description string `json:"description"`
}

// Bounds is the closed year range represented on the strip.
type Bounds struct {
	MinYear int
	MaxYear int
}

// DefaultBounds returns the -10000..2100 range.
func DefaultBounds() Bounds {
	return Bounds{MinYear: DefaultMinYear, MaxYear: DefaultMaxYear}
}

// Offset is the constant added to every year before scaling. It moves
// MinYear to position 0, so it is |MinYear| for the default range and
// negative for a range starting after year 0.
func (b Bounds) Offset() int {
	return -b.MinYear
}

// Clamp restricts year to [MinYear, MaxYear].
func (b Bounds) Clamp(year int) int {
	return min(max(year, b.MinYear), b.MaxYear)
}

// Contains reports whether year lies inside the range.
func (b Bounds) Contains(year int) bool {
	return year >= b.MinYear && year <= b.MaxYear
}

// PositionOf returns the pixel offset of year at the given scale
// (pixels per year).
func (b Bounds) PositionOf(year int, scale float64) float64 {
	return float64(b.Clamp(year)+b.Offset()) * scale
}

// MaxScroll is the largest scroll offset allowed at scale: the position at
// which MaxYear sits on the left edge of the viewport.
func (b Bounds) MaxScroll(scale float64) float64 {
	return float64(b.MaxYear-b.MinYear) * scale
}

// YearAt is the inverse of PositionOf for a pixel offset, clamped into the
// range.
func (b Bounds) YearAt(px, scale float64) int {
	if scale <= 0 {
		return b.MinYear
	}
	return b.Clamp(int(math.Floor(px/scale)) - b.Offset())
}

// WidthOf returns the pixel width of an event spanning start..end. Point
// events pass the same year twice and get one year's worth of pixels.
func WidthOf(start, end int, scale float64) float64 {
	d := start - end
	if d < 0 {
		d = -d
	}
	return float64(max(d, 1)) * scale
}

// PixelRange returns the pixels covered by the years from..to inclusive.
// An inverted range yields an empty one at the position of from.
func (b Bounds) PixelRange(from, to int, scale float64) (float64, float64) {
	start := b.PositionOf(from, scale)
	end := b.PositionOf(to, scale) + scale
	if end < start {
		return start, start
	}
	return start, end
}
