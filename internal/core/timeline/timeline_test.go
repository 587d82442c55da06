package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPositionOf_MinYearIsZero(t *testing.T) {
	b := DefaultBounds()
	for _, scale := range []float64{1, 1.25, 2.5, 10, 37, 100} {
		assert.Equal(t, 0.0, b.PositionOf(b.MinYear, scale), "scale %v", scale)
	}
}

func TestPositionOf_CustomRanges(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
	}{
		{name: "default", bounds: DefaultBounds()},
		{name: "starts after year 0", bounds: Bounds{MinYear: 1000, MaxYear: 2100}},
		{name: "starts at year 0", bounds: Bounds{MinYear: 0, MaxYear: 500}},
		{name: "ends before year 0", bounds: Bounds{MinYear: -3000, MaxYear: -100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.bounds
			for _, scale := range []float64{1, 2.5, 10} {
				assert.Equal(t, 0.0, b.PositionOf(b.MinYear, scale))
				assert.Equal(t, b.MaxScroll(scale), b.PositionOf(b.MaxYear, scale))
				assert.Equal(t, b.MinYear, b.YearAt(0, scale))
				assert.Equal(t, b.MaxYear, b.YearAt(b.MaxScroll(scale), scale))
			}
		})
	}
}

func TestPositionOf_NonNegativeAndMonotonic(t *testing.T) {
	b := DefaultBounds()
	for _, scale := range []float64{1, 5, 10, 100} {
		prev := -1.0
		for year := b.MinYear; year <= b.MaxYear; year += 37 {
			pos := b.PositionOf(year, scale)
			assert.GreaterOrEqual(t, pos, 0.0)
			assert.Greater(t, pos, prev, "year %d scale %v", year, scale)
			prev = pos
		}
	}
}

func TestPositionOf_ClampsOutOfRange(t *testing.T) {
	b := DefaultBounds()
	tests := []struct {
		year    int
		clamped int
	}{
		{year: -20000, clamped: -10000},
		{year: -10001, clamped: -10000},
		{year: 2101, clamped: 2100},
		{year: 5000, clamped: 2100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.clamped, b.Clamp(tt.year))
		assert.Equal(t, b.PositionOf(tt.clamped, 10), b.PositionOf(tt.year, 10))
	}
}

func TestPositionOf_MoonLanding(t *testing.T) {
	assert.Equal(t, 119690.0, DefaultBounds().PositionOf(1969, 10))
}

func TestMaxScroll(t *testing.T) {
	b := DefaultBounds()
	assert.Equal(t, 12100.0, b.MaxScroll(1))
	assert.Equal(t, 121000.0, b.MaxScroll(10))
	assert.Equal(t, b.PositionOf(b.MaxYear, 10), b.MaxScroll(10))
}

func TestYearAt(t *testing.T) {
	b := DefaultBounds()
	assert.Equal(t, 1969, b.YearAt(b.PositionOf(1969, 10), 10))
	assert.Equal(t, 1969, b.YearAt(b.PositionOf(1969, 10)+9.9, 10))
	assert.Equal(t, b.MinYear, b.YearAt(-50, 10))
	assert.Equal(t, b.MaxYear, b.YearAt(1e9, 10))
	assert.Equal(t, b.MinYear, b.YearAt(100, 0))
}

func TestPixelRange(t *testing.T) {
	b := DefaultBounds()

	from, to := b.PixelRange(1950, 2000, 10)
	assert.Equal(t, 119500.0, from)
	assert.Equal(t, 120010.0, to)

	from, to = b.PixelRange(2000, 1950, 10)
	assert.Equal(t, from, to)

	from, to = b.PixelRange(-20000, 5000, 1)
	assert.Equal(t, 0.0, from)
	assert.Equal(t, 12101.0, to)
}

func TestWidthOf(t *testing.T) {
	assert.Equal(t, 60.0, WidthOf(1939, 1945, 10))
	assert.Equal(t, 60.0, WidthOf(1945, 1939, 10))
	assert.Equal(t, 10.0, WidthOf(1492, 1492, 10))
	assert.Equal(t, 2.5, WidthOf(1, 1, 2.5))
}

func TestEraLabel(t *testing.T) {
	tests := []struct {
		year int
		want string
	}{
		{year: 1969, want: "1969 CE"},
		{year: 1, want: "1 CE"},
		{year: 0, want: "0 BCE"},
		{year: -500, want: "500 BCE"},
		{year: -9900, want: "9900 BCE"},
		{year: -10000, want: "10,000 BCE"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, EraLabel(tt.year))
		})
	}
}

func TestCurrentYear(t *testing.T) {
	fixed := func() time.Time { return time.Date(2031, time.March, 3, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, 2031, CurrentYear(fixed))
	assert.Equal(t, time.Now().Year(), CurrentYear(nil))
}
