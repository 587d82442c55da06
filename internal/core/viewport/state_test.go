package viewport

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/histline/internal/core/timeline"
)

func newState(t *testing.T, scale float64) *State {
	t.Helper()
	return New(timeline.DefaultBounds(), ScaleBounded, scale)
}

func TestZoom_RoundTrip(t *testing.T) {
	for s := 1.0; s <= 50; s += 0.5 {
		assert.Equal(t, s, ZoomOut(ZoomIn(s)), "scale %v", s)
	}
}

func TestZoom_BoundaryIdempotence(t *testing.T) {
	assert.Equal(t, MaxScale, ZoomIn(MaxScale))
	assert.Equal(t, MinScale, ZoomOut(MinScale))
}

func TestState_ZoomInFourTimesFromTen(t *testing.T) {
	s := newState(t, 10)

	want := []float64{20, 40, 80, 100, 100}
	for i, w := range want {
		assert.Equal(t, w, s.ZoomIn(), "call %d", i+1)
	}
	assert.Equal(t, 100.0, s.Scale())
}

func TestState_ZoomOutFloorsAtOne(t *testing.T) {
	s := newState(t, 10)

	want := []float64{5, 2.5, 1.25, 1, 1}
	for i, w := range want {
		assert.Equal(t, w, s.ZoomOut(), "call %d", i+1)
	}
}

func TestState_NewClampsScale(t *testing.T) {
	assert.Equal(t, MaxScale, New(timeline.DefaultBounds(), ScaleBounded, 500).Scale())
	assert.Equal(t, MinScale, New(timeline.DefaultBounds(), ScaleBounded, 0).Scale())
	assert.Equal(t, 500.0, New(timeline.DefaultBounds(), ScaleFree, 500).Scale())
	assert.Equal(t, ScaleBounded, New(timeline.DefaultBounds(), "bogus", 10).Mode())
}

func TestState_SetScaleText(t *testing.T) {
	tests := []struct {
		name    string
		mode    ScaleMode
		input   string
		ok      bool
		wantVal float64
	}{
		{name: "integer", mode: ScaleFree, input: "25", ok: true, wantVal: 25},
		{name: "fractional", mode: ScaleFree, input: " 2.5 ", ok: true, wantVal: 2.5},
		{name: "large free", mode: ScaleFree, input: "400", ok: true, wantVal: 400},
		{name: "large bounded is capped", mode: ScaleBounded, input: "400", ok: true, wantVal: 100},
		{name: "below one", mode: ScaleFree, input: "0.5", ok: false, wantVal: 10},
		{name: "negative", mode: ScaleFree, input: "-3", ok: false, wantVal: 10},
		{name: "not a number", mode: ScaleFree, input: "abc", ok: false, wantVal: 10},
		{name: "empty", mode: ScaleFree, input: "", ok: false, wantVal: 10},
		{name: "infinite", mode: ScaleFree, input: "Inf", ok: false, wantVal: 10},
		{name: "nan", mode: ScaleFree, input: "NaN", ok: false, wantVal: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(timeline.DefaultBounds(), tt.mode, 10)
			assert.Equal(t, tt.ok, s.SetScaleText(tt.input))
			assert.Equal(t, tt.wantVal, s.Scale())
		})
	}
}

func TestState_ScrollToClampsTarget(t *testing.T) {
	s := newState(t, 10)
	s.SetScrollFrames(0)

	dest := s.ScrollTo(5000)

	b := timeline.DefaultBounds()
	assert.Equal(t, b.PositionOf(2100, 10), dest)
	assert.Equal(t, dest, s.Offset())
	assert.Equal(t, 2100, s.TargetYear())
}

func TestState_ScrollToCustomRange(t *testing.T) {
	b := timeline.Bounds{MinYear: 1000, MaxYear: 2100}
	s := New(b, ScaleBounded, 1)
	s.SetScrollFrames(0)

	assert.Equal(t, 1100.0, s.ScrollTo(2100))
	assert.Equal(t, 1100.0, s.Offset())

	assert.Equal(t, 0.0, s.ScrollTo(500))
	assert.Equal(t, 1000, s.TargetYear())
}

func TestState_ScrollToBelowRange(t *testing.T) {
	s := newState(t, 10)
	s.SetScrollFrames(0)
	s.OnScroll(5000)

	assert.Equal(t, 0.0, s.ScrollTo(-50000))
	assert.Equal(t, 0.0, s.Offset())
}

func TestState_SmoothScrollReachesTarget(t *testing.T) {
	s := newState(t, 10)

	dest := s.ScrollTo(1969)
	require.True(t, s.Animating())
	assert.Equal(t, 0.0, s.Offset(), "smooth scroll should not jump")

	prev := s.Offset()
	steps := 0
	for s.Step() {
		steps++
		assert.GreaterOrEqual(t, s.Offset(), prev)
		assert.LessOrEqual(t, s.Offset(), dest)
		prev = s.Offset()
	}

	assert.Equal(t, DefaultScrollFrames-1, steps)
	assert.False(t, s.Animating())
	assert.Equal(t, 119690.0, s.Offset())
}

func TestState_SecondScrollToInterruptsFirst(t *testing.T) {
	s := newState(t, 10)

	s.ScrollTo(2000)
	s.Step()
	s.Step()
	mid := s.Offset()

	dest := s.ScrollTo(-5000)
	s.Finish()

	assert.NotEqual(t, mid, s.Offset())
	assert.Equal(t, dest, s.Offset())
	assert.Equal(t, -5000, s.TargetYear())
}

func TestState_OnScrollHardLock(t *testing.T) {
	s := newState(t, 10)
	maxScroll := timeline.DefaultBounds().MaxScroll(10)

	for _, offset := range []float64{0, 100, maxScroll - 1, maxScroll, maxScroll + 1, maxScroll * 3, math.Inf(1)} {
		got := s.OnScroll(offset)
		assert.LessOrEqual(t, got, maxScroll, "offset %v", offset)
		assert.Equal(t, got, s.Offset())
	}

	assert.Equal(t, maxScroll, s.OnScroll(maxScroll+500))
	assert.Equal(t, 0.0, s.OnScroll(-10))
}

func TestState_ScrollByCancelsAnimation(t *testing.T) {
	s := newState(t, 10)
	s.ScrollTo(1000)
	require.True(t, s.Animating())

	s.ScrollBy(50)

	assert.False(t, s.Animating())
	assert.Equal(t, 50.0, s.Offset())
}

func TestState_ZoomKeepsLeftEdgeYear(t *testing.T) {
	s := newState(t, 10)
	s.OnScroll(timeline.DefaultBounds().PositionOf(1500, 10))

	s.ZoomIn()
	from, _ := s.VisibleYears(80)
	assert.Equal(t, 1500, from)

	s.ZoomOut()
	s.ZoomOut()
	from, _ = s.VisibleYears(80)
	assert.Equal(t, 1500, from)
}

func TestState_ZoomOutReappliesLock(t *testing.T) {
	s := newState(t, 10)
	s.SetScrollFrames(0)
	s.ScrollTo(2100)

	s.ZoomOut()

	assert.LessOrEqual(t, s.Offset(), timeline.DefaultBounds().MaxScroll(s.Scale()))
}

func TestState_SetTargetText(t *testing.T) {
	s := newState(t, 10)
	s.SetScrollFrames(0)

	assert.True(t, s.SetTargetText("1969"))
	assert.Equal(t, 1969, s.TargetYear())

	assert.False(t, s.SetTargetText("next year"))
	assert.Equal(t, 1969, s.TargetYear(), "invalid input leaves state unchanged")

	assert.True(t, s.SetTargetText("5000"))
	assert.Equal(t, 2100, s.TargetYear())

	s.Jump()
	assert.Equal(t, timeline.DefaultBounds().PositionOf(2100, 10), s.Offset())
}

func TestState_VisibleYears(t *testing.T) {
	s := newState(t, 10)
	s.OnScroll(timeline.DefaultBounds().PositionOf(1900, 10))

	from, to := s.VisibleYears(100)
	assert.Equal(t, 1900, from)
	assert.Equal(t, 1909, to)
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{in: "1969", want: 1969, ok: true},
		{in: "-500", want: -500, ok: true},
		{in: " 44 ", want: 44, ok: true},
		{in: "1969.7", want: 1969, ok: true},
		{in: "10,000", want: 10000, ok: true},
		{in: "-10,000", want: -10000, ok: true},
		{in: "", ok: false},
		{in: "1e99", ok: false},
		{in: "year", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseYear(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
