package viewport

import (
	"math"

	"github.com/hay-kot/histline/internal/core/timeline"
)

// DefaultScrollFrames is the number of frames a smooth scroll takes.
const DefaultScrollFrames = 12

// ViewState is a read-only snapshot of State.
type ViewState struct {
	Scale        float64 `json:"scale"`
	ScrollOffset float64 `json:"scroll_offset"`
	TargetYear   int     `json:"target_year"`
}

// animation is an in-flight smooth scroll.
type animation struct {
	from   float64
	to     float64
	frame  int
	frames int
}

// State owns the mutable view state. It is not safe for concurrent use;
// the view that owns it serializes all mutations.
type State struct {
	bounds timeline.Bounds
	mode   ScaleMode
	frames int

	scale  float64
	offset float64
	target int
	anim   *animation
}

// New creates a State positioned at the left edge of the strip. An
// out-of-range scale is clamped for the mode.
func New(bounds timeline.Bounds, mode ScaleMode, scale float64) *State {
	if !mode.Valid() {
		mode = ScaleBounded
	}
	s := &State{
		bounds: bounds,
		mode:   mode,
		frames: DefaultScrollFrames,
		target: bounds.MinYear,
	}
	s.scale = s.clampScale(scale)
	return s
}

// SetScrollFrames changes the length of smooth scrolls. Values below 1
// make ScrollTo jump immediately.
func (s *State) SetScrollFrames(n int) {
	s.frames = n
}

func (s *State) Bounds() timeline.Bounds { return s.bounds }
func (s *State) Mode() ScaleMode         { return s.mode }
func (s *State) Scale() float64          { return s.scale }
func (s *State) Offset() float64         { return s.offset }
func (s *State) TargetYear() int         { return s.target }

// Snapshot returns the current values.
func (s *State) Snapshot() ViewState {
	return ViewState{Scale: s.scale, ScrollOffset: s.offset, TargetYear: s.target}
}

func (s *State) maxScale() float64 {
	if s.mode == ScaleFree {
		return math.Inf(1)
	}
	return MaxScale
}

func (s *State) clampScale(v float64) float64 {
	if math.IsNaN(v) || v < MinScale {
		return MinScale
	}
	return math.Min(v, s.maxScale())
}

// ZoomIn doubles the scale. In bounded mode the result is capped at
// MaxScale; repeated calls at the cap leave the scale unchanged.
func (s *State) ZoomIn() float64 {
	return s.setScale(s.clampScale(s.scale * 2))
}

// ZoomOut halves the scale, never going below MinScale.
func (s *State) ZoomOut() float64 {
	return s.setScale(math.Max(s.scale/2, MinScale))
}

// SetScaleText applies a user-typed scale. Invalid or sub-1 input is
// ignored and reported as false; in bounded mode the value is capped.
func (s *State) SetScaleText(text string) bool {
	v, ok := ParseScale(text)
	if !ok {
		return false
	}
	s.setScale(s.clampScale(v))
	return true
}

// setScale keeps the year at the left edge of the viewport in place and
// re-applies the scroll lock.
func (s *State) setScale(v float64) float64 {
	if v == s.scale {
		return v
	}
	ratio := v / s.scale
	s.scale = v
	s.offset = s.lock(s.offset * ratio)
	if s.anim != nil {
		s.anim.from *= ratio
		s.anim.to = s.lock(s.anim.to * ratio)
	}
	return v
}

// SetTargetText records a user-typed jump target. Non-numeric input is
// ignored and reported as false.
func (s *State) SetTargetText(text string) bool {
	year, ok := ParseYear(text)
	if !ok {
		return false
	}
	s.target = s.bounds.Clamp(year)
	return true
}

// Jump scrolls to the recorded target year.
func (s *State) Jump() float64 {
	return s.ScrollTo(s.target)
}

// ScrollTo clamps year into the range and starts a smooth scroll to its
// position. It returns the destination offset. A scroll already in flight
// is replaced, not queued.
func (s *State) ScrollTo(year int) float64 {
	year = s.bounds.Clamp(year)
	s.target = year
	dest := s.lock(s.bounds.PositionOf(year, s.scale))

	if s.frames < 1 || dest == s.offset {
		s.anim = nil
		s.offset = dest
		return dest
	}

	s.anim = &animation{from: s.offset, to: dest, frames: s.frames}
	return dest
}

// OnScroll applies a scroll position reported by the viewport. Offsets past
// MaxScroll are forced back to it on every call.
func (s *State) OnScroll(offset float64) float64 {
	s.offset = s.lock(offset)
	return s.offset
}

// ScrollBy moves the viewport by delta pixels, cancelling any smooth
// scroll in progress.
func (s *State) ScrollBy(delta float64) float64 {
	s.anim = nil
	return s.OnScroll(s.offset + delta)
}

// Animating reports whether a smooth scroll is in progress.
func (s *State) Animating() bool {
	return s.anim != nil
}

// Step advances the smooth scroll by one frame and reports whether more
// frames remain.
func (s *State) Step() bool {
	if s.anim == nil {
		return false
	}
	a := s.anim
	a.frame++
	if a.frame >= a.frames {
		s.anim = nil
		s.OnScroll(a.to)
		return false
	}
	t := float64(a.frame) / float64(a.frames)
	s.OnScroll(a.from + (a.to-a.from)*easeOutCubic(t))
	return true
}

// Finish completes a smooth scroll immediately.
func (s *State) Finish() {
	for s.Step() {
	}
}

// VisibleYears returns the first and last year visible in a viewport of
// width pixels.
func (s *State) VisibleYears(width int) (from, to int) {
	from = s.bounds.YearAt(s.offset, s.scale)
	to = s.bounds.YearAt(s.offset+float64(max(width, 1))-1, s.scale)
	return from, to
}

func (s *State) lock(offset float64) float64 {
	if offset < 0 {
		return 0
	}
	return math.Min(offset, s.bounds.MaxScroll(s.scale))
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}
