package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	marqueeTickInterval = 250 * time.Millisecond
	marqueeGap          = "   "
)

type marqueeTickMsg time.Time

func scheduleMarqueeTick() tea.Cmd {
	return tea.Tick(marqueeTickInterval, func(t time.Time) tea.Msg {
		return marqueeTickMsg(t)
	})
}

// Marquee advances the scroll position shared by every overflowing band
// label. It ticks only while the current layout has such a band.
type Marquee struct {
	frame   int
	ticking bool
}

func (m *Marquee) Advance()      { m.frame++ }
func (m *Marquee) Frame() int    { return m.frame }
func (m *Marquee) Ticking() bool { return m.ticking }

func (m *Marquee) SetTicking(v bool) { m.ticking = v }

// marqueeText returns width cells of text rotated left by frame, wrapping
// around through a gap. Text that fits is returned unchanged.
func marqueeText(text []rune, width, frame int) []rune {
	if width <= 0 {
		return nil
	}
	if len(text) <= width {
		return text
	}

	loop := append(append([]rune{}, text...), []rune(marqueeGap)...)
	start := frame % len(loop)
	out := make([]rune, width)
	for i := range out {
		out[i] = loop[(start+i)%len(loop)]
	}
	return out
}
