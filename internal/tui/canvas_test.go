package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/pkg/tuitest"
)

func cellLayout(events []timeline.Event, scale float64) layout.Layout {
	return layout.Build(events, layout.Options{
		Scale:        scale,
		CurrentYear:  2026,
		MinBandWidth: cellMinBandWidth,
		CharWidth:    cellCharWidth,
	})
}

func TestRenderStrip_LabelsAndToday(t *testing.T) {
	l := cellLayout(nil, 1)
	// Year 1900 sits at column 0; 2026 at column 126.
	offset := timeline.DefaultBounds().PositionOf(1900, 1)

	out := tuitest.StripANSI(renderStrip(stripView{layout: l, offset: offset, width: 140, height: 4}))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "1900 CE"))
	assert.Contains(t, lines[0], "2000 CE")

	today := []rune(lines[3])
	require.Greater(t, len(today), 126)
	assert.Equal(t, []rune(styles.GlyphToday)[0], today[126])
	assert.Equal(t, []rune(styles.GlyphTodayHead)[0], []rune(lines[0])[126])
}

func TestRenderStrip_BandText(t *testing.T) {
	l := cellLayout([]timeline.Event{{Years: "1914-1918", Description: "World War I"}}, 10)
	offset := timeline.DefaultBounds().PositionOf(1910, 10)

	out := tuitest.StripANSI(renderStrip(stripView{layout: l, offset: offset, width: 80, height: 4}))
	lines := strings.Split(out, "\n")

	// The band starts 40 cells in and keeps one cell of padding.
	assert.Equal(t, 41, strings.Index(lines[1], "World War I"))
}

func TestRenderStrip_Truncates(t *testing.T) {
	l := cellLayout([]timeline.Event{{Years: "1969", Description: "Moon landing mission"}}, 1)
	require.True(t, l.Events[0].Marquee)
	l.Events[0].Marquee = false

	offset := timeline.DefaultBounds().PositionOf(1960, 1)
	out := tuitest.StripANSI(renderStrip(stripView{layout: l, offset: offset, width: 40, height: 3}))

	assert.Contains(t, out, "Moon landi"+styles.GlyphEllipsis)
}

func TestRenderStrip_HiddenLanes(t *testing.T) {
	l := cellLayout([]timeline.Event{
		{Years: "1969", Description: "a"},
		{Years: "1969", Description: "b"},
	}, 1)
	require.Equal(t, 2, l.Lanes)

	offset := timeline.DefaultBounds().PositionOf(1960, 1)
	out := tuitest.StripANSI(renderStrip(stripView{layout: l, offset: offset, width: 40, height: 3}))
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[1], "a")
	assert.NotContains(t, out, "b")
}

func TestRenderStrip_Empty(t *testing.T) {
	assert.Empty(t, renderStrip(stripView{layout: cellLayout(nil, 1), width: 0, height: 5}))
}

func TestMarqueeText(t *testing.T) {
	text := []rune("abcdef")

	assert.Equal(t, "abc", string(marqueeText(text, 3, 0)))
	assert.Equal(t, "bcd", string(marqueeText(text, 3, 1)))
	assert.Equal(t, "f   a", string(marqueeText(text, 5, 5)))
	assert.Equal(t, "abcdef", string(marqueeText(text, 10, 7)), "fitting text does not move")
	assert.Empty(t, marqueeText(text, 0, 0))
}

func TestCellRunes(t *testing.T) {
	assert.Equal(t, "a?b", string(cellRunes("a世b")))
}

func TestRenderScrollbar(t *testing.T) {
	bar := tuitest.StripANSI(renderScrollbar(50, 100, 11))
	runes := []rune(bar)
	require.Len(t, runes, 11)
	assert.Equal(t, []rune(styles.GlyphThumb)[0], runes[5])

	assert.Empty(t, renderScrollbar(0, 100, 0))
}
