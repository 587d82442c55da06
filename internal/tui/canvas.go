package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
)

// Cell sizes used when building layouts for the terminal. One cell is one
// pixel of the strip.
const (
	cellMinBandWidth = 12
	cellCharWidth    = 1
)

// gridParity marks which gridline band a column falls in.
type gridParity int8

const (
	gridNone gridParity = iota
	gridOdd
	gridEven
)

type cell struct {
	ch    rune
	style int
}

// canvas is a grid of styled cells. Styles are interned by key so runs of
// equal cells render with one escape sequence.
type canvas struct {
	width  int
	rows   [][]cell
	styles []lipgloss.Style
	keys   map[string]int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width: width,
		rows:  make([][]cell, height),
		keys:  map[string]int{},
	}
	blank := c.style("blank", lipgloss.NewStyle())
	for i := range c.rows {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{ch: ' ', style: blank}
		}
		c.rows[i] = row
	}
	return c
}

func (c *canvas) style(key string, st lipgloss.Style) int {
	if id, ok := c.keys[key]; ok {
		return id
	}
	c.styles = append(c.styles, st)
	c.keys[key] = len(c.styles) - 1
	return len(c.styles) - 1
}

func (c *canvas) set(x, y int, ch rune, style int) {
	if y < 0 || y >= len(c.rows) || x < 0 || x >= c.width {
		return
	}
	c.rows[y][x] = cell{ch: ch, style: style}
}

// text writes runes left to right starting at x, stopping at limit.
func (c *canvas) text(x, y, limit int, runes []rune, style int) {
	for i, r := range runes {
		if x+i >= limit {
			return
		}
		c.set(x+i, y, r, style)
	}
}

func (c *canvas) String() string {
	lines := make([]string, len(c.rows))
	for i, row := range c.rows {
		var sb strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].style == row[start].style {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.ch)
			}
			sb.WriteString(c.styles[row[start].style].Render(string(run)))
			start = x
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}

// stripView is everything renderStrip needs for one frame.
type stripView struct {
	layout layout.Layout
	offset float64
	width  int
	height int
	frame  int
}

// renderStrip draws the visible part of the timeline. Row 0 carries
// gridline labels, the following rows hold event lanes and the remaining
// rows show the gridline bands alone. The today marker crosses all rows.
func renderStrip(v stripView) string {
	if v.width <= 0 || v.height <= 0 {
		return ""
	}
	c := newCanvas(v.width, v.height)
	visible := v.layout.Window(v.offset, v.offset+float64(v.width))
	parity := paintGrid(c, visible, v)

	lanes := max(v.height-2, 0)
	for _, b := range visible.Events {
		if b.Lane >= lanes {
			continue
		}
		paintBand(c, b, v, 1+b.Lane)
	}

	paintToday(c, visible.Today.X, v, parity)
	return c.String()
}

func column(px, offset float64) int {
	return int(math.Floor(px - offset))
}

func paintGrid(c *canvas, l layout.Layout, v stripView) []gridParity {
	parity := make([]gridParity, v.width)
	for _, g := range l.Gridlines {
		p := gridOdd
		if g.Even {
			p = gridEven
		}
		from := max(column(g.X, v.offset), 0)
		to := min(column(g.X+g.Width, v.offset), v.width)
		for x := from; x < to; x++ {
			parity[x] = p
		}
	}

	even := c.style("grid:even", styles.GridEvenStyle)
	odd := c.style("grid:odd", styles.GridOddStyle)
	labelEven := c.style("label:even", styles.GridEvenStyle.Foreground(styles.CurrentPalette.Muted))
	labelOdd := c.style("label:odd", styles.GridOddStyle.Foreground(styles.CurrentPalette.Muted))

	for y := range c.rows {
		for x, p := range parity {
			switch p {
			case gridEven:
				c.set(x, y, ' ', even)
			case gridOdd:
				c.set(x, y, ' ', odd)
			}
		}
	}

	// Labels are skipped when they would run into the previous one.
	nextFree := 0
	for _, g := range l.Gridlines {
		x := column(g.X, v.offset)
		if x < nextFree {
			continue
		}
		style := labelOdd
		if g.Even {
			style = labelEven
		}
		label := []rune(g.Label)
		c.text(x, 0, v.width, label, style)
		nextFree = x + len(label) + 1
	}
	return parity
}

func paintBand(c *canvas, b layout.Band, v stripView, row int) {
	from := max(column(b.X, v.offset), 0)
	to := min(column(b.Right(), v.offset), v.width)
	if to <= from {
		return
	}

	color := styles.ColorForString(b.Description)
	style := c.style("band:"+string(color), styles.BandStyle(b.Description))
	for x := from; x < to; x++ {
		c.set(x, row, ' ', style)
	}

	// One cell of padding on the left when there is room for it.
	start := from
	if to-from > 2 {
		start++
	}
	text := cellRunes(b.Description)
	if b.Marquee {
		text = marqueeText(text, to-start, v.frame)
	} else if len(text) > to-start {
		text = append(text[:max(to-start-1, 0)], []rune(styles.GlyphEllipsis)...)
	}
	c.text(start, row, to, text, style)
}

func paintToday(c *canvas, px float64, v stripView, parity []gridParity) {
	x := column(px, v.offset)
	if x < 0 || x >= v.width {
		return
	}
	bg := styles.CurrentPalette.Background
	key := "today:odd"
	if parity[x] == gridEven {
		bg = styles.CurrentPalette.Surface
		key = "today:even"
	}
	style := c.style(key, styles.TodayStyle.Background(bg))
	head := []rune(styles.GlyphTodayHead)[0]
	line := []rune(styles.GlyphToday)[0]

	c.set(x, 0, head, style)
	for y := 1; y < len(c.rows); y++ {
		// Keep event labels readable where they cross the marker.
		if c.rows[y][x].ch != ' ' {
			continue
		}
		c.set(x, y, line, style)
	}
}

// cellRunes returns s with every rune that does not occupy exactly one
// terminal cell replaced, so one rune maps to one column.
func cellRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		if ansi.StringWidth(string(r)) != 1 {
			runes[i] = '?'
		}
	}
	return runes
}

// renderScrollbar draws a one-line position indicator for offset within
// [0, maxScroll].
func renderScrollbar(offset, maxScroll float64, width int) string {
	if width <= 0 {
		return ""
	}
	pos := 0
	if maxScroll > 0 {
		pos = int(math.Round(offset / maxScroll * float64(width-1)))
	}
	pos = min(max(pos, 0), width-1)
	return styles.ScrollbarStyle.Render(strings.Repeat(styles.GlyphScrollbar, pos)) +
		styles.ThumbStyle.Render(styles.GlyphThumb) +
		styles.ScrollbarStyle.Render(strings.Repeat(styles.GlyphScrollbar, width-pos-1))
}

// yearSpan formats the visible year range for the header.
func yearSpan(from, to int) string {
	return fmt.Sprintf("%s – %s", timeline.EraLabel(from), timeline.EraLabel(to))
}
