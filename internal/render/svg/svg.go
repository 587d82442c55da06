// Package svg renders a computed layout as a standalone SVG document.
package svg

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/styles"
)

// Defaults for Options zero values.
const (
	DefaultHeaderHeight = 24
	DefaultLaneHeight   = 28
	DefaultFontFamily   = "Arial, sans-serif"
	DefaultFontSize     = 12
	// marqueeSpeed is the marquee scroll rate in pixels per second.
	marqueeSpeed = 40.0
)

// Options controls Render.
type Options struct {
	Palette styles.Palette
	// From and To crop the output to a pixel range of the layout. A zero
	// To renders the full strip.
	From, To     float64
	HeaderHeight int
	LaneHeight   int
	FontFamily   string
	FontSize     int
	// CharWidth is the per-character width used for marquee distances.
	CharWidth float64
	Title     string
}

func (o Options) withDefaults(l layout.Layout) Options {
	if o.Palette == (styles.Palette{}) {
		o.Palette = styles.CurrentPalette
	}
	if o.To <= o.From {
		o.From, o.To = 0, l.TotalWidth
	}
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = DefaultHeaderHeight
	}
	if o.LaneHeight <= 0 {
		o.LaneHeight = DefaultLaneHeight
	}
	if o.FontFamily == "" {
		o.FontFamily = DefaultFontFamily
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.CharWidth <= 0 {
		o.CharWidth = layout.DefaultCharWidth
	}
	return o
}

// Height returns the document height for l.
func Height(l layout.Layout, opts Options) int {
	opts = opts.withDefaults(l)
	return opts.HeaderHeight + max(l.Lanes, 1)*opts.LaneHeight + opts.LaneHeight/2
}

// Render writes l as SVG. Gridlines alternate between the palette's surface
// and background colors, event bands are colored by description and the
// today marker is drawn last so it stays on top.
func Render(w io.Writer, l layout.Layout, opts Options) error {
	opts = opts.withDefaults(l)
	l = l.Window(opts.From, opts.To)

	bw := bufio.NewWriter(w)
	p := opts.Palette
	width := opts.To - opts.From
	height := Height(l, opts)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%d" viewBox="%s 0 %s %d" font-family="%s" font-size="%d">
`, num(width), height, num(opts.From), num(width), height, html.EscapeString(opts.FontFamily), opts.FontSize)

	if opts.Title != "" {
		fmt.Fprintf(bw, "<title>%s</title>\n", html.EscapeString(opts.Title))
	}
	fmt.Fprintf(bw, `<rect x="%s" y="0" width="%s" height="%d" fill="%s"/>`+"\n",
		num(opts.From), num(width), height, p.Background)

	for _, g := range l.Gridlines {
		fill := p.Background
		if g.Even {
			fill = p.Surface
		}
		fmt.Fprintf(bw, `<rect class="grid" x="%s" y="0" width="%s" height="%d" fill="%s"/>`+"\n",
			num(g.X), num(g.Width), height, fill)
		fmt.Fprintf(bw, `<text class="grid-label" x="%s" y="%d" fill="%s">%s</text>`+"\n",
			num(g.X+4), opts.HeaderHeight-8, p.Muted, html.EscapeString(g.Label))
	}

	for i, b := range l.Events {
		writeBand(bw, i, b, opts)
	}

	fmt.Fprintf(bw, `<line class="today" x1="%s" y1="0" x2="%s" y2="%d" stroke="%s" stroke-width="2"><title>%d</title></line>`+"\n",
		num(l.Today.X), num(l.Today.X), height, p.Error, l.Today.Year)

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

func writeBand(w *bufio.Writer, i int, b layout.Band, opts Options) {
	y := opts.HeaderHeight + b.Lane*opts.LaneHeight + 2
	h := opts.LaneHeight - 4
	fill := styles.ColorForString(b.Description)
	textY := y + h/2 + opts.FontSize/3
	desc := html.EscapeString(b.Description)

	fmt.Fprintf(w, `<clipPath id="band-%d"><rect x="%s" y="%d" width="%s" height="%d"/></clipPath>`+"\n",
		i, num(b.X), y, num(b.Width), h)
	fmt.Fprintf(w, `<g class="event"><title>%s: %s</title>`, html.EscapeString(b.Years), desc)
	fmt.Fprintf(w, `<rect x="%s" y="%d" width="%s" height="%d" rx="3" fill="%s"/>`,
		num(b.X), y, num(b.Width), h, fill)

	textX := b.X + 4
	fmt.Fprintf(w, `<text x="%s" y="%d" fill="%s" clip-path="url(#band-%d)">%s`,
		num(textX), textY, textColor(fill, opts.Palette), i, desc)
	if b.Marquee {
		overflow := float64(utf8.RuneCountInString(b.Description))*opts.CharWidth - b.Width + 8
		dur := math.Max(overflow/marqueeSpeed, 1)
		fmt.Fprintf(w, `<animate attributeName="x" values="%s;%s;%s" dur="%ss" repeatCount="indefinite"/>`,
			num(textX), num(textX-overflow), num(textX), num(dur*2))
	}
	w.WriteString("</text></g>\n")
}

func textColor(fill lipgloss.Color, p styles.Palette) lipgloss.Color {
	return styles.ReadableOn(fill, p.Background, p.Foreground)
}

// num formats a float without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
