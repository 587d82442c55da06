// Package layout computes the pixel geometry of the timeline: the gridline
// bands, the "today" marker and one band per event.
package layout

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/hay-kot/histline/internal/core/timeline"
)

// Variant selects the gridline density.
type Variant string

const (
	// VariantCentury draws one band per century.
	VariantCentury Variant = "century"
	// VariantDense draws one band per year and drops them entirely above
	// Options.DenseMaxScale.
	VariantDense Variant = "dense"
)

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool {
	return v == VariantCentury || v == VariantDense
}

// Defaults for Options zero values.
const (
	DefaultMinBandWidth  = 100.0
	DefaultCharWidth     = 7.0
	DefaultDenseMaxScale = 10.0
	centurySpan          = 100
)

// Options controls Build.
type Options struct {
	Bounds  timeline.Bounds
	Variant Variant
	Scale   float64
	// CurrentYear positions the "today" marker. It is read once by the
	// caller and not re-evaluated on later builds.
	CurrentYear int
	// MinBandWidth is the minimum pixel width of gridline and event bands.
	MinBandWidth float64
	// CharWidth estimates the pixel width of one description character,
	// used to decide whether a description overflows its band.
	CharWidth float64
	// DenseMaxScale is the scale above which dense gridlines are dropped.
	DenseMaxScale float64
	Parse         timeline.ParseOptions
}

func (o Options) withDefaults() Options {
	if o.Bounds == (timeline.Bounds{}) {
		o.Bounds = timeline.DefaultBounds()
	}
	if !o.Variant.Valid() {
		o.Variant = VariantCentury
	}
	if o.Scale <= 0 || math.IsNaN(o.Scale) {
		o.Scale = 1
	}
	if o.MinBandWidth <= 0 {
		o.MinBandWidth = DefaultMinBandWidth
	}
	if o.CharWidth <= 0 {
		o.CharWidth = DefaultCharWidth
	}
	if o.DenseMaxScale <= 0 {
		o.DenseMaxScale = DefaultDenseMaxScale
	}
	return o
}

// Gridline is one background band.
type Gridline struct {
	Year  int     `json:"year"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
	Label string  `json:"label"`
	// Even alternates styling by century parity.
	Even bool `json:"even"`
}

// Marker is the vertical "today" line.
type Marker struct {
	Year int     `json:"year"`
	X    float64 `json:"x"`
}

// Band is the rendered form of one event.
type Band struct {
	// Index is the position of the event in the loaded list.
	Index       int     `json:"index"`
	Years       string  `json:"years"`
	Description string  `json:"description"`
	Year        int     `json:"year"`
	X           float64 `json:"x"`
	Width       float64 `json:"width"`
	// Lane is the row the band is stacked into so overlapping bands stay
	// readable. Lane 0 sits closest to the gridlines.
	Lane int `json:"lane"`
	// Marquee is set when the description is wider than the band.
	Marquee bool `json:"marquee"`
	// Valid is false for events whose years could not be parsed. Such
	// bands have no geometry and renderers skip them.
	Valid bool `json:"valid"`
}

// Right is the pixel offset of the band's right edge.
func (b Band) Right() float64 {
	return b.X + b.Width
}

// Layout is the complete geometry for one scale.
type Layout struct {
	Variant    Variant    `json:"variant"`
	Scale      float64    `json:"scale"`
	TotalWidth float64    `json:"total_width"`
	MaxScroll  float64    `json:"max_scroll"`
	Gridlines  []Gridline `json:"gridlines"`
	Today      Marker     `json:"today"`
	Events     []Band     `json:"events"`
	Lanes      int        `json:"lanes"`
}

// Build lays out events at the given options. Events that fail to parse are
// kept as invalid bands; they never stop the rest from being placed.
func Build(events []timeline.Event, opts Options) Layout {
	opts = opts.withDefaults()
	b := opts.Bounds

	l := Layout{
		Variant:    opts.Variant,
		Scale:      opts.Scale,
		TotalWidth: b.PositionOf(b.MaxYear, opts.Scale) + math.Max(centurySpan*opts.Scale, opts.MinBandWidth),
		MaxScroll:  b.MaxScroll(opts.Scale),
		Today: Marker{
			Year: opts.CurrentYear,
			X:    b.PositionOf(opts.CurrentYear, opts.Scale),
		},
	}

	switch opts.Variant {
	case VariantDense:
		l.Gridlines = denseGridlines(opts)
	default:
		l.Gridlines = centuryGridlines(opts)
	}

	l.Events = make([]Band, 0, len(events))
	for i, ev := range events {
		l.Events = append(l.Events, placeEvent(i, ev, opts))
	}
	l.Lanes = assignLanes(l.Events)

	return l
}

func centuryGridlines(opts Options) []Gridline {
	b := opts.Bounds
	n := (b.MaxYear-b.MinYear)/centurySpan + 1
	width := math.Max(centurySpan*opts.Scale, opts.MinBandWidth)

	lines := make([]Gridline, 0, n)
	for i := range n {
		year := b.MinYear + i*centurySpan
		lines = append(lines, Gridline{
			Year:  year,
			X:     b.PositionOf(year, opts.Scale),
			Width: width,
			Label: timeline.EraLabel(year),
			Even:  centuryEven(year),
		})
	}
	return lines
}

func denseGridlines(opts Options) []Gridline {
	if opts.Scale > opts.DenseMaxScale {
		return nil
	}
	b := opts.Bounds
	lines := make([]Gridline, 0, b.MaxYear-b.MinYear+1)
	for year := b.MinYear; year <= b.MaxYear; year++ {
		lines = append(lines, Gridline{
			Year:  year,
			X:     b.PositionOf(year, opts.Scale),
			Width: opts.Scale,
			Label: timeline.EraLabel(year),
			Even:  centuryEven(year),
		})
	}
	return lines
}

func centuryEven(year int) bool {
	c := year / centurySpan
	if year%centurySpan != 0 && year < 0 {
		c--
	}
	return c%2 == 0
}

func placeEvent(i int, ev timeline.Event, opts Options) Band {
	span := timeline.ParseYearsWith(ev.Years, opts.Parse)
	band := Band{
		Index:       i,
		Years:       ev.Years,
		Description: ev.Description,
		Valid:       span.Valid,
	}
	if !span.Valid {
		return band
	}

	band.Year = span.Start
	band.X = opts.Bounds.PositionOf(span.Start, opts.Scale)
	band.Width = math.Max(span.Width(opts.Scale), opts.MinBandWidth)
	textWidth := float64(utf8.RuneCountInString(ev.Description)) * opts.CharWidth
	band.Marquee = textWidth > band.Width
	return band
}

// assignLanes stacks overlapping bands greedily in order of their left
// edge and returns the number of lanes used.
func assignLanes(bands []Band) int {
	order := make([]int, 0, len(bands))
	for i, b := range bands {
		if b.Valid {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, c int) bool {
		return bands[order[a]].X < bands[order[c]].X
	})

	var laneEnds []float64
	for _, idx := range order {
		b := &bands[idx]
		placed := false
		for lane, end := range laneEnds {
			if end <= b.X {
				b.Lane = lane
				laneEnds[lane] = b.Right()
				placed = true
				break
			}
		}
		if !placed {
			b.Lane = len(laneEnds)
			laneEnds = append(laneEnds, b.Right())
		}
	}
	return len(laneEnds)
}

// Window returns a copy of l holding only the gridlines and valid bands that
// intersect the pixel range [from, to). The today marker is always kept.
func (l Layout) Window(from, to float64) Layout {
	out := l
	out.Gridlines = nil
	out.Events = nil

	for _, g := range l.Gridlines {
		if g.X < to && g.X+g.Width > from {
			out.Gridlines = append(out.Gridlines, g)
		}
	}
	for _, b := range l.Events {
		if b.Valid && b.X < to && b.Right() > from {
			out.Events = append(out.Events, b)
		}
	}
	return out
}

// Invalid returns the bands whose years could not be parsed.
func (l Layout) Invalid() []Band {
	var out []Band
	for _, b := range l.Events {
		if !b.Valid {
			out = append(out, b)
		}
	}
	return out
}
