package web

import (
	_ "embed"
	"html/template"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/core/viewport"
)

// Page geometry in pixels.
const (
	headerHeight = 24
	laneHeight   = 28
	bandHeight   = laneHeight - 4
)

//go:embed page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Parse(pageSource))

type gridItem struct {
	Left  string
	Width string
	Label string
	Even  bool
}

type eventItem struct {
	Left        string
	Width       string
	Top         int
	Color       lipgloss.Color
	Years       string
	Description string
	Marquee     bool
}

type pageData struct {
	Title   string
	Palette styles.Palette

	Scale      float64
	ScaleText  string
	ZoomIn     string
	ZoomOut    string
	CanZoomIn  bool
	CanZoomOut bool

	TargetYear  int
	TargetLabel string
	TargetX     float64
	MaxScroll   float64
	Offset      int
	MinYear     int
	MaxYear     int
	Frames      int

	TotalWidth string
	Height     int
	BandHeight int
	Gridlines  []gridItem
	TodayLeft  string
	TodayLabel string
	Events     []eventItem
	Invalid    int
	LoadError  string
}

func (s *Server) newPage(st *viewport.State, l layout.Layout, loadErr error) pageData {
	b := s.opts.Bounds
	scale := st.Scale()

	zoomIn := viewport.New(b, s.opts.ScaleMode, scale)
	zoomOut := viewport.New(b, s.opts.ScaleMode, scale)

	data := pageData{
		Title:       s.opts.Title,
		Palette:     s.opts.Palette,
		Scale:       scale,
		ScaleText:   px(scale),
		ZoomIn:      px(zoomIn.ZoomIn()),
		ZoomOut:     px(zoomOut.ZoomOut()),
		TargetYear:  st.TargetYear(),
		TargetLabel: timeline.EraLabel(st.TargetYear()),
		TargetX:     st.Offset(),
		MaxScroll:   l.MaxScroll,
		Offset:      b.Offset(),
		MinYear:     b.MinYear,
		MaxYear:     b.MaxYear,
		Frames:      s.opts.ScrollFrames,
		TotalWidth:  px(l.TotalWidth),
		Height:      headerHeight + max(l.Lanes, 1)*laneHeight + laneHeight/2,
		BandHeight:  bandHeight,
		TodayLeft:   px(l.Today.X),
		TodayLabel:  timeline.EraLabel(l.Today.Year),
	}
	data.CanZoomIn = data.ZoomIn != data.ScaleText
	data.CanZoomOut = data.ZoomOut != data.ScaleText
	if s.opts.Diagnostics {
		data.Invalid = len(l.Invalid())
		if loadErr != nil {
			data.LoadError = "Could not load events."
		}
	}

	data.Gridlines = make([]gridItem, 0, len(l.Gridlines))
	for _, g := range l.Gridlines {
		data.Gridlines = append(data.Gridlines, gridItem{
			Left:  px(g.X),
			Width: px(g.Width),
			Label: g.Label,
			Even:  g.Even,
		})
	}

	data.Events = make([]eventItem, 0, len(l.Events))
	for _, e := range l.Events {
		if !e.Valid {
			continue
		}
		data.Events = append(data.Events, eventItem{
			Left:        px(e.X),
			Width:       px(e.Width),
			Top:         headerHeight + e.Lane*laneHeight + 2,
			Color:       styles.ColorForString(e.Description),
			Years:       e.Years,
			Description: e.Description,
			Marquee:     e.Marquee,
		})
	}
	return data
}

// px formats a pixel value without exponent or trailing zeros.
func px(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
