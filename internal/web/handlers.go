package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/core/viewport"
	"github.com/hay-kot/histline/internal/render/svg"
)

// events loads the list. A failed load yields an empty list and the error,
// which page handlers log and otherwise ignore.
func (s *Server) events(ctx context.Context) ([]timeline.Event, error) {
	events, err := s.loader.Load(ctx)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Msg("rendering without events")
		return []timeline.Event{}, err
	}
	return events, nil
}

// layoutFor returns the cached layout for scale. Layouts are built in pixel
// units with the default band and character widths.
func (s *Server) layoutFor(events []timeline.Event, scale float64) layout.Layout {
	return s.layouts.GetOrCompute(scale, func() layout.Layout {
		return layout.Build(events, layout.Options{
			Bounds:        s.opts.Bounds,
			Variant:       s.opts.Variant,
			Scale:         scale,
			CurrentYear:   s.opts.CurrentYear,
			DenseMaxScale: s.opts.DenseMaxScale,
			Parse:         s.opts.Parse,
		})
	})
}

// viewState builds a state from the scale and year query parameters and
// scrolls it to the year. Invalid values are ignored, falling back to the
// configured defaults.
func (s *Server) viewState(q url.Values) *viewport.State {
	st := viewport.New(s.opts.Bounds, s.opts.ScaleMode, s.opts.Scale)
	st.SetScrollFrames(0)
	if v := q.Get("scale"); v != "" {
		st.SetScaleText(v)
	}
	year := s.opts.StartYear
	if v, ok := viewport.ParseYear(q.Get("year")); ok {
		year = v
	}
	st.ScrollTo(year)
	return st
}

// pixelWindow converts the from and to year parameters into a pixel range.
// A missing end defaults to the edge of the strip; both missing, or an
// empty range, means the full strip.
func (s *Server) pixelWindow(q url.Values, scale float64) (float64, float64) {
	b := s.opts.Bounds
	fromYear, okFrom := viewport.ParseYear(q.Get("from"))
	toYear, okTo := viewport.ParseYear(q.Get("to"))
	if !okFrom && !okTo {
		return 0, 0
	}
	if !okFrom {
		fromYear = b.MinYear
	}
	if !okTo {
		toYear = b.MaxYear
	}

	from, to := b.PixelRange(fromYear, toYear, scale)
	if to <= from {
		return 0, 0
	}
	return from, to
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	events, loadErr := s.events(r.Context())
	st := s.viewState(r.URL.Query())
	l := s.layoutFor(events, st.Scale())

	data := s.newPage(st, l, loadErr)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.log.Error().Ctx(r.Context()).Err(err).Msg("render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleData serves the list as loaded. A failed load serves an empty
// list; the failure is only logged.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	events, _ := s.events(r.Context())
	s.writeJSON(w, r, http.StatusOK, events)
}

type layoutResponse struct {
	layout.Layout
	Invalid int `json:"invalid"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	events, _ := s.events(r.Context())
	q := r.URL.Query()
	st := s.viewState(q)
	l := s.layoutFor(events, st.Scale())

	resp := layoutResponse{Layout: l, Invalid: len(l.Invalid())}
	if from, to := s.pixelWindow(q, st.Scale()); to > from {
		resp.Layout = l.Window(from, to)
	}
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	events, _ := s.events(r.Context())
	q := r.URL.Query()
	st := s.viewState(q)
	l := s.layoutFor(events, st.Scale())
	from, to := s.pixelWindow(q, st.Scale())

	var buf bytes.Buffer
	err := svg.Render(&buf, l, svg.Options{
		Palette: s.opts.Palette,
		From:    from,
		To:      to,
		Title:   s.opts.Title,
	})
	if err != nil {
		s.log.Error().Ctx(r.Context()).Err(err).Msg("render svg")
		http.Error(w, "failed to render svg", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Ctx(r.Context()).Err(err).Msg("failed to write JSON response")
	}
}
