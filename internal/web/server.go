// Package web serves the browser rendition of the timeline together with
// the event list, layout JSON and SVG export.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/histline/internal/core/layout"
	"github.com/hay-kot/histline/internal/core/logging"
	"github.com/hay-kot/histline/internal/core/styles"
	"github.com/hay-kot/histline/internal/core/timeline"
	"github.com/hay-kot/histline/internal/core/viewport"
	"github.com/hay-kot/histline/internal/data/source"
	"github.com/hay-kot/histline/pkg/kv"
	"github.com/hay-kot/histline/pkg/randid"
)

// layoutCacheSize bounds the number of scales kept in the layout cache.
const layoutCacheSize = 32

// Opts configures the server.
type Opts struct {
	Title         string
	Addr          string
	Bounds        timeline.Bounds
	ScaleMode     viewport.ScaleMode
	Scale         float64
	StartYear     int
	CurrentYear   int
	Variant       layout.Variant
	DenseMaxScale float64
	Parse         timeline.ParseOptions
	Palette       styles.Palette
	ScrollFrames  int
	// Diagnostics shows load failures and unreadable events on the page.
	// Off, they are only logged.
	Diagnostics bool
	// Profile mounts net/http/pprof under /debug/pprof/.
	Profile bool
}

// Server serves the timeline over HTTP.
type Server struct {
	loader  source.Loader
	opts    Opts
	log     zerolog.Logger
	layouts *kv.Store[float64, layout.Layout]

	mux        *http.ServeMux
	httpServer *http.Server
	listener   net.Listener
}

// New creates a Server. loader is consulted on every request, so callers
// wrap it in source.Once to load the list a single time.
func New(loader source.Loader, opts Opts) *Server {
	if opts.Title == "" {
		opts.Title = "histline"
	}
	if opts.Palette == (styles.Palette{}) {
		opts.Palette = styles.CurrentPalette
	}

	s := &Server{
		loader:  loader,
		opts:    opts,
		log:     logging.Component("web").Hook(logging.ContextHook{}),
		layouts: kv.NewBounded[float64, layout.Layout](layoutCacheSize),
		mux:     http.NewServeMux(),
	}
	s.registerRoutes()
	s.httpServer = &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.handle("GET /{$}", s.handleIndex)
	s.handle("GET /data.json", s.handleData)
	s.handle("GET /api/layout", s.handleLayout)
	s.handle("GET /timeline.svg", s.handleSVG)
	s.handle("GET /health", s.handleHealth)

	if s.opts.Profile {
		s.mux.HandleFunc("/debug/pprof/", pprof.Index)
		s.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		s.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		s.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		s.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
}

func (s *Server) handle(pattern string, h http.HandlerFunc) {
	s.mux.Handle(pattern, s.withRequestContext(pattern, h))
}

// Handler returns the router for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	s.log.Info().Str("addr", listener.Addr().String()).Msg("starting web server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("web server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down web server")
	return s.httpServer.Shutdown(ctx)
}

// Run starts the server and blocks until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withRequestContext tags the request context with an id and the route
// pattern so the ContextHook adds them to every log line.
func (s *Server) withRequestContext(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = randid.Generate(10)
		}
		w.Header().Set("X-Request-ID", id)

		ctx := logging.WithRequest(r.Context(), logging.Request{ID: id, Route: route, Remote: r.RemoteAddr})
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(ctx))

		s.log.Debug().Ctx(ctx).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
