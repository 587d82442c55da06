// Package logging carries per-request fields through context.Context and
// adds them to zerolog events.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with cmp=name.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Request identifies one HTTP request in log output.
type Request struct {
	ID     string
	Route  string
	Remote string
}

type requestKey struct{}

// WithRequest stores req on the context.
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFrom returns the request stored by WithRequest.
func RequestFrom(ctx context.Context) (Request, bool) {
	if ctx == nil {
		return Request{}, false
	}
	req, ok := ctx.Value(requestKey{}).(Request)
	return req, ok
}

// ContextHook copies the fields of a context Request onto every event logged
// with Event.Ctx. Empty fields are skipped.
type ContextHook struct{}

func (ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	req, ok := RequestFrom(e.GetCtx())
	if !ok {
		return
	}
	if req.ID != "" {
		e.Str("request_id", req.ID)
	}
	if req.Route != "" {
		e.Str("route", req.Route)
	}
	if req.Remote != "" {
		e.Str("remote", req.Remote)
	}
}
