package source

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/histline/internal/core/timeline"
)

// Once wraps a Loader so it is called at most one time. Later calls return
// the first result. A failed load is logged and yields an empty list, so
// views keep rendering gridlines and the marker without events.
//
// The load runs detached from the caller's cancellation: the result is
// shared by every later caller, so one aborted request must not decide it.
type Once struct {
	loader Loader
	logger zerolog.Logger

	once   sync.Once
	events []timeline.Event
	err    error
}

func NewOnce(loader Loader, logger zerolog.Logger) *Once {
	return &Once{loader: loader, logger: logger}
}

// Load runs the wrapped loader on first use.
func (o *Once) Load(ctx context.Context) ([]timeline.Event, error) {
	o.once.Do(func() {
		events, err := o.loader.Load(context.WithoutCancel(ctx))
		if err != nil {
			o.logger.Error().Err(err).Msg("event list load failed")
			o.err = err
			o.events = []timeline.Event{}
			return
		}
		o.logger.Info().Int("count", len(events)).Msg("event list loaded")
		o.events = events
	})
	return o.events, o.err
}
