// Package tracking owns the mutable state of the bar: both catalogs, the open
// sessions and the closed histories. Every mutation is persisted before it
// becomes visible and then announced to subscribed observers.
package tracking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/repository/slots"
)

// Service groups the liquor and beer trackers over one slot store.
type Service struct {
	Liquor *LiquorTracker
	Beer   *BeerTracker

	events *broadcaster
	logger *zap.Logger
}

// Option customises a Service.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used to stamp sessions.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// NewService builds trackers seeded with the built-in catalogs and empty
// histories. Call Load to read persisted state.
func NewService(store slots.Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	events := &broadcaster{}
	return &Service{
		Liquor: newLiquorTracker(store, events, o.now, logger.Named("liquor")),
		Beer:   newBeerTracker(store, events, o.now, logger.Named("beer")),
		events: events,
		logger: logger,
	}
}

// Load reads all four slots, falling back to defaults for missing or corrupt
// values. Only store failures are returned.
func (s *Service) Load(ctx context.Context) error {
	if err := s.Liquor.load(ctx); err != nil {
		return err
	}
	return s.Beer.load(ctx)
}

// Subscribe registers fn to be called after every successful mutation.
func (s *Service) Subscribe(fn Observer) {
	s.events.subscribe(fn)
}
