package tracking

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/repository/slots"
)

// tracker carries the session lifecycle shared by both domains. The domain
// trackers embed it and reuse its lock around their catalog work.
type tracker[T inventory.Item[T]] struct {
	mu     sync.Mutex
	domain string
	ledger *ledger[T]
	store  slots.Store
	events *broadcaster
	now    func() time.Time
	logger *zap.Logger
}

func newTracker[T inventory.Item[T]](domain, slot string, store slots.Store, events *broadcaster, now func() time.Time, logger *zap.Logger) *tracker[T] {
	return &tracker[T]{
		domain: domain,
		ledger: newLedger[T](slot, store),
		store:  store,
		events: events,
		now:    now,
		logger: logger,
	}
}

func (t *tracker[T]) loadHistory(ctx context.Context) ([]inventory.Session[T], error) {
	return loadSlot(ctx, t.store, t.ledger.slot, shapeArray, emptyHistory[T], t.logger)
}

// Start opens a new session stamped with the current time.
func (t *tracker[T]) Start() (time.Time, error) {
	t.mu.Lock()
	at := t.now()
	err := t.ledger.start(at)
	t.mu.Unlock()

	if err != nil {
		return time.Time{}, err
	}
	t.emit(EventSessionStarted)
	return at, nil
}

// Remove drops the observation at index from the open session.
func (t *tracker[T]) Remove(index int) (T, error) {
	t.mu.Lock()
	removed, err := t.ledger.remove(index)
	t.mu.Unlock()

	if err != nil {
		var zero T
		return zero, err
	}
	t.emit(EventItemRemoved)
	return removed, nil
}

// Open returns a copy of the open session.
func (t *tracker[T]) Open() (Draft[T], error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.draft()
}

// Close aggregates the open session into history and persists it.
func (t *tracker[T]) Close(ctx context.Context) (inventory.Session[T], error) {
	t.mu.Lock()
	session, err := t.ledger.close(ctx, t.now())
	t.mu.Unlock()

	if err != nil {
		return inventory.Session[T]{}, err
	}
	t.logger.Info("session closed",
		zap.String("domain", t.domain),
		zap.Time("start", session.StartDate),
		zap.Time("end", session.EndDate),
		zap.Int("items", len(session.Items)),
	)
	t.emit(EventSessionClosed)
	return session, nil
}

// History returns the closed sessions in closing order.
func (t *tracker[T]) History() []inventory.Session[T] {
	return t.history().Sessions()
}

func (t *tracker[T]) Latest() (inventory.Session[T], bool) {
	return t.history().Latest()
}

func (t *tracker[T]) history() *inventory.History[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.history
}

func (t *tracker[T]) emit(kind EventKind) {
	t.events.emit(Event{Domain: t.domain, Kind: kind, At: t.now()})
}

func emptyHistory[T any]() []inventory.Session[T] {
	return []inventory.Session[T]{}
}
