package tracking

import (
	"sync"
	"time"
)

// Domains tracked by the service.
const (
	DomainLiquor = "liquor"
	DomainBeer   = "beer"
)

// EventKind names the mutation that produced an Event.
type EventKind string

const (
	EventCatalogChanged EventKind = "catalog_changed"
	EventSessionStarted EventKind = "session_started"
	EventItemAdded      EventKind = "item_added"
	EventItemRemoved    EventKind = "item_removed"
	EventSessionClosed  EventKind = "session_closed"
)

// Event is emitted after every successful mutation.
type Event struct {
	Domain string
	Kind   EventKind
	At     time.Time
}

// Observer receives events synchronously, after the tracker released its lock.
type Observer func(Event)

type broadcaster struct {
	mu        sync.RWMutex
	observers []Observer
}

func (b *broadcaster) subscribe(fn Observer) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(b.observers, fn)
}

func (b *broadcaster) emit(event Event) {
	b.mu.RLock()
	observers := append([]Observer(nil), b.observers...)
	b.mu.RUnlock()

	for _, fn := range observers {
		fn(event)
	}
}
