package inventory

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Session is a closed stock-take. Items hold a denormalised copy of every
// catalog field they need, so removing a catalog entry never breaks history.
type Session[T any] struct {
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Items     map[string]T `json:"items"`
}

// Keys returns the session item keys in lexical order.
func (s Session[T]) Keys() []string {
	keys := make([]string, 0, len(s.Items))
	for key := range s.Items {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Close builds a session from aggregated items. It refuses sessions without
// items or without a start time.
func Close[T Item[T]](start, end time.Time, items map[string]T) (Session[T], error) {
	if start.IsZero() {
		return Session[T]{}, fmt.Errorf("session has no start time: %w", ErrEmptySession)
	}
	if len(items) == 0 {
		return Session[T]{}, fmt.Errorf("session has no items: %w", ErrEmptySession)
	}
	if end.Before(start) {
		return Session[T]{}, fmt.Errorf("session ends %s before it starts %s: %w", end.Format(time.RFC3339), start.Format(time.RFC3339), ErrInvalidInput)
	}

	copied := make(map[string]T, len(items))
	for key, item := range items {
		copied[key] = item
	}
	return Session[T]{StartDate: start, EndDate: end, Items: copied}, nil
}

// CommitFunc persists the full history that an append would produce.
type CommitFunc[T any] func(sessions []Session[T]) error

// History is an append-only sequence of closed sessions in closing order.
type History[T Item[T]] struct {
	mu       sync.RWMutex
	sessions []Session[T]
}

// NewHistory wraps previously persisted sessions.
func NewHistory[T Item[T]](sessions []Session[T]) *History[T] {
	return &History[T]{sessions: append([]Session[T](nil), sessions...)}
}

// Append adds a session. When commit is set it runs first with the new
// sequence, and the session only becomes visible if commit succeeds.
func (h *History[T]) Append(session Session[T], commit CommitFunc[T]) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next := make([]Session[T], len(h.sessions), len(h.sessions)+1)
	copy(next, h.sessions)
	next = append(next, session)

	if commit != nil {
		if err := commit(next); err != nil {
			return err
		}
	}
	h.sessions = next
	return nil
}

// Sessions returns a copy of the history in closing order.
func (h *History[T]) Sessions() []Session[T] {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Session[T](nil), h.sessions...)
}

// Latest returns the most recently closed session.
func (h *History[T]) Latest() (Session[T], bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.sessions) == 0 {
		return Session[T]{}, false
	}
	return h.sessions[len(h.sessions)-1], true
}

func (h *History[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// SortedByEnd returns the sessions ordered by end date. Sessions sharing an
// end date keep their closing order.
func SortedByEnd[T any](sessions []Session[T]) []Session[T] {
	sorted := append([]Session[T](nil), sessions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EndDate.Before(sorted[j].EndDate)
	})
	return sorted
}
