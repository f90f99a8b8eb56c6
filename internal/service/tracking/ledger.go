package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/repository/slots"
)

var (
	// ErrNoOpenSession is returned when an operation needs a started session.
	ErrNoOpenSession = errors.New("no open session")
	// ErrSessionAlreadyOpen is returned by Start while a session is in progress.
	ErrSessionAlreadyOpen = errors.New("session already open")
)

// Draft is the in-progress list of observations of an open session.
type Draft[T any] struct {
	StartDate time.Time `json:"startDate"`
	Items     []T       `json:"items"`
}

// ledger owns the open draft and the closed history of one domain. Callers
// hold the tracker lock around every method.
type ledger[T inventory.Item[T]] struct {
	slot    string
	store   slots.Store
	history *inventory.History[T]
	open    *Draft[T]
}

func newLedger[T inventory.Item[T]](slot string, store slots.Store) *ledger[T] {
	return &ledger[T]{
		slot:    slot,
		store:   store,
		history: inventory.NewHistory[T](nil),
	}
}

func (l *ledger[T]) load(sessions []inventory.Session[T]) {
	l.history = inventory.NewHistory(sessions)
}

func (l *ledger[T]) start(at time.Time) error {
	if l.open != nil {
		return fmt.Errorf("started %s: %w", l.open.StartDate.Format(time.RFC3339), ErrSessionAlreadyOpen)
	}
	l.open = &Draft[T]{StartDate: at}
	return nil
}

func (l *ledger[T]) add(item T) error {
	if l.open == nil {
		return ErrNoOpenSession
	}
	l.open.Items = append(l.open.Items, item)
	return nil
}

func (l *ledger[T]) remove(index int) (T, error) {
	var removed T
	if l.open == nil {
		return removed, ErrNoOpenSession
	}
	if index < 0 || index >= len(l.open.Items) {
		return removed, fmt.Errorf("item index %d out of range [0,%d): %w", index, len(l.open.Items), inventory.ErrInvalidInput)
	}
	removed = l.open.Items[index]
	l.open.Items = append(l.open.Items[:index], l.open.Items[index+1:]...)
	return removed, nil
}

func (l *ledger[T]) draft() (Draft[T], error) {
	if l.open == nil {
		return Draft[T]{}, ErrNoOpenSession
	}
	return Draft[T]{
		StartDate: l.open.StartDate,
		Items:     append([]T(nil), l.open.Items...),
	}, nil
}

// close aggregates the draft, appends it to history and persists the history
// slot. The draft stays open when any step fails.
func (l *ledger[T]) close(ctx context.Context, at time.Time) (inventory.Session[T], error) {
	if l.open == nil {
		return inventory.Session[T]{}, ErrNoOpenSession
	}

	session, err := inventory.Close(l.open.StartDate, at, inventory.Aggregate(l.open.Items))
	if err != nil {
		return inventory.Session[T]{}, err
	}

	commit := func(sessions []inventory.Session[T]) error {
		return saveSlot(ctx, l.store, l.slot, sessions)
	}
	if err := l.history.Append(session, commit); err != nil {
		return inventory.Session[T]{}, err
	}

	l.open = nil
	return session, nil
}
