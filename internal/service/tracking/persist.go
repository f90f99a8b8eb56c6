package tracking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/barstock/internal/inventory"
	"github.com/mamadbah2/barstock/internal/repository/slots"
)

type shape byte

const (
	shapeObject shape = '{'
	shapeArray  shape = '['
)

// loadSlot decodes a slot into V. A missing slot, or one that does not parse
// into the expected shape, is replaced by fallback() and written back.
// Only store failures are returned.
func loadSlot[V any](ctx context.Context, store slots.Store, slot string, want shape, fallback func() V, logger *zap.Logger) (V, error) {
	raw, err := store.Get(ctx, slot)
	switch {
	case errors.Is(err, slots.ErrNotFound):
		logger.Info("slot not initialized, writing defaults", zap.String("slot", slot))
		return resetSlot(ctx, store, slot, fallback)
	case err != nil:
		var zero V
		return zero, fmt.Errorf("load slot %s: %w", slot, err)
	}

	value, err := decodeSlot[V](raw, want)
	if err != nil {
		logger.Warn("slot corrupt, falling back to defaults", zap.String("slot", slot), zap.Error(err))
		return resetSlot(ctx, store, slot, fallback)
	}
	return value, nil
}

func decodeSlot[V any](raw []byte, want shape) (V, error) {
	var value V
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || shape(trimmed[0]) != want {
		return value, fmt.Errorf("expected %q value: %w", string(want), inventory.ErrStorageCorrupt)
	}
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return value, fmt.Errorf("%v: %w", err, inventory.ErrStorageCorrupt)
	}
	return value, nil
}

func resetSlot[V any](ctx context.Context, store slots.Store, slot string, fallback func() V) (V, error) {
	value := fallback()
	if err := saveSlot(ctx, store, slot, value); err != nil {
		return value, err
	}
	return value, nil
}

func saveSlot(ctx context.Context, store slots.Store, slot string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}
	if err := store.Put(ctx, slot, payload); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	return nil
}
