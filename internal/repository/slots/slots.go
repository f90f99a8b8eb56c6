package slots

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// Slot names used by the application.
const (
	LiquorCatalog = "liquorCatalog"
	LiquorHistory = "liquorHistory"
	BeerCatalog   = "beerCatalog"
	BeerHistory   = "beerHistory"
)

// ErrNotFound indicates the slot has never been written.
var ErrNotFound = errors.New("slot not found")

// Store is a format-free key/value store holding one serialized value per slot.
type Store interface {
	Get(ctx context.Context, slot string) ([]byte, error)
	Put(ctx context.Context, slot string, value []byte) error
}

// Memory keeps slots in process memory.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.slots[slot]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", slot, ErrNotFound)
	}
	return append([]byte(nil), value...), nil
}

func (m *Memory) Put(_ context.Context, slot string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = append([]byte(nil), value...)
	return nil
}

var validSlot = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// File stores every slot as <dir>/<slot>.json.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage dir must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) Get(_ context.Context, slot string) ([]byte, error) {
	path, err := f.path(slot)
	if err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("slot %s: %w", slot, ErrNotFound)
		}
		return nil, fmt.Errorf("read slot %s: %w", slot, err)
	}
	return payload, nil
}

// Put writes through a temporary file and a rename so readers never see a
// partially written slot.
func (f *File) Put(_ context.Context, slot string, value []byte) error {
	path, err := f.path(slot)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot %s: %w", slot, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace slot %s: %w", slot, err)
	}
	return nil
}

func (f *File) path(slot string) (string, error) {
	if !validSlot.MatchString(slot) {
		return "", fmt.Errorf("invalid slot name %q", slot)
	}
	return filepath.Join(f.dir, slot+".json"), nil
}
