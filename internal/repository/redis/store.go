package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mamadbah2/barstock/internal/repository/slots"
)

// Store keeps each slot as a plain Redis string namespaced as
// barstock:{namespace}:slot:{slot}.
type Store struct {
	rdb       *goredis.Client
	namespace string
}

// NewStore builds a Redis backed slot store. The namespace separates several
// bars sharing one Redis instance and must not be empty.
func NewStore(opts *goredis.Options, namespace string) (*Store, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace cannot be empty")
	}
	return &Store{rdb: goredis.NewClient(opts), namespace: namespace}, nil
}

// Ping verifies Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) Get(ctx context.Context, slot string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.key(slot)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("slot %s: %w", slot, slots.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read slot %s from Redis: %w", slot, err)
	}
	return value, nil
}

func (s *Store) Put(ctx context.Context, slot string, value []byte) error {
	if err := s.rdb.Set(ctx, s.key(slot), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s to Redis: %w", slot, err)
	}
	return nil
}

func (s *Store) key(slot string) string {
	return fmt.Sprintf("barstock:%s:slot:%s", s.namespace, slot)
}
