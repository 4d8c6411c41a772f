package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// KeyValue is the subset of a Redis client the store needs.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetAll(ctx context.Context, values map[string]string) error
	Close() error
}

// RedisStore keeps one key per collection ("mariano_clientes",
// "mariano_produtos", ...), the layout the web client uses in localStorage.
type RedisStore struct {
	kv     KeyValue
	prefix string
}

// NewRedisStore returns a store writing keys as prefix+collection.
func NewRedisStore(kv KeyValue, prefix string) *RedisStore {
	return &RedisStore{kv: kv, prefix: prefix}
}

func (s *RedisStore) key(c Collection) string { return s.prefix + string(c) }

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, c Collection) (json.RawMessage, error) {
	v, found, err := s.kv.Get(ctx, s.key(c))
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key(c), err)
	}
	if !found {
		return nil, nil
	}
	return checkArray(c, []byte(v))
}

// SaveBatch implements Store.
func (s *RedisStore) SaveBatch(ctx context.Context, batch map[Collection]json.RawMessage) error {
	if err := validateBatch(batch); err != nil {
		return err
	}
	values := make(map[string]string, len(batch))
	for c, raw := range batch {
		values[s.key(c)] = string(raw)
	}
	if err := s.kv.SetAll(ctx, values); err != nil {
		return fmt.Errorf("redis save: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *RedisStore) Close() error { return s.kv.Close() }
