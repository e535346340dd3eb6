package store

import (
	"context"
	"encoding/json"

	"github.com/jkeats/budgetbuddy/pkg/logger"
)

// Store is the typed read/write layer over a KV backend. Reads parse and
// validate once at this boundary: a missing or malformed value behaves as if
// absent and the caller's default stands. Writes are synchronous; storage
// failures are logged and swallowed, never surfaced to the caller.
type Store struct {
	kv  KV
	log *logger.Logger
}

// New creates a typed store over the given backend
func New(kv KV, log *logger.Logger) *Store {
	return &Store{
		kv:  kv,
		log: log.WithField("component", "store"),
	}
}

// GetJSON decodes the value at key into dst. It reports whether dst was
// populated; on a missing key, a read failure or malformed JSON it leaves dst
// untouched and returns false.
func (s *Store) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn("read failed, using default", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("malformed value, using default", "key", key, "error", err)
		return false
	}

	return true
}

// SetJSON marshals v and persists it under key
func (s *Store) SetJSON(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error("marshal failed, value not persisted", "key", key, "error", err)
		return
	}

	if err := s.kv.Set(ctx, key, raw); err != nil {
		s.log.Error("write failed", "key", key, "error", err)
	}
}

// Remove deletes the value under key
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, key); err != nil {
		s.log.Error("delete failed", "key", key, "error", err)
	}
}
