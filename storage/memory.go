package storage

import (
	"context"
	"sync"
	"time"

	"github.com/basit/filestash-backend/apperrors"
)

// MemorySessionStore implements SessionStore on a plain map with real
// expiry semantics. Tests use it in place of Redis.
type MemorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{entries: make(map[string]memoryEntry)}
}

func (s *MemorySessionStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", apperrors.ErrNotFound
	}
	return e.value, nil
}

func (s *MemorySessionStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemorySessionStore) Ping(ctx context.Context) error { return nil }
