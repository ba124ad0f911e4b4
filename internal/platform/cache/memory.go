package cache

import (
	"context"
	"sync"
	"time"
)

type record struct {
	storedAt time.Time
	data     []byte
}

// MemoryStore is an in-process Store. Expired records are purged lazily
// on the Get that observes them, so dead keys do not accumulate.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]record
	ttl     time.Duration

	now func() time.Time
}

// NewMemoryStore creates a store with the given TTL. A non-positive TTL
// falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL * time.Second
	}
	return &MemoryStore{
		entries: make(map[string]record),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	rec, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if s.now().Sub(rec.storedAt) > s.ttl {
		s.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the record since the read above.
		if cur, ok := s.entries[key]; ok && s.now().Sub(cur.storedAt) > s.ttl {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return rec.data, true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) {
	s.mu.Lock()
	s.entries[key] = record{storedAt: s.now(), data: value}
	s.mu.Unlock()
}

// Len reports the number of live plus not-yet-purged records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
