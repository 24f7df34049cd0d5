// Package cache memoises derived session state for a bounded time.
package cache

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrExpired  = errors.New("cache: entry expired")
	ErrNotFound = errors.New("cache: entry not found")
)

// DefaultTTL is used when NewStore is given a non-positive TTL.
const DefaultTTL = 10 * time.Minute

type entry[V any] struct {
	value     V
	issuedAt  int64
	expiresAt int64
}

// Store maps a key fingerprint to a derived value. Entries expire TTL after
// they were put.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]
	ttl     time.Duration
	now     func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[V]{
		entries: make(map[string]*entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Put stores value under key, replacing any previous entry.
func (s *Store[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.entries[key] = &entry[V]{
		value:     value,
		issuedAt:  now.UnixNano(),
		expiresAt: now.Add(s.ttl).UnixNano(),
	}
}

// Lookup retrieves a live entry.
func (s *Store[V]) Lookup(key string) (V, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero V
	e, ok := s.entries[key]
	if !ok {
		return zero, ErrNotFound
	}
	if s.now().UnixNano() > e.expiresAt {
		return zero, ErrExpired
	}
	return e.value, nil
}

// GetOrCreate returns the live entry for key, calling create and storing its
// result when there is none. create runs without the lock held, so two
// concurrent misses may both create; the later Put wins.
func (s *Store[V]) GetOrCreate(key string, create func() (V, error)) (V, error) {
	if v, err := s.Lookup(key); err == nil {
		return v, nil
	}
	v, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	s.Put(key, v)
	return v, nil
}

func (s *Store[V]) Revoke(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Cleanup removes expired entries and reports how many were dropped.
func (s *Store[V]) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixNano()
	removed := 0
	for k, e := range s.entries {
		if now > e.expiresAt {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored entries, expired ones included.
func (s *Store[V]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
