package cache

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestStore(ttl time.Duration) (*Store[string], *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := NewStore[string](ttl)
	s.now = clock.now
	return s, clock
}

func TestPutLookup(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Put("a", "alpha")

	got, err := s.Lookup("a")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != "alpha" {
		t.Fatalf("got %q", got)
	}
	if _, err := s.Lookup("b"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExpiryAndCleanup(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Put("a", "alpha")
	s.Put("b", "beta")

	clock.t = clock.t.Add(2 * time.Minute)
	s.Put("c", "gamma")

	if _, err := s.Lookup("a"); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
	if s.Count() != 3 {
		t.Fatalf("expected 3 entries before cleanup, got %d", s.Count())
	}
	if removed := s.Cleanup(); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if s.Count() != 1 {
		t.Fatalf("expected 1 entry after cleanup, got %d", s.Count())
	}
}

func TestRevoke(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	s.Put("a", "alpha")
	s.Revoke("a")
	if _, err := s.Lookup("a"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after revoke, got %v", err)
	}
}

func TestGetOrCreate(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	calls := 0
	create := func() (string, error) {
		calls++
		return "built", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.GetOrCreate("k", create)
		if err != nil || v != "built" {
			t.Fatalf("GetOrCreate: %q %v", v, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one build, got %d", calls)
	}

	clock.t = clock.t.Add(time.Hour)
	_, _ = s.GetOrCreate("k", create)
	if calls != 2 {
		t.Fatalf("expected rebuild after expiry, got %d calls", calls)
	}

	boom := errors.New("boom")
	if _, err := s.GetOrCreate("x", func() (string, error) { return "", boom }); err != boom {
		t.Fatalf("expected create error, got %v", err)
	}
	if _, err := s.Lookup("x"); err != ErrNotFound {
		t.Fatalf("failed create must not be cached")
	}
}

func TestDefaultTTL(t *testing.T) {
	s := NewStore[int](0)
	if s.ttl != DefaultTTL {
		t.Fatalf("expected default TTL, got %v", s.ttl)
	}
}
