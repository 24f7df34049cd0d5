package memory

import (
	"sort"
	"sync"

	"github.com/TheusHen/kryptolang/kryptolang/registry"
)

// Store is an in-memory resolver.
// It backs static configuration and is handy in tests.
type Store struct {
	mu        sync.RWMutex
	endpoints map[registry.Role]registry.Endpoint
}

func New() *Store {
	return &Store{endpoints: map[registry.Role]registry.Endpoint{}}
}

// FromAddrs builds a store from a role → address map.
func FromAddrs(addrs map[registry.Role]string) *Store {
	s := New()
	for role, addr := range addrs {
		_ = s.Announce(registry.Endpoint{Role: role, Addr: addr})
	}
	return s
}

func (s *Store) Announce(ep registry.Endpoint) error {
	if _, err := registry.ParseRole(string(ep.Role)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ep.Meta = copyMeta(ep.Meta)
	s.endpoints[ep.Role] = ep
	return nil
}

func (s *Store) Lookup(role registry.Role) (registry.Endpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ep, ok := s.endpoints[role]
	if !ok {
		return registry.Endpoint{}, registry.ErrNotFound
	}
	ep.Meta = copyMeta(ep.Meta)
	return ep, nil
}

// List returns endpoints sorted by role name.
func (s *Store) List() ([]registry.Endpoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]registry.Endpoint, 0, len(s.endpoints))
	for _, ep := range s.endpoints {
		ep.Meta = copyMeta(ep.Meta)
		out = append(out, ep)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out, nil
}

func copyMeta(m map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range m {
		out[k] = v
	}
	return out
}
