package memory

import (
	"context"
	"sync"

	"github.com/goliatone/go-metabox/pkg/storage"
)

// Store implements storage.Store using in-memory maps.
type Store struct {
	mu      sync.RWMutex
	meta    map[string]map[string]string
	options map[string]string
}

var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		meta:    make(map[string]map[string]string),
		options: make(map[string]string),
	}
}

func (s *Store) ItemMeta(_ context.Context, itemID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.meta[itemID][key]
	return value, ok, nil
}

func (s *Store) SetItemMeta(_ context.Context, itemID, key, value string) error {
	if itemID == "" {
		return storage.ErrItemRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.meta[itemID]
	if !ok {
		values = make(map[string]string)
		s.meta[itemID] = values
	}
	values[key] = value
	return nil
}

func (s *Store) SiteOption(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.options[key]
	return value, ok, nil
}

func (s *Store) SetSiteOption(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.options[key] = value
	return nil
}

// Snapshot returns a copy of every meta value stored for itemID.
func (s *Store) Snapshot(itemID string) map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := s.meta[itemID]
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}
