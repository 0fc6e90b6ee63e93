package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-metabox/pkg/storage"
)

// document is the on-disk layout.
type document struct {
	Items   map[string]map[string]string `json:"items"`
	Options map[string]string            `json:"options"`
}

// Store keeps every value in a single JSON document. Each write replaces the
// file atomically so readers in other processes never observe a torn file.
type Store struct {
	mu   sync.RWMutex
	path string
	doc  document
}

var _ storage.Store = (*Store)(nil)

// Open loads the document at path, creating parent directories as needed. A
// missing file starts empty and is created on the first write.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file store: ensure directory: %w", err)
	}

	s := &Store{path: path, doc: emptyDocument()}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("file store: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("file store: decode %s: %w", path, err)
	}
	if s.doc.Items == nil {
		s.doc.Items = make(map[string]map[string]string)
	}
	if s.doc.Options == nil {
		s.doc.Options = make(map[string]string)
	}
	return s, nil
}

func emptyDocument() document {
	return document{
		Items:   make(map[string]map[string]string),
		Options: make(map[string]string),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

func (s *Store) ItemMeta(_ context.Context, itemID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.doc.Items[itemID][key]
	return value, ok, nil
}

func (s *Store) SiteOption(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.doc.Options[key]
	return value, ok, nil
}

func (s *Store) SetItemMeta(_ context.Context, itemID, key, value string) error {
	if itemID == "" {
		return storage.ErrItemRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, ok := s.doc.Items[itemID]
	if !ok {
		values = make(map[string]string)
		s.doc.Items[itemID] = values
	}
	previous, existed := values[key]
	values[key] = value

	if err := s.flush(); err != nil {
		if existed {
			values[key] = previous
		} else {
			delete(values, key)
		}
		return err
	}
	return nil
}

func (s *Store) SetSiteOption(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.doc.Options[key]
	s.doc.Options[key] = value

	if err := s.flush(); err != nil {
		if existed {
			s.doc.Options[key] = previous
		} else {
			delete(s.doc.Options, key)
		}
		return err
	}
	return nil
}

// flush must be called with the write lock held.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("file store: write %s: %w", s.path, err)
	}
	return nil
}
