package testsupport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/storage/memory"
)

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// Logger returns a logger that writes text records into buf, so tests can
// assert on diagnostics.
func Logger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// DiscardLogger drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// RecordingStore wraps a memory store and records every call in order. Errors
// can be injected per key to exercise failure paths.
type RecordingStore struct {
	*memory.Store

	mu        sync.Mutex
	calls     []string
	readErrs  map[string]error
	writeErrs map[string]error
}

var _ storage.Store = (*RecordingStore)(nil)

// NewRecordingStore returns an empty recording store.
func NewRecordingStore() *RecordingStore {
	return &RecordingStore{
		Store:     memory.New(),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

// FailRead makes reads of key return err.
func (s *RecordingStore) FailRead(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErrs[key] = err
}

// FailWrite makes writes of key return err.
func (s *RecordingStore) FailWrite(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErrs[key] = err
}

// Record appends an arbitrary entry to the call log; hooks use it to show
// where they ran relative to store writes.
func (s *RecordingStore) Record(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, entry)
}

// Calls returns a copy of the call log.
func (s *RecordingStore) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// Writes returns only the write entries of the call log.
func (s *RecordingStore) Writes() []string {
	var out []string
	for _, call := range s.Calls() {
		if len(call) > 4 && call[:4] == "set " {
			out = append(out, call)
		}
	}
	return out
}

func (s *RecordingStore) ItemMeta(ctx context.Context, itemID, key string) (string, bool, error) {
	if err := s.note(fmt.Sprintf("get meta %s/%s", itemID, key), s.readErrs, key); err != nil {
		return "", false, err
	}
	return s.Store.ItemMeta(ctx, itemID, key)
}

func (s *RecordingStore) SiteOption(ctx context.Context, key string) (string, bool, error) {
	if err := s.note(fmt.Sprintf("get option %s", key), s.readErrs, key); err != nil {
		return "", false, err
	}
	return s.Store.SiteOption(ctx, key)
}

func (s *RecordingStore) SetItemMeta(ctx context.Context, itemID, key, value string) error {
	if err := s.note(fmt.Sprintf("set meta %s/%s=%s", itemID, key, value), s.writeErrs, key); err != nil {
		return err
	}
	return s.Store.SetItemMeta(ctx, itemID, key, value)
}

func (s *RecordingStore) SetSiteOption(ctx context.Context, key, value string) error {
	if err := s.note(fmt.Sprintf("set option %s=%s", key, value), s.writeErrs, key); err != nil {
		return err
	}
	return s.Store.SetSiteOption(ctx, key, value)
}

func (s *RecordingStore) note(entry string, errs map[string]error, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, entry)
	return errs[key]
}
