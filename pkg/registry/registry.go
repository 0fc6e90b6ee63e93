package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-metabox/pkg/field"
)

// ErrQueueNameRequired is returned when a field is registered without a queue.
var ErrQueueNameRequired = errors.New("registry: queue name is required")

// Registry stores ordered field queues by name. Queues are created on first
// registration and are never reordered or deduplicated: registering the same
// field name twice appends a second entry.
//
// Registry is safe for concurrent use, but the relative order of fields
// registered concurrently into the same queue is unspecified.
type Registry struct {
	mu     sync.RWMutex
	queues map[string][]field.Field
	order  []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		queues: make(map[string][]field.Field),
	}
}

// Register appends f to queue as a per-item (meta) field. Invalid descriptors
// and empty queue names are rejected without touching any queue.
func (r *Registry) Register(f field.Field, queue string) error {
	return r.register(f, queue, field.StorageMeta)
}

// RegisterOption appends f to queue as a site-level (option) field.
func (r *Registry) RegisterOption(f field.Field, queue string) error {
	return r.register(f, queue, field.StorageOption)
}

func (r *Registry) register(f field.Field, queue string, storage field.StorageType) error {
	if strings.TrimSpace(queue) == "" {
		return ErrQueueNameRequired
	}

	normalized, err := field.Normalize(f, storage)
	if err != nil {
		return fmt.Errorf("registry: queue %q: %w", queue, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.queues[queue]; !exists {
		r.order = append(r.order, queue)
	}
	r.queues[queue] = append(r.queues[queue], normalized)
	return nil
}

// QueueExists reports whether anything was registered under name.
func (r *Registry) QueueExists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.queues[name]
	return ok
}

// Queue returns a snapshot of the fields registered under name in registration
// order.
func (r *Registry) Queue(name string) ([]field.Field, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fields, ok := r.queues[name]
	if !ok {
		return nil, false
	}
	out := make([]field.Field, len(fields))
	copy(out, fields)
	return out, true
}

// Names returns queue names in the order they were first created.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
