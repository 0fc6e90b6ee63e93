package registry_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/registry"
)

func TestRegisterRejectsInvalidInput(t *testing.T) {
	reg := registry.New()

	if err := reg.Register(field.Text{}, "page"); !errors.Is(err, field.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if err := reg.Register(field.Text{Common: field.Common{Name: "title"}}, ""); !errors.Is(err, registry.ErrQueueNameRequired) {
		t.Fatalf("expected ErrQueueNameRequired, got %v", err)
	}

	if reg.QueueExists("page") || reg.QueueExists("") {
		t.Fatalf("rejected registrations must not create queues")
	}
	if names := reg.Names(); len(names) != 0 {
		t.Fatalf("expected no queues, got %v", names)
	}
}

func TestRegisterRejectedFieldDoesNotMutateExistingQueue(t *testing.T) {
	reg := registry.New()
	if err := reg.Register(field.Text{Common: field.Common{Name: "title"}}, "page"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(field.Number{Common: field.Common{Name: "count"}}, "page"); err == nil {
		t.Fatalf("expected number without step to be rejected")
	}

	fields, _ := reg.Queue("page")
	if len(fields) != 1 {
		t.Fatalf("expected queue to keep one field, got %d", len(fields))
	}
}

func TestRegisterPreservesOrderAndDuplicates(t *testing.T) {
	reg := registry.New()
	names := []string{"c", "a", "b", "a"}
	for _, name := range names {
		if err := reg.Register(field.Text{Common: field.Common{Name: name}}, "page"); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}

	fields, ok := reg.Queue("page")
	if !ok {
		t.Fatalf("expected queue to exist")
	}
	got := make([]string, 0, len(fields))
	for _, f := range fields {
		got = append(got, field.Name(f))
	}
	if diff := cmp.Diff(names, got); diff != "" {
		t.Fatalf("queue order mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterAppliesStorage(t *testing.T) {
	reg := registry.New()
	if err := reg.Register(field.Text{Common: field.Common{Name: "subtitle", Storage: field.StorageOption}}, "page"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterOption(field.Text{Common: field.Common{Name: "tagline"}}, "site"); err != nil {
		t.Fatalf("register option: %v", err)
	}

	page, _ := reg.Queue("page")
	if got := page[0].Base().Storage; got != field.StorageMeta {
		t.Fatalf("Register must force meta storage, got %q", got)
	}
	site, _ := reg.Queue("site")
	if got := site[0].Base().Storage; got != field.StorageOption {
		t.Fatalf("RegisterOption must use option storage, got %q", got)
	}

	if diff := cmp.Diff([]string{"page", "site"}, reg.Names()); diff != "" {
		t.Fatalf("queue names mismatch (-want +got):\n%s", diff)
	}
}

func TestQueueReturnsSnapshot(t *testing.T) {
	reg := registry.New()
	if err := reg.Register(field.Checkbox{Common: field.Common{Name: "featured"}}, "page"); err != nil {
		t.Fatalf("register: %v", err)
	}

	snapshot, _ := reg.Queue("page")
	snapshot[0] = nil

	fields, _ := reg.Queue("page")
	if fields[0] == nil {
		t.Fatalf("mutating a snapshot must not affect the registry")
	}
	if _, ok := reg.Queue("missing"); ok {
		t.Fatalf("expected missing queue to report false")
	}
}
