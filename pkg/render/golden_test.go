package render_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/testsupport"
)

func TestRenderQueueGolden(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "title", "Hello & welcome")
	seed(t, store, "42", "rating", "3.14159")
	seed(t, store, "42", "featured", "true")
	seed(t, store, "42", "color", "blue")
	r := newRenderer(t, store)

	fields := []field.Field{
		field.Text{Common: field.Common{Name: "title", Label: "Title", Description: "Shown in listings"}, Placeholder: "Untitled"},
		field.Number{Common: field.Common{Name: "rating", Label: "Rating"}, Step: "0.01", Precision: field.Precision(2)},
		field.Checkbox{Common: field.Common{Name: "featured", Label: "Featured"}},
		field.Select{Common: field.Common{Name: "color", Label: "Color"}, Choices: field.Choices{Options: field.Options{
			{Key: "red", Label: "Red"},
			{Key: "blue", Label: "Blue"},
		}}},
		field.Radio{Common: field.Common{Name: "layout", Label: "Layout"}, Choices: field.Choices{Options: field.Options{
			{Key: "left", Label: "Left"},
			{Key: "right", Label: "Right"},
		}}},
	}

	var buf bytes.Buffer
	result, err := r.RenderQueue(context.Background(), &buf, "42", fields)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected field errors: %v", result.Errors)
	}

	golden := filepath.Join("testdata", "queue.golden")
	if testsupport.WriteMaybeGolden(t, golden, append(buf.Bytes(), '\n')) {
		return
	}
	want := strings.TrimSpace(testsupport.MustReadGoldenString(t, golden))
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("queue markup mismatch (-want +got):\n%s", diff)
	}
}
