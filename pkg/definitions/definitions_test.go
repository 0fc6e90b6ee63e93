package definitions_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metabox/pkg/definitions"
	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/registry"
)

const sample = `
queues:
  - name: page_details
    fields:
      - name: subtitle
        kind: text
        label: Subtitle
        fullwidth: true
      - name: rating
        kind: number
        step: "0.5"
        precision: 1
      - name: featured
        kind: checkbox
        after_save: audit
      - name: color
        kind: select
        options:
          - {key: red, label: Red}
          - {key: blue, label: Blue}
      - name: contact
        kind: email
      - name: body
        kind: rich_text
        media_buttons: false
        rows: 6
  - name: site
    fields:
      - name: tagline
        storage: option
      - name: section
        kind: radio
        options_provider: sections
`

type recorder struct {
	reg   *registry.Registry
	calls []string
}

func (r *recorder) RegisterField(f field.Field, queue string) error {
	r.calls = append(r.calls, "meta "+queue+"/"+field.Name(f))
	return r.reg.Register(f, queue)
}

func (r *recorder) RegisterOption(f field.Field, queue string) error {
	r.calls = append(r.calls, "option "+queue+"/"+field.Name(f))
	return r.reg.RegisterOption(f, queue)
}

func catalog() definitions.Catalog {
	return definitions.Catalog{
		Providers: map[string]field.OptionsProvider{
			"sections": func(context.Context, string) (field.Options, error) {
				return field.Options{{Key: "news", Label: "News"}}, nil
			},
		},
		Hooks: map[string]field.Hook{
			"audit": func(context.Context, string, field.Value) {},
		},
	}
}

func TestApplyRegistersInFileOrder(t *testing.T) {
	doc, err := definitions.Load([]byte(sample), "sample.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec := &recorder{reg: registry.New()}
	if err := doc.Apply(rec, catalog()); err != nil {
		t.Fatalf("apply: %v", err)
	}

	want := []string{
		"meta page_details/subtitle",
		"meta page_details/rating",
		"meta page_details/featured",
		"meta page_details/color",
		"meta page_details/contact",
		"meta page_details/body",
		"option site/tagline",
		"meta site/section",
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Fatalf("registration mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"page_details", "site"}, rec.reg.Names()); diff != "" {
		t.Fatalf("queues mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyBuildsKindSpecificDescriptors(t *testing.T) {
	doc, err := definitions.Load([]byte(sample), "sample.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec := &recorder{reg: registry.New()}
	if err := doc.Apply(rec, catalog()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	page, _ := rec.reg.Queue("page_details")

	if text, ok := page[0].(field.Text); !ok || !text.Fullwidth || text.Label != "Subtitle" {
		t.Fatalf("unexpected subtitle descriptor: %#v", page[0])
	}
	number, ok := page[1].(field.Number)
	if !ok || number.Step != "0.5" || number.Precision == nil || *number.Precision != 1 {
		t.Fatalf("unexpected rating descriptor: %#v", page[1])
	}
	checkbox := page[2].(field.Checkbox)
	if checkbox.DataType != field.DataBool || checkbox.AfterSave == nil {
		t.Fatalf("checkbox must be bool with its hook: %#v", checkbox)
	}
	sel := page[3].(field.Select)
	if diff := cmp.Diff(field.Options{{Key: "red", Label: "Red"}, {Key: "blue", Label: "Blue"}}, sel.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if input, ok := page[4].(field.Input); !ok || input.Type != "email" {
		t.Fatalf("custom kind must become an input: %#v", page[4])
	}
	if rich := page[5].(field.RichText); !rich.NoMediaButtons || rich.Rows != 6 {
		t.Fatalf("unexpected rich text descriptor: %#v", rich)
	}

	site, _ := rec.reg.Queue("site")
	radio := site[1].(field.Radio)
	opts, err := radio.Resolve(context.Background(), "1")
	if err != nil || len(opts) != 1 || opts[0].Key != "news" {
		t.Fatalf("provider not wired: %v %v", opts, err)
	}
}

func TestApplyContinuesPastBadFields(t *testing.T) {
	src := `
queues:
  - name: page
    fields:
      - name: first
      - name: count
        kind: number
      - name: color
        kind: select
        options_provider: missing
      - name: last
        before_save: nope
      - name: kept
`
	doc, err := definitions.Load([]byte(src), "bad.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	rec := &recorder{reg: registry.New()}
	err = doc.Apply(rec, definitions.Catalog{})
	if err == nil {
		t.Fatalf("expected apply error")
	}
	if !errors.Is(err, field.ErrStepRequired) || !errors.Is(err, definitions.ErrUnknownProvider) || !errors.Is(err, definitions.ErrUnknownHook) {
		t.Fatalf("expected every failure to be reported, got %v", err)
	}

	fields, _ := rec.reg.Queue("page")
	got := make([]string, 0, len(fields))
	for _, f := range fields {
		got = append(got, field.Name(f))
	}
	if diff := cmp.Diff([]string{"first", "kept"}, got); diff != "" {
		t.Fatalf("registered fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":         "  \n",
		"syntax":        "queues: [",
		"queue name":    "queues:\n  - fields:\n      - name: a\n",
		"field name":    "queues:\n  - name: q\n    fields:\n      - kind: text\n",
		"storage value": "queues:\n  - name: q\n    fields:\n      - name: a\n        storage: global\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := definitions.Load([]byte(src), name); err == nil {
				t.Fatalf("expected %s to be rejected", name)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := definitions.LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if doc.Source != path || len(doc.Queues) != 2 {
		t.Fatalf("unexpected document: %s %d queues", doc.Source, len(doc.Queues))
	}

	if _, err := definitions.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file error")
	}
}
