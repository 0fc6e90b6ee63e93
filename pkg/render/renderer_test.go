package render_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/render"
	"github.com/goliatone/go-metabox/pkg/render/components"
	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/testsupport"
)

func newRenderer(t *testing.T, store storage.Reader, opts ...render.Option) *render.Renderer {
	t.Helper()
	opts = append([]render.Option{render.WithLogger(testsupport.DiscardLogger())}, opts...)
	r, err := render.NewRenderer(store, opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func renderOne(t *testing.T, r *render.Renderer, itemID string, f field.Field) string {
	t.Helper()
	var buf bytes.Buffer
	result, err := r.RenderQueue(context.Background(), &buf, itemID, []field.Field{f})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected field errors: %v", result.Errors)
	}
	return buf.String()
}

func seed(t *testing.T, store storage.Writer, itemID, key, value string) {
	t.Helper()
	if err := store.SetItemMeta(context.Background(), itemID, key, value); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func TestRenderSelectMarksOnlyStoredOption(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "color", "b")
	r := newRenderer(t, store)

	out := renderOne(t, r, "42", field.Select{
		Common: field.Common{Name: "color", Label: "Color"},
		Choices: field.Choices{Options: field.Options{
			{Key: "a", Label: "A"},
			{Key: "b", Label: "B"},
		}},
	})

	if strings.Count(out, " selected") != 1 {
		t.Fatalf("expected exactly one selected option, got %s", out)
	}
	if !strings.Contains(out, `<option value="b" selected>B</option>`) {
		t.Fatalf("expected option b selected, got %s", out)
	}
	if !strings.Contains(out, `<option value="a">A</option>`) {
		t.Fatalf("expected option a unselected, got %s", out)
	}
	if !strings.Contains(out, `<label class="metabox-field__label" for="color">Color</label>`) {
		t.Fatalf("expected external label, got %s", out)
	}
}

func TestRenderNumberAppliesPrecisionAndStep(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "rating", "3.14159")
	r := newRenderer(t, store)

	out := renderOne(t, r, "42", field.Number{
		Common:    field.Common{Name: "rating", Label: "Rating", DataType: field.DataFloat},
		Step:      "0.01",
		Precision: field.Precision(2),
		Fullwidth: true,
	})

	want := `<div class="metabox-field metabox-field--number">` +
		`<label class="metabox-field__label" for="rating">Rating</label>` +
		`<input type="number" id="rating" name="rating" value="3.14" step="0.01" class="fullwidth" />` +
		`</div>`
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("number markup mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCheckboxReflectsStoredTrue(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "1", "featured", "true")
	seed(t, store, "2", "featured", "1")
	r := newRenderer(t, store)
	f := field.Checkbox{Common: field.Common{Name: "featured", Label: "Featured", Description: "Pin it"}}

	checked := renderOne(t, r, "1", f)
	if !strings.Contains(checked, ` value="true" checked />`) {
		t.Fatalf("expected checked checkbox, got %s", checked)
	}
	if !strings.Contains(checked, `<p class="metabox-field__description">Pin it</p>`) {
		t.Fatalf("expected description, got %s", checked)
	}

	for _, item := range []string{"2", "3"} {
		out := renderOne(t, r, item, f)
		if strings.Contains(out, "checked") {
			t.Fatalf("item %s: expected unchecked checkbox, got %s", item, out)
		}
		if !strings.Contains(out, ` value="true" />`) {
			t.Fatalf("item %s: checkbox must always submit true, got %s", item, out)
		}
	}
}

func TestRenderRadioUsesProvider(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "size", "m")
	r := newRenderer(t, store)

	var gotItem string
	out := renderOne(t, r, "42", field.Radio{
		Common: field.Common{Name: "size", Label: "Size"},
		Choices: field.Choices{
			Options: field.Options{{Key: "static", Label: "Static"}},
			Provider: func(_ context.Context, itemID string) (field.Options, error) {
				gotItem = itemID
				return field.Options{{Key: "s", Label: "Small"}, {Key: "m", Label: "Medium"}}, nil
			},
		},
	})

	if gotItem != "42" {
		t.Fatalf("expected provider to receive item id, got %q", gotItem)
	}
	if strings.Contains(out, "Static") {
		t.Fatalf("expected provider to override static options, got %s", out)
	}
	if strings.Count(out, "checked") != 1 || !strings.Contains(out, `value="m" checked`) {
		t.Fatalf("expected only m checked, got %s", out)
	}
}

func TestRenderEscapesDynamicText(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "subtitle", `"><script>alert(1)</script>`)
	r := newRenderer(t, store)

	out := renderOne(t, r, "42", field.Text{
		Common:      field.Common{Name: "subtitle", Label: "<b>Sub</b>", Description: "a & b"},
		Placeholder: `say "hi"`,
	})

	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>") {
		t.Fatalf("expected dynamic text to be escaped, got %s", out)
	}
	for _, want := range []string{
		`value="&#34;&gt;&lt;script&gt;alert(1)&lt;/script&gt;"`,
		`&lt;b&gt;Sub&lt;/b&gt;`,
		`placeholder="say &#34;hi&#34;"`,
		`<p class="metabox-field__description">a &amp; b</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
}

func TestRenderInputPassthroughType(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "contact", "a@example.com")
	r := newRenderer(t, store)

	out := renderOne(t, r, "42", field.Input{
		Common: field.Common{Name: "contact", Label: "Contact"},
		Type:   "email",
	})
	if !strings.HasPrefix(out, `<div class="metabox-field metabox-field--email">`) {
		t.Fatalf("expected container modifier from type, got %s", out)
	}
	if !strings.Contains(out, `<input type="email" id="contact" name="contact" value="a@example.com" />`) {
		t.Fatalf("unexpected input markup: %s", out)
	}
}

func TestRenderImagePicker(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "hero", "17")

	var gotSize string
	resolver := storage.AttachmentResolverFunc(func(_ context.Context, id, size string) (string, error) {
		gotSize = size
		return "https://cdn.example.com/" + id + ".jpg", nil
	})
	r := newRenderer(t, store, render.WithAttachmentResolver(resolver))

	var buf bytes.Buffer
	result, err := r.RenderQueue(context.Background(), &buf, "42", []field.Field{
		field.Image{Common: field.Common{Name: "hero", Label: "Hero", Description: "Shown on top"}, Size: "large"},
	})
	if err != nil || len(result.Errors) != 0 {
		t.Fatalf("render: %v %v", err, result.Errors)
	}
	out := buf.String()

	if gotSize != "large" {
		t.Fatalf("expected size hint to reach resolver, got %q", gotSize)
	}
	for _, want := range []string{
		`<div class="metabox-field metabox-field--image">`,
		`src="https://cdn.example.com/17.jpg"`,
		`value="Choose"`,
		`>Remove</a>`,
		`<input type="hidden" name="hero" value="17"`,
		`<p class="metabox-field__description">Shown on top</p>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}

	assets := r.Assets(result)
	if len(assets.Scripts) != 1 || assets.Scripts[0].Src != components.ImagePickerScript {
		t.Fatalf("expected image picker script, got %+v", assets)
	}
}

func TestRenderRichTextDelegatesToEditor(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "post-body", "<p>Hello & bye</p>")
	r := newRenderer(t, store)

	out := renderOne(t, r, "42", field.RichText{
		Common:         field.Common{Name: "post-body", Label: "Body", Description: "never shown"},
		NoMediaButtons: true,
	})

	for _, want := range []string{
		`<div class="metabox-field metabox-field--rich_text">`,
		`<label class="metabox-field__label" for="post_body_ed">Body</label>`,
		`id="post_body_ed"`,
		`name="post-body"`,
		`&lt;p&gt;Hello &amp; bye&lt;/p&gt;</textarea>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
	if strings.Contains(out, "never shown") {
		t.Fatalf("rich text must not render a description, got %s", out)
	}
	if strings.Contains(out, "Add Media") {
		t.Fatalf("expected media buttons to be disabled, got %s", out)
	}
}

func TestRenderRichTextCustomEditor(t *testing.T) {
	store := testsupport.NewRecordingStore()
	seed(t, store, "42", "body", "stored")

	var got render.EditorOptions
	editor := render.EditorFunc(func(_ context.Context, w io.Writer, content, key string, opts render.EditorOptions) error {
		got = opts
		_, err := io.WriteString(w, "[editor "+key+"="+content+"]")
		return err
	})
	r := newRenderer(t, store, render.WithEditor(editor))

	out := renderOne(t, r, "42", field.RichText{Common: field.Common{Name: "body"}, Rows: 4})
	want := `<div class="metabox-field metabox-field--rich_text">[editor body=stored]</div>`
	if out != want {
		t.Fatalf("unexpected rich text markup\nwant: %s\n got: %s", want, out)
	}
	if !got.MediaButtons || got.Rows != 4 {
		t.Fatalf("unexpected editor options: %+v", got)
	}
}

func TestRenderIsolatesFieldFailures(t *testing.T) {
	store := testsupport.NewRecordingStore()
	store.FailRead("broken", errors.New("disk on fire"))
	r := newRenderer(t, store)

	fields := []field.Field{
		field.Text{Common: field.Common{Name: "first"}},
		field.Text{Common: field.Common{Name: "broken"}},
		field.Select{
			Common: field.Common{Name: "dynamic"},
			Choices: field.Choices{Provider: func(context.Context, string) (field.Options, error) {
				return nil, errors.New("provider down")
			}},
		},
		field.Text{Common: field.Common{Name: ""}},
		field.Text{Common: field.Common{Name: "last"}},
	}

	var buf bytes.Buffer
	result, err := r.RenderQueue(context.Background(), &buf, "42", fields)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "last"}, result.Rendered); diff != "" {
		t.Fatalf("rendered mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"broken", "dynamic", ""}, result.Errors.Names()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if !errors.Is(result.Errors[2], field.ErrNameRequired) {
		t.Fatalf("expected empty name error, got %v", result.Errors[2])
	}
	if strings.Contains(buf.String(), "dynamic") || strings.Contains(buf.String(), "broken") {
		t.Fatalf("failed fields must not emit partial markup: %s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("client gone") }

func TestRenderWriterFailureAborts(t *testing.T) {
	r := newRenderer(t, testsupport.NewRecordingStore())
	result, err := r.RenderQueue(context.Background(), failingWriter{}, "42", []field.Field{
		field.Text{Common: field.Common{Name: "a"}},
		field.Text{Common: field.Common{Name: "b"}},
	})
	if err == nil {
		t.Fatalf("expected writer error")
	}
	if len(result.Rendered) != 0 {
		t.Fatalf("expected nothing rendered, got %v", result.Rendered)
	}
}

func TestRenderReadsOptionStorage(t *testing.T) {
	store := testsupport.NewRecordingStore()
	if err := store.SetSiteOption(context.Background(), "tagline", "Site wide"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := newRenderer(t, store)

	out := renderOne(t, r, "99", field.Text{Common: field.Common{Name: "tagline", Storage: field.StorageOption}})
	if !strings.Contains(out, `value="Site wide"`) {
		t.Fatalf("expected option value, got %s", out)
	}
	calls := store.Calls()
	if calls[len(calls)-1] != "get option tagline" {
		t.Fatalf("expected site option read, got %v", calls)
	}
}
