package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/render/components"
	rendertemplate "github.com/goliatone/go-metabox/pkg/render/template"
	"github.com/goliatone/go-metabox/pkg/storage"
)

// ErrUnknownComponent is recorded when no component is registered for a kind.
var ErrUnknownComponent = errors.New("render: no component registered")

// Result describes one RenderQueue call.
type Result struct {
	// Rendered lists field names in output order.
	Rendered []string
	// Components lists the component used for each rendered field.
	Components []string
	// Errors holds fields that were skipped.
	Errors field.Errors
	// Skipped is set when nothing was attempted (unknown queue, no item).
	Skipped bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithComponents replaces the default component registry.
func WithComponents(reg *components.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.components = reg
		}
	}
}

// WithTemplate replaces the template renderer handed to components.
func WithTemplate(tpl rendertemplate.TemplateRenderer) Option {
	return func(r *Renderer) {
		if tpl != nil {
			r.template = tpl
		}
	}
}

// WithEditor replaces the rich text editor.
func WithEditor(editor Editor) Option {
	return func(r *Renderer) {
		if editor != nil {
			r.editor = editor
		}
	}
}

// WithAttachmentResolver sets how image fields resolve preview URLs.
func WithAttachmentResolver(resolver storage.AttachmentResolver) Option {
	return func(r *Renderer) {
		if resolver != nil {
			r.attachments = resolver
		}
	}
}

// WithLogger sets the logger used for per-field failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer turns a queue of fields into form markup bound to one item.
type Renderer struct {
	store       storage.Reader
	components  *components.Registry
	template    rendertemplate.TemplateRenderer
	editor      Editor
	attachments storage.AttachmentResolver
	logger      *slog.Logger
}

// NewRenderer builds a Renderer reading from store. Without options it uses
// the default components, the embedded templates and the default editor.
func NewRenderer(store storage.Reader, opts ...Option) (*Renderer, error) {
	if store == nil {
		return nil, errors.New("render: store is required")
	}
	r := &Renderer{
		store:       store,
		attachments: storage.URLPattern(""),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.components == nil {
		r.components = components.NewDefaultRegistry()
	}
	if r.template == nil {
		engine, err := NewTemplateEngine()
		if err != nil {
			return nil, err
		}
		r.template = engine
	}
	if r.editor == nil {
		r.editor = NewTemplateEditor(r.template)
	}
	return r, nil
}

// Template returns the template renderer handed to components.
func (r *Renderer) Template() rendertemplate.TemplateRenderer {
	return r.template
}

// Components returns the registry in use, so callers can register overrides.
func (r *Renderer) Components() *components.Registry {
	return r.components
}

// RenderQueue renders fields in order for itemID. A field that cannot be
// rendered is logged, recorded in Result.Errors and left out; the rest of the
// queue still renders. Only a failing writer aborts.
func (r *Renderer) RenderQueue(ctx context.Context, w io.Writer, itemID string, fields []field.Field) (Result, error) {
	var result Result
	var buf bytes.Buffer

	for _, f := range fields {
		name := field.Name(f)
		buf.Reset()

		component, err := r.renderField(ctx, &buf, itemID, f)
		if err != nil {
			r.logger.Warn("metabox: field not rendered",
				"item", itemID, "field", name, "error", err)
			result.Errors = append(result.Errors, field.Error{Name: name, Err: err})
			continue
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return result, fmt.Errorf("render: write %q: %w", name, err)
		}
		result.Rendered = append(result.Rendered, name)
		result.Components = append(result.Components, component)
	}
	return result, nil
}

func (r *Renderer) renderField(ctx context.Context, buf *bytes.Buffer, itemID string, f field.Field) (string, error) {
	if f == nil {
		return "", field.ErrNilField
	}
	base := f.Base()
	if base.Name == "" {
		return "", field.ErrNameRequired
	}

	name := components.ForKind(f.Kind())
	descriptor, ok := r.components.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}

	stored, err := storage.ReadValue(ctx, r.store, f, itemID)
	if err != nil {
		return "", err
	}

	data := components.ComponentData{
		Context:  ctx,
		ItemID:   itemID,
		Stored:   stored,
		Display:  field.DisplayValue(f, stored),
		Template: r.template,
		Editor: func(w io.Writer, content, key string, opts components.EditorOptions) error {
			return r.editor.RenderEditor(ctx, w, content, key, opts)
		},
	}

	switch v := f.(type) {
	case field.Radio:
		if data.Options, err = v.Resolve(ctx, itemID); err != nil {
			return "", fmt.Errorf("render: options: %w", err)
		}
	case field.Select:
		if data.Options, err = v.Resolve(ctx, itemID); err != nil {
			return "", fmt.Errorf("render: options: %w", err)
		}
	case field.Image:
		if data.AttachmentURL, err = r.attachments.AttachmentURL(ctx, stored, v.Size); err != nil {
			return "", fmt.Errorf("render: attachment url: %w", err)
		}
	}

	if err := descriptor.Renderer(buf, f, data); err != nil {
		return "", err
	}
	return name, nil
}

// Assets returns the de-duplicated stylesheets and scripts needed by the
// components that produced result.
func (r *Renderer) Assets(result Result) components.Assets {
	return r.components.Assets(result.Components)
}
