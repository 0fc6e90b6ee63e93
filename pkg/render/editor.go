package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goliatone/go-metabox/pkg/render/components"
	rendertemplate "github.com/goliatone/go-metabox/pkg/render/template"
)

// EditorOptions configures one rich text editor instance.
type EditorOptions = components.EditorOptions

// DefaultEditorRows is used when a rich text field does not set Rows.
const DefaultEditorRows = 10

// Editor renders the rich text widget for a field. content is the stored,
// unescaped markup and key is the control name the widget submits under.
type Editor interface {
	RenderEditor(ctx context.Context, w io.Writer, content, key string, opts EditorOptions) error
}

// EditorFunc adapts a function to Editor.
type EditorFunc func(ctx context.Context, w io.Writer, content, key string, opts EditorOptions) error

// RenderEditor calls fn.
func (fn EditorFunc) RenderEditor(ctx context.Context, w io.Writer, content, key string, opts EditorOptions) error {
	return fn(ctx, w, content, key, opts)
}

// TemplateEditor renders a textarea with an optional media toolbar from the
// rich_text_editor template.
type TemplateEditor struct {
	Template rendertemplate.TemplateRenderer
}

var _ Editor = TemplateEditor{}

// NewTemplateEditor wraps tpl.
func NewTemplateEditor(tpl rendertemplate.TemplateRenderer) TemplateEditor {
	return TemplateEditor{Template: tpl}
}

func (e TemplateEditor) RenderEditor(_ context.Context, w io.Writer, content, key string, opts EditorOptions) error {
	if e.Template == nil {
		return errors.New("render: editor template renderer is nil")
	}
	rows := opts.Rows
	if rows <= 0 {
		rows = DefaultEditorRows
	}
	_, err := e.Template.RenderTemplate(components.TemplateEditor, map[string]any{
		"id":            rendertemplate.EditorID(key),
		"name":          key,
		"content":       content,
		"media_buttons": opts.MediaButtons,
		"rows":          rows,
	}, w)
	if err != nil {
		return fmt.Errorf("render: editor: %w", err)
	}
	return nil
}
