package render

import (
	"fmt"
	"io"

	"github.com/goliatone/go-metabox/pkg/render/components"
	rendertemplate "github.com/goliatone/go-metabox/pkg/render/template"
)

// FormTemplate is the page template wrapped around a rendered queue.
const FormTemplate = "form"

// FormPage is everything FormTemplate needs to build an edit page.
type FormPage struct {
	Title  string
	Action string
	// Body is trusted queue markup from RenderQueue and is emitted unescaped.
	Body   string
	Hidden []HiddenField
	Assets components.Assets
}

// RenderForm renders page with tpl and writes the document to w.
func RenderForm(w io.Writer, tpl rendertemplate.TemplateRenderer, page FormPage) error {
	if tpl == nil {
		return fmt.Errorf("render: template renderer not configured for %q", FormTemplate)
	}
	if _, err := tpl.RenderTemplate(FormTemplate, page.context(), w); err != nil {
		return fmt.Errorf("render: form page: %w", err)
	}
	return nil
}

func (p FormPage) context() map[string]any {
	hidden := make([]any, 0, len(p.Hidden))
	for _, hf := range p.Hidden {
		hidden = append(hidden, map[string]any{"name": hf.Name, "value": hf.Value})
	}
	stylesheets := make([]any, 0, len(p.Assets.Stylesheets))
	for _, href := range p.Assets.Stylesheets {
		stylesheets = append(stylesheets, href)
	}
	scripts := make([]any, 0, len(p.Assets.Scripts))
	for _, s := range p.Assets.Scripts {
		scripts = append(scripts, map[string]any{"src": s.Src, "module": s.Module, "deferred": s.Defer})
	}
	return map[string]any{
		"title":         p.Title,
		"action":        p.Action,
		"body":          p.Body,
		"hidden_fields": hidden,
		"stylesheets":   stylesheets,
		"scripts":       scripts,
	}
}
