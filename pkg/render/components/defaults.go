package components

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-metabox/pkg/field"
	rendertemplate "github.com/goliatone/go-metabox/pkg/render/template"
)

// Template names resolved through ComponentData.Template.
const (
	TemplateImagePicker = "image_picker"
	TemplateEditor      = "rich_text_editor"
)

// ImagePickerScript drives the Choose and Remove triggers of the image picker.
const ImagePickerScript = "/assets/metabox/image-picker.js"

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// components.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{Renderer: inputRenderer})
	registry.MustRegister(NameCheckbox, Descriptor{Renderer: checkboxRenderer})
	registry.MustRegister(NameRadio, Descriptor{Renderer: radioRenderer})
	registry.MustRegister(NameSelect, Descriptor{Renderer: selectRenderer})
	registry.MustRegister(NameImage, Descriptor{
		Renderer: imageRenderer,
		Scripts:  []Script{{Src: ImagePickerScript, Defer: true}},
	})
	registry.MustRegister(NameRichText, Descriptor{Renderer: richTextRenderer})

	return registry
}

func inputRenderer(buf *bytes.Buffer, f field.Field, data ComponentData) error {
	inputType, ok := field.InputType(f)
	if !ok {
		return fmt.Errorf("components: %s fields cannot render as input", f.Kind())
	}
	base := f.Base()

	var b strings.Builder
	openContainer(&b, inputType)
	writeLabel(&b, base.Name, base.Label)

	b.WriteString(`<input`)
	writeAttr(&b, "type", inputType)
	writeAttr(&b, "id", base.Name)
	writeAttr(&b, "name", base.Name)
	writeAttr(&b, "value", data.Display)
	switch v := f.(type) {
	case field.Number:
		writeAttr(&b, "step", v.Step)
	case field.Text:
		if v.Placeholder != "" {
			writeAttr(&b, "placeholder", v.Placeholder)
		}
	}
	if fullwidth(f) {
		writeAttr(&b, "class", "fullwidth")
	}
	b.WriteString(` />`)

	writeDescription(&b, base.Description)
	closeContainer(&b)
	buf.WriteString(b.String())
	return nil
}

func checkboxRenderer(buf *bytes.Buffer, f field.Field, data ComponentData) error {
	base := f.Base()

	var b strings.Builder
	openContainer(&b, string(field.KindCheckbox))
	b.WriteString(`<label class="` + classPrefix + `__label">`)
	b.WriteString(`<input type="checkbox"`)
	writeAttr(&b, "id", base.Name)
	writeAttr(&b, "name", base.Name)
	writeAttr(&b, "value", field.CheckboxValue)
	if field.Checked(data.Stored) {
		b.WriteString(` checked`)
	}
	b.WriteString(` /> `)
	b.WriteString(html.EscapeString(base.Label))
	b.WriteString(`</label>`)

	writeDescription(&b, base.Description)
	closeContainer(&b)
	buf.WriteString(b.String())
	return nil
}

func radioRenderer(buf *bytes.Buffer, f field.Field, data ComponentData) error {
	base := f.Base()

	var b strings.Builder
	openContainer(&b, string(field.KindRadio))
	writeLabel(&b, base.Name, base.Label)
	for _, opt := range data.Options {
		b.WriteString(`<label>`)
		b.WriteString(html.EscapeString(opt.Label))
		b.WriteString(` <input class="` + classPrefix + `__radio" type="radio"`)
		writeAttr(&b, "name", base.Name)
		writeAttr(&b, "value", opt.Key)
		if opt.Key == data.Stored {
			b.WriteString(` checked`)
		}
		b.WriteString(` /></label>`)
	}
	writeDescription(&b, base.Description)
	closeContainer(&b)
	buf.WriteString(b.String())
	return nil
}

func selectRenderer(buf *bytes.Buffer, f field.Field, data ComponentData) error {
	base := f.Base()

	var b strings.Builder
	openContainer(&b, string(field.KindSelect))
	writeLabel(&b, base.Name, base.Label)
	b.WriteString(`<select class="` + classPrefix + `__select"`)
	writeAttr(&b, "id", base.Name)
	writeAttr(&b, "name", base.Name)
	b.WriteString(`>`)
	for _, opt := range data.Options {
		b.WriteString(`<option`)
		writeAttr(&b, "value", opt.Key)
		if opt.Key == data.Stored {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(opt.Label))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
	writeDescription(&b, base.Description)
	closeContainer(&b)
	buf.WriteString(b.String())
	return nil
}

func imageRenderer(buf *bytes.Buffer, f field.Field, data ComponentData) error {
	if data.Template == nil {
		return fmt.Errorf("components: template renderer not configured for %q", TemplateImagePicker)
	}
	base := f.Base()

	picker, err := data.Template.RenderTemplate(TemplateImagePicker, map[string]any{
		"name":          base.Name,
		"attachment_id": data.Stored,
		"url":           data.AttachmentURL,
	})
	if err != nil {
		return fmt.Errorf("components: render template %q: %w", TemplateImagePicker, err)
	}

	var b strings.Builder
	openContainer(&b, string(field.KindImage))
	writeLabel(&b, base.Name+"-button", base.Label)
	b.WriteString(picker)
	writeDescription(&b, base.Description)
	closeContainer(&b)
	buf.WriteString(b.String())
	return nil
}

// richTextRenderer places its own label and never writes a description.
func richTextRenderer(buf *bytes.Buffer, f field.Field, data ComponentData) error {
	if data.Editor == nil {
		return fmt.Errorf("components: rich text editor not configured")
	}
	base := f.Base()
	opts := EditorOptions{MediaButtons: true}
	if v, ok := f.(field.RichText); ok {
		opts.MediaButtons = !v.NoMediaButtons
		opts.Rows = v.Rows
	}

	var b strings.Builder
	openContainer(&b, string(field.KindRichText))
	if base.Label != "" {
		writeLabel(&b, rendertemplate.EditorID(base.Name), base.Label)
	}
	buf.WriteString(b.String())

	if err := data.Editor(buf, data.Stored, base.Name, opts); err != nil {
		return err
	}
	buf.WriteString(`</div>`)
	return nil
}
