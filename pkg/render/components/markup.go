package components

import (
	"html"
	"strings"

	"github.com/goliatone/go-metabox/pkg/field"
)

const classPrefix = "metabox-field"

func openContainer(b *strings.Builder, modifier string) {
	b.WriteString(`<div class="`)
	b.WriteString(classPrefix)
	if modifier = strings.TrimSpace(modifier); modifier != "" {
		b.WriteString(" " + classPrefix + "--")
		b.WriteString(html.EscapeString(modifier))
	}
	b.WriteString(`">`)
}

func closeContainer(b *strings.Builder) {
	b.WriteString(`</div>`)
}

// writeLabel emits the external label pointing at the control named name.
func writeLabel(b *strings.Builder, name, label string) {
	b.WriteString(`<label class="` + classPrefix + `__label" for="`)
	b.WriteString(html.EscapeString(name))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</label>`)
}

func writeDescription(b *strings.Builder, description string) {
	if strings.TrimSpace(description) == "" {
		return
	}
	b.WriteString(`<p class="` + classPrefix + `__description">`)
	b.WriteString(html.EscapeString(description))
	b.WriteString(`</p>`)
}

// writeAttr emits ` key="value"` with value escaped.
func writeAttr(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func fullwidth(f field.Field) bool {
	switch v := f.(type) {
	case field.Text:
		return v.Fullwidth
	case field.Number:
		return v.Fullwidth
	case field.Input:
		return v.Fullwidth
	default:
		return false
	}
}
