package components

import "github.com/goliatone/go-metabox/pkg/field"

// Canonical component names used by the default registry.
const (
	NameInput    = "input"
	NameCheckbox = "checkbox"
	NameRadio    = "radio"
	NameSelect   = "select"
	NameImage    = "image"
	NameRichText = "rich_text"
)

// ForKind returns the component that renders fields of kind. Short text,
// number and generic input fields share the input component.
func ForKind(kind field.Kind) string {
	switch kind {
	case field.KindCheckbox:
		return NameCheckbox
	case field.KindRadio:
		return NameRadio
	case field.KindSelect:
		return NameSelect
	case field.KindImage:
		return NameImage
	case field.KindRichText:
		return NameRichText
	default:
		return NameInput
	}
}
