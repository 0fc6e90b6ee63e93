package field

import (
	"context"
	"slices"
)

// Kind identifies the control a descriptor renders as.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
	KindSelect   Kind = "select"
	KindImage    Kind = "image"
	KindRichText Kind = "rich_text"
	KindInput    Kind = "input"
)

// DataType is the type a submitted value is coerced into before it is stored.
type DataType string

const (
	DataString   DataType = "string"
	DataRichText DataType = "rich_text"
	DataInt      DataType = "int"
	DataFloat    DataType = "float"
	DataBool     DataType = "bool"
)

// Valid reports whether the data type is one Coerce understands.
func (d DataType) Valid() bool {
	switch d {
	case DataString, DataRichText, DataInt, DataFloat, DataBool:
		return true
	default:
		return false
	}
}

// StorageType selects where a field's value lives.
type StorageType string

const (
	// StorageMeta stores values per content item.
	StorageMeta StorageType = "meta"
	// StorageOption stores a single site-level value keyed by field name.
	StorageOption StorageType = "option"
)

// Hook runs around a save with the item identifier and the coerced value. Hooks
// are side effects only; nothing they do changes what gets written.
type Hook func(ctx context.Context, itemID string, value Value)

// Option is one entry of an ordered key/label mapping used by radio groups and
// selects.
type Option struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// Options preserves declaration order, which is the render order.
type Options []Option

// Clone returns an independent copy.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	return slices.Clone(o)
}

// OptionsProvider resolves options for a specific content item at render time.
type OptionsProvider func(ctx context.Context, itemID string) (Options, error)

// Choices holds either a static option list or a provider. The provider wins
// when both are set.
type Choices struct {
	Options  Options
	Provider OptionsProvider
}

// Resolve returns the options for itemID.
func (c Choices) Resolve(ctx context.Context, itemID string) (Options, error) {
	if c.Provider != nil {
		return c.Provider(ctx, itemID)
	}
	return c.Options, nil
}

// Common carries the attributes shared by every descriptor.
type Common struct {
	// Name is the storage key and the form control name. Required.
	Name        string
	Label       string
	Description string
	// DataType defaults to DataString. Checkbox fields are always DataBool.
	DataType DataType
	// Storage is assigned by the registry; callers do not set it.
	Storage    StorageType
	BeforeSave Hook
	AfterSave  Hook
}

// Field is implemented by the descriptor variants in this package only.
type Field interface {
	Kind() Kind
	Base() Common
	withBase(Common) Field
}

// Text is a single-line text input.
type Text struct {
	Common
	Placeholder string
	Fullwidth   bool
}

func (Text) Kind() Kind { return KindText }
func (f Text) Base() Common { return f.Common }
func (f Text) withBase(c Common) Field { f.Common = c; return f }

// Number is a numeric input. Step is emitted verbatim as the step attribute;
// Precision, when set, fixes the number of decimals shown.
type Number struct {
	Common
	Step      string
	Precision *int
	Fullwidth bool
}

func (Number) Kind() Kind { return KindNumber }
func (f Number) Base() Common { return f.Common }
func (f Number) withBase(c Common) Field { f.Common = c; return f }

// Precision returns a pointer suitable for Number.Precision.
func Precision(decimals int) *int {
	return &decimals
}

// Checkbox is a single boolean toggle.
type Checkbox struct {
	Common
}

func (Checkbox) Kind() Kind { return KindCheckbox }
func (f Checkbox) Base() Common { return f.Common }
func (f Checkbox) withBase(c Common) Field { f.Common = c; return f }

// Radio renders one radio control per option.
type Radio struct {
	Common
	Choices
}

func (Radio) Kind() Kind { return KindRadio }
func (f Radio) Base() Common { return f.Common }
func (f Radio) withBase(c Common) Field {
	f.Common = c
	f.Options = f.Options.Clone()
	return f
}

// Select renders a drop-down with one entry per option.
type Select struct {
	Common
	Choices
}

func (Select) Kind() Kind { return KindSelect }
func (f Select) Base() Common { return f.Common }
func (f Select) withBase(c Common) Field {
	f.Common = c
	f.Options = f.Options.Clone()
	return f
}

// DefaultImageSize is the attachment size requested when Image.Size is empty.
const DefaultImageSize = "medium"

// Image stores an attachment identifier and renders a picker with a preview.
type Image struct {
	Common
	Size string
}

func (Image) Kind() Kind { return KindImage }
func (f Image) Base() Common { return f.Common }
func (f Image) withBase(c Common) Field {
	f.Common = c
	if f.Size == "" {
		f.Size = DefaultImageSize
	}
	return f
}

// RichText delegates to the configured rich text editor widget.
type RichText struct {
	Common
	NoMediaButtons bool
	Rows           int
}

func (RichText) Kind() Kind { return KindRichText }
func (f RichText) Base() Common { return f.Common }
func (f RichText) withBase(c Common) Field { f.Common = c; return f }

// Input is a passthrough for any other input type (email, url, date, color...).
type Input struct {
	Common
	Type      string
	Fullwidth bool
}

func (Input) Kind() Kind { return KindInput }
func (f Input) Base() Common { return f.Common }
func (f Input) withBase(c Common) Field { f.Common = c; return f }

// InputType returns the HTML type attribute for input-like fields and false for
// kinds that are not rendered as a plain <input>.
func InputType(f Field) (string, bool) {
	switch v := f.(type) {
	case Text:
		return "text", true
	case Number:
		return "number", true
	case Input:
		return v.Type, true
	default:
		return "", false
	}
}

// Name is shorthand for f.Base().Name that tolerates nil.
func Name(f Field) string {
	if f == nil {
		return ""
	}
	return f.Base().Name
}
