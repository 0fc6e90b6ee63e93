package definitions

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-metabox/pkg/field"
)

var (
	// ErrUnknownProvider is returned when a field names an options provider the
	// catalog does not hold.
	ErrUnknownProvider = errors.New("definitions: unknown options provider")
	// ErrUnknownHook is returned when a field names a save hook the catalog
	// does not hold.
	ErrUnknownHook = errors.New("definitions: unknown hook")
)

// Document is a parsed definitions file.
type Document struct {
	Source string  `yaml:"-"`
	Queues []Queue `yaml:"queues"`
}

// Queue groups fields rendered and saved together.
type Queue struct {
	Name   string     `yaml:"name"`
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef is the YAML form of a field descriptor. Attributes that do not apply
// to the kind are ignored.
type FieldDef struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	DataType    string `yaml:"data_type"`
	// Storage is "meta" (default) or "option".
	Storage string `yaml:"storage"`

	Placeholder string `yaml:"placeholder"`
	Fullwidth   bool   `yaml:"fullwidth"`
	Step        string `yaml:"step"`
	Precision   *int   `yaml:"precision"`
	Type        string `yaml:"type"`
	Size        string `yaml:"size"`
	Rows        int    `yaml:"rows"`
	// MediaButtons defaults to true for rich text.
	MediaButtons *bool `yaml:"media_buttons"`

	Options         field.Options `yaml:"options"`
	OptionsProvider string        `yaml:"options_provider"`
	BeforeSave      string        `yaml:"before_save"`
	AfterSave       string        `yaml:"after_save"`
}

// Catalog resolves the named references a document may contain.
type Catalog struct {
	Providers map[string]field.OptionsProvider
	Hooks     map[string]field.Hook
}

// Registrar receives the fields of an applied document. metabox.Manager
// satisfies it.
type Registrar interface {
	RegisterField(f field.Field, queue string) error
	RegisterOption(f field.Field, queue string) error
}

// LoadFile reads and parses a definitions file.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("definitions: read %s: %w", path, err)
	}
	return Load(data, path)
}

// Load parses a definitions document. source names the document in errors.
func Load(data []byte, source string) (Document, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Document{}, fmt.Errorf("definitions: %s is empty", source)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("definitions: parse %s: %w", source, err)
	}
	doc.Source = source

	for i, q := range doc.Queues {
		if strings.TrimSpace(q.Name) == "" {
			return Document{}, fmt.Errorf("definitions: %s: queue %d has no name", source, i)
		}
		for j, f := range q.Fields {
			if strings.TrimSpace(f.Name) == "" {
				return Document{}, fmt.Errorf("definitions: %s: queue %q field %d has no name", source, q.Name, j)
			}
			switch field.StorageType(f.Storage) {
			case "", field.StorageMeta, field.StorageOption:
			default:
				return Document{}, fmt.Errorf("definitions: %s: field %q: unknown storage %q", source, f.Name, f.Storage)
			}
		}
	}
	return doc, nil
}

// Apply registers every field with reg in document order. A field that cannot
// be built or registered is reported and the rest are still applied.
func (d Document) Apply(reg Registrar, catalog Catalog) error {
	var errs []error
	for _, q := range d.Queues {
		for _, def := range q.Fields {
			f, err := def.Build(catalog)
			if err != nil {
				errs = append(errs, fmt.Errorf("queue %q: %w", q.Name, err))
				continue
			}
			register := reg.RegisterField
			if field.StorageType(def.Storage) == field.StorageOption {
				register = reg.RegisterOption
			}
			if err := register(f, q.Name); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("definitions: apply %s: %w", d.Source, errors.Join(errs...))
	}
	return nil
}

// Build turns the definition into a field descriptor, resolving provider and
// hook names against catalog.
func (def FieldDef) Build(catalog Catalog) (field.Field, error) {
	common := field.Common{
		Name:        def.Name,
		Label:       def.Label,
		Description: def.Description,
		DataType:    field.DataType(def.DataType),
	}
	var err error
	if common.BeforeSave, err = catalog.hook(def.BeforeSave); err != nil {
		return nil, fmt.Errorf("field %q: %w", def.Name, err)
	}
	if common.AfterSave, err = catalog.hook(def.AfterSave); err != nil {
		return nil, fmt.Errorf("field %q: %w", def.Name, err)
	}

	kind := field.Kind(strings.ToLower(strings.TrimSpace(def.Kind)))
	switch kind {
	case "", field.KindText:
		return field.Text{Common: common, Placeholder: def.Placeholder, Fullwidth: def.Fullwidth}, nil
	case field.KindNumber:
		return field.Number{Common: common, Step: def.Step, Precision: def.Precision, Fullwidth: def.Fullwidth}, nil
	case field.KindCheckbox:
		return field.Checkbox{Common: common}, nil
	case field.KindRadio, field.KindSelect:
		choices := field.Choices{Options: def.Options.Clone()}
		if choices.Provider, err = catalog.provider(def.OptionsProvider); err != nil {
			return nil, fmt.Errorf("field %q: %w", def.Name, err)
		}
		if kind == field.KindRadio {
			return field.Radio{Common: common, Choices: choices}, nil
		}
		return field.Select{Common: common, Choices: choices}, nil
	case field.KindImage:
		return field.Image{Common: common, Size: def.Size}, nil
	case field.KindRichText:
		noMedia := def.MediaButtons != nil && !*def.MediaButtons
		return field.RichText{Common: common, NoMediaButtons: noMedia, Rows: def.Rows}, nil
	case field.KindInput:
		return field.Input{Common: common, Type: def.Type, Fullwidth: def.Fullwidth}, nil
	default:
		return field.Input{Common: common, Type: string(kind), Fullwidth: def.Fullwidth}, nil
	}
}

func (c Catalog) hook(name string) (field.Hook, error) {
	if name == "" {
		return nil, nil
	}
	hook, ok := c.Hooks[name]
	if !ok || hook == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHook, name)
	}
	return hook, nil
}

func (c Catalog) provider(name string) (field.OptionsProvider, error) {
	if name == "" {
		return nil, nil
	}
	provider, ok := c.Providers[name]
	if !ok || provider == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return provider, nil
}
