package components

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-metabox/pkg/field"
	rendertemplate "github.com/goliatone/go-metabox/pkg/render/template"
)

// Renderer writes the markup for one field into buf.
type Renderer func(buf *bytes.Buffer, f field.Field, data ComponentData) error

// EditorOptions configures the rich text editor for one field.
type EditorOptions struct {
	MediaButtons bool
	Rows         int
}

// EditorFunc renders a rich text editor for content, submitting under key.
type EditorFunc func(w io.Writer, content, key string, opts EditorOptions) error

// ComponentData carries the per-field values and collaborators a component
// needs. Stored is the raw stored value; Display has kind-specific formatting
// applied. Neither is escaped.
type ComponentData struct {
	Context       context.Context
	ItemID        string
	Stored        string
	Display       string
	Options       field.Options
	AttachmentURL string
	Template      rendertemplate.TemplateRenderer
	Editor        EditorFunc
}

// Script is a JavaScript dependency emitted once per page.
type Script struct {
	Src    string
	Module bool
	Defer  bool
}

// Assets is the de-duplicated set of dependencies for a render.
type Assets struct {
	Stylesheets []string
	Scripts     []Script
}

// Empty reports whether there is nothing to emit.
func (a Assets) Empty() bool {
	return len(a.Stylesheets) == 0 && len(a.Scripts) == 0
}

// Descriptor bundles the renderer implementation with any asset dependencies.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

// Registry tracks component descriptors keyed by name. Callers can register new
// components or override defaults.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with name, replacing any existing entry.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Names returns a sorted slice of registered component names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Assets resolves the dependencies of the named components, keeping first
// occurrence order. Unknown names are ignored.
func (r *Registry) Assets(names []string) Assets {
	var out Assets
	if len(names) == 0 {
		return out
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seenStyles := make(map[string]struct{})
	seenScripts := make(map[string]struct{})

	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seenStyles[href]; exists {
				continue
			}
			seenStyles[href] = struct{}{}
			out.Stylesheets = append(out.Stylesheets, href)
		}
		for _, script := range descriptor.Scripts {
			if script.Src == "" {
				continue
			}
			if _, exists := seenScripts[script.Src]; exists {
				continue
			}
			seenScripts[script.Src] = struct{}{}
			out.Scripts = append(out.Scripts, script)
		}
	}
	return out
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
