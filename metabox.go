package metabox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/persist"
	"github.com/goliatone/go-metabox/pkg/registry"
	"github.com/goliatone/go-metabox/pkg/render"
	"github.com/goliatone/go-metabox/pkg/render/components"
	rendertemplate "github.com/goliatone/go-metabox/pkg/render/template"
	"github.com/goliatone/go-metabox/pkg/sanitize"
	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/submission"
)

var (
	// ErrUnknownQueue is returned by SaveQueue when nothing was registered
	// under the queue name.
	ErrUnknownQueue = errors.New("metabox: unknown queue")
	// ErrItemRequired is returned by SaveQueue when no item id is given.
	ErrItemRequired = storage.ErrItemRequired
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger shared by the manager, renderer and saver.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSanitizer replaces the default bluemonday sanitizer used when saving.
func WithSanitizer(s field.Sanitizer) Option {
	return func(m *Manager) {
		if s != nil {
			m.sanitizer = s
		}
	}
}

// WithEditor replaces the rich text editor widget.
func WithEditor(editor render.Editor) Option {
	return func(m *Manager) {
		if editor != nil {
			m.renderOpts = append(m.renderOpts, render.WithEditor(editor))
		}
	}
}

// WithComponents renders fields with a copy of reg. Later changes to reg do
// not reach the manager; register overrides through Manager.Components.
func WithComponents(reg *components.Registry) Option {
	return func(m *Manager) {
		if reg != nil {
			m.renderOpts = append(m.renderOpts, render.WithComponents(reg.Clone()))
		}
	}
}

// WithTemplateDir loads templates from dir ahead of the embedded ones, so a
// file named like a built-in template (image_picker.tpl, form.tpl, ...)
// replaces it.
func WithTemplateDir(dir string) Option {
	return func(m *Manager) {
		m.templateDir = strings.TrimSpace(dir)
	}
}

// WithAttachmentResolver sets how image fields resolve attachment ids to URLs.
func WithAttachmentResolver(resolver storage.AttachmentResolver) Option {
	return func(m *Manager) {
		if resolver != nil {
			m.renderOpts = append(m.renderOpts, render.WithAttachmentResolver(resolver))
		}
	}
}

// WithRegistry shares an existing field registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// Manager ties a field registry to a store: fields are registered into named
// queues, rendered as form markup for an item and saved back from a
// submission.
type Manager struct {
	store       storage.Store
	registry    *registry.Registry
	renderer    *render.Renderer
	saver       *persist.Saver
	sanitizer   field.Sanitizer
	logger      *slog.Logger
	renderOpts  []render.Option
	templateDir string
}

// New builds a Manager on top of store.
func New(store storage.Store, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, errors.New("metabox: store is required")
	}
	m := &Manager{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	if m.registry == nil {
		m.registry = registry.New()
	}
	if m.sanitizer == nil {
		m.sanitizer = sanitize.New()
	}

	renderOpts := append([]render.Option(nil), m.renderOpts...)
	if m.templateDir != "" {
		engine, err := render.NewTemplateEngine(rendertemplate.WithBaseDir(m.templateDir))
		if err != nil {
			return nil, fmt.Errorf("metabox: templates: %w", err)
		}
		renderOpts = append(renderOpts, render.WithTemplate(engine))
	}
	renderer, err := render.NewRenderer(store, append(renderOpts, render.WithLogger(m.logger))...)
	if err != nil {
		return nil, fmt.Errorf("metabox: renderer: %w", err)
	}
	saver, err := persist.NewSaver(store, persist.WithSanitizer(m.sanitizer), persist.WithLogger(m.logger))
	if err != nil {
		return nil, fmt.Errorf("metabox: saver: %w", err)
	}
	m.renderer = renderer
	m.saver = saver
	return m, nil
}

// RegisterField appends f to queue as a per-item field. Rejected descriptors
// are logged and leave every queue untouched.
func (m *Manager) RegisterField(f field.Field, queue string) error {
	if err := m.registry.Register(f, queue); err != nil {
		m.logger.Error("metabox: field not registered", "queue", queue, "field", field.Name(f), "error", err)
		return err
	}
	return nil
}

// RegisterOption appends f to queue as a site-level option field.
func (m *Manager) RegisterOption(f field.Field, queue string) error {
	if err := m.registry.RegisterOption(f, queue); err != nil {
		m.logger.Error("metabox: option not registered", "queue", queue, "field", field.Name(f), "error", err)
		return err
	}
	return nil
}

// QueueExists reports whether queue has any registered fields.
func (m *Manager) QueueExists(queue string) bool {
	return m.registry.QueueExists(queue)
}

// Fields returns the fields of queue in registration order.
func (m *Manager) Fields(queue string) ([]field.Field, bool) {
	return m.registry.Queue(queue)
}

// Queues returns the registered queue names.
func (m *Manager) Queues() []string {
	return m.registry.Names()
}

// Registry exposes the underlying field registry.
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// Components exposes the component registry used for rendering.
func (m *Manager) Components() *components.Registry {
	return m.renderer.Components()
}

// Template exposes the template renderer shared by components and pages.
func (m *Manager) Template() rendertemplate.TemplateRenderer {
	return m.renderer.Template()
}

// Value reads the stored value of f for itemID.
func (m *Manager) Value(ctx context.Context, f field.Field, itemID string) (string, error) {
	return storage.ReadValue(ctx, m.store, f, itemID)
}

// RenderQueue writes the form markup of queue for itemID to w. An unknown
// queue or an empty item id writes nothing and returns a skipped result.
func (m *Manager) RenderQueue(ctx context.Context, w io.Writer, itemID, queue string) (render.Result, error) {
	fields, ok := m.registry.Queue(queue)
	if !ok || itemID == "" {
		return render.Result{Skipped: true}, nil
	}
	return m.renderer.RenderQueue(ctx, w, itemID, fields)
}

// SaveQueue coerces and stores the submitted values of queue for itemID.
func (m *Manager) SaveQueue(ctx context.Context, itemID, queue string, sub submission.Submission) (persist.Result, error) {
	if itemID == "" {
		m.logger.Error("metabox: queue not saved", "queue", queue, "error", ErrItemRequired)
		return persist.Result{}, ErrItemRequired
	}
	fields, ok := m.registry.Queue(queue)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownQueue, queue)
		m.logger.Error("metabox: queue not saved", "queue", queue, "item", itemID, "error", err)
		return persist.Result{}, err
	}

	result, err := m.saver.SaveQueue(ctx, itemID, fields, sub)
	if err != nil {
		m.logger.Error("metabox: queue save aborted", "queue", queue, "item", itemID, "error", err)
		return result, err
	}
	return result, nil
}

// Assets lists the stylesheets and scripts needed by the components used in a
// render result.
func (m *Manager) Assets(result render.Result) components.Assets {
	return m.renderer.Assets(result)
}
