package httpapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/goliatone/go-metabox"
	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/persist"
	mbrender "github.com/goliatone/go-metabox/pkg/render"
	"github.com/goliatone/go-metabox/pkg/render/components"
	rendertemplate "github.com/goliatone/go-metabox/pkg/render/template"
	"github.com/goliatone/go-metabox/pkg/submission"
)

// AssetsPrefix is where the component scripts are served.
const AssetsPrefix = "/assets/metabox/"

// Manager is the part of metabox.Manager the handlers use.
type Manager interface {
	Queues() []string
	Fields(queue string) ([]field.Field, bool)
	RenderQueue(ctx context.Context, w io.Writer, itemID, queue string) (mbrender.Result, error)
	SaveQueue(ctx context.Context, itemID, queue string, sub submission.Submission) (persist.Result, error)
	Assets(result mbrender.Result) components.Assets
	Template() rendertemplate.TemplateRenderer
}

// HiddenFieldsFunc returns extra hidden inputs for a form, such as a CSRF
// token.
type HiddenFieldsFunc func(r *http.Request) []mbrender.HiddenField

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMaxMemory caps the multipart memory used when parsing posts.
func WithMaxMemory(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxMemory = n
		}
	}
}

// WithHiddenFields adds hidden inputs to every rendered form.
func WithHiddenFields(fn HiddenFieldsFunc) Option {
	return func(h *Handler) {
		h.hidden = fn
	}
}

// Handler serves the admin edit forms of a Manager.
type Handler struct {
	manager   Manager
	logger    *slog.Logger
	maxMemory int64
	hidden    HiddenFieldsFunc
}

// NewHandler returns a Handler for manager.
func NewHandler(manager Manager, opts ...Option) *Handler {
	h := &Handler{
		manager:   manager,
		logger:    slog.Default(),
		maxMemory: submission.DefaultMaxMemory,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

var _ Manager = (*metabox.Manager)(nil)

// Routes returns the admin routes:
//
//	GET  /queues
//	GET  /items/{itemID}/queues/{queue}
//	POST /items/{itemID}/queues/{queue}
//	GET  /assets/metabox/*
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/queues", h.ListQueues)
	r.Get("/items/{itemID}/queues/{queue}", h.EditForm)
	r.Post("/items/{itemID}/queues/{queue}", h.SaveForm)
	r.Handle(AssetsPrefix+"*", http.StripPrefix(AssetsPrefix, http.FileServer(http.FS(mbrender.AssetsFS()))))
	return r
}

// QueueResponse describes one registered queue.
type QueueResponse struct {
	Name   string          `json:"name"`
	Fields []FieldResponse `json:"fields"`
}

// FieldResponse describes one registered field.
type FieldResponse struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Label    string `json:"label,omitempty"`
	DataType string `json:"data_type"`
	Storage  string `json:"storage"`
}

// SaveResponse is returned for JSON saves.
type SaveResponse struct {
	Item    string        `json:"item"`
	Queue   string        `json:"queue"`
	Saved   []string      `json:"saved"`
	Skipped []SkipDetails `json:"skipped,omitempty"`
}

// SkipDetails names a field that was not saved.
type SkipDetails struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListQueues lists queues and their fields in registration order.
func (h *Handler) ListQueues(w http.ResponseWriter, r *http.Request) {
	names := h.manager.Queues()
	resp := make([]QueueResponse, 0, len(names))
	for _, name := range names {
		fields, _ := h.manager.Fields(name)
		q := QueueResponse{Name: name, Fields: make([]FieldResponse, 0, len(fields))}
		for _, f := range fields {
			base := f.Base()
			q.Fields = append(q.Fields, FieldResponse{
				Name:     base.Name,
				Kind:     string(f.Kind()),
				Label:    base.Label,
				DataType: string(base.DataType),
				Storage:  string(base.Storage),
			})
		}
		resp = append(resp, q)
	}
	render.JSON(w, r, resp)
}

// EditForm renders the queue as a complete HTML form posting back to itself.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	queue := chi.URLParam(r, "queue")
	if _, ok := h.manager.Fields(queue); !ok {
		h.error(w, r, http.StatusNotFound, metabox.ErrUnknownQueue)
		return
	}

	var body bytes.Buffer
	result, err := h.manager.RenderQueue(r.Context(), &body, itemID, queue)
	if err != nil {
		h.logger.Error("metabox: render form", "item", itemID, "queue", queue, "error", err)
		h.error(w, r, http.StatusInternalServerError, err)
		return
	}

	hidden := mbrender.MergeHiddenFields(nil, mbrender.QueueFields(queue, itemID)...)
	if h.hidden != nil {
		hidden = mbrender.MergeHiddenFields(hidden, h.hidden(r)...)
	}

	var page bytes.Buffer
	err = mbrender.RenderForm(&page, h.manager.Template(), mbrender.FormPage{
		Title:  queue,
		Action: r.URL.Path,
		Body:   body.String(),
		Hidden: mbrender.SortedHiddenFields(hidden),
		Assets: h.manager.Assets(result),
	})
	if err != nil {
		h.logger.Error("metabox: render page", "item", itemID, "queue", queue, "error", err)
		h.error(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page.Bytes()); err != nil {
		h.logger.Debug("metabox: write form", "error", err)
	}
}

// SaveForm saves a posted form. Clients asking for JSON get a SaveResponse;
// browsers are redirected back to the form.
func (h *Handler) SaveForm(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	queue := chi.URLParam(r, "queue")

	values, err := submission.FromRequest(r, h.maxMemory)
	if err != nil {
		h.error(w, r, http.StatusBadRequest, err)
		return
	}
	if posted, ok := values.Lookup(mbrender.HiddenQueue); ok && posted != queue {
		h.error(w, r, http.StatusBadRequest, errors.New("form was rendered for another queue"))
		return
	}

	result, err := h.manager.SaveQueue(r.Context(), itemID, queue, values)
	switch {
	case errors.Is(err, metabox.ErrUnknownQueue):
		h.error(w, r, http.StatusNotFound, err)
		return
	case errors.Is(err, metabox.ErrItemRequired):
		h.error(w, r, http.StatusBadRequest, err)
		return
	case err != nil:
		h.error(w, r, http.StatusInternalServerError, err)
		return
	}

	if render.GetAcceptedContentType(r) == render.ContentTypeJSON {
		resp := SaveResponse{Item: itemID, Queue: queue, Saved: result.Saved}
		if resp.Saved == nil {
			resp.Saved = []string{}
		}
		for _, fe := range result.Errors {
			resp.Skipped = append(resp.Skipped, SkipDetails{Field: fe.Name, Error: fe.Err.Error()})
		}
		render.JSON(w, r, resp)
		return
	}
	http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
}

func (h *Handler) error(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("metabox: request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: err.Error()})
}
