package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/submission"
)

// Result describes one SaveQueue call.
type Result struct {
	// Saved lists the names written, in order.
	Saved []string
	// Errors holds fields skipped because their value could not be coerced.
	Errors field.Errors
}

// Option configures a Saver.
type Option func(*Saver)

// WithSanitizer sets the text sanitizer applied during coercion.
func WithSanitizer(s field.Sanitizer) Option {
	return func(sv *Saver) {
		sv.sanitizer = s
	}
}

// WithLogger sets the logger used for skipped fields.
func WithLogger(logger *slog.Logger) Option {
	return func(sv *Saver) {
		if logger != nil {
			sv.logger = logger
		}
	}
}

// Saver writes submitted values for a queue of fields.
type Saver struct {
	store     storage.Writer
	sanitizer field.Sanitizer
	logger    *slog.Logger
}

// NewSaver returns a Saver writing to store. Without WithSanitizer text is
// stored as submitted.
func NewSaver(store storage.Writer, opts ...Option) (*Saver, error) {
	if store == nil {
		return nil, errors.New("persist: store is required")
	}
	sv := &Saver{store: store, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(sv)
		}
	}
	return sv, nil
}

// SaveQueue coerces and writes every field in order. For each field the
// BeforeSave hook runs, then the store write, then AfterSave, all with the
// same coerced value.
//
// A field whose value cannot be coerced is logged and skipped. A failing write
// stops the loop and is returned; fields already written stay written.
func (s *Saver) SaveQueue(ctx context.Context, itemID string, fields []field.Field, sub submission.Submission) (Result, error) {
	var result Result
	if sub == nil {
		sub = submission.Map(nil)
	}

	for _, f := range fields {
		if f == nil {
			result.Errors = append(result.Errors, field.Error{Err: field.ErrNilField})
			continue
		}
		base := f.Base()
		if base.Name == "" {
			result.Errors = append(result.Errors, field.Error{Err: field.ErrNameRequired})
			continue
		}

		raw, present := sub.Lookup(base.Name)
		value, err := field.Coerce(raw, present, base.DataType, s.sanitizer)
		if err != nil {
			s.logger.Error("metabox: field not saved",
				"item", itemID, "field", base.Name, "data_type", base.DataType, "error", err)
			result.Errors = append(result.Errors, field.Error{Name: base.Name, Err: err})
			continue
		}

		if base.BeforeSave != nil {
			base.BeforeSave(ctx, itemID, value)
		}
		if err := storage.WriteValue(ctx, s.store, f, itemID, value.Encode()); err != nil {
			return result, fmt.Errorf("persist: save %q: %w", base.Name, err)
		}
		result.Saved = append(result.Saved, base.Name)
		if base.AfterSave != nil {
			base.AfterSave(ctx, itemID, value)
		}
	}
	return result, nil
}
