package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/submission"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPromptDriver overrides the prompt driver, which defaults to survey.
func WithPromptDriver(driver PromptDriver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// Collector prompts for each field of a queue on a terminal and returns the
// answers in the same shape a browser form post would have.
type Collector struct {
	store  storage.Reader
	driver PromptDriver
}

// New returns a Collector that pre-fills prompts from store.
func New(store storage.Reader, opts ...Option) *Collector {
	c := &Collector{store: store}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver(nil)
	}
	return c
}

// Collect asks for every field in order. Unchecked checkboxes leave their key
// out of the submission, exactly like an HTML form.
func (c *Collector) Collect(ctx context.Context, itemID string, fields []field.Field) (submission.Map, error) {
	out := submission.Map{}
	for _, f := range fields {
		if f == nil {
			continue
		}
		base := f.Base()
		stored := ""
		if c.store != nil {
			value, err := storage.ReadValue(ctx, c.store, f, itemID)
			if err != nil {
				return nil, fmt.Errorf("tui: read %q: %w", base.Name, err)
			}
			stored = value
		}

		value, present, err := c.ask(ctx, f, itemID, stored)
		if err != nil {
			return nil, fmt.Errorf("tui: %q: %w", base.Name, err)
		}
		if present {
			out[base.Name] = value
		}
	}
	return out, nil
}

func (c *Collector) ask(ctx context.Context, f field.Field, itemID, stored string) (string, bool, error) {
	base := f.Base()
	message := promptMessage(base)

	switch v := f.(type) {
	case field.Checkbox:
		checked, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: field.Checked(stored),
			Help:    base.Description,
		})
		if err != nil || !checked {
			return "", false, err
		}
		return field.CheckboxValue, true, nil

	case field.Radio:
		return c.choose(ctx, base, v.Choices, itemID, stored)

	case field.Select:
		return c.choose(ctx, base, v.Choices, itemID, stored)

	case field.RichText:
		text, err := c.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: stored,
			Help:    base.Description,
		})
		return text, err == nil, err

	case field.Number:
		def := stored
		if stored != "" {
			def = field.DisplayValue(v, stored)
		}
		text, err := c.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   def,
			Help:      base.Description,
			Validator: validateNumber,
		})
		return text, err == nil, err

	default:
		text, err := c.driver.Input(ctx, InputConfig{
			Message: message,
			Default: stored,
			Help:    base.Description,
		})
		return text, err == nil, err
	}
}

func (c *Collector) choose(ctx context.Context, base field.Common, choices field.Choices, itemID, stored string) (string, bool, error) {
	options, err := choices.Resolve(ctx, itemID)
	if err != nil {
		return "", false, err
	}
	if len(options) == 0 {
		if err := c.driver.Info(ctx, fmt.Sprintf("%s: %v", promptMessage(base), ErrNoOptions)); err != nil {
			return "", false, err
		}
		return stored, true, nil
	}

	labels := make([]string, len(options))
	selected := 0
	for i, opt := range options {
		labels[i] = opt.Label
		if opt.Label == "" {
			labels[i] = opt.Key
		}
		if opt.Key == stored {
			selected = i
		}
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      promptMessage(base),
		Options:      labels,
		DefaultIndex: selected,
		Help:         base.Description,
	})
	if err != nil {
		return "", false, err
	}
	if idx < 0 || idx >= len(options) {
		return "", false, fmt.Errorf("selection %d out of range", idx)
	}
	return options[idx].Key, true, nil
}

func promptMessage(base field.Common) string {
	if label := strings.TrimSpace(base.Label); label != "" {
		return label
	}
	return base.Name
}

func validateNumber(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	return nil
}
