package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-metabox"
	"github.com/goliatone/go-metabox/components/timezones"
	"github.com/goliatone/go-metabox/internal/config"
	"github.com/goliatone/go-metabox/internal/stores"
	"github.com/goliatone/go-metabox/pkg/definitions"
	"github.com/goliatone/go-metabox/pkg/field"
	"github.com/goliatone/go-metabox/pkg/storage"
)

// builtinCatalog holds the providers a definitions file can reference by name
// when run through the CLI.
func builtinCatalog() definitions.Catalog {
	return definitions.Catalog{
		Providers: map[string]field.OptionsProvider{
			timezones.ProviderName: timezones.Provider(),
		},
	}
}

type commandContext struct {
	configFlag      *string
	definitionsFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, definitionsFlag *string) *commandContext {
	return &commandContext{
		configFlag:      configFlag,
		definitionsFlag: definitionsFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.definitionsFlag != nil && strings.TrimSpace(*c.definitionsFlag) != "" {
			cfg.Definitions = strings.TrimSpace(*c.definitionsFlag)
		}
		c.config = &cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.config != nil {
		level, _ = c.config.Level()
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadDefinitions parses the configured definitions file.
func (c *commandContext) loadDefinitions() (definitions.Document, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return definitions.Document{}, err
	}
	if cfg.Definitions == "" {
		return definitions.Document{}, errors.New("no definitions file: pass --definitions or set METABOX_DEFINITIONS")
	}
	return definitions.LoadFile(cfg.Definitions)
}

// withManager opens the configured store, registers the definitions and hands
// both to fn. The store is closed when fn returns.
func (c *commandContext) withManager(cmd *cobra.Command, fn func(*metabox.Manager, storage.Store, *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	doc, err := c.loadDefinitions()
	if err != nil {
		return err
	}
	logger := c.logger(cmd.ErrOrStderr())

	store, closeStore, err := stores.Open(cmd.Context(), cfg.Store)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("metabox: close store", "error", err)
		}
	}()

	manager, err := metabox.New(store,
		metabox.WithLogger(logger),
		metabox.WithAttachmentResolver(storage.URLPattern(cfg.MediaURLPattern)),
		metabox.WithTemplateDir(cfg.Templates),
	)
	if err != nil {
		return err
	}
	if err := doc.Apply(manager, builtinCatalog()); err != nil {
		return err
	}
	return fn(manager, store, logger)
}
