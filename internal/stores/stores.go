// Package stores opens the storage backend selected in the configuration.
package stores

import (
	"context"
	"fmt"

	"github.com/goliatone/go-metabox/internal/config"
	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/storage/file"
	"github.com/goliatone/go-metabox/pkg/storage/memory"
	"github.com/goliatone/go-metabox/pkg/storage/postgres"
	"github.com/goliatone/go-metabox/pkg/storage/redis"
	"github.com/goliatone/go-metabox/pkg/storage/sqlite"
)

// Open returns the configured store and a function releasing its resources.
// The close function is never nil.
func Open(ctx context.Context, cfg config.StoreConfig) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case config.DriverMemory, "":
		return memory.New(), noop, nil
	case config.DriverFile:
		store, err := file.Open(cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	case config.DriverPostgres:
		store, pool, err := postgres.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		return store, func() error { pool.Close(); return nil }, nil
	case config.DriverRedis:
		store, err := redis.Dial(ctx, cfg.RedisAddr, cfg.RedisPrefix)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("stores: unknown driver %q", cfg.Driver)
	}
}
