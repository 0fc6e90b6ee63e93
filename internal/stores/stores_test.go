package stores

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-metabox/internal/config"
	"github.com/goliatone/go-metabox/pkg/storage/file"
	"github.com/goliatone/go-metabox/pkg/storage/memory"
	"github.com/goliatone/go-metabox/pkg/storage/redis"
	"github.com/goliatone/go-metabox/pkg/storage/sqlite"
)

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	mr := miniredis.RunT(t)

	cases := []struct {
		name  string
		cfg   config.StoreConfig
		check func(t *testing.T, store any)
	}{
		{"memory", config.StoreConfig{Driver: config.DriverMemory}, func(t *testing.T, s any) { assert.IsType(t, &memory.Store{}, s) }},
		{"file", config.StoreConfig{Driver: config.DriverFile, Path: filepath.Join(dir, "meta.json")}, func(t *testing.T, s any) { assert.IsType(t, &file.Store{}, s) }},
		{"sqlite", config.StoreConfig{Driver: config.DriverSQLite, Path: filepath.Join(dir, "meta.db")}, func(t *testing.T, s any) { assert.IsType(t, &sqlite.Store{}, s) }},
		{"redis", config.StoreConfig{Driver: config.DriverRedis, RedisAddr: mr.Addr(), RedisPrefix: "test"}, func(t *testing.T, s any) { assert.IsType(t, &redis.Store{}, s) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, closeFn, err := Open(ctx, tc.cfg)
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			tc.check(t, store)

			require.NoError(t, store.SetItemMeta(ctx, "1", "title", "Hello"))
			value, ok, err := store.ItemMeta(ctx, "1", "title")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "Hello", value)
			assert.NoError(t, closeFn())
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, closeFn, err := Open(context.Background(), config.StoreConfig{Driver: "mongo"})
	require.Error(t, err)
	assert.NotNil(t, closeFn)
}
