package file_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/storage/file"
	"github.com/goliatone/go-metabox/pkg/storage/storetest"
)

func TestFileStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		store, err := file.Open(filepath.Join(t.TempDir(), "values.json"))
		require.NoError(t, err)
		return store
	})
}

func TestFileStorePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "values.json")
	ctx := context.Background()

	first, err := file.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.SetItemMeta(ctx, "42", "rating", "4.5"))
	require.NoError(t, first.SetSiteOption(ctx, "tagline", "hello"))

	second, err := file.Open(path)
	require.NoError(t, err)

	value, ok, err := second.ItemMeta(ctx, "42", "rating")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4.5", value)

	value, ok, err = second.SiteOption(ctx, "tagline")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", value)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "items")
	assert.Contains(t, doc, "options")
}

func TestFileStoreEmptyFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	store, err := file.Open(path)
	require.NoError(t, err)
	_, ok, err := store.SiteOption(context.Background(), "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStoreRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := file.Open(path)
	assert.Error(t, err)
}
