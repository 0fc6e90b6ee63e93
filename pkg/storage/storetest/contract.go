// Package storetest holds the behavioural contract every storage.Store
// implementation is expected to satisfy. Store packages call Run from their own
// tests with a constructor for a fresh, empty store.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-metabox/pkg/storage"
)

// Factory returns an empty store. Cleanup should be registered on t.
type Factory func(t *testing.T) storage.Store

// Run executes the contract against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("ItemMetaAbsent", func(t *testing.T) {
		store := newStore(t)
		value, ok, err := store.ItemMeta(context.Background(), "42", "subtitle")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, "", value)
	})

	t.Run("ItemMetaRoundTrip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.SetItemMeta(ctx, "42", "subtitle", "Hello <world>"))
		value, ok, err := store.ItemMeta(ctx, "42", "subtitle")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Hello <world>", value)

		_, ok, err = store.ItemMeta(ctx, "43", "subtitle")
		require.NoError(t, err)
		assert.False(t, ok, "meta must be scoped to the item")
	})

	t.Run("ItemMetaLastWriteWins", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.SetItemMeta(ctx, "42", "count", "1"))
		require.NoError(t, store.SetItemMeta(ctx, "42", "count", "2"))
		value, _, err := store.ItemMeta(ctx, "42", "count")
		require.NoError(t, err)
		assert.Equal(t, "2", value)
	})

	t.Run("EmptyValueIsPresent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		require.NoError(t, store.SetItemMeta(ctx, "42", "note", ""))
		value, ok, err := store.ItemMeta(ctx, "42", "note")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "", value)
	})

	t.Run("ItemMetaRequiresItem", func(t *testing.T) {
		store := newStore(t)
		err := store.SetItemMeta(context.Background(), "", "subtitle", "x")
		assert.ErrorIs(t, err, storage.ErrItemRequired)
	})

	t.Run("SiteOptionRoundTrip", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		_, ok, err := store.SiteOption(ctx, "tagline")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.SetSiteOption(ctx, "tagline", "Just another site"))
		require.NoError(t, store.SetSiteOption(ctx, "tagline", "A better site"))
		value, ok, err := store.SiteOption(ctx, "tagline")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "A better site", value)

		_, ok, err = store.ItemMeta(ctx, "tagline", "tagline")
		require.NoError(t, err)
		assert.False(t, ok, "options and meta must not share a keyspace")
	})
}
