package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-metabox/pkg/storage"
	"github.com/goliatone/go-metabox/pkg/storage/memory"
	"github.com/goliatone/go-metabox/pkg/storage/storetest"
)

func TestMemoryStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return memory.New()
	})
}

func TestMemoryStoreSnapshotIsCopy(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.SetItemMeta(ctx, "7", "title", "Hello"))

	snap := store.Snapshot("7")
	snap["title"] = "mutated"

	value, _, err := store.ItemMeta(ctx, "7", "title")
	require.NoError(t, err)
	assert.Equal(t, "Hello", value)
	assert.Nil(t, store.Snapshot("missing"))
}
