package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_GetAbsentKey(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := openTestStore(t)

	// Act
	value, ok, err := store.Get(ctx, "missing")

	// Assert
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestStore_SetThenGet(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := openTestStore(t)

	// Act
	require.NoError(t, store.Set(ctx, "k", `{"a":1}`))
	value, ok, err := store.Get(ctx, "k")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, value)
}

func TestStore_SetOverwrites(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Set(ctx, "k", "v1"))

	// Act
	require.NoError(t, store.Set(ctx, "k", "v2"))
	value, ok, err := store.Get(ctx, "k")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", value)
}

func TestStore_RemoveIsIdempotent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Set(ctx, "k", "v"))

	// Act
	require.NoError(t, store.Remove(ctx, "k"))
	require.NoError(t, store.Remove(ctx, "k"))

	// Assert
	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	// Arrange
	ctx := context.Background()
	path := t.TempDir() + "/authos.db"
	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Close())

	// Act
	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()
	value, ok, err := reopened.Get(ctx, "k")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", value)
}
