package kvstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luxe-commerce/storefront/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := t.Context()

	t.Run("Get Absent Key", func(t *testing.T) {
		store, err := kvstore.NewFile(t.TempDir())
		require.NoError(t, err)

		data, found, err := store.Get(ctx, "luxe-cart")

		require.NoError(t, err, "an absent key is not an error")
		assert.False(t, found)
		assert.Nil(t, data)
	})

	t.Run("Set Then Get", func(t *testing.T) {
		store, err := kvstore.NewFile(t.TempDir())
		require.NoError(t, err)

		value := []byte(`[{"product_id":"p1","quantity":1}]`)
		require.NoError(t, store.Set(ctx, "luxe-cart", value))

		data, found, err := store.Get(ctx, "luxe-cart")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, data)
	})

	t.Run("Set Overwrites", func(t *testing.T) {
		store, err := kvstore.NewFile(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Set(ctx, "luxe-cart", []byte("first")))
		require.NoError(t, store.Set(ctx, "luxe-cart", []byte("second")))

		data, found, err := store.Get(ctx, "luxe-cart")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("second"), data)
	})

	t.Run("Survives Reopen", func(t *testing.T) {
		dir := t.TempDir()

		store, err := kvstore.NewFile(dir)
		require.NoError(t, err)
		require.NoError(t, store.Set(ctx, "luxe-cart", []byte("persisted")))
		require.NoError(t, store.Close())

		reopened, err := kvstore.NewFile(dir)
		require.NoError(t, err)

		data, found, err := reopened.Get(ctx, "luxe-cart")

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, []byte("persisted"), data)
	})

	t.Run("Delete", func(t *testing.T) {
		store, err := kvstore.NewFile(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Set(ctx, "luxe-cart", []byte("x")))
		require.NoError(t, store.Delete(ctx, "luxe-cart"))

		_, found, err := store.Get(ctx, "luxe-cart")
		require.NoError(t, err)
		assert.False(t, found)

		// deleting again is fine
		assert.NoError(t, store.Delete(ctx, "luxe-cart"))
	})

	t.Run("No Temp File Left Behind", func(t *testing.T) {
		dir := t.TempDir()
		store, err := kvstore.NewFile(dir)
		require.NoError(t, err)

		require.NoError(t, store.Set(ctx, "luxe-cart", []byte("x")))

		_, err = os.Stat(filepath.Join(dir, "luxe-cart.tmp"))
		assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
	})
}

func TestMemoryStore(t *testing.T) {
	ctx := t.Context()
	store := kvstore.NewMemory()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "k", []byte("v")))

	data, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), data)

	// mutating the returned slice must not affect the stored copy
	data[0] = 'z'
	again, _, _ := store.Get(ctx, "k")
	assert.Equal(t, []byte("v"), again)

	require.NoError(t, store.Delete(ctx, "k"))
	_, found, _ = store.Get(ctx, "k")
	assert.False(t, found)
}
