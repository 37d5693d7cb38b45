package kvstore_test

import (
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/luxe-commerce/storefront/internal/kvstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T) (*kvstore.Redis, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	store := kvstore.NewRedis(client)

	return store, mock
}

func TestRedisGet(t *testing.T) {
	ctx := t.Context()
	testKey := "luxe-cart"
	testValue := []byte(`[{"product_id":"p1","quantity":2}]`)

	t.Run("Success - Key Found", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectGet(testKey).SetVal(string(testValue))

		// Act
		data, found, err := store.Get(ctx, testKey)

		// Assert
		require.NoError(t, err)
		assert.True(t, found, "Get should return found=true when key exists")
		assert.Equal(t, testValue, data)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Success - Key Absent", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectGet(testKey).SetErr(redis.Nil)

		// Act
		data, found, err := store.Get(ctx, testKey)

		// Assert
		require.NoError(t, err, "an absent key is not an error")
		assert.False(t, found)
		assert.Nil(t, data)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectGet(testKey).SetErr(errors.New("connection refused"))

		// Act
		_, found, err := store.Get(ctx, testKey)

		// Assert
		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestRedisSet(t *testing.T) {
	ctx := t.Context()
	testKey := "luxe-cart"
	testValue := []byte(`[]`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectSet(testKey, testValue, 0).SetVal("OK")

		// Act
		err := store.Set(ctx, testKey, testValue)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectSet(testKey, testValue, 0).SetErr(errors.New("readonly replica"))

		// Act
		err := store.Set(ctx, testKey, testValue)

		// Assert
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}

func TestRedisDelete(t *testing.T) {
	ctx := t.Context()
	testKey := "luxe-cart"

	t.Run("Success", func(t *testing.T) {
		// Arrange
		store, mock := setupRedisStore(t)
		mock.ExpectDel(testKey).SetVal(1)

		// Act
		err := store.Delete(ctx, testKey)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet(), "Redis mock expectations not met")
	})
}
