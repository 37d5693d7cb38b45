package repository_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/luxe-commerce/storefront/internal/models"
	repository "github.com/luxe-commerce/storefront/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderRepoTest(t *testing.T) (*repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewOrderRepository(db)
	require.NotNil(t, repo, "NewOrderRepository should return a non-nil repository")

	return repo, mock
}

var testShippingInfo = models.ShippingInfo{
	FullName:    "John Doe",
	Email:       "john@example.com",
	AddressLine: "123 Main Street",
	City:        "New York",
	PostalCode:  "10001",
}

func TestCreateOrder(t *testing.T) {
	ctx := t.Context()

	expectedInsertSQL := regexp.QuoteMeta(`
		INSERT INTO orders (id, customer_name, email, address, city, zip, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id
	`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		assignedID := uuid.New()

		mock.ExpectQuery(expectedInsertSQL).
			WithArgs(sqlmock.AnyArg(), "John Doe", "john@example.com", "123 Main Street",
				"New York", "10001", 25.00, string(models.OrderStatusConfirmed)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(assignedID.String()))

		// Act
		orderID, err := repo.CreateOrder(ctx, testShippingInfo, 25.00)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, assignedID.String(), orderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Insert Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		dbError := errors.New("connection reset")

		mock.ExpectQuery(expectedInsertSQL).WillReturnError(dbError)

		// Act
		orderID, err := repo.CreateOrder(ctx, testShippingInfo, 25.00)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		assert.Empty(t, orderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateOrderItems(t *testing.T) {
	ctx := t.Context()
	orderID := uuid.NewString()

	items := []models.OrderLine{
		{ProductID: "p-scarf", Quantity: 2, UnitPrice: 10.00},
		{ProductID: "p-cuff", Quantity: 1, UnitPrice: 5.00},
	}

	expectedItemInsertSQL := regexp.QuoteMeta(`
		INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)

		mock.ExpectExec(expectedItemInsertSQL).
			WithArgs(sqlmock.AnyArg(), orderID, "p-scarf", 2, 10.00).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(expectedItemInsertSQL).
			WithArgs(sqlmock.AnyArg(), orderID, "p-cuff", 1, 5.00).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.CreateOrderItems(ctx, orderID, items)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Second Insert Fails", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		dbError := errors.New("quota exceeded")

		mock.ExpectExec(expectedItemInsertSQL).
			WithArgs(sqlmock.AnyArg(), orderID, "p-scarf", 2, 10.00).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(expectedItemInsertSQL).
			WithArgs(sqlmock.AnyArg(), orderID, "p-cuff", 1, 5.00).
			WillReturnError(dbError)

		// Act
		err := repo.CreateOrderItems(ctx, orderID, items)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No Items", func(t *testing.T) {
		repo, mock := setupOrderRepoTest(t)

		err := repo.CreateOrderItems(ctx, orderID, nil)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
