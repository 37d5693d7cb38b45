package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/luxe-commerce/storefront/internal/models"
	"github.com/luxe-commerce/storefront/internal/utils"
)

// OrderRepository persists orders and their line items in Postgres. It is
// the concrete order persistence service behind the submission adapter; any
// error it returns is absorbed there, never propagated to the shopper.
type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// CreateOrder inserts the order record and returns its assigned identifier.
// Orders are create-once: nothing in this module updates them afterwards.
func (r *OrderRepository) CreateOrder(ctx context.Context, shipping models.ShippingInfo, total float64) (string, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := models.Order{
		ID:        uuid.New(),
		Shipping:  shipping,
		Total:     total,
		Status:    models.OrderStatusConfirmed,
		CreatedAt: time.Now(),
	}

	query := `
		INSERT INTO orders (id, customer_name, email, address, city, zip, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id
	`

	var id uuid.UUID

	err := r.DB.QueryRowContext(dbCtx, query,
		order.ID, order.Shipping.FullName, order.Shipping.Email, order.Shipping.AddressLine,
		order.Shipping.City, order.Shipping.PostalCode, order.Total, order.Status,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert order: %w", err)
	}

	return id.String(), nil
}

// CreateOrderItems inserts the line-item records for an already created
// order. A failure here leaves the order without items; the caller decides
// what that means.
func (r *OrderRepository) CreateOrderItems(ctx context.Context, orderID string, items []models.OrderLine) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	for _, item := range items {

		_, err := r.DB.ExecContext(dbCtx, query, uuid.New(), orderID, item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to insert order item for product %s: %w", item.ProductID, err)
		}
	}

	return nil
}
