package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
)

// OrderLine is the persisted shape of one purchased line item.
type OrderLine struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order is the remote order record. Create-once: nothing in this module
// mutates an order after it has been written.
type Order struct {
	ID        uuid.UUID    `json:"id"`
	Shipping  ShippingInfo `json:"shipping"`
	Total     float64      `json:"total"`
	Status    OrderStatus  `json:"status"`
	Items     []OrderLine  `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}
