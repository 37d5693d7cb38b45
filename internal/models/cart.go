package models

// CartLine is one product entry in the cart. Name, price and image are
// snapshotted from the catalog at the time the item is added, so later
// catalog changes do not alter lines already in the cart.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// CartSnapshot is a derived, point-in-time view of the cart. Count and
// Total are always recomputed from the lines, never stored separately.
type CartSnapshot struct {
	Lines []CartLine `json:"lines"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

type AddItemRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Name      string  `json:"name"       validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	ImageURL  string  `json:"image_url"`
}

type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type SetCartOpenRequest struct {
	Open bool `json:"open"`
}
