package models

// Product is the narrow catalog shape the cart accepts. The catalog itself
// lives behind an external data source; only these four fields are required
// of any addable item.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
}
