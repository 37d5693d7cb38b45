package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/luxe-commerce/storefront/internal/kvstore"
	"github.com/luxe-commerce/storefront/internal/metrics"
	"github.com/luxe-commerce/storefront/internal/models"
)

// CartStorageKey is the fixed, namespaced key the cart persists under.
const CartStorageKey = "luxe-cart"

// CartService owns the shopper's selected line items. Every mutation
// synchronously serializes the full line list to the backing store, so the
// cart survives a restart. Count and Total are recomputed from the lines on
// every read, never cached.
type CartService struct {
	mu    sync.Mutex
	store kvstore.Store
	lines []models.CartLine
	open  bool
}

// NewCartService loads any previously persisted cart. Absent or corrupt
// data initializes an empty cart rather than failing.
func NewCartService(ctx context.Context, store kvstore.Store) *CartService {
	s := &CartService{store: store}

	data, found, err := store.Get(ctx, CartStorageKey)
	if err != nil {
		slog.Warn("Failed to read persisted cart, starting empty", slog.String("error", err.Error()))
		return s
	}

	if !found {
		return s
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		slog.Warn("Persisted cart is corrupt, starting empty", slog.String("error", err.Error()))
		return s
	}

	s.lines = lines

	return s
}

// AddItem merges the product into the cart: an existing line for the same
// product id gets its quantity incremented, otherwise a new line is inserted
// with quantity 1 and the product's current name, price and image snapshotted.
// Adding an item also opens the cart view.
func (s *CartService) AddItem(ctx context.Context, product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false

	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity++
			merged = true

			break
		}
	}

	if !merged {
		s.lines = append(s.lines, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  1,
			ImageURL:  product.ImageURL,
		})
	}

	s.open = true
	s.persist(ctx)
	metrics.RecordCartOp("add")
}

// UpdateQuantity applies delta to the matching line. A quantity that falls
// to zero or below removes the line entirely. Unknown product ids are a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, productID string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}

		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}

		s.persist(ctx)
		metrics.RecordCartOp("update")

		return
	}
}

// RemoveItem deletes the line unconditionally if present.
func (s *CartService) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			metrics.RecordCartOp("remove")

			return
		}
	}
}

// Clear empties the cart; invoked after a completed purchase.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
	metrics.RecordCartOp("clear")
}

func (s *CartService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return countLines(s.lines)
}

func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return totalLines(s.lines)
}

// Lines returns a copy of the current line items.
func (s *CartService) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyLines(s.lines)
}

// Snapshot captures the lines with their derived count and total.
func (s *CartService) Snapshot() models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.CartSnapshot{
		Lines: copyLines(s.lines),
		Count: countLines(s.lines),
		Total: totalLines(s.lines),
	}
}

func (s *CartService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.open
}

func (s *CartService) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = open
}

// persist writes the full line list under the fixed key. A write failure is
// logged and swallowed: cart mutations never fail, the durable copy is best
// effort. Callers must hold s.mu.
func (s *CartService) persist(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		slog.Error("Failed to serialize cart", slog.String("error", err.Error()))
		return
	}

	if err := s.store.Set(ctx, CartStorageKey, data); err != nil {
		slog.Error("Failed to persist cart", slog.String("error", err.Error()))
	}
}

func countLines(lines []models.CartLine) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}

	return count
}

func totalLines(lines []models.CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.Subtotal()
	}

	return total
}

func copyLines(lines []models.CartLine) []models.CartLine {
	cp := make([]models.CartLine, len(lines))
	copy(cp, lines)

	return cp
}
