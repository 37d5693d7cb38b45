package service

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/luxe-commerce/storefront/internal/metrics"
	"github.com/luxe-commerce/storefront/internal/models"
)

// OrderAPI is the remote order persistence service. Either call may fail for
// any reason (network, validation, quota); the submitter treats all failures
// uniformly.
type OrderAPI interface {
	CreateOrder(ctx context.Context, shipping models.ShippingInfo, total float64) (string, error)
	CreateOrderItems(ctx context.Context, orderID string, items []models.OrderLine) error
}

// OrderSubmitter attempts to persist an order remotely and absorbs every
// failure into a locally synthesized confirmation identifier, so checkout
// always completes from the shopper's point of view. The cost is possible
// silent data loss on the backend; fallbacks are logged and counted.
type OrderSubmitter struct {
	api OrderAPI
}

func NewOrderSubmitter(api OrderAPI) *OrderSubmitter {
	return &OrderSubmitter{api: api}
}

// Submit never returns an error. A partial failure, where the order record
// was created but the line items were not, also falls back.
func (s *OrderSubmitter) Submit(ctx context.Context, snapshot models.CartSnapshot, shipping models.ShippingInfo) string {

	orderID, err := s.api.CreateOrder(ctx, shipping, snapshot.Total)
	if err == nil {

		items := make([]models.OrderLine, 0, len(snapshot.Lines))
		for _, line := range snapshot.Lines {
			items = append(items, models.OrderLine{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
			})
		}

		if err = s.api.CreateOrderItems(ctx, orderID, items); err == nil {
			metrics.RecordSubmission("remote")

			return orderID
		}
	}

	slog.Warn("Order submission failed, issuing local confirmation id",
		slog.String("error", err.Error()),
		slog.Float64("total", snapshot.Total),
	)
	metrics.RecordSubmission("fallback")

	return FallbackOrderID(time.Now())
}

// FallbackOrderID synthesizes a confirmation identifier of the shape
// LUXE-<base36 millisecond timestamp, uppercased>.
func FallbackOrderID(now time.Time) string {
	return "LUXE-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}
