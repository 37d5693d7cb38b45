package service_test

import (
	"context"

	"github.com/luxe-commerce/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockOrderAPI struct {
	mock.Mock
}

func (m *mockOrderAPI) CreateOrder(ctx context.Context, shipping models.ShippingInfo, total float64) (string, error) {
	args := m.Called(ctx, shipping, total)

	return args.String(0), args.Error(1)
}

func (m *mockOrderAPI) CreateOrderItems(ctx context.Context, orderID string, items []models.OrderLine) error {
	args := m.Called(ctx, orderID, items)

	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendOrderConfirmation(ctx context.Context, to string, orderID string, total float64) error {
	args := m.Called(ctx, to, orderID, total)

	return args.Error(0)
}
