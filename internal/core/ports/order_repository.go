package ports

import (
	"context"

	"github.com/nearshop/geocore/internal/core/domain"
)

// OrderRepository fetches delivery order detail and per-customer order
// lists from the backing store.
type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*domain.DeliveryOrder, error)
	// ListForCustomer returns the customer's orders, optionally scoped to
	// one shop when shopID is non-empty.
	ListForCustomer(ctx context.Context, customerID, shopID string) ([]*domain.DeliveryOrder, error)
}
