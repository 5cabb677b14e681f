package ports

import (
	"context"

	"github.com/nearshop/geocore/internal/core/domain"
)

// TrackingResult is a point-in-time snapshot of an order in delivery.
// DeliveryRoute is nil while the order is PENDING or no delivery agent
// position is known; the shop→customer route shown in that phase belongs
// to the discovery service and is not recomputed here.
type TrackingResult struct {
	Order         *domain.DeliveryOrder
	DeliveryRoute *domain.RouteSummary
}

// TrackingService reacts to the order lifecycle reported by the backend.
// It is a pull model: each Refresh fetches a fresh order snapshot and
// recomputes the relevant route; freshness is only as good as the last
// call.
type TrackingService interface {
	Refresh(ctx context.Context, orderID string) (*TrackingResult, error)
	ListOrders(ctx context.Context, customerID, shopID string) ([]*domain.DeliveryOrder, error)
}
