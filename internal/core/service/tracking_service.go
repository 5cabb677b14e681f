package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
	"github.com/nearshop/geocore/internal/metrics"
)

type trackingService struct {
	orders     ports.OrderRepository
	directions ports.Directions
	log        zerolog.Logger
}

// NewTrackingService returns a TrackingService.
func NewTrackingService(orders ports.OrderRepository, directions ports.Directions, log zerolog.Logger) ports.TrackingService {
	return &trackingService{orders: orders, directions: directions, log: log}
}

// Refresh fetches a fresh order snapshot and computes the delivery route
// relevant to its lifecycle stage. The branch is purely on the freshly
// observed status:
//
//   - no delivery agent position known → no delivery route
//   - PENDING → no delivery route (the shop→customer route from
//     discovery stays on display)
//   - otherwise → route from the delivery agent to the customer, with a
//     straight-line fallback when the provider fails
func (s *trackingService) Refresh(ctx context.Context, orderID string) (*ports.TrackingResult, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("refresh order %s: %w", orderID, err)
	}

	result := &ports.TrackingResult{Order: order}
	if order.DeliveryAgentLocation == nil || order.CustomerLocation == nil {
		return result, nil
	}
	if order.Status == domain.StatusPending {
		return result, nil
	}

	route, err := s.directions.Route(ctx, *order.DeliveryAgentLocation, *order.CustomerLocation)
	if err != nil {
		metrics.RouteLookupsTotal.WithLabelValues("fallback").Inc()
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("delivery route lookup failed, using fallback")
		fallback := domain.FallbackRoute(*order.DeliveryAgentLocation, *order.CustomerLocation)
		result.DeliveryRoute = &fallback
		return result, nil
	}

	metrics.RouteLookupsTotal.WithLabelValues("ok").Inc()
	result.DeliveryRoute = route

	s.log.Debug().
		Str("order_id", orderID).
		Str("status", string(order.Status)).
		Str("distance", route.DistanceText).
		Msg("delivery route refreshed")

	return result, nil
}

// ListOrders returns the customer's orders, optionally scoped to a shop.
func (s *trackingService) ListOrders(ctx context.Context, customerID, shopID string) ([]*domain.DeliveryOrder, error) {
	orders, err := s.orders.ListForCustomer(ctx, customerID, shopID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
