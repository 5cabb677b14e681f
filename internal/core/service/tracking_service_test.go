package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	orders map[string]*domain.DeliveryOrder
	list   []*domain.DeliveryOrder
	err    error
}

func (r *stubOrderRepo) FindByID(_ context.Context, orderID string) (*domain.DeliveryOrder, error) {
	if r.err != nil {
		return nil, r.err
	}
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *order
	return &clone, nil
}

func (r *stubOrderRepo) ListForCustomer(_ context.Context, _, _ string) ([]*domain.DeliveryOrder, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.list, nil
}

// failingDirections always reports a provider failure for routes.
type failingDirections struct{ stubDirections }

func (d *failingDirections) Route(_ context.Context, _, _ domain.Coordinate) (*domain.RouteSummary, error) {
	return nil, domain.ErrRouteFailed
}

var (
	agentLoc    = domain.Coordinate{Lat: 17.40, Lng: 78.48}
	customerLoc = domain.Coordinate{Lat: 17.385, Lng: 78.4867}
)

func orderWith(status domain.OrderStatus, agent, customer *domain.Coordinate) *stubOrderRepo {
	return &stubOrderRepo{orders: map[string]*domain.DeliveryOrder{
		"o1": {
			ID:                    "o1",
			CustomerID:            "c1",
			Status:                status,
			DeliveryAgentLocation: agent,
			CustomerLocation:      customer,
		},
	}}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRefresh_PendingWithoutAgentHasNoRoute(t *testing.T) {
	repo := orderWith(domain.StatusPending, nil, &customerLoc)
	svc := NewTrackingService(repo, &stubDirections{}, zerolog.Nop())

	res, err := svc.Refresh(context.Background(), "o1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.DeliveryRoute != nil {
		t.Fatalf("pending order without agent must have nil delivery route, got %+v", res.DeliveryRoute)
	}
}

func TestRefresh_PendingWithAgentStillHasNoRoute(t *testing.T) {
	repo := orderWith(domain.StatusPending, &agentLoc, &customerLoc)
	directions := &stubDirections{}
	svc := NewTrackingService(repo, directions, zerolog.Nop())

	res, err := svc.Refresh(context.Background(), "o1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.DeliveryRoute != nil {
		t.Fatal("PENDING keeps the discovery route on display; no delivery route expected")
	}
	if len(directions.calls) != 0 {
		t.Fatalf("no route lookup expected while pending, saw %d", len(directions.calls))
	}
}

func TestRefresh_InTransitRoutesAgentToCustomer(t *testing.T) {
	repo := orderWith(domain.StatusInTransit, &agentLoc, &customerLoc)
	directions := &stubDirections{}
	svc := NewTrackingService(repo, directions, zerolog.Nop())

	res, err := svc.Refresh(context.Background(), "o1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.DeliveryRoute == nil {
		t.Fatal("expected a delivery route for IN_TRANSIT order")
	}
	if len(directions.calls) != 1 {
		t.Fatalf("expected 1 route call, got %d", len(directions.calls))
	}
	if directions.calls[0][0] != agentLoc || directions.calls[0][1] != customerLoc {
		t.Fatalf("route must go agent→customer, got %+v", directions.calls[0])
	}
}

func TestRefresh_AcceptedWithoutAgentHasNoRoute(t *testing.T) {
	repo := orderWith(domain.StatusAccepted, nil, &customerLoc)
	svc := NewTrackingService(repo, &stubDirections{}, zerolog.Nop())

	res, err := svc.Refresh(context.Background(), "o1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if res.DeliveryRoute != nil {
		t.Fatal("no agent position known, expected nil delivery route")
	}
}

func TestRefresh_ProviderFailureFallsBack(t *testing.T) {
	repo := orderWith(domain.StatusInTransit, &agentLoc, &customerLoc)
	svc := NewTrackingService(repo, &failingDirections{}, zerolog.Nop())

	res, err := svc.Refresh(context.Background(), "o1")
	if err != nil {
		t.Fatalf("provider failure must not fail the refresh: %v", err)
	}
	route := res.DeliveryRoute
	if route == nil {
		t.Fatal("expected the fallback route, got nil")
	}
	if route.DistanceText != domain.NotAvailable || route.DurationText != domain.NotAvailable {
		t.Fatalf("expected N/A fallback texts, got %q/%q", route.DistanceText, route.DurationText)
	}
	if len(route.Polyline) != 2 || route.Polyline[0] != agentLoc || route.Polyline[1] != customerLoc {
		t.Fatalf("fallback polyline must be the straight agent→customer line, got %+v", route.Polyline)
	}
}

func TestRefresh_OrderNotFound(t *testing.T) {
	svc := NewTrackingService(&stubOrderRepo{orders: map[string]*domain.DeliveryOrder{}}, &stubDirections{}, zerolog.Nop())

	_, err := svc.Refresh(context.Background(), "missing")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestListOrders_Passthrough(t *testing.T) {
	repo := &stubOrderRepo{list: []*domain.DeliveryOrder{{ID: "o1"}, {ID: "o2"}}}
	svc := NewTrackingService(repo, &stubDirections{}, zerolog.Nop())

	orders, err := svc.ListOrders(context.Background(), "c1", "s1")
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
}
