package ports

import (
	"context"

	"github.com/nearshop/geocore/internal/core/domain"
)

// DiscoverInput carries the parameters of one discovery pass.
type DiscoverInput struct {
	CustomerID string
	Center     domain.Coordinate
	// RadiusMeters limits candidates by distance to their representative
	// point, boundary inclusive. Zero or negative selects the service
	// default.
	RadiusMeters float64
}

// DiscoverResult pairs the filtered shops with their route summaries.
// Every route was computed against Center; results from calls with
// different centers must never be mixed. Overlapping calls follow a
// last-completed-wins policy on the caller's side.
type DiscoverResult struct {
	Center domain.Coordinate
	Shops  []domain.Shop
	// Routes maps shop ID to the route from Center to the shop's
	// representative point. A provider failure for one shop yields the
	// "N/A" fallback entry, never a missing key or a failed call.
	Routes map[string]domain.RouteSummary
}

// DiscoveryService filters shops around a center coordinate and enriches
// them with route information.
type DiscoveryService interface {
	Discover(ctx context.Context, in DiscoverInput) (*DiscoverResult, error)
}
