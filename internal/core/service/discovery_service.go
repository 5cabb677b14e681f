package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/geo"
	"github.com/nearshop/geocore/internal/core/ports"
	"github.com/nearshop/geocore/internal/metrics"
)

const defaultRadiusMeters = 10000

type discoveryService struct {
	shops      ports.ShopRepository
	directions ports.Directions
	radius     float64
	log        zerolog.Logger
}

// NewDiscoveryService returns a DiscoveryService with the given default
// radius. A non-positive radius selects the 10 km default.
func NewDiscoveryService(shops ports.ShopRepository, directions ports.Directions, radiusMeters float64, log zerolog.Logger) ports.DiscoveryService {
	if radiusMeters <= 0 {
		radiusMeters = defaultRadiusMeters
	}
	return &discoveryService{
		shops:      shops,
		directions: directions,
		radius:     radiusMeters,
		log:        log,
	}
}

// Discover runs one full, independent discovery pass: fetch candidates,
// parse geofences, filter by distance to each shop's representative
// point, flag containment, and enrich every survivor with a route.
func (s *discoveryService) Discover(ctx context.Context, in ports.DiscoverInput) (*ports.DiscoverResult, error) {
	if !in.Center.Valid() {
		return nil, domain.ErrInvalidCoordinate
	}
	radius := in.RadiusMeters
	if radius <= 0 {
		radius = s.radius
	}

	start := time.Now()
	records, err := s.shops.ListForCustomer(ctx, in.CustomerID)
	if err != nil {
		metrics.DiscoveriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("discover: list shops: %w", err)
	}

	shops := make([]domain.Shop, 0, len(records))
	for _, rec := range records {
		polygon := domain.ParseGeofence([]byte(rec.GeofenceJSON))
		if polygon.Empty() {
			metrics.GeofenceDropsTotal.Inc()
			s.log.Debug().Str("shop_id", rec.ID).Msg("geofence unparseable, shop dropped")
			continue
		}
		if geo.Distance(in.Center, polygon[0]) > radius {
			continue
		}
		shops = append(shops, domain.Shop{
			ID:         rec.ID,
			Name:       rec.Name,
			Location:   rec.Location,
			PostalCode: rec.Pincode,
			Geofence:   polygon,
			Inside:     geo.PointInPolygon(in.Center, polygon),
		})
	}

	routes := s.fetchRoutes(ctx, in.Center, shops)

	metrics.DiscoveriesTotal.WithLabelValues("ok").Inc()
	metrics.DiscoveryDuration.Observe(time.Since(start).Seconds())
	s.log.Info().
		Str("customer_id", in.CustomerID).
		Int("candidates", len(records)).
		Int("matched", len(shops)).
		Msg("discovery pass completed")

	return &ports.DiscoverResult{Center: in.Center, Shops: shops, Routes: routes}, nil
}

// fetchRoutes requests one route per shop concurrently and joins on all
// of them. A failed lookup yields the straight-line fallback for that
// shop only; it never blocks or fails the others.
func (s *discoveryService) fetchRoutes(ctx context.Context, center domain.Coordinate, shops []domain.Shop) map[string]domain.RouteSummary {
	routes := make(map[string]domain.RouteSummary, len(shops))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, shop := range shops {
		rep, ok := shop.RepresentativePoint()
		if !ok {
			continue
		}
		wg.Add(1)
		go func(shopID string, to domain.Coordinate) {
			defer wg.Done()
			summary := s.routeOrFallback(ctx, shopID, center, to)
			mu.Lock()
			routes[shopID] = summary
			mu.Unlock()
		}(shop.ID, rep)
	}
	wg.Wait()

	return routes
}

func (s *discoveryService) routeOrFallback(ctx context.Context, shopID string, from, to domain.Coordinate) domain.RouteSummary {
	route, err := s.directions.Route(ctx, from, to)
	if err != nil {
		metrics.RouteLookupsTotal.WithLabelValues("fallback").Inc()
		s.log.Warn().Err(err).Str("shop_id", shopID).Msg("route lookup failed, using fallback")
		return domain.FallbackRoute(from, to)
	}
	metrics.RouteLookupsTotal.WithLabelValues("ok").Inc()
	return *route
}
