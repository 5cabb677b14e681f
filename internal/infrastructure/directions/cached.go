package directions

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
	"github.com/nearshop/geocore/internal/metrics"
)

// RouteCache is the read-through store CachedDirections consults before
// calling the provider.
type RouteCache interface {
	Get(ctx context.Context, from, to domain.Coordinate) (*domain.RouteSummary, bool)
	Put(ctx context.Context, from, to domain.Coordinate, route *domain.RouteSummary) error
}

// CachedDirections decorates a Directions implementation with a route
// cache. Geocoding calls pass through untouched; only Route lookups are
// cached, since tracking polls repeat the same pair every few seconds.
type CachedDirections struct {
	inner ports.Directions
	cache RouteCache
	log   zerolog.Logger
}

// NewCachedDirections wraps inner with cache.
func NewCachedDirections(inner ports.Directions, cache RouteCache, log zerolog.Logger) *CachedDirections {
	return &CachedDirections{inner: inner, cache: cache, log: log}
}

func (d *CachedDirections) Geocode(ctx context.Context, address string) (*ports.GeocodeResult, error) {
	return d.inner.Geocode(ctx, address)
}

func (d *CachedDirections) ReverseGeocode(ctx context.Context, at domain.Coordinate) (*ports.ReverseGeocodeResult, error) {
	return d.inner.ReverseGeocode(ctx, at)
}

// Route serves from the cache when possible. Provider failures are never
// cached; the next poll retries the provider.
func (d *CachedDirections) Route(ctx context.Context, from, to domain.Coordinate) (*domain.RouteSummary, error) {
	if route, ok := d.cache.Get(ctx, from, to); ok {
		metrics.RouteCacheTotal.WithLabelValues("hit").Inc()
		return route, nil
	}
	metrics.RouteCacheTotal.WithLabelValues("miss").Inc()

	route, err := d.inner.Route(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if err := d.cache.Put(ctx, from, to, route); err != nil {
		d.log.Warn().Err(err).Msg("route cache write failed")
	}
	return route, nil
}
