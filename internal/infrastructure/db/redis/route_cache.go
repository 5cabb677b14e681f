package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nearshop/geocore/internal/core/domain"
)

const routeTTL = 5 * time.Minute

// RouteCache stores recent route lookups in Redis so a burst of refresh
// polls against the same origin/destination pair hits the provider once.
// Key format: route:<from_lat>,<from_lng>:<to_lat>,<to_lng> with
// coordinates rounded to five decimals (~1 m), so fixes from a stationary
// device collapse onto one key.
type RouteCache struct {
	client *redis.Client
}

// NewRouteCache creates a RouteCache wrapping the given Redis client.
func NewRouteCache(client *redis.Client) *RouteCache {
	return &RouteCache{client: client}
}

// Get returns the cached route for the pair, if present. Any Redis error
// or malformed payload is treated as a miss; the cache must never fail a
// lookup.
func (rc *RouteCache) Get(ctx context.Context, from, to domain.Coordinate) (*domain.RouteSummary, bool) {
	raw, err := rc.client.Get(ctx, rc.key(from, to)).Bytes()
	if err != nil {
		return nil, false
	}
	return decodeRoute(raw)
}

// decodeRoute parses a stored payload, degrading to a miss when it does
// not decode.
func decodeRoute(raw []byte) (*domain.RouteSummary, bool) {
	var route domain.RouteSummary
	if err := json.Unmarshal(raw, &route); err != nil {
		return nil, false
	}
	return &route, true
}

// Put stores a route for the pair (expires after routeTTL).
func (rc *RouteCache) Put(ctx context.Context, from, to domain.Coordinate, route *domain.RouteSummary) error {
	raw, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("route cache encode: %w", err)
	}
	return rc.client.Set(ctx, rc.key(from, to), raw, routeTTL).Err()
}

func (rc *RouteCache) key(from, to domain.Coordinate) string {
	return fmt.Sprintf("route:%.5f,%.5f:%.5f,%.5f", from.Lat, from.Lng, to.Lat, to.Lng)
}
