// Package geo holds the pure distance and containment math used by shop
// discovery. No I/O, no state.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-polyline"

	"github.com/nearshop/geocore/internal/core/domain"
)

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance between a and b in meters,
// computed with the haversine formula.
func Distance(a, b domain.Coordinate) float64 {
	if a.Lat == b.Lat && a.Lng == b.Lng {
		return 0
	}

	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// PointInPolygon reports whether p lies inside poly, using the standard
// ray-casting test. Polygons with fewer than 3 vertices contain nothing.
//
// Boundary convention: crossings follow the half-open rule, so a point
// exactly on the bottom or left edge counts as inside while the top or
// right edge counts as outside.
func PointInPolygon(p domain.Coordinate, poly domain.GeofencePolygon) bool {
	if len(poly) < 3 {
		return false
	}

	inside := false
	j := len(poly) - 1
	for i := range poly {
		vi, vj := poly[i], poly[j]
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) &&
			p.Lng < (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat)+vi.Lng {
			inside = !inside
		}
		j = i
	}
	return inside
}

// DecodePolyline converts a provider-encoded polyline into a coordinate
// path.
func DecodePolyline(encoded string) ([]domain.Coordinate, error) {
	if encoded == "" {
		return nil, errors.New("empty polyline")
	}

	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, fmt.Errorf("decode polyline: %w", err)
	}

	path := make([]domain.Coordinate, len(coords))
	for i, c := range coords {
		path[i] = domain.Coordinate{Lat: c[0], Lng: c[1]}
	}
	return path, nil
}
