package ports

import (
	"context"

	"github.com/nearshop/geocore/internal/core/domain"
)

// AddressComponent mirrors the provider's structured address parts
// (street, locality, postal_code, ...).
type AddressComponent struct {
	LongName  string
	ShortName string
	Types     []string
}

// GeocodeResult is the resolved location for a free-text address.
type GeocodeResult struct {
	Coordinate       domain.Coordinate
	FormattedAddress string
	Components       []AddressComponent
}

// ReverseGeocodeResult is the resolved address for a coordinate.
type ReverseGeocodeResult struct {
	Address    string
	Components []AddressComponent
}

// PostalCode extracts the postal_code component, or fallback when the
// provider did not return one.
func PostalCode(components []AddressComponent, fallback string) string {
	for _, comp := range components {
		for _, typ := range comp.Types {
			if typ == "postal_code" {
				return comp.LongName
			}
		}
	}
	return fallback
}

// Directions wraps the external routing/geocoding provider. Every call is
// independently failable; no retries are built in at this layer — retry
// and fallback policy belongs to the caller.
type Directions interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
	ReverseGeocode(ctx context.Context, at domain.Coordinate) (*ReverseGeocodeResult, error)
	Route(ctx context.Context, from, to domain.Coordinate) (*domain.RouteSummary, error)
}
