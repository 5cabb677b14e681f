package ports

import "context"

// ShopRecord is the raw shop row from the backing store. GeofenceJSON is
// an untrusted payload; the discovery service parses it tolerantly.
type ShopRecord struct {
	ID           string
	Name         string
	Location     string
	Pincode      string
	GeofenceJSON string
}

// ShopRepository fetches candidate shops for a customer.
type ShopRepository interface {
	ListForCustomer(ctx context.Context, customerID string) ([]ShopRecord, error)
}
