package ports

import (
	"context"

	"github.com/nearshop/geocore/internal/core/domain"
)

// CustomerRecord is the persisted view of a customer's last-known
// position and address.
type CustomerRecord struct {
	ID       string
	Location *domain.Coordinate
	Address  string
	Pincode  string
}

// CustomerRepository persists the tracked coordinate upstream so every
// device sees the same last-known position.
type CustomerRepository interface {
	Find(ctx context.Context, customerID string) (*CustomerRecord, error)
	UpdateLocation(ctx context.Context, customerID string, at domain.Coordinate) error
	UpdateAddress(ctx context.Context, customerID, address, pincode string) error
}
