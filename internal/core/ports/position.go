package ports

import (
	"context"

	"github.com/nearshop/geocore/internal/core/domain"
)

// PositionSource abstracts the device feed behind a location tracker.
type PositionSource interface {
	// RequestPermission asks the device for tracking consent. A denial is
	// reported as (false, nil); errors are reserved for transport failures.
	RequestPermission(ctx context.Context) (bool, error)
	// Watch returns a stream of position fixes. The stream is closed when
	// ctx is cancelled or the source shuts down.
	Watch(ctx context.Context) (<-chan domain.Coordinate, error)
}
