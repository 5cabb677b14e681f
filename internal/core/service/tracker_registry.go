package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
)

const persistTimeout = 5 * time.Second

// SourceFactory builds the position source backing a customer's tracker.
type SourceFactory func(customerID string) ports.PositionSource

// TrackerRegistry hands out one LocationTracker per customer. Each new
// tracker gets a persistence observer attached, pushing every update —
// GPS or manual — upstream so other devices see the same last-known
// position.
type TrackerRegistry struct {
	mu        sync.Mutex
	trackers  map[string]*LocationTracker
	newSource SourceFactory
	customers ports.CustomerRepository
	log       zerolog.Logger
}

// NewTrackerRegistry returns an empty registry.
func NewTrackerRegistry(newSource SourceFactory, customers ports.CustomerRepository, log zerolog.Logger) *TrackerRegistry {
	return &TrackerRegistry{
		trackers:  make(map[string]*LocationTracker),
		newSource: newSource,
		customers: customers,
		log:       log,
	}
}

// Tracker returns the customer's tracker, creating it on first use.
func (r *TrackerRegistry) Tracker(customerID string) *LocationTracker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.trackers[customerID]; ok {
		return t
	}

	t := NewLocationTracker(customerID, r.newSource(customerID), r.log)
	t.Subscribe(func(fix domain.Coordinate) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := r.customers.UpdateLocation(ctx, customerID, fix); err != nil {
			r.log.Warn().Err(err).Str("customer_id", customerID).Msg("failed to persist customer location")
		}
	})
	r.trackers[customerID] = t
	return t
}

// StopAll stops every active watch. Used during shutdown.
func (r *TrackerRegistry) StopAll() {
	r.mu.Lock()
	trackers := make([]*LocationTracker, 0, len(r.trackers))
	for _, t := range r.trackers {
		trackers = append(trackers, t)
	}
	r.mu.Unlock()

	for _, t := range trackers {
		t.StopWatch()
	}
}
