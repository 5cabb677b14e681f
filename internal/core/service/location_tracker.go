package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/core/ports"
	"github.com/nearshop/geocore/internal/metrics"
)

// TrackingState is the lifecycle of a customer's location tracker.
type TrackingState int

const (
	StateUnresolved TrackingState = iota
	StatePermissionRequested
	StateActive
	StateDenied
)

func (s TrackingState) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StatePermissionRequested:
		return "permission_requested"
	case StateActive:
		return "active"
	case StateDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// LocationTracker owns the single tracked coordinate for one customer.
// The cell is written by the watch goroutine and by SetManualLocation;
// consumers receive snapshots and callbacks, never shared references.
// Observers cannot distinguish GPS-driven from manual updates — both
// arrive through the same path.
type LocationTracker struct {
	customerID string
	source     ports.PositionSource
	log        zerolog.Logger

	mu        sync.Mutex
	state     TrackingState
	granted   bool
	current   domain.Coordinate
	known     bool
	observers map[int]func(domain.Coordinate)
	nextID    int

	cancelWatch context.CancelFunc
	watchDone   chan struct{}
}

// NewLocationTracker builds a tracker in the Unresolved state.
func NewLocationTracker(customerID string, source ports.PositionSource, log zerolog.Logger) *LocationTracker {
	return &LocationTracker{
		customerID: customerID,
		source:     source,
		log:        log.With().Str("customer_id", customerID).Logger(),
		observers:  make(map[int]func(domain.Coordinate)),
	}
}

// RequestPermission resolves the tracker's permission state. Denial is a
// state, not an error: the tracker moves to Denied and the last known
// coordinate (possibly none) stays authoritative.
func (t *LocationTracker) RequestPermission(ctx context.Context) (bool, error) {
	t.mu.Lock()
	switch t.state {
	case StateDenied:
		t.mu.Unlock()
		return false, nil
	case StateActive:
		t.mu.Unlock()
		return true, nil
	}
	t.state = StatePermissionRequested
	t.mu.Unlock()

	granted, err := t.source.RequestPermission(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.state = StateUnresolved
		return false, fmt.Errorf("request permission: %w", err)
	}
	if !granted {
		t.state = StateDenied
		t.log.Info().Msg("location permission denied")
		return false, nil
	}
	t.granted = true
	return true, nil
}

// StartWatch begins continuous position delivery. Each fix from the
// source updates the tracked coordinate and notifies every subscribed
// observer. Starting an already-active tracker is a no-op.
func (t *LocationTracker) StartWatch(ctx context.Context) error {
	t.mu.Lock()
	if !t.granted || t.state == StateDenied {
		t.mu.Unlock()
		return domain.ErrPermissionDenied
	}
	if t.watchDone != nil {
		t.mu.Unlock()
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	fixes, err := t.source.Watch(watchCtx)
	if err != nil {
		cancel()
		t.mu.Unlock()
		return fmt.Errorf("start watch: %w", err)
	}

	done := make(chan struct{})
	t.cancelWatch = cancel
	t.watchDone = done
	t.state = StateActive
	t.mu.Unlock()

	go t.consume(watchCtx, fixes, done)
	return nil
}

func (t *LocationTracker) consume(ctx context.Context, fixes <-chan domain.Coordinate, done chan struct{}) {
	defer close(done)
	for {
		select {
		case <-ctx.Done():
			return
		case fix, ok := <-fixes:
			if !ok {
				return
			}
			if !fix.Valid() {
				// A bad fix is logged and dropped; the watch stays alive
				// and the last known coordinate is retained.
				t.log.Warn().
					Float64("lat", fix.Lat).
					Float64("lng", fix.Lng).
					Msg("dropping invalid position fix")
				continue
			}
			t.publish(fix, "watch")
		}
	}
}

// StopWatch halts position delivery. It is idempotent and safe to call
// from any state. When it returns, the watch goroutine has exited, so no
// further watch-driven callbacks will fire. In-flight discovery or
// tracking calls are not cancelled here; callers owning them cancel them
// independently.
func (t *LocationTracker) StopWatch() {
	t.mu.Lock()
	cancel, done := t.cancelWatch, t.watchDone
	t.cancelWatch, t.watchDone = nil, nil
	if t.state == StateActive {
		t.state = StatePermissionRequested
	}
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// SetManualLocation overrides the tracked coordinate immediately — used
// when the user drags a pin, types an address, or taps recenter. The
// update reaches observers through the same path as GPS fixes.
func (t *LocationTracker) SetManualLocation(fix domain.Coordinate) error {
	if !fix.Valid() {
		return domain.ErrInvalidCoordinate
	}
	t.publish(fix, "manual")
	return nil
}

// Subscribe registers an observer for coordinate updates and returns its
// cancellation handle. After cancel returns the observer will not be
// called again.
func (t *LocationTracker) Subscribe(fn func(domain.Coordinate)) (cancel func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.observers[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.observers, id)
		t.mu.Unlock()
	}
}

// Snapshot returns the last known coordinate, if any.
func (t *LocationTracker) Snapshot() (domain.Coordinate, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.known
}

// State returns the tracker's current lifecycle state.
func (t *LocationTracker) State() TrackingState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// publish writes the cell and notifies observers. Observer callbacks run
// outside the lock so a slow observer cannot stall the tracker.
func (t *LocationTracker) publish(fix domain.Coordinate, source string) {
	t.mu.Lock()
	t.current = fix
	t.known = true
	observers := make([]func(domain.Coordinate), 0, len(t.observers))
	for _, fn := range t.observers {
		observers = append(observers, fn)
	}
	t.mu.Unlock()

	metrics.PositionFixesTotal.WithLabelValues(source).Inc()
	for _, fn := range observers {
		fn(fix)
	}
}
