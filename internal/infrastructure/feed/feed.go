// Package feed bridges device-reported position fixes into the tracking
// core. Devices POST fixes over HTTP; each customer's fixes flow through
// a DeviceFeed that implements ports.PositionSource for their tracker.
package feed

import (
	"context"
	"sync"

	"github.com/nearshop/geocore/internal/core/domain"
)

const feedBuffer = 64

// DeviceFeed is a channel-backed position source for one customer's
// device. Consent mirrors the device-side permission prompt: the device
// reports the outcome and the feed answers permission requests with it.
type DeviceFeed struct {
	mu      sync.Mutex
	consent bool
	ch      chan domain.Coordinate
}

// NewDeviceFeed returns a feed with consent granted. The device flips it
// off when the user declines the prompt.
func NewDeviceFeed() *DeviceFeed {
	return &DeviceFeed{
		consent: true,
		ch:      make(chan domain.Coordinate, feedBuffer),
	}
}

// SetConsent records the device-reported permission outcome.
func (f *DeviceFeed) SetConsent(granted bool) {
	f.mu.Lock()
	f.consent = granted
	f.mu.Unlock()
}

// RequestPermission reports the device's consent state.
func (f *DeviceFeed) RequestPermission(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.consent, nil
}

// Watch hands out the fix channel. The channel outlives individual
// watches; a tracker that stops and restarts its watch resumes reading
// from the same stream.
func (f *DeviceFeed) Watch(_ context.Context) (<-chan domain.Coordinate, error) {
	return f.ch, nil
}

// Push delivers a fix without blocking. When the buffer is full the
// oldest queued fix is discarded; for live position data the newest fix
// is always the one worth keeping.
func (f *DeviceFeed) Push(fix domain.Coordinate) {
	for {
		select {
		case f.ch <- fix:
			return
		default:
			select {
			case <-f.ch:
			default:
			}
		}
	}
}
