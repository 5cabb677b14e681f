package feed

import "sync"

// FeedRegistry hands out one DeviceFeed per customer and acts as the
// dispatcher sink, pushing drained fixes into the right feed.
type FeedRegistry struct {
	mu    sync.Mutex
	feeds map[string]*DeviceFeed
}

// NewFeedRegistry returns an empty registry.
func NewFeedRegistry() *FeedRegistry {
	return &FeedRegistry{feeds: make(map[string]*DeviceFeed)}
}

// Feed returns the customer's device feed, creating it on first use.
func (r *FeedRegistry) Feed(customerID string) *DeviceFeed {
	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.feeds[customerID]; ok {
		return f
	}
	f := NewDeviceFeed()
	r.feeds[customerID] = f
	return f
}

// Deliver implements Sink: a drained fix lands in its customer's feed.
func (r *FeedRegistry) Deliver(fix PositionFix) {
	r.Feed(fix.CustomerID).Push(fix.Location)
}

// SetConsent records the device-reported permission outcome for a
// customer's feed.
func (r *FeedRegistry) SetConsent(customerID string, granted bool) {
	r.Feed(customerID).SetConsent(granted)
}

// Source adapts the registry into the tracker registry's source factory.
func (r *FeedRegistry) Source(customerID string) *DeviceFeed {
	return r.Feed(customerID)
}

var _ Sink = (*FeedRegistry)(nil)
