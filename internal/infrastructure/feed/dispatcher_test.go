package feed

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
)

// recordingSink captures delivered fixes grouped by customer.
type recordingSink struct {
	mu    sync.Mutex
	byCus map[string][]domain.Coordinate
}

func (s *recordingSink) Deliver(fix PositionFix) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byCus == nil {
		s.byCus = make(map[string][]domain.Coordinate)
	}
	s.byCus[fix.CustomerID] = append(s.byCus[fix.CustomerID], fix.Location)
}

func (s *recordingSink) fixes(customerID string) []domain.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Coordinate(nil), s.byCus[customerID]...)
}

func TestDispatcher_PreservesPerCustomerOrdering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &recordingSink{}
	d := NewDispatcher(4, sink, zerolog.Nop())
	d.Start(ctx)

	want := []domain.Coordinate{
		{Lat: 17.38, Lng: 78.48},
		{Lat: 17.39, Lng: 78.49},
		{Lat: 17.40, Lng: 78.50},
	}
	for _, fix := range want {
		d.Enqueue(PositionFix{CustomerID: "c1", Location: fix})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(sink.fixes("c1")) == len(want) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	got := sink.fixes("c1")
	if len(got) != len(want) {
		t.Fatalf("expected %d fixes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("fix %d out of order: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDispatcher_SameCustomerSameWorker(t *testing.T) {
	d := NewDispatcher(8, &recordingSink{}, zerolog.Nop())

	first := d.shardIndex("c1")
	for i := 0; i < 10; i++ {
		if d.shardIndex("c1") != first {
			t.Fatal("shard index must be deterministic per customer")
		}
	}
}

func TestDeviceFeed_PushDropsOldestWhenFull(t *testing.T) {
	f := NewDeviceFeed()

	// Overfill past the buffer; Push must never block.
	for i := 0; i < feedBuffer+10; i++ {
		f.Push(domain.Coordinate{Lat: float64(i), Lng: 0})
	}

	ch, err := f.Watch(context.Background())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// The newest fix must still be queued.
	var last domain.Coordinate
	drained := 0
	for {
		select {
		case fix := <-ch:
			last = fix
			drained++
			continue
		default:
		}
		break
	}
	if drained != feedBuffer {
		t.Fatalf("expected a full buffer of %d fixes, drained %d", feedBuffer, drained)
	}
	if last.Lat != float64(feedBuffer+9) {
		t.Fatalf("newest fix lost: last drained lat=%v", last.Lat)
	}
}

func TestFeedRegistry_DeliverReachesWatch(t *testing.T) {
	r := NewFeedRegistry()

	ch, err := r.Feed("c1").Watch(context.Background())
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	fix := domain.Coordinate{Lat: 17.385, Lng: 78.4867}
	r.Deliver(PositionFix{CustomerID: "c1", Location: fix})

	select {
	case got := <-ch:
		if got != fix {
			t.Fatalf("got %+v, want %+v", got, fix)
		}
	case <-time.After(time.Second):
		t.Fatal("fix never reached the feed channel")
	}
}

func TestDeviceFeed_ConsentFlipsPermission(t *testing.T) {
	f := NewDeviceFeed()

	granted, err := f.RequestPermission(context.Background())
	if err != nil || !granted {
		t.Fatalf("expected default consent, got %v/%v", granted, err)
	}

	f.SetConsent(false)
	granted, _ = f.RequestPermission(context.Background())
	if granted {
		t.Fatal("expected consent revoked")
	}
}
