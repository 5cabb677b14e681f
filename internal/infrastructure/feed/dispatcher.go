package feed

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/nearshop/geocore/internal/core/domain"
	"github.com/nearshop/geocore/internal/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// PositionFix is one device-reported coordinate for a customer.
type PositionFix struct {
	CustomerID string
	Location   domain.Coordinate
}

// Sink receives fixes drained by dispatcher workers.
type Sink interface {
	Deliver(fix PositionFix)
}

// Dispatcher routes position fixes to a fixed set of workers using
// consistent hashing on the customer ID, guaranteeing per-customer fix
// ordering.
type Dispatcher struct {
	workers []chan PositionFix
	sink    Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan PositionFix, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan PositionFix, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a fix to the worker responsible for its customer.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(fix PositionFix) {
	idx := d.shardIndex(fix.CustomerID)
	d.workers[idx] <- fix
	metrics.FeedQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a customer ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(customerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(customerID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan PositionFix) {
	gauge := metrics.FeedQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case fix, ok := <-ch:
			if !ok {
				return
			}
			d.sink.Deliver(fix)
			gauge.Set(float64(len(ch)))
		}
	}
}
