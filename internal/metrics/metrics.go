// Package metrics defines and registers all custom Prometheus metrics for
// the geocore service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry at init time via
// promauto; the /metrics endpoint serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "geocore"

// ── Discovery metrics ─────────────────────────────────────────────────────────

// DiscoveriesTotal counts discovery passes.
// Label:
//   - result: "ok" or "error" (shop-list fetch failed)
var DiscoveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "discoveries_total",
		Help:      "Total number of shop discovery passes, by result.",
	},
	[]string{"result"},
)

// DiscoveryDuration measures one full discovery pass including the
// fan-out route enrichment.
var DiscoveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "discovery_duration_seconds",
		Help:      "Duration of a discovery pass from fetch to enriched result.",
		Buckets:   prometheus.DefBuckets,
	},
)

// GeofenceDropsTotal counts shops dropped because their geofence payload
// did not parse into a usable polygon.
var GeofenceDropsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geofence_drops_total",
		Help:      "Total number of shops dropped due to unparseable geofence payloads.",
	},
)

// ── Routing metrics ───────────────────────────────────────────────────────────

// RouteLookupsTotal counts route computations.
// Label:
//   - result: "ok" (provider route) or "fallback" (straight-line N/A stand-in)
var RouteLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_lookups_total",
		Help:      "Total number of route lookups, by result (ok/fallback).",
	},
	[]string{"result"},
)

// RouteCacheTotal counts route cache decisions.
// Label:
//   - result: "hit" or "miss"
var RouteCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_cache_total",
		Help:      "Total number of route cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Tracking metrics ──────────────────────────────────────────────────────────

// PositionFixesTotal counts coordinate updates applied to trackers.
// Label:
//   - source: "watch" (device GPS fix) or "manual" (pin drag, typed address)
var PositionFixesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "position_fixes_total",
		Help:      "Total number of tracked coordinate updates, by source.",
	},
	[]string{"source"},
)

// FeedQueueDepth tracks the number of position fixes waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var FeedQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "feed_queue_depth",
		Help:      "Current number of position fixes pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
