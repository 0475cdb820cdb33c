// Package metrics defines and registers all custom Prometheus metrics for
// the inventory API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Directory sync metrics ───────────────────────────────────────────────────

// SyncRunsTotal counts reconciliation runs by outcome.
// Label:
//   - result: "success" or "failure" (a run rejected by the lock is not counted)
var SyncRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_runs_total",
		Help:      "Total number of directory reconciliation runs, by outcome.",
	},
	[]string{"result"},
)

// SyncUsersFetched records how many users the last successful run pulled
// from the directory.
var SyncUsersFetched = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sync_users_fetched",
		Help:      "Number of directory users returned by the last successful pull.",
	},
)

// SyncUsersUpsertedTotal counts upserted users.
// Label:
//   - op: "created" (new local record) or "updated" (existing record refreshed)
var SyncUsersUpsertedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_users_upserted_total",
		Help:      "Total number of directory users upserted during reconciliation.",
	},
	[]string{"op"},
)

// SyncUsersPrunedTotal counts users soft-deleted because they were absent
// from a directory pull.
var SyncUsersPrunedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sync_users_pruned_total",
		Help:      "Total number of directory users pruned during reconciliation.",
	},
)

// SyncDuration measures wall-clock duration of a full reconciliation run.
var SyncDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sync_duration_seconds",
		Help:      "Duration of directory reconciliation runs, fetch included.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Asset lifecycle metrics ──────────────────────────────────────────────────

// AssetsCreatedTotal counts newly registered assets.
var AssetsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assets_created_total",
		Help:      "Total number of assets registered.",
	},
)

// AssignmentsClosedTotal counts active→returned transitions, each of which
// moved an asset into maintenance.
var AssignmentsClosedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_closed_total",
		Help:      "Total number of assignments closed (asset flipped to maintenance).",
	},
)
