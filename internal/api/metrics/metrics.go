// Package metrics defines all custom Prometheus metrics for the campus
// events API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default registry at package init via
// promauto; the router exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "campus_events"

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsAdmittedTotal counts registrations that claimed a seat.
var RegistrationsAdmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_admitted_total",
		Help:      "Total number of registrations admitted by the admission flow.",
	},
)

// RegistrationsRejectedTotal counts rejected registration attempts.
// Label:
//   - reason: "not_found", "not_open", "full", or "duplicate"
var RegistrationsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_rejected_total",
		Help:      "Total number of registration attempts rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsCreatedTotal counts newly created events.
var EventsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created.",
	},
)

// ModerationTransitionsTotal counts applied moderation actions.
// Label:
//   - action: "submit", "approve", "reject", or "archive"
var ModerationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "moderation_transitions_total",
		Help:      "Total number of event status transitions, by action.",
	},
	[]string{"action"},
)

// ── Audit trail metrics ───────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of entries waiting in each audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of entries pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteDuration measures how long a single audit entry takes to persist.
var AuditWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "audit_write_duration_seconds",
		Help:      "Duration of audit entry persistence from dequeue to write.",
		Buckets:   prometheus.DefBuckets,
	},
)
