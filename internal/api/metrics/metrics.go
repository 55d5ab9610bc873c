// Package metrics defines all custom Prometheus metrics for the patients
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "patients_api"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts account creations, by stored role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRejectionsTotal counts bearer tokens rejected by the auth middleware.
// Label:
//   - reason: "signature", "expired", "malformed"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of bearer tokens that failed verification, by reason.",
	},
	[]string{"reason"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEntriesTotal counts audit entries successfully persisted, by action.
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit entries persisted, by action.",
	},
	[]string{"action"},
)

// AuditErrorsTotal counts audit entries that failed to persist, by action.
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit entries that failed to persist, by action.",
	},
	[]string{"action"},
)

// AuditQueueDepth tracks pending entries in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
