// Package metrics defines all custom Prometheus metrics for the auth service.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are created with promauto and register themselves with the default
// registry at package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "auth"

// LoginsTotal counts login attempts by result.
// Label:
//   - result: "success", "invalid_credentials", "not_found", "throttled", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// LoginDuration measures end-to-end login handling, including bcrypt
// verification and token signing.
// Label:
//   - result: same values as LoginsTotal
var LoginDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login request handling.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens handed to clients.
// Label:
//   - flow: "login" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued, by flow.",
	},
	[]string{"flow"},
)

// AuthFailuresTotal counts rejected bearer credentials on protected routes.
// Label:
//   - reason: "missing", "decoding", "expired"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "failures_total",
		Help:      "Total number of rejected bearer credentials, by failure reason.",
	},
	[]string{"reason"},
)

// RateLimitHitsTotal counts logins rejected by the per-account throttle.
var RateLimitHitsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limit_hits_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
)

// AuditQueueDepth tracks the number of audit events waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
