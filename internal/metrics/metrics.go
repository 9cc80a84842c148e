// Package metrics defines the prometheus counters, gauges and histograms
// exposed on the dashboard process's /metrics endpoint. Each process
// registers them in its own in-memory default registry and only the
// dashboard serves that registry over HTTP, so values updated inside the
// resolver or updater processes do not appear on the dashboard's
// /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Supervisor metrics.
	RoleRestarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wavealert360_role_restarts_total",
			Help: "Total restarts per supervised role.",
		},
		[]string{"role"},
	)

	RoleCooldowns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wavealert360_role_cooldowns_total",
			Help: "Total times a role entered restart cooldown.",
		},
		[]string{"role"},
	)

	RoleUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wavealert360_role_up",
			Help: "1 if the role's child process is currently running, else 0.",
		},
		[]string{"role"},
	)

	// Resolver metrics.
	ResolverPollDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wavealert360_resolver_poll_duration_seconds",
			Help:    "Duration of a full resolver poll cycle.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	ResolverPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wavealert360_resolver_polls_total",
			Help: "Total resolver poll cycles by outcome source.",
		},
		[]string{"source"},
	)

	ResolverDispatchedLevel = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wavealert360_resolver_dispatched_level_total",
			Help: "Total control tokens dispatched, by alert level.",
		},
		[]string{"level"},
	)

	// Circuit breaker metrics for the resolver's cloud-endpoint breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wavealert360_circuit_breaker_state",
			Help: "Circuit breaker state: 0=closed, 1=half-open, 2=open.",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wavealert360_circuit_breaker_requests_total",
			Help: "Total circuit-breaker-gated requests by outcome.",
		},
		[]string{"name", "outcome"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wavealert360_circuit_breaker_transitions_total",
			Help: "Total circuit breaker state transitions.",
		},
		[]string{"name", "from", "to"},
	)

	// Updater metrics.
	UpdateChecksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wavealert360_update_checks_total",
			Help: "Total remote-commit checks performed by the updater.",
		},
	)

	UpdatesAppliedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wavealert360_updates_applied_total",
			Help: "Total updates successfully fast-forwarded.",
		},
	)

	UpdateFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wavealert360_update_failures_total",
			Help: "Total update attempts that failed, by stage.",
		},
		[]string{"stage"},
	)

	BackupArchiveBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wavealert360_backup_archive_bytes",
			Help:    "Size in bytes of pre-update backup archives.",
			Buckets: prometheus.ExponentialBuckets(1<<10, 4, 10),
		},
	)
)

// ObserveDuration records a histogram observation from a captured start
// time.
func ObserveDuration(hist *prometheus.HistogramVec, label string, start time.Time) {
	hist.WithLabelValues(label).Observe(time.Since(start).Seconds())
}
