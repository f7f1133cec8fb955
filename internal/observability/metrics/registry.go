// Package metrics provides centralized Prometheus metrics for the checker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check-pass metrics track how each scheduled pass behaves.
var (
	// CheckPassesTotal counts completed check passes by outcome
	CheckPassesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appwatch_check_passes_total",
			Help: "Total number of completed check passes",
		},
		[]string{"status"},
	)

	// CheckPassDuration measures the duration of one full pass in seconds
	CheckPassDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "appwatch_check_pass_duration_seconds",
			Help:    "Duration of one check pass in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// AppsClassifiedTotal counts per-app classification outcomes
	AppsClassifiedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appwatch_apps_classified_total",
			Help: "Total number of app classifications by result",
		},
		[]string{"result"},
	)

	// AppsUnresolvableTotal counts identifiers that matched no region
	AppsUnresolvableTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "appwatch_apps_unresolvable_total",
			Help: "Total number of identifiers not found in any region",
		},
	)

	// NotificationsTotal counts dispatch attempts by backend and status
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appwatch_notifications_total",
			Help: "Total number of notification dispatch attempts",
		},
		[]string{"method", "status"},
	)
)
