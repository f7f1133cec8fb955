package metrics

import (
	"appwatch/internal/domain/entity"
	"appwatch/internal/usecase/check"
)

// RecordCheckPass records the outcome of one completed check pass from its
// stats. Safe to call on every pass, including passes that composed no
// notification.
func RecordCheckPass(stats *check.Stats) {
	if stats == nil {
		return
	}

	status := "success"
	if !stats.Succeeded() {
		status = "failure"
	}
	CheckPassesTotal.WithLabelValues(status).Inc()
	CheckPassDuration.Observe(stats.Duration.Seconds())

	AppsClassifiedTotal.WithLabelValues(entity.Unseen.String()).Add(float64(stats.Unseen))
	AppsClassifiedTotal.WithLabelValues(entity.Unchanged.String()).Add(float64(stats.Unchanged))
	AppsClassifiedTotal.WithLabelValues(entity.Updated.String()).Add(float64(stats.Updated))
	AppsUnresolvableTotal.Add(float64(stats.NotFound))
}

// RecordCheckPassFailure records a pass that errored before producing
// stats, such as a timeout or an empty identifier list.
func RecordCheckPassFailure() {
	CheckPassesTotal.WithLabelValues("failure").Inc()
}

// RecordNotification records a dispatch attempt for the given backend.
func RecordNotification(method string, accepted bool) {
	status := "success"
	if !accepted {
		status = "failure"
	}
	NotificationsTotal.WithLabelValues(method, status).Inc()
}
