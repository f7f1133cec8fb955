package notifier

import (
	"context"
	"log/slog"

	"appwatch/internal/domain/entity"
)

// NoOpNotifier discards every notification. It is registered as the "none"
// backend so push delivery can be switched off without changing any other
// behavior of the pass: classification, cache persistence and exit status
// all proceed as if the delivery had been accepted.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Name implements Notifier.
func (n *NoOpNotifier) Name() string { return "none" }

// IsEnabled always reports true; sending is still a no-op.
func (n *NoOpNotifier) IsEnabled() bool { return true }

// Send logs the discarded notification and reports success without any
// network call.
func (n *NoOpNotifier) Send(ctx context.Context, notification *entity.Notification) error {
	slog.Info("push delivery disabled, notification discarded",
		slog.String("title", notification.Title))
	return nil
}
