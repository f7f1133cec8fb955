// Package notifier provides the push-notification delivery backends.
// It defines the Notifier interface which allows alternative delivery
// mechanisms (Bark, Telegram) to be used interchangeably through dependency
// injection, plus a no-op implementation for when delivery is disabled.
package notifier

import (
	"context"

	"appwatch/internal/domain/entity"
)

// Notifier is an interface for delivering a composed notification through
// one push backend.
//
// Implementations should:
//   - Report readiness via IsEnabled (required credentials present)
//   - Apply rate limiting before the outbound request
//   - Log every attempt with a request id for tracing
//   - Respect context cancellation
//
// Send performs exactly one delivery attempt; a non-2xx or backend-reported
// failure is returned as an error, never raised further.
type Notifier interface {
	// Name returns the lowercase backend identifier (e.g., "bark", "telegram").
	Name() string

	// IsEnabled reports whether the backend has the credentials it needs.
	// Disabled backends are skipped by the dispatcher rather than attempted.
	IsEnabled() bool

	// Send delivers one notification. The notification must not be nil.
	Send(ctx context.Context, n *entity.Notification) error
}
