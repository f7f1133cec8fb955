// Package notify routes a composed notification to exactly one configured
// push backend, failing soft when the backend is unknown, misconfigured, or
// rejects the delivery.
package notify

import (
	"context"
	"log/slog"
	"strings"

	"appwatch/internal/domain/entity"
	"appwatch/internal/infra/notifier"
	"appwatch/internal/resilience/retry"
)

// Recognized delivery method names.
const (
	MethodBark     = "bark"
	MethodTelegram = "telegram"
	// MethodNone routes to the discarding backend: the pass runs in full,
	// including cache persistence, but nothing leaves the process.
	MethodNone = "none"
)

// Dispatcher selects one backend per run by method name and delivers through
// it, retrying transient backend failures with backoff.
type Dispatcher struct {
	backends map[string]notifier.Notifier
	retry    retry.Config
}

// NewDispatcher creates a Dispatcher over the given backends, keyed by their
// Name(). Registering two backends with the same name keeps the last one.
func NewDispatcher(backends ...notifier.Notifier) *Dispatcher {
	m := make(map[string]notifier.Notifier, len(backends))
	for _, b := range backends {
		m[b.Name()] = b
	}
	return &Dispatcher{backends: m, retry: retry.NotifyConfig()}
}

// Dispatch sends the notification through the backend selected by method and
// reports whether the transport accepted it (not whether the remote device
// displayed it).
//
// Every failure mode is soft: an unrecognized method, missing credentials,
// or a backend rejection is logged and returned as false, never raised. A
// false return must not block the rest of the run; the cache save still
// proceeds.
func (d *Dispatcher) Dispatch(ctx context.Context, method string, n *entity.Notification) bool {
	if err := d.dispatch(ctx, method, n); err != nil {
		slog.Error("notification dispatch failed",
			slog.String("method", method),
			slog.Any("error", err))
		return false
	}
	return true
}

func (d *Dispatcher) dispatch(ctx context.Context, method string, n *entity.Notification) error {
	if n == nil {
		return ErrNothingToSend
	}

	backend, ok := d.backends[strings.ToLower(method)]
	if !ok {
		return ErrUnknownMethod
	}
	if !backend.IsEnabled() {
		return ErrBackendDisabled
	}

	// 5xx and network timeouts are retried; 4xx and backend rejections
	// abort after the first attempt.
	return retry.WithBackoff(ctx, d.retry, func() error {
		return backend.Send(ctx, n)
	})
}
