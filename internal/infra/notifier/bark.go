package notifier

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"appwatch/internal/domain/entity"

	"github.com/google/uuid"
)

// Fixed Bark message attributes. Every notification from this job lands in
// the same group with the same sound and is archived on the device.
const (
	barkGroup   = "App Store Updates"
	barkSound   = "bell"
	barkArchive = "1"
)

// BarkConfig contains configuration for the Bark push backend.
type BarkConfig struct {
	// DeviceKey is the per-device Bark key; empty disables the backend
	DeviceKey string

	// APIURL is the Bark server base URL (the device key is appended)
	APIURL string

	// Timeout is the HTTP request timeout for Bark API calls
	Timeout time.Duration
}

// BarkNotifier delivers notifications to a Bark server.
type BarkNotifier struct {
	config      BarkConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewBarkNotifier creates a BarkNotifier with the specified configuration.
func NewBarkNotifier(config BarkConfig) *BarkNotifier {
	return &BarkNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 3),
	}
}

// Name implements Notifier.
func (b *BarkNotifier) Name() string { return "bark" }

// IsEnabled reports whether a device key is configured.
func (b *BarkNotifier) IsEnabled() bool { return b.config.DeviceKey != "" }

// buildForm renders the notification into the form-encoded Bark payload.
// URL and icon fields are only included when present.
func (b *BarkNotifier) buildForm(n *entity.Notification) url.Values {
	form := url.Values{
		"title":     {n.Title},
		"body":      {n.Body},
		"group":     {barkGroup},
		"sound":     {barkSound},
		"isArchive": {barkArchive},
	}
	if n.URL != "" {
		form.Set("url", n.URL)
	}
	if n.Icon != "" {
		form.Set("icon", n.Icon)
	}
	return form
}

// Send delivers one notification as a single form-encoded POST to
// <APIURL>/<device-key>. Success is an HTTP 200 response.
func (b *BarkNotifier) Send(ctx context.Context, n *entity.Notification) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	if !b.IsEnabled() {
		return &ClientError{Message: "bark device key not configured"}
	}

	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(b.config.APIURL, "/"), b.config.DeviceKey)
	form := b.buildForm(n)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create bark request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := b.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute bark request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	if resp.StatusCode == http.StatusOK {
		slog.Info("bark notification delivered",
			slog.String("request_id", requestID),
			slog.String("title", n.Title))
		return nil
	}

	err = responseError(resp.StatusCode, fmt.Sprintf("bark API error: %s", string(body)))
	slog.Error("bark notification failed",
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Any("error", err))
	return err
}

// responseError maps an HTTP status to the shared error taxonomy.
func responseError(status int, message string) error {
	if status >= 500 {
		return &ServerError{StatusCode: status, Message: message}
	}
	return &ClientError{StatusCode: status, Message: message}
}
