package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"appwatch/internal/domain/entity"

	"github.com/google/uuid"
)

// TelegramConfig contains configuration for the Telegram Bot backend.
type TelegramConfig struct {
	// BotToken authenticates the bot; empty disables the backend
	BotToken string

	// ChatID is the destination chat; empty disables the backend
	ChatID string

	// APIURL is the Telegram Bot API base URL (the bot token is appended)
	APIURL string

	// Timeout is the HTTP request timeout for Telegram API calls
	Timeout time.Duration
}

// TelegramNotifier delivers notifications through the Telegram Bot API.
type TelegramNotifier struct {
	config      TelegramConfig
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// NewTelegramNotifier creates a TelegramNotifier with the specified configuration.
func NewTelegramNotifier(config TelegramConfig) *TelegramNotifier {
	return &TelegramNotifier{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		rateLimiter: NewRateLimiter(1.0, 3),
	}
}

// Name implements Notifier.
func (t *TelegramNotifier) Name() string { return "telegram" }

// IsEnabled reports whether both the bot token and the chat id are configured.
func (t *TelegramNotifier) IsEnabled() bool {
	return t.config.BotToken != "" && t.config.ChatID != ""
}

// sendMessageRequest is the JSON body for the sendMessage method.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// sendMessageResponse is the subset of the Telegram API response we consume.
type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// buildMessage renders title and body into one Markdown message. Telegram has
// no dedicated link slot, so the link is appended as an inline hyperlink.
func (t *TelegramNotifier) buildMessage(n *entity.Notification) string {
	message := fmt.Sprintf("*%s*\n\n%s", n.Title, n.Body)
	if n.URL != "" {
		message += fmt.Sprintf("\n\n[View in App Store](%s)", n.URL)
	}
	return message
}

// Send delivers one notification as a single sendMessage call.
// Success is a response with ok == true; anything else is an error.
func (t *TelegramNotifier) Send(ctx context.Context, n *entity.Notification) error {
	requestID := uuid.New().String()
	ctx = context.WithValue(ctx, requestIDKey, requestID)

	if !t.IsEnabled() {
		return &ClientError{Message: "telegram bot token or chat id not configured"}
	}

	payload := sendMessageRequest{
		ChatID:                t.config.ChatID,
		Text:                  t.buildMessage(n),
		ParseMode:             "Markdown",
		DisableWebPagePreview: false,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	endpoint := fmt.Sprintf("%s%s/sendMessage", t.config.APIURL, t.config.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := t.rateLimiter.Allow(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute telegram request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var decoded sendMessageResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return responseError(resp.StatusCode, fmt.Sprintf("telegram API returned unparseable response: %s", string(body)))
	}

	if !decoded.OK {
		err := responseError(resp.StatusCode, fmt.Sprintf("telegram API error: %s", decoded.Description))
		slog.Error("telegram notification failed",
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
			slog.String("description", decoded.Description))
		return err
	}

	slog.Info("telegram notification delivered",
		slog.String("request_id", requestID),
		slog.String("title", n.Title))
	return nil
}
