package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"appwatch/internal/domain/entity"
)

func telegramConfig(serverURL string) TelegramConfig {
	return TelegramConfig{
		BotToken: "123:abc",
		ChatID:   "987654",
		APIURL:   serverURL + "/bot",
		Timeout:  5 * time.Second,
	}
}

func TestTelegramNotifier_buildMessage(t *testing.T) {
	tg := NewTelegramNotifier(telegramConfig("https://api.example.org"))

	t.Run("bold title, blank line, body", func(t *testing.T) {
		got := tg.buildMessage(&entity.Notification{Title: "Example App updated", Body: "2.4.0 → 2.4.1"})
		want := "*Example App updated*\n\n2.4.0 → 2.4.1"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("link appended as inline hyperlink", func(t *testing.T) {
		got := tg.buildMessage(&entity.Notification{
			Title: "t",
			Body:  "b",
			URL:   "https://apps.example.com/app/id123456",
		})
		if !strings.HasSuffix(got, "[View in App Store](https://apps.example.com/app/id123456)") {
			t.Errorf("expected trailing markdown hyperlink, got %q", got)
		}
	})
}

func TestTelegramNotifier_Send(t *testing.T) {
	notification := &entity.Notification{Title: "Example App updated", Body: "2.4.0 → 2.4.1"}

	t.Run("sends one sendMessage call and succeeds on ok=true", func(t *testing.T) {
		var gotPath string
		var gotPayload sendMessageRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
				t.Errorf("decode payload: %v", err)
			}
			fmt.Fprint(w, `{"ok": true}`)
		}))
		defer server.Close()

		tg := NewTelegramNotifier(telegramConfig(server.URL))
		if err := tg.Send(context.Background(), notification); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotPath != "/bot123:abc/sendMessage" {
			t.Errorf("unexpected path %q", gotPath)
		}
		if gotPayload.ChatID != "987654" {
			t.Errorf("expected chat_id 987654, got %q", gotPayload.ChatID)
		}
		if gotPayload.ParseMode != "Markdown" {
			t.Errorf("expected parse_mode Markdown, got %q", gotPayload.ParseMode)
		}
		if !strings.Contains(gotPayload.Text, notification.Title) {
			t.Errorf("expected text to contain title, got %q", gotPayload.Text)
		}
	})

	t.Run("ok=false is a failure even with HTTP 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"ok": false, "description": "Bad Request: chat not found"}`)
		}))
		defer server.Close()

		tg := NewTelegramNotifier(telegramConfig(server.URL))
		err := tg.Send(context.Background(), notification)

		var clientErr *ClientError
		if !errors.As(err, &clientErr) {
			t.Fatalf("expected ClientError, got %v", err)
		}
		if !strings.Contains(clientErr.Message, "chat not found") {
			t.Errorf("expected description in error, got %q", clientErr.Message)
		}
	})

	t.Run("unparseable response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>gateway error</html>`)
		}))
		defer server.Close()

		tg := NewTelegramNotifier(telegramConfig(server.URL))
		if err := tg.Send(context.Background(), notification); err == nil {
			t.Fatal("expected error for unparseable response")
		}
	})

	t.Run("missing chat id fails without a network call", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		cfg := telegramConfig(server.URL)
		cfg.ChatID = ""
		tg := NewTelegramNotifier(cfg)

		if tg.IsEnabled() {
			t.Error("expected notifier to be disabled without chat id")
		}
		if err := tg.Send(context.Background(), notification); err == nil {
			t.Fatal("expected error from disabled notifier")
		}
		if called {
			t.Error("disabled notifier must not reach the network")
		}
	})
}
