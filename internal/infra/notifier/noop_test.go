package notifier

import (
	"context"
	"testing"

	"appwatch/internal/domain/entity"
)

func TestNoOpNotifier_Send(t *testing.T) {
	n := NewNoOpNotifier()

	if n.Name() != "none" {
		t.Errorf("expected name 'none', got %q", n.Name())
	}
	if !n.IsEnabled() {
		t.Error("expected NoOpNotifier to always be enabled")
	}

	notification := &entity.Notification{
		Title: "Facebook updated",
		Body:  "Version: 511.0 to 512.0",
	}

	if err := n.Send(context.Background(), notification); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}
