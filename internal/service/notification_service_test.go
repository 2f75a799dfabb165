package service

import (
	"context"
	"errors"
	"testing"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/memory"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

func newNotificationFixture(t *testing.T) (*NotificationService, *memory.Table[domain.Notification], *memory.Table[domain.PatientNotification]) {
	t.Helper()
	notifications, err := memory.NewTable[domain.Notification](ports.NewTableHandle("notifications", "id", "id", "created_at"))
	if err != nil {
		t.Fatalf("memory.NewTable returned error: %v", err)
	}
	feed, err := memory.NewTable[domain.PatientNotification](ports.NewViewHandle("patient_notifications", "id"))
	if err != nil {
		t.Fatalf("memory.NewTable returned error: %v", err)
	}
	return NewNotificationService(notifications, feed), notifications, feed
}

func TestNotificationCreateDeleteAndClear(t *testing.T) {
	svc, notifications, _ := newNotificationFixture(t)
	ctx := context.Background()
	patient := int64(3)

	first, err := svc.Create(ctx, &patient, "  Lab results ready  ")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.Message != "Lab results ready" || first.CreatedAt.IsZero() {
		t.Fatalf("unexpected notification %#v", first)
	}
	if _, err := svc.Create(ctx, nil, "Ward B cleaned"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create(ctx, nil, "   "); !errors.Is(err, ErrEmptyNotification) {
		t.Fatalf("expected ErrEmptyNotification, got %v", err)
	}

	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, first.ID); err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	remaining, _ := notifications.FindAll(ctx)
	if len(remaining) != 1 {
		t.Fatalf("expected 1 notification left, got %d", len(remaining))
	}

	if err := svc.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll returned error: %v", err)
	}
	remaining, _ = notifications.FindAll(ctx)
	if len(remaining) != 0 {
		t.Fatalf("expected no notifications after clear, got %d", len(remaining))
	}
}

func TestNotificationListReadsView(t *testing.T) {
	svc, _, feed := newNotificationFixture(t)
	first := "Kwame"
	feed.Seed(domain.PatientNotification{ID: 1, PatientFirstName: &first, Message: "admitted"})

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || *items[0].PatientFirstName != "Kwame" {
		t.Fatalf("unexpected feed %#v", items)
	}
}
