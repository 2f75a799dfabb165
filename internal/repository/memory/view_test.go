package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

func TestStoresFeedFollowsNotifications(t *testing.T) {
	stores, err := NewStores(WithClock(fixedClock))
	if err != nil {
		t.Fatalf("NewStores() error: %v", err)
	}
	ctx := context.Background()

	patient := int64(7)
	created, err := stores.Notifications.Insert(ctx, domain.Notification{PatientID: &patient, Message: "Lab results ready"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if _, err := stores.Notifications.Insert(ctx, domain.Notification{Message: "Ward B restocked"}); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	feed, err := stores.PatientNotifications.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(feed) != 2 {
		t.Fatalf("expected 2 feed rows, got %d", len(feed))
	}
	if feed[0].ID != created.ID || feed[0].Message != "Lab results ready" || !feed[0].CreatedAt.Equal(fixedClock()) {
		t.Fatalf("unexpected first feed row: %+v", feed[0])
	}

	byPatient, err := stores.PatientNotifications.Find(ctx, "patient_id", 7)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(byPatient) != 1 || byPatient[0].ID != created.ID {
		t.Fatalf("expected only notification %d for patient 7, got %+v", created.ID, byPatient)
	}

	if err := stores.Notifications.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error: %v", err)
	}
	feed, err = stores.PatientNotifications.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(feed) != 0 {
		t.Fatalf("expected empty feed after clear, got %d rows", len(feed))
	}
}

func TestViewRejectsMutations(t *testing.T) {
	stores, err := NewStores()
	if err != nil {
		t.Fatalf("NewStores() error: %v", err)
	}
	ctx := context.Background()
	feed := stores.PatientNotifications

	if _, err := feed.Insert(ctx, domain.PatientNotification{Message: "x"}); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("Insert: expected ErrReadOnly, got %v", err)
	}
	if _, err := feed.Update(ctx, 1, domain.Record{"message": "x"}); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("Update: expected ErrReadOnly, got %v", err)
	}
	if err := feed.Delete(ctx, 1); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("Delete: expected ErrReadOnly, got %v", err)
	}
	if err := feed.ClearAll(ctx); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("ClearAll: expected ErrReadOnly, got %v", err)
	}
	if _, err := feed.Find(ctx, "nope", 1); !errors.Is(err, domain.ErrInvalidColumn) {
		t.Fatalf("Find: expected ErrInvalidColumn, got %v", err)
	}
}

func TestNewViewRequiresReadOnlyHandle(t *testing.T) {
	source, err := NewTable[domain.Notification](ports.NotificationsTable)
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	_, err = NewView(ports.NotificationsTable, source, func(n domain.Notification) domain.Notification { return n })
	if err == nil {
		t.Fatal("expected error for writable handle")
	}
}
