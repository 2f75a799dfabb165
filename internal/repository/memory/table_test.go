package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/repository/ports"
)

var (
	usersHandle = ports.NewTableHandle("users", "id", "id", "datecreate")
	viewHandle  = ports.NewViewHandle("patient_notifications", "id")
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
}

func newUsers(t *testing.T) *Table[domain.User] {
	t.Helper()
	table, err := NewTable[domain.User](usersHandle, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	return table
}

func TestInsertAssignsIDAndGeneratedTimestamp(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	first, err := users.Insert(ctx, domain.User{Email: "a@thomas.test"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	second, err := users.Insert(ctx, domain.User{Email: "b@thomas.test"})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected sequential ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if !first.DateCreate.Equal(fixedClock()) {
		t.Fatalf("expected generated datecreate, got %v", first.DateCreate)
	}
}

func TestInsertThenFindByPrimaryKeyRoundTrip(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()
	dept := "Cardiology"

	inserted, err := users.Insert(ctx, domain.User{Email: "c@thomas.test", FirstName: "Cara", Department: &dept, AdminType: domain.AdminTypeDoctor})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	found, err := users.Find(ctx, "id", inserted.ID)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(found))
	}
	if found[0].Email != "c@thomas.test" || found[0].Department == nil || *found[0].Department != dept {
		t.Fatalf("round trip mismatch: %#v", found[0])
	}
}

func TestInsertExplicitDuplicatePrimaryKey(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	if _, err := users.Insert(ctx, domain.User{ID: 10}); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if _, err := users.Insert(ctx, domain.User{ID: 10}); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	next, err := users.Insert(ctx, domain.User{})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if next.ID != 11 {
		t.Fatalf("expected id after explicit key to be 11, got %d", next.ID)
	}
}

func TestFindMatchesLoosely(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()
	if _, err := users.Insert(ctx, domain.User{Number: "0712", Age: 30}); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	byAge, err := users.Find(ctx, "age", "30")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(byAge) != 1 {
		t.Fatalf("expected string 30 to match int column, got %d rows", len(byAge))
	}
	none, err := users.Find(ctx, "number", "0713")
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", none)
	}
	nilDept, err := users.Find(ctx, "department", nil)
	if err != nil {
		t.Fatalf("Find() error: %v", err)
	}
	if len(nilDept) != 1 {
		t.Fatalf("expected nil to match NULL column, got %d rows", len(nilDept))
	}
}

func TestFindRejectsUnknownColumn(t *testing.T) {
	users := newUsers(t)
	if _, err := users.Find(context.Background(), "salary", 1); !errors.Is(err, domain.ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
}

func TestUpdateOverwritesOnlySuppliedColumns(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()
	inserted, err := users.Insert(ctx, domain.User{FirstName: "Ama", LastName: "Mensah", Age: 40})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	stamp := fixedClock().Add(time.Hour)
	updated, err := users.Update(ctx, inserted.ID, domain.Record{"lastname": "Boateng", "age": 41, "dateupdate": stamp, "department": "ER"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.FirstName != "Ama" || updated.LastName != "Boateng" || updated.Age != 41 {
		t.Fatalf("unexpected update result %#v", updated)
	}
	if updated.DateUpdate == nil || !updated.DateUpdate.Equal(stamp) {
		t.Fatalf("expected dateupdate %v, got %v", stamp, updated.DateUpdate)
	}
	if updated.Department == nil || *updated.Department != "ER" {
		t.Fatalf("expected department to be set, got %v", updated.Department)
	}
}

func TestUpdateMissingIDDoesNotCreate(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()

	if _, err := users.Update(ctx, 42, domain.Record{"firstname": "Ghost"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	all, err := users.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no rows to be created, got %d", len(all))
	}
}

func TestUpdateRejectsIncompatibleValue(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()
	inserted, err := users.Insert(ctx, domain.User{})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if _, err := users.Update(ctx, inserted.ID, domain.Record{"age": "forty"}); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()
	inserted, err := users.Insert(ctx, domain.User{})
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := users.Delete(ctx, inserted.ID); err != nil {
			t.Fatalf("Delete() call %d error: %v", i+1, err)
		}
	}
	if err := users.Delete(ctx, 999); err != nil {
		t.Fatalf("Delete() of unknown id error: %v", err)
	}
	all, _ := users.FindAll(ctx)
	if len(all) != 0 {
		t.Fatalf("expected empty table, got %d rows", len(all))
	}
}

func TestClearAllEmptiesTable(t *testing.T) {
	users := newUsers(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := users.Insert(ctx, domain.User{}); err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
	}
	if err := users.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error: %v", err)
	}
	all, err := users.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", all)
	}
}

func TestViewIsReadOnlyButSeedable(t *testing.T) {
	view, err := NewTable[domain.PatientNotification](viewHandle)
	if err != nil {
		t.Fatalf("NewTable() error: %v", err)
	}
	ctx := context.Background()
	view.Seed(domain.PatientNotification{ID: 2, Message: "second"}, domain.PatientNotification{ID: 1, Message: "first"})

	all, err := view.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error: %v", err)
	}
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Fatalf("expected rows ordered by id, got %#v", all)
	}
	if _, err := view.Insert(ctx, domain.PatientNotification{}); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if err := view.ClearAll(ctx); !errors.Is(err, domain.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestCanceledContextIsPersistenceFailure(t *testing.T) {
	users := newUsers(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := users.FindAll(ctx); !errors.Is(err, domain.ErrPersistence) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected persistence failure wrapping context.Canceled, got %v", err)
	}
}
