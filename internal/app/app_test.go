package app

import (
	"context"
	"testing"
	"time"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/config"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
)

func TestNewWithMemoryDriver(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	a, err := New(config.Config{
		DatabaseDriver:      config.DriverMemory,
		JWTSecret:           "app-secret",
		TokenTTL:            30 * time.Minute,
		AcceptExpiredTokens: true,
	}, WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	ctx := context.Background()
	if err := a.Ping(ctx); err != nil {
		t.Fatalf("Ping on memory tables: %v", err)
	}
	user, err := a.Admins.Register(ctx, service.RegisterAdminInput{
		Email:           "ama@thomas.test",
		Number:          "0244000001",
		DOB:             "1990-04-12",
		Password:        "StrongPass!23",
		ConfirmPassword: "StrongPass!23",
		AdminType:       "Doctor",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	session, err := a.Sessions.Refresh(ctx, user.ID, a.Admins.Exists)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !session.ExpiresAt.Equal(now.Add(30 * time.Minute)) {
		t.Fatalf("expected expiry %v, got %v", now.Add(30*time.Minute), session.ExpiresAt)
	}

	created, err := a.Notifier.Create(ctx, nil, "Ward B restocked")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at from the app clock, got %v", created.CreatedAt)
	}
	feed, err := a.Notifier.List(ctx)
	if err != nil || len(feed) != 1 {
		t.Fatalf("expected one feed row, got %d (%v)", len(feed), err)
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := New(config.Config{DatabaseDriver: "oracle", DatabaseURL: "oracle://nowhere", JWTSecret: "x"})
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
