package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/model"
)

func newRecord(hostname string) *model.Record {
	now := time.Now().UTC()
	return &model.Record{
		ID:                uuid.New(),
		Hostname:          hostname,
		Status:            model.StatusPendingVerification,
		VerificationToken: "domain-verify-deadbeef",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func TestMemoryStore_createAndLookup(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, newRecord("example.com"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.Lookup(ctx, "example.com")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("ID mismatch: %v vs %v", got.ID, created.ID)
	}
}

func TestMemoryStore_normalizesKey(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, newRecord("Example.COM/")); err != nil {
		t.Fatal(err)
	}

	got, err := store.Lookup(ctx, "  example.com ")
	if err != nil {
		t.Fatalf("normalized lookup failed: %v", err)
	}
	if got.Hostname != "example.com" {
		t.Errorf("stored hostname = %q, want %q", got.Hostname, "example.com")
	}
}

func TestMemoryStore_lookupNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Lookup(context.Background(), "missing.example.com")
	if !errors.Is(err, ErrDomainNotFound) {
		t.Errorf("expected ErrDomainNotFound, got %v", err)
	}
}

func TestMemoryStore_updateNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Update(context.Background(), newRecord("missing.example.com"))
	if !errors.Is(err, ErrDomainNotFound) {
		t.Errorf("expected ErrDomainNotFound, got %v", err)
	}
}

func TestMemoryStore_update(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	rec, err := store.Create(ctx, newRecord("example.com"))
	if err != nil {
		t.Fatal(err)
	}

	rec.Status = model.StatusVerified
	rec.UpdatedAt = rec.UpdatedAt.Add(time.Minute)
	stored, err := store.Update(ctx, rec)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if stored.Status != model.StatusVerified {
		t.Errorf("status = %s, want %s", stored.Status, model.StatusVerified)
	}
}

func TestMemoryStore_returnsIndependentCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Create(ctx, newRecord("example.com")); err != nil {
		t.Fatal(err)
	}

	first, _ := store.Lookup(ctx, "example.com")
	first.Status = model.StatusFailed
	first.LastError = "mutated by caller"

	second, _ := store.Lookup(ctx, "example.com")
	if second.Status != model.StatusPendingVerification {
		t.Error("caller mutation leaked into stored record")
	}
	if second.LastError != "" {
		t.Error("caller mutation of LastError leaked into stored record")
	}
}
