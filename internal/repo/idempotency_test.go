package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIdempotency_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec, err := CreateIdempotency(ctx, db, "kiosk-1", "k-1", "A001", 201, time.Hour)
	if err != nil {
		t.Fatalf("CreateIdempotency: %v", err)
	}
	if rec.TicketNumber != "A001" || rec.Status != 201 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "kiosk-1", "k-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("GetIdempotency: %v", err)
	}
	if got.TicketNumber != "A001" {
		t.Fatalf("replay number = %q, want A001", got.TicketNumber)
	}
}

func TestIdempotency_ScopedByClient(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := CreateIdempotency(ctx, db, "kiosk-1", "k-1", "A001", 201, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Same key, different client: no replay, and no duplicate error either.
	if _, err := GetIdempotency(ctx, db, "kiosk-2", "k-1", now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other client, got %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "kiosk-2", "k-1", "A002", 201, time.Hour); err != nil {
		t.Fatalf("other client insert should succeed: %v", err)
	}
}

func TestIdempotency_DuplicateTuple(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "kiosk-1", "k-1", "A001", 201, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "kiosk-1", "k-1", "A002", 201, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestIdempotency_ExpiredAndBlankKey(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "kiosk-1", "k-old", "A001", 201, time.Millisecond); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := GetIdempotency(ctx, db, "kiosk-1", "k-old", time.Now().UTC().Add(time.Second)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired record, got %v", err)
	}

	if _, err := GetIdempotency(ctx, db, "kiosk-1", "   ", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank key, got %v", err)
	}
}
