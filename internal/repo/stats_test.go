package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/go-turnero-backend/internal/domain"
)

func TestServiceRequestCounts_MostRequestedFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		if _, err := CreateService(ctx, db, name); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	bump := func(name string, n int) {
		for i := 0; i < n; i++ {
			if err := IncrementRequestCount(ctx, db, name); err != nil {
				t.Fatalf("bump %s: %v", name, err)
			}
		}
	}
	bump("beta", 5)
	bump("gamma", 2)
	// alpha stays at 0

	got, err := ServiceRequestCounts(ctx, db)
	if err != nil {
		t.Fatalf("ServiceRequestCounts: %v", err)
	}
	want := []ServiceRequestCount{
		{Name: "beta", Requests: 5},
		{Name: "gamma", Requests: 2},
		{Name: "alpha", Requests: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestQueueStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	count, maxTS, err := QueueStats(ctx, db)
	if err != nil {
		t.Fatalf("QueueStats empty: %v", err)
	}
	if count != 0 || maxTS != nil {
		t.Fatalf("empty queue: count=%d maxTS=%v", count, maxTS)
	}

	mustCreateTicket(t, db, "A001", 1)
	mustCreateTicket(t, db, "A002", 2)

	count, maxTS, err = QueueStats(ctx, db)
	if err != nil {
		t.Fatalf("QueueStats: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if maxTS == nil || maxTS.IsZero() {
		t.Fatalf("maxUpdatedAt missing: %v", maxTS)
	}

	// A state flip must advance the watermark so ETags change.
	before := *maxTS
	time.Sleep(1100 * time.Millisecond) // SQLite DATETIME has second precision
	if err := UpdateTicketState(ctx, db, "A001", domain.StateCalled); err != nil {
		t.Fatalf("call: %v", err)
	}
	_, after, err := QueueStats(ctx, db)
	if err != nil {
		t.Fatalf("QueueStats after update: %v", err)
	}
	if after == nil || !after.After(before) {
		t.Fatalf("watermark did not advance: before=%v after=%v", before, after)
	}
}
