package services

import (
	"context"
	"errors"
	"testing"
)

func TestCatalogAdd(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	created, err := svc.Add(ctx, "  passport renewal  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.Name != "passport renewal" {
		t.Fatalf("name = %q, want trimmed", created.Name)
	}

	if _, err := svc.Add(ctx, "passport renewal"); !errors.Is(err, ErrServiceExists) {
		t.Fatalf("duplicate: got %v, want ErrServiceExists", err)
	}
	if _, err := svc.Add(ctx, "   "); !errors.Is(err, ErrEmptyServiceName) {
		t.Fatalf("blank: got %v, want ErrEmptyServiceName", err)
	}
}

func TestCatalogList(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha"} {
		if _, err := svc.Add(ctx, name); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}

	got, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].Name != "alpha" || got[1].Name != "zeta" {
		t.Fatalf("list = %+v", got)
	}
}

func TestCatalogRemove(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "general"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	found, err := svc.Remove(ctx, "general")
	if err != nil || !found {
		t.Fatalf("Remove: found=%v err=%v", found, err)
	}
	found, err = svc.Remove(ctx, "general")
	if err != nil || found {
		t.Fatalf("second Remove: found=%v err=%v, want false/nil", found, err)
	}
	if _, err := svc.Remove(ctx, ""); !errors.Is(err, ErrEmptyServiceName) {
		t.Fatalf("blank: got %v, want ErrEmptyServiceName", err)
	}
}
