package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	perr "github.com/msto63/pascal/foundation/core/error"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "data", "history.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_AddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	inputs := []struct {
		expr, result string
		ok           bool
	}{
		{"1 + 1", "2", true},
		{"1 +", "Syntax error.", false},
		{"2 ** 10", "1024", true},
	}
	for i, in := range inputs {
		entry := &Entry{
			SessionID:  "s1",
			Expression: in.expr,
			Result:     in.result,
			OK:         in.ok,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Add(ctx, entry); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if entry.ID == "" {
			t.Error("Add() did not assign an ID")
		}
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List(0) returned %d entries, want 3", len(all))
	}
	if all[0].Expression != "1 + 1" || all[2].Expression != "2 ** 10" {
		t.Errorf("List(0) order = %q .. %q", all[0].Expression, all[2].Expression)
	}
	if all[1].OK {
		t.Error("failed entry stored as ok")
	}

	recent, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recent) != 2 || recent[0].Expression != "1 +" || recent[1].Expression != "2 ** 10" {
		t.Errorf("List(2) = %+v", recent)
	}
}

func TestStore_ClearAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, expr := range []string{"1", "2"} {
		if err := store.Add(ctx, &Entry{Expression: expr, Result: expr, OK: true}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	n, err := store.Count(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Count() = %d, %v, want 2", n, err)
	}
	removed, err := store.Clear(ctx)
	if err != nil || removed != 2 {
		t.Fatalf("Clear() = %d, %v, want 2", removed, err)
	}
	if n, _ := store.Count(ctx); n != 0 {
		t.Errorf("Count() after Clear = %d", n)
	}
}

func TestStore_ReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Add(ctx, &Entry{Expression: "PI", Result: "3.14159265358979323846264338328", OK: true}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	store.Close()

	store, err = Open(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer store.Close()
	if n, _ := store.Count(ctx); n != 1 {
		t.Errorf("Count() after reopen = %d, want 1", n)
	}
}

func TestStore_ClosedDatabase(t *testing.T) {
	store := newTestStore(t)
	store.Close()

	err := store.Add(context.Background(), &Entry{Expression: "1"})
	if !perr.HasCode(err, perr.CodeDatabaseError) {
		t.Errorf("Add() on closed store error = %v, want %s", err, perr.CodeDatabaseError)
	}
	if store.PingContext(context.Background()) == nil {
		t.Error("PingContext() on closed store = nil")
	}
}
