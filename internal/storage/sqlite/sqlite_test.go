package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mmynk/groupledger/internal/storage/storagetest"
)

func newTestStore(t *testing.T, dbPath string) *SQLiteStore {
	t.Helper()
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer store.Close()

	storagetest.Run(t, store)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "ledger.db")
	ctx := context.Background()

	first := newTestStore(t, dbPath)
	want := storagetest.SampleGroup("g-1", "ABCD2345")
	if err := first.SaveGroup(ctx, want); err != nil {
		t.Fatalf("SaveGroup failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening runs migrations again; they must be a no-op.
	second := newTestStore(t, dbPath)
	defer second.Close()

	got, err := second.GetGroup(ctx, "g-1")
	if err != nil {
		t.Fatalf("GetGroup after reopen failed: %v", err)
	}
	storagetest.AssertGroupEqual(t, want, got)
}

func TestSQLiteStoreRejectsDuplicateInviteCode(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer store.Close()
	ctx := context.Background()

	if err := store.SaveGroup(ctx, storagetest.SampleGroup("g-1", "SAMECODE")); err != nil {
		t.Fatalf("SaveGroup failed: %v", err)
	}
	if err := store.SaveGroup(ctx, storagetest.SampleGroup("g-2", "SAMECODE")); err == nil {
		t.Error("expected unique invite code violation")
	}
}

func TestSQLiteStoreForeignKeysSurviveReconnect(t *testing.T) {
	store := newTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	defer store.Close()
	ctx := context.Background()

	// No idle connections: every statement runs on a freshly opened one.
	store.db.SetMaxIdleConns(0)

	var enabled int
	if err := store.db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("PRAGMA foreign_keys failed: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("foreign_keys = %d on a new connection, want 1", enabled)
	}

	if err := store.SaveGroup(ctx, storagetest.SampleGroup("g-1", "CASCADE1")); err != nil {
		t.Fatalf("SaveGroup failed: %v", err)
	}
	if err := store.DeleteGroup(ctx, "g-1"); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	for _, table := range []string{"members", "expenses", "expense_payers", "expense_splits", "settlements", "budgets"} {
		var n int
		if err := store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			t.Fatalf("count %s failed: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d rows after group delete, want 0", table, n)
		}
	}
}
