package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"autoglm-helper/app/domains"
	"autoglm-helper/app/utils"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	store, err := NewStore(connString)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreCommandLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	id := utils.GenerateUUID()
	t.Cleanup(func() { store.DeleteCommand(ctx, id) })

	if err := store.SaveCommand(ctx, &domains.Command{ID: id, Title: "A", Content: "B", UpdatedAt: time.UnixMilli(1000)}); err != nil {
		t.Fatalf("SaveCommand failed: %v", err)
	}

	result := "ok"
	runAt := time.UnixMilli(2000)
	if err := store.SaveCommand(ctx, &domains.Command{
		ID: id, Title: "A", Content: "C", UpdatedAt: time.UnixMilli(1500), LastResult: &result, LastRunAt: &runAt,
	}); err != nil {
		t.Fatalf("SaveCommand replace failed: %v", err)
	}

	got, err := store.GetCommand(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetCommand failed: %v (%v)", err, got)
	}
	if got.Content != "C" || got.LastResult == nil || *got.LastResult != "ok" {
		t.Errorf("unexpected command: %+v", got)
	}

	if err := store.DeleteCommand(ctx, id); err != nil {
		t.Fatalf("DeleteCommand failed: %v", err)
	}
	got, _ = store.GetCommand(ctx, id)
	if got != nil {
		t.Errorf("expected deleted command, got %+v", got)
	}
}

func TestStoreHistoryNewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	commandID := utils.GenerateUUID()

	for i, ms := range []int64{1000, 3000, 2000} {
		entry := &domains.CommandHistory{
			ID:        utils.GenerateUUID(),
			CommandID: commandID,
			Result:    "ok",
			Timestamp: time.UnixMilli(ms),
		}
		if err := store.InsertHistory(ctx, entry); err != nil {
			t.Fatalf("InsertHistory %d failed: %v", i, err)
		}
	}

	history, err := store.ListHistory(ctx, commandID)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Timestamp.After(history[i-1].Timestamp) {
			t.Errorf("history not sorted newest first at %d", i)
		}
	}
}
