package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"autoglm-helper/app/domains"
)

func newTestCommandService(t *testing.T) (*CommandService, *memStorage) {
	t.Helper()
	storage := newMemStorage()
	svc := NewCommandService(storage)
	var mu sync.Mutex
	clock := time.UnixMilli(1700000000000)
	svc.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Second)
		return clock
	}
	return svc, storage
}

func TestMergeCommand(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	earlier := time.UnixMilli(1600000000000)
	result := "success"

	tests := []struct {
		name     string
		existing *domains.Command
		incoming *domains.Command
		want     *domains.Command
	}{
		{
			name:     "blank title keeps existing title",
			existing: &domains.Command{ID: "x", Title: "A", Content: "B", UpdatedAt: earlier},
			incoming: &domains.Command{ID: "x", Title: "", Content: "C"},
			want:     &domains.Command{ID: "x", Title: "A", Content: "C", UpdatedAt: now},
		},
		{
			name:     "blank content keeps existing content",
			existing: &domains.Command{ID: "x", Title: "A", Content: "B"},
			incoming: &domains.Command{ID: "x", Title: "T", Content: "  ", UpdatedAt: earlier},
			want:     &domains.Command{ID: "x", Title: "T", Content: "B", UpdatedAt: earlier},
		},
		{
			name:     "last run fields carried over",
			existing: &domains.Command{ID: "x", Title: "A", Content: "B", LastResult: &result, LastRunAt: &earlier},
			incoming: &domains.Command{ID: "x", Content: "C", UpdatedAt: now},
			want:     &domains.Command{ID: "x", Title: "A", Content: "C", UpdatedAt: now, LastResult: &result, LastRunAt: &earlier},
		},
		{
			name:     "new row",
			existing: nil,
			incoming: &domains.Command{ID: "x", Content: "C"},
			want:     &domains.Command{ID: "x", Content: "C", UpdatedAt: now},
		},
		{
			name:     "both blank is dropped",
			existing: nil,
			incoming: &domains.Command{ID: "x", Title: " ", Content: ""},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeCommand(tt.existing, tt.incoming, now)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected merged command, got nil")
			}
			if got.ID != tt.want.ID || got.Title != tt.want.Title || got.Content != tt.want.Content {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if !got.UpdatedAt.Equal(tt.want.UpdatedAt) {
				t.Errorf("expected updatedAt %v, got %v", tt.want.UpdatedAt, got.UpdatedAt)
			}
			if (got.LastResult == nil) != (tt.want.LastResult == nil) {
				t.Errorf("lastResult mismatch: %v vs %v", got.LastResult, tt.want.LastResult)
			}
			if (got.LastRunAt == nil) != (tt.want.LastRunAt == nil) {
				t.Errorf("lastRunAt mismatch: %v vs %v", got.LastRunAt, tt.want.LastRunAt)
			}
		})
	}
}

func TestMergeCommandIdempotent(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	existing := &domains.Command{ID: "x", Title: "A", Content: "B", UpdatedAt: now}
	incoming := &domains.Command{ID: "x", Content: "C", UpdatedAt: now}

	once := MergeCommand(existing, incoming, now)
	twice := MergeCommand(once, incoming, now)
	if *once != *twice {
		t.Errorf("expected idempotent merge, got %+v then %+v", once, twice)
	}
}

func TestUpsertCommand(t *testing.T) {
	svc, storage := newTestCommandService(t)
	ctx := context.Background()

	if _, err := svc.UpsertCommand(ctx, &domains.Command{ID: "x", Title: "A", Content: "B"}); err != nil {
		t.Fatalf("UpsertCommand failed: %v", err)
	}
	stored, err := svc.UpsertCommand(ctx, &domains.Command{ID: "x", Content: "C"})
	if err != nil {
		t.Fatalf("UpsertCommand failed: %v", err)
	}
	if stored.Title != "A" || stored.Content != "C" {
		t.Errorf("expected {A,C}, got {%s,%s}", stored.Title, stored.Content)
	}

	dropped, err := svc.UpsertCommand(ctx, &domains.Command{ID: "y"})
	if err != nil {
		t.Fatalf("UpsertCommand failed: %v", err)
	}
	if dropped != nil {
		t.Errorf("expected blank command to be dropped, got %+v", dropped)
	}
	if c, _ := storage.GetCommand(ctx, "y"); c != nil {
		t.Error("expected blank command not to be stored")
	}
}

func TestUpsertCommandGeneratesID(t *testing.T) {
	svc, _ := newTestCommandService(t)

	stored, err := svc.UpsertCommand(context.Background(), &domains.Command{Content: "go home"})
	if err != nil {
		t.Fatalf("UpsertCommand failed: %v", err)
	}
	if stored.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestAddCommandReturnsSortedList(t *testing.T) {
	svc, _ := newTestCommandService(t)
	ctx := context.Background()

	first, _, err := svc.AddCommand(ctx, "first", "one")
	if err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}
	second, commands, err := svc.AddCommand(ctx, "second", "two")
	if err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	if len(commands) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(commands))
	}
	if commands[0].ID != second.ID || commands[1].ID != first.ID {
		t.Errorf("expected newest first, got %s, %s", commands[0].ID, commands[1].ID)
	}
}

func TestUpdateCommandKeepsRunFields(t *testing.T) {
	svc, storage := newTestCommandService(t)
	ctx := context.Background()

	runAt := time.UnixMilli(1650000000000)
	storage.commands["x"] = domains.Command{
		ID: "x", Title: "A", Content: "B", UpdatedAt: runAt,
		LastResult: strPtr("failure"), LastRunAt: &runAt,
	}

	commands, err := svc.UpdateCommand(ctx, "x", "A2", "B2")
	if err != nil {
		t.Fatalf("UpdateCommand failed: %v", err)
	}
	if len(commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(commands))
	}
	got := commands[0]
	if got.Title != "A2" || got.Content != "B2" {
		t.Errorf("unexpected title/content: %+v", got)
	}
	if got.LastResult == nil || *got.LastResult != "failure" {
		t.Errorf("expected lastResult kept, got %v", got.LastResult)
	}
	if !got.UpdatedAt.After(runAt) {
		t.Errorf("expected updatedAt to advance, got %v", got.UpdatedAt)
	}
}

func TestDeleteCommand(t *testing.T) {
	svc, _ := newTestCommandService(t)
	ctx := context.Background()

	cmd, _, _ := svc.AddCommand(ctx, "t", "c")
	commands, err := svc.DeleteCommand(ctx, cmd.ID)
	if err != nil {
		t.Fatalf("DeleteCommand failed: %v", err)
	}
	if len(commands) != 0 {
		t.Errorf("expected empty list, got %d", len(commands))
	}

	if _, err := svc.DeleteCommand(ctx, "missing"); err != nil {
		t.Errorf("expected deleting a missing id to succeed, got %v", err)
	}
}

func TestSaveFailureIsWrapped(t *testing.T) {
	svc, storage := newTestCommandService(t)
	storage.failSave = true

	if _, _, err := svc.AddCommand(context.Background(), "t", "c"); err == nil {
		t.Error("expected error when storage fails")
	}
}

func TestRecordRun(t *testing.T) {
	svc, storage := newTestCommandService(t)
	ctx := context.Background()

	created := time.UnixMilli(1600000000000)
	storage.commands["abc"] = domains.Command{ID: "abc", Title: "Open", Content: "old", UpdatedAt: created}

	entry, err := svc.RecordRun(ctx, &domains.CommandHistory{
		CommandID:       "abc",
		ContentSnapshot: "new",
		Result:          "success",
		Message:         strPtr("ok"),
	})
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if entry.ID == "" || entry.Timestamp.IsZero() {
		t.Errorf("expected ID and timestamp to be filled, got %+v", entry)
	}

	cmd, _ := storage.GetCommand(ctx, "abc")
	if cmd.Content != "new" || cmd.Title != "Open" {
		t.Errorf("unexpected command after run: %+v", cmd)
	}
	if cmd.LastResult == nil || *cmd.LastResult != "success" {
		t.Errorf("expected lastResult success, got %v", cmd.LastResult)
	}
	if cmd.LastRunAt == nil || !cmd.LastRunAt.Equal(entry.Timestamp) {
		t.Errorf("expected lastRunAt %v, got %v", entry.Timestamp, cmd.LastRunAt)
	}
	if !cmd.UpdatedAt.Equal(created) {
		t.Errorf("expected updatedAt unchanged, got %v", cmd.UpdatedAt)
	}

	history, err := svc.GetHistory(ctx, "abc")
	if err != nil {
		t.Fatalf("GetHistory failed: %v", err)
	}
	if len(history) != 1 || history[0].ContentSnapshot != "new" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestRecordRunBlankSnapshotUsesStoredContent(t *testing.T) {
	svc, storage := newTestCommandService(t)
	ctx := context.Background()
	storage.commands["abc"] = domains.Command{ID: "abc", Content: "stored", UpdatedAt: time.UnixMilli(1)}

	entry, err := svc.RecordRun(ctx, &domains.CommandHistory{CommandID: "abc", Result: "failure"})
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if entry.ContentSnapshot != "stored" {
		t.Errorf("expected snapshot from stored content, got %q", entry.ContentSnapshot)
	}
}

func TestRecordRunUnknownCommand(t *testing.T) {
	svc, storage := newTestCommandService(t)
	ctx := context.Background()

	if _, err := svc.RecordRun(ctx, &domains.CommandHistory{CommandID: "ghost", Result: "failure"}); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if c, _ := storage.GetCommand(ctx, "ghost"); c != nil {
		t.Errorf("expected no command row for blank run, got %+v", c)
	}
	history, _ := svc.GetHistory(ctx, "ghost")
	if len(history) != 1 {
		t.Errorf("expected history to be recorded, got %d", len(history))
	}
}

func TestConcurrentUpsertsKeepLastFields(t *testing.T) {
	svc, storage := newTestCommandService(t)
	ctx := context.Background()
	storage.commands["x"] = domains.Command{ID: "x", Title: "A", Content: "B", UpdatedAt: time.UnixMilli(1)}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.UpsertCommand(ctx, &domains.Command{ID: "x", Content: "C"}); err != nil {
				t.Errorf("UpsertCommand failed: %v", err)
			}
		}()
	}
	wg.Wait()

	cmd, _ := storage.GetCommand(ctx, "x")
	if cmd.Title != "A" || cmd.Content != "C" {
		t.Errorf("expected {A,C}, got {%s,%s}", cmd.Title, cmd.Content)
	}
}
