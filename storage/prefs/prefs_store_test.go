package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "conf", "prefs.yaml"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return store
}

func TestGetStringDefault(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.GetString("missing", "fallback")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestPutStringPersists(t *testing.T) {
	store := setupTestStore(t)

	if err := store.PutString("auth_token", "abc"); err != nil {
		t.Fatalf("PutString failed: %v", err)
	}
	if err := store.PutString("model", ""); err != nil {
		t.Fatalf("PutString failed: %v", err)
	}

	reopened, err := NewStore(store.Path())
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	got, _ := reopened.GetString("auth_token", "")
	if got != "abc" {
		t.Errorf("expected abc, got %q", got)
	}
	// An explicitly stored empty string is not replaced by the default
	model, _ := reopened.GetString("model", "default")
	if model != "" {
		t.Errorf("expected empty stored value, got %q", model)
	}
}

func TestPutStringsMergesKeys(t *testing.T) {
	store := setupTestStore(t)

	store.PutString("a", "1")
	if err := store.PutStrings(map[string]string{"b": "2", "c": "3"}); err != nil {
		t.Fatalf("PutStrings failed: %v", err)
	}

	for key, want := range map[string]string{"a": "1", "b": "2", "c": "3"} {
		got, _ := store.GetString(key, "")
		if got != want {
			t.Errorf("key %s: expected %q, got %q", key, want, got)
		}
	}
}

func TestLongValues(t *testing.T) {
	store := setupTestStore(t)

	got, _ := store.GetLong("last_sync", -1)
	if got != -1 {
		t.Errorf("expected default -1, got %d", got)
	}
	if err := store.PutLong("last_sync", 1700000000000); err != nil {
		t.Fatalf("PutLong failed: %v", err)
	}
	got, _ = store.GetLong("last_sync", -1)
	if got != 1700000000000 {
		t.Errorf("expected stored value, got %d", got)
	}
}

func TestFileWrittenAsYAML(t *testing.T) {
	store := setupTestStore(t)
	store.PutString("provider", "grs")

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if !strings.Contains(string(data), "provider: grs") {
		t.Errorf("unexpected file contents:\n%s", data)
	}
}

func TestCorruptFileReturnsError(t *testing.T) {
	store := setupTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("strings: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := store.GetString("x", ""); err == nil {
		t.Error("expected error for corrupt file")
	}
}
