package creds

import (
	"os"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmptyStore(t *testing.T) {
	store := testStore(t)

	token, username, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "" || username != "" {
		t.Errorf("expected empty creds, got %q/%q", token, username)
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := testStore(t)

	if err := store.Save("abc123", "alice"); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, username, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if token != "abc123" || username != "alice" {
		t.Errorf("expected abc123/alice, got %q/%q", token, username)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := testStore(t)

	store.Save("first", "alice")
	if err := store.Save("second", "bob"); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, username, _ := store.Load()
	if token != "second" || username != "bob" {
		t.Errorf("expected second/bob, got %q/%q", token, username)
	}
}

func TestClear(t *testing.T) {
	store := testStore(t)

	store.Save("abc123", "alice")
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	token, username, _ := store.Load()
	if token != "" || username != "" {
		t.Errorf("expected cleared creds, got %q/%q", token, username)
	}
}

func TestOpenCreatesDir(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "deep", "session.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening store in nested dir: %v", err)
	}
	store.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "session.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	store.Save("abc123", "alice")
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	token, username, _ := store.Load()
	if token != "abc123" || username != "alice" {
		t.Errorf("expected creds to survive reopen, got %q/%q", token, username)
	}
}
