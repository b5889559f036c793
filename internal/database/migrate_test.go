package database

import (
	"path/filepath"
	"testing"
)

func TestRunMigrations_CreatesKVTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")

	if err := RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations returned error: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'kv_entries'`).Scan(&name)
	if err != nil {
		t.Fatalf("kv_entries table not found: %v", err)
	}
	if name != "kv_entries" {
		t.Errorf("table name = %q, want %q", name, "kv_entries")
	}
}

// TestRunMigrations_Idempotent は最新状態で再実行してもエラーにならないことを検証する。
func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")

	if err := RunMigrations(path); err != nil {
		t.Fatalf("first RunMigrations returned error: %v", err)
	}
	if err := RunMigrations(path); err != nil {
		t.Fatalf("second RunMigrations returned error: %v", err)
	}
}

func TestNewMigrator_ReportsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")
	if err := RunMigrations(path); err != nil {
		t.Fatalf("RunMigrations returned error: %v", err)
	}

	m, err := NewMigrator(path)
	if err != nil {
		t.Fatalf("NewMigrator returned error: %v", err)
	}
	defer m.Close()

	version, dirty, err := m.Version()
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
	if dirty {
		t.Error("expected clean migration state")
	}
}
