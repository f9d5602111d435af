package db

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "trackrate.db")

	db, err := NewDB(fname)
	if err != nil {
		t.Fatalf("failed to create test DB: %v", err)
	}
	return db
}

func cleanupTestDB(t *testing.T, db *DB) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func tableExists(t *testing.T, db *DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return n > 0
}

func TestNewDB_CreatesSchema(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	for _, table := range []string{"tracks", "track_samples", "schema_migrations"} {
		if !tableExists(t, db, table) {
			t.Errorf("table %s missing", table)
		}
	}
}

func TestNewDB_Reopen(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "trackrate.db")
	first, err := NewDB(fname)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	first.Close()

	second, err := NewDB(fname)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()

	migrations, err := MigrationsFS()
	if err != nil {
		t.Fatal(err)
	}
	version, dirty, err := second.MigrateVersion(migrations)
	if err != nil {
		t.Fatalf("MigrateVersion: %v", err)
	}
	if version != 2 || dirty {
		t.Errorf("version = %d dirty = %v, want 2 false", version, dirty)
	}
}

func TestApplyPragmas(t *testing.T) {
	db := setupTestDB(t)
	defer cleanupTestDB(t, db)

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}
