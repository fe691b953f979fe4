package database

import (
	"path/filepath"
	"testing"
	"time"
)

// openTestDB creates a migrated database in a temp dir.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// createTestUser inserts a user and returns its id.
func createTestUser(t *testing.T, db *DB, name, email string) int64 {
	t.Helper()

	id, err := db.CreateUser(name, email, nil)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return id
}

// day parses a YYYY-MM-DD string for test fixtures.
func day(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}
