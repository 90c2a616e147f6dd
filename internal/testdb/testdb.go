// Package testdb provides a shared test database helper backed by an
// in-memory SQLite database.
package testdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/helixml/docnav/infrastructure/persistence"
	"github.com/helixml/docnav/internal/database"
)

// New creates an in-memory SQLite database with the report tables migrated.
// The database is closed when the test finishes.
func New(t *testing.T) database.Database {
	t.Helper()
	return open(t, "sqlite:///:memory:")
}

// NewFile is New backed by a file in t.TempDir(), for tests that reopen
// the database or need foreign keys enforced.
func NewFile(t *testing.T) (database.Database, string) {
	t.Helper()
	url := "sqlite:///" + filepath.Join(t.TempDir(), "docnav.db")
	return open(t, url), url
}

func open(t *testing.T, url string) database.Database {
	t.Helper()
	db, err := database.NewDatabase(context.Background(), url)
	if err != nil {
		t.Fatalf("testdb: open database: %v", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("testdb: auto migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
