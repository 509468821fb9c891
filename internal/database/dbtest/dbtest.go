// Package dbtest provides sqlite-backed stores for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/database"
)

// NewTestDB opens a private in-memory database with the schema applied.
// The database is closed when the test ends.
func NewTestDB(t testing.TB) *database.GormDB {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewFileDB opens a WAL-mode sqlite file under t.TempDir so several
// connections can write concurrently.
func NewFileDB(t testing.TB) *database.GormDB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Type:     "sqlite",
		LogLevel: "silent",
		SQLite:   config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "catalog.db")},
	})
	if err != nil {
		t.Fatalf("open sqlite file: %v", err)
	}
	if err := db.InitSchema(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
