package database

import "testing"

func newTestDB(t testing.TB) *GormDB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
