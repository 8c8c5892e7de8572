package testutil

import (
	"testing"

	"sandboxdash/internal/db"
)

// SetupTestDB creates a migrated in-memory database that is closed when the test ends
func SetupTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.New(&db.Config{DSN: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return database
}
