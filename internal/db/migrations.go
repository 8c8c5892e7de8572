package db

import (
	"context"
	"fmt"
)

// GetCurrentVersion returns the current migration version
func (db *DB) GetCurrentVersion(ctx context.Context) (uint, error) {
	var version uint
	query := `SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1`

	if err := db.GetContext(ctx, &version, query); err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	return version, nil
}
