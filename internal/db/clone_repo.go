package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sandboxdash/internal/errors"
	"sandboxdash/internal/interfaces"

	"github.com/google/uuid"
)

var _ interfaces.CloneRecorder = (*CloneRepository)(nil)

// CloneRepository handles database operations for clone requests
type CloneRepository struct {
	db *DB
}

// NewCloneRepository creates a new clone repository
func NewCloneRepository(db *DB) *CloneRepository {
	return &CloneRepository{db: db}
}

// Create inserts a pending clone request. ID and CreatedAt are filled when empty.
func (r *CloneRepository) Create(ctx context.Context, record *interfaces.CloneRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Status == "" {
		record.Status = interfaces.ClonePending
	}

	query := `
		INSERT INTO clone_requests (id, vm_uuid, vm_name, status, error, created_at)
		VALUES (:id, :vm_uuid, :vm_name, :status, :error, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("failed to create clone request: %w", err)
	}

	return nil
}

// Finish records the outcome of a clone request
func (r *CloneRepository) Finish(ctx context.Context, id string, status interfaces.CloneStatus, errMsg string) error {
	query := `
		UPDATE clone_requests
		SET status = ?, error = ?, finished_at = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, errMsg, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to finish clone request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("clone request not found")
	}

	return nil
}

// Get returns a clone request by ID
func (r *CloneRepository) Get(ctx context.Context, id string) (*interfaces.CloneRecord, error) {
	query := `
		SELECT id, vm_uuid, vm_name, status, error, created_at, finished_at
		FROM clone_requests
		WHERE id = ?`

	var record interfaces.CloneRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewWithDetails(errors.ErrNotFound, "clone request not found", "ID: "+id)
		}
		return nil, fmt.Errorf("failed to get clone request: %w", err)
	}

	return &record, nil
}

// ListRecent returns the newest clone requests first
func (r *CloneRepository) ListRecent(ctx context.Context, limit int) ([]interfaces.CloneRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, vm_uuid, vm_name, status, error, created_at, finished_at
		FROM clone_requests
		ORDER BY created_at DESC
		LIMIT ?`

	records := []interfaces.CloneRecord{}
	if err := r.db.SelectContext(ctx, &records, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list clone requests: %w", err)
	}

	return records, nil
}
