package database

import (
	"context"
	"fmt"
	"time"
)

// DefaultRunListLimit caps ListImportRuns when no limit is given
const DefaultRunListLimit = 50

// ImportRunStore records import run history
type ImportRunStore interface {
	CreateImportRun(ctx context.Context, run *ImportRun) error
	CompleteImportRun(ctx context.Context, run *ImportRun) error
	ListImportRuns(ctx context.Context, limit int) ([]ImportRun, error)
}

// PostgresImportRunStore implements ImportRunStore with pgx
type PostgresImportRunStore struct {
	db DBTX
}

// NewPostgresImportRunStore creates an import run store on db
func NewPostgresImportRunStore(db DBTX) *PostgresImportRunStore {
	return &PostgresImportRunStore{db: db}
}

// CreateImportRun inserts run with status 'running'
func (s *PostgresImportRunStore) CreateImportRun(ctx context.Context, run *ImportRun) error {
	run.Status = RunStatusRunning
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO import_runs (id, filename, format, archive_path, checksum, status, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, run.ID, run.Filename, run.Format, run.ArchivePath, run.Checksum, run.Status, run.StartedAt)
	if err != nil {
		return fmt.Errorf("failed to insert import run: %w", err)
	}
	return nil
}

// CompleteImportRun stores the final counters and status of run
func (s *PostgresImportRunStore) CompleteImportRun(ctx context.Context, run *ImportRun) error {
	now := time.Now()
	run.CompletedAt = &now
	_, err := s.db.Exec(ctx, `
		UPDATE import_runs
		SET status = $2, imported = $3, total = $4, message = $5, completed_at = $6
		WHERE id = $1
	`, run.ID, run.Status, run.Imported, run.Total, run.Message, now)
	if err != nil {
		return fmt.Errorf("failed to complete import run %s: %w", run.ID, err)
	}
	return nil
}

// MarkInterruptedRuns flags runs left 'running' by a previous process
func (s *PostgresImportRunStore) MarkInterruptedRuns(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE import_runs
		SET status = $1, completed_at = NOW(), message = 'Service restarted during processing'
		WHERE status = $2
	`, RunStatusInterrupted, RunStatusRunning)
	if err != nil {
		return 0, fmt.Errorf("failed to mark interrupted runs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteImportRunsBefore removes finished runs completed before cutoff
func (s *PostgresImportRunStore) DeleteImportRunsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM import_runs
		WHERE status <> $1 AND completed_at < $2
	`, RunStatusRunning, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete import runs: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListImportRuns returns the most recent runs first
func (s *PostgresImportRunStore) ListImportRuns(ctx context.Context, limit int) ([]ImportRun, error) {
	if limit <= 0 {
		limit = DefaultRunListLimit
	}
	rows, err := s.db.Query(ctx, `
		SELECT id, filename, format, archive_path, checksum, status,
		       imported, total, message, started_at, completed_at
		FROM import_runs
		ORDER BY started_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	defer rows.Close()

	runs := make([]ImportRun, 0)
	for rows.Next() {
		var r ImportRun
		if err := rows.Scan(
			&r.ID, &r.Filename, &r.Format, &r.ArchivePath, &r.Checksum, &r.Status,
			&r.Imported, &r.Total, &r.Message, &r.StartedAt, &r.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
