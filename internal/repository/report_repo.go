package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/9mit/Youtube-Intelligence/internal/model"
)

// ReportRepo persists produced analysis reports in the archive table.
// Writes are best-effort from the services' point of view; a failed
// insert never fails the request that produced the report.
type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// EnsureSchema creates the archive table and index if they do not exist.
// Called once at startup.
func (r *ReportRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analysis_archive (
			id         BIGSERIAL PRIMARY KEY,
			mode       VARCHAR(16) NOT NULL,
			subject    VARCHAR(512) NOT NULL,
			report     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_archive_created_at
		ON analysis_archive (created_at)`)
	return err
}

// Insert archives one report.
func (r *ReportRepo) Insert(ctx context.Context, mode, subject string, report json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO analysis_archive (mode, subject, report)
		VALUES ($1, $2, $3)`, mode, subject, report)
	return err
}

// Recent returns the latest archive entries, newest first.
func (r *ReportRepo) Recent(ctx context.Context, limit int) ([]model.ArchiveEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, mode, subject, report, created_at
		FROM analysis_archive
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.ArchiveEntry{}
	for rows.Next() {
		var e model.ArchiveEntry
		if err := rows.Scan(&e.ID, &e.Mode, &e.Subject, &e.Report, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountsByMode returns how many archived reports exist per analysis mode.
func (r *ReportRepo) CountsByMode(ctx context.Context) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT mode, COUNT(*)
		FROM analysis_archive
		GROUP BY mode`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var mode string
		var n int64
		if err := rows.Scan(&mode, &n); err != nil {
			return nil, err
		}
		counts[mode] = n
	}
	return counts, rows.Err()
}

// PruneOlderThan deletes archive rows created before the cutoff and
// reports how many were removed.
func (r *ReportRepo) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM analysis_archive
		WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ExportRow is one CSV line of the archive export: metadata only, not the
// report bodies.
type ExportRow struct {
	ID        int64
	Mode      string
	Subject   string
	CreatedAt time.Time
}

// ExportRows streams the archive metadata oldest-first for the CSV export.
func (r *ReportRepo) ExportRows(ctx context.Context) ([]ExportRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, mode, subject, created_at
		FROM analysis_archive
		ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(&row.ID, &row.Mode, &row.Subject, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
