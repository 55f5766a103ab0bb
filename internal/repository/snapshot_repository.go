package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Nichakorn25/CPE-Teaching-Schedule-sub000/internal/domain"
)

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot domain.ScheduleSnapshot) error
	GetBySelection(ctx context.Context, sel domain.Selection) (domain.ScheduleSnapshot, error)
	ListStale(ctx context.Context, before time.Time) ([]domain.Selection, error)
}

type SnapshotPostgresRepository struct {
	execer Execer
}

func NewSnapshotPostgresRepository(execer Execer) *SnapshotPostgresRepository {
	return &SnapshotPostgresRepository{execer: execer}
}

func (r *SnapshotPostgresRepository) Upsert(ctx context.Context, snapshot domain.ScheduleSnapshot) error {
	const query = `
INSERT INTO schedule_view.slot_snapshots (
	major_id,
	academic_year,
	term,
	id,
	payload,
	fetched_at
) VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (major_id, academic_year, term) DO UPDATE SET
	id = EXCLUDED.id,
	payload = EXCLUDED.payload,
	fetched_at = EXCLUDED.fetched_at
`

	_, err := r.execer.ExecContext(
		ctx,
		query,
		snapshot.Selection.MajorID,
		snapshot.Selection.AcademicYear,
		snapshot.Selection.Term,
		snapshot.ID,
		snapshot.Payload,
		snapshot.FetchedAt,
	)
	return err
}

func (r *SnapshotPostgresRepository) GetBySelection(ctx context.Context, sel domain.Selection) (domain.ScheduleSnapshot, error) {
	const query = `
SELECT id, payload, fetched_at
FROM schedule_view.slot_snapshots
WHERE major_id = $1 AND academic_year = $2 AND term = $3
`

	snapshot := domain.ScheduleSnapshot{Selection: sel}
	err := r.execer.QueryRowContext(ctx, query, sel.MajorID, sel.AcademicYear, sel.Term).Scan(
		&snapshot.ID,
		&snapshot.Payload,
		&snapshot.FetchedAt,
	)
	if err != nil {
		return domain.ScheduleSnapshot{}, err
	}

	return snapshot, nil
}

func (r *SnapshotPostgresRepository) ListStale(ctx context.Context, before time.Time) ([]domain.Selection, error) {
	const query = `
SELECT major_id, academic_year, term
FROM schedule_view.slot_snapshots
WHERE fetched_at < $1
ORDER BY fetched_at ASC
`

	rows, err := r.execer.QueryContext(ctx, query, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []domain.Selection
	for rows.Next() {
		var sel domain.Selection
		if err := rows.Scan(&sel.MajorID, &sel.AcademicYear, &sel.Term); err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return selections, nil
}
