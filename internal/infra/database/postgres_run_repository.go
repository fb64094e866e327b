package database

import (
	"context"
	"database/sql"
	"fmt"

	"course_activity_report/internal/domain/run"
)

type PostgresRunRepository struct {
	db *sql.DB
}

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

// Save upserts the run by ID so a run can be stored more than once as it progresses.
func (r *PostgresRunRepository) Save(ctx context.Context, rr *run.Run) error {
	query := `INSERT INTO report_runs (id, started_at, finished_at, state, record_count, output_file, remote_path, error)
               VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
               ON CONFLICT (id) DO UPDATE
               SET finished_at = EXCLUDED.finished_at, state = EXCLUDED.state, record_count = EXCLUDED.record_count,
                   output_file = EXCLUDED.output_file, remote_path = EXCLUDED.remote_path, error = EXCLUDED.error`

	_, err := r.db.ExecContext(ctx, query,
		rr.ID, rr.StartedAt, rr.FinishedAt, string(rr.State), rr.RecordCount, rr.OutputFile, rr.RemotePath, rr.Error)
	if err != nil {
		return fmt.Errorf("error saving report run: %w", err)
	}
	return nil
}

func (r *PostgresRunRepository) ListRecent(ctx context.Context, limit int) ([]*run.Run, error) {
	query := `SELECT id, started_at, finished_at, state, record_count, output_file, remote_path, error
               FROM report_runs ORDER BY started_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing report runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*run.Run, 0)
	for rows.Next() {
		rr := &run.Run{}
		var state string
		if err := rows.Scan(&rr.ID, &rr.StartedAt, &rr.FinishedAt, &state, &rr.RecordCount, &rr.OutputFile, &rr.RemotePath, &rr.Error); err != nil {
			return nil, fmt.Errorf("error scanning report run: %w", err)
		}
		rr.State = run.State(state)
		runs = append(runs, rr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report runs: %w", err)
	}
	return runs, nil
}
