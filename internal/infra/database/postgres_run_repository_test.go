package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"course_activity_report/internal/domain/run"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupRunRepository(t *testing.T) (*PostgresRunRepository, *sql.DB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Postgres container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("reports"),
		postgrescontainer.WithUsername("reporter"),
		postgrescontainer.WithPassword("reporter"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := NewPostgresConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, EnsureSchema(ctx, db))

	return NewPostgresRunRepository(db), db
}

func TestPostgresRunRepositorySaveUpserts(t *testing.T) {
	repo, db := setupRunRepository(t)
	ctx := context.Background()

	started := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	r := run.New(started)
	require.NoError(t, repo.Save(ctx, r))

	r.Advance(run.StateWritten)
	r.RecordCount = 12
	r.OutputFile = sql.NullString{String: "populated_template.xlsx", Valid: true}
	r.Finish(run.StatePublishFailed, started.Add(time.Minute), errors.New("dial tcp: connection refused"))
	require.NoError(t, repo.Save(ctx, r))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM report_runs WHERE id = $1`, r.ID).Scan(&count))
	require.Equal(t, 1, count)

	runs, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	require.Equal(t, r.ID, got.ID)
	require.True(t, started.Equal(got.StartedAt))
	require.Equal(t, run.StatePublishFailed, got.State)
	require.Equal(t, 12, got.RecordCount)
	require.Equal(t, r.OutputFile, got.OutputFile)
	require.True(t, got.FinishedAt.Valid)
	require.True(t, started.Add(time.Minute).Equal(got.FinishedAt.Time))
	require.Equal(t, "dial tcp: connection refused", got.Error.String)
	require.False(t, got.RemotePath.Valid)
}

func TestPostgresRunRepositoryScansNulls(t *testing.T) {
	repo, _ := setupRunRepository(t)
	ctx := context.Background()

	r := run.New(time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, r))

	runs, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	require.Equal(t, run.StateConfigLoaded, got.State)
	require.False(t, got.FinishedAt.Valid)
	require.False(t, got.OutputFile.Valid)
	require.False(t, got.RemotePath.Valid)
	require.False(t, got.Error.Valid)
	require.Zero(t, got.RecordCount)
}

func TestPostgresRunRepositoryListRecentOrderAndLimit(t *testing.T) {
	repo, _ := setupRunRepository(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	var saved []*run.Run
	for i := 0; i < 4; i++ {
		r := run.New(base.Add(time.Duration(i) * 24 * time.Hour))
		r.Finish(run.StatePublished, r.StartedAt.Add(time.Minute), nil)
		require.NoError(t, repo.Save(ctx, r))
		saved = append(saved, r)
	}

	runs, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, saved[3].ID, runs[0].ID)
	require.Equal(t, saved[2].ID, runs[1].ID)
	require.Equal(t, saved[1].ID, runs[2].ID)

	empty, err := repo.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, empty)
	require.NotNil(t, empty)
}
