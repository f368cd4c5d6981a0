package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feed-curator/domain"
)

func newMockMetricsRepo(t *testing.T) (MetricsRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewMetricsRepository(mock, testLogger()), mock
}

func TestMetricsRepository_Record(t *testing.T) {
	t.Run("stores a fully populated run", func(t *testing.T) {
		repo, mock := newMockMetricsRepo(t)

		m := &domain.StageMetrics{
			ID:         "3f0b2f5a-9c1d-4e8a-b3a1-0a9d8c7b6e5f",
			RunID:      "run-1",
			Category:   "golang",
			Stage:      domain.StageClassification,
			ItemsIn:    40,
			ItemsOut:   31,
			Failures:   2,
			Duration:   1500 * time.Millisecond,
			RecordedAt: time.Date(2025, 8, 21, 11, 0, 0, 0, time.UTC),
		}

		mock.ExpectExec("INSERT INTO processing_metrics").
			WithArgs(m.ID, m.RunID, m.Category, m.Stage, m.ItemsIn, m.ItemsOut, m.Failures, int64(1500), m.RecordedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Record(context.Background(), m))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fills id, run id and timestamp when absent", func(t *testing.T) {
		repo, mock := newMockMetricsRepo(t)

		m := &domain.StageMetrics{
			Category: "golang",
			Stage:    domain.StageIngestion,
			ItemsIn:  17,
			ItemsOut: 17,
		}

		mock.ExpectExec("INSERT INTO processing_metrics").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), m.Category, m.Stage, m.ItemsIn, m.ItemsOut, 0, int64(0), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		require.NoError(t, repo.Record(context.Background(), m))

		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.RunID)
		assert.False(t, m.RecordedAt.IsZero())
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock := newMockMetricsRepo(t)

		mock.ExpectExec("INSERT INTO processing_metrics").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "golang", domain.StagePublication, 0, 0, 0, int64(0), pgxmock.AnyArg()).
			WillReturnError(errors.New("relation does not exist"))

		err := repo.Record(context.Background(), &domain.StageMetrics{Category: "golang", Stage: domain.StagePublication})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record metrics")
	})
}

func TestMetricsRepository_RecentRuns(t *testing.T) {
	repo, mock := newMockMetricsRepo(t)

	recordedAt := time.Date(2025, 8, 21, 11, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, run_id, category, stage, items_in, items_out, failures, duration_ms, recorded_at FROM processing_metrics WHERE category = .+ ORDER BY recorded_at DESC").
		WithArgs("golang", 5).
		WillReturnRows(pgxmock.NewRows([]string{"id", "run_id", "category", "stage", "items_in", "items_out", "failures", "duration_ms", "recorded_at"}).
			AddRow("m-2", "run-2", "golang", domain.StagePublication, 3, 3, 0, int64(250), recordedAt).
			AddRow("m-1", "run-1", "golang", domain.StageClassification, 40, 31, 2, int64(1500), recordedAt.Add(-time.Hour)))

	runs, err := repo.RecentRuns(context.Background(), "golang", 5)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, domain.StagePublication, runs[0].Stage)
	assert.Equal(t, 250*time.Millisecond, runs[0].Duration)
	assert.Equal(t, 1500*time.Millisecond, runs[1].Duration)
	assert.Equal(t, recordedAt.Add(-time.Hour), runs[1].RecordedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}
