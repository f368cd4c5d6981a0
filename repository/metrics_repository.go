package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"feed-curator/domain"
)

// MetricsRepository implementation.
type metricsRepository struct {
	db     DB
	logger *slog.Logger
}

// NewMetricsRepository creates a new processing metrics repository.
func NewMetricsRepository(db DB, logger *slog.Logger) MetricsRepository {
	return &metricsRepository{
		db:     db,
		logger: logger,
	}
}

func (r *metricsRepository) Record(ctx context.Context, m *domain.StageMetrics) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("failed to record metrics: database connection is nil")
	}

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.RunID == "" {
		m.RunID = uuid.New().String()
	}
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now()
	}

	query := `
		INSERT INTO processing_metrics (id, run_id, category, stage, items_in, items_out, failures, duration_ms, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		m.ID, m.RunID, m.Category, m.Stage,
		m.ItemsIn, m.ItemsOut, m.Failures,
		m.Duration.Milliseconds(), m.RecordedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to record metrics", "error", err, "category", m.Category, "stage", m.Stage)
		return fmt.Errorf("failed to record metrics: %w", err)
	}

	return nil
}

func (r *metricsRepository) RecentRuns(ctx context.Context, category string, limit int) ([]*domain.StageMetrics, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("failed to get recent runs: database connection is nil")
	}

	query := `
		SELECT id, run_id, category, stage, items_in, items_out, failures, duration_ms, recorded_at
		FROM processing_metrics
		WHERE category = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, category, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to get recent runs", "error", err, "category", category)
		return nil, fmt.Errorf("failed to get recent runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.StageMetrics

	for rows.Next() {
		var (
			m          domain.StageMetrics
			durationMS int64
		)

		err := rows.Scan(&m.ID, &m.RunID, &m.Category, &m.Stage, &m.ItemsIn, &m.ItemsOut, &m.Failures, &durationMS, &m.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan metrics row: %w", err)
		}

		m.Duration = time.Duration(durationMS) * time.Millisecond

		runs = append(runs, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get recent runs: %w", err)
	}

	return runs, nil
}
