package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"feed-curator/domain"
	"feed-curator/repository"
)

// MetricsRecorder stamps every stage metric of one process invocation
// with a shared run id so the stages of a run can be correlated later.
// Recording is best-effort: a metrics write failure is logged and never
// surfaces into pipeline results.
type MetricsRecorder struct {
	repo   repository.MetricsRepository
	logger *slog.Logger
	runID  string
}

// NewMetricsRecorder creates a recorder with a fresh run id.
func NewMetricsRecorder(repo repository.MetricsRepository, logger *slog.Logger) *MetricsRecorder {
	return &MetricsRecorder{
		repo:   repo,
		logger: logger,
		runID:  uuid.New().String(),
	}
}

// RunID returns the id stamped on this recorder's metrics.
func (m *MetricsRecorder) RunID() string {
	if m == nil {
		return ""
	}

	return m.runID
}

// Record persists one stage measurement. Safe to call on a nil recorder
// so services can run without metrics wired.
func (m *MetricsRecorder) Record(ctx context.Context, category string, stage domain.Stage, in, out, failures int, took time.Duration) {
	if m == nil || m.repo == nil {
		return
	}

	metric := &domain.StageMetrics{
		RunID:    m.runID,
		Category: category,
		Stage:    stage,
		ItemsIn:  in,
		ItemsOut: out,
		Failures: failures,
		Duration: took,
	}

	if err := m.repo.Record(ctx, metric); err != nil && m.logger != nil {
		m.logger.WarnContext(ctx, "failed to record stage metrics",
			"category", category,
			"stage", stage,
			"error", err)
	}
}
