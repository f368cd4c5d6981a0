package service

import (
	"context"
	"log/slog"
	"time"

	"feed-curator/domain"
	"feed-curator/repository"
)

// SelectionService implementation.
type selectionService struct {
	itemRepo repository.ItemRepository
	metrics  *MetricsRecorder
	logger   *slog.Logger
	window   time.Duration
}

// NewSelectionService creates a new quality selection service. The
// window is the trailing horizon the per-category publish budget is
// counted over.
func NewSelectionService(
	itemRepo repository.ItemRepository,
	window time.Duration,
	metrics *MetricsRecorder,
	logger *slog.Logger,
) SelectionService {
	return &selectionService{
		itemRepo: itemRepo,
		window:   window,
		metrics:  metrics,
		logger:   logger,
	}
}

// SelectCandidates returns the best unpublished processed items, capped
// at the category target minus what was already published inside the
// window. Reads only; candidates are recomputed from live store state
// at every call.
func (s *selectionService) SelectCandidates(ctx context.Context, cat *domain.CategoryConfig, now time.Time) ([]*domain.ContentItem, error) {
	started := time.Now()
	window := domain.TrailingWindow(now, s.window)

	published, err := s.itemRepo.CountPublishedInWindow(ctx, cat.Name, window)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to count published items", "category", cat.Name, "error", err)
		return nil, domain.NewStageError(domain.StageSelection, cat.Name, err)
	}

	budget := cat.HighQualityTarget - published
	if budget <= 0 {
		s.logger.InfoContext(ctx, "quality target met, nothing to select",
			"category", cat.Name,
			"published_in_window", published,
			"target", cat.HighQualityTarget)

		s.metrics.Record(ctx, cat.Name, domain.StageSelection, 0, 0, 0, time.Since(started))

		return nil, nil
	}

	items, err := s.itemRepo.SelectCandidates(ctx, cat.Name, cat.QualityThreshold, budget)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to select candidates", "category", cat.Name, "error", err)
		return nil, domain.NewStageError(domain.StageSelection, cat.Name, err)
	}

	s.metrics.Record(ctx, cat.Name, domain.StageSelection, budget, len(items), 0, time.Since(started))

	s.logger.InfoContext(ctx, "candidates selected",
		"category", cat.Name,
		"published_in_window", published,
		"budget", budget,
		"selected", len(items))

	return items, nil
}
