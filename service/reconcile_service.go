// ABOUTME: This file audits the feed artifact against the content store
// ABOUTME: Drift is repaired by re-publishing items the artifact lost
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"feed-curator/artifact"
	"feed-curator/domain"
	"feed-curator/repository"
)

// ReconcileService implementation.
type reconcileService struct {
	itemRepo  repository.ItemRepository
	store     *artifact.Store
	publisher PublicationService
	metrics   *MetricsRecorder
	logger    *slog.Logger
	window    time.Duration
}

// NewReconcileService creates a new store/artifact reconciliation
// service. Repairs go through the publication service so repaired
// entries take the exact same path as first-time publications.
func NewReconcileService(
	itemRepo repository.ItemRepository,
	store *artifact.Store,
	publisher PublicationService,
	window time.Duration,
	metrics *MetricsRecorder,
	logger *slog.Logger,
) ReconcileService {
	return &reconcileService{
		itemRepo:  itemRepo,
		store:     store,
		publisher: publisher,
		window:    window,
		metrics:   metrics,
		logger:    logger,
	}
}

// Reconcile compares what the store says should be published inside the
// trailing window against what the artifact actually holds, and
// re-publishes anything missing. Running it twice in a row with no
// intervening pipeline activity performs no work the second time.
func (s *reconcileService) Reconcile(ctx context.Context, cat *domain.CategoryConfig, now time.Time) (*ReconcileResult, error) {
	started := time.Now()
	window := domain.TrailingWindow(now, s.window)

	s.logger.InfoContext(ctx, "starting reconciliation",
		"category", cat.Name,
		"window_start", window.Start,
		"window_end", window.End)

	expected, err := s.itemRepo.ExpectedInWindow(ctx, cat.Name, cat.QualityThreshold, window)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load expected items", "category", cat.Name, "error", err)
		return nil, domain.NewStageError(domain.StageReconciliation, cat.Name, err)
	}

	// A missing or unparsable artifact reads as empty, so everything
	// expected counts as missing. Conservative on purpose.
	present := artifact.GUIDSet(s.store.Read(ctx, cat.ArtifactPath))

	result := &ReconcileResult{
		ExpectedCount: len(expected),
		PresentCount:  len(present),
	}

	missing := make([]*domain.ContentItem, 0, len(expected))

	for _, item := range expected {
		if _, ok := present[item.Fingerprint]; !ok {
			missing = append(missing, item)
		}
	}

	result.MissingCount = len(missing)

	if len(missing) == 0 {
		s.metrics.Record(ctx, cat.Name, domain.StageReconciliation,
			len(expected), 0, 0, time.Since(started))

		s.logger.InfoContext(ctx, "artifact consistent with store",
			"category", cat.Name,
			"expected", len(expected),
			"present", len(present))

		return result, nil
	}

	s.logger.WarnContext(ctx, "artifact missing expected items, repairing",
		"category", cat.Name,
		"expected", len(expected),
		"missing", len(missing))

	fingerprints := make([]string, 0, len(missing))
	for _, item := range missing {
		fingerprints = append(fingerprints, item.Fingerprint)
	}

	// Re-arm the missing items as publish candidates. Status is left
	// alone; only the published_flag drift is cleared.
	cleared, err := s.itemRepo.ClearPublishedFlags(ctx, fingerprints)
	if err != nil {
		return nil, domain.NewStageError(domain.StageReconciliation, cat.Name, err)
	}

	result.ClearedCount = cleared

	pub, err := s.publisher.Publish(ctx, cat, missing)
	if err != nil {
		return nil, domain.NewStageError(domain.StageReconciliation, cat.Name, err)
	}

	result.RepublishedCount = pub.PublishedCount

	// Success is declared against a fresh read of the rewritten
	// artifact, never against what Publish claims it wrote.
	verify := artifact.GUIDSet(s.store.Read(ctx, cat.ArtifactPath))

	unresolved := 0

	for _, fp := range fingerprints {
		if _, ok := verify[fp]; !ok {
			unresolved++
		}
	}

	if unresolved > 0 {
		s.metrics.Record(ctx, cat.Name, domain.StageReconciliation,
			len(expected), pub.PublishedCount, unresolved, time.Since(started))

		s.logger.ErrorContext(ctx, "repair verification failed",
			"category", cat.Name,
			"missing", len(missing),
			"unresolved", unresolved)

		return result, domain.NewStageError(domain.StageReconciliation, cat.Name,
			fmt.Errorf("%w: %d item(s) still missing after repair", domain.ErrReconcileVerification, unresolved))
	}

	s.metrics.Record(ctx, cat.Name, domain.StageReconciliation,
		len(expected), pub.PublishedCount, 0, time.Since(started))

	s.logger.InfoContext(ctx, "reconciliation repaired artifact",
		"category", cat.Name,
		"missing", len(missing),
		"cleared", cleared,
		"republished", pub.PublishedCount)

	return result, nil
}
