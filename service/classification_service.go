// ABOUTME: This file gates pending items through the external scorer
// ABOUTME: Items pass or get filtered against the category quality threshold
package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"feed-curator/domain"
	"feed-curator/internal/config"
	"feed-curator/pipeline"
	"feed-curator/repository"
	"feed-curator/retry"
)

// ClassificationService implementation.
type classificationService struct {
	itemRepo    repository.ItemRepository
	scorerRepo  repository.ScorerRepository
	retrier     *retry.Retrier
	breaker     *retry.CircuitBreaker
	deadLetters DeadLetterSink
	metrics     *MetricsRecorder
	logger      *slog.Logger
	cfg         config.PipelineConfig
}

// NewClassificationService creates a new classification gate service.
// The retrier absorbs transient scorer failures; permanent ones charge
// the item a classification attempt. The breaker (may be nil) stops the
// batch once the scorer looks down, leaving unscored items pending.
// Exhausted items go to the dead letter sink (may be nil) for operators.
func NewClassificationService(
	itemRepo repository.ItemRepository,
	scorerRepo repository.ScorerRepository,
	retrier *retry.Retrier,
	breaker *retry.CircuitBreaker,
	deadLetters DeadLetterSink,
	metrics *MetricsRecorder,
	cfg config.PipelineConfig,
	logger *slog.Logger,
) ClassificationService {
	return &classificationService{
		itemRepo:    itemRepo,
		scorerRepo:  scorerRepo,
		retrier:     retrier,
		breaker:     breaker,
		deadLetters: deadLetters,
		metrics:     metrics,
		cfg:         cfg,
		logger:      logger,
	}
}

// ClassifyPending scores one batch of pending items and writes each
// outcome back conditionally on the item still being pending. This is
// the only path that moves items out of pending.
func (s *classificationService) ClassifyPending(ctx context.Context, cat *domain.CategoryConfig) (*ClassificationResult, error) {
	started := time.Now()

	s.logger.InfoContext(ctx, "starting classification",
		"category", cat.Name,
		"batch_size", s.cfg.BatchSize,
		"threshold", cat.QualityThreshold)

	items, err := s.itemRepo.GetPendingBatch(ctx, cat.Name, s.cfg.BatchSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load pending batch", "category", cat.Name, "error", err)
		return nil, domain.NewStageError(domain.StageClassification, cat.Name, err)
	}

	result := &ClassificationResult{
		Errors:         []error{},
		ProcessedCount: len(items),
		HasMore:        len(items) == s.cfg.BatchSize,
	}

	if len(items) == 0 {
		s.logger.InfoContext(ctx, "no pending items", "category", cat.Name)
		return result, nil
	}

	guidance := s.loadGuidance(ctx, cat)

	outcomes := pipeline.FanOut(ctx, items, s.cfg.Workers,
		func(ctx context.Context, item *domain.ContentItem) (*domain.Classification, error) {
			var c *domain.Classification

			err := s.score(ctx, func(ctx context.Context) error {
				var scoreErr error
				c, scoreErr = s.scorerRepo.Classify(ctx, item, guidance)

				return scoreErr
			})

			return c, err
		})

	now := time.Now()

	for i, outcome := range outcomes {
		item := items[i]

		if outcome.Err != nil {
			// A canceled run leaves the item untouched; no attempt is
			// charged for work that never reached the scorer. Same for
			// items the open breaker rejected without scoring.
			if errors.Is(outcome.Err, context.Canceled) {
				continue
			}

			if errors.Is(outcome.Err, retry.ErrCircuitOpen) {
				result.SkippedCount++
				continue
			}

			s.recordFailure(ctx, result, item, outcome.Err, now)

			continue
		}

		s.recordOutcome(ctx, result, cat, item, outcome.Value, now)
	}

	if result.SkippedCount > 0 {
		s.logger.WarnContext(ctx, "scorer circuit open, items left pending",
			"category", cat.Name,
			"skipped", result.SkippedCount)
	}

	s.metrics.Record(ctx, cat.Name, domain.StageClassification,
		len(items),
		result.PassedCount+result.FilteredCount+result.ExhaustedCount,
		result.ErrorCount,
		time.Since(started))

	s.logger.InfoContext(ctx, "classification completed",
		"category", cat.Name,
		"processed", result.ProcessedCount,
		"passed", result.PassedCount,
		"filtered", result.FilteredCount,
		"exhausted", result.ExhaustedCount,
		"errors", result.ErrorCount,
		"has_more", result.HasMore)

	return result, nil
}

// recordOutcome gates one scored item and persists the transition.
func (s *classificationService) recordOutcome(ctx context.Context, result *ClassificationResult, cat *domain.CategoryConfig, item *domain.ContentItem, c *domain.Classification, now time.Time) {
	status := c.StatusFor(cat.QualityThreshold)

	// filtered_reason is present exactly when the item is gated out.
	if status == domain.StatusProcessed {
		c.FilteredReason = ""
	} else if c.FilteredReason == "" {
		c.FilteredReason = domain.ReasonBelowThreshold
	}

	if err := s.itemRepo.RecordClassification(ctx, item.Fingerprint, c, status, now); err != nil {
		s.logger.ErrorContext(ctx, "failed to record classification",
			"fingerprint", item.Fingerprint,
			"error", err)

		result.ErrorCount++
		result.Errors = append(result.Errors, err)

		return
	}

	if status == domain.StatusProcessed {
		result.PassedCount++
	} else {
		result.FilteredCount++
	}

	s.logger.DebugContext(ctx, "item classified",
		"fingerprint", item.Fingerprint,
		"score", c.RelevanceScore,
		"status", status)
}

// recordFailure charges a failed scoring attempt. The item stays
// pending for the next run until its attempts run out, at which point
// it is filtered out so it cannot starve the batch forever.
func (s *classificationService) recordFailure(ctx context.Context, result *ClassificationResult, item *domain.ContentItem, classifyErr error, now time.Time) {
	s.logger.ErrorContext(ctx, "failed to classify item",
		"fingerprint", item.Fingerprint,
		"attempts", item.ClassifyAttempts+1,
		"error", classifyErr)

	result.ErrorCount++
	result.Errors = append(result.Errors, classifyErr)

	exhausted, err := s.itemRepo.MarkClassificationFailure(ctx, item.Fingerprint, s.cfg.MaxClassifyAttempts, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record classification failure",
			"fingerprint", item.Fingerprint,
			"error", err)

		result.Errors = append(result.Errors, err)

		return
	}

	if exhausted {
		result.ExhaustedCount++

		s.logger.WarnContext(ctx, "classification attempts exhausted, item filtered out",
			"fingerprint", item.Fingerprint,
			"max_attempts", s.cfg.MaxClassifyAttempts)

		if s.deadLetters != nil {
			if dlqErr := s.deadLetters.PublishFailedItem(ctx, item, s.cfg.MaxClassifyAttempts, classifyErr); dlqErr != nil {
				s.logger.ErrorContext(ctx, "failed to record dead letter",
					"fingerprint", item.Fingerprint,
					"error", dlqErr)
			}
		}
	}
}

// score runs one scorer call through the retrier, guarded by the
// breaker when one is configured.
func (s *classificationService) score(ctx context.Context, op func(context.Context) error) error {
	if s.breaker == nil {
		return s.retrier.Do(ctx, op)
	}

	return s.breaker.Call(func() error {
		return s.retrier.Do(ctx, op)
	})
}

// loadGuidance reads the category's prompt guidance file. A missing or
// unreadable file downgrades to generic scoring instead of failing the
// batch.
func (s *classificationService) loadGuidance(ctx context.Context, cat *domain.CategoryConfig) string {
	if cat.PromptsFile == "" {
		return ""
	}

	data, err := os.ReadFile(cat.PromptsFile)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read prompts file, scoring without guidance",
			"prompts_file", cat.PromptsFile,
			"error", err)

		return ""
	}

	return strings.TrimSpace(string(data))
}
