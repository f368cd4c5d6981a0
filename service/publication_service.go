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

// Commit message timestamp layout for artifact publications.
const commitTimeLayout = "2006-01-02 15:04:05"

// PublicationService implementation.
type publicationService struct {
	itemRepo  repository.ItemRepository
	store     *artifact.Store
	publisher artifact.Publisher
	metrics   *MetricsRecorder
	logger    *slog.Logger
}

// NewPublicationService creates a new artifact publication service.
func NewPublicationService(
	itemRepo repository.ItemRepository,
	store *artifact.Store,
	publisher artifact.Publisher,
	metrics *MetricsRecorder,
	logger *slog.Logger,
) PublicationService {
	return &publicationService{
		itemRepo:  itemRepo,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Publish merges the candidates into the category artifact, commits it,
// and only then marks the items published. Artifact before store: a
// crash in between leaves the store under-reporting, which the
// reconciler repairs on its next pass.
func (s *publicationService) Publish(ctx context.Context, cat *domain.CategoryConfig, items []*domain.ContentItem) (*PublicationResult, error) {
	started := time.Now()
	result := &PublicationResult{ArtifactPath: cat.ArtifactPath}

	if len(items) == 0 {
		s.logger.InfoContext(ctx, "no items to publish", "category", cat.Name)
		return result, nil
	}

	now := time.Now()

	existing := s.store.Read(ctx, cat.ArtifactPath)
	entries := s.store.Merge(existing, items, now)

	if err := s.store.Write(ctx, cat.ArtifactPath, feedInfo(cat), entries); err != nil {
		s.logger.ErrorContext(ctx, "failed to write artifact",
			"category", cat.Name,
			"artifact_path", cat.ArtifactPath,
			"error", err)

		return nil, domain.NewStageError(domain.StagePublication, cat.Name, err)
	}

	result.EntryCount = len(entries)

	message := fmt.Sprintf("Update %s feed: %s", cat.Name, now.Format(commitTimeLayout))
	if err := s.publisher.Publish(ctx, cat.ArtifactPath, message); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish artifact",
			"category", cat.Name,
			"artifact_path", cat.ArtifactPath,
			"error", err)

		return nil, domain.NewStageError(domain.StagePublication, cat.Name, err)
	}

	fingerprints := make([]string, 0, len(items))
	for _, item := range items {
		fingerprints = append(fingerprints, item.Fingerprint)
	}

	published, err := s.itemRepo.MarkPublished(ctx, fingerprints, now)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to mark items published",
			"category", cat.Name,
			"error", err)

		return nil, domain.NewStageError(domain.StagePublication, cat.Name, err)
	}

	result.PublishedCount = published

	s.metrics.Record(ctx, cat.Name, domain.StagePublication,
		len(items), published, 0, time.Since(started))

	s.logger.InfoContext(ctx, "publication completed",
		"category", cat.Name,
		"published", published,
		"entries", result.EntryCount,
		"artifact_path", cat.ArtifactPath)

	return result, nil
}

// feedInfo renders the static channel metadata for a category artifact.
func feedInfo(cat *domain.CategoryConfig) artifact.FeedInfo {
	return artifact.FeedInfo{
		Title:       fmt.Sprintf("Curated %s Feed", cat.Name),
		Link:        cat.FeedLink,
		Description: fmt.Sprintf("Curated %s content, filtered by relevance and quality", cat.Name),
	}
}
