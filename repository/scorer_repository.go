package repository

import (
	"context"
	"fmt"
	"log/slog"

	"feed-curator/domain"
	"feed-curator/driver"
	"feed-curator/internal/config"
)

// ScorerRepository implementation.
type scorerRepository struct {
	logger *slog.Logger
	cfg    config.ScorerConfig
}

// NewScorerRepository creates a new scorer repository.
func NewScorerRepository(cfg config.ScorerConfig, logger *slog.Logger) ScorerRepository {
	return &scorerRepository{
		cfg:    cfg,
		logger: logger,
	}
}

// Classify scores one item with the external model. Sentinel errors
// from the driver (malformed response, overload) pass through the wrap
// so callers can errors.Is on them.
func (r *scorerRepository) Classify(ctx context.Context, item *domain.ContentItem, guidance string) (*domain.Classification, error) {
	if item == nil {
		return nil, fmt.Errorf("item cannot be nil")
	}

	if item.Title == "" && item.Body == "" {
		return nil, fmt.Errorf("item %s has no content to classify", item.Fingerprint)
	}

	c, err := driver.ContentScorerAPIClient(ctx, item, guidance, r.cfg, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to classify item: %w", err)
	}

	return c, nil
}
