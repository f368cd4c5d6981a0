package repository

import (
	"context"
	"fmt"
	"log/slog"

	"feed-curator/domain"
	"feed-curator/driver"
	"feed-curator/internal/config"
	"feed-curator/ratelimit"
)

// SourceRepository implementation.
type sourceRepository struct {
	logger  *slog.Logger
	limiter *ratelimit.HostLimiter
	cfg     config.FetchConfig
}

// NewSourceRepository creates a new source feed repository. A nil
// limiter disables request spacing.
func NewSourceRepository(cfg config.FetchConfig, limiter *ratelimit.HostLimiter, logger *slog.Logger) SourceRepository {
	return &sourceRepository{
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
	}
}

// Fetch retrieves and converts one source feed.
func (r *sourceRepository) Fetch(ctx context.Context, feedURL string) ([]domain.RawItem, error) {
	if feedURL == "" {
		return nil, fmt.Errorf("feed URL cannot be empty")
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, ratelimit.HostOf(feedURL)); err != nil {
			return nil, err
		}
	}

	items, err := driver.FetchFeed(ctx, feedURL, r.cfg, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source feed: %w", err)
	}

	return items, nil
}
