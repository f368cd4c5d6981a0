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

// PageRepository implementation.
type pageRepository struct {
	logger  *slog.Logger
	limiter *ratelimit.HostLimiter
	cfg     config.FetchConfig
}

// NewPageRepository creates a repository that pulls linked pages for
// content enrichment. A nil limiter disables request spacing.
func NewPageRepository(cfg config.FetchConfig, limiter *ratelimit.HostLimiter, logger *slog.Logger) PageRepository {
	return &pageRepository{
		cfg:     cfg,
		limiter: limiter,
		logger:  logger,
	}
}

// FetchPage validates the URL, waits its turn for the target host, and
// extracts the page content.
func (r *pageRepository) FetchPage(ctx context.Context, pageURL string) (*domain.PageContent, error) {
	if err := driver.ValidatePageURL(pageURL); err != nil {
		return nil, fmt.Errorf("rejecting page URL: %w", err)
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, ratelimit.HostOf(pageURL)); err != nil {
			return nil, err
		}
	}

	content, err := driver.FetchPage(ctx, pageURL, r.cfg, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	return content, nil
}
