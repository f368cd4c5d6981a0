package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"feed-curator/analysis"
	"feed-curator/domain"
	"feed-curator/internal/config"
	"feed-curator/repository"
)

// IngestionService implementation.
type ingestionService struct {
	itemRepo   repository.ItemRepository
	sourceRepo repository.SourceRepository
	pageRepo   repository.PageRepository
	metrics    *MetricsRecorder
	logger     *slog.Logger
	cfg        config.FetchConfig
}

// NewIngestionService creates a new source ingestion service. The page
// repository (may be nil) backfills thin item bodies from the linked
// page when content enrichment is enabled.
func NewIngestionService(
	itemRepo repository.ItemRepository,
	sourceRepo repository.SourceRepository,
	pageRepo repository.PageRepository,
	metrics *MetricsRecorder,
	cfg config.FetchConfig,
	logger *slog.Logger,
) IngestionService {
	return &ingestionService{
		itemRepo:   itemRepo,
		sourceRepo: sourceRepo,
		pageRepo:   pageRepo,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger,
	}
}

// IngestCategory pulls every source feed of the category and upserts the
// items it finds. Re-running over the same feed window is safe: known
// fingerprints are counted, not re-inserted.
func (s *ingestionService) IngestCategory(ctx context.Context, cat *domain.CategoryConfig) (*IngestionResult, error) {
	started := time.Now()

	s.logger.InfoContext(ctx, "starting ingestion",
		"category", cat.Name,
		"sources", len(cat.SourceFeeds),
		"enrich_content", s.enrichmentEnabled())

	result := &IngestionResult{Errors: []error{}}
	failedSources := 0

	for _, feedURL := range cat.SourceFeeds {
		// Check if context was canceled before pulling the next source
		if ctx.Err() != nil {
			s.logger.WarnContext(ctx, "context canceled, skipping remaining sources",
				"category", cat.Name,
				"reason", ctx.Err())
			break
		}

		rawItems, err := s.sourceRepo.Fetch(ctx, feedURL)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to fetch source feed", "feed_url", feedURL, "error", err)

			failedSources++
			result.ErrorCount++
			result.Errors = append(result.Errors, err)

			continue
		}

		result.FetchedCount += len(rawItems)

		// When enrichment is on, skip already-known fingerprints up
		// front so repeat runs never re-fetch pages for them.
		var known map[string]bool
		if s.enrichmentEnabled() {
			known = s.knownFingerprints(ctx, rawItems)
		}

		for _, raw := range rawItems {
			item := buildItem(cat.Name, raw, started)

			if known[item.Fingerprint] {
				result.KnownCount++
				continue
			}

			s.enrich(ctx, item, result)

			inserted, err := s.itemRepo.Upsert(ctx, item)
			if err != nil {
				s.logger.ErrorContext(ctx, "failed to upsert item",
					"fingerprint", item.Fingerprint,
					"error", err)

				result.ErrorCount++
				result.Errors = append(result.Errors, err)

				continue
			}

			if inserted {
				result.NewCount++
			} else {
				result.KnownCount++
			}
		}
	}

	s.metrics.Record(ctx, cat.Name, domain.StageIngestion,
		result.FetchedCount, result.NewCount, result.ErrorCount, time.Since(started))

	// Individual source failures are tolerable; a run where every source
	// failed produced nothing and must surface as a stage failure.
	if len(cat.SourceFeeds) > 0 && failedSources == len(cat.SourceFeeds) {
		return result, domain.NewStageError(domain.StageIngestion, cat.Name,
			fmt.Errorf("all %d source(s) failed", failedSources))
	}

	s.logger.InfoContext(ctx, "ingestion completed",
		"category", cat.Name,
		"fetched", result.FetchedCount,
		"new", result.NewCount,
		"known", result.KnownCount,
		"enriched", result.EnrichedCount,
		"errors", result.ErrorCount)

	return result, nil
}

func (s *ingestionService) enrichmentEnabled() bool {
	return s.pageRepo != nil && s.cfg.EnrichContent
}

// knownFingerprints returns the subset of the batch the store already
// holds. A lookup failure degrades to "nothing known": the upsert still
// dedupes, only the page-fetch saving is lost.
func (s *ingestionService) knownFingerprints(ctx context.Context, rawItems []domain.RawItem) map[string]bool {
	fingerprints := make([]string, 0, len(rawItems))
	for _, raw := range rawItems {
		fingerprints = append(fingerprints, domain.Fingerprint(raw.Title, raw.URL, raw.Source))
	}

	existing, err := s.itemRepo.GetByFingerprints(ctx, fingerprints)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to pre-check known fingerprints", "error", err)
		return nil
	}

	known := make(map[string]bool, len(existing))
	for _, item := range existing {
		known[item.Fingerprint] = true
	}

	return known
}

// enrich replaces a thin feed body with the linked page's article
// content when that yields strictly more text. Identity fields are
// never touched: the fingerprint is computed from the feed entry alone.
func (s *ingestionService) enrich(ctx context.Context, item *domain.ContentItem, result *IngestionResult) {
	if !s.enrichmentEnabled() || item.URL == "" {
		return
	}

	if item.WordCount >= s.cfg.MinBodyWords {
		return
	}

	page, err := s.pageRepo.FetchPage(ctx, item.URL)
	if err != nil {
		s.logger.WarnContext(ctx, "page enrichment failed, keeping feed body",
			"url", item.URL,
			"error", err)
		return
	}

	body := page.Best()
	if body == "" {
		return
	}

	m := analysis.Analyze(body)
	if m.WordCount <= item.WordCount {
		return
	}

	item.Body = body
	item.WordCount = m.WordCount
	item.ReadingTimeMinutes = m.ReadingTimeMinutes
	item.ReadabilityScore = m.ReadabilityScore
	item.Keywords = m.Keywords

	result.EnrichedCount++

	s.logger.DebugContext(ctx, "item body enriched from page",
		"fingerprint", item.Fingerprint,
		"word_count", m.WordCount)
}

// buildItem turns a raw source record into a pending store item,
// fingerprinted and annotated with content metrics.
func buildItem(category string, raw domain.RawItem, ingestedAt time.Time) *domain.ContentItem {
	m := analysis.Analyze(analysis.ExtractText(raw.Body))

	return &domain.ContentItem{
		Fingerprint:        domain.Fingerprint(raw.Title, raw.URL, raw.Source),
		SourceID:           raw.SourceID,
		Title:              strings.TrimSpace(raw.Title),
		Body:               raw.Body,
		URL:                raw.URL,
		Author:             raw.Author,
		Category:           category,
		Status:             domain.StatusPending,
		IngestedAt:         ingestedAt,
		PublishedAt:        raw.PublishedAt,
		WordCount:          m.WordCount,
		ReadingTimeMinutes: m.ReadingTimeMinutes,
		ReadabilityScore:   m.ReadabilityScore,
		Keywords:           m.Keywords,
	}
}
