package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"feed-curator/domain"
)

// ItemRepository implementation.
type itemRepository struct {
	db     DB
	logger *slog.Logger
}

// NewItemRepository creates a new content item repository.
func NewItemRepository(db DB, logger *slog.Logger) ItemRepository {
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// Column order matches scanItem.
const itemColumns = `fingerprint, source_id, title, body, url, author, category, status,
	ingested_at, published_at, processed_at, published_to_artifact_at, published_flag,
	relevance_score, summary, key_topics, filtered_reason,
	classify_attempts, word_count, reading_time_minutes, readability_score, keywords`

func (r *itemRepository) Upsert(ctx context.Context, item *domain.ContentItem) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("failed to upsert item: database connection is nil")
	}

	query := `
		INSERT INTO content_items (
			fingerprint, source_id, title, body, url, author, category, status,
			ingested_at, published_at,
			word_count, reading_time_minutes, readability_score, keywords
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (fingerprint) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query,
		item.Fingerprint, item.SourceID, item.Title, item.Body, item.URL,
		item.Author, item.Category, item.Status,
		item.IngestedAt, item.PublishedAt,
		item.WordCount, item.ReadingTimeMinutes, item.ReadabilityScore, item.Keywords,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to upsert item", "error", err, "fingerprint", item.Fingerprint)
		return false, fmt.Errorf("failed to upsert item: %w", err)
	}

	inserted := tag.RowsAffected() == 1

	return inserted, nil
}

func (r *itemRepository) GetPendingBatch(ctx context.Context, category string, limit int) ([]*domain.ContentItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("failed to get pending batch: database connection is nil")
	}

	query := `
		SELECT ` + itemColumns + `
		FROM content_items
		WHERE category = $1 AND status = 'pending'
		ORDER BY ingested_at ASC
		LIMIT $2
	`

	items, err := r.queryItems(ctx, query, category, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to get pending batch", "error", err, "category", category)
		return nil, fmt.Errorf("failed to get pending batch: %w", err)
	}

	return items, nil
}

func (r *itemRepository) RecordClassification(ctx context.Context, fingerprint string, c *domain.Classification, status domain.Status, processedAt time.Time) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("failed to record classification: database connection is nil")
	}

	if status != domain.StatusProcessed && status != domain.StatusFilteredOut {
		return fmt.Errorf("%w: classification cannot move an item to %s", domain.ErrInvalidTransition, status)
	}

	query := `
		UPDATE content_items
		SET status = $2,
			relevance_score = $3,
			summary = $4,
			key_topics = $5,
			filtered_reason = NULLIF($6, ''),
			processed_at = $7,
			classify_attempts = classify_attempts + 1
		WHERE fingerprint = $1 AND status = 'pending'
	`

	tag, err := r.db.Exec(ctx, query,
		fingerprint, status,
		c.RelevanceScore, c.Summary, c.KeyTopics, c.FilteredReason,
		processedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to record classification", "error", err, "fingerprint", fingerprint)
		return fmt.Errorf("failed to record classification: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: item %s is not pending", domain.ErrInvalidTransition, fingerprint)
	}

	r.logger.InfoContext(ctx, "classification recorded",
		"fingerprint", fingerprint,
		"status", status,
		"relevance_score", c.RelevanceScore)

	return nil
}

func (r *itemRepository) MarkClassificationFailure(ctx context.Context, fingerprint string, maxAttempts int, failedAt time.Time) (bool, error) {
	if r == nil || r.db == nil {
		return false, fmt.Errorf("failed to mark classification failure: database connection is nil")
	}

	query := `
		UPDATE content_items
		SET classify_attempts = classify_attempts + 1,
			status = CASE WHEN classify_attempts + 1 >= $2 THEN 'filtered_out' ELSE status END,
			filtered_reason = CASE WHEN classify_attempts + 1 >= $2 THEN 'classification_error' ELSE filtered_reason END,
			processed_at = CASE WHEN classify_attempts + 1 >= $2 THEN $3 ELSE processed_at END
		WHERE fingerprint = $1 AND status = 'pending'
		RETURNING status
	`

	var status domain.Status

	err := r.db.QueryRow(ctx, query, fingerprint, maxAttempts, failedAt).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: %s is not pending", domain.ErrItemNotFound, fingerprint)
		}

		r.logger.ErrorContext(ctx, "failed to mark classification failure", "error", err, "fingerprint", fingerprint)

		return false, fmt.Errorf("failed to mark classification failure: %w", err)
	}

	exhausted := status == domain.StatusFilteredOut
	if exhausted {
		r.logger.WarnContext(ctx, "classification attempts exhausted",
			"fingerprint", fingerprint,
			"max_attempts", maxAttempts)
	}

	return exhausted, nil
}

func (r *itemRepository) SelectCandidates(ctx context.Context, category string, threshold float64, limit int) ([]*domain.ContentItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("failed to select candidates: database connection is nil")
	}

	if limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM content_items
		WHERE category = $1
			AND status = 'processed'
			AND published_flag = FALSE
			AND relevance_score >= $2
		ORDER BY relevance_score DESC, published_at DESC NULLS LAST
		LIMIT $3
	`

	items, err := r.queryItems(ctx, query, category, threshold, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to select candidates", "error", err, "category", category)
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}

	return items, nil
}

func (r *itemRepository) CountPublishedInWindow(ctx context.Context, category string, window domain.ReconciliationWindow) (int, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("failed to count published items: database connection is nil")
	}

	query := `
		SELECT COUNT(*)
		FROM content_items
		WHERE category = $1
			AND status = 'published'
			AND COALESCE(published_at, ingested_at) BETWEEN $2 AND $3
	`

	var count int

	err := r.db.QueryRow(ctx, query, category, window.Start, window.End).Scan(&count)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to count published items", "error", err, "category", category)
		return 0, fmt.Errorf("failed to count published items: %w", err)
	}

	return count, nil
}

func (r *itemRepository) ExpectedInWindow(ctx context.Context, category string, threshold float64, window domain.ReconciliationWindow) ([]*domain.ContentItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("failed to load expected items: database connection is nil")
	}

	query := `
		SELECT ` + itemColumns + `
		FROM content_items
		WHERE category = $1
			AND status = 'processed'
			AND relevance_score >= $2
			AND COALESCE(published_at, ingested_at) BETWEEN $3 AND $4
		ORDER BY relevance_score DESC, published_at DESC NULLS LAST
	`

	items, err := r.queryItems(ctx, query, category, threshold, window.Start, window.End)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to load expected items", "error", err, "category", category)
		return nil, fmt.Errorf("failed to load expected items: %w", err)
	}

	return items, nil
}

func (r *itemRepository) GetByFingerprints(ctx context.Context, fingerprints []string) ([]*domain.ContentItem, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("failed to get items by fingerprint: database connection is nil")
	}

	if len(fingerprints) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM content_items
		WHERE fingerprint = ANY($1)
		ORDER BY COALESCE(published_at, ingested_at) DESC
	`

	items, err := r.queryItems(ctx, query, fingerprints)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to get items by fingerprint", "error", err, "count", len(fingerprints))
		return nil, fmt.Errorf("failed to get items by fingerprint: %w", err)
	}

	return items, nil
}

func (r *itemRepository) ClearPublishedFlags(ctx context.Context, fingerprints []string) (int, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("failed to clear published flags: database connection is nil")
	}

	if len(fingerprints) == 0 {
		return 0, nil
	}

	query := `
		UPDATE content_items
		SET published_flag = FALSE
		WHERE fingerprint = ANY($1) AND published_flag = TRUE
	`

	tag, err := r.db.Exec(ctx, query, fingerprints)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to clear published flags", "error", err, "count", len(fingerprints))
		return 0, fmt.Errorf("failed to clear published flags: %w", err)
	}

	cleared := int(tag.RowsAffected())

	r.logger.InfoContext(ctx, "published flags cleared",
		"requested", len(fingerprints),
		"cleared", cleared)

	return cleared, nil
}

func (r *itemRepository) MarkPublished(ctx context.Context, fingerprints []string, publishedAt time.Time) (int, error) {
	if r == nil || r.db == nil {
		return 0, fmt.Errorf("failed to mark items published: database connection is nil")
	}

	if len(fingerprints) == 0 {
		return 0, nil
	}

	query := `
		UPDATE content_items
		SET status = 'published',
			published_flag = TRUE,
			published_to_artifact_at = $2
		WHERE fingerprint = ANY($1) AND status = 'processed'
	`

	tag, err := r.db.Exec(ctx, query, fingerprints, publishedAt)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to mark items published", "error", err, "count", len(fingerprints))
		return 0, fmt.Errorf("failed to mark items published: %w", err)
	}

	published := int(tag.RowsAffected())

	r.logger.InfoContext(ctx, "items marked published",
		"requested", len(fingerprints),
		"published", published)

	return published, nil
}

func (r *itemRepository) StatusCounts(ctx context.Context, category string) (map[domain.Status]int, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("failed to get status counts: database connection is nil")
	}

	query := `
		SELECT status, COUNT(*)
		FROM content_items
		WHERE category = $1
		GROUP BY status
	`

	rows, err := r.db.Query(ctx, query, category)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to get status counts", "error", err, "category", category)
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Status]int)

	for rows.Next() {
		var (
			status domain.Status
			count  int
		)

		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}

		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	return counts, nil
}

func (r *itemRepository) queryItems(ctx context.Context, query string, args ...any) ([]*domain.ContentItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.ContentItem

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanItem(row pgx.Row) (*domain.ContentItem, error) {
	var (
		item    domain.ContentItem
		score   *float64
		summary *string
		reason  *string
		topics  []string
	)

	err := row.Scan(
		&item.Fingerprint, &item.SourceID, &item.Title, &item.Body, &item.URL,
		&item.Author, &item.Category, &item.Status,
		&item.IngestedAt, &item.PublishedAt, &item.ProcessedAt, &item.PublishedToArtifactAt,
		&item.PublishedFlag,
		&score, &summary, &topics, &reason,
		&item.ClassifyAttempts, &item.WordCount, &item.ReadingTimeMinutes,
		&item.ReadabilityScore, &item.Keywords,
	)
	if err != nil {
		return nil, err
	}

	if score != nil {
		item.Classification = &domain.Classification{
			RelevanceScore: *score,
			KeyTopics:      topics,
		}

		if summary != nil {
			item.Classification.Summary = *summary
		}

		if reason != nil {
			item.Classification.FilteredReason = *reason
		}
	}

	return &item, nil
}
