package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the slice of the pool the schema setup needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Schema statements are idempotent so every run can apply them.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS content_items (
		fingerprint TEXT PRIMARY KEY,
		source_id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL,
		author TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		ingested_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		published_at TIMESTAMPTZ,
		processed_at TIMESTAMPTZ,
		published_to_artifact_at TIMESTAMPTZ,
		published_flag BOOLEAN NOT NULL DEFAULT FALSE,
		relevance_score DOUBLE PRECISION,
		summary TEXT,
		key_topics TEXT[],
		filtered_reason TEXT,
		classify_attempts INTEGER NOT NULL DEFAULT 0,
		word_count INTEGER NOT NULL DEFAULT 0,
		reading_time_minutes INTEGER NOT NULL DEFAULT 0,
		readability_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		keywords TEXT[]
	)`,
	`CREATE INDEX IF NOT EXISTS idx_content_items_category_status
		ON content_items (category, status)`,
	`CREATE INDEX IF NOT EXISTS idx_content_items_published
		ON content_items (category, published_flag, published_at DESC)`,
	`CREATE TABLE IF NOT EXISTS processing_metrics (
		id UUID PRIMARY KEY,
		run_id UUID NOT NULL,
		category TEXT NOT NULL,
		stage TEXT NOT NULL,
		items_in INTEGER NOT NULL DEFAULT 0,
		items_out INTEGER NOT NULL DEFAULT 0,
		failures INTEGER NOT NULL DEFAULT 0,
		duration_ms BIGINT NOT NULL DEFAULT 0,
		recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_processing_metrics_recent
		ON processing_metrics (category, recorded_at DESC)`,
}

// EnsureSchema applies the schema, creating anything that is missing.
func EnsureSchema(ctx context.Context, db Execer, logger *slog.Logger) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			logger.ErrorContext(ctx, "failed to apply schema statement", "error", err)
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}

	logger.InfoContext(ctx, "schema ensured", "statements", len(schemaStatements))

	return nil
}
