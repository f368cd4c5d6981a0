package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"feed-curator/domain"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/repository_mocks.go -package=mocks

// DB is the slice of pgxpool.Pool the repositories use. pgxmock's
// PgxPoolIface satisfies it too, so tests can run against a mock pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ItemRepository handles content item persistence.
type ItemRepository interface {
	// Upsert inserts the item, keyed by fingerprint. Returns true when
	// the row is new, false when the fingerprint was already known.
	Upsert(ctx context.Context, item *domain.ContentItem) (bool, error)

	// GetPendingBatch returns up to limit pending items for a category,
	// oldest first.
	GetPendingBatch(ctx context.Context, category string, limit int) ([]*domain.ContentItem, error)

	// RecordClassification stores a classification outcome and moves the
	// item out of pending. The write is conditional on the item still
	// being pending.
	RecordClassification(ctx context.Context, fingerprint string, c *domain.Classification, status domain.Status, processedAt time.Time) error

	// MarkClassificationFailure counts a failed classification attempt.
	// Once attempts reach maxAttempts the item is filtered out with
	// reason classification_error; returns true when that happened.
	MarkClassificationFailure(ctx context.Context, fingerprint string, maxAttempts int, failedAt time.Time) (bool, error)

	// SelectCandidates returns unpublished processed items at or above
	// the threshold, best first.
	SelectCandidates(ctx context.Context, category string, threshold float64, limit int) ([]*domain.ContentItem, error)

	// CountPublishedInWindow counts published items whose effective
	// timestamp falls inside the window.
	CountPublishedInWindow(ctx context.Context, category string, window domain.ReconciliationWindow) (int, error)

	// ExpectedInWindow returns the items reconciliation expects to find
	// in the artifact.
	ExpectedInWindow(ctx context.Context, category string, threshold float64, window domain.ReconciliationWindow) ([]*domain.ContentItem, error)

	// GetByFingerprints loads items by fingerprint.
	GetByFingerprints(ctx context.Context, fingerprints []string) ([]*domain.ContentItem, error)

	// ClearPublishedFlags re-arms items as publish candidates without
	// touching status. Returns the number of rows updated.
	ClearPublishedFlags(ctx context.Context, fingerprints []string) (int, error)

	// MarkPublished flips processed items to published after their
	// entries are durably in the artifact. Returns the number of rows
	// updated.
	MarkPublished(ctx context.Context, fingerprints []string, publishedAt time.Time) (int, error)

	// StatusCounts returns the number of items per lifecycle state for a
	// category.
	StatusCounts(ctx context.Context, category string) (map[domain.Status]int, error)
}

// MetricsRepository records per-stage run metrics.
type MetricsRepository interface {
	Record(ctx context.Context, metrics *domain.StageMetrics) error
	RecentRuns(ctx context.Context, category string, limit int) ([]*domain.StageMetrics, error)
}

// ScorerRepository handles external classification model communication.
type ScorerRepository interface {
	Classify(ctx context.Context, item *domain.ContentItem, guidance string) (*domain.Classification, error)
}

// SourceRepository fetches raw items from an external source feed.
type SourceRepository interface {
	Fetch(ctx context.Context, feedURL string) ([]domain.RawItem, error)
}

// PageRepository fetches a linked page and extracts its content, for
// backfilling items whose feed entry carried only a teaser.
type PageRepository interface {
	FetchPage(ctx context.Context, pageURL string) (*domain.PageContent, error)
}
