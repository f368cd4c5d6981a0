package service

import (
	"context"
	"time"

	"feed-curator/domain"
)

//go:generate mockgen -source=interfaces.go -destination=../test/mocks/service_mocks.go -package=mocks

// IngestionService pulls source feeds and lands new items in the store.
type IngestionService interface {
	IngestCategory(ctx context.Context, cat *domain.CategoryConfig) (*IngestionResult, error)
}

// ClassificationService scores pending items and gates them against the
// category threshold.
type ClassificationService interface {
	ClassifyPending(ctx context.Context, cat *domain.CategoryConfig) (*ClassificationResult, error)
}

// SelectionService picks the publish candidates still owed under the
// category's quality target. Read-only with respect to the store.
type SelectionService interface {
	SelectCandidates(ctx context.Context, cat *domain.CategoryConfig, now time.Time) ([]*domain.ContentItem, error)
}

// PublicationService merges candidates into the feed artifact and marks
// them published once the artifact is durable.
type PublicationService interface {
	Publish(ctx context.Context, cat *domain.CategoryConfig, items []*domain.ContentItem) (*PublicationResult, error)
}

// ReconcileService audits the artifact against the store and repairs
// any items the artifact lost.
type ReconcileService interface {
	Reconcile(ctx context.Context, cat *domain.CategoryConfig, now time.Time) (*ReconcileResult, error)
}

// DeadLetterSink records items whose classification attempts ran out.
type DeadLetterSink interface {
	PublishFailedItem(ctx context.Context, item *domain.ContentItem, attempts int, lastError error) error
}

// IngestionResult represents the result of one ingestion pass.
type IngestionResult struct {
	Errors        []error
	FetchedCount  int
	NewCount      int
	KnownCount    int
	EnrichedCount int
	ErrorCount    int
}

// ClassificationResult represents the result of one classification batch.
type ClassificationResult struct {
	Errors         []error
	ProcessedCount int
	PassedCount    int
	FilteredCount  int
	ExhaustedCount int
	SkippedCount   int
	ErrorCount     int
	HasMore        bool
}

// PublicationResult represents the result of one publication pass.
type PublicationResult struct {
	ArtifactPath   string
	PublishedCount int
	EntryCount     int
}

// ReconcileResult represents the result of one reconciliation pass.
type ReconcileResult struct {
	ExpectedCount    int
	PresentCount     int
	MissingCount     int
	ClearedCount     int
	RepublishedCount int
}
