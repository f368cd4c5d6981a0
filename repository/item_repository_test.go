package repository

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feed-curator/domain"
)

func testLogger() *slog.Logger {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newMockRepo(t *testing.T) (ItemRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewItemRepository(mock, testLogger()), mock
}

var itemRowColumns = []string{
	"fingerprint", "source_id", "title", "body", "url", "author", "category", "status",
	"ingested_at", "published_at", "processed_at", "published_to_artifact_at", "published_flag",
	"relevance_score", "summary", "key_topics", "filtered_reason",
	"classify_attempts", "word_count", "reading_time_minutes", "readability_score", "keywords",
}

// itemRows renders items the way the content_items queries return them.
func itemRows(items ...*domain.ContentItem) *pgxmock.Rows {
	rows := pgxmock.NewRows(itemRowColumns)

	for _, it := range items {
		var (
			score   *float64
			summary *string
			reason  *string
			topics  []string
		)

		if it.Classification != nil {
			score = &it.Classification.RelevanceScore
			summary = &it.Classification.Summary
			reason = &it.Classification.FilteredReason
			topics = it.Classification.KeyTopics
		}

		rows.AddRow(
			it.Fingerprint, it.SourceID, it.Title, it.Body, it.URL, it.Author, it.Category, it.Status,
			it.IngestedAt, it.PublishedAt, it.ProcessedAt, it.PublishedToArtifactAt, it.PublishedFlag,
			score, summary, topics, reason,
			it.ClassifyAttempts, it.WordCount, it.ReadingTimeMinutes, it.ReadabilityScore, it.Keywords,
		)
	}

	return rows
}

func pendingItem(fingerprint string) *domain.ContentItem {
	return &domain.ContentItem{
		Fingerprint: fingerprint,
		SourceID:    "src-" + fingerprint,
		Title:       "Title " + fingerprint,
		Body:        "Body",
		URL:         "https://example.com/" + fingerprint,
		Category:    "golang",
		Status:      domain.StatusPending,
		IngestedAt:  time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC),
		Keywords:    []string{"go"},
		WordCount:   120,
	}
}

func TestItemRepository_Upsert(t *testing.T) {
	item := pendingItem("fp-1")
	item.ReadingTimeMinutes = 1
	item.ReadabilityScore = 62.5

	args := []any{
		item.Fingerprint, item.SourceID, item.Title, item.Body, item.URL,
		item.Author, item.Category, item.Status,
		item.IngestedAt, item.PublishedAt,
		item.WordCount, item.ReadingTimeMinutes, item.ReadabilityScore, item.Keywords,
	}

	t.Run("inserts new item", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("INSERT INTO content_items").
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		inserted, err := repo.Upsert(context.Background(), item)
		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("known fingerprint is a no-op", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("INSERT INTO content_items").
			WithArgs(args...).
			WillReturnResult(pgxmock.NewResult("INSERT", 0))

		inserted, err := repo.Upsert(context.Background(), item)
		require.NoError(t, err)
		assert.False(t, inserted)
	})

	t.Run("propagates database errors", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("INSERT INTO content_items").
			WithArgs(args...).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.Upsert(context.Background(), item)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upsert item")
	})
}

func TestItemRepository_GetPendingBatch(t *testing.T) {
	repo, mock := newMockRepo(t)

	first := pendingItem("fp-1")
	second := pendingItem("fp-2")
	second.ClassifyAttempts = 2

	mock.ExpectQuery("SELECT .+ FROM content_items WHERE category = .+ AND status = 'pending' ORDER BY ingested_at ASC").
		WithArgs("golang", 40).
		WillReturnRows(itemRows(first, second))

	items, err := repo.GetPendingBatch(context.Background(), "golang", 40)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "fp-1", items[0].Fingerprint)
	assert.Equal(t, domain.StatusPending, items[0].Status)
	assert.Nil(t, items[0].Classification)
	assert.Equal(t, 2, items[1].ClassifyAttempts)
	assert.Equal(t, []string{"go"}, items[1].Keywords)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemRepository_RecordClassification(t *testing.T) {
	processedAt := time.Date(2025, 8, 21, 9, 30, 0, 0, time.UTC)

	classification := &domain.Classification{
		RelevanceScore: 0.82,
		Summary:        "A release note.",
		KeyTopics:      []string{"go", "releases"},
	}

	t.Run("moves pending item to processed", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE content_items SET status = .+ WHERE fingerprint = .+ AND status = 'pending'").
			WithArgs("fp-1", domain.StatusProcessed,
				classification.RelevanceScore, classification.Summary,
				classification.KeyTopics, classification.FilteredReason,
				processedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.RecordClassification(context.Background(), "fp-1", classification, domain.StatusProcessed, processedAt)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("item no longer pending yields invalid transition", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec("UPDATE content_items SET status = .+").
			WithArgs("fp-1", domain.StatusFilteredOut,
				classification.RelevanceScore, classification.Summary,
				classification.KeyTopics, classification.FilteredReason,
				processedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.RecordClassification(context.Background(), "fp-1", classification, domain.StatusFilteredOut, processedAt)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("rejects terminal target states without touching the store", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		err := repo.RecordClassification(context.Background(), "fp-1", classification, domain.StatusPublished, processedAt)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemRepository_MarkClassificationFailure(t *testing.T) {
	failedAt := time.Date(2025, 8, 21, 9, 45, 0, 0, time.UTC)

	t.Run("counts attempt while item survives", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("UPDATE content_items SET classify_attempts = classify_attempts \\+ 1").
			WithArgs("fp-1", 3, failedAt).
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(domain.StatusPending))

		exhausted, err := repo.MarkClassificationFailure(context.Background(), "fp-1", 3, failedAt)
		require.NoError(t, err)
		assert.False(t, exhausted)
	})

	t.Run("filters item out once attempts exhaust", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("UPDATE content_items SET classify_attempts = classify_attempts \\+ 1").
			WithArgs("fp-1", 3, failedAt).
			WillReturnRows(pgxmock.NewRows([]string{"status"}).AddRow(domain.StatusFilteredOut))

		exhausted, err := repo.MarkClassificationFailure(context.Background(), "fp-1", 3, failedAt)
		require.NoError(t, err)
		assert.True(t, exhausted)
	})

	t.Run("missing or non-pending item", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery("UPDATE content_items SET classify_attempts = classify_attempts \\+ 1").
			WithArgs("fp-ghost", 3, failedAt).
			WillReturnRows(pgxmock.NewRows([]string{"status"}))

		_, err := repo.MarkClassificationFailure(context.Background(), "fp-ghost", 3, failedAt)
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestItemRepository_SelectCandidates(t *testing.T) {
	t.Run("returns scored candidates", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		item := pendingItem("fp-9")
		item.Status = domain.StatusProcessed
		item.Classification = &domain.Classification{RelevanceScore: 0.9, Summary: "s", KeyTopics: []string{"go"}}

		mock.ExpectQuery("SELECT .+ FROM content_items WHERE category = .+ AND status = 'processed' AND published_flag = FALSE AND relevance_score >= .+ ORDER BY relevance_score DESC, published_at DESC NULLS LAST").
			WithArgs("golang", 0.7, 5).
			WillReturnRows(itemRows(item))

		items, err := repo.SelectCandidates(context.Background(), "golang", 0.7, 5)
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.NotNil(t, items[0].Classification)
		assert.InDelta(t, 0.9, items[0].Classification.RelevanceScore, 1e-9)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("non-positive limit skips the query", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		items, err := repo.SelectCandidates(context.Background(), "golang", 0.7, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemRepository_CountPublishedInWindow(t *testing.T) {
	repo, mock := newMockRepo(t)

	window := domain.ReconciliationWindow{
		Start: time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM content_items WHERE category = .+ AND status = 'published' AND COALESCE\\(published_at, ingested_at\\) BETWEEN").
		WithArgs("golang", window.Start, window.End).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountPublishedInWindow(context.Background(), "golang", window)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestItemRepository_ExpectedInWindow(t *testing.T) {
	repo, mock := newMockRepo(t)

	window := domain.ReconciliationWindow{
		Start: time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC),
	}

	item := pendingItem("fp-5")
	item.Status = domain.StatusProcessed
	item.Classification = &domain.Classification{RelevanceScore: 0.75}

	mock.ExpectQuery("SELECT .+ FROM content_items WHERE category = .+ AND status = 'processed' AND relevance_score >= .+ AND COALESCE\\(published_at, ingested_at\\) BETWEEN").
		WithArgs("golang", 0.6, window.Start, window.End).
		WillReturnRows(itemRows(item))

	items, err := repo.ExpectedInWindow(context.Background(), "golang", 0.6, window)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "fp-5", items[0].Fingerprint)
}

func TestItemRepository_GetByFingerprints(t *testing.T) {
	t.Run("loads requested items", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		item := pendingItem("fp-2")

		mock.ExpectQuery("SELECT .+ FROM content_items WHERE fingerprint = ANY").
			WithArgs([]string{"fp-2"}).
			WillReturnRows(itemRows(item))

		items, err := repo.GetByFingerprints(context.Background(), []string{"fp-2"})
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("empty input skips the query", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		items, err := repo.GetByFingerprints(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemRepository_ClearPublishedFlags(t *testing.T) {
	t.Run("clears drifted flags", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		fingerprints := []string{"fp-1", "fp-2", "fp-3"}

		mock.ExpectExec("UPDATE content_items SET published_flag = FALSE WHERE fingerprint = ANY.+ AND published_flag = TRUE").
			WithArgs(fingerprints).
			WillReturnResult(pgxmock.NewResult("UPDATE", 2))

		cleared, err := repo.ClearPublishedFlags(context.Background(), fingerprints)
		require.NoError(t, err)
		assert.Equal(t, 2, cleared)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		cleared, err := repo.ClearPublishedFlags(context.Background(), nil)
		require.NoError(t, err)
		assert.Zero(t, cleared)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemRepository_MarkPublished(t *testing.T) {
	publishedAt := time.Date(2025, 8, 21, 10, 0, 0, 0, time.UTC)

	t.Run("flips processed items only", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		fingerprints := []string{"fp-1", "fp-2", "fp-3"}

		mock.ExpectExec("UPDATE content_items SET status = 'published', published_flag = TRUE, published_to_artifact_at = .+ WHERE fingerprint = ANY.+ AND status = 'processed'").
			WithArgs(fingerprints, publishedAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 2))

		published, err := repo.MarkPublished(context.Background(), fingerprints, publishedAt)
		require.NoError(t, err)
		assert.Equal(t, 2, published)
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		published, err := repo.MarkPublished(context.Background(), nil, publishedAt)
		require.NoError(t, err)
		assert.Zero(t, published)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestItemRepository_StatusCounts(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM content_items WHERE category = .+ GROUP BY status").
		WithArgs("golang").
		WillReturnRows(pgxmock.NewRows([]string{"status", "count"}).
			AddRow(domain.StatusPending, 4).
			AddRow(domain.StatusProcessed, 2).
			AddRow(domain.StatusPublished, 9))

	counts, err := repo.StatusCounts(context.Background(), "golang")
	require.NoError(t, err)

	assert.Equal(t, map[domain.Status]int{
		domain.StatusPending:   4,
		domain.StatusProcessed: 2,
		domain.StatusPublished: 9,
	}, counts)
}
