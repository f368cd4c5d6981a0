package artifact

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feed-curator/domain"
)

func testLogger() *slog.Logger {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestStore_Read_MissingFile(t *testing.T) {
	store := NewStore(100, testLogger())

	entries := store.Read(context.Background(), filepath.Join(t.TempDir(), "feed.xml"))
	assert.Empty(t, entries)
}

func TestStore_Read_UnparsableArtifact(t *testing.T) {
	store := NewStore(100, testLogger())

	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte("this is not a feed"), 0o644))

	entries := store.Read(context.Background(), path)
	assert.Empty(t, entries)
}

func TestStore_WriteAndReadBack(t *testing.T) {
	store := NewStore(100, testLogger())
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "feeds", "golang.xml")

	newer := Entry{
		GUID:        "fp-new",
		Title:       "Fresh release",
		Link:        "https://example.com/fresh",
		Summary:     "A fresh release.",
		PublishedAt: time.Date(2025, 8, 21, 10, 0, 0, 0, time.UTC),
	}
	older := Entry{
		GUID:        "fp-old",
		Title:       "Older post",
		Link:        "https://example.com/old",
		Summary:     "An older post.",
		PublishedAt: time.Date(2025, 8, 19, 10, 0, 0, 0, time.UTC),
	}

	info := FeedInfo{Title: "Curated golang", Link: "https://example.com/feeds/golang", Description: "Curated golang items"}

	require.NoError(t, store.Write(ctx, path, info, []Entry{newer, older}))
	assert.NoFileExists(t, path+".tmp")

	got := store.Read(ctx, path)
	require.Len(t, got, 2)

	assert.Equal(t, "fp-new", got[0].GUID)
	assert.Equal(t, "Fresh release", got[0].Title)
	assert.Equal(t, "https://example.com/fresh", got[0].Link)
	assert.Equal(t, "A fresh release.", got[0].Summary)
	assert.WithinDuration(t, newer.PublishedAt, got[0].PublishedAt, time.Second)

	assert.Equal(t, "fp-old", got[1].GUID)
	assert.WithinDuration(t, older.PublishedAt, got[1].PublishedAt, time.Second)
}

func TestStore_Write_ReplacesExistingArtifact(t *testing.T) {
	store := NewStore(100, testLogger())
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "golang.xml")
	info := FeedInfo{Title: "Curated golang", Link: "https://example.com/golang"}

	first := Entry{GUID: "fp-1", Title: "First", Link: "https://example.com/1", PublishedAt: time.Now()}
	require.NoError(t, store.Write(ctx, path, info, []Entry{first}))

	second := Entry{GUID: "fp-2", Title: "Second", Link: "https://example.com/2", PublishedAt: time.Now()}
	require.NoError(t, store.Write(ctx, path, info, []Entry{second}))

	got := store.Read(ctx, path)
	require.Len(t, got, 1)
	assert.Equal(t, "fp-2", got[0].GUID)
}

func TestStore_Merge(t *testing.T) {
	oldest := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	middle := time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC)
	newest := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	t.Run("preserves existing entries and sorts newest first", func(t *testing.T) {
		store := NewStore(100, testLogger())

		existing := []Entry{
			{GUID: "fp-b", Title: "B", PublishedAt: middle},
			{GUID: "fp-a", Title: "A", PublishedAt: oldest},
		}

		item := &domain.ContentItem{
			Fingerprint:    "fp-c",
			Title:          "  C spaced  ",
			URL:            "https://example.com/c",
			PublishedAt:    &newest,
			Classification: &domain.Classification{Summary: "Summary C"},
		}

		merged := store.Merge(existing, []*domain.ContentItem{item}, time.Now())
		require.Len(t, merged, 3)

		assert.Equal(t, []string{"fp-c", "fp-b", "fp-a"}, []string{merged[0].GUID, merged[1].GUID, merged[2].GUID})
		assert.Equal(t, "C spaced", merged[0].Title)
		assert.Equal(t, "Summary C", merged[0].Summary)
	})

	t.Run("existing entry wins over candidate with same guid", func(t *testing.T) {
		store := NewStore(100, testLogger())

		existing := []Entry{{GUID: "fp-b", Title: "Original", Summary: "original", PublishedAt: middle}}

		item := &domain.ContentItem{
			Fingerprint:    "fp-b",
			Title:          "Reworded",
			URL:            "https://example.com/b",
			PublishedAt:    &middle,
			Classification: &domain.Classification{Summary: "reworded"},
		}

		merged := store.Merge(existing, []*domain.ContentItem{item}, time.Now())
		require.Len(t, merged, 1)
		assert.Equal(t, "Original", merged[0].Title)
		assert.Equal(t, "original", merged[0].Summary)
	})

	t.Run("evicts oldest entries beyond the retention cap", func(t *testing.T) {
		store := NewStore(2, testLogger())

		existing := []Entry{
			{GUID: "fp-mid", PublishedAt: middle},
			{GUID: "fp-old", PublishedAt: oldest},
		}

		item := &domain.ContentItem{
			Fingerprint: "fp-new",
			URL:         "https://example.com/new",
			PublishedAt: &newest,
		}

		merged := store.Merge(existing, []*domain.ContentItem{item}, time.Now())
		require.Len(t, merged, 2)
		assert.Equal(t, "fp-new", merged[0].GUID)
		assert.Equal(t, "fp-mid", merged[1].GUID)
	})

	t.Run("undated items fall back to the run timestamp", func(t *testing.T) {
		store := NewStore(100, testLogger())

		runAt := time.Date(2025, 8, 21, 12, 0, 0, 0, time.UTC)
		item := &domain.ContentItem{Fingerprint: "fp-x", Body: "plain body", URL: "https://example.com/x"}

		merged := store.Merge(nil, []*domain.ContentItem{item}, runAt)
		require.Len(t, merged, 1)
		assert.Equal(t, runAt, merged[0].PublishedAt)
		assert.Equal(t, "plain body", merged[0].Summary)
	})

	t.Run("strips unsafe markup from summaries", func(t *testing.T) {
		store := NewStore(100, testLogger())

		item := &domain.ContentItem{
			Fingerprint:    "fp-s",
			URL:            "https://example.com/s",
			Classification: &domain.Classification{Summary: "<p>ok</p><script>alert(1)</script>"},
		}

		merged := store.Merge(nil, []*domain.ContentItem{item}, time.Now())
		require.Len(t, merged, 1)
		assert.Equal(t, "<p>ok</p>", merged[0].Summary)
	})
}

func TestSanitizer_Clean(t *testing.T) {
	s := NewSanitizer()

	cleaned := s.Clean(`  <a href="https://example.com/post">read</a> <img src=x onerror=alert(1)> `)

	assert.Contains(t, cleaned, "nofollow")
	assert.Contains(t, cleaned, `target="_blank"`)
	assert.NotContains(t, cleaned, "onerror")
}

func TestGUIDSet(t *testing.T) {
	set := GUIDSet([]Entry{{GUID: "fp-1"}, {GUID: "fp-2"}})

	assert.Len(t, set, 2)
	assert.Contains(t, set, "fp-1")
	assert.Contains(t, set, "fp-2")
	assert.NotContains(t, set, "fp-3")
}
