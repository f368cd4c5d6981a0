// ABOUTME: Store reads and writes the published RSS artifact for a category
// ABOUTME: with best-effort parsing, GUID-keyed merging and atomic replacement
package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/mmcdole/gofeed"

	"feed-curator/domain"
)

// Entry is one published artifact entry. GUID carries the item
// fingerprint, which is what reconciliation keys on.
type Entry struct {
	GUID        string
	Title       string
	Link        string
	Summary     string
	PublishedAt time.Time
}

// FeedInfo describes the channel header of a category artifact.
type FeedInfo struct {
	Title       string
	Link        string
	Description string
}

// Store manages the on-disk RSS artifacts.
type Store struct {
	retentionCap int
	sanitizer    *Sanitizer
	logger       *slog.Logger
}

// NewStore creates an artifact store. retentionCap bounds the number of
// entries kept per artifact; zero or negative disables the cap.
func NewStore(retentionCap int, logger *slog.Logger) *Store {
	return &Store{
		retentionCap: retentionCap,
		sanitizer:    NewSanitizer(),
		logger:       logger,
	}
}

// Read parses the artifact at path. A missing or unparsable artifact
// yields an empty slice, never an error: reconciliation then treats
// every expected entry as absent, which republishes rather than drops.
func (s *Store) Read(ctx context.Context, path string) []Entry {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WarnContext(ctx, "failed to open artifact, treating as empty", "error", err, "path", path)
		}

		return nil
	}
	defer f.Close()

	feed, err := gofeed.NewParser().Parse(f)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to parse artifact, treating as empty", "error", err, "path", path)
		return nil
	}

	entries := make([]Entry, 0, len(feed.Items))

	for _, it := range feed.Items {
		guid := it.GUID
		if guid == "" {
			guid = it.Link
		}

		if guid == "" {
			continue
		}

		entry := Entry{
			GUID:    guid,
			Title:   it.Title,
			Link:    it.Link,
			Summary: it.Description,
		}
		if it.PublishedParsed != nil {
			entry.PublishedAt = *it.PublishedParsed
		}

		entries = append(entries, entry)
	}

	return entries
}

// Merge folds publish candidates into the existing entries. Existing
// entries are preserved verbatim; a candidate whose GUID is already
// present is skipped, first write wins. The result is sorted
// newest-first and trimmed to the retention cap, oldest evicted first.
func (s *Store) Merge(existing []Entry, items []*domain.ContentItem, publishedAt time.Time) []Entry {
	out := make([]Entry, 0, len(existing)+len(items))
	seen := make(map[string]struct{}, len(existing))

	for _, e := range existing {
		if _, ok := seen[e.GUID]; ok {
			continue
		}

		seen[e.GUID] = struct{}{}
		out = append(out, e)
	}

	for _, item := range items {
		if _, ok := seen[item.Fingerprint]; ok {
			continue
		}

		seen[item.Fingerprint] = struct{}{}
		out = append(out, s.newEntry(item, publishedAt))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	if s.retentionCap > 0 && len(out) > s.retentionCap {
		out = out[:s.retentionCap]
	}

	return out
}

func (s *Store) newEntry(item *domain.ContentItem, publishedAt time.Time) Entry {
	summary := ""
	if item.Classification != nil {
		summary = item.Classification.Summary
	}

	if summary == "" {
		summary = item.Body
	}

	ts := publishedAt
	if item.PublishedAt != nil {
		ts = *item.PublishedAt
	}

	return Entry{
		GUID:        item.Fingerprint,
		Title:       strings.TrimSpace(item.Title),
		Link:        item.URL,
		Summary:     s.sanitizer.Clean(summary),
		PublishedAt: ts,
	}
}

// Write serializes entries as RSS 2.0 and replaces the artifact
// atomically: temp file in the target directory, fsync, rename.
func (s *Store) Write(ctx context.Context, path string, info FeedInfo, entries []Entry) error {
	feed := &feeds.Feed{
		Title:       info.Title,
		Link:        &feeds.Link{Href: info.Link},
		Description: info.Description,
		Updated:     time.Now(),
	}

	for _, e := range entries {
		feed.Items = append(feed.Items, &feeds.Item{
			Id: e.GUID,
			// Fingerprints are not URLs; readers must not treat them as links.
			IsPermaLink: "false",
			Title:       e.Title,
			Link:        &feeds.Link{Href: e.Link},
			Description: e.Summary,
			Created:     e.PublishedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return fmt.Errorf("failed to serialize artifact: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp := path + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}

	if _, err := f.WriteString(rss); err != nil {
		f.Close()
		os.Remove(tmp)

		return fmt.Errorf("failed to write temp artifact: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)

		return fmt.Errorf("failed to sync temp artifact: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp artifact: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace artifact: %w", err)
	}

	s.logger.InfoContext(ctx, "artifact written", "path", path, "entries", len(entries))

	return nil
}

// GUIDSet indexes entries by GUID for membership checks.
func GUIDSet(entries []Entry) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		set[e.GUID] = struct{}{}
	}

	return set
}
