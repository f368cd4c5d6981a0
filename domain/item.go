package domain

import (
	"time"
)

// Status is the lifecycle state of a content item.
type Status string

const (
	StatusPending     Status = "pending"
	StatusProcessed   Status = "processed"
	StatusFilteredOut Status = "filtered_out"
	StatusPublished   Status = "published"
)

// Filter reasons recorded when an item is gated out.
const (
	ReasonBelowThreshold      = "below_threshold"
	ReasonClassificationError = "classification_error"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusFilteredOut, StatusPublished:
		return true
	}

	return false
}

// CanTransition reports whether moving from s to next respects the
// one-directional lifecycle: pending -> processed|filtered_out,
// processed -> published. filtered_out and published are terminal.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessed || next == StatusFilteredOut
	case StatusProcessed:
		return next == StatusPublished
	}

	return false
}

// ContentItem is one ingested unit of content. Items are an
// append-mostly ledger: created by ingestion, classified once, and
// flipped to published by the sink or the reconciler, never deleted.
type ContentItem struct {
	IngestedAt            time.Time  `db:"ingested_at"`
	PublishedAt           *time.Time `db:"published_at"`
	ProcessedAt           *time.Time `db:"processed_at"`
	PublishedToArtifactAt *time.Time `db:"published_to_artifact_at"`
	Classification        *Classification
	Keywords              []string `db:"keywords"`
	Fingerprint           string   `db:"fingerprint"`
	SourceID              string   `db:"source_id"`
	Title                 string   `db:"title"`
	Body                  string   `db:"body"`
	URL                   string   `db:"url"`
	Author                string   `db:"author"`
	Category              string   `db:"category"`
	Status                Status   `db:"status"`
	ClassifyAttempts      int      `db:"classify_attempts"`
	WordCount             int      `db:"word_count"`
	ReadingTimeMinutes    int      `db:"reading_time_minutes"`
	ReadabilityScore      float64  `db:"readability_score"`
	PublishedFlag         bool     `db:"published_flag"`
}

// EffectiveTimestamp is the timestamp used for window checks:
// published_at when the source supplied one, ingested_at otherwise.
func (it *ContentItem) EffectiveTimestamp() time.Time {
	if it.PublishedAt != nil && !it.PublishedAt.IsZero() {
		return *it.PublishedAt
	}

	return it.IngestedAt
}

// RawItem is a source record before fingerprinting and persistence.
type RawItem struct {
	PublishedAt *time.Time
	Source      string
	SourceID    string
	Title       string
	Body        string
	URL         string
	Author      string
}
