package domain

import (
	"fmt"
	"time"
)

// CategoryConfig is the static per-category policy. Category behavior
// is data looked up by label, not a type hierarchy: new categories are
// added by configuration, never by new code paths. Loaded once per run
// and immutable during it.
type CategoryConfig struct {
	SourceFeeds       []string
	Name              string
	ArtifactPath      string
	PromptsFile       string
	FeedLink          string
	QualityThreshold  float64
	HighQualityTarget int
}

// Validate checks the policy bounds that the rest of the pipeline
// assumes.
func (c *CategoryConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("category name is empty")
	}

	if c.QualityThreshold < 0 || c.QualityThreshold > 1 {
		return fmt.Errorf("category %s: quality threshold %v out of range [0,1]", c.Name, c.QualityThreshold)
	}

	if c.HighQualityTarget <= 0 {
		return fmt.Errorf("category %s: high quality target must be positive, got %d", c.Name, c.HighQualityTarget)
	}

	if c.ArtifactPath == "" {
		return fmt.Errorf("category %s: artifact path is empty", c.Name)
	}

	return nil
}

// ReconciliationWindow bounds the audit horizon for one reconciliation
// pass. Computed fresh per invocation relative to the supplied "now"
// so every run is a pure function of its inputs.
type ReconciliationWindow struct {
	Start time.Time
	End   time.Time
}

// TrailingWindow returns the window covering the d duration up to now.
func TrailingWindow(now time.Time, d time.Duration) ReconciliationWindow {
	return ReconciliationWindow{Start: now.Add(-d), End: now}
}

// Contains reports whether t falls inside the window, inclusive on
// both ends.
func (w ReconciliationWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
