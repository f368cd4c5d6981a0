package domain

import (
	"fmt"
)

// Classification is the structured scorer result recorded for an item
// when it leaves pending. Present iff status is processed or
// filtered_out.
type Classification struct {
	KeyTopics      []string `json:"key_topics"`
	Summary        string   `json:"summary"`
	FilteredReason string   `json:"filtered_reason,omitempty"`
	RelevanceScore float64  `json:"relevance_score"`
}

// StatusFor derives the post-classification status against a category
// threshold. A score meeting the threshold passes.
func (c *Classification) StatusFor(threshold float64) Status {
	if c.RelevanceScore >= threshold {
		return StatusProcessed
	}

	return StatusFilteredOut
}

// Validate enforces the cross-field consistency rule at write time:
// filtered_reason is required exactly when the score misses the
// threshold, and must be absent when it passes.
func (c *Classification) Validate(threshold float64) error {
	if c.RelevanceScore < 0 || c.RelevanceScore > 1 {
		return fmt.Errorf("relevance score %v out of range [0,1]", c.RelevanceScore)
	}

	if c.RelevanceScore < threshold && c.FilteredReason == "" {
		return fmt.Errorf("filtered reason missing for score %.2f below threshold %.2f", c.RelevanceScore, threshold)
	}

	if c.RelevanceScore >= threshold && c.FilteredReason != "" {
		return fmt.Errorf("filtered reason %q set for passing score %.2f", c.FilteredReason, c.RelevanceScore)
	}

	return nil
}
