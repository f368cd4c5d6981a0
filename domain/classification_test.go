package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassification_StatusFor(t *testing.T) {
	// Boundary behavior: meeting the threshold exactly passes.
	tests := map[string]struct {
		score     float64
		threshold float64
		want      Status
	}{
		"above threshold":    {0.85, 0.7, StatusProcessed},
		"exactly threshold":  {0.70, 0.7, StatusProcessed},
		"just below":         {0.69, 0.7, StatusFilteredOut},
		"zero score":         {0.0, 0.6, StatusFilteredOut},
		"perfect score":      {1.0, 0.6, StatusProcessed},
		"zero threshold":     {0.0, 0.0, StatusProcessed},
		"threshold of one":   {0.99, 1.0, StatusFilteredOut},
		"one meets one":      {1.0, 1.0, StatusProcessed},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			c := &Classification{RelevanceScore: tc.score}
			assert.Equal(t, tc.want, c.StatusFor(tc.threshold))
		})
	}
}

func TestClassification_Validate(t *testing.T) {
	tests := map[string]struct {
		c         Classification
		threshold float64
		wantErr   bool
	}{
		"passing score no reason": {
			c:         Classification{RelevanceScore: 0.8},
			threshold: 0.7,
		},
		"failing score with reason": {
			c:         Classification{RelevanceScore: 0.5, FilteredReason: ReasonBelowThreshold},
			threshold: 0.7,
		},
		"failing score missing reason": {
			c:         Classification{RelevanceScore: 0.5},
			threshold: 0.7,
			wantErr:   true,
		},
		"passing score with stray reason": {
			c:         Classification{RelevanceScore: 0.9, FilteredReason: "left over"},
			threshold: 0.7,
			wantErr:   true,
		},
		"score above range": {
			c:         Classification{RelevanceScore: 1.2},
			threshold: 0.7,
			wantErr:   true,
		},
		"negative score": {
			c:         Classification{RelevanceScore: -0.1, FilteredReason: ReasonBelowThreshold},
			threshold: 0.7,
			wantErr:   true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.c.Validate(tc.threshold)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
