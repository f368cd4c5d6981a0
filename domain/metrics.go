package domain

import "time"

// StageMetrics is one recorded pipeline stage execution. Rows are
// informational only; nothing in the pipeline reads them back to make
// decisions.
type StageMetrics struct {
	RecordedAt time.Time
	ID         string
	RunID      string
	Category   string
	Stage      Stage
	ItemsIn    int
	ItemsOut   int
	Failures   int
	Duration   time.Duration
}
