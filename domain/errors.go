// ABOUTME: Pipeline stage error taxonomy and domain sentinel errors
// ABOUTME: StageError wraps failures with stage/category for errors.Is/As checks
package domain

import (
	"errors"
	"fmt"
)

// Stage identifies the pipeline stage a failure originated from.
type Stage string

const (
	StageIngestion      Stage = "ingestion"
	StageClassification Stage = "classification"
	StageSelection      Stage = "selection"
	StagePublication    Stage = "publication"
	StageReconciliation Stage = "reconciliation"
)

// StageError carries the stage and category a failure occurred in.
// Item-level failures never abort a batch; run-level StageErrors abort
// the run and surface through the CLI with exit code 1.
type StageError struct {
	Err      error
	Stage    Stage
	Category string
}

func NewStageError(stage Stage, category string, err error) *StageError {
	return &StageError{Stage: stage, Category: category, Err: err}
}

func (e *StageError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}

	return fmt.Sprintf("%s [%s]: %v", e.Stage, e.Category, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// IsStage reports whether err (or anything it wraps) is a StageError
// from the given stage.
func IsStage(err error, stage Stage) bool {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage == stage
	}

	return false
}

var (
	// ErrUnknownCategory indicates a category label with no configured
	// policy record.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrItemNotFound indicates the requested fingerprint does not exist.
	ErrItemNotFound = errors.New("content item not found")

	// ErrInvalidTransition indicates a write would violate the
	// one-directional status lifecycle.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrMalformedScorerResponse indicates the scorer reply carried no
	// usable classification; the item stays pending and is retried.
	ErrMalformedScorerResponse = errors.New("malformed scorer response")

	// ErrScorerOverloaded indicates the scorer rejected the request with
	// 429; treated as transient by the retry classifier.
	ErrScorerOverloaded = errors.New("scorer service overloaded")

	// ErrReconcileVerification indicates items were still missing from
	// the artifact after a repair pass rewrote it.
	ErrReconcileVerification = errors.New("reconciliation verification failed")
)
