// ABOUTME: JSON file-based dead letter records for items the scorer kept rejecting
// ABOUTME: One file per exhausted item, grouped by date, with retention cleanup
package dlq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"feed-curator/domain"
)

// DeadLetterRecord captures everything needed to understand and replay a
// classification failure after the item has burned all its attempts.
type DeadLetterRecord struct {
	Timestamp   time.Time    `json:"timestamp"`
	ID          string       `json:"id"`
	Fingerprint string       `json:"fingerprint"`
	Category    string       `json:"category"`
	Title       string       `json:"title"`
	URL         string       `json:"url"`
	SourceID    string       `json:"source_id"`
	Stage       string       `json:"stage"`
	LastError   ErrorDetails `json:"last_error"`
	Attempts    int          `json:"attempts"`
}

// ErrorDetails describes the final error that exhausted the item.
type ErrorDetails struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	IsRetryable bool   `json:"is_retryable"`
}

// Config controls where dead letters land and how long they are kept.
type Config struct {
	BasePath  string
	Retention time.Duration
}

// FileDLQManager persists dead letter records as JSON files under
// BasePath/failed-items/<date>/. Writes are atomic (temp file + rename)
// so a crash never leaves a half-written record.
type FileDLQManager struct {
	logger      *slog.Logger
	isRetryable func(error) bool
	config      Config
	counter     uint64
	mu          sync.Mutex
}

// NewFileDLQManager creates a file-backed dead letter sink. The
// classifier (may be nil) marks whether the final error looked
// transient, which matters when deciding what to replay.
func NewFileDLQManager(config Config, isRetryable func(error) bool, logger *slog.Logger) *FileDLQManager {
	return &FileDLQManager{
		config:      config,
		isRetryable: isRetryable,
		logger:      logger,
	}
}

// PublishFailedItem records an item whose classification attempts are
// exhausted. The item itself stays in the store as filtered_out; the
// record exists for operators, not for the pipeline.
func (q *FileDLQManager) PublishFailedItem(ctx context.Context, item *domain.ContentItem, attempts int, lastError error) error {
	q.mu.Lock()
	q.counter++
	recordID := fmt.Sprintf("dlq_%s_%03d", time.Now().UTC().Format("20060102"), q.counter)
	q.mu.Unlock()

	record := DeadLetterRecord{
		ID:          recordID,
		Fingerprint: item.Fingerprint,
		Category:    item.Category,
		Title:       item.Title,
		URL:         item.URL,
		SourceID:    item.SourceID,
		Stage:       string(domain.StageClassification),
		Attempts:    attempts,
		LastError:   q.analyzeError(lastError),
		Timestamp:   time.Now().UTC(),
	}

	if err := q.writeRecord(record); err != nil {
		q.logger.ErrorContext(ctx, "dead letter write failed",
			"record_id", recordID,
			"fingerprint", item.Fingerprint,
			"error", err)
		return err
	}

	q.logger.InfoContext(ctx, "dead letter recorded",
		"record_id", recordID,
		"fingerprint", item.Fingerprint,
		"category", item.Category,
		"domain", hostOf(item.URL),
		"attempts", attempts,
		"error_type", record.LastError.Type)

	return nil
}

func (q *FileDLQManager) analyzeError(err error) ErrorDetails {
	if err == nil {
		return ErrorDetails{Type: "unknown"}
	}

	return ErrorDetails{
		Type:        fmt.Sprintf("%T", err),
		Message:     err.Error(),
		IsRetryable: q.isRetryable != nil && q.isRetryable(err),
	}
}

func (q *FileDLQManager) writeRecord(record DeadLetterRecord) error {
	dateDir := record.Timestamp.Format("2006-01-02")
	dir := filepath.Join(q.config.BasePath, "failed-items", dateDir)

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create directory failed: %w", err)
	}

	targetPath := filepath.Join(dir, record.ID+".json")
	tempFile := targetPath + ".tmp"

	recordBytes, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	if err := os.WriteFile(tempFile, recordBytes, 0600); err != nil {
		return fmt.Errorf("write temp file failed: %w", err)
	}

	if err := os.Rename(tempFile, targetPath); err != nil {
		if cleanupErr := os.Remove(tempFile); cleanupErr != nil {
			q.logger.Warn("failed to cleanup temp file", "temp_file", tempFile, "error", cleanupErr)
		}
		return fmt.Errorf("rename file failed: %w", err)
	}

	return nil
}

// Stats summarizes what the dead letter directory currently holds.
type Stats struct {
	OldestFailure    time.Time `json:"oldest_failure"`
	TotalFailedItems int       `json:"total_failed_items"`
	DiskUsage        int64     `json:"disk_usage_bytes"`
	DailyFailureRate float64   `json:"daily_failure_rate"`
}

// GetStats walks the dead letter directory and aggregates record counts
// and sizes. A missing directory means no failures yet, not an error.
func (q *FileDLQManager) GetStats() (Stats, error) {
	stats := Stats{}

	failedDir := filepath.Join(q.config.BasePath, "failed-items")
	if _, err := os.Stat(failedDir); os.IsNotExist(err) {
		return stats, nil
	}

	err := filepath.Walk(failedDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && filepath.Ext(path) == ".json" {
			stats.TotalFailedItems++
			stats.DiskUsage += info.Size()

			if stats.OldestFailure.IsZero() || info.ModTime().Before(stats.OldestFailure) {
				stats.OldestFailure = info.ModTime()
			}
		}

		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("failed to calculate stats: %w", err)
	}

	if !stats.OldestFailure.IsZero() {
		daysSinceOldest := time.Since(stats.OldestFailure).Hours() / 24
		if daysSinceOldest > 0 {
			stats.DailyFailureRate = float64(stats.TotalFailedItems) / daysSinceOldest
		}
	}

	return stats, nil
}

// Cleanup removes records older than the configured retention. A zero
// retention disables cleanup entirely.
func (q *FileDLQManager) Cleanup(ctx context.Context) error {
	if q.config.Retention <= 0 {
		return nil
	}

	cutoff := time.Now().Add(-q.config.Retention)
	removedCount := 0
	removedSize := int64(0)

	failedDir := filepath.Join(q.config.BasePath, "failed-items")
	if _, err := os.Stat(failedDir); os.IsNotExist(err) {
		return nil
	}

	err := filepath.Walk(failedDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() && info.ModTime().Before(cutoff) {
			size := info.Size()
			if err := os.Remove(path); err != nil {
				q.logger.Warn("failed to remove old dead letter file",
					"file", path,
					"error", err)
				return nil
			}

			removedCount++
			removedSize += size
		}

		return nil
	})

	if removedCount > 0 {
		q.logger.InfoContext(ctx, "dead letter cleanup completed",
			"removed_files", removedCount,
			"removed_size_bytes", removedSize,
			"cutoff", cutoff)
	}

	return err
}

func hostOf(urlStr string) string {
	if parsed, err := url.Parse(urlStr); err == nil && parsed.Hostname() != "" {
		return parsed.Hostname()
	}

	return "unknown"
}
