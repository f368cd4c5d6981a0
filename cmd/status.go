package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"feed-curator/dlq"
	"feed-curator/domain"
	"feed-curator/internal/config"
	"feed-curator/internal/output"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show store counts and recent pipeline runs",
	Long: `Display per-category lifecycle counts from the store, the most
recent recorded pipeline runs, and dead letter statistics. Read-only.

Examples:
  feed-curator status                  # Show all configured categories
  feed-curator status --json           # Output as JSON
  feed-curator status --runs 10        # Show the last 10 runs per category`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().Bool("json", false, "output as JSON")
	statusCmd.Flags().Int("runs", 5, "recent runs to show per category")
}

func runStatus(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	runLimit, _ := cmd.Flags().GetInt("runs")

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	rt, err := openPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	if jsonOutput {
		return outputStatusJSON(cmd.Context(), rt, catalog, runLimit)
	}

	return outputStatusTables(cmd.Context(), rt, catalog, runLimit)
}

type categoryStatus struct {
	Category string         `json:"category"`
	Counts   map[string]int `json:"counts"`
	Runs     []recentRun    `json:"recent_runs,omitempty"`
}

type recentRun struct {
	RecordedAt time.Time `json:"recorded_at"`
	RunID      string    `json:"run_id"`
	Stage      string    `json:"stage"`
	ItemsIn    int       `json:"items_in"`
	ItemsOut   int       `json:"items_out"`
	Failures   int       `json:"failures"`
	Duration   string    `json:"duration"`
}

func outputStatusJSON(ctx context.Context, rt *pipeline, catalog *config.Catalog, runLimit int) error {
	type statusDoc struct {
		DeadLetters *dlq.Stats       `json:"dead_letters,omitempty"`
		Categories  []categoryStatus `json:"categories"`
	}

	doc := statusDoc{}

	for _, cat := range catalog.All() {
		counts, err := rt.items.StatusCounts(ctx, cat.Name)
		if err != nil {
			return fmt.Errorf("reading status counts: %w", err)
		}

		cs := categoryStatus{
			Category: cat.Name,
			Counts:   make(map[string]int, len(counts)),
		}
		for status, n := range counts {
			cs.Counts[string(status)] = n
		}

		runs, err := rt.metrics.RecentRuns(ctx, cat.Name, runLimit)
		if err != nil {
			return fmt.Errorf("reading recent runs: %w", err)
		}
		for _, r := range runs {
			cs.Runs = append(cs.Runs, recentRun{
				RecordedAt: r.RecordedAt,
				RunID:      r.RunID,
				Stage:      string(r.Stage),
				ItemsIn:    r.ItemsIn,
				ItemsOut:   r.ItemsOut,
				Failures:   r.Failures,
				Duration:   r.Duration.String(),
			})
		}

		doc.Categories = append(doc.Categories, cs)
	}

	if rt.deadLetters != nil {
		stats, err := rt.deadLetters.GetStats()
		if err == nil {
			doc.DeadLetters = &stats
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

func outputStatusTables(ctx context.Context, rt *pipeline, catalog *config.Catalog, runLimit int) error {
	printer := newPrinter()

	printer.Header("Store Status")

	table := output.NewTable([]string{"CATEGORY", "PENDING", "PROCESSED", "FILTERED", "PUBLISHED"})
	totalItems := 0
	for _, cat := range catalog.All() {
		counts, err := rt.items.StatusCounts(ctx, cat.Name)
		if err != nil {
			return fmt.Errorf("reading status counts: %w", err)
		}

		for _, n := range counts {
			totalItems += n
		}

		table.AddRow([]string{
			printer.Bold(cat.Name),
			fmt.Sprintf("%d", counts[domain.StatusPending]),
			fmt.Sprintf("%d", counts[domain.StatusProcessed]),
			fmt.Sprintf("%d", counts[domain.StatusFilteredOut]),
			fmt.Sprintf("%d", counts[domain.StatusPublished]),
		})
	}
	table.Render()
	fmt.Println()

	if totalItems == 0 {
		printer.Warning("Store is empty, run 'feed-curator ingest' first")
	} else {
		printer.Info("Total: %d item(s) in store", totalItems)
	}

	fmt.Println()
	printer.Header("Recent Runs")

	sawRuns := false
	for _, cat := range catalog.All() {
		runs, err := rt.metrics.RecentRuns(ctx, cat.Name, runLimit)
		if err != nil {
			return fmt.Errorf("reading recent runs: %w", err)
		}

		if len(runs) == 0 {
			continue
		}
		sawRuns = true

		printer.Info("%s:", printer.Bold(cat.Name))
		runTable := output.NewTable([]string{"WHEN", "STAGE", "IN", "OUT", "FAILURES", "TOOK"})
		for _, r := range runs {
			runTable.AddRow([]string{
				r.RecordedAt.Format("2006-01-02 15:04:05"),
				string(r.Stage),
				fmt.Sprintf("%d", r.ItemsIn),
				fmt.Sprintf("%d", r.ItemsOut),
				fmt.Sprintf("%d", r.Failures),
				r.Duration.Round(time.Millisecond).String(),
			})
		}
		runTable.Render()
		fmt.Println()
	}

	if !sawRuns {
		printer.Info("No recorded runs yet")
	}

	printDeadLetterStats(printer, rt)

	return nil
}

func printDeadLetterStats(printer *output.Printer, rt *pipeline) {
	if rt.deadLetters == nil {
		return
	}

	stats, err := rt.deadLetters.GetStats()
	if err != nil {
		// Non-fatal: status should still render without the DLQ dir.
		logger.Debug("failed reading dead letter stats", "error", err)
		return
	}

	if stats.TotalFailedItems == 0 {
		return
	}

	fmt.Println()
	printer.Warning("Dead letters: %d item(s), oldest %s, %.1f/day",
		stats.TotalFailedItems,
		stats.OldestFailure.Format("2006-01-02"),
		stats.DailyFailureRate)
}
