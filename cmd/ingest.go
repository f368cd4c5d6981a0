package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"feed-curator/domain"
	"feed-curator/internal/output"
	"feed-curator/ratelimit"
	"feed-curator/repository"
	"feed-curator/service"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [category]",
	Short: "Fetch source feeds and land new items",
	Long: `Pull every source feed of a category, fingerprint the entries and
insert the ones the store has not seen. Re-running over the same feeds
is safe: known items are recognized and skipped, never duplicated.

Examples:
  feed-curator ingest tech             # Ingest one category
  feed-curator ingest --all            # Ingest every configured category
  feed-curator ingest tech --dry-run   # Fetch and report without writing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().Bool("all", false, "ingest every configured category")
}

func runIngest(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	if all && len(args) > 0 {
		return &output.CLIError{
			Summary:    fmt.Sprintf("category argument %q cannot be combined with --all", args[0]),
			Suggestion: "Drop the category argument or the flag",
		}
	}

	if !all && len(args) == 0 {
		return &output.CLIError{
			Summary:    "category required",
			Suggestion: "Name a category or pass --all",
		}
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	var cats []domain.CategoryConfig
	if all {
		cats = catalog.All()
	} else {
		cat, err := catalog.Get(args[0])
		if err != nil {
			return unknownCategoryError(args[0], catalog)
		}
		cats = []domain.CategoryConfig{cat}
	}

	if dryRun {
		return previewIngest(cmd.Context(), cats)
	}

	rt, err := openPipeline(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	return ingestCategories(cmd.Context(), rt, cats)
}

// ingestReport pairs one category with its ingestion outcome.
type ingestReport struct {
	res      *service.IngestionResult
	err      error
	category string
}

func ingestCategories(ctx context.Context, rt *pipeline, cats []domain.CategoryConfig) error {
	printer := newPrinter()

	// Plain Group, not WithContext: categories are independent and one
	// failing feed set must not cancel the others.
	var g errgroup.Group
	reports := make([]ingestReport, len(cats))

	for i := range cats {
		i := i
		g.Go(func() error {
			res, err := rt.ingestor.IngestCategory(ctx, &cats[i])
			reports[i] = ingestReport{category: cats[i].Name, res: res, err: err}
			return nil
		})
	}

	_ = g.Wait()

	failed := 0
	for _, r := range reports {
		if r.err != nil {
			printer.Error("%s: %v", r.category, r.err)
			failed++
			continue
		}

		printer.Success("%s: fetched %d, new %d, known %d, failed %d",
			r.category, r.res.FetchedCount, r.res.NewCount, r.res.KnownCount, r.res.ErrorCount)

		if r.res.EnrichedCount > 0 {
			printer.Info("%s: enriched %d item(s) from linked pages", r.category, r.res.EnrichedCount)
		}
	}

	if failed > 0 {
		return fmt.Errorf("ingestion failed for %d of %d categories", failed, len(cats))
	}

	return nil
}

// previewIngest pulls the feeds but never opens the store, so a dry
// run works without a reachable database.
func previewIngest(ctx context.Context, cats []domain.CategoryConfig) error {
	printer := newPrinter()

	limiter, err := ratelimit.NewHostLimiter(cfg.RateLimit.Interval, cfg.RateLimit.Burst, cfg.RateLimit.HostIntervals, logger)
	if err != nil {
		return fmt.Errorf("building rate limiter: %w", err)
	}
	source := repository.NewSourceRepository(cfg.Fetch, limiter, logger)

	for i := range cats {
		cat := &cats[i]
		total := 0
		failed := 0

		for _, feedURL := range cat.SourceFeeds {
			items, err := source.Fetch(ctx, feedURL)
			if err != nil {
				printer.Warning("%s: %s: %v", cat.Name, feedURL, err)
				failed++
				continue
			}
			total += len(items)
		}

		printer.Info("%s: %d item(s) across %d feed(s), %d failed",
			cat.Name, total, len(cat.SourceFeeds)-failed, failed)
	}

	printer.Warning("Dry run: nothing was written")

	return nil
}
