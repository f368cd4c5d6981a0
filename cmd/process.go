package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"feed-curator/artifact"
	"feed-curator/domain"
	"feed-curator/internal/config"
	"feed-curator/internal/output"
)

var processCmd = &cobra.Command{
	Use:   "process [category]",
	Short: "Classify, select and publish items for a category",
	Long: `Run the scoring pipeline for one category: score pending items
against the category threshold, select the best unpublished survivors
under the publication budget, and merge them into the feed artifact.

Examples:
  feed-curator process tech            # Process the tech category
  feed-curator process --all           # Process every configured category
  feed-curator process --list          # Show configured categories, no work
  feed-curator process --reconcile     # Repair artifact drift instead
  feed-curator process tech --dry-run  # Report candidates without publishing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().Bool("all", false, "process every configured category")
	processCmd.Flags().Bool("list", false, "list configured categories and thresholds")
	processCmd.Flags().Bool("reconcile", false, "audit and repair feed artifacts instead of processing")
}

func runProcess(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")
	list, _ := cmd.Flags().GetBool("list")
	reconcile, _ := cmd.Flags().GetBool("reconcile")

	if err := checkProcessModes(args, all, list, reconcile); err != nil {
		return err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	switch {
	case list:
		return listCategories(catalog)
	case reconcile:
		return runReconciliation(cmd.Context(), catalog)
	case all:
		return processAll(cmd.Context(), catalog)
	default:
		cat, err := catalog.Get(args[0])
		if err != nil {
			return unknownCategoryError(args[0], catalog)
		}

		return processOne(cmd.Context(), &cat)
	}
}

// checkProcessModes rejects bad flag combinations before anything
// touches the store, so a usage error can never leave side effects.
func checkProcessModes(args []string, all, list, reconcile bool) error {
	modes := 0
	for _, on := range []bool{all, list, reconcile} {
		if on {
			modes++
		}
	}

	if modes > 1 {
		return &output.CLIError{
			Summary:    "--all, --list and --reconcile are mutually exclusive",
			Suggestion: "Pick one mode per invocation",
		}
	}

	if modes == 1 && len(args) > 0 {
		return &output.CLIError{
			Summary:    fmt.Sprintf("category argument %q cannot be combined with a mode flag", args[0]),
			Suggestion: "Drop the category argument or the flag",
		}
	}

	if modes == 0 && len(args) == 0 {
		return &output.CLIError{
			Summary:    "category required",
			Suggestion: "Name a category, or use --all, --list or --reconcile",
		}
	}

	return nil
}

func unknownCategoryError(name string, catalog *config.Catalog) error {
	return &output.CLIError{
		Summary:    fmt.Sprintf("unknown category: %s", name),
		Detail:     fmt.Sprintf("configured: %s", strings.Join(catalog.Names(), ", ")),
		Suggestion: "Run 'feed-curator process --list' to see configured categories",
	}
}

// listCategories prints the catalog without opening the store.
func listCategories(catalog *config.Catalog) error {
	printer := newPrinter()
	printer.Header("Configured Categories")

	table := output.NewTable([]string{"CATEGORY", "THRESHOLD", "TARGET", "SOURCES", "ARTIFACT"})
	for _, cat := range catalog.All() {
		table.AddRow([]string{
			printer.Bold(cat.Name),
			fmt.Sprintf("%.2f", cat.QualityThreshold),
			fmt.Sprintf("%d", cat.HighQualityTarget),
			fmt.Sprintf("%d", len(cat.SourceFeeds)),
			cat.ArtifactPath,
		})
	}
	table.Render()

	return nil
}

// categoryReport accumulates one category's processing outcome across
// the classification loop and the publication pass.
type categoryReport struct {
	err       error
	category  string
	scored    int
	passed    int
	filtered  int
	exhausted int
	skipped   int
	published int
}

func processOne(ctx context.Context, cat *domain.CategoryConfig) error {
	rt, err := openPipeline(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	if dryRun {
		return previewCategory(ctx, rt, cat)
	}

	printer := newPrinter()
	report := processCategory(ctx, rt, cat)
	printCategoryReport(printer, report)

	if report.err != nil {
		return report.err
	}

	rt.cleanupDeadLetters(ctx)

	return nil
}

func processAll(ctx context.Context, catalog *config.Catalog) error {
	rt, err := openPipeline(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	cats := catalog.All()

	if dryRun {
		for i := range cats {
			if err := previewCategory(ctx, rt, &cats[i]); err != nil {
				return err
			}
		}

		return nil
	}

	printer := newPrinter()
	printer.Header("Processing Categories")

	// Plain Group, not WithContext: one category failing must not
	// cancel its siblings mid-publication.
	var g errgroup.Group
	reports := make([]categoryReport, len(cats))

	for i := range cats {
		i := i
		g.Go(func() error {
			reports[i] = processCategory(ctx, rt, &cats[i])
			return nil
		})
	}

	_ = g.Wait()

	table := output.NewTable([]string{"CATEGORY", "SCORED", "PASSED", "FILTERED", "PUBLISHED", "RESULT"})
	failed := 0
	for _, r := range reports {
		result := "ok"
		if r.err != nil {
			result = "failed: " + r.err.Error()
			failed++
		}

		table.AddRow([]string{
			printer.Bold(r.category),
			fmt.Sprintf("%d", r.scored),
			fmt.Sprintf("%d", r.passed),
			fmt.Sprintf("%d", r.filtered),
			fmt.Sprintf("%d", r.published),
			result,
		})
	}
	table.Render()
	fmt.Println()

	if failed > 0 {
		return fmt.Errorf("%d of %d categories failed", failed, len(cats))
	}

	printer.Success("Processed %d categories", len(cats))
	rt.cleanupDeadLetters(ctx)

	return nil
}

// processCategory drains pending items through classification, then
// runs selection and publication, for a single category.
func processCategory(ctx context.Context, rt *pipeline, cat *domain.CategoryConfig) categoryReport {
	report := categoryReport{category: cat.Name}

	for {
		res, err := rt.classifier.ClassifyPending(ctx, cat)
		if err != nil {
			report.err = err
			return report
		}

		report.scored += res.ProcessedCount
		report.passed += res.PassedCount
		report.filtered += res.FilteredCount
		report.exhausted += res.ExhaustedCount
		report.skipped += res.SkippedCount

		// No forward progress means the remaining items all stayed
		// pending (scorer down, breaker open). Looping again would spin.
		if res.PassedCount+res.FilteredCount+res.ExhaustedCount == 0 {
			break
		}

		if !res.HasMore {
			break
		}
	}

	candidates, err := rt.selector.SelectCandidates(ctx, cat, time.Now())
	if err != nil {
		report.err = err
		return report
	}

	if len(candidates) == 0 {
		return report
	}

	pub, err := rt.publisher.Publish(ctx, cat, candidates)
	if err != nil {
		report.err = err
		return report
	}

	report.published = pub.PublishedCount

	return report
}

func printCategoryReport(printer *output.Printer, r categoryReport) {
	if r.err != nil {
		printer.Error("%s: %v", r.category, r.err)
		return
	}

	printer.Success("%s: scored %d (passed %d, filtered %d, exhausted %d), published %d",
		r.category, r.scored, r.passed, r.filtered, r.exhausted, r.published)

	if r.skipped > 0 {
		printer.Warning("%s: %d item(s) left pending, scorer unavailable", r.category, r.skipped)
	}
}

// previewCategory reports what process would do without scoring or
// publishing anything. Reads only.
func previewCategory(ctx context.Context, rt *pipeline, cat *domain.CategoryConfig) error {
	printer := newPrinter()

	counts, err := rt.items.StatusCounts(ctx, cat.Name)
	if err != nil {
		return fmt.Errorf("reading status counts: %w", err)
	}

	candidates, err := rt.selector.SelectCandidates(ctx, cat, time.Now())
	if err != nil {
		return err
	}

	printer.Header(fmt.Sprintf("Dry Run: %s", cat.Name))
	printer.Info("Pending items awaiting classification: %d", counts[domain.StatusPending])
	printer.Info("Publish candidates under current budget: %d", len(candidates))

	if len(candidates) > 0 {
		table := output.NewTable([]string{"SCORE", "TITLE"})
		for _, item := range candidates {
			score := "-"
			if item.Classification != nil {
				score = fmt.Sprintf("%.2f", item.Classification.RelevanceScore)
			}
			table.AddRow([]string{score, item.Title})
		}
		table.Render()
	}

	printer.Warning("Dry run: nothing was scored or published")

	return nil
}

// runReconciliation audits every category's artifact against the store
// and republishes whatever the artifact lost.
func runReconciliation(ctx context.Context, catalog *config.Catalog) error {
	rt, err := openPipeline(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	printer := newPrinter()
	printer.Header("Reconciling Artifacts")

	now := time.Now()
	cats := catalog.All()
	failed := 0

	for i := range cats {
		cat := &cats[i]

		if dryRun {
			if err := previewReconciliation(ctx, rt, cat, now, printer); err != nil {
				printer.Error("%s: %v", cat.Name, err)
				failed++
			}
			continue
		}

		res, err := rt.reconciler.Reconcile(ctx, cat, now)
		if err != nil {
			printer.Error("%s: %v", cat.Name, err)
			failed++
			continue
		}

		if res.MissingCount == 0 {
			printer.Info("%s: artifact consistent (%d expected, %d present)",
				cat.Name, res.ExpectedCount, res.PresentCount)
			continue
		}

		printer.Success("%s: republished %d missing item(s) (%d expected, %d present)",
			cat.Name, res.RepublishedCount, res.ExpectedCount, res.PresentCount)
	}

	if failed > 0 {
		return fmt.Errorf("reconciliation failed for %d of %d categories", failed, len(cats))
	}

	return nil
}

// previewReconciliation reports drift without repairing it, using the
// same expected/present computation the reconciler runs.
func previewReconciliation(ctx context.Context, rt *pipeline, cat *domain.CategoryConfig, now time.Time, printer *output.Printer) error {
	window := domain.TrailingWindow(now, cfg.Reconcile.Window)

	expected, err := rt.items.ExpectedInWindow(ctx, cat.Name, cat.QualityThreshold, window)
	if err != nil {
		return fmt.Errorf("reading expected items: %w", err)
	}

	present := artifact.GUIDSet(rt.store.Read(ctx, cat.ArtifactPath))

	missing := 0
	for _, item := range expected {
		if _, ok := present[item.Fingerprint]; !ok {
			missing++
		}
	}

	printer.Info("%s: %d expected, %d present, %d missing (dry run, no repair)",
		cat.Name, len(expected), len(present), missing)

	return nil
}
