package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"feed-curator/artifact"
	"feed-curator/dlq"
	"feed-curator/driver"
	"feed-curator/ratelimit"
	"feed-curator/repository"
	"feed-curator/retry"
	"feed-curator/service"
)

// pipeline bundles the wired services behind one handle so every
// command assembles them the same way.
type pipeline struct {
	db          *pgxpool.Pool
	items       repository.ItemRepository
	metrics     repository.MetricsRepository
	store       *artifact.Store
	deadLetters *dlq.FileDLQManager
	ingestor    service.IngestionService
	classifier  service.ClassificationService
	selector    service.SelectionService
	publisher   service.PublicationService
	reconciler  service.ReconcileService
}

// openPipeline connects to the store, ensures the schema, and wires
// the full service graph from the loaded configuration.
func openPipeline(ctx context.Context) (*pipeline, error) {
	db, err := driver.Init(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to store: %w", err)
	}

	if err := driver.EnsureSchema(ctx, db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	limiter, err := ratelimit.NewHostLimiter(cfg.RateLimit.Interval, cfg.RateLimit.Burst, cfg.RateLimit.HostIntervals, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("building rate limiter: %w", err)
	}

	items := repository.NewItemRepository(db, logger)
	metricsRepo := repository.NewMetricsRepository(db, logger)
	scorer := repository.NewScorerRepository(cfg.Scorer, logger)
	source := repository.NewSourceRepository(cfg.Fetch, limiter, logger)

	var pages repository.PageRepository
	if cfg.Fetch.EnrichContent {
		pages = repository.NewPageRepository(cfg.Fetch, limiter, logger)
	}

	recorder := service.NewMetricsRecorder(metricsRepo, logger)
	retrier := retry.NewRetrier(retry.DefaultPolicy(), service.IsRetryableError, logger)
	breaker := retry.NewCircuitBreaker(cfg.Scorer.BreakerThreshold, cfg.Scorer.BreakerCooldown)

	// Assign the sink only when a manager exists: a typed nil inside
	// the interface would defeat the services' nil checks.
	var deadLetters *dlq.FileDLQManager
	var sink service.DeadLetterSink
	if cfg.DLQ.Enabled {
		deadLetters = dlq.NewFileDLQManager(
			dlq.Config{BasePath: cfg.DLQ.BasePath, Retention: cfg.DLQ.Retention},
			service.IsRetryableError,
			logger,
		)
		sink = deadLetters
	}

	store := artifact.NewStore(cfg.Artifact.RetentionCap, logger)
	vcs := artifact.NewPublisher(cfg.Git, logger)

	publisher := service.NewPublicationService(items, store, vcs, recorder, logger)

	return &pipeline{
		db:          db,
		items:       items,
		metrics:     metricsRepo,
		store:       store,
		deadLetters: deadLetters,
		ingestor:    service.NewIngestionService(items, source, pages, recorder, cfg.Fetch, logger),
		classifier:  service.NewClassificationService(items, scorer, retrier, breaker, sink, recorder, cfg.Pipeline, logger),
		selector:    service.NewSelectionService(items, cfg.Reconcile.Window, recorder, logger),
		publisher:   publisher,
		reconciler:  service.NewReconcileService(items, store, publisher, cfg.Reconcile.Window, recorder, logger),
	}, nil
}

// Close releases the store connection pool.
func (p *pipeline) Close() {
	p.db.Close()
}

// cleanupDeadLetters expires old dead letter records after a run.
// Failures are logged, never propagated; cleanup must not fail a run
// that already succeeded.
func (p *pipeline) cleanupDeadLetters(ctx context.Context) {
	if p.deadLetters == nil {
		return
	}

	if err := p.deadLetters.Cleanup(ctx); err != nil {
		logger.Warn("dead letter cleanup failed", "error", err)
	}
}
