package driver

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"feed-curator/internal/config"
)

// Init opens the connection pool and verifies it with a ping.
func Init(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		logger.ErrorContext(ctx, "failed to parse database config", "error", err)
		return nil, err
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.ErrorContext(ctx, "failed to connect to database", "error", err)
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		logger.ErrorContext(ctx, "failed to ping database", "error", err)
		pool.Close()

		return nil, err
	}

	logger.InfoContext(ctx, "connected to database pool",
		"host", cfg.Host,
		"database", cfg.Name,
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns)

	return pool, nil
}
