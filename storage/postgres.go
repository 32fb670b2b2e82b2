package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"kc-house-sales/utils"
)

// PostgresOptions configures a PostgreSQL store.
type PostgresOptions struct {
	DSN            string
	Table          string
	MaxRetries     int
	MaxConcurrency int
	BatchSize      int
}

// NewPostgresStore opens a connection to PostgreSQL, retrying the ping with
// back-off, and returns a store bound to opts.Table.
func NewPostgresStore(ctx context.Context, opts PostgresOptions, logger *utils.Logger) (*SQLStore, error) {
	db, err := sql.Open("postgres", opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: opts.MaxRetries,
		BaseDelay:   time.Second,
		Logger:      logger,
	}
	if err := retry.Do("postgres ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	store, err := newSQLStore(db, postgresDialect, opts.Table, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.concurrency = max(1, opts.MaxConcurrency)
	store.SetBatchSize(opts.BatchSize)
	db.SetMaxOpenConns(store.concurrency + 1)
	return store, nil
}
