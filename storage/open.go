package storage

import (
	"context"
	"fmt"

	"kc-house-sales/config"
	"kc-house-sales/utils"
)

// OpenLoader returns the dataset source selected by cfg.DataSource.
func OpenLoader(ctx context.Context, cfg *config.Config, logger *utils.Logger) (DatasetLoader, error) {
	switch cfg.DataSource {
	case config.SourceCSV:
		loader, err := NewCSVLoader(cfg.CSVPath)
		if err != nil {
			return nil, err
		}
		return loader, nil
	case config.SourcePostgres, config.SourceSQLite:
		store, err := OpenStore(ctx, cfg, cfg.DataSource, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
}

// OpenStore opens a SQL store for the named backend ("postgres" or "sqlite").
func OpenStore(ctx context.Context, cfg *config.Config, backend string, logger *utils.Logger) (*SQLStore, error) {
	switch backend {
	case config.SourcePostgres:
		return NewPostgresStore(ctx, PostgresOptions{
			DSN:            cfg.DSN(),
			Table:          cfg.Table,
			MaxRetries:     cfg.MaxRetries,
			MaxConcurrency: cfg.MaxConcurrency,
			BatchSize:      cfg.BatchSize,
		}, logger)
	case config.SourceSQLite:
		return NewSQLiteStore(cfg.SQLitePath, cfg.Table, cfg.BatchSize, logger)
	}
	return nil, fmt.Errorf("unknown database backend %q", backend)
}
