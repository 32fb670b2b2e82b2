package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"kc-house-sales/utils"
)

// NewSQLiteStore opens (or creates) the SQLite database at path.
// Inserts run one batch at a time since SQLite has a single writer.
func NewSQLiteStore(path, table string, batchSize int, logger *utils.Logger) (*SQLStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store, err := newSQLStore(db, sqliteDialect, table, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	store.SetBatchSize(batchSize)
	return store, nil
}
