package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"kc-house-sales/models"
	"kc-house-sales/utils"
)

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dialect captures the few differences between the SQL backends.
type dialect struct {
	name        string
	placeholder func(n int) string
}

var (
	postgresDialect = dialect{name: "postgres", placeholder: func(n int) string { return fmt.Sprintf("$%d", n) }}
	sqliteDialect   = dialect{name: "sqlite", placeholder: func(int) string { return "?" }}
)

// SQLStore loads and stores house sales in a relational table.
type SQLStore struct {
	db          *sql.DB
	table       string
	dialect     dialect
	batchSize   int
	concurrency int
	logger      *utils.Logger
}

func newSQLStore(db *sql.DB, d dialect, table string, logger *utils.Logger) (*SQLStore, error) {
	if !identRegexp.MatchString(table) {
		return nil, fmt.Errorf("%s: invalid table name %q", d.name, table)
	}
	return &SQLStore{
		db:          db,
		table:       table,
		dialect:     d,
		batchSize:   500,
		concurrency: 1,
		logger:      logger,
	}, nil
}

// maxBindVars keeps a batch under both backends' bind parameter limits.
const maxBindVars = 30000

// SetBatchSize sets how many rows go into one INSERT statement.
func (s *SQLStore) SetBatchSize(n int) {
	if n > 0 {
		s.batchSize = min(n, maxBindVars/len(models.Columns))
	}
}

// Load runs SELECT over the fixed column list and post-processes every row.
func (s *SQLStore) Load(ctx context.Context) ([]models.Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", columnList(), quote(s.table))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: query %s: %w", s.dialect.name, s.table, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		vals := make([]any, len(models.Columns))
		ptrs := make([]any, len(vals))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", s.dialect.name, err)
		}

		r, err := recordFromValues(vals)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", s.dialect.name, len(records)+1, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate rows: %w", s.dialect.name, err)
	}

	s.logger.Debug("[%s] loaded %d rows from %s", s.dialect.name, len(records), s.table)
	return records, nil
}

// Migrate creates the table and its date index if they do not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if err := s.createTable(ctx, s.table); err != nil {
		return err
	}
	stmt := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s("date")`, quote("idx_"+s.table+"_date"), quote(s.table))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("%s: migrate: %w", s.dialect.name, err)
	}
	return nil
}

func (s *SQLStore) createTable(ctx context.Context, table string) error {
	stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		"id"            BIGINT           NOT NULL,
		"date"          DATE             NOT NULL,
		"price"         DOUBLE PRECISION NOT NULL,
		"bedrooms"      INTEGER          NOT NULL DEFAULT 0,
		"bathrooms"     DOUBLE PRECISION NOT NULL DEFAULT 0,
		"sqft_living"   DOUBLE PRECISION NOT NULL DEFAULT 0,
		"sqft_lot"      DOUBLE PRECISION NOT NULL DEFAULT 0,
		"floors"        DOUBLE PRECISION NOT NULL DEFAULT 0,
		"waterfront"    BOOLEAN          NOT NULL DEFAULT FALSE,
		"view"          INTEGER          NOT NULL DEFAULT 0,
		"condition"     INTEGER          NOT NULL DEFAULT 0,
		"grade"         INTEGER          NOT NULL DEFAULT 0,
		"sqft_above"    DOUBLE PRECISION NOT NULL DEFAULT 0,
		"sqft_basement" DOUBLE PRECISION NOT NULL DEFAULT 0,
		"yr_built"      INTEGER          NOT NULL DEFAULT 0,
		"yr_renovated"  INTEGER          NOT NULL DEFAULT 0,
		"zipcode"       INTEGER          NOT NULL DEFAULT 0,
		"lat"           DOUBLE PRECISION NOT NULL DEFAULT 0,
		"long"          DOUBLE PRECISION NOT NULL DEFAULT 0,
		"sqft_living15" DOUBLE PRECISION NOT NULL DEFAULT 0,
		"sqft_lot15"    DOUBLE PRECISION NOT NULL DEFAULT 0
	)`, quote(table))
	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("%s: create table %s: %w", s.dialect.name, table, err)
	}
	return nil
}

// Write replaces the table contents with records. Batches are inserted in parallel,
// up to the store's concurrency, into a staging table; the live table is then
// swapped over in a single transaction, so a failed import leaves it untouched.
func (s *SQLStore) Write(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := s.Migrate(ctx); err != nil {
		return err
	}

	staging := s.table + "_staging"
	if err := s.dropTable(ctx, staging); err != nil {
		return err
	}
	if err := s.createTable(ctx, staging); err != nil {
		return err
	}

	pool := utils.NewWorkerPool(s.concurrency)
	for i := 0; i < len(records); i += s.batchSize {
		batch := records[i:min(i+s.batchSize, len(records))]
		pool.Submit(func() error { return s.insertBatch(ctx, staging, batch) })
	}
	if err := pool.Wait(); err != nil {
		if dropErr := s.dropTable(ctx, staging); dropErr != nil {
			s.logger.Warn("[%s] %v", s.dialect.name, dropErr)
		}
		return err
	}

	if err := s.swap(ctx, staging); err != nil {
		return err
	}
	s.logger.Info("[%s] Stored %d records in %s", s.dialect.name, len(records), s.table)
	return nil
}

// swap replaces the live rows with the staged ones and drops the staging table.
func (s *SQLStore) swap(ctx context.Context, staging string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", s.dialect.name, err)
	}
	defer func() { _ = tx.Rollback() }()

	stmts := []string{
		"DELETE FROM " + quote(s.table),
		fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s",
			quote(s.table), columnList(), columnList(), quote(staging)),
		"DROP TABLE " + quote(staging),
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: swap staged rows: %w", s.dialect.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", s.dialect.name, err)
	}
	return nil
}

func (s *SQLStore) dropTable(ctx context.Context, table string) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(table)); err != nil {
		return fmt.Errorf("%s: drop table %s: %w", s.dialect.name, table, err)
	}
	return nil
}

func (s *SQLStore) insertBatch(ctx context.Context, table string, batch []models.Record) error {
	cols := len(models.Columns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*cols)

	for idx, r := range batch {
		ph := make([]string, cols)
		for c := range ph {
			ph[c] = s.dialect.placeholder(idx*cols + c + 1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
		valueArgs = append(valueArgs, recordValues(r)...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		quote(table), columnList(), strings.Join(valueStrings, ","))

	if _, err := s.db.ExecContext(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("%s: insert batch: %w", s.dialect.name, err)
	}
	return nil
}

// quote wraps an already validated identifier in double quotes.
func quote(ident string) string {
	return `"` + ident + `"`
}

func columnList() string {
	cols := make([]string, len(models.Columns))
	for i, c := range models.Columns {
		cols[i] = quote(c)
	}
	return strings.Join(cols, ", ")
}

// Close closes the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
