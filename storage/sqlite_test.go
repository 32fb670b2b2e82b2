package storage

import (
	"context"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kc-house-sales/config"
	"kc-house-sales/models"
	"kc-house-sales/utils"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	records, err := NewCSVReaderLoader(strings.NewReader(sampleCSV)).Load(ctx)
	require.NoError(t, err)

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kc.db"), "kchouses2", 2, utils.Discard())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Write(ctx, records))
	// a second import replaces rather than appends
	require.NoError(t, store.Write(ctx, records))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(records))

	byID := make(map[int64]int)
	for i, r := range loaded {
		byID[r.ID] = i
	}
	for _, want := range records {
		i, ok := byID[want.ID]
		require.True(t, ok, "id %d missing", want.ID)
		assert.Equal(t, want, loaded[i])
	}
}

func TestSQLiteStoreFailedWriteKeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	records, err := NewCSVReaderLoader(strings.NewReader(sampleCSV)).Load(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kc.db"), "kchouses2", 1, utils.Discard())
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.Write(ctx, records))

	bad := append([]models.Record(nil), records...)
	bad[2].Price = math.NaN() // stored as NULL, rejected by NOT NULL
	require.Error(t, store.Write(ctx, bad))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 3, "the live table still holds the previous import")
	for _, r := range loaded {
		assert.False(t, math.IsNaN(r.Price))
	}

	var staged int
	require.NoError(t, store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE name = 'kchouses2_staging'`).Scan(&staged))
	assert.Zero(t, staged)

	require.NoError(t, store.Write(ctx, records[:2]))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestSQLStoreRejectsBadTableName(t *testing.T) {
	_, err := NewSQLiteStore(filepath.Join(t.TempDir(), "kc.db"), "houses; DROP TABLE x", 10, utils.Discard())
	assert.ErrorContains(t, err, "invalid table name")
}

func TestOpenLoaderSelectsSource(t *testing.T) {
	cfg := &config.Config{
		DataSource: config.SourceSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "kc.db"),
		Table:      "kchouses2",
		BatchSize:  100,
	}

	loader, err := OpenLoader(context.Background(), cfg, utils.Discard())
	require.NoError(t, err)
	defer loader.Close()
	_, ok := loader.(*SQLStore)
	assert.True(t, ok)

	cfg.DataSource = "parquet"
	_, err = OpenLoader(context.Background(), cfg, utils.Discard())
	assert.ErrorContains(t, err, "unknown data source")
}
