package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"kc-house-sales/models"
)

// CSVWriter exports records, derived columns included, to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// exportHeader is the source column order followed by the derived columns.
var exportHeader = append(append([]string{}, models.Columns...), "avg_price_sqft", "avg_price_bedroom")

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(exportHeader); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends records to the file.
func (c *CSVWriter) Write(ctx context.Context, records []models.Record) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.writer.Write(csvRow(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func csvRow(r models.Record) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	i := func(v int) string { return strconv.Itoa(v) }
	waterfront := "0"
	if r.Waterfront {
		waterfront = "1"
	}
	return []string{
		strconv.FormatInt(r.ID, 10), r.Date.Format("20060102T150405"), f(r.Price), i(r.Bedrooms),
		f(r.Bathrooms), f(r.SqftLiving), f(r.SqftLot), f(r.Floors), waterfront,
		i(r.View), i(r.Condition), i(r.Grade), f(r.SqftAbove), f(r.SqftBasement),
		i(r.YrBuilt), i(r.YrRenovated), i(r.Zipcode), f(r.Lat), f(r.Long),
		f(r.SqftLiving15), f(r.SqftLot15), f(r.AvgPriceSqft), f(r.AvgPriceBedroom),
	}
}
