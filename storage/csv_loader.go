package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"kc-house-sales/models"
)

// CSVLoader reads records from a delimited file with a header row.
// Columns are matched by name, so order and extra columns do not matter.
type CSVLoader struct {
	file *os.File
	r    io.Reader
}

// NewCSVLoader opens the file at path.
func NewCSVLoader(path string) (*CSVLoader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	return &CSVLoader{file: f, r: f}, nil
}

// NewCSVReaderLoader reads from an arbitrary reader.
func NewCSVReaderLoader(r io.Reader) *CSVLoader {
	return &CSVLoader{r: r}
}

// Load parses every row. Missing optional columns stay zero; id, date and price are required.
func (c *CSVLoader) Load(ctx context.Context) ([]models.Record, error) {
	reader := csv.NewReader(c.r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))] = i
	}
	for _, required := range []string{"id", "date", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("csv: missing required column %q", required)
		}
	}

	var records []models.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}

		vals := make([]any, len(models.Columns))
		for col, name := range models.Columns {
			if i, ok := index[name]; ok && i < len(row) {
				vals[col] = row[i]
			}
		}

		r, err := recordFromValues(vals)
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Close closes the underlying file, if any.
func (c *CSVLoader) Close() error {
	if c.file == nil {
		return nil
	}
	return c.file.Close()
}
