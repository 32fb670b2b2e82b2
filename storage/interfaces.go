package storage

import (
	"context"

	"kc-house-sales/models"
)

// DatasetLoader is the interface any dataset source must satisfy.
type DatasetLoader interface {
	Load(ctx context.Context) ([]models.Record, error)
	Close() error
}

// RecordWriter is the interface for persisting records to a backend.
type RecordWriter interface {
	Write(ctx context.Context, records []models.Record) error
	Close() error
}
