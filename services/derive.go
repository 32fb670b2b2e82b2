package services

import (
	"kc-house-sales/models"
	"kc-house-sales/utils"
)

// Derive returns r with AvgPriceSqft and AvgPriceBedroom filled in.
// Zero bedrooms map to a zero price per bedroom. Zero living area is not
// guarded and yields an infinite or NaN price per sqft.
func Derive(r models.Record) models.Record {
	r.AvgPriceSqft = utils.Round(r.Price/r.SqftLiving, 2)
	if r.Bedrooms == 0 {
		r.AvgPriceBedroom = 0
	} else {
		r.AvgPriceBedroom = utils.Round(r.Price/float64(r.Bedrooms), 2)
	}
	return r
}

// DatasetBuilder turns loaded records into the session's immutable Dataset.
type DatasetBuilder struct {
	logger *utils.Logger
}

// NewDatasetBuilder creates a DatasetBuilder with the given logger.
func NewDatasetBuilder(logger *utils.Logger) *DatasetBuilder {
	return &DatasetBuilder{logger: logger}
}

// Build derives every record once over a copy of the input.
func (b *DatasetBuilder) Build(records []models.Record) *models.Dataset {
	out := make([]models.Record, len(records))
	ids := utils.NewIDSet()
	var zeroArea, duplicates int

	for i, r := range records {
		if r.SqftLiving == 0 {
			zeroArea++
		}
		if !ids.Add(r.ID) {
			duplicates++
		}
		out[i] = Derive(r)
	}

	if zeroArea > 0 {
		b.logger.Warn("[dataset] %d records have sqft_living = 0; their price per sqft is undefined", zeroArea)
	}
	if duplicates > 0 {
		b.logger.Debug("[dataset] %d records repeat an earlier id", duplicates)
	}
	b.logger.Info("[dataset] Built dataset: %d records (%d distinct ids)", len(out), ids.Size())
	return models.NewDataset(out)
}

// BuildDataset is Build without logging.
func BuildDataset(records []models.Record) *models.Dataset {
	return NewDatasetBuilder(utils.Discard()).Build(records)
}
