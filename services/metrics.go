package services

import (
	"errors"
	"fmt"

	"kc-house-sales/models"
	"kc-house-sales/utils"
)

var (
	// ErrEmptyBaseline means the full dataset has no rows to compare against.
	ErrEmptyBaseline = errors.New("baseline dataset is empty")
	// ErrZeroBaseline means a baseline mean is zero, so a relative delta is undefined.
	ErrZeroBaseline = errors.New("baseline mean is zero")
	// ErrUnsupportedMeasure is returned when a measure cannot be averaged.
	ErrUnsupportedMeasure = errors.New("unsupported measure")
)

// Baseline holds the full-dataset statistics every delta is computed against.
type Baseline struct {
	Count          int
	MeanPrice      float64
	MeanPriceSqft  float64
	MeanPriceBed   float64
	MeanSqftLiving float64
	MeanSqftLot    float64
}

// NewBaseline computes the baseline over the whole dataset.
func NewBaseline(ds *models.Dataset) (*Baseline, error) {
	n := ds.Len()
	if n == 0 {
		return nil, ErrEmptyBaseline
	}

	var price, sqft, bed, living, lot float64
	ds.Each(func(r *models.Record) {
		price += r.Price
		sqft += r.AvgPriceSqft
		bed += r.AvgPriceBedroom
		living += r.SqftLiving
		lot += r.SqftLot
	})

	fn := float64(n)
	return &Baseline{
		Count:          n,
		MeanPrice:      price / fn,
		MeanPriceSqft:  sqft / fn,
		MeanPriceBed:   bed / fn,
		MeanSqftLiving: living / fn,
		MeanSqftLot:    lot / fn,
	}, nil
}

// Mean returns the baseline mean of a price-family measure.
func (b *Baseline) Mean(m models.Measure) (float64, error) {
	switch m {
	case models.MeasurePrice:
		return b.MeanPrice, nil
	case models.MeasurePriceSqft:
		return b.MeanPriceSqft, nil
	case models.MeasurePriceBedroom:
		return b.MeanPriceBed, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMeasure, m)
}

// measureValue extracts the value a price-family measure averages.
func measureValue(m models.Measure) (func(r *models.Record) float64, error) {
	switch m {
	case models.MeasurePrice:
		return func(r *models.Record) float64 { return r.Price }, nil
	case models.MeasurePriceSqft:
		return func(r *models.Record) float64 { return r.AvgPriceSqft }, nil
	case models.MeasurePriceBedroom:
		return func(r *models.Record) float64 { return r.AvgPriceBedroom }, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedMeasure, m)
}

func mean(records []models.Record, value func(r *models.Record) float64) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for i := range records {
		total += value(&records[i])
	}
	return total / float64(len(records))
}

// ValueMetric is the subset's mean of m rounded to an integer, or 0 for an empty subset.
func ValueMetric(subset []models.Record, m models.Measure) (int, error) {
	value, err := measureValue(m)
	if err != nil {
		return 0, err
	}
	if len(subset) == 0 {
		return 0, nil
	}
	return utils.RoundInt(mean(subset, value)), nil
}

// DeltaMetric is the subset's mean of m relative to the baseline, in percent to one decimal.
// An empty subset yields the bare zero delta, not a percentage.
func DeltaMetric(subset []models.Record, base *Baseline, m models.Measure) (models.Delta, error) {
	value, err := measureValue(m)
	if err != nil {
		return models.Delta{}, err
	}
	if len(subset) == 0 {
		return models.Delta{Percent: 0, Label: "0"}, nil
	}

	total, _ := base.Mean(m)
	pct, err := relativeChange(mean(subset, value), total, string(m))
	if err != nil {
		return models.Delta{}, err
	}
	return percentDelta(utils.Round(pct, 1)), nil
}

// CountMetrics reports transaction count and mean areas with their baseline deltas.
// Area deltas are computed even for an empty subset, using 0 as its mean.
func CountMetrics(subset []models.Record, base *Baseline) (models.CountReport, error) {
	if base.Count == 0 {
		return models.CountReport{}, ErrEmptyBaseline
	}

	report := models.CountReport{Transactions: len(subset)}
	report.TransactionsShare = percentDelta(
		utils.Round(float64(len(subset))/float64(base.Count)*100, 2))

	if len(subset) > 0 {
		report.HouseArea = utils.RoundInt(mean(subset, func(r *models.Record) float64 { return r.SqftLiving }))
		report.LotArea = utils.RoundInt(mean(subset, func(r *models.Record) float64 { return r.SqftLot }))
	}

	house, err := relativeChange(float64(report.HouseArea), base.MeanSqftLiving, "sqft_living")
	if err != nil {
		return models.CountReport{}, err
	}
	lot, err := relativeChange(float64(report.LotArea), base.MeanSqftLot, "sqft_lot")
	if err != nil {
		return models.CountReport{}, err
	}
	report.HouseAreaDelta = percentDelta(utils.Round(house, 1))
	report.LotAreaDelta = percentDelta(utils.Round(lot, 1))
	return report, nil
}

// relativeChange is (value - baseline) / baseline * 100.
func relativeChange(value, baseline float64, name string) (float64, error) {
	if baseline == 0 {
		return 0, fmt.Errorf("%w: %s", ErrZeroBaseline, name)
	}
	return (value - baseline) / baseline * 100, nil
}

func percentDelta(pct float64) models.Delta {
	return models.Delta{Percent: pct, Label: utils.FormatPercent(pct)}
}
