package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kc-house-sales/models"
)

func TestNewBaselineRejectsEmptyDataset(t *testing.T) {
	_, err := NewBaseline(models.NewDataset(nil))
	assert.ErrorIs(t, err, ErrEmptyBaseline)
}

func TestBaselineMeans(t *testing.T) {
	base, err := NewBaseline(sampleDataset())
	require.NoError(t, err)

	assert.Equal(t, 3, base.Count)
	assert.Equal(t, 300000.0, base.MeanPrice)
	assert.Equal(t, 1500.0, base.MeanSqftLiving)
	assert.Equal(t, 8000.0, base.MeanSqftLot)
	assert.InDelta(t, 183.333, base.MeanPriceSqft, 0.001)
}

func TestValueAndDeltaMetric(t *testing.T) {
	ds := sampleDataset()
	base, err := NewBaseline(ds)
	require.NoError(t, err)
	subset := Filter(ds, openSpec())

	value, err := ValueMetric(subset, models.MeasurePrice)
	require.NoError(t, err)
	assert.Equal(t, 200000, value)

	delta, err := DeltaMetric(subset, base, models.MeasurePrice)
	require.NoError(t, err)
	assert.Equal(t, models.Delta{Percent: -33.3, Label: "-33.3 %"}, delta)

	value, err = ValueMetric(subset, models.MeasurePriceSqft)
	require.NoError(t, err)
	assert.Equal(t, 150, value)
}

func TestMetricsOnEmptySubset(t *testing.T) {
	base, err := NewBaseline(sampleDataset())
	require.NoError(t, err)

	for _, m := range []models.Measure{models.MeasurePrice, models.MeasurePriceSqft, models.MeasurePriceBedroom} {
		value, err := ValueMetric(nil, m)
		require.NoError(t, err)
		assert.Zero(t, value)

		delta, err := DeltaMetric(nil, base, m)
		require.NoError(t, err)
		assert.Equal(t, models.Delta{Percent: 0, Label: "0"}, delta, "empty subsets get a bare zero delta")
	}

	counts, err := CountMetrics(nil, base)
	require.NoError(t, err)
	assert.Zero(t, counts.Transactions)
	assert.Equal(t, "0.0 %", counts.TransactionsShare.Label)
	assert.Zero(t, counts.HouseArea)
	assert.Equal(t, "-100.0 %", counts.HouseAreaDelta.Label, "area deltas still use 0 as the empty mean")
	assert.Zero(t, counts.LotArea)
	assert.Equal(t, "-100.0 %", counts.LotAreaDelta.Label)
}

func TestCountMetricsScenario(t *testing.T) {
	ds := sampleDataset()
	base, err := NewBaseline(ds)
	require.NoError(t, err)

	counts, err := CountMetrics(Filter(ds, openSpec()), base)
	require.NoError(t, err)

	assert.Equal(t, 2, counts.Transactions)
	assert.Equal(t, models.Delta{Percent: 66.67, Label: "66.67 %"}, counts.TransactionsShare)
	assert.Equal(t, 1250, counts.HouseArea)
	assert.Equal(t, "-16.7 %", counts.HouseAreaDelta.Label)
	assert.Equal(t, 6000, counts.LotArea)
	assert.Equal(t, "-25.0 %", counts.LotAreaDelta.Label)
}

func TestCountMetricsWholeDataset(t *testing.T) {
	ds := sampleDataset()
	base, err := NewBaseline(ds)
	require.NoError(t, err)

	counts, err := CountMetrics(ds.Records(), base)
	require.NoError(t, err)

	assert.Equal(t, "100.0 %", counts.TransactionsShare.Label)
	assert.Equal(t, 100.0, counts.TransactionsShare.Percent)
	assert.Equal(t, "0.0 %", counts.HouseAreaDelta.Label)
	assert.Equal(t, "0.0 %", counts.LotAreaDelta.Label)
}

func TestZeroBaselineMeanIsAnError(t *testing.T) {
	ds := BuildDataset([]models.Record{
		{ID: 1, Date: day(2014, 5, 2), Price: 100000, SqftLiving: 1000, SqftLot: 0, Bedrooms: 0},
	})
	base, err := NewBaseline(ds)
	require.NoError(t, err)

	_, err = DeltaMetric(ds.Records(), base, models.MeasurePriceBedroom)
	assert.ErrorIs(t, err, ErrZeroBaseline)

	_, err = CountMetrics(ds.Records(), base)
	assert.ErrorIs(t, err, ErrZeroBaseline)
}

func TestUnsupportedMeasure(t *testing.T) {
	base, err := NewBaseline(sampleDataset())
	require.NoError(t, err)

	_, err = ValueMetric(nil, models.MeasureTransactions)
	assert.True(t, errors.Is(err, ErrUnsupportedMeasure))

	_, err = DeltaMetric(nil, base, "rent")
	assert.ErrorIs(t, err, ErrUnsupportedMeasure)
}

func TestOverview(t *testing.T) {
	o, err := Overview(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, models.Overview{Transactions: 3, AvgPrice: 300000, AvgArea: 1500}, o)

	_, err = Overview(models.NewDataset(nil))
	assert.ErrorIs(t, err, ErrEmptyBaseline)
}
