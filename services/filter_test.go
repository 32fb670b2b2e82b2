package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kc-house-sales/models"
)

func TestFilterScenario(t *testing.T) {
	subset := Filter(sampleDataset(), openSpec())

	require.Len(t, subset, 2)
	assert.Equal(t, int64(1), subset[0].ID)
	assert.Equal(t, int64(2), subset[1].ID)
	assert.Zero(t, subset[1].AvgPriceBedroom)
}

func TestFilterWaterfrontIsExactMatch(t *testing.T) {
	spec := openSpec()
	spec.Waterfront = true

	subset := Filter(sampleDataset(), spec)

	require.Len(t, subset, 1)
	assert.Equal(t, int64(3), subset[0].ID)
}

func TestFilterDateBoundsAreInclusive(t *testing.T) {
	spec := openSpec()
	spec.Start = time.Date(2014, time.May, 10, 18, 30, 0, 0, time.UTC)
	spec.End = day(2014, time.June, 1)

	subset := Filter(sampleDataset(), spec)

	assert.Len(t, subset, 2, "time of day on the bounds is ignored")
}

func TestFilterRanges(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *models.FilterSpec)
		want   []int64
	}{
		{"price upper bound inclusive", func(s *models.FilterSpec) { s.Price.Max = 100000 }, []int64{1}},
		{"living area", func(s *models.FilterSpec) { s.SqftLiving.Min = 1200 }, []int64{2}},
		{"lot area", func(s *models.FilterSpec) { s.SqftLot = models.FloatRange{Min: 6000, Max: 7000} }, []int64{2}},
		{"bedrooms", func(s *models.FilterSpec) { s.Bedrooms = models.IntRange{Min: 1, Max: 3} }, []int64{1}},
		{"year built", func(s *models.FilterSpec) { s.YearBuilt = &models.IntRange{Min: 2000, Max: 2015} }, []int64{2}},
		{"no year predicate", func(s *models.FilterSpec) { s.YearBuilt = nil }, []int64{1, 2}},
		{"inverted range matches nothing", func(s *models.FilterSpec) { s.Price = models.FloatRange{Min: 10, Max: 1} }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := openSpec()
			tt.modify(&spec)

			var ids []int64
			for _, r := range Filter(sampleDataset(), spec) {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFilterEmptyResultIsNotNil(t *testing.T) {
	spec := openSpec()
	spec.Start = day(2020, time.January, 1)
	spec.End = day(2020, time.December, 31)

	subset := Filter(sampleDataset(), spec)

	assert.NotNil(t, subset)
	assert.Empty(t, subset)
}

func TestFilterSortsByDateAndEveryRowMatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	records := make([]models.Record, 0, 200)
	for i := 0; i < 200; i++ {
		records = append(records, models.Record{
			ID:         int64(i),
			Date:       day(2014, time.May, 2).AddDate(0, 0, rng.Intn(390)),
			Price:      float64(75000 + rng.Intn(2000000)),
			SqftLiving: float64(290 + rng.Intn(6000)),
			SqftLot:    float64(520 + rng.Intn(50000)),
			Bedrooms:   rng.Intn(8),
			Waterfront: rng.Intn(10) == 0,
			YrBuilt:    1900 + rng.Intn(116),
		})
	}
	ds := BuildDataset(records)
	spec := models.DefaultFilter()

	subset := Filter(ds, spec)

	require.NotEmpty(t, subset)
	for i, r := range subset {
		assert.True(t, Matches(r, spec), "row %d (id %d) does not satisfy the spec", i, r.ID)
		if i > 0 {
			assert.False(t, r.Date.Before(subset[i-1].Date), "row %d out of date order", i)
		}
	}
}

func TestFilterDoesNotMutateDataset(t *testing.T) {
	ds := sampleDataset()
	before := ds.Records()

	subset := Filter(ds, openSpec())
	subset[0].Price = 42

	assert.Equal(t, before, ds.Records())
}

func TestFullRangeCoversDataset(t *testing.T) {
	ds := sampleDataset()

	spec := FullRange(ds, false)

	assert.Equal(t, day(2014, time.May, 10), spec.Start)
	assert.Equal(t, day(2014, time.July, 15), spec.End)
	assert.Equal(t, models.FloatRange{Min: 100000, Max: 500000}, spec.Price)
	assert.Equal(t, models.IntRange{Min: 0, Max: 4}, spec.Bedrooms)
	assert.Equal(t, &models.IntRange{Min: 1950, Max: 2005}, spec.YearBuilt)
	assert.Len(t, Filter(ds, spec), 2)
}
