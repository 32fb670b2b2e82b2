package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kc-house-sales/models"
)

func TestBucketStart(t *testing.T) {
	tests := []struct {
		in   time.Time
		g    models.Granularity
		want time.Time
	}{
		{time.Date(2014, time.May, 10, 15, 4, 0, 0, time.UTC), models.Daily, day(2014, time.May, 10)},
		{day(2014, time.May, 10), models.Weekly, day(2014, time.May, 5)},
		{day(2014, time.May, 12), models.Weekly, day(2014, time.May, 12)},
		{day(2014, time.May, 18), models.Weekly, day(2014, time.May, 12)},
		{day(2014, time.June, 1), models.Weekly, day(2014, time.May, 26)},
		{day(2014, time.July, 15), models.Monthly, day(2014, time.July, 1)},
	}

	for _, tt := range tests {
		got, err := BucketStart(tt.in, tt.g)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s bucket of %s", tt.g, tt.in.Format(time.RFC3339))
	}
}

func TestBucketStartUnknownGranularity(t *testing.T) {
	_, err := BucketStart(day(2014, 5, 2), "hourly")
	assert.ErrorIs(t, err, ErrUnknownGranularity)
}

func monthRecords() []models.Record {
	return BuildDataset([]models.Record{
		{ID: 4, Date: day(2014, time.June, 20), Price: 400000, SqftLiving: 2000, Bedrooms: 4},
		{ID: 1, Date: day(2014, time.May, 2), Price: 100000, SqftLiving: 1000, Bedrooms: 2},
		{ID: 2, Date: day(2014, time.May, 30), Price: 300000, SqftLiving: 1000, Bedrooms: 3},
		{ID: 3, Date: day(2014, time.June, 2), Price: 200000, SqftLiving: 1000, Bedrooms: 2},
		{ID: 5, Date: day(2014, time.August, 1), Price: 500000, SqftLiving: 2500, Bedrooms: 5},
	}).Records()
}

func TestAggregateMonthlyMean(t *testing.T) {
	buckets, err := Aggregate(monthRecords(), models.Monthly, models.MeasurePrice)
	require.NoError(t, err)

	want := []models.Bucket{
		{Start: day(2014, time.May, 1), Value: 200000, Count: 2},
		{Start: day(2014, time.June, 1), Value: 300000, Count: 2},
		{Start: day(2014, time.August, 1), Value: 500000, Count: 1},
	}
	assert.Equal(t, want, buckets, "July has no sales and is omitted")
}

func TestAggregateWeeklyCount(t *testing.T) {
	buckets, err := Aggregate(monthRecords(), models.Weekly, models.MeasureTransactions)
	require.NoError(t, err)

	var starts []time.Time
	for _, b := range buckets {
		starts = append(starts, b.Start)
		assert.Equal(t, float64(b.Count), b.Value)
		assert.Equal(t, time.Monday, b.Start.Weekday())
	}
	assert.Equal(t, []time.Time{
		day(2014, time.April, 28),
		day(2014, time.May, 26),
		day(2014, time.June, 2),
		day(2014, time.June, 16),
		day(2014, time.July, 28),
	}, starts)
}

func TestAggregateDerivedMeasure(t *testing.T) {
	buckets, err := Aggregate(monthRecords(), models.Monthly, models.MeasurePriceBedroom)
	require.NoError(t, err)

	require.Len(t, buckets, 3)
	assert.Equal(t, 75000.0, buckets[0].Value) // (50000 + 100000) / 2
}

func TestAggregateEmptySubset(t *testing.T) {
	buckets, err := Aggregate(nil, models.Daily, models.MeasurePrice)
	require.NoError(t, err)
	assert.Empty(t, buckets)
}

func TestAggregateRejectsBadInput(t *testing.T) {
	_, err := Aggregate(monthRecords(), "yearly", models.MeasurePrice)
	assert.ErrorIs(t, err, ErrUnknownGranularity)

	_, err = Aggregate(monthRecords(), models.Daily, "rent")
	assert.ErrorIs(t, err, ErrUnsupportedMeasure)
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	records := monthRecords()
	want, err := Aggregate(records, models.Daily, models.MeasurePriceSqft)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]models.Record(nil), records...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := Aggregate(shuffled, models.Daily, models.MeasurePriceSqft)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestAggregateIsOrderIndependentWithRepeatedKeys(t *testing.T) {
	// same id, date and price on every row; only the area differs
	raw := make([]models.Record, 40)
	for i := range raw {
		raw[i] = models.Record{
			ID:         7,
			Date:       day(2014, time.May, 2),
			Price:      325000,
			SqftLiving: float64(1000 + 37*i),
			Bedrooms:   1 + i%5,
		}
	}
	records := BuildDataset(raw).Records()

	for _, m := range []models.Measure{models.MeasurePriceSqft, models.MeasurePriceBedroom} {
		want, err := Aggregate(records, models.Daily, m)
		require.NoError(t, err)
		require.Len(t, want, 1)

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 200; i++ {
			shuffled := append([]models.Record(nil), records...)
			rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

			got, err := Aggregate(shuffled, models.Daily, m)
			require.NoError(t, err)
			require.Equal(t, want, got, "%s, shuffle %d", m, i)
		}
	}
}

func TestAggregateDoesNotReorderInput(t *testing.T) {
	records := monthRecords()
	_, err := Aggregate(records, models.Monthly, models.MeasurePrice)
	require.NoError(t, err)
	assert.Equal(t, int64(4), records[0].ID)
}
