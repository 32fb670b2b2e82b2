package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"kc-house-sales/models"
)

// ErrUnknownGranularity is returned for a granularity outside daily/weekly/monthly.
var ErrUnknownGranularity = errors.New("unknown granularity")

// BucketStart returns the start of the calendar bucket containing t.
// Weeks start on Monday; months on their first day.
func BucketStart(t time.Time, g models.Granularity) (time.Time, error) {
	d := dateOnly(t)
	switch g {
	case models.Daily:
		return d, nil
	case models.Weekly:
		offset := (int(d.Weekday()) + 6) % 7 // days since Monday
		return d.AddDate(0, 0, -offset), nil
	case models.Monthly:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownGranularity, g)
}

// Aggregate groups subset into calendar buckets and computes one value per bucket:
// the mean of a price-family measure, or the row count for MeasureTransactions.
// Only buckets holding at least one row are returned, ascending by start.
func Aggregate(subset []models.Record, g models.Granularity, m models.Measure) ([]models.Bucket, error) {
	var value func(r *models.Record) float64
	if m != models.MeasureTransactions {
		v, err := measureValue(m)
		if err != nil {
			return nil, err
		}
		value = v
	}
	if _, err := BucketStart(time.Time{}, g); err != nil {
		return nil, err
	}

	sorted := make([]models.Record, len(subset))
	copy(sorted, subset)
	sortCanonical(sorted)

	buckets := make([]models.Bucket, 0)
	var sum float64
	for i := range sorted {
		start, _ := BucketStart(sorted[i].Date, g)
		if len(buckets) == 0 || !buckets[len(buckets)-1].Start.Equal(start) {
			closeBucket(buckets, sum, value)
			buckets = append(buckets, models.Bucket{Start: start})
			sum = 0
		}
		buckets[len(buckets)-1].Count++
		if value != nil {
			sum += value(&sorted[i])
		}
	}
	closeBucket(buckets, sum, value)
	return buckets, nil
}

// closeBucket finalises the last bucket's value.
func closeBucket(buckets []models.Bucket, sum float64, value func(r *models.Record) float64) {
	if len(buckets) == 0 {
		return
	}
	b := &buckets[len(buckets)-1]
	if value == nil {
		b.Value = float64(b.Count)
		return
	}
	b.Value = sum / float64(b.Count)
}

// sortCanonical orders records by date, id and then every field a measure reads,
// so that bucket sums are accumulated in the same order whatever the input order was.
// Records that still tie contribute identical values.
func sortCanonical(records []models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.ID != b.ID {
			return a.ID < b.ID
		}
		for _, k := range [][2]float64{
			{a.Price, b.Price},
			{a.SqftLiving, b.SqftLiving},
			{float64(a.Bedrooms), float64(b.Bedrooms)},
			{a.AvgPriceSqft, b.AvgPriceSqft},
			{a.AvgPriceBedroom, b.AvgPriceBedroom},
		} {
			if k[0] != k[1] {
				return k[0] < k[1]
			}
		}
		return false
	})
}
