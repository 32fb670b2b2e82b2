package services

import (
	"sort"
	"time"

	"kc-house-sales/models"
)

// Filter returns the records of ds that satisfy every predicate of spec,
// sorted by date ascending. The dataset is never modified.
func Filter(ds *models.Dataset, spec models.FilterSpec) []models.Record {
	start := dateOnly(spec.Start)
	end := dateOnly(spec.End)

	subset := make([]models.Record, 0)
	ds.Each(func(r *models.Record) {
		if matches(r, spec, start, end) {
			subset = append(subset, *r)
		}
	})

	SortByDate(subset)
	return subset
}

// Matches reports whether a single record passes spec.
func Matches(r models.Record, spec models.FilterSpec) bool {
	return matches(&r, spec, dateOnly(spec.Start), dateOnly(spec.End))
}

func matches(r *models.Record, spec models.FilterSpec, start, end time.Time) bool {
	d := dateOnly(r.Date)
	if d.Before(start) || d.After(end) {
		return false
	}
	if !spec.Price.Contains(r.Price) ||
		!spec.SqftLiving.Contains(r.SqftLiving) ||
		!spec.SqftLot.Contains(r.SqftLot) ||
		!spec.Bedrooms.Contains(r.Bedrooms) {
		return false
	}
	if r.Waterfront != spec.Waterfront {
		return false
	}
	if spec.YearBuilt != nil && !spec.YearBuilt.Contains(r.YrBuilt) {
		return false
	}
	return true
}

// SortByDate stable-sorts records in place by date ascending.
func SortByDate(records []models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// FullRange returns a spec spanning every record of ds for the given waterfront flag.
// An empty dataset yields the zero spec.
func FullRange(ds *models.Dataset, waterfront bool) models.FilterSpec {
	if ds.Len() == 0 {
		return models.FilterSpec{Waterfront: waterfront}
	}

	first := ds.At(0)
	spec := models.FilterSpec{
		Start:      dateOnly(first.Date),
		End:        dateOnly(first.Date),
		Price:      models.FloatRange{Min: first.Price, Max: first.Price},
		SqftLiving: models.FloatRange{Min: first.SqftLiving, Max: first.SqftLiving},
		SqftLot:    models.FloatRange{Min: first.SqftLot, Max: first.SqftLot},
		Bedrooms:   models.IntRange{Min: first.Bedrooms, Max: first.Bedrooms},
		Waterfront: waterfront,
		YearBuilt:  &models.IntRange{Min: first.YrBuilt, Max: first.YrBuilt},
	}

	ds.Each(func(r *models.Record) {
		d := dateOnly(r.Date)
		if d.Before(spec.Start) {
			spec.Start = d
		}
		if d.After(spec.End) {
			spec.End = d
		}
		widen(&spec.Price, r.Price)
		widen(&spec.SqftLiving, r.SqftLiving)
		widen(&spec.SqftLot, r.SqftLot)
		spec.Bedrooms.Min = min(spec.Bedrooms.Min, r.Bedrooms)
		spec.Bedrooms.Max = max(spec.Bedrooms.Max, r.Bedrooms)
		spec.YearBuilt.Min = min(spec.YearBuilt.Min, r.YrBuilt)
		spec.YearBuilt.Max = max(spec.YearBuilt.Max, r.YrBuilt)
	})
	return spec
}

func widen(r *models.FloatRange, v float64) {
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
}

// dateOnly returns the calendar date of t (read in t's location) at UTC midnight.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
