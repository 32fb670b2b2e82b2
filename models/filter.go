package models

import (
	"errors"
	"fmt"
	"time"
)

// FloatRange is an inclusive numeric interval.
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether Min <= v <= Max.
func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IntRange is an inclusive integer interval.
type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether Min <= v <= Max.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// FilterSpec holds the user's predicate parameters for one interaction.
// A nil YearBuilt drops the year-built predicate entirely.
type FilterSpec struct {
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	Price      FloatRange `json:"price"`
	SqftLiving FloatRange `json:"sqft_living"`
	SqftLot    FloatRange `json:"sqft_lot"`
	Bedrooms   IntRange   `json:"bedrooms"`
	Waterfront bool       `json:"waterfront"`
	YearBuilt  *IntRange  `json:"yr_built,omitempty"`
}

// DateLayout is the layout used for date-only values on the command line and in exports.
const DateLayout = "2006-01-02"

// DefaultFilter returns the dashboard's initial widget values.
func DefaultFilter() FilterSpec {
	return FilterSpec{
		Start:      time.Date(2014, time.May, 2, 0, 0, 0, 0, time.UTC),
		End:        time.Date(2015, time.May, 27, 0, 0, 0, 0, time.UTC),
		Price:      FloatRange{Min: 75000, Max: 1000000},
		SqftLiving: FloatRange{Min: 290, Max: 13540},
		SqftLot:    FloatRange{Min: 520, Max: 1700000},
		Bedrooms:   IntRange{Min: 0, Max: 11},
		Waterfront: false,
		YearBuilt:  &IntRange{Min: 1900, Max: 2015},
	}
}

// Validate reports inverted ranges. The filter engine does not call it:
// an inverted range simply matches nothing.
func (f FilterSpec) Validate() error {
	var errs []error
	if f.Start.After(f.End) {
		errs = append(errs, fmt.Errorf("start date %s is after end date %s",
			f.Start.Format(DateLayout), f.End.Format(DateLayout)))
	}
	check := func(name string, min, max float64) {
		if min > max {
			errs = append(errs, fmt.Errorf("%s range inverted: min %v > max %v", name, min, max))
		}
	}
	check("price", f.Price.Min, f.Price.Max)
	check("sqft_living", f.SqftLiving.Min, f.SqftLiving.Max)
	check("sqft_lot", f.SqftLot.Min, f.SqftLot.Max)
	check("bedrooms", float64(f.Bedrooms.Min), float64(f.Bedrooms.Max))
	if f.YearBuilt != nil {
		check("yr_built", float64(f.YearBuilt.Min), float64(f.YearBuilt.Max))
	}
	return errors.Join(errs...)
}

// Key returns a stable string identity for the spec, used as a cache key.
func (f FilterSpec) Key() string {
	yb := "-"
	if f.YearBuilt != nil {
		yb = fmt.Sprintf("%d..%d", f.YearBuilt.Min, f.YearBuilt.Max)
	}
	return fmt.Sprintf("%s..%s|p%g..%g|l%g..%g|t%g..%g|b%d..%d|w%t|y%s",
		f.Start.Format(DateLayout), f.End.Format(DateLayout),
		f.Price.Min, f.Price.Max,
		f.SqftLiving.Min, f.SqftLiving.Max,
		f.SqftLot.Min, f.SqftLot.Max,
		f.Bedrooms.Min, f.Bedrooms.Max,
		f.Waterfront, yb)
}
