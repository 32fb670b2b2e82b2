package models

import "fmt"

// Measure selects the value a metric or series is computed over.
type Measure string

const (
	MeasurePrice        Measure = "price"
	MeasurePriceSqft    Measure = "sqft"
	MeasurePriceBedroom Measure = "bedroom"
	// MeasureTransactions is only meaningful for series, where it counts rows.
	MeasureTransactions Measure = "transactions"
)

// ParseMeasure accepts the measure names and the dashboard's radio labels.
func ParseMeasure(s string) (Measure, error) {
	switch s {
	case "price", "transaction":
		return MeasurePrice, nil
	case "sqft", "avg_price_sqft":
		return MeasurePriceSqft, nil
	case "bedroom", "number of bedrooms", "avg_price_bedroom":
		return MeasurePriceBedroom, nil
	case "transactions", "count":
		return MeasureTransactions, nil
	}
	return "", fmt.Errorf("unknown measure %q", s)
}

// Label is the human readable "average price per ..." suffix.
func (m Measure) Label() string {
	switch m {
	case MeasurePrice:
		return "transaction"
	case MeasurePriceSqft:
		return "sqft"
	case MeasurePriceBedroom:
		return "number of bedrooms"
	case MeasureTransactions:
		return "transactions"
	}
	return string(m)
}

// Granularity is the calendar bucket size of a series.
type Granularity string

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

// ParseGranularity validates a granularity name.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Daily, Weekly, Monthly:
		return g, nil
	}
	return "", fmt.Errorf("unknown granularity %q", s)
}

// Chart returns the chart style a renderer should use for the granularity.
func (g Granularity) Chart() string {
	if g == Monthly {
		return "bar"
	}
	return "line"
}

// Query is one full user interaction: filters plus the two radio selections.
type Query struct {
	Filter      FilterSpec  `json:"filter"`
	Measure     Measure     `json:"measure"`
	Granularity Granularity `json:"granularity"`
}

// Key identifies the query for caching.
func (q Query) Key() string {
	return q.Filter.Key() + "|" + string(q.Measure) + "|" + string(q.Granularity)
}
