package models

import "time"

// Delta is a percentage change against the baseline.
// Label is what a metric widget shows: "12.3 %", or a bare "0" for an empty subset.
type Delta struct {
	Percent float64 `json:"percent"`
	Label   string  `json:"label"`
}

// CountReport holds the transaction and area metrics of a filtered subset.
type CountReport struct {
	Transactions      int   `json:"transactions"`
	TransactionsShare Delta `json:"transactions_share"`
	HouseArea         int   `json:"house_area"`
	HouseAreaDelta    Delta `json:"house_area_delta"`
	LotArea           int   `json:"lot_area"`
	LotAreaDelta      Delta `json:"lot_area_delta"`
}

// Bucket is one point of a time series.
type Bucket struct {
	Start time.Time `json:"start"`
	Value float64   `json:"value"`
	Count int       `json:"count"`
}

// HistogramBin counts prices in [Low, High). The last bin also includes High.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// GeoPoint is one marker on the map.
type GeoPoint struct {
	ID           int64   `json:"id"`
	Lat          float64 `json:"lat"`
	Long         float64 `json:"long"`
	Price        float64 `json:"price"`
	SqftLiving   float64 `json:"sqft_living"`
	SqftLot      float64 `json:"sqft_lot"`
	Condition    int     `json:"condition"`
	View         int     `json:"view"`
	YrBuilt      int     `json:"yr_built"`
	AvgPriceSqft float64 `json:"avg_price_sqft"`
}

// Overview summarises the whole dataset.
type Overview struct {
	Transactions int `json:"transactions"`
	AvgPrice     int `json:"avg_price"`
	AvgArea      int `json:"avg_area"`
}

// View is everything one recomputation pass produces for a Query.
type View struct {
	Query             Query          `json:"query"`
	Subset            []Record       `json:"-"`
	AvgPrice          int            `json:"avg_price"`
	AvgPriceDelta     Delta          `json:"avg_price_delta"`
	Counts            CountReport    `json:"counts"`
	PriceSeries       []Bucket       `json:"price_series"`
	TransactionSeries []Bucket       `json:"transaction_series"`
	Histogram         []HistogramBin `json:"histogram"`
	Points            []GeoPoint     `json:"points,omitempty"`
	Chart             string         `json:"chart"`
}
