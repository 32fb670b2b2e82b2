package models

import "time"

// Record is one property sale transaction.
// AvgPriceSqft and AvgPriceBedroom are derived once when the Dataset is built.
type Record struct {
	ID           int64     `json:"id"`
	Date         time.Time `json:"date"`
	Price        float64   `json:"price"`
	Bedrooms     int       `json:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms"`
	SqftLiving   float64   `json:"sqft_living"`
	SqftLot      float64   `json:"sqft_lot"`
	Floors       float64   `json:"floors"`
	Waterfront   bool      `json:"waterfront"`
	View         int       `json:"view"`
	Condition    int       `json:"condition"`
	Grade        int       `json:"grade"`
	SqftAbove    float64   `json:"sqft_above"`
	SqftBasement float64   `json:"sqft_basement"`
	YrBuilt      int       `json:"yr_built"`
	YrRenovated  int       `json:"yr_renovated"`
	Zipcode      int       `json:"zipcode"`
	Lat          float64   `json:"lat"`
	Long         float64   `json:"long"`
	SqftLiving15 float64   `json:"sqft_living15"`
	SqftLot15    float64   `json:"sqft_lot15"`

	AvgPriceSqft    float64 `json:"avg_price_sqft"`
	AvgPriceBedroom float64 `json:"avg_price_bedroom"`
}

// Columns is the fixed column order shared by the CSV file and the SQL table.
var Columns = []string{
	"id", "date", "price", "bedrooms", "bathrooms", "sqft_living", "sqft_lot", "floors",
	"waterfront", "view", "condition", "grade", "sqft_above", "sqft_basement", "yr_built",
	"yr_renovated", "zipcode", "lat", "long", "sqft_living15", "sqft_lot15",
}

// Dataset is the full, read-only collection of records for a session.
// Build it with services.BuildDataset; nothing mutates it afterwards.
type Dataset struct {
	records []Record
}

// NewDataset wraps records without copying. Callers hand over ownership.
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: records}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the i-th record by value.
func (d *Dataset) At(i int) Record {
	return d.records[i]
}

// Records returns a copy of every record in load order.
func (d *Dataset) Records() []Record {
	out := make([]Record, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying the slice.
func (d *Dataset) Each(fn func(r *Record)) {
	for i := range d.records {
		r := d.records[i]
		fn(&r)
	}
}
