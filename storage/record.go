package storage

import (
	"fmt"

	"kc-house-sales/models"
)

// recordFromValues maps values in models.Columns order onto a Record.
// Numeric columns are coerced through float; id keeps its absolute value.
func recordFromValues(vals []any) (models.Record, error) {
	if len(vals) != len(models.Columns) {
		return models.Record{}, fmt.Errorf("expected %d columns, got %d", len(models.Columns), len(vals))
	}

	var (
		r   models.Record
		err error
	)
	set := func(col int, fn func(v any) error) {
		if err != nil {
			return
		}
		if e := fn(vals[col]); e != nil {
			err = fmt.Errorf("column %s: %w", models.Columns[col], e)
		}
	}
	float := func(dst *float64) func(v any) error {
		return func(v any) (e error) { *dst, e = toFloat(v); return }
	}
	integer := func(dst *int) func(v any) error {
		return func(v any) (e error) { *dst, e = toInt(v); return }
	}

	set(0, func(v any) (e error) { r.ID, e = toID(v); return })
	set(1, func(v any) (e error) { r.Date, e = toDate(v); return })
	set(2, float(&r.Price))
	set(3, integer(&r.Bedrooms))
	set(4, float(&r.Bathrooms))
	set(5, float(&r.SqftLiving))
	set(6, float(&r.SqftLot))
	set(7, float(&r.Floors))
	set(8, func(v any) (e error) { r.Waterfront, e = toBool(v); return })
	set(9, integer(&r.View))
	set(10, integer(&r.Condition))
	set(11, integer(&r.Grade))
	set(12, float(&r.SqftAbove))
	set(13, float(&r.SqftBasement))
	set(14, integer(&r.YrBuilt))
	set(15, integer(&r.YrRenovated))
	set(16, integer(&r.Zipcode))
	set(17, float(&r.Lat))
	set(18, float(&r.Long))
	set(19, float(&r.SqftLiving15))
	set(20, float(&r.SqftLot15))

	return r, err
}

// recordValues is the inverse of recordFromValues, used for inserts.
func recordValues(r models.Record) []any {
	return []any{
		r.ID, r.Date.Format(models.DateLayout), r.Price, r.Bedrooms, r.Bathrooms,
		r.SqftLiving, r.SqftLot, r.Floors, r.Waterfront, r.View, r.Condition,
		r.Grade, r.SqftAbove, r.SqftBasement, r.YrBuilt, r.YrRenovated,
		r.Zipcode, r.Lat, r.Long, r.SqftLiving15, r.SqftLot15,
	}
}
