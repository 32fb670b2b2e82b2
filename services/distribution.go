package services

import (
	"kc-house-sales/models"
)

// DefaultHistogramBins matches the price distribution tab.
const DefaultHistogramBins = 50

// PriceHistogram splits the subset's price span into equal-width bins.
// The maximum price lands in the last bin. If every price is equal a single
// bin holds all rows.
func PriceHistogram(subset []models.Record, bins int) []models.HistogramBin {
	if len(subset) == 0 || bins < 1 {
		return nil
	}

	lo, hi := subset[0].Price, subset[0].Price
	for _, r := range subset[1:] {
		lo = min(lo, r.Price)
		hi = max(hi, r.Price)
	}
	if lo == hi {
		return []models.HistogramBin{{Low: lo, High: hi, Count: len(subset)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, r := range subset {
		idx := int((r.Price - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// MapPoints projects the subset onto map markers, keeping subset order.
func MapPoints(subset []models.Record) []models.GeoPoint {
	points := make([]models.GeoPoint, len(subset))
	for i, r := range subset {
		points[i] = models.GeoPoint{
			ID:           r.ID,
			Lat:          r.Lat,
			Long:         r.Long,
			Price:        r.Price,
			SqftLiving:   r.SqftLiving,
			SqftLot:      r.SqftLot,
			Condition:    r.Condition,
			View:         r.View,
			YrBuilt:      r.YrBuilt,
			AvgPriceSqft: r.AvgPriceSqft,
		}
	}
	return points
}
