package services

import (
	"time"

	"kc-house-sales/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleRecords is the three-sale scenario: two dry-land houses, one on the waterfront.
func sampleRecords() []models.Record {
	return []models.Record{
		{ID: 1, Date: day(2014, time.May, 10), Price: 100000, SqftLiving: 1000, SqftLot: 5000, Bedrooms: 2, YrBuilt: 1990, Lat: 47.5, Long: -122.2},
		{ID: 2, Date: day(2014, time.June, 1), Price: 300000, SqftLiving: 1500, SqftLot: 7000, Bedrooms: 0, YrBuilt: 2005, Lat: 47.6, Long: -122.3},
		{ID: 3, Date: day(2014, time.July, 15), Price: 500000, SqftLiving: 2000, SqftLot: 12000, Bedrooms: 4, YrBuilt: 1950, Waterfront: true, Lat: 47.7, Long: -122.4},
	}
}

func sampleDataset() *models.Dataset {
	return BuildDataset(sampleRecords())
}

// openSpec matches every dry-land record of the sample.
func openSpec() models.FilterSpec {
	return models.FilterSpec{
		Start:      day(2014, time.January, 1),
		End:        day(2015, time.December, 31),
		Price:      models.FloatRange{Min: 0, Max: 1000000},
		SqftLiving: models.FloatRange{Min: 0, Max: 5000},
		SqftLot:    models.FloatRange{Min: 0, Max: 1e9},
		Bedrooms:   models.IntRange{Min: 0, Max: 10},
		Waterfront: false,
		YearBuilt:  &models.IntRange{Min: 1900, Max: 2015},
	}
}
