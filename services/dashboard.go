package services

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru"

	"kc-house-sales/models"
	"kc-house-sales/utils"
)

// Dashboard is one session over a loaded Dataset. It computes the baseline once
// and runs a full recomputation pass per Query. Finished views are cached.
type Dashboard struct {
	dataset  *models.Dataset
	baseline *Baseline
	logger   *utils.Logger
	cache    *lru.Cache
}

// NewDashboard prepares a session. cacheSize <= 0 disables the view cache.
func NewDashboard(ds *models.Dataset, cacheSize int, logger *utils.Logger) (*Dashboard, error) {
	base, err := NewBaseline(ds)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	d := &Dashboard{dataset: ds, baseline: base, logger: logger}
	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("dashboard: create cache: %w", err)
		}
		d.cache = cache
	}
	return d, nil
}

// Run filters, measures and aggregates the dataset for q. Every call returns
// its own View; the cached copy is never handed out.
func (d *Dashboard) Run(q models.Query) (*models.View, error) {
	key := q.Key()
	if d.cache != nil {
		if v, ok := d.cache.Get(key); ok {
			d.logger.Debug("[dashboard] cache hit %s", key)
			return cloneView(v.(*models.View)), nil
		}
	}

	subset := Filter(d.dataset, q.Filter)
	d.logger.Debug("[dashboard] %d of %d records match %s", len(subset), d.dataset.Len(), q.Filter.Key())

	view := &models.View{
		Query:  q,
		Subset: subset,
		Chart:  q.Granularity.Chart(),
	}

	var err error
	if view.AvgPrice, err = ValueMetric(subset, q.Measure); err != nil {
		return nil, fmt.Errorf("average price: %w", err)
	}
	if view.AvgPriceDelta, err = DeltaMetric(subset, d.baseline, q.Measure); err != nil {
		return nil, fmt.Errorf("average price delta: %w", err)
	}
	if view.Counts, err = CountMetrics(subset, d.baseline); err != nil {
		return nil, fmt.Errorf("count metrics: %w", err)
	}
	if view.PriceSeries, err = Aggregate(subset, q.Granularity, q.Measure); err != nil {
		return nil, fmt.Errorf("price series: %w", err)
	}
	if view.TransactionSeries, err = Aggregate(subset, q.Granularity, models.MeasureTransactions); err != nil {
		return nil, fmt.Errorf("transaction series: %w", err)
	}
	view.Histogram = PriceHistogram(subset, DefaultHistogramBins)
	view.Points = MapPoints(subset)

	if d.cache != nil {
		d.cache.Add(key, view)
		return cloneView(view), nil
	}
	return view, nil
}

func cloneView(v *models.View) *models.View {
	out := *v
	out.Subset = slices.Clone(v.Subset)
	out.PriceSeries = slices.Clone(v.PriceSeries)
	out.TransactionSeries = slices.Clone(v.TransactionSeries)
	out.Histogram = slices.Clone(v.Histogram)
	out.Points = slices.Clone(v.Points)
	if v.Query.Filter.YearBuilt != nil {
		yb := *v.Query.Filter.YearBuilt
		out.Query.Filter.YearBuilt = &yb
	}
	return &out
}
