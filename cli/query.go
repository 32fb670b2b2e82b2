package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kc-house-sales/models"
	"kc-house-sales/services"
	"kc-house-sales/storage"
)

var (
	queryStart    string
	queryEnd      string
	queryPriceMin float64
	queryPriceMax float64
	querySqftMin  float64
	querySqftMax  float64
	queryLotMin   float64
	queryLotMax   float64
	queryBedMin   int
	queryBedMax   int
	queryYearMin  int
	queryYearMax  int
	queryNoYear   bool
	queryAll      bool
	queryWater    bool
	queryMeasure  string
	queryInterval string
	queryJSON     bool
	queryRows     int
	queryExport   string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Filter sales and report metrics and series",
	Long: `Applies the filters to the dataset and prints the average price (per
transaction, sqft or bedroom), the number of transactions, average house and
lot areas with their change against the whole dataset, the price and
transaction series at the chosen interval, and the matching rows.`,
	Args: cobra.NoArgs,
	RunE: runQuery,
}

func init() {
	def := models.DefaultFilter()
	f := queryCmd.Flags()
	f.StringVar(&queryStart, "start", def.Start.Format(models.DateLayout), "first sale date (YYYY-MM-DD)")
	f.StringVar(&queryEnd, "end", def.End.Format(models.DateLayout), "last sale date (YYYY-MM-DD)")
	f.Float64Var(&queryPriceMin, "price-min", def.Price.Min, "minimum price")
	f.Float64Var(&queryPriceMax, "price-max", def.Price.Max, "maximum price")
	f.Float64Var(&querySqftMin, "sqft-min", def.SqftLiving.Min, "minimum house area [sqft]")
	f.Float64Var(&querySqftMax, "sqft-max", def.SqftLiving.Max, "maximum house area [sqft]")
	f.Float64Var(&queryLotMin, "lot-min", def.SqftLot.Min, "minimum lot area [sqft]")
	f.Float64Var(&queryLotMax, "lot-max", def.SqftLot.Max, "maximum lot area [sqft]")
	f.IntVar(&queryBedMin, "bedrooms-min", def.Bedrooms.Min, "minimum number of bedrooms")
	f.IntVar(&queryBedMax, "bedrooms-max", def.Bedrooms.Max, "maximum number of bedrooms")
	f.IntVar(&queryYearMin, "year-min", def.YearBuilt.Min, "earliest year built")
	f.IntVar(&queryYearMax, "year-max", def.YearBuilt.Max, "latest year built")
	f.BoolVar(&queryNoYear, "no-year-filter", false, "do not filter on year built")
	f.BoolVar(&queryAll, "all", false, "ignore the range filters and span the whole dataset")
	f.BoolVar(&queryWater, "waterfront", false, "only waterfront properties (otherwise none)")
	f.StringVarP(&queryMeasure, "measure", "m", string(models.MeasurePrice), "average price per: price, sqft or bedroom")
	f.StringVarP(&queryInterval, "interval", "i", string(models.Daily), "series interval: daily, weekly or monthly")
	f.BoolVar(&queryJSON, "json", false, "output the view as JSON")
	f.IntVarP(&queryRows, "rows", "n", 20, "rows of raw data to print (0 for all)")
	f.StringVar(&queryExport, "export", "", "write the matching rows to this CSV file")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, _ []string) error {
	q, err := buildQuery()
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	if queryAll {
		q.Filter = services.FullRange(ds, queryWater)
	}

	dash, err := services.NewDashboard(ds, cfg.CacheSize, logger)
	if err != nil {
		return err
	}

	view, err := dash.Run(q)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	exportPath := queryExport
	if exportPath == "" {
		exportPath = cfg.ExportPath
	}
	if exportPath != "" {
		if err := exportSubset(cmd.Context(), exportPath, view.Subset); err != nil {
			return err
		}
		logger.Info("Wrote %d rows to %s", len(view.Subset), exportPath)
	}

	if queryJSON {
		data, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal view: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	services.NewPrinter(cmd.OutOrStdout()).View(view, queryRows)
	return nil
}

// buildQuery turns the flags into a validated Query.
func buildQuery() (models.Query, error) {
	start, err := time.Parse(models.DateLayout, queryStart)
	if err != nil {
		return models.Query{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse(models.DateLayout, queryEnd)
	if err != nil {
		return models.Query{}, fmt.Errorf("invalid --end: %w", err)
	}
	measure, err := models.ParseMeasure(queryMeasure)
	if err != nil {
		return models.Query{}, err
	}
	if measure == models.MeasureTransactions {
		return models.Query{}, fmt.Errorf("--measure must be price, sqft or bedroom")
	}
	granularity, err := models.ParseGranularity(queryInterval)
	if err != nil {
		return models.Query{}, err
	}

	spec := models.FilterSpec{
		Start:      start,
		End:        end,
		Price:      models.FloatRange{Min: queryPriceMin, Max: queryPriceMax},
		SqftLiving: models.FloatRange{Min: querySqftMin, Max: querySqftMax},
		SqftLot:    models.FloatRange{Min: queryLotMin, Max: queryLotMax},
		Bedrooms:   models.IntRange{Min: queryBedMin, Max: queryBedMax},
		Waterfront: queryWater,
	}
	if !queryNoYear {
		spec.YearBuilt = &models.IntRange{Min: queryYearMin, Max: queryYearMax}
	}
	if err := spec.Validate(); err != nil {
		return models.Query{}, fmt.Errorf("invalid filters: %w", err)
	}

	return models.Query{Filter: spec, Measure: measure, Granularity: granularity}, nil
}

func exportSubset(ctx context.Context, path string, subset []models.Record) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	return saveRecords(ctx, w, subset)
}

// saveRecords writes records to w and closes it.
func saveRecords(ctx context.Context, w storage.RecordWriter, records []models.Record) error {
	if err := w.Write(ctx, records); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
