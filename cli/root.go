// Package cli wires the dashboard engine to the command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"kc-house-sales/config"
	"kc-house-sales/models"
	"kc-house-sales/services"
	"kc-house-sales/storage"
	"kc-house-sales/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger

	sourceFlag  string
	csvFlag     string
	sqliteFlag  string
	tableFlag   string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "kc-house-sales",
	Short: "Explore King County house sales",
	Long: `Filters the King County house sales dataset by date range and property
attributes, then reports average prices, transaction counts and area metrics
against the full dataset, with daily, weekly or monthly series.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&sourceFlag, "source", "", "data source: csv, postgres or sqlite (default from DATA_SOURCE)")
	flags.StringVar(&csvFlag, "csv", "", "path of the CSV dataset (default from CSV_PATH)")
	flags.StringVar(&sqliteFlag, "sqlite", "", "path of the SQLite database (default from SQLITE_PATH)")
	flags.StringVar(&tableFlag, "table", "", "table holding the sales (default from HOUSES_TABLE)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg = config.Load()
	if sourceFlag != "" {
		cfg.DataSource = sourceFlag
	}
	if csvFlag != "" {
		cfg.CSVPath = csvFlag
	}
	if sqliteFlag != "" {
		cfg.SQLitePath = sqliteFlag
	}
	if tableFlag != "" {
		cfg.Table = tableFlag
	}

	logger = utils.NewLoggerTo(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	logger.SetDebug(cfg.Debug || verboseFlag)
	return nil
}

// loadDataset reads the configured source once and builds the session dataset.
func loadDataset(ctx context.Context) (*models.Dataset, error) {
	loader, err := storage.OpenLoader(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer loader.Close()

	records, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	logger.Info("Loaded %d records from %s", len(records), cfg.DataSource)
	return services.NewDatasetBuilder(logger).Build(records), nil
}
