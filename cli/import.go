package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kc-house-sales/config"
	"kc-house-sales/storage"
)

var (
	importFile string
	importTo   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the CSV dataset into a database table",
	Long: `Reads the house sales CSV and replaces the contents of the configured
table in PostgreSQL or SQLite, creating the table when it does not exist.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file to import (default from CSV_PATH)")
	importCmd.Flags().StringVar(&importTo, "to", config.SourceSQLite, "target database: postgres or sqlite")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	path := importFile
	if path == "" {
		path = cfg.CSVPath
	}
	loader, err := storage.NewCSVLoader(path)
	if err != nil {
		return err
	}
	defer loader.Close()

	records, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	logger.Info("Read %d records from %s", len(records), path)

	store, err := storage.OpenStore(ctx, cfg, importTo, logger)
	if err != nil {
		return err
	}
	if err := saveRecords(ctx, store, records); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s (%s)\n", len(records), cfg.Table, importTo)
	return nil
}
