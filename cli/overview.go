package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"kc-house-sales/services"
)

var overviewJSON bool

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show basic metrics of the whole dataset",
	Args:  cobra.NoArgs,
	RunE:  runOverview,
}

func init() {
	overviewCmd.Flags().BoolVar(&overviewJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	o, err := services.Overview(ds)
	if err != nil {
		return fmt.Errorf("overview: %w", err)
	}

	if overviewJSON {
		data, err := json.MarshalIndent(o, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal overview: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	services.NewPrinter(cmd.OutOrStdout()).Overview(o)
	return nil
}
