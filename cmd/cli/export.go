package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/usecase"
)

var (
	exportOut                string
	exportRentalLocationID   int64
	exportRateTypeID         int64
	exportSeasonDefinitionID int64
	exportSeasonID           int64
	exportUnit               int
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export prices as CSV",
	Long: `Export the price list in the import layout. Rows are grouped by category,
location, rate type and time unit. The file can be edited and imported back.`,
	Example: `  pricing export --out precios_export.csv
  pricing export --rental-location-id 1 --unit 2`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default stdout)")
	exportCmd.Flags().Int64Var(&exportRentalLocationID, "rental-location-id", 0, "Only this rental location")
	exportCmd.Flags().Int64Var(&exportRateTypeID, "rate-type-id", 0, "Only this rate type")
	exportCmd.Flags().Int64Var(&exportSeasonDefinitionID, "season-definition-id", 0, "Only price definitions with this season definition")
	exportCmd.Flags().Int64Var(&exportSeasonID, "season-id", 0, "Only prices of this season")
	exportCmd.Flags().IntVar(&exportUnit, "unit", 0, "Only this time unit (1 months, 2 days, 3 hours, 4 minutes)")
}

func exportFilter(cmd *cobra.Command) (database.ExportFilter, error) {
	var f database.ExportFilter
	flags := cmd.Flags()
	if flags.Changed("rental-location-id") {
		f.RentalLocationID = &exportRentalLocationID
	}
	if flags.Changed("rate-type-id") {
		f.RateTypeID = &exportRateTypeID
	}
	if flags.Changed("season-definition-id") {
		f.SeasonDefinitionID = &exportSeasonDefinitionID
	}
	if flags.Changed("season-id") {
		f.SeasonID = &exportSeasonID
	}
	if flags.Changed("unit") {
		u := types.TimeUnit(exportUnit)
		if !u.Valid() {
			return f, fmt.Errorf("invalid --unit %d: must be 1, 2, 3 or 4", exportUnit)
		}
		f.TimeMeasurement = &u
	}
	return f, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, err := exportFilter(cmd)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	refs := database.NewPostgresReferenceStore(database.Pool())
	rows, err := usecase.NewExportPrices(refs, cfg.Import.NoSeasonLabel, logger).Perform(cmd.Context(), out, filter)
	if err != nil {
		return err
	}

	if exportOut != "" {
		logger.Info().Int("rows", rows).Str("file", exportOut).Msg("Export written")
	}
	return nil
}
