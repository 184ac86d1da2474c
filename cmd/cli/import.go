package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/importer"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resolvers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/resources"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/types"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/usecase"
)

var (
	importDryRun bool
	importOutput string
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a price file",
	Long: `Import a CSV or XLSX price file. Every row is validated against the
reference data and its price definition; valid rows are upserted and invalid
rows are reported with a reason code.

With --dry-run, reference data is read from the database but prices are
written to memory only.`,
	Example: `  pricing import precios.csv
  pricing import tarifas.xlsx --dry-run --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing prices")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "table", "Output format: table or json")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := usecase.FormatFromFilename(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	source, closeSource, err := usecase.OpenRowSource(f, format)
	defer closeSource()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	pool := database.Pool()
	var (
		prices database.PriceRepository = database.NewPostgresPriceRepository(pool)
		runs   database.ImportRunStore  = database.NewPostgresImportRunStore(pool)
	)
	if importDryRun {
		memory := database.NewMemoryStore()
		prices, runs = memory, memory
		logger.Info().Msg("Dry run: prices are not persisted")
	}

	svc := importer.NewService(
		resolvers.NewSet(database.NewPostgresReferenceStore(pool), cfg.Import.NoSeasonLabel),
		resources.NewPricesResource(prices, logger),
		logger,
	)
	info := usecase.RunInfo{Filename: filepath.Base(path), Format: format}
	report := usecase.NewImportPrices(source, svc, runs, info, logger).Perform(cmd.Context())

	if err := printReport(cmd.OutOrStdout(), report, importOutput); err != nil {
		return err
	}
	if report.Status == types.StatusError {
		return fmt.Errorf("%s", report.Message)
	}
	return nil
}

func printReport(out io.Writer, report types.BatchReport, format string) error {
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "Run:      %s\n", report.RunID)
	fmt.Fprintf(out, "Status:   %s\n", report.Status)
	fmt.Fprintf(out, "Imported: %d/%d\n", report.Imported, report.Total)
	fmt.Fprintf(out, "Message:  %s\n", report.Message)

	if len(report.Errors) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tREASON\tDETAIL")
	for _, e := range report.Errors {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.Row, e.Reason, e.Detail)
	}
	return w.Flush()
}
