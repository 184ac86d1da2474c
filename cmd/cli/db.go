package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/KGG-Code/mybooking-prueba-tecnica/config"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/jobs"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/storage"
)

var (
	runsLimit      int
	cleanupRunDays int
)

// dbCheckCmd verifies connectivity with a plain database/sql connection,
// independent of the pgx pool used by the service.
var dbCheckCmd = &cobra.Command{
	Use:   "db-check",
	Short: "Check the database connection",
	Args:  cobra.NoArgs,
	RunE:  runDBCheck,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the pricing tables if they do not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.Migrate(cmd.Context(), database.Pool()); err != nil {
			return err
		}
		logger.Info().Msg("Schema is up to date")
		return nil
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent import runs",
	Args:  cobra.NoArgs,
	RunE:  runListRuns,
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old import runs and archived uploads once",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

func init() {
	rootCmd.AddCommand(dbCheckCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(cleanupCmd)

	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Number of runs to show")
	cleanupCmd.Flags().IntVar(&cleanupRunDays, "run-days", 0, "Override retention.run_days")
}

func runDBCheck(cmd *cobra.Command, args []string) error {
	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var version string
	if err := db.QueryRowContext(ctx, "SELECT version()").Scan(&version); err != nil {
		return fmt.Errorf("failed to read server version: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Connection successful")
	fmt.Fprintln(cmd.OutOrStdout(), version)
	return nil
}

func runCleanup(cmd *cobra.Command, args []string) error {
	retention := cfg.Retention
	if cmd.Flags().Changed("run-days") {
		retention.RunDays = cleanupRunDays
	}

	var store storage.Storage
	if cfg.Import.ArchiveUploads {
		var err error
		if store, err = storage.New(cfg.Storage.Type, cfg.Storage.BasePath); err != nil {
			return err
		}
	}

	runs := database.NewPostgresImportRunStore(database.Pool())
	res, err := jobs.NewCleanupManager(retention, runs, store, logger).RunOnce(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs and %d archived uploads\n", res.Runs, res.Archives)
	return err
}

func runListRuns(cmd *cobra.Command, args []string) error {
	runs, err := database.NewPostgresImportRunStore(database.Pool()).ListImportRuns(cmd.Context(), runsLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILE\tSTATUS\tIMPORTED\tSTARTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n",
			r.ID, r.Filename, r.Status, r.Imported, r.Total, r.StartedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
