package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/KGG-Code/mybooking-prueba-tecnica/config"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/logging"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Pricing CLI - rental price import and export",
	Long: `A CLI for importing rental price files (CSV or XLSX) into the pricing
database, exporting the current price list in the same layout, and checking
the database connection and schema.`,
	SilenceUsage:      true,
	PersistentPreRunE: persistentPreRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

// needsDatabase lists commands that connect through the pgx pool
var needsDatabase = map[string]bool{
	"import":  true,
	"export":  true,
	"migrate": true,
	"runs":    true,
	"cleanup": true,
}

// persistentPreRun runs before each command and initializes dependencies
func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	logCfg := config.LoggingConfig{Level: "info", Format: "console"}
	if cfg != nil {
		logCfg = cfg.Logging
		// reports go to stdout; keep logs readable next to them
		logCfg.Format = "console"
	}
	logger = logging.NewWithWriter(logCfg, "pricing-cli", os.Stderr)

	if needsDatabase[cmd.Name()] {
		if cfg == nil {
			return fmt.Errorf("config required for %s command but not loaded", cmd.Name())
		}
		if err := initDatabase(cmd.Context()); err != nil {
			return fmt.Errorf("database initialization failed: %w", err)
		}
		logger.Debug().Msg("Database connected")
	}
	return nil
}

func initDatabase(ctx context.Context) error {
	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL not set")
	}

	return database.Connect(ctx, dbURL, cfg.Database)
}

func main() {
	defer database.Close()
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
