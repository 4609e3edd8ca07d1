package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/amara-chukwu/healthvault/internal/common"
	"github.com/amara-chukwu/healthvault/internal/extract"
	"github.com/amara-chukwu/healthvault/internal/ocr"
	"github.com/amara-chukwu/healthvault/internal/pipeline"
	"github.com/amara-chukwu/healthvault/internal/repository"
)

var (
	cfgFile string
	dbURL   string
	verbose bool

	cfg    *common.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "healthvault",
	Short: "Personal health record vault",
	Long: `healthvault ingests medical documents (scans, PDFs, plain text),
extracts structured fields from them, and keeps the results in a local vault
you can list, export, and re-import.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		var err error
		if cfgFile != "" {
			cfg, err = common.LoadConfigFile(cfgFile)
			if err != nil {
				return err
			}
		} else {
			cfg = common.LoadConfig()
		}
		if dbURL != "" {
			cfg.Database.DSN = dbURL
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database DSN (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
}

// newProcessor wires the OCR engine and dispatcher behind a pipeline processor.
func newProcessor() *pipeline.Processor {
	engine := ocr.NewEngine(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		Timeout:     cfg.OCR.Timeout,
	}, logger)
	dispatcher := extract.NewDispatcher(engine, logger)
	return pipeline.NewProcessor(dispatcher, logger)
}

// openRepo opens the vault database and returns the repository plus the
// handle the caller must close.
func openRepo(ctx context.Context) (repository.HealthRecordRepository, *sql.DB, error) {
	db, err := repository.Open(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewHealthRecordRepository(db, logger), db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
