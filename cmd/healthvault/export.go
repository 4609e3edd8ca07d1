package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amara-chukwu/healthvault/internal/export"
)

var (
	exportOut  string
	exportFrom string
	exportTo   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to an XLSX workbook or JSON file",
	Long: `Export stored records to the file named by --out. The extension
picks the format: .xlsx produces a workbook, .json produces the interchange
format that "import" reads back.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file.json]",
	Short: "Import records from a JSON export",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (.xlsx or .json)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Only records on or after this date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "Only records on or before this date (YYYY-MM-DD)")
	_ = exportCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	from, err := parseDateFlag("from", exportFrom)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", exportTo)
	if err != nil {
		return err
	}

	repo, db, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	svc := export.NewService(repo, logger)

	var data []byte
	switch strings.ToLower(filepath.Ext(exportOut)) {
	case ".xlsx":
		data, err = svc.ExportRecordsXLSX(ctx, from, to)
	case ".json":
		data, err = svc.ExportRecordsJSON(ctx, from, to)
	default:
		return fmt.Errorf("--out: unsupported extension %q (want .xlsx or .json)", filepath.Ext(exportOut))
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(exportOut, data, 0o600); err != nil {
		return fmt.Errorf("write %q: %w", exportOut, err)
	}
	cmd.Printf("Wrote %s (%d bytes)\n", exportOut, len(data))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %q: %w", args[0], err)
	}

	repo, db, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	n, err := export.NewService(repo, logger).Import(ctx, data)
	if err != nil {
		return err
	}
	cmd.Printf("Imported %d record(s)\n", n)
	return nil
}
