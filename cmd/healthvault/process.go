package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amara-chukwu/healthvault/internal/ingest"
	"github.com/amara-chukwu/healthvault/internal/repository"
)

var saveResult bool

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Extract structured data from one document",
	Long: `Run the extraction pipeline on a single file and print the result
as JSON. With --save the processed record is also stored in the vault.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&saveResult, "save", false, "Store the processed record in the vault")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	loaded, err := ingest.LoadDocument(args[0])
	if err != nil {
		return err
	}

	res, err := newProcessor().Process(ctx, loaded.Doc)
	if err != nil {
		return fmt.Errorf("process %q: %w", args[0], err)
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))

	if !saveResult {
		return nil
	}

	repo, db, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	rec, err := repo.SaveExtraction(ctx, res, repository.DocumentMeta{
		Name:        loaded.Doc.Name,
		MediaType:   loaded.Doc.MediaType,
		FileSize:    loaded.FileSize,
		ContentHash: loaded.ContentHash,
	})
	if err != nil {
		return err
	}
	cmd.Printf("Saved record %s\n", rec.ID)
	return nil
}
