package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	listFrom string
	listTo   string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Inspect stored health records",
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

var recordsGetCmd = &cobra.Command{
	Use:   "get [record-id]",
	Short: "Print one record as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsGet,
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete [record-id]",
	Short: "Delete a record and its source document",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsDelete,
}

func init() {
	recordsListCmd.Flags().StringVar(&listFrom, "from", "", "Only records on or after this date (YYYY-MM-DD)")
	recordsListCmd.Flags().StringVar(&listTo, "to", "", "Only records on or before this date (YYYY-MM-DD)")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsGetCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	rootCmd.AddCommand(recordsCmd)
}

func parseDateFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("--%s: expected YYYY-MM-DD, got %q", name, value)
	}
	return &t, nil
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	from, err := parseDateFlag("from", listFrom)
	if err != nil {
		return err
	}
	to, err := parseDateFlag("to", listTo)
	if err != nil {
		return err
	}

	repo, db, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	recs, err := repo.List(ctx, from, to)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		cmd.Println("No records found.")
		return nil
	}

	for _, r := range recs {
		line := fmt.Sprintf("%s  %s  %-14s %s",
			r.ID, r.RecordDate.Format("2006-01-02"), r.CategoryName, r.Title)
		if r.Doctor != "" {
			line += "  (Dr. " + r.Doctor + ")"
		}
		cmd.Println(line)
	}
	cmd.Printf("\n%d record(s)\n", len(recs))
	return nil
}

func runRecordsGet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := uuid.Parse(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", args[0], err)
	}

	repo, db, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	rec, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

func runRecordsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := uuid.Parse(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("invalid record id %q: %w", args[0], err)
	}

	repo, db, err := openRepo(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := repo.Delete(ctx, id); err != nil {
		return err
	}
	cmd.Printf("Deleted record %s\n", id)
	return nil
}
