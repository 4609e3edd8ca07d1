package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/amara-chukwu/healthvault/internal/entity"
	"github.com/amara-chukwu/healthvault/internal/repository"
)

// Service is a tiny façade over the repository that produces XLSX or JSON
// bytes for exports and reads the JSON format back in.
type Service struct {
	repo   repository.HealthRecordRepository
	logger *slog.Logger
}

func NewService(repo repository.HealthRecordRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// ExportRecordsXLSX returns an XLSX workbook (as bytes) for the given date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all records.
func (s *Service) ExportRecordsXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	fromDate, toDate := normalizeWindow(from, to)
	recs, err := s.repo.List(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Health Records"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet so the workbook opens on ours
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"Record Date",
		"Title",
		"Category",
		"Doctor",
		"Facility",
		"Diagnosis Codes",
		"Medications",
		"Follow-Up Date",
		"Recommendations",
		"Metrics",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		if !r.RecordDate.IsZero() {
			write(1, r.RecordDate.Format("2006-01-02"))
		} else {
			write(1, "")
		}
		write(2, r.Title)
		write(3, r.CategoryName)
		write(4, r.Doctor)
		write(5, r.Facility)
		write(6, joinList(r.DiagnosisCodes))
		write(7, joinList(r.Medications))
		write(8, r.FollowUpDate)
		write(9, joinList(r.Recommendations))
		write(10, formatMetrics(r.Metrics))
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.ok", "records", len(recs), "bytes", buf.Len(), "duration", time.Since(start))
	return buf.Bytes(), nil
}

// ExportRecordsJSON returns the records as an indented JSON array, the same
// shape Import accepts.
func (s *Service) ExportRecordsJSON(ctx context.Context, from, to *time.Time) ([]byte, error) {
	fromDate, toDate := normalizeWindow(from, to)
	recs, err := s.repo.List(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	if recs == nil {
		recs = []*entity.HealthRecord{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}
	s.logger.Info("export.json.ok", "records", len(recs), "bytes", len(data))
	return data, nil
}

// Import validates a JSON export against the record schema and inserts every
// record. Validation failure rejects the whole file before any insert.
func (s *Service) Import(ctx context.Context, data []byte) (int, error) {
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return 0, fmt.Errorf("parse import file: %w", err)
	}
	if err := compiledRecordSchema.Validate(generic); err != nil {
		return 0, fmt.Errorf("validate import file: %w", err)
	}

	var recs []*entity.HealthRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return 0, fmt.Errorf("decode records: %w", err)
	}

	for i, rec := range recs {
		if err := s.repo.Insert(ctx, rec); err != nil {
			return i, fmt.Errorf("insert record %d (%q): %w", i, rec.Title, err)
		}
	}

	s.logger.Info("export.import.ok", "records", len(recs))
	return len(recs), nil
}

func normalizeWindow(from, to *time.Time) (*time.Time, *time.Time) {
	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
		toDate = &t
	}
	return fromDate, toDate
}

func joinList(items []string) string {
	return strings.Join(items, "; ")
}

func formatMetrics(m map[string]string) string {
	if len(m) == 0 {
		return ""
	}
	// deterministic order keeps exports diffable
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := ""
	for i, k := range keys {
		if i > 0 {
			out += "; "
		}
		out += k + ": " + m[k]
	}
	return out
}
