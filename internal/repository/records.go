package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amara-chukwu/healthvault/constants"
	"github.com/amara-chukwu/healthvault/internal/entity"
)

// ErrNotFound is returned when a record id has no row.
var ErrNotFound = errors.New("record not found")

// DocumentMeta describes the source file stored alongside a record.
type DocumentMeta struct {
	Name        string
	MediaType   string
	FileSize    int
	ContentHash []byte
}

// HealthRecordRepository stores extraction results and serves them back to
// the CLI and export layers.
type HealthRecordRepository interface {
	SaveExtraction(ctx context.Context, res entity.ExtractionResult, doc DocumentMeta) (*entity.HealthRecord, error)
	Insert(ctx context.Context, rec *entity.HealthRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.HealthRecord, error)
	List(ctx context.Context, from, to *time.Time) ([]*entity.HealthRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type recordRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewHealthRecordRepository(db *sql.DB, logger *slog.Logger) HealthRecordRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &recordRepository{db: db, logger: logger}
}

// SaveExtraction persists a processed pipeline result and its source document
// in one transaction. Error results are rejected: there is nothing to store.
func (r *recordRepository) SaveExtraction(ctx context.Context, res entity.ExtractionResult, doc DocumentMeta) (*entity.HealthRecord, error) {
	if res.Status != constants.StatusProcessed || res.Structured == nil {
		return nil, fmt.Errorf("save extraction: result not processed (status=%s)", res.Status)
	}
	sd := res.Structured
	now := time.Now().UTC()

	rec := &entity.HealthRecord{
		ID:              uuid.New(),
		Title:           sd.Title,
		RecordDate:      parseRecordDate(sd.Date, now),
		Doctor:          sd.Doctor,
		Facility:        sd.Facility,
		CategoryName:    string(guessCategory(sd.Title)),
		DiagnosisCodes:  sd.DiagnosisCodes,
		Medications:     sd.Medications,
		FollowUpDate:    sd.FollowUpDate,
		Recommendations: sd.Recommendations,
		Metrics:         sd.Metrics,
		Status:          string(res.Status),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRecord(ctx, tx, rec); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, record_id, name, media_type, file_size, content_hash, raw_text, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New().String(), rec.ID.String(), doc.Name, doc.MediaType, doc.FileSize, doc.ContentHash, res.RawText, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	r.logger.Info("repository.save.ok", "record_id", rec.ID, "title", rec.Title, "category", rec.CategoryName)
	return rec, nil
}

// Insert stores an already-built record (used by JSON import).
func (r *recordRepository) Insert(ctx context.Context, rec *entity.HealthRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = string(constants.StatusProcessed)
	}
	return insertRecord(ctx, r.db, rec)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertRecord(ctx context.Context, db execer, rec *entity.HealthRecord) error {
	codes, _ := json.Marshal(orEmptySlice(rec.DiagnosisCodes))
	meds, _ := json.Marshal(orEmptySlice(rec.Medications))
	recs, _ := json.Marshal(orEmptySlice(rec.Recommendations))
	metrics, _ := json.Marshal(orEmptyMap(rec.Metrics))

	_, err := db.ExecContext(ctx,
		`INSERT INTO records (id, title, record_date, doctor, facility, category,
			diagnosis_codes, medications, follow_up_date, recommendations, metrics,
			status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		rec.ID.String(), rec.Title, rec.RecordDate.Format("2006-01-02"), rec.Doctor, rec.Facility,
		rec.CategoryName, string(codes), string(meds), rec.FollowUpDate, string(recs), string(metrics),
		rec.Status, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *recordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.HealthRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, record_date, doctor, facility, category,
			diagnosis_codes, medications, follow_up_date, recommendations, metrics,
			status, created_at, updated_at
		 FROM records WHERE id = $1`, id.String())
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (r *recordRepository) List(ctx context.Context, from, to *time.Time) ([]*entity.HealthRecord, error) {
	q := `SELECT id, title, record_date, doctor, facility, category,
			diagnosis_codes, medications, follow_up_date, recommendations, metrics,
			status, created_at, updated_at
		 FROM records`
	var conds []string
	var args []any
	if from != nil {
		args = append(args, from.Format("2006-01-02"))
		conds = append(conds, fmt.Sprintf("record_date >= $%d", len(args)))
	}
	if to != nil {
		args = append(args, to.Format("2006-01-02"))
		conds = append(conds, fmt.Sprintf("record_date <= $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY record_date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.HealthRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE record_id = $1`, id.String()); err != nil {
		return fmt.Errorf("delete documents: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*entity.HealthRecord, error) {
	var (
		rec        entity.HealthRecord
		idStr      string
		dateStr    string
		codesJSON  string
		medsJSON   string
		recsJSON   string
		metricJSON string
	)
	err := row.Scan(&idStr, &rec.Title, &dateStr, &rec.Doctor, &rec.Facility, &rec.CategoryName,
		&codesJSON, &medsJSON, &rec.FollowUpDate, &recsJSON, &metricJSON,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse record id: %w", err)
	}
	if t, err := time.Parse("2006-01-02", dateStr); err == nil {
		rec.RecordDate = t
	}
	_ = json.Unmarshal([]byte(codesJSON), &rec.DiagnosisCodes)
	_ = json.Unmarshal([]byte(medsJSON), &rec.Medications)
	_ = json.Unmarshal([]byte(recsJSON), &rec.Recommendations)
	_ = json.Unmarshal([]byte(metricJSON), &rec.Metrics)
	return &rec, nil
}

func parseRecordDate(s string, fallback time.Time) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return fallback
}

// guessCategory maps title keywords to a record category; extraction output
// carries no category of its own, so this is a best-effort default the user
// can correct.
func guessCategory(title string) constants.Category {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "lab") || strings.Contains(t, "blood") || strings.Contains(t, "test result"):
		return constants.LabReport
	case strings.Contains(t, "prescription") || strings.Contains(t, "rx"):
		return constants.Prescription
	case strings.Contains(t, "x-ray") || strings.Contains(t, "xray") || strings.Contains(t, "mri") ||
		strings.Contains(t, "scan") || strings.Contains(t, "ultrasound") || strings.Contains(t, "imaging"):
		return constants.Imaging
	case strings.Contains(t, "vaccin") || strings.Contains(t, "immuniz"):
		return constants.Vaccination
	case strings.Contains(t, "discharge"):
		return constants.Discharge
	case strings.Contains(t, "referral"):
		return constants.Referral
	case strings.Contains(t, "consult") || strings.Contains(t, "visit"):
		return constants.Consultation
	default:
		if cat, ok := constants.Canonicalize(title); ok {
			return cat
		}
		return constants.Other
	}
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
