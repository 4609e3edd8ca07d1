package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HealthRecord represents a stored health record for data transfer between layers.
type HealthRecord struct {
	ID              uuid.UUID         `json:"id"`
	Title           string            `json:"title"`
	RecordDate      time.Time         `json:"record_date"`
	Doctor          string            `json:"doctor,omitempty"`
	Facility        string            `json:"facility,omitempty"`
	CategoryName    string            `json:"category_name"`
	DiagnosisCodes  []string          `json:"diagnosis_codes,omitempty"`
	Medications     []string          `json:"medications,omitempty"`
	FollowUpDate    string            `json:"follow_up_date,omitempty"`
	Recommendations []string          `json:"recommendations,omitempty"`
	Metrics         map[string]string `json:"additional_metrics,omitempty"`
	Status          string            `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// UnmarshalJSON accepts record_date as either RFC3339 (what our own exports
// write) or a bare YYYY-MM-DD (what extraction emits and hand-edited imports
// tend to carry). Empty stays zero.
func (r *HealthRecord) UnmarshalJSON(data []byte) error {
	type alias HealthRecord
	aux := struct {
		RecordDate string `json:"record_date"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.RecordDate == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, aux.RecordDate); err == nil {
			r.RecordDate = t
			return nil
		}
	}
	return fmt.Errorf("record_date %q: want RFC3339 or YYYY-MM-DD", aux.RecordDate)
}

// Document represents the stored source document a record was extracted from.
type Document struct {
	ID          uuid.UUID `json:"id"`
	RecordID    uuid.UUID `json:"record_id"`
	Name        string    `json:"name"`
	MediaType   string    `json:"media_type"`
	FileSize    int       `json:"file_size"`
	ContentHash []byte    `json:"content_hash"`
	RawText     string    `json:"raw_text,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
