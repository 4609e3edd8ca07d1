package entity

// StructuredData is the typed record assembled from the field extractors.
// Every field has a known default policy: title and date fall back to
// placeholders, doctor/facility to empty strings, slices may be empty,
// follow-up is a true optional, and metric keys exist only when their
// pattern matched.
type StructuredData struct {
	Title           string            `json:"title"`
	Date            string            `json:"date"` // YYYY-MM-DD
	Doctor          string            `json:"doctor"`
	Facility        string            `json:"facility"`
	DiagnosisCodes  []string          `json:"diagnosis_codes"`
	Medications     []string          `json:"medications"`
	FollowUpDate    string            `json:"follow_up_date,omitempty"`
	Recommendations []string          `json:"recommendations"`
	Metrics         map[string]string `json:"additional_metrics,omitempty"`
}
