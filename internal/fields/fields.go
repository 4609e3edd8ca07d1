package fields

import (
	"regexp"
	"strings"
	"time"

	"github.com/amara-chukwu/healthvault/internal/entity"
)

// DefaultTitle is used when a document has no usable first line.
const DefaultTitle = "Medical Report"

// Extract runs every field extractor over normalized text and assembles the
// structured record. Extractors are independent: none short-circuits another,
// and a miss in one never affects the rest. today feeds the date fallback so
// callers (and tests) control the clock.
func Extract(text string, today time.Time) *entity.StructuredData {
	return &entity.StructuredData{
		Title:           Title(text),
		Date:            Date(text, today),
		Doctor:          Doctor(text),
		Facility:        Facility(text),
		DiagnosisCodes:  DiagnosisCodes(text),
		Medications:     Medications(text),
		FollowUpDate:    FollowUpDate(text),
		Recommendations: Recommendations(text),
		Metrics:         Metrics(text),
	}
}

// Title returns the first non-empty line of the text, or DefaultTitle when
// the text is empty or its first line is blank.
func Title(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return DefaultTitle
}

var reDoctor = regexp.MustCompile(`(?:Dr\.?\s+|Doctor:\s*|Physician:\s*)([A-Z][A-Za-z ]*?)\s*(?:[,.\n]|$)`)

// Doctor matches a "Dr." / "Doctor:" / "Physician:" prefix followed by a name
// up to the next comma, period, or newline. First match wins; empty string
// when nothing matches.
func Doctor(text string) string {
	if m := reDoctor.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

var facilityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:hospital|clinic|center|facility):\s*([^\n,.]+)`),
	regexp.MustCompile(`\b(?:at|by)\s+((?:[A-Z][A-Za-z]+ ){1,4}(?:Hospital|Clinic|Center|Medical(?: Center)?))`),
}

// Facility matches either an explicit "Hospital:/Clinic:/Center:/Facility:"
// label or an "at/by <Name> Hospital|Clinic|Center|Medical" phrase. First
// match wins; empty string when nothing matches.
func Facility(text string) string {
	for _, re := range facilityPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// reDiagnosisCode matches ICD-10-like tokens: letter + two digits + optional
// decimal suffix, letter + one or two digits, or three digits + optional
// decimal suffix. Resemblance only: codes are not validated against the real
// ICD-10 tables, and plain three-digit numbers (vitals, dosages) can match.
var reDiagnosisCode = regexp.MustCompile(`\b(?:[A-Z]\d{2}\.\d{1,2}|[A-Z]\d{1,2}|\d{3}\.\d{1,2}|\d{3})\b`)

// DiagnosisCodes collects every code-like token in order of appearance.
// Duplicates are retained.
func DiagnosisCodes(text string) []string {
	codes := reDiagnosisCode.FindAllString(text, -1)
	if codes == nil {
		return []string{}
	}
	return codes
}
