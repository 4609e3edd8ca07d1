package ocr

import (
	"regexp"
	"strings"
)

var (
	reDateish  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	reVitalish = regexp.MustCompile(`\b\d{2,3}/\d{2,3}\b|\b\d{2,3}\s*bpm\b|\b\d{2,3}(\.\d)?\s*(lbs|kg|cm)\b`)
	reCodeish  = regexp.MustCompile(`\b[a-z]\d{2}(\.\d{1,2})?\b`)
	reMedTerm  = regexp.MustCompile(`\b(patient|diagnosis|prescri|doctor|clinic|hospital|medication)`)
)

// naive heuristic confidence based on decoded text characteristics
func heuristicConfidence(txt string) float32 {
	// very simple: boost if we see common medical-document artifacts
	// (date-ish, vital-ish, code-ish, terminology). Each adds a bit.
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reDateish.MatchString(txtL) {
		score += 0.2
	}
	if reVitalish.MatchString(txtL) {
		score += 0.15
	}
	if reCodeish.MatchString(txtL) {
		score += 0.15
	}
	if reMedTerm.MatchString(txtL) {
		score += 0.15
	}
	if len(txt) > 120 {
		score += 0.1
	} // enough content
	if score > 1.0 {
		score = 1.0
	}
	return score
}
