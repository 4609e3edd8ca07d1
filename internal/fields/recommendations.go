package fields

import (
	"regexp"
	"strings"
)

// Three independent sentence-level patterns. Matches from all three are
// concatenated in pattern order, then match order; overlaps are retained.
// "return" sits in the first keyword set so follow-up instructions
// ("Return in 2 weeks...") are captured alongside explicit advice.
var recommendationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:recommend(?:ed|s|ation)?|advised|suggested|return)\b[^.]*`),
	regexp.MustCompile(`(?i)\bpatient\s+(?:should|must|to)\b[^.]*`),
	regexp.MustCompile(`(?i)\bcontinue\b[^.]*?\b(?:medication|treatment|therapy)\b[^.]*`),
}

// Recommendations extracts advice sentences, each captured up to the next
// period and trimmed.
func Recommendations(text string) []string {
	recs := []string{}
	for _, re := range recommendationPatterns {
		for _, m := range re.FindAllString(text, -1) {
			if t := strings.TrimSpace(m); t != "" {
				recs = append(recs, t)
			}
		}
	}
	return recs
}
