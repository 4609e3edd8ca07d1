package fields

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date patterns are tried in a fixed order; the first one that matches
// anywhere in the text wins.
var (
	reISODate   = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reSlashDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	reLongDate  = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`)
)

// Date extracts the document date as YYYY-MM-DD. When no pattern matches it
// falls back to today, so the caller always has a date to pre-fill. A fallback
// date is indistinguishable from an extracted one.
func Date(text string, today time.Time) string {
	if d, ok := findDate(text); ok {
		return d
	}
	return today.Format("2006-01-02")
}

// FollowUpDate looks for a follow-up keyword with a date in the same clause.
// Unlike Date there is no fallback: an empty string means no follow-up was
// mentioned.
func FollowUpDate(text string) string {
	for _, re := range followUpPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if d, ok := findDate(m[1]); ok {
				return d
			}
		}
	}
	return ""
}

// Each pattern pairs the keyword with one date format so the declared pattern
// order (ISO, slash, long month) decides ties, then occurrence order.
var followUpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:follow[ -]?up|follow|next|appointment)\b[^.\n]{0,80}?(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(?i)\b(?:follow[ -]?up|follow|next|appointment)\b[^.\n]{0,80}?(\d{1,2}/\d{1,2}/\d{2,4})`),
	regexp.MustCompile(`(?i)\b(?:follow[ -]?up|follow|next|appointment)\b[^.\n]{0,80}?((?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?,?\s+\d{4})`),
}

// findDate returns the first recognizable date in s as YYYY-MM-DD.
func findDate(s string) (string, bool) {
	if m := reISODate.FindStringSubmatch(s); m != nil {
		return m[0], true
	}
	if m := reSlashDate.FindStringSubmatch(s); m != nil {
		return slashToISO(m[1], m[2], m[3]), true
	}
	if m := reLongDate.FindStringSubmatch(s); m != nil {
		if iso := longToISO(m[1], m[2], m[3]); iso != "" {
			return iso, true
		}
	}
	return "", false
}

func slashToISO(month, day, year string) string {
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	y, _ := strconv.Atoi(year)
	if y < 100 {
		y += 2000
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func longToISO(month, day, year string) string {
	t, err := time.Parse("January 2 2006", fmt.Sprintf("%s %s %s", capitalize(month), day, year))
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
