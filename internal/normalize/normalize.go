package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// Normalize cleans raw OCR/extracted text before field extraction. It never
// fails; empty input yields empty output. Rules run in a fixed order and later
// rules may re-match text produced by earlier ones; that is accepted behavior,
// not a bug. Same input always yields same output.
//
// Order:
//  1. collapse whitespace runs (line structure is preserved so the title
//     extractor can still see the first line),
//  2. character-confusion fixes for common OCR misreads,
//  3. whole-word medical misspelling corrections, case-insensitive.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	text := collapseWhitespace(raw)
	text = fixStandaloneI(text)

	for _, rule := range confusionRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}

	for _, rule := range dictionaryRules {
		text = rule.re.ReplaceAllString(text, rule.repl)
	}

	return text
}

var (
	reHorizontalWS = regexp.MustCompile(`[ \t\r\f\v]+`)
	reNewlineRuns  = regexp.MustCompile(` ?\n[ \n]*`)
)

func collapseWhitespace(s string) string {
	s = reHorizontalWS.ReplaceAllString(s, " ")
	s = reNewlineRuns.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// fixStandaloneI rewrites a lone l or 1 word to I. Token-wise, not regex:
// a boundary-delimited regex consumes its trailing delimiter and then skips
// every second token in a run like "l 1 l". Runs after collapseWhitespace,
// so words within a line are separated by exactly one space.
func fixStandaloneI(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		words := strings.Split(line, " ")
		for j, w := range words {
			if w == "l" || w == "1" {
				words[j] = "I"
			}
		}
		lines[i] = strings.Join(words, " ")
	}
	return strings.Join(lines, "\n")
}

type rewrite struct {
	re   *regexp.Regexp
	repl string
}

// confusionRules fix glyph-level OCR misreads. They are global substring
// rewrites and knowingly lossy: a digit that legitimately sits between two
// letters will be "corrected" even when it was real data. The digit swaps are
// constrained to letter context so numeric fields (dates, dosages, vitals)
// survive for the downstream extractors.
var confusionRules = []rewrite{
	{regexp.MustCompile(`\|`), "I"}, // vertical bar read for capital I
	{regexp.MustCompile(`([A-Za-z])0([A-Za-z])`), "${1}O${2}"},
	{regexp.MustCompile(`([A-Za-z])3([A-Za-z])`), "${1}B${2}"},
	{regexp.MustCompile(`([A-Za-z])5([A-Za-z])`), "${1}S${2}"},
	{regexp.MustCompile(`rnm`), "mm"},  // "rnm Hg" and friends
	{regexp.MustCompile(`cl\b`), "d"},  // trailing "prescribecl", "advisecl"
	{regexp.MustCompile(`vv`), "w"},    // "vvound" -> "wound"
}

// dictionaryRules correct whole-word misreads of common medical terms,
// case-insensitively, replacing all occurrences.
var dictionaryRules = buildDictionary(map[string]string{
	"dlagnosis":   "diagnosis",
	"diagnosls":   "diagnosis",
	"patjent":     "patient",
	"patlent":     "patient",
	"medicatlon":  "medication",
	"medlcation":  "medication",
	"prescrlption": "prescription",
	"physlcian":   "physician",
	"hospltal":    "hospital",
	"allergjes":   "allergies",
	"symptorns":   "symptoms",
	"treatrnent":  "treatment",
	"foliow":      "follow",
	"presslure":   "pressure",
})

func buildDictionary(words map[string]string) []rewrite {
	// deterministic rule order regardless of map iteration
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rules := make([]rewrite, 0, len(keys))
	for _, k := range keys {
		rules = append(rules, rewrite{
			re:   regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`),
			repl: words[k],
		})
	}
	return rules
}
