package fields

import (
	"regexp"
)

// knownMedications is the fixed lookup list for the first extraction pass.
// It is a convenience list of common prescriptions, not a formulary.
var knownMedications = []string{
	"Lisinopril",
	"Metformin",
	"Atorvastatin",
	"Amlodipine",
	"Metoprolol",
	"Omeprazole",
	"Losartan",
	"Levothyroxine",
	"Albuterol",
	"Gabapentin",
	"Hydrochlorothiazide",
	"Sertraline",
	"Simvastatin",
	"Montelukast",
	"Escitalopram",
	"Loratadine",
	"Cetirizine",
	"Triamcinolone",
	"Prednisone",
	"Amoxicillin",
	"Azithromycin",
	"Ibuprofen",
	"Acetaminophen",
	"Aspirin",
	"Warfarin",
	"Insulin",
}

var knownMedPatterns = buildMedPatterns()

func buildMedPatterns() []*regexp.Regexp {
	const dosage = `(?:\s+\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml)\b)?`
	patterns := make([]*regexp.Regexp, len(knownMedications))
	for i, name := range knownMedications {
		patterns[i] = regexp.MustCompile(`(?i)\b` + name + dosage)
	}
	return patterns
}

// reGenericMedication catches any capitalized word with a dosage quantity,
// independent of the known list, so unlisted drugs still surface.
var reGenericMedication = regexp.MustCompile(`\b[A-Z][a-z]{2,}\s+\d+(?:\.\d+)?\s*(?:mg|mcg|g|ml)\b`)

// Medications concatenates the known-list matches (in list order) with the
// generic dosage-pattern matches (in order of appearance). The two passes
// overlap on purpose and results are NOT de-duplicated: downstream review
// screens show raw extraction artifacts for manual correction.
func Medications(text string) []string {
	meds := []string{}
	for _, re := range knownMedPatterns {
		meds = append(meds, re.FindAllString(text, -1)...)
	}
	meds = append(meds, reGenericMedication.FindAllString(text, -1)...)
	return meds
}
