package constants

import (
	"strings"
)

// Category classifies a stored health record.
type Category string

const (
	LabReport    Category = "LabReport"
	Prescription Category = "Prescription"
	Consultation Category = "Consultation"
	Imaging      Category = "Imaging"
	Vaccination  Category = "Vaccination"
	Discharge    Category = "Discharge"
	Referral     Category = "Referral"
	Other        Category = "Other"
)

var allCategories = []Category{
	LabReport,
	Prescription,
	Consultation,
	Imaging,
	Vaccination,
	Discharge,
	Referral,
	Other,
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"lab":          LabReport,
		"lab result":   LabReport,
		"blood work":   LabReport,
		"blood test":   LabReport,
		"rx":           Prescription,
		"medication":   Prescription,
		"visit":        Consultation,
		"checkup":      Consultation,
		"check-up":     Consultation,
		"x-ray":        Imaging,
		"xray":         Imaging,
		"mri":          Imaging,
		"ct scan":      Imaging,
		"ultrasound":   Imaging,
		"immunization": Vaccination,
		"vaccine":      Vaccination,
		"shot record":  Vaccination,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
