package fields

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amara-chukwu/healthvault/constants"
)

var fixedToday = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestTitle(t *testing.T) {
	assert.Equal(t, "MEDICAL REPORT", Title("MEDICAL REPORT\nDate: 2023-09-05"))
	assert.Equal(t, "Lab Results", Title("\n\n  Lab Results  \nWBC 7.2"))
	assert.Equal(t, DefaultTitle, Title(""))
	assert.Equal(t, DefaultTitle, Title("   \n  \n"))
}

func TestDate_PatternOrder(t *testing.T) {
	assert.Equal(t, "2023-09-05", Date("Date: 2023-09-05", fixedToday))
	assert.Equal(t, "2023-09-05", Date("Visit on 9/5/2023", fixedToday))
	assert.Equal(t, "2023-09-05", Date("Visit on 9/5/23", fixedToday))
	assert.Equal(t, "2023-09-05", Date("Seen on September 5, 2023", fixedToday))
	// ISO wins over a later slash date
	assert.Equal(t, "2023-09-05", Date("3/1/21 then 2023-09-05", fixedToday))
}

func TestDate_FallbackToToday(t *testing.T) {
	assert.Equal(t, "2024-03-15", Date("no date here at all", fixedToday))
	assert.Equal(t, "2024-03-15", Date("", fixedToday))
}

func TestDoctor(t *testing.T) {
	assert.Equal(t, "Emily Rodriguez", Doctor("MEDICAL REPORT\nDr. Emily Rodriguez\nDiagnosis: L23.7"))
	assert.Equal(t, "Jane Smith", Doctor("Doctor: Jane Smith, MD"))
	assert.Equal(t, "Omar Hassan", Doctor("Physician: Omar Hassan. Follow up soon."))
	assert.Equal(t, "", Doctor("no medical staff mentioned"))
	assert.Equal(t, "", Doctor(""))
}

func TestFacility(t *testing.T) {
	assert.Equal(t, "St Mary Medical", Facility("Clinic: St Mary Medical\nDr. Who"))
	assert.Equal(t, "Riverside General Hospital", Facility("Treated at Riverside General Hospital on Monday"))
	assert.Equal(t, "", Facility("no facility named"))
}

func TestDiagnosisCodes_Ordering(t *testing.T) {
	codes := DiagnosisCodes("Patient has J30.1 and also E11 and 250.00")
	assert.Equal(t, []string{"J30.1", "E11", "250.00"}, codes)
}

func TestDiagnosisCodes_Empty(t *testing.T) {
	assert.Equal(t, []string{}, DiagnosisCodes("nothing code-like in here"))
	assert.Equal(t, []string{}, DiagnosisCodes(""))
}

func TestDiagnosisCodes_SkipsFourDigitYears(t *testing.T) {
	assert.Equal(t, []string{}, DiagnosisCodes("Date: 2023-09-05"))
}

func TestMedications_KnownListWithDosage(t *testing.T) {
	meds := Medications("Prescribed: Loratadine 10mg daily")
	require.NotEmpty(t, meds)
	assert.Contains(t, meds, "Loratadine 10mg")
}

func TestMedications_OverlapNotDeduplicated(t *testing.T) {
	// known-list pass and generic dosage pass both hit: duplicates are kept
	meds := Medications("Take Metformin 500 mg twice daily")
	assert.GreaterOrEqual(t, len(meds), 2)
}

func TestMedications_KnownNameWithoutDosage(t *testing.T) {
	meds := Medications("Prescribed: Triamcinolone 0.1% cream")
	require.NotEmpty(t, meds)
	assert.Contains(t, meds[0], "Triamcinolone")
}

func TestMedications_Empty(t *testing.T) {
	assert.Equal(t, []string{}, Medications("no drugs mentioned"))
}

func TestFollowUpDate(t *testing.T) {
	assert.Equal(t, "2023-10-01", FollowUpDate("Follow-up appointment on 2023-10-01 please"))
	assert.Equal(t, "2023-10-01", FollowUpDate("Next visit: 10/1/2023"))
	assert.Equal(t, "2023-10-01", FollowUpDate("appointment scheduled for October 1, 2023"))
	// truly optional: no fallback
	assert.Equal(t, "", FollowUpDate("Follow up as needed"))
	assert.Equal(t, "", FollowUpDate("Dated 2023-10-01 with no keyword in the clause.\nUnrelated line"))
}

func TestRecommendations(t *testing.T) {
	recs := Recommendations("Advised to avoid allergens. Return in 2 weeks if not improving.")
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "Advised to avoid allergens")
	assert.Contains(t, recs[1], "Return in 2 weeks")
}

func TestRecommendations_AllThreePatterns(t *testing.T) {
	text := "We recommend rest. Patient should drink fluids. Continue current medication as before."
	recs := Recommendations(text)
	require.Len(t, recs, 3)
	assert.Contains(t, recs[0], "recommend rest")
	assert.Contains(t, recs[1], "Patient should drink fluids")
	assert.Contains(t, recs[2], "Continue current medication")
}

func TestMetrics(t *testing.T) {
	text := "Vitals: BP 120/80 mmHg, HR 72 bpm, Weight 150.5 lbs, Height 5'10\", Temp 98.6°F, BMI: 24.5\nCholesterol: 180 total, LDL slightly elevated"
	m := Metrics(text)
	assert.Equal(t, "120/80", m[constants.MetricBloodPressure])
	assert.Equal(t, "72 bpm", m[constants.MetricHeartRate])
	assert.Equal(t, "150.5 lbs", m[constants.MetricWeight])
	assert.Equal(t, `5'10"`, m[constants.MetricHeight])
	assert.Equal(t, "98.6°F", m[constants.MetricTemperature])
	assert.Equal(t, "24.5", m[constants.MetricBMI])
	assert.Equal(t, "180 total, LDL slightly elevated", m[constants.MetricCholesterol])
}

func TestMetrics_HeightCentimeters(t *testing.T) {
	m := Metrics("Height 178 cm recorded")
	assert.Equal(t, "178 cm", m[constants.MetricHeight])
}

func TestMetrics_OnlyMatchedKeysPresent(t *testing.T) {
	m := Metrics("Weight 80 kg")
	assert.Equal(t, map[string]string{constants.MetricWeight: "80 kg"}, m)
}

// Every extractor must return a value of its declared type for any input,
// never panic.
func TestExtractors_TotalOnArbitraryInput(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"....",
		"\n\n\n",
		"DR.",
		"Clinic:",
		"BMI:",
		"1/2/3 4/5/6 7/8/9",
		"ÀÉÎØÜ 日本語 ¯\\_(ツ)_/¯",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			sd := Extract(in, fixedToday)
			require.NotNil(t, sd)
			assert.NotNil(t, sd.DiagnosisCodes)
			assert.NotNil(t, sd.Medications)
			assert.NotNil(t, sd.Recommendations)
			assert.NotNil(t, sd.Metrics)
			assert.NotEmpty(t, sd.Title)
			assert.NotEmpty(t, sd.Date)
		}, "input %q", in)
	}
}

func TestExtract_Assembly(t *testing.T) {
	text := "MEDICAL REPORT\nDate: 2023-09-05\nDr. Emily Rodriguez\nDiagnosis: L23.7\nPrescribed: Triamcinolone 0.1% cream\nAdvised to avoid allergens. Return in 2 weeks if not improving."
	sd := Extract(text, fixedToday)
	assert.Equal(t, "MEDICAL REPORT", sd.Title)
	assert.Equal(t, "2023-09-05", sd.Date)
	assert.Equal(t, "Emily Rodriguez", sd.Doctor)
	assert.Contains(t, sd.DiagnosisCodes, "L23.7")
	require.NotEmpty(t, sd.Medications)
	assert.Contains(t, sd.Medications[0], "Triamcinolone")
	require.Len(t, sd.Recommendations, 2)
}
