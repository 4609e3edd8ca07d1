package fields

import (
	"regexp"
	"strings"

	"github.com/amara-chukwu/healthvault/constants"
)

var (
	reBloodPressure = regexp.MustCompile(`\b\d{2,3}/\d{2,3}\b`)
	reHeartRate     = regexp.MustCompile(`(?i)\b(\d{2,3})\s*bpm\b`)
	reWeight        = regexp.MustCompile(`(?i)\b(\d{2,3}(?:\.\d)?)\s*(lbs|kg)\b`)
	reHeightFtIn    = regexp.MustCompile(`\b\d'\d{1,2}"`)
	reHeightCm      = regexp.MustCompile(`(?i)\b(\d{2,3})\s*cm\b`)
	reTemperature   = regexp.MustCompile(`(?i)\b(\d{2,3}(?:\.\d)?)\s*°?\s*([FC])\b`)
	reBMI           = regexp.MustCompile(`(?i)\bBMI\s*:?\s*(\d{2}(?:\.\d)?)\b`)
	reCholesterol   = regexp.MustCompile(`(?i)\bcholesterol\s*:?\s*([^\n.]+)`)
)

// Metrics runs one single-shot pattern per vital-sign metric. A key is set
// only when its specific pattern matched; there are no fallbacks.
func Metrics(text string) map[string]string {
	m := map[string]string{}

	if v := reBloodPressure.FindString(text); v != "" {
		m[constants.MetricBloodPressure] = v
	}
	if sub := reHeartRate.FindStringSubmatch(text); sub != nil {
		m[constants.MetricHeartRate] = sub[1] + " bpm"
	}
	if sub := reWeight.FindStringSubmatch(text); sub != nil {
		m[constants.MetricWeight] = sub[1] + " " + strings.ToLower(sub[2])
	}
	if v := reHeightFtIn.FindString(text); v != "" {
		m[constants.MetricHeight] = v
	} else if sub := reHeightCm.FindStringSubmatch(text); sub != nil {
		m[constants.MetricHeight] = sub[1] + " cm"
	}
	if sub := reTemperature.FindStringSubmatch(text); sub != nil {
		m[constants.MetricTemperature] = sub[1] + "°" + strings.ToUpper(sub[2])
	}
	if sub := reBMI.FindStringSubmatch(text); sub != nil {
		m[constants.MetricBMI] = sub[1]
	}
	if sub := reCholesterol.FindStringSubmatch(text); sub != nil {
		m[constants.MetricCholesterol] = strings.TrimSpace(sub[1])
	}

	return m
}
