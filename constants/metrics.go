package constants

// Canonical keys for vital-sign metrics extracted from document text.
// These exact strings are used as map keys in StructuredData and as
// column headers in exports.
const (
	MetricBloodPressure = "Blood Pressure"
	MetricHeartRate     = "Heart Rate"
	MetricWeight        = "Weight"
	MetricHeight        = "Height"
	MetricTemperature   = "Temperature"
	MetricBMI           = "BMI"
	MetricCholesterol   = "Cholesterol"
)
