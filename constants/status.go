package constants

// ExtractionStatus is the terminal status of a pipeline run.
type ExtractionStatus string

// Stable values (store these exact strings in DB).
const (
	// StatusProcessed means text was produced and every field extractor ran.
	// Individual field misses do NOT demote a run to error.
	StatusProcessed ExtractionStatus = "PROCESSED"
	// StatusError means no text could be produced at all (fatal read failure).
	StatusError ExtractionStatus = "ERROR"
)
