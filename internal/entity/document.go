package entity

import (
	"io"
	"time"

	"github.com/amara-chukwu/healthvault/constants"
)

// RawDocument is the ephemeral input to the extraction pipeline: an uploaded
// or ingested file plus its declared media type. It is consumed exactly once;
// Data is drained by the dispatcher and never reused.
type RawDocument struct {
	Name      string    // display label, not used for routing
	MediaType string    // e.g. "application/pdf", "image/png", "text/plain"
	Data      io.Reader // binary content
}

// ExtractionResult is the pipeline's output, owned by the invocation that
// produced it and handed to the caller by value.
type ExtractionResult struct {
	RawText        string                     `json:"raw_text"`
	NormalizedText string                     `json:"normalized_text"`
	Structured     *StructuredData            `json:"structured_data,omitempty"`
	Status         constants.ExtractionStatus `json:"status"`

	SourceType constants.Format `json:"source_type"`
	Method     string           `json:"method"` // "image-ocr" | "pdf-stub" | "text-read" | "generic-stub" | "image-stub"
	Warnings   []string         `json:"warnings,omitempty"`
	Duration   time.Duration    `json:"-"`
}
