package extract

import (
	"context"

	"github.com/amara-chukwu/healthvault/constants"
	"github.com/amara-chukwu/healthvault/internal/entity"
	"github.com/amara-chukwu/healthvault/internal/ocr"
)

// TextExtractor is Stage 1: document -> raw text.
type TextExtractor interface {
	ExtractRawText(ctx context.Context, doc entity.RawDocument) (RawTextResult, error)
}

// RawTextResult is the dispatcher's output, pre-normalization.
type RawTextResult struct {
	Text       string
	SourceType constants.Format
	Method     string // "image-ocr" | "image-stub" | "pdf-stub" | "text-read" | "generic-stub"
	Warnings   []string
}

// Recognizer is the OCR engine boundary. It may fail; the dispatcher decides
// the fallback policy.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (ocr.Result, error)
}
