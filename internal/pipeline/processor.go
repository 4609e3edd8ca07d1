package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/amara-chukwu/healthvault/constants"
	"github.com/amara-chukwu/healthvault/internal/entity"
	"github.com/amara-chukwu/healthvault/internal/extract"
	"github.com/amara-chukwu/healthvault/internal/fields"
	"github.com/amara-chukwu/healthvault/internal/normalize"
)

// Processor composes dispatch (file -> raw text), normalization, and field
// extraction into one run. Each invocation owns its inputs and outputs; there
// is no cross-invocation state.
type Processor struct {
	logger    *slog.Logger
	extractor extract.TextExtractor
	now       func() time.Time
}

func NewProcessor(tx extract.TextExtractor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, extractor: tx, now: time.Now}
}

// NewProcessorWithClock pins "today" for the date-fallback policy.
func NewProcessorWithClock(tx extract.TextExtractor, logger *slog.Logger, now func() time.Time) *Processor {
	p := NewProcessor(tx, logger)
	if now != nil {
		p.now = now
	}
	return p
}

// Process runs the full extraction pipeline for one document. A fatal
// dispatch failure (unreadable plain-text file) yields Status ERROR with no
// structured data, plus the error for the caller's log. Everything else
// (OCR trouble, field misses) degrades to placeholder or default values and
// still comes back PROCESSED.
func (p *Processor) Process(ctx context.Context, doc entity.RawDocument) (entity.ExtractionResult, error) {
	start := time.Now()

	raw, err := p.extractor.ExtractRawText(ctx, doc)
	if err != nil {
		p.logger.Error("pipeline.dispatch.failed", "name", doc.Name, "media_type", doc.MediaType, "error", err)
		return entity.ExtractionResult{
			Status:     constants.StatusError,
			SourceType: raw.SourceType,
			Duration:   time.Since(start),
		}, err
	}

	normalized := normalize.Normalize(raw.Text)
	structured := fields.Extract(normalized, p.now())

	res := entity.ExtractionResult{
		RawText:        raw.Text,
		NormalizedText: normalized,
		Structured:     structured,
		Status:         constants.StatusProcessed,
		SourceType:     raw.SourceType,
		Method:         raw.Method,
		Warnings:       raw.Warnings,
		Duration:       time.Since(start),
	}

	p.logger.Info("pipeline.process.ok",
		"name", doc.Name,
		"method", raw.Method,
		"title", structured.Title,
		"diagnosis_codes", len(structured.DiagnosisCodes),
		"medications", len(structured.Medications),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
