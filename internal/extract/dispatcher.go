package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/amara-chukwu/healthvault/constants"
	"github.com/amara-chukwu/healthvault/internal/entity"
)

// Dispatcher routes a document to an extraction path by its declared media
// type. Only the plain-text direct-read path can fail fatally; every other
// path degrades to a placeholder so downstream extraction always has text
// to chew on.
type Dispatcher struct {
	ocr    Recognizer
	logger *slog.Logger
}

func NewDispatcher(ocr Recognizer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{ocr: ocr, logger: logger}
}

var _ TextExtractor = (*Dispatcher)(nil)

// ExtractRawText produces raw text for a document.
//   - PDF: placeholder document (stand-in for a real text-layer reader)
//   - image/*: OCR; engine failure falls back to a placeholder, non-fatal
//   - text/plain: direct UTF-8 read; a read failure here IS fatal
//   - anything else: generic placeholder
func (d *Dispatcher) ExtractRawText(ctx context.Context, doc entity.RawDocument) (RawTextResult, error) {
	format := constants.MapMediaTypeToFormat(doc.MediaType)

	switch format {
	case constants.PDF:
		return RawTextResult{Text: pdfStubText, SourceType: format, Method: "pdf-stub"}, nil

	case constants.IMAGE:
		return d.extractImage(ctx, doc), nil

	case constants.TEXT:
		data, err := readAll(doc)
		if err != nil {
			return RawTextResult{SourceType: format}, fmt.Errorf("read text document %q: %w", doc.Name, err)
		}
		return RawTextResult{Text: string(data), SourceType: format, Method: "text-read"}, nil

	default:
		return RawTextResult{Text: genericStubText, SourceType: constants.OTHER, Method: "generic-stub"}, nil
	}
}

// extractImage never fails: OCR trouble is logged and swapped for a
// placeholder so the pipeline stays on the processed path.
func (d *Dispatcher) extractImage(ctx context.Context, doc entity.RawDocument) RawTextResult {
	data, err := readAll(doc)
	if err != nil {
		d.logger.Warn("extract.image.read_failed", "name", doc.Name, "error", err)
		return RawTextResult{
			Text:       imageStubText,
			SourceType: constants.IMAGE,
			Method:     "image-stub",
			Warnings:   []string{err.Error()},
		}
	}

	res, err := d.ocr.Recognize(ctx, data)
	if err != nil {
		d.logger.Warn("extract.image.ocr_failed", "name", doc.Name, "error", err)
		return RawTextResult{
			Text:       imageStubText,
			SourceType: constants.IMAGE,
			Method:     "image-stub",
			Warnings:   append(res.Warnings, err.Error()),
		}
	}

	return RawTextResult{
		Text:       res.Text,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
		Warnings:   res.Warnings,
	}
}

func readAll(doc entity.RawDocument) ([]byte, error) {
	if doc.Data == nil {
		return nil, errors.New("document has no content")
	}
	return io.ReadAll(doc.Data)
}
