package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amara-chukwu/healthvault/constants"
	"github.com/amara-chukwu/healthvault/internal/entity"
	"github.com/amara-chukwu/healthvault/internal/ocr"
)

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Recognize(_ context.Context, _ []byte) (ocr.Result, error) {
	if f.err != nil {
		return ocr.Result{}, f.err
	}
	return ocr.Result{Text: f.text, Confidence: 0.8}, nil
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk fault") }

func TestExtractRawText_PlainText(t *testing.T) {
	d := NewDispatcher(&fakeRecognizer{}, nil)
	doc := entity.RawDocument{
		Name:      "report.txt",
		MediaType: "text/plain",
		Data:      strings.NewReader("MEDICAL REPORT\nDate: 2023-09-05"),
	}

	res, err := d.ExtractRawText(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, constants.TEXT, res.SourceType)
	assert.Equal(t, "text-read", res.Method)
	assert.Equal(t, "MEDICAL REPORT\nDate: 2023-09-05", res.Text)
}

func TestExtractRawText_PlainTextReadFailureIsFatal(t *testing.T) {
	d := NewDispatcher(&fakeRecognizer{}, nil)
	doc := entity.RawDocument{Name: "report.txt", MediaType: "text/plain", Data: failingReader{}}

	_, err := d.ExtractRawText(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report.txt")
}

func TestExtractRawText_PlainTextNilContentIsFatal(t *testing.T) {
	d := NewDispatcher(&fakeRecognizer{}, nil)
	doc := entity.RawDocument{Name: "report.txt", MediaType: "text/plain"}

	_, err := d.ExtractRawText(context.Background(), doc)
	require.Error(t, err)
}

func TestExtractRawText_ImageOCR(t *testing.T) {
	d := NewDispatcher(&fakeRecognizer{text: "Dr. Emily Rodriguez\nDiagnosis: L23.7"}, nil)
	doc := entity.RawDocument{
		Name:      "scan.png",
		MediaType: "image/png",
		Data:      strings.NewReader("fake image bytes"),
	}

	res, err := d.ExtractRawText(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "image-ocr", res.Method)
	assert.Contains(t, res.Text, "Emily Rodriguez")
}

func TestExtractRawText_ImageOCRFailureFallsBackToStub(t *testing.T) {
	d := NewDispatcher(&fakeRecognizer{err: errors.New("engine crashed")}, nil)
	doc := entity.RawDocument{
		Name:      "scan.png",
		MediaType: "image/png",
		Data:      strings.NewReader("fake image bytes"),
	}

	res, err := d.ExtractRawText(context.Background(), doc)
	require.NoError(t, err, "OCR failure must not be fatal")
	assert.Equal(t, "image-stub", res.Method)
	assert.NotEmpty(t, res.Text)
	assert.NotEmpty(t, res.Warnings)
}

func TestExtractRawText_PDFStub(t *testing.T) {
	d := NewDispatcher(&fakeRecognizer{}, nil)
	doc := entity.RawDocument{Name: "visit.pdf", MediaType: "application/pdf"}

	res, err := d.ExtractRawText(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "pdf-stub", res.Method)
	assert.Contains(t, res.Text, "MEDICAL REPORT")
}

func TestExtractRawText_UnknownTypeGetsGenericStub(t *testing.T) {
	d := NewDispatcher(&fakeRecognizer{}, nil)
	doc := entity.RawDocument{Name: "notes.xyz", MediaType: "application/x-unknown"}

	res, err := d.ExtractRawText(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "generic-stub", res.Method)
	assert.NotEmpty(t, res.Text)
}
