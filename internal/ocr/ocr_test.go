package ocr

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	err    error

	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.stdout, f.stderr, f.err
}

func TestRecognize_Success(t *testing.T) {
	fr := &fakeRunner{stdout: []byte("MEDICAL REPORT\nDate: 2023-09-05\n")}
	e := NewEngineWithRunner(Config{}, fr, nil)

	res, err := e.Recognize(context.Background(), []byte{0x89, 0x50})
	require.NoError(t, err)
	assert.Contains(t, res.Text, "MEDICAL REPORT")
	assert.Equal(t, "eng", res.Language)
	assert.Greater(t, res.Confidence, float32(0))

	assert.Equal(t, "tesseract", fr.gotName)
	assert.Contains(t, fr.gotArgs, "stdout")
	assert.Contains(t, fr.gotArgs, "-l")
	// whitelist is passed by default to suppress engine noise
	joined := ""
	for _, a := range fr.gotArgs {
		joined += a + " "
	}
	assert.Contains(t, joined, "tessedit_char_whitelist=")
}

func TestRecognize_WhitelistDisabled(t *testing.T) {
	fr := &fakeRunner{stdout: []byte("x")}
	e := NewEngineWithRunner(Config{CharWhitelist: "-"}, fr, nil)

	_, err := e.Recognize(context.Background(), []byte("img"))
	require.NoError(t, err)
	for _, a := range fr.gotArgs {
		assert.NotContains(t, a, "tessedit_char_whitelist")
	}
}

func TestRecognize_EngineFailurePropagates(t *testing.T) {
	fr := &fakeRunner{stderr: []byte("boom"), err: errors.New("exit status 1")}
	e := NewEngineWithRunner(Config{}, fr, nil)

	res, err := e.Recognize(context.Background(), []byte("img"))
	require.Error(t, err)
	assert.Empty(t, res.Text)
	assert.Contains(t, res.Warnings, "boom")
}

func TestHeuristicConfidence(t *testing.T) {
	low := heuristicConfidence("zz")
	high := heuristicConfidence("Patient seen 2023-09-05, BP 120/80, diagnosis J30.1. " +
		"Lengthy clinical narrative follows with medication details and further notes to exceed the length bonus threshold.")
	assert.Less(t, low, high)
	assert.LessOrEqual(t, high, float32(1.0))
}

func TestNewEngine_RunnerSharesEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := NewEngine(Config{}, logger)
	r, ok := e.runner.(execRunner)
	require.True(t, ok)
	assert.Same(t, logger, r.logger)
}
