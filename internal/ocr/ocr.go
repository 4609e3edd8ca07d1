package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// DefaultCharWhitelist restricts engine output to alphanumerics and common
// punctuation so line noise does not leak into extraction.
const DefaultCharWhitelist = `ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789.,:;()/\-%'"° `

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language      string // default "eng"
	CharWhitelist string // default DefaultCharWhitelist; set to "-" to disable
	TessdataDir   string

	PSM int // e.g., 6 is good for uniform block of text
	OEM int // 1 = LSTM; leave 0 to use default

	// Timeout bounds a single engine invocation. The pipeline treats OCR
	// failure as non-fatal, so a hung engine should not stall a run forever.
	Timeout time.Duration // default 30s
}

// Result is the recognized text plus engine metadata.
type Result struct {
	Text       string
	Language   string
	Confidence float32
	Duration   time.Duration
	Warnings   []string
}

// Engine recognizes text in images by shelling out to tesseract. External
// commands go through the Runner interface so tests can stub them.
type Engine struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewEngine(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.CharWhitelist == "" {
		cfg.CharWhitelist = DefaultCharWhitelist
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Engine{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// NewEngineWithRunner is the test seam.
func NewEngineWithRunner(cfg Config, r Runner, logger *slog.Logger) *Engine {
	e := NewEngine(cfg, logger)
	e.runner = r
	return e
}

// reBoxNoise strips stray single-character lines the engine sometimes emits
// around image borders.
var reBoxNoise = regexp.MustCompile(`(?m)^[\W_]\s*$`)

// Recognize runs the engine over image bytes and returns recognized text.
// Failures (engine error, timeout) propagate to the caller: the dispatcher
// owns the fallback policy, not the adapter.
func (e *Engine) Recognize(ctx context.Context, image []byte) (Result, error) {
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "hv-ocr-*")
	if err != nil {
		return Result{}, fmt.Errorf("ocr temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil {
			e.logger.Warn("ocr.tempdir.cleanup_failed", "dir", tmpDir, "error", rmErr)
		}
	}()

	in := filepath.Join(tmpDir, "page.img")
	if err := os.WriteFile(in, image, 0o600); err != nil {
		return Result{}, fmt.Errorf("ocr write image: %w", err)
	}

	args := []string{in, "stdout", "-l", e.cfg.Language}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	if e.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", e.cfg.TessdataDir)
	}
	if e.cfg.CharWhitelist != "-" {
		args = append(args, "-c", "tessedit_char_whitelist="+e.cfg.CharWhitelist)
	}

	runCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	out, errb, err := e.runner.Run(runCtx, e.cfg.Tesseract, args...)
	if err != nil {
		return Result{Warnings: []string{string(errb)}}, fmt.Errorf("tesseract: %w", err)
	}

	txt := reBoxNoise.ReplaceAllString(string(out), "")
	res := Result{
		Text:       txt,
		Language:   e.cfg.Language,
		Confidence: heuristicConfidence(txt),
		Duration:   time.Since(start),
	}
	e.logger.Debug("ocr.recognize.ok",
		"bytes_in", len(image),
		"chars_out", len(txt),
		"confidence", res.Confidence,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
