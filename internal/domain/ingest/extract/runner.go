package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"time"
)

// Config locates the extraction binaries. Empty fields fall back to the
// bare command names resolved via PATH.
type Config struct {
	Tesseract string // tesseract binary
	Pdftotext string // poppler pdftotext binary

	Language string // OCR language, default "eng"
	DPI      int    // OCR resolution hint, default 300
}

func (c *Config) applyDefaults() {
	if c.Tesseract == "" {
		c.Tesseract = "tesseract"
	}
	if c.Pdftotext == "" {
		c.Pdftotext = "pdftotext"
	}
	if c.Language == "" {
		c.Language = "eng"
	}
	if c.DPI <= 0 {
		c.DPI = 300
	}
}

// TesseractOCR runs the tesseract binary against an image file. It satisfies
// OCRClient.
type TesseractOCR struct {
	cfg    Config
	logger *slog.Logger
}

// NewTesseractOCR creates an OCR client backed by the tesseract binary.
func NewTesseractOCR(cfg Config, logger *slog.Logger) *TesseractOCR {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &TesseractOCR{cfg: cfg, logger: logger}
}

// RecognizeImage extracts text from the image at path. The call is
// single-shot: any engine failure is returned as an ErrExtraction.
func (t *TesseractOCR) RecognizeImage(ctx context.Context, path string) (string, error) {
	start := time.Now()

	args := []string{path, "stdout", "-l", t.cfg.Language, "--dpi", strconv.Itoa(t.cfg.DPI)}
	cmd := exec.CommandContext(ctx, t.cfg.Tesseract, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", Failure("tesseract", fmt.Errorf("%v: %s", err, stderr.String()))
	}

	t.logger.Debug("ocr completed",
		slog.String("path", path),
		slog.Duration("duration", time.Since(start)),
		slog.Int("bytes", stdout.Len()),
	)
	return stdout.String(), nil
}

// PdfToText reads a PDF's text layer via the poppler pdftotext binary. It
// satisfies PDFTextClient.
type PdfToText struct {
	cfg    Config
	logger *slog.Logger
}

// NewPdfToText creates a PDF text client backed by pdftotext.
func NewPdfToText(cfg Config, logger *slog.Logger) *PdfToText {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &PdfToText{cfg: cfg, logger: logger}
}

// ExtractText extracts the text layer of the PDF at path. -layout preserves
// the tabular structure statement parsing depends on.
func (p *PdfToText) ExtractText(ctx context.Context, path string) (string, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, p.cfg.Pdftotext, "-layout", path, "-")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", Failure("pdftotext", fmt.Errorf("%v: %s", err, stderr.String()))
	}

	p.logger.Debug("pdf text extracted",
		slog.String("path", path),
		slog.Duration("duration", time.Since(start)),
		slog.Int("bytes", stdout.Len()),
	)
	return stdout.String(), nil
}
