// Package extract defines the contracts for the external text-extraction
// collaborators: the OCR engine for images and the text layer reader for
// PDFs. Both are consumed as black boxes mapping document bytes to raw text;
// a failure from either propagates immediately with no internal retry.
package extract

import (
	"context"
	"errors"
	"fmt"
)

// ErrExtraction marks a collaborator failure. Callers match it with
// errors.Is; the wrapped error carries the engine-specific cause.
var ErrExtraction = errors.New("text extraction failed")

// OCRClient recognizes text in an image file on disk.
type OCRClient interface {
	RecognizeImage(ctx context.Context, path string) (string, error)
}

// PDFTextClient extracts the text layer of a PDF file on disk.
type PDFTextClient interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// Failure wraps an engine error into an ErrExtraction so the pipeline can
// classify it uniformly.
func Failure(engine string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrExtraction, engine, err)
}
