// Package classifier maps a declared media type and filename to a document
// kind before any parsing work begins. Unsupported input is rejected here,
// with the offending media type preserved for user feedback.
package classifier

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DocumentKind identifies how an uploaded document will be processed.
type DocumentKind int

const (
	Unsupported DocumentKind = iota
	ImageReceipt
	PdfReceipt
	PdfStatement
	CsvStatement
	SpreadsheetStatement

	// PdfDocument is the provisional kind for application/pdf uploads.
	// Whether a PDF is a receipt or a statement is only decidable once its
	// text has been extracted; ResolvePdfKind makes that call.
	PdfDocument
)

// String returns the kind name used in logs and metrics labels.
func (k DocumentKind) String() string {
	switch k {
	case ImageReceipt:
		return "image_receipt"
	case PdfReceipt:
		return "pdf_receipt"
	case PdfStatement:
		return "pdf_statement"
	case CsvStatement:
		return "csv_statement"
	case SpreadsheetStatement:
		return "spreadsheet_statement"
	case PdfDocument:
		return "pdf"
	default:
		return "unsupported"
	}
}

// ErrUnsupportedMediaType is returned for media types outside the allow-list.
// The wrapping error message carries the declared media type verbatim.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

var imageMediaTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

// Spreadsheet MIME aliases seen in the wild. Legacy application/vnd.ms-excel
// is what browsers commonly attach to .csv exports, so it maps to CSV.
var csvMediaTypes = map[string]struct{}{
	"text/csv":                 {},
	"application/csv":          {},
	"application/vnd.ms-excel": {},
}

const xlsxMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Classify derives the document kind from the declared media type, falling
// back to the filename extension for generic media types. PDF uploads get
// the provisional PdfDocument kind.
func Classify(mediaType, filename string) (DocumentKind, error) {
	mt := normalizeMediaType(mediaType)
	ext := strings.ToLower(filepath.Ext(filename))

	switch {
	case strings.HasPrefix(mt, "image/"):
		if _, ok := imageMediaTypes[mt]; ok {
			return ImageReceipt, nil
		}
	case mt == "application/pdf":
		return PdfDocument, nil
	case mt == xlsxMediaType:
		return SpreadsheetStatement, nil
	default:
		if _, ok := csvMediaTypes[mt]; ok {
			// .xlsx files are often declared as vnd.ms-excel; trust the
			// extension over the alias in that case.
			if ext == ".xlsx" {
				return SpreadsheetStatement, nil
			}
			return CsvStatement, nil
		}
	}

	// Generic media types still get a shot via the filename suffix.
	if mt == "" || mt == "application/octet-stream" || mt == "text/plain" {
		switch ext {
		case ".csv":
			return CsvStatement, nil
		case ".xlsx":
			return SpreadsheetStatement, nil
		}
	}

	return Unsupported, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
}

// Keywords that mark extracted PDF text as a single receipt rather than a
// tabular statement.
var receiptMarkers = []string{"receipt", "total", "amount"}

// ResolvePdfKind refines a PdfDocument into PdfReceipt or PdfStatement based
// on the extracted text.
func ResolvePdfKind(text string) DocumentKind {
	lower := strings.ToLower(text)
	for _, marker := range receiptMarkers {
		if strings.Contains(lower, marker) {
			return PdfReceipt
		}
	}
	return PdfStatement
}

func normalizeMediaType(mediaType string) string {
	mt := strings.ToLower(strings.TrimSpace(mediaType))
	// Strip parameters such as "; charset=utf-8".
	if idx := strings.IndexByte(mt, ';'); idx >= 0 {
		mt = strings.TrimSpace(mt[:idx])
	}
	return mt
}
