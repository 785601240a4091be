// Package service orchestrates the document ingestion pipeline: media type
// classification, temp artifact spooling, text extraction and field
// extraction, ending in either structured receipt data or a batch of
// transaction candidates.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/artifact"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/classifier"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/csvnorm"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/extract"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/receipt"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/statement"
	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
	"github.com/FACorreiaa/finance-ingest/pkg/metrics"
)

// DefaultMaxUploadBytes caps uploads at 10 MB.
const DefaultMaxUploadBytes = 10 << 20

// ErrFileTooLarge rejects uploads over the size cap before any processing.
var ErrFileTooLarge = errors.New("file exceeds the maximum upload size")

// Result types reported to clients, named after the document source.
const (
	ResultTypeReceipt = "receipt"
	ResultTypeCsv     = "csv"
	ResultTypePdf     = "pdf"
)

// Upload is one document submitted for ingestion.
type Upload struct {
	Bytes     []byte
	MediaType string
	Filename  string
}

// UploadResult is the outcome of processing one document. Receipt uploads
// fill ExtractedData and SuggestedTransaction; statement uploads fill
// Transactions.
type UploadResult struct {
	Type                 string                    `json:"type"`
	ExtractedData        *receipt.ExtractedReceipt `json:"extractedData,omitempty"`
	SuggestedTransaction *transaction.Candidate    `json:"suggestedTransaction,omitempty"`
	Transactions         []transaction.Candidate   `json:"transactions,omitempty"`
	Message              string                    `json:"message"`
}

// IngestService runs the ingestion pipeline.
type IngestService struct {
	ocr        extract.OCRClient
	pdf        extract.PDFTextClient
	artifacts  *artifact.Manager
	receipts   *receipt.Extractor
	statements *statement.Extractor
	csv        *csvnorm.Normalizer

	maxUploadBytes int64
	logger         *slog.Logger
	tracer         trace.Tracer
	metrics        *metrics.Metrics
}

// Config wires the service's collaborators.
type Config struct {
	OCR        extract.OCRClient
	PDF        extract.PDFTextClient
	Artifacts  *artifact.Manager
	Receipts   *receipt.Extractor
	Statements *statement.Extractor
	CSV        *csvnorm.Normalizer

	MaxUploadBytes int64
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
}

func New(cfg Config) *IngestService {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &IngestService{
		ocr:            cfg.OCR,
		pdf:            cfg.PDF,
		artifacts:      cfg.Artifacts,
		receipts:       cfg.Receipts,
		statements:     cfg.Statements,
		csv:            cfg.CSV,
		maxUploadBytes: cfg.MaxUploadBytes,
		logger:         cfg.Logger,
		tracer:         otel.Tracer("finance-ingest/pipeline"),
		metrics:        cfg.Metrics,
	}
}

// ProcessUpload runs one document through the pipeline. The spooled artifact
// is always removed before returning, on every path.
func (s *IngestService) ProcessUpload(ctx context.Context, up Upload) (*UploadResult, error) {
	ctx, span := s.tracer.Start(ctx, "ingest.ProcessUpload",
		trace.WithAttributes(
			attribute.String("upload.media_type", up.MediaType),
			attribute.Int("upload.bytes", len(up.Bytes)),
		),
	)
	defer span.End()
	start := time.Now()

	if int64(len(up.Bytes)) > s.maxUploadBytes {
		s.countRejected("too_large")
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(up.Bytes))
	}

	kind, err := classifier.Classify(up.MediaType, up.Filename)
	if err != nil {
		s.countRejected("unsupported_media_type")
		return nil, err
	}
	span.SetAttributes(attribute.String("document.kind", kind.String()))

	art, err := s.artifacts.Spool(up.Bytes, up.Filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := art.Close(); cerr != nil {
			s.logger.Warn("artifact cleanup failed",
				slog.String("path", art.Path),
				slog.Any("error", cerr),
			)
		}
	}()

	result, err := s.dispatch(ctx, kind, art, up)
	if err != nil {
		return nil, err
	}

	s.countProcessed(kind, result)
	if s.metrics != nil {
		s.metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	}
	s.logger.Info("document processed",
		slog.String("kind", kind.String()),
		slog.String("result_type", result.Type),
		slog.Int("candidates", len(result.Transactions)),
	)
	return result, nil
}

func (s *IngestService) dispatch(ctx context.Context, kind classifier.DocumentKind, art *artifact.Artifact, up Upload) (*UploadResult, error) {
	switch kind {
	case classifier.ImageReceipt:
		text, err := s.ocr.RecognizeImage(ctx, art.Path)
		if err != nil {
			return nil, err
		}
		return s.receiptResult(text), nil

	case classifier.PdfDocument:
		text, err := s.pdf.ExtractText(ctx, art.Path)
		if err != nil {
			return nil, err
		}
		if classifier.ResolvePdfKind(text) == classifier.PdfReceipt {
			return s.receiptResult(text), nil
		}
		return s.statementResult(ResultTypePdf, s.statements.FromText(text)), nil

	case classifier.CsvStatement:
		rows, err := s.csv.Normalize(bytes.NewReader(up.Bytes))
		if err != nil {
			return nil, err
		}
		return s.statementResult(ResultTypeCsv, s.statements.FromRows(rows)), nil

	case classifier.SpreadsheetStatement:
		records, err := statement.RowsFromWorkbook(bytes.NewReader(up.Bytes))
		if err != nil {
			return nil, err
		}
		rows := s.csv.NormalizeRecords(records)
		return s.statementResult(ResultTypeCsv, s.statements.FromRows(rows)), nil

	default:
		return nil, fmt.Errorf("%w: %s", classifier.ErrUnsupportedMediaType, up.MediaType)
	}
}

func (s *IngestService) receiptResult(text string) *UploadResult {
	extracted := s.receipts.Extract(text)
	suggested := s.receipts.SuggestedCandidate(extracted)
	return &UploadResult{
		Type:                 ResultTypeReceipt,
		ExtractedData:        &extracted,
		SuggestedTransaction: &suggested,
		Message:              "Receipt processed successfully",
	}
}

func (s *IngestService) statementResult(resultType string, candidates []transaction.Candidate) *UploadResult {
	return &UploadResult{
		Type:         resultType,
		Transactions: candidates,
		Message:      fmt.Sprintf("Found %d transactions", len(candidates)),
	}
}

// CSVTemplate returns the downloadable import template.
func (s *IngestService) CSVTemplate() (filename string, body []byte) {
	return csvnorm.TemplateFilename, []byte(csvnorm.Template)
}

func (s *IngestService) countProcessed(kind classifier.DocumentKind, result *UploadResult) {
	if s.metrics == nil {
		return
	}
	s.metrics.DocumentsProcessed.WithLabelValues(kind.String()).Inc()
	s.metrics.CandidatesExtracted.Add(float64(len(result.Transactions)))
	if result.SuggestedTransaction != nil {
		s.metrics.CandidatesExtracted.Inc()
	}
}

func (s *IngestService) countRejected(reason string) {
	if s.metrics == nil {
		return
	}
	s.metrics.DocumentsRejected.WithLabelValues(reason).Inc()
}
