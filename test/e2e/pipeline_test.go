// Package e2etest exercises the ingestion pipeline end to end: document in,
// persisted transactions out, external extraction engines stubbed.
package e2etest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/finance-ingest/internal/domain/bulkimport"
	"github.com/FACorreiaa/finance-ingest/internal/domain/categorization"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/artifact"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/csvnorm"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/receipt"
	ingestservice "github.com/FACorreiaa/finance-ingest/internal/domain/ingest/service"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/statement"
	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
)

type stubOCR struct{ text string }

func (s *stubOCR) RecognizeImage(context.Context, string) (string, error) { return s.text, nil }

type stubPDF struct{ text string }

func (s *stubPDF) ExtractText(context.Context, string) (string, error) { return s.text, nil }

type memoryStore struct {
	saved []transaction.Candidate
}

func (m *memoryStore) SaveCandidate(_ context.Context, _ string, c transaction.Candidate) error {
	m.saved = append(m.saved, c)
	return nil
}

func newPipeline(t *testing.T, ocrText, pdfText string) *ingestservice.IngestService {
	t.Helper()

	artifacts, err := artifact.NewManager(t.TempDir(), time.Hour, nil)
	require.NoError(t, err)

	categories := categorization.NewService(categorization.DefaultTaxonomy())
	return ingestservice.New(ingestservice.Config{
		OCR:        &stubOCR{text: ocrText},
		PDF:        &stubPDF{text: pdfText},
		Artifacts:  artifacts,
		Receipts:   receipt.NewExtractor(categories, nil),
		Statements: statement.NewExtractor(categories, nil),
		CSV:        csvnorm.New(nil),
	})
}

func TestReceiptToImportFlow(t *testing.T) {
	ocrText := "WHOLE FOODS MARKET\n" +
		"15/01/2024\n" +
		"BANANAS 1.99\n" +
		"MILK 3.49\n" +
		"TOTAL: $5.48\n"
	svc := newPipeline(t, ocrText, "")

	result, err := svc.ProcessUpload(context.Background(), ingestservice.Upload{
		Bytes:     []byte("jpeg bytes"),
		MediaType: "image/jpeg",
		Filename:  "receipt.jpg",
	})
	require.NoError(t, err)
	require.NotNil(t, result.SuggestedTransaction)

	assert.Equal(t, "WHOLE FOODS MARKET", result.ExtractedData.MerchantName)
	assert.Equal(t, categorization.CategoryFoodDining, result.ExtractedData.Category)
	assert.Len(t, result.ExtractedData.LineItems, 2)

	// The suggested candidate goes straight through the importer.
	store := &memoryStore{}
	importer := bulkimport.NewOrchestrator(store, nil)
	imported, err := importer.Import(context.Background(), "user-1",
		[]transaction.Candidate{*result.SuggestedTransaction})
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Imported)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "Receipt from WHOLE FOODS MARKET", store.saved[0].Description)
}

func TestCsvStatementToImportFlow(t *testing.T) {
	svc := newPipeline(t, "", "")

	csvData := "Date,Description,Amount\n" +
		"2024-01-15,UBER TRIP HELP.UBER.COM,-23.40\n" +
		"2024-01-16,PAYROLL ACME CORP,+3200.00\n" +
		"bad row,,\n" +
		"2024-01-17,NETFLIX.COM,-15.49\n"

	result, err := svc.ProcessUpload(context.Background(), ingestservice.Upload{
		Bytes:     []byte(csvData),
		MediaType: "text/csv",
		Filename:  "statement.csv",
	})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 3, "the malformed row is dropped, the rest survive")

	store := &memoryStore{}
	importer := bulkimport.NewOrchestrator(store, nil)
	imported, err := importer.Import(context.Background(), "user-1", result.Transactions)
	require.NoError(t, err)
	assert.Equal(t, 3, imported.Imported)
	assert.Equal(t, 0, imported.Failed)

	assert.Equal(t, transaction.TypeExpense, store.saved[0].Type)
	assert.Equal(t, categorization.CategoryTransport, store.saved[0].Category)
	assert.Equal(t, transaction.TypeIncome, store.saved[1].Type)
	assert.Equal(t, categorization.CategoryEntertainment, store.saved[2].Category)
}

func TestXlsxStatementFlow(t *testing.T) {
	svc := newPipeline(t, "", "")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"date", "description", "amount"},
		{"2024-01-15", "SHELL GAS", "-40.00"},
		{"2024-01-16", "DIRECT DEPOSIT EMPLOYER", "500.00"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	result, err := svc.ProcessUpload(context.Background(), ingestservice.Upload{
		Bytes:     buf.Bytes(),
		MediaType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Filename:  "statement.xlsx",
	})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, categorization.CategoryTransport, result.Transactions[0].Category)
	assert.Equal(t, transaction.TypeIncome, result.Transactions[1].Type)
}

func TestPdfStatementFlow(t *testing.T) {
	pdfText := "ACME BANK\n" +
		"01/15/2024 COFFEE SHOP 4.50\n" +
		"01/16/2024 SALARY DEPOSIT +2500.00\n"
	svc := newPipeline(t, "", pdfText)

	result, err := svc.ProcessUpload(context.Background(), ingestservice.Upload{
		Bytes:     []byte("%PDF-1.4"),
		MediaType: "application/pdf",
		Filename:  "statement.pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, ingestservice.ResultTypePdf, result.Type)
	require.Len(t, result.Transactions, 2)
	for _, c := range result.Transactions {
		require.NoError(t, c.Validate())
	}
}
