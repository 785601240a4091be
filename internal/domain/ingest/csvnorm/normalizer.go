// Package csvnorm normalizes arbitrary bank CSV exports into canonical rows.
// Header names are matched case-insensitively against a synonym table; rows
// that cannot be normalized are rejected silently so one bad row never sinks
// the file.
package csvnorm

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/normalizer"
	"github.com/FACorreiaa/finance-ingest/pkg/money"
)

// rawRow binds every recognized header synonym. Columns a file does not have
// simply stay empty; coalescing picks the first populated synonym per field.
type rawRow struct {
	Date            string `csv:"date"`
	TransactionDate string `csv:"transaction_date"`
	PostedDate      string `csv:"posted_date"`

	Description string `csv:"description"`
	Memo        string `csv:"memo"`
	Note        string `csv:"note"`
	Merchant    string `csv:"merchant"`
	Payee       string `csv:"payee"`

	Amount            string `csv:"amount"`
	TransactionAmount string `csv:"transaction_amount"`
	Value             string `csv:"value"`

	Category      string `csv:"category"`
	Type          string `csv:"type"`
	PaymentMethod string `csv:"payment_method"`
	PaymentMeth   string `csv:"paymentmethod"`
}

// Row is one normalized statement line. Amount keeps its sign; RawAmount
// preserves the original token for sign/keyword inspection downstream.
type Row struct {
	Date          time.Time
	Description   string
	Amount        decimal.Decimal
	RawAmount     string
	Category      string
	Type          string
	PaymentMethod string
}

// Normalizer turns CSV bytes into canonical rows.
type Normalizer struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize reads a CSV document and returns every row that could be
// normalized. Unparseable rows are dropped with a debug log; an empty or
// header-only file yields an empty slice and no error.
func (n *Normalizer) Normalize(r io.Reader) ([]Row, error) {
	records, err := readRecords(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return n.NormalizeRecords(records), nil
}

// NormalizeRecords normalizes pre-split records, header row first. This is
// the entry point for spreadsheet sources that already have cell values.
func (n *Normalizer) NormalizeRecords(records [][]string) []Row {
	if len(records) < 2 {
		return nil
	}

	raws, err := bindRecords(records)
	if err != nil {
		n.logger.Warn("csv header binding failed", slog.Any("error", err))
		return nil
	}

	rows := make([]Row, 0, len(raws))
	for i, raw := range raws {
		row, err := normalizeRow(raw)
		if err != nil {
			n.logger.Debug("row rejected",
				slog.Int("row", i+1),
				slog.Any("error", err),
			)
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// readRecords parses CSV bytes leniently: variable field counts are allowed
// and short rows are padded during binding.
func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// bindRecords lowercases and trims the header row, pads short rows, then
// hands the result to gocsv for struct binding.
func bindRecords(records [][]string) ([]*rawRow, error) {
	header := records[0]
	normalized := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF") // Excel exports often carry a BOM
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(normalized); err != nil {
		return nil, err
	}
	for _, record := range records[1:] {
		padded := record
		if len(padded) < len(header) {
			padded = append(append([]string{}, record...), make([]string, len(header)-len(record))...)
		} else if len(padded) > len(header) {
			padded = padded[:len(header)]
		}
		if err := w.Write(padded); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	var raws []*rawRow
	if err := gocsv.UnmarshalBytes(buf.Bytes(), &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

func normalizeRow(raw *rawRow) (Row, error) {
	dateToken := coalesce(raw.Date, raw.TransactionDate, raw.PostedDate)
	date, err := normalizer.ParseFlexibleDate(dateToken)
	if err != nil {
		return Row{}, fmt.Errorf("date: %w", err)
	}

	description := normalizer.CleanDescription(
		coalesce(raw.Description, raw.Memo, raw.Note, raw.Merchant, raw.Payee),
	)
	if description == "" {
		return Row{}, fmt.Errorf("missing description")
	}

	rawAmount := coalesce(raw.Amount, raw.TransactionAmount, raw.Value)
	amount, err := money.ParseAmount(rawAmount)
	if err != nil {
		return Row{}, fmt.Errorf("amount: %w", err)
	}
	if amount.IsZero() {
		return Row{}, fmt.Errorf("zero amount")
	}

	return Row{
		Date:          date,
		Description:   description,
		Amount:        amount,
		RawAmount:     strings.TrimSpace(rawAmount),
		Category:      strings.TrimSpace(raw.Category),
		Type:          strings.ToLower(strings.TrimSpace(raw.Type)),
		PaymentMethod: strings.ToLower(strings.TrimSpace(coalesce(raw.PaymentMethod, raw.PaymentMeth))),
	}, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
