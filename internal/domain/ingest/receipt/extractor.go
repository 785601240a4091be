// Package receipt turns raw OCR or PDF text into structured receipt fields.
// Every field is recovered independently on a best-effort basis; a field that
// cannot be recovered gets a deterministic default instead of failing the
// document.
package receipt

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
	"github.com/FACorreiaa/finance-ingest/pkg/money"
)

// CategoryInferrer maps a merchant or description string to a category name.
type CategoryInferrer interface {
	Infer(description string) string
}

// LineItem is a single purchased item recovered from the receipt body.
type LineItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"price"`
}

// ExtractedReceipt carries all the fields recovered from one receipt.
type ExtractedReceipt struct {
	MerchantName    string          `json:"merchantName"`
	TransactionDate time.Time       `json:"date"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	LineItems       []LineItem      `json:"items"`
	Category        string          `json:"suggestedCategory"`
	RawText         string          `json:"rawText"`
}

// Extractor recovers receipt fields from raw text.
type Extractor struct {
	categories CategoryInferrer
	now        func() time.Time
	logger     *slog.Logger
}

// NewExtractor builds a receipt extractor. The inferrer is required; now and
// logger default sensibly when nil.
func NewExtractor(categories CategoryInferrer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		categories: categories,
		now:        time.Now,
		logger:     logger,
	}
}

// Extract recovers every receipt field from rawText. It never fails: fields
// that cannot be recovered fall back to their documented defaults (zero
// amount, extraction-time date, empty merchant, no line items).
func (e *Extractor) Extract(rawText string) ExtractedReceipt {
	lines := splitLines(rawText)

	out := ExtractedReceipt{
		MerchantName:    extractMerchant(lines),
		TotalAmount:     extractTotal(lines),
		LineItems:       extractLineItems(lines),
		TransactionDate: e.extractDate(rawText),
		RawText:         rawText,
	}
	out.Category = e.categories.Infer(out.MerchantName)

	e.logger.Debug("receipt extracted",
		slog.String("merchant", out.MerchantName),
		slog.String("total", money.Format(out.TotalAmount, money.DefaultCurrency)),
		slog.Int("line_items", len(out.LineItems)),
		slog.String("category", out.Category),
	)
	return out
}

// SuggestedCandidate maps an extracted receipt onto a pre-filled transaction
// candidate. Receipts are always expenses; the payment method defaults to
// credit card since receipts rarely state one.
func (e *Extractor) SuggestedCandidate(r ExtractedReceipt) transaction.Candidate {
	description := "Receipt purchase"
	if r.MerchantName != "" {
		description = "Receipt from " + r.MerchantName
	}
	return transaction.Candidate{
		Date:          r.TransactionDate,
		Description:   description,
		Amount:        r.TotalAmount,
		Type:          transaction.TypeExpense,
		Category:      r.Category,
		PaymentMethod: transaction.PaymentMethodCreditCard,
	}
}
