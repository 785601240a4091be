package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/finance-ingest/internal/domain/categorization"
	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e := NewExtractor(categorization.NewService(categorization.DefaultTaxonomy()), nil)
	e.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return e
}

func TestExtractTotalPrefersKeywordAnchor(t *testing.T) {
	e := newTestExtractor(t)

	// The membership number 9999.00 is larger than the real total; the
	// keyword anchor must win over the global maximum.
	text := "WHOLE FOODS MARKET\n" +
		"MEMBER 9999.00\n" +
		"BANANAS 1.99\n" +
		"TOTAL: $42.50\n"

	got := e.Extract(text)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("42.50")),
		"got %s", got.TotalAmount)
}

func TestExtractTotalLargestAnchoredWins(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"two anchors of the same keyword",
			"SOME STORE\nTotal: 10.00\nTotal: 42.50",
			"42.50",
		},
		{
			"larger amount behind a different keyword",
			"SOME STORE\nTotal: 10.00\nAmount due: 99.99",
			"99.99",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got.TotalAmount, tt.want)
		})
	}
}

func TestExtractTotalSingleDecimalDigit(t *testing.T) {
	e := newTestExtractor(t)

	// No keyword anchor; the fallback must still accept one-decimal tokens.
	got := e.Extract("CORNER KIOSK\nSNACK 8.5")
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("8.5")),
		"got %s", got.TotalAmount)
}

func TestExtractTotalGlobalMaxFallback(t *testing.T) {
	e := newTestExtractor(t)

	text := "CORNER DELI\nSANDWICH 8.75\nSODA 2.25\nthank you"
	got := e.Extract(text)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("8.75")),
		"got %s", got.TotalAmount)
}

func TestExtractTotalIgnoresImplausibleAmounts(t *testing.T) {
	e := newTestExtractor(t)

	// 15000.00 is outside the plausible receipt range.
	text := "SOME STORE\nREF 15000.00\nTOTAL 15000.00\nITEM 3.00"
	got := e.Extract(text)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("3.00")),
		"got %s", got.TotalAmount)
}

func TestExtractMerchant(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "STARBUCKS\n123 Main St\nTOTAL 4.50", "STARBUCKS"},
		{"skips leading date line", "01/02/2024\nTRADER JOES\nTOTAL 20.00", "TRADER JOES"},
		{"skips separator line", "****\nTARGET\nTOTAL 55.00", "TARGET"},
		{"empty text", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.text).MerchantName)
		})
	}
}

func TestExtractDateDefaultsToNow(t *testing.T) {
	e := newTestExtractor(t)

	withDate := e.Extract("SHOP\n15/01/2024\nTOTAL 9.99")
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), withDate.TransactionDate)

	withoutDate := e.Extract("SHOP\nTOTAL 9.99")
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), withoutDate.TransactionDate)
}

func TestExtractLineItems(t *testing.T) {
	e := newTestExtractor(t)

	text := "GROCERY MART\n" +
		"MILK 3.49\n" +
		"BREAD $2.99\n" +
		"X 0.50\n" + // single-char name rejected
		"TV 2500.00\n" + // implausible line item amount
		"SUBTOTAL 6.48\n" +
		"TAX 0.52\n" +
		"TOTAL 7.00\n"

	got := e.Extract(text)
	require.Len(t, got.LineItems, 2)
	assert.Equal(t, "MILK", got.LineItems[0].Name)
	assert.True(t, got.LineItems[0].Amount.Equal(decimal.RequireFromString("3.49")))
	assert.Equal(t, "BREAD", got.LineItems[1].Name)
	assert.True(t, got.LineItems[1].Amount.Equal(decimal.RequireFromString("2.99")))
}

func TestCategoryFromMerchant(t *testing.T) {
	e := newTestExtractor(t)

	got := e.Extract("UBER EATS\nTOTAL 18.20")
	assert.Equal(t, categorization.CategoryTransport, got.Category)

	unknown := e.Extract("RANDOM STORE 123\nTOTAL 5.00")
	assert.Equal(t, categorization.CategoryOther, unknown.Category)
}

func TestSuggestedCandidate(t *testing.T) {
	e := newTestExtractor(t)

	r := e.Extract("NETFLIX.COM\n01/06/2024\nTOTAL 15.49")
	candidate := e.SuggestedCandidate(r)

	assert.Equal(t, "Receipt from NETFLIX.COM", candidate.Description)
	assert.Equal(t, transaction.TypeExpense, candidate.Type)
	assert.Equal(t, transaction.PaymentMethodCreditCard, candidate.PaymentMethod)
	assert.Equal(t, categorization.CategoryEntertainment, candidate.Category)
	assert.True(t, candidate.Amount.Equal(decimal.RequireFromString("15.49")))
	require.NoError(t, candidate.Validate())
}
