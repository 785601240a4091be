// Package money provides precise monetary parsing and formatting for the
// extraction pipeline. Amounts are shopspring/decimal values; display
// formatting goes through go-money for correct ISO-4217 handling.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a document carries no currency information.
const DefaultCurrency = "USD"

var currencySymbols = []string{"$", "€", "£", "R$", "¥", "₹"}

// CleanAmount strips currency symbols, thousands separators and surrounding
// whitespace from a raw amount token, preserving the sign.
func CleanAmount(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	for _, sym := range currencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	// Accounting-style parentheses mean negative.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = "-" + strings.Trim(s, "()")
	}
	s = strings.ReplaceAll(s, ",", "")
	return s
}

// ParseAmount parses a raw amount token into a decimal, tolerating currency
// symbols and comma grouping. The sign is preserved; callers decide what a
// negative amount means.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := CleanAmount(raw)
	if s == "" || s == "+" || s == "-" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	s = strings.TrimPrefix(s, "+")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d, nil
}

// Format renders an amount for display in the given currency, e.g.
// Format(decimal 42.5, "USD") -> "$42.50".
func Format(amount decimal.Decimal, currencyCode string) string {
	currency := gomoney.GetCurrency(currencyCode)
	if currency == nil {
		currency = gomoney.GetCurrency(DefaultCurrency)
	}
	multiplier := decimal.New(1, int32(currency.Fraction))
	minor := amount.Mul(multiplier).Round(0).IntPart()
	return gomoney.New(minor, currency.Code).Display()
}
