package receipt

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/normalizer"
	"github.com/FACorreiaa/finance-ingest/pkg/money"
)

// Plausibility bounds for recovered amounts. Values outside the open interval
// are treated as OCR noise and discarded.
var (
	maxReceiptTotal = decimal.NewFromInt(10000)
	maxLineItem     = decimal.NewFromInt(1000)
)

// Keyword-anchored total patterns. The largest plausible amount anchored by
// any of these keywords wins; only when none yields a plausible amount does
// the extractor fall back to the largest plausible amount anywhere in the
// text.
var totalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)grand\s*total\s*[:\s]\s*\$?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)final\s*total\s*[:\s]\s*\$?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)\btotal\b\s*[:\s]\s*\$?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)\bamount\s*(?:due|paid|tendered)?\b\s*[:\s]\s*\$?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
	regexp.MustCompile(`(?i)\bsubtotal\b\s*[:\s]\s*\$?\s*(\d+(?:,\d{3})*(?:\.\d{1,2})?)`),
}

// Any money-looking token, used by the global-maximum fallback. One or two
// decimal digits, matching what the keyword patterns accept.
var amountToken = regexp.MustCompile(`\$?\s*\b(\d+(?:,\d{3})*\.\d{1,2})\b`)

// extractTotal prefers the largest keyword-anchored plausible amount, then
// falls back to the largest plausible amount anywhere in the text. A receipt
// with no plausible amount reports a zero total.
func extractTotal(lines []string) decimal.Decimal {
	text := strings.Join(lines, "\n")

	best := decimal.Zero
	for _, pattern := range totalPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if d, ok := plausibleAmount(match[1], maxReceiptTotal); ok && d.GreaterThan(best) {
				best = d
			}
		}
	}
	if best.IsPositive() {
		return best
	}

	for _, match := range amountToken.FindAllStringSubmatch(text, -1) {
		if d, ok := plausibleAmount(match[1], maxReceiptTotal); ok && d.GreaterThan(best) {
			best = d
		}
	}
	return best
}

func plausibleAmount(raw string, max decimal.Decimal) (decimal.Decimal, bool) {
	d, err := money.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, false
	}
	if !d.IsPositive() || d.GreaterThanOrEqual(max) {
		return decimal.Zero, false
	}
	return d, true
}

const maxMerchantLen = 50

// Lines that are clearly not a merchant name: bare dates, bare amounts,
// phone numbers and separator runs.
var nonMerchantLine = regexp.MustCompile(`^[\d\s/:.,$*=-]+$`)

// extractMerchant picks the merchant name from the receipt header: the first
// of the top three lines that is longer than two characters, is not digit-led
// (dates, amounts), is not a separator run, and does not mention
// "receipt"/"total". Falls back to the first line truncated to 50 characters.
func extractMerchant(lines []string) string {
	limit := 3
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if len(line) <= 2 || digitLed(line) || nonMerchantLine.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "receipt") || strings.Contains(lower, "total") {
			continue
		}
		return truncate(line, maxMerchantLen)
	}
	if len(lines) > 0 {
		return truncate(lines[0], maxMerchantLen)
	}
	return ""
}

func digitLed(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n])
}

// extractDate finds the first parseable date in the text; receipts without a
// recognizable date get the extraction time.
func (e *Extractor) extractDate(text string) time.Time {
	if t, ok := normalizer.FindDate(text); ok {
		return t
	}
	return e.now()
}

// Line item shapes, in priority order: "name $1.23" with and without a
// currency symbol, then "name 2 @ 1.50 3.00" quantity lines keyed on the
// trailing amount.
var lineItemPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(.{2,}?)\s+\$\s*(\d{1,3}(?:,\d{3})*\.\d{2})$`),
	regexp.MustCompile(`^(.{2,}?)\s+(\d{1,3}(?:,\d{3})*\.\d{2})$`),
	regexp.MustCompile(`^(.{2,}?)\s+\d+\s*@\s*[\d.]+\s+(\d{1,3}(?:,\d{3})*\.\d{2})$`),
}

// Lines matching a total keyword are summary rows, not purchases.
var summaryLine = regexp.MustCompile(`(?i)\b(sub)?total\b|\bamount\b|\btax\b|\bchange\b|\bcash\b|\btender\b|\bbalance\b|\bvisa\b|\bmastercard\b|\bdebit\b|\bcredit\b`)

// extractLineItems recovers purchased items from the receipt body. Summary
// rows and implausible amounts are skipped; an empty result is normal for
// low-quality scans.
func extractLineItems(lines []string) []LineItem {
	var items []LineItem
	for _, line := range lines {
		if summaryLine.MatchString(line) {
			continue
		}
		for _, pattern := range lineItemPatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			name := normalizer.CleanDescription(match[1])
			if len(name) <= 1 {
				break
			}
			if d, ok := plausibleAmount(match[2], maxLineItem); ok {
				items = append(items, LineItem{Name: name, Amount: d})
			}
			break
		}
	}
	return items
}

// splitLines breaks raw text into trimmed, non-empty lines.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
