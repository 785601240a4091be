// Package statement extracts transaction candidates from multi-transaction
// documents: PDF bank statements, normalized CSV rows and XLSX workbooks.
package statement

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/FACorreiaa/finance-ingest/internal/domain/categorization"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/csvnorm"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/normalizer"
	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
	"github.com/FACorreiaa/finance-ingest/pkg/money"
)

// CategoryInferrer maps a description to a category name.
type CategoryInferrer interface {
	Infer(description string) string
}

// Statement lines start with a date token and end with a signed amount;
// everything between is the description. One pattern per date form.
var linePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4})\s+(.+?)\s+([+-]?\$?\d+(?:,\d{3})*\.?\d{0,2})$`),
	regexp.MustCompile(`^(\d{1,2}-\d{1,2}-\d{4})\s+(.+?)\s+([+-]?\$?\d+(?:,\d{3})*\.?\d{0,2})$`),
	regexp.MustCompile(`^(\d{4}-\d{1,2}-\d{1,2})\s+(.+?)\s+([+-]?\$?\d+(?:,\d{3})*\.?\d{0,2})$`),
}

// Income markers in statement descriptions. A line is income when its amount
// carries an explicit plus sign or its description contains one of these.
var incomeKeywords = []string{"deposit", "salary", "payment received", "income"}

// Extractor turns statement text or normalized rows into candidates.
type Extractor struct {
	categories CategoryInferrer
	logger     *slog.Logger
}

func NewExtractor(categories CategoryInferrer, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{categories: categories, logger: logger}
}

// FromText scans PDF statement text line by line. Lines that do not match
// any transaction pattern are skipped; a statement with no matching lines
// yields an empty slice.
func (e *Extractor) FromText(text string) []transaction.Candidate {
	var candidates []transaction.Candidate
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, pattern := range linePatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			if c, ok := e.candidateFromLine(match[1], match[2], match[3]); ok {
				candidates = append(candidates, c)
			}
			break
		}
	}
	e.logger.Debug("statement text parsed", slog.Int("candidates", len(candidates)))
	return candidates
}

func (e *Extractor) candidateFromLine(dateToken, descToken, amountToken string) (transaction.Candidate, bool) {
	date, err := normalizer.ParseFlexibleDate(dateToken)
	if err != nil {
		return transaction.Candidate{}, false
	}
	amount, err := money.ParseAmount(amountToken)
	if err != nil || amount.IsZero() {
		return transaction.Candidate{}, false
	}

	description := normalizer.CleanDescription(descToken)
	txType := classifyLineType(amountToken, description)

	return transaction.Candidate{
		Date:          date,
		Description:   description,
		Amount:        amount.Abs(),
		Type:          txType,
		Category:      e.categorize(description, "", txType),
		PaymentMethod: transaction.PaymentMethodBankTransfer,
	}, true
}

// FromRows maps normalized CSV or spreadsheet rows onto candidates. The
// amount sign decides the type (negative expense, positive income); explicit
// type, category and payment method columns win over inference.
func (e *Extractor) FromRows(rows []csvnorm.Row) []transaction.Candidate {
	candidates := make([]transaction.Candidate, 0, len(rows))
	for _, row := range rows {
		txType := classifyRowType(row)

		paymentMethod := row.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = transaction.PaymentMethodBankTransfer
		}

		candidates = append(candidates, transaction.Candidate{
			Date:          row.Date,
			Description:   row.Description,
			Amount:        row.Amount.Abs(),
			Type:          txType,
			Category:      e.categorize(row.Description, row.Category, txType),
			PaymentMethod: paymentMethod,
		})
	}
	return candidates
}

// classifyLineType decides income vs expense for a PDF statement line, where
// amounts are usually unsigned: a leading plus sign or an income keyword
// marks income, everything else is an expense.
func classifyLineType(rawAmount, description string) transaction.Type {
	if strings.HasPrefix(strings.TrimSpace(rawAmount), "+") {
		return transaction.TypeIncome
	}
	lower := strings.ToLower(description)
	for _, keyword := range incomeKeywords {
		if strings.Contains(lower, keyword) {
			return transaction.TypeIncome
		}
	}
	return transaction.TypeExpense
}

// classifyRowType decides income vs expense for a normalized CSV/spreadsheet
// row. An explicit type column wins; otherwise the sign carries the meaning:
// negative amounts are expenses, positive amounts income.
func classifyRowType(row csvnorm.Row) transaction.Type {
	switch transaction.Type(strings.ToLower(strings.TrimSpace(row.Type))) {
	case transaction.TypeIncome:
		return transaction.TypeIncome
	case transaction.TypeExpense:
		return transaction.TypeExpense
	}
	if row.Amount.IsNegative() {
		return transaction.TypeExpense
	}
	return transaction.TypeIncome
}

// categorize respects an explicit category column, maps income lines to the
// Income category and infers the rest from the description.
func (e *Extractor) categorize(description, explicit string, txType transaction.Type) string {
	if explicit != "" {
		return explicit
	}
	if txType == transaction.TypeIncome {
		return categorization.CategoryIncome
	}
	return e.categories.Infer(description)
}
