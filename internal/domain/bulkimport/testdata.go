package bulkimport

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/finance-ingest/internal/domain/categorization"
	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
)

// FakeCandidates generates n valid candidates for tests and local seeding.
// The faker is seeded by the caller when determinism matters.
func FakeCandidates(n int) []transaction.Candidate {
	categories := []string{
		categorization.CategoryFoodDining,
		categorization.CategoryTransport,
		categorization.CategoryShopping,
		categorization.CategoryEntertainment,
		categorization.CategoryOther,
	}

	out := make([]transaction.Candidate, 0, n)
	for i := 0; i < n; i++ {
		txType := transaction.TypeExpense
		if gofakeit.Bool() {
			txType = transaction.TypeIncome
		}
		out = append(out, transaction.Candidate{
			Date:          gofakeit.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()),
			Description:   gofakeit.Company(),
			Amount:        decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
			Type:          txType,
			Category:      categories[gofakeit.Number(0, len(categories)-1)],
			PaymentMethod: transaction.PaymentMethodCreditCard,
		})
	}
	return out
}
