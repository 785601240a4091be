// Package transaction defines the candidate transaction value objects produced
// by the extraction pipeline and consumed by the bulk importer.
package transaction

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies a candidate as money in or money out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Payment methods defaulted by extraction source.
const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCreditCard   = "credit_card"
)

// Candidate is an unpersisted transaction record awaiting user confirmation
// or batch import. It is a value object: built once by an extractor, never
// mutated afterwards.
type Candidate struct {
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Type          Type            `json:"type"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
}

var (
	ErrInvalidDate   = errors.New("candidate date is not a valid calendar date")
	ErrEmptyDesc     = errors.New("candidate description is empty")
	ErrNonPositive   = errors.New("candidate amount must be positive")
	ErrInvalidType   = errors.New("candidate type must be income or expense")
	ErrEmptyCategory = errors.New("candidate category is empty")
)

// Validate checks the invariants every candidate must satisfy before it is
// allowed to reach persistence.
func (c Candidate) Validate() error {
	if c.Date.IsZero() {
		return ErrInvalidDate
	}
	if c.Description == "" {
		return ErrEmptyDesc
	}
	if !c.Amount.IsPositive() {
		return ErrNonPositive
	}
	if c.Type != TypeIncome && c.Type != TypeExpense {
		return fmt.Errorf("%w: got %q", ErrInvalidType, c.Type)
	}
	if c.Category == "" {
		return ErrEmptyCategory
	}
	return nil
}
