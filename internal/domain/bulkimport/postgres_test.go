package bulkimport

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
)

func TestPostgresStore_SaveCandidate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	c := transaction.Candidate{
		Date:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description:   "Coffee Shop",
		Amount:        decimal.RequireFromString("4.50"),
		Type:          transaction.TypeExpense,
		Category:      "Food & Dining",
		PaymentMethod: transaction.PaymentMethodCreditCard,
	}

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs("user-1", c.Date, c.Description, c.Amount, "expense", c.Category, c.PaymentMethod).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.SaveCandidate(context.Background(), "user-1", c))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveCandidatePropagatesError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	c := transaction.Candidate{
		Date:          time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description:   "Coffee Shop",
		Amount:        decimal.RequireFromString("4.50"),
		Type:          transaction.TypeExpense,
		Category:      "Food & Dining",
		PaymentMethod: transaction.PaymentMethodCreditCard,
	}

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs("user-1", c.Date, c.Description, c.Amount, "expense", c.Category, c.PaymentMethod).
		WillReturnError(errors.New("connection reset"))

	err = store.SaveCandidate(context.Background(), "user-1", c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgresStore_RejectsInvalidCandidate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	err = store.SaveCandidate(context.Background(), "user-1", transaction.Candidate{})
	require.ErrorIs(t, err, transaction.ErrInvalidDate)
	// No SQL was issued for the invalid candidate.
	require.NoError(t, mock.ExpectationsWereMet())
}
