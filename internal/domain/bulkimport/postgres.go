package bulkimport

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
)

// PgxPool is the slice of pgxpool.Pool the store needs; pgxmock satisfies it
// in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore persists candidates into the transactions table.
type PostgresStore struct {
	pool PgxPool
}

func NewPostgresStore(pool PgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const insertCandidate = `
	INSERT INTO transactions (user_id, occurred_on, description, amount, type, category, payment_method)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// SaveCandidate inserts one candidate. Candidates are validated by the
// orchestrator before they get here; the check is repeated so the store is
// safe to call directly.
func (s *PostgresStore) SaveCandidate(ctx context.Context, userID string, c transaction.Candidate) error {
	if err := c.Validate(); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, insertCandidate,
		userID,
		c.Date,
		c.Description,
		c.Amount,
		string(c.Type),
		c.Category,
		c.PaymentMethod,
	)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}
