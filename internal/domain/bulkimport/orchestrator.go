// Package bulkimport persists batches of extracted transaction candidates
// with per-item failure isolation: one bad candidate never aborts the batch.
package bulkimport

import (
	"context"
	"log/slog"

	"github.com/FACorreiaa/finance-ingest/internal/domain/transaction"
	"github.com/FACorreiaa/finance-ingest/pkg/metrics"
)

// Store persists a single validated candidate.
type Store interface {
	SaveCandidate(ctx context.Context, userID string, c transaction.Candidate) error
}

// ImportError records one failed item with enough context for the client to
// fix and resubmit it: its position in the submitted batch, the candidate as
// submitted, and the failure reason.
type ImportError struct {
	Index       int                   `json:"index"`
	Transaction transaction.Candidate `json:"transaction"`
	Error       string                `json:"error"`
}

// Result summarizes a batch import.
type Result struct {
	Imported     int           `json:"imported"`
	Failed       int           `json:"errors"`
	ErrorDetails []ImportError `json:"errorDetails"`
}

// Orchestrator runs batch imports against a Store.
type Orchestrator struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewOrchestrator(store Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{store: store, logger: logger}
}

// WithMetrics attaches the pipeline metrics; every item's outcome is then
// counted on ImportsTotal.
func (o *Orchestrator) WithMetrics(m *metrics.Metrics) *Orchestrator {
	o.metrics = m
	return o
}

// Import persists candidates one by one in submission order. Validation and
// storage failures are recorded per item and the loop continues; the result
// always accounts for every submitted candidate. Only a cancelled context
// stops the batch early.
func (o *Orchestrator) Import(ctx context.Context, userID string, candidates []transaction.Candidate) (Result, error) {
	result := Result{ErrorDetails: []ImportError{}}

	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := candidate.Validate(); err != nil {
			result.recordFailure(i, candidate, err)
			o.countOutcome("failed")
			continue
		}
		if err := o.store.SaveCandidate(ctx, userID, candidate); err != nil {
			o.logger.Warn("candidate import failed",
				slog.Int("index", i),
				slog.String("description", candidate.Description),
				slog.Any("error", err),
			)
			result.recordFailure(i, candidate, err)
			o.countOutcome("failed")
			continue
		}
		result.Imported++
		o.countOutcome("imported")
	}

	o.logger.Info("batch import finished",
		slog.String("user_id", userID),
		slog.Int("submitted", len(candidates)),
		slog.Int("imported", result.Imported),
		slog.Int("failed", result.Failed),
	)
	return result, nil
}

func (o *Orchestrator) countOutcome(outcome string) {
	if o.metrics == nil {
		return
	}
	o.metrics.ImportsTotal.WithLabelValues(outcome).Inc()
}

func (r *Result) recordFailure(index int, c transaction.Candidate, err error) {
	r.Failed++
	r.ErrorDetails = append(r.ErrorDetails, ImportError{
		Index:       index,
		Transaction: c,
		Error:       err.Error(),
	})
}
