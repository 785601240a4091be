// Package metrics registers the Prometheus instruments for the ingestion
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every pipeline instrument. One instance is shared across
// services; tests build their own with a private registry.
type Metrics struct {
	DocumentsProcessed  *prometheus.CounterVec
	DocumentsRejected   *prometheus.CounterVec
	CandidatesExtracted prometheus.Counter
	ImportsTotal        *prometheus.CounterVec
	ExtractionDuration  prometheus.Histogram
}

// New registers the pipeline metrics on the given registerer. Pass
// prometheus.DefaultRegisterer in production.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DocumentsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_documents_processed_total",
			Help: "Documents successfully processed, by document kind.",
		}, []string{"kind"}),
		DocumentsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_documents_rejected_total",
			Help: "Documents rejected before extraction, by reason.",
		}, []string{"reason"}),
		CandidatesExtracted: factory.NewCounter(prometheus.CounterOpts{
			Name: "ingest_candidates_extracted_total",
			Help: "Transaction candidates produced by extraction.",
		}),
		ImportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_imports_total",
			Help: "Bulk import items, by outcome.",
		}, []string{"outcome"}),
		ExtractionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ingest_extraction_duration_seconds",
			Help:    "Wall time of a full document extraction.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
