// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/artifact"
)

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	artifacts *artifact.Manager
	logger    *slog.Logger
}

// NewScheduler creates a new job scheduler.
func NewScheduler(artifacts *artifact.Manager, logger *slog.Logger) *Scheduler {
	// Standard 5-field format, no seconds
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		artifacts: artifacts,
		logger:    logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Orphaned artifact sweep: hourly, on the hour
	_, err := s.cron.AddFunc("0 * * * *", s.sweepArtifacts)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the artifact sweep (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.sweepArtifacts()
}

func (s *Scheduler) sweepArtifacts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.artifacts.Sweep(ctx); err != nil {
		s.logger.Error("artifact sweep failed", slog.Any("error", err))
	}
}
