package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/FACorreiaa/finance-ingest/internal/domain/bulkimport"
	"github.com/FACorreiaa/finance-ingest/internal/domain/categorization"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/artifact"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/csvnorm"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/extract"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/receipt"
	ingestservice "github.com/FACorreiaa/finance-ingest/internal/domain/ingest/service"
	"github.com/FACorreiaa/finance-ingest/internal/domain/ingest/statement"
	"github.com/FACorreiaa/finance-ingest/pkg/config"
	"github.com/FACorreiaa/finance-ingest/pkg/cron"
	"github.com/FACorreiaa/finance-ingest/pkg/db"
	"github.com/FACorreiaa/finance-ingest/pkg/metrics"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Infrastructure
	ArtifactManager *artifact.Manager
	Metrics         *metrics.Metrics
	Scheduler       *cron.Scheduler

	// Stores
	TransactionStore *bulkimport.PostgresStore

	// Services
	CategorizationService *categorization.Service
	IngestService         *ingestservice.IngestService
	ImportOrchestrator    *bulkimport.Orchestrator
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}
	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initServices initializes the ingestion pipeline and its collaborators
func (d *Dependencies) initServices() error {
	artifacts, err := artifact.NewManager(
		d.Config.Upload.TempDir,
		d.Config.Upload.ArtifactTTL,
		d.Logger,
	)
	if err != nil {
		return fmt.Errorf("failed to init artifact manager: %w", err)
	}
	d.ArtifactManager = artifacts

	d.Metrics = metrics.New(prometheus.DefaultRegisterer)

	// Categorization service for candidate enrichment
	d.CategorizationService = categorization.NewService(categorization.DefaultTaxonomy())
	d.Logger.Info("categorization rules loaded",
		slog.Int("rules", d.CategorizationService.RuleCount()),
	)

	extractCfg := extract.Config{
		Tesseract: d.Config.OCR.Tesseract,
		Pdftotext: d.Config.OCR.Pdftotext,
		Language:  d.Config.OCR.Language,
		DPI:       d.Config.OCR.DPI,
	}

	d.IngestService = ingestservice.New(ingestservice.Config{
		OCR:            extract.NewTesseractOCR(extractCfg, d.Logger),
		PDF:            extract.NewPdfToText(extractCfg, d.Logger),
		Artifacts:      artifacts,
		Receipts:       receipt.NewExtractor(d.CategorizationService, d.Logger),
		Statements:     statement.NewExtractor(d.CategorizationService, d.Logger),
		CSV:            csvnorm.New(d.Logger),
		MaxUploadBytes: d.Config.Upload.MaxUploadBytes,
		Logger:         d.Logger,
		Metrics:        d.Metrics,
	})

	// Bulk import with per-item failure isolation
	d.TransactionStore = bulkimport.NewPostgresStore(d.DB.Pool)
	d.ImportOrchestrator = bulkimport.NewOrchestrator(d.TransactionStore, d.Logger).
		WithMetrics(d.Metrics)

	// Hourly sweep for artifacts a crash left behind
	d.Scheduler = cron.NewScheduler(artifacts, d.Logger)
	if err := d.Scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	d.Logger.Info("services initialized")
	return nil
}

// Close releases long-lived resources in reverse init order.
func (d *Dependencies) Close() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
