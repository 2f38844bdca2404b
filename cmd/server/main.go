// Command server runs the extraction service: per-page OCR with a bounded
// time budget, regex field extraction, and persistence to uploaded_files_page.
package main

import (
	"fmt"
	"log"

	"receiptflow/internal/config"
	"receiptflow/internal/handler"
	"receiptflow/internal/ocr"
	"receiptflow/internal/ocr/tesseract"
	"receiptflow/internal/ocr/typhoon"
	"receiptflow/internal/port"
	"receiptflow/internal/repository/postgres"
	"receiptflow/internal/router"
	"receiptflow/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	pageRepo := postgres.NewPageRecordRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize OCR engine
	ocr.RegisterEngine("typhoon", func(c *config.OCRConfig) (port.OCREngine, error) {
		return typhoon.NewEngine(c), nil
	})
	ocr.RegisterEngine("tesseract", func(c *config.OCRConfig) (port.OCREngine, error) {
		return tesseract.NewEngine(c), nil
	})
	engine, err := ocr.NewEngine(&cfg.OCR)
	if err != nil {
		return fmt.Errorf("failed to initialize ocr engine: %w", err)
	}

	// Initialize services
	extractionSvc := service.NewExtractionService(pageRepo, engine, &cfg.OCR)
	statsSvc := service.NewStatsService(statsRepo)
	reportSvc := service.NewReportService(pageRepo)

	// Initialize handlers
	pageH := handler.NewPageHandler(extractionSvc)
	statsH := handler.NewStatsHandler(statsSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.SetupExtraction(cfg, pageH, statsH, reportH, healthH)

	log.Printf("Extraction service starting on %s (ocr engine=%s, timeout=%s)",
		cfg.Server.Port, cfg.OCR.Engine, cfg.OCR.Timeout())
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
