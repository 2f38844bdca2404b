// Command classifier runs the classification backfill service: bounded
// batches of unclassified page records are labeled via the Gemini API,
// on demand through POST /process or on a poll interval when configured.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"receiptflow/internal/classifier/gemini"
	"receiptflow/internal/config"
	"receiptflow/internal/handler"
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

	pageRepo := postgres.NewPageRecordRepo(db)
	cls := gemini.NewClassifier(&cfg.Classify)
	backfillSvc := service.NewBackfillService(pageRepo, cls, &cfg.Backfill)

	// Optional polling mode alongside the on-demand endpoint.
	if cfg.Backfill.PollIntervalSecs > 0 {
		worker := service.NewBackfillWorker(backfillSvc,
			time.Duration(cfg.Backfill.PollIntervalSecs)*time.Second)
		go worker.Start(context.Background())
	}

	backfillH := handler.NewBackfillHandler(backfillSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.SetupClassifier(cfg, backfillH, healthH)

	log.Printf("Classifier service starting on %s (model=%s, batch=%d)",
		cfg.Server.Port, cfg.Classify.Model, cfg.Backfill.BatchSize)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
