package service

import (
	"context"
	"log"
	"time"
)

// BackfillWorker runs the classification backfill on a fixed interval, for
// deployments that prefer polling over the on-demand endpoint. Each tick runs
// one bounded batch; a tick that finds no rows is a cheap no-op.
type BackfillWorker struct {
	backfill BackfillService
	interval time.Duration
}

// NewBackfillWorker creates a new BackfillWorker.
func NewBackfillWorker(backfill BackfillService, interval time.Duration) *BackfillWorker {
	return &BackfillWorker{backfill: backfill, interval: interval}
}

// Start runs the polling loop until ctx is canceled. Batches do not overlap:
// the next tick waits for the previous batch to finish.
func (w *BackfillWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Printf("backfillWorker: started (poll=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("backfillWorker: shutdown")
			return
		case <-ticker.C:
			report, err := w.backfill.Process(ctx)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("backfillWorker: batch error: %v", err)
				continue
			}
			if report.Processed > 0 {
				log.Printf("backfillWorker: processed %d rows", report.Processed)
			}
		}
	}
}
