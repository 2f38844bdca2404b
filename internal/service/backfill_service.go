package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"receiptflow/internal/config"
	"receiptflow/internal/domain"
	"receiptflow/internal/port"
)

// BackfillReport summarizes one classification backfill pass.
type BackfillReport struct {
	Processed int                           `json:"processed"`
	Details   []domain.ClassificationResult `json:"details"`
}

// BackfillService classifies previously uncategorized page records in bounded
// batches. Per-row model failures are tolerated; database failures abort the
// whole batch.
type BackfillService interface {
	Process(ctx context.Context) (*BackfillReport, error)
}

type backfillService struct {
	repo       port.PageRecordRepository
	classifier port.ReceiptClassifier
	batchSize  int
	minTextLen int
}

// NewBackfillService creates a new BackfillService.
func NewBackfillService(repo port.PageRecordRepository, cls port.ReceiptClassifier, cfg *config.BackfillConfig) BackfillService {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	minTextLen := cfg.MinTextLen
	if minTextLen <= 0 {
		minTextLen = 10
	}
	return &backfillService{
		repo:       repo,
		classifier: cls,
		batchSize:  batchSize,
		minTextLen: minTextLen,
	}
}

func (s *backfillService) Process(ctx context.Context) (*BackfillReport, error) {
	runID := uuid.New().String()[:8]

	batch, err := s.repo.BeginBatch(ctx)
	if err != nil {
		return nil, fmt.Errorf("opening backfill batch: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer func() { _ = batch.Rollback() }()

	rows, err := batch.SelectPending(ctx, s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("selecting pending rows: %w", err)
	}
	log.Printf("backfill[%s]: %d pending rows", runID, len(rows))

	report := &BackfillReport{Details: []domain.ClassificationResult{}}
	for _, row := range rows {
		if !s.hasEnoughText(row.OCRText) {
			// Too little signal to classify; stays pending for the next run.
			log.Printf("backfill[%s]: skipping id=%d, ocr text absent or too short", runID, row.ID)
			continue
		}

		start := time.Now()
		label, clsErr := s.classifier.Classify(ctx, strings.TrimSpace(*row.OCRText))
		elapsed := time.Since(start).Seconds()

		if clsErr != nil {
			log.Printf("backfill[%s]: classification failed for id=%d: %v", runID, row.ID, clsErr)
			if err := batch.MarkFailed(ctx, row.ID, clsErr.Error(), elapsed); err != nil {
				return nil, fmt.Errorf("marking row %d failed: %w", row.ID, err)
			}
			report.Processed++
			report.Details = append(report.Details, domain.ClassificationResult{
				ID:       row.ID,
				Status:   domain.CategoryStatusFailed,
				Error:    clsErr.Error(),
				Duration: elapsed,
			})
			continue
		}

		if err := batch.MarkClassified(ctx, row.ID, label, elapsed); err != nil {
			return nil, fmt.Errorf("marking row %d classified: %w", row.ID, err)
		}
		log.Printf("backfill[%s]: id=%d type=%s (%.2fs)", runID, row.ID, label, elapsed)
		report.Processed++
		report.Details = append(report.Details, domain.ClassificationResult{
			ID:       row.ID,
			Type:     label,
			Status:   domain.CategoryStatusClassified,
			Duration: elapsed,
		})
	}

	if err := batch.Commit(); err != nil {
		return nil, fmt.Errorf("committing backfill batch: %w", err)
	}
	log.Printf("backfill[%s]: done, processed=%d", runID, report.Processed)
	return report, nil
}

func (s *backfillService) hasEnoughText(text *string) bool {
	if text == nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(*text)) >= s.minTextLen
}
