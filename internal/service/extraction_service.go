package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"receiptflow/internal/config"
	"receiptflow/internal/domain"
	"receiptflow/internal/extract"
	"receiptflow/internal/port"
)

// Page processing statuses returned to the caller.
const (
	StatusSuccess        = "success"
	StatusTimeoutSkipped = "timeout_skipped"
)

// ProcessPageInput carries one page-OCR request.
type ProcessPageInput struct {
	Filepath        string
	PageNum         int
	FileID          int64
	Filename        string
	FullfilePath    string
	FolderTimestamp string
}

// ProcessPageResult is the outcome of one page-OCR request.
type ProcessPageResult struct {
	Status      string
	FileID      int64
	PageNumber  int
	TimeProcess *time.Time
	Extract     *domain.ExtractedFields
	Message     string
}

// ExtractionService runs the per-page OCR pipeline: engine invocation under a
// time budget, regex field extraction, and idempotent persistence.
type ExtractionService interface {
	ProcessPage(ctx context.Context, input *ProcessPageInput) (*ProcessPageResult, error)
}

type extractionService struct {
	repo    port.PageRecordRepository
	engine  port.OCREngine
	timeout time.Duration
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(repo port.PageRecordRepository, engine port.OCREngine, cfg *config.OCRConfig) ExtractionService {
	timeout := cfg.Timeout()
	if timeout == 0 {
		timeout = 180 * time.Second
	}
	return &extractionService{repo: repo, engine: engine, timeout: timeout}
}

func (s *extractionService) ProcessPage(ctx context.Context, input *ProcessPageInput) (*ProcessPageResult, error) {
	if _, err := os.Stat(input.Filepath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrFileNotFound
		}
		return nil, fmt.Errorf("checking page file: %w", err)
	}

	log.Printf("ocr started: %s (file_id=%d page=%d)", input.Filepath, input.FileID, input.PageNum)

	text, err := s.runOCR(ctx, input.Filepath)
	if err != nil {
		if errors.Is(err, domain.ErrOCRTimeout) {
			log.Printf("ocr timeout (>%s): %s", s.timeout, input.Filepath)
			return &ProcessPageResult{
				Status:     StatusTimeoutSkipped,
				FileID:     input.FileID,
				PageNumber: input.PageNum,
				Message:    fmt.Sprintf("OCR timeout after %d seconds. Skipped.", int(s.timeout.Seconds())),
			}, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrOCRFailed, err)
	}

	timeProcess := time.Now().UTC()
	fields := extract.Fields(text)

	rec := &domain.PageRecord{
		FileID:                            input.FileID,
		PageNumber:                        input.PageNum,
		OCRText:                           &text,
		TimeProcess:                       &timeProcess,
		ExtractTaxID:                      fields.TaxID,
		ExtractTaxIDTimeprocess:           &fields.Timeprocess,
		ExtractReceipt:                    fields.Receipt,
		ExtractReceiptTimeprocess:         &fields.Timeprocess,
		ExtractEntity:                     fields.Entity,
		ExtractEntityTimeprocess:          &fields.Timeprocess,
		ExtractNumberOfReceipt:            fields.NumberOfReceipt,
		ExtractNumberOfReceiptTimeprocess: &fields.Timeprocess,
		CategoryStatus:                    domain.CategoryStatusPending,
		Filename:                          input.Filename,
		FullfilePath:                      input.FullfilePath,
		FolderTimestamp:                   input.FolderTimestamp,
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}

	return &ProcessPageResult{
		Status:      StatusSuccess,
		FileID:      input.FileID,
		PageNumber:  input.PageNum,
		TimeProcess: &timeProcess,
		Extract:     &fields,
	}, nil
}

type ocrOutcome struct {
	text string
	err  error
}

// runOCR invokes the engine under the configured time budget. The engine
// receives the deadline context; engines that cannot be interrupted are
// abandoned on expiry and their eventual result discarded.
func (s *extractionService) runOCR(ctx context.Context, path string) (string, error) {
	ocrCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan ocrOutcome, 1)
	go func() {
		text, err := s.engine.ExtractText(ocrCtx, path)
		done <- ocrOutcome{text: text, err: err}
	}()

	select {
	case <-ocrCtx.Done():
		if errors.Is(ocrCtx.Err(), context.DeadlineExceeded) {
			return "", domain.ErrOCRTimeout
		}
		return "", ocrCtx.Err()
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) {
				return "", domain.ErrOCRTimeout
			}
			return "", out.err
		}
		return out.text, nil
	}
}
