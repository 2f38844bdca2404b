package port

import (
	"context"

	"receiptflow/internal/domain"
)

// PageRecordRepository provides persistence for page records.
type PageRecordRepository interface {
	// Upsert writes one page record, replacing any existing row for the same
	// (file_id, page_number). Sets rec.ID and rec.UploadedAt on return.
	Upsert(ctx context.Context, rec *domain.PageRecord) error

	// ListAll returns every page record ordered by upload time (for export).
	ListAll(ctx context.Context) ([]domain.PageRecord, error)

	// BeginBatch opens a classification batch transaction. The caller must
	// Commit or Rollback on every path.
	BeginBatch(ctx context.Context) (ClassificationBatch, error)
}

// ClassificationBatch is a transaction-scoped view of the page records table
// used by one backfill pass. All updates commit together or not at all.
type ClassificationBatch interface {
	// SelectPending locks and returns up to limit unclassified rows. Rows
	// locked by a concurrent batch are skipped rather than waited on.
	SelectPending(ctx context.Context, limit int) ([]domain.ClassificationCandidate, error)

	// MarkClassified records a category label and the model call duration.
	MarkClassified(ctx context.Context, id int64, category string, elapsedSecs float64) error

	// MarkFailed records a failed classification with its reason. The row is
	// excluded from future passes.
	MarkFailed(ctx context.Context, id int64, reason string, elapsedSecs float64) error

	Commit() error
	Rollback() error
}

// StatsRepository provides aggregate page counts for the dashboard.
type StatsRepository interface {
	GetStats(ctx context.Context) (*domain.Stats, error)
}
