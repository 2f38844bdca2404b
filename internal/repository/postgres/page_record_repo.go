package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"receiptflow/internal/domain"
	"receiptflow/internal/port"
)

type pageRecordRepo struct {
	db *sqlx.DB
}

// NewPageRecordRepo creates a new PostgreSQL-backed PageRecordRepository.
func NewPageRecordRepo(db *sqlx.DB) port.PageRecordRepository {
	return &pageRecordRepo{db: db}
}

func (r *pageRecordRepo) Upsert(ctx context.Context, rec *domain.PageRecord) error {
	rec.UploadedAt = time.Now().UTC()
	if rec.CategoryStatus == "" {
		rec.CategoryStatus = domain.CategoryStatusPending
	}

	// Resubmissions for the same (file_id, page_number) replace the earlier
	// extraction and reset the classification lifecycle.
	query := `INSERT INTO uploaded_files_page (
			file_id, page_number, ocr_text, time_process,
			extract_taxid, extract_taxid_timeprocess,
			extract_receipt, extract_receipt_timeprocess,
			extract_entity, extract_entity_timeprocess,
			extract_number_of_receipt, extract_number_of_receipt_timeprocess,
			category, category_status, category_error, category_time_secs, categorized_at,
			filename, fullfile_path, folder_timestamp, uploaded_at,
			similarity_score, similar_to_file_id, similarity_status,
			total_amount, owner, work_detail, client_ip, receipt_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			NULL, $13, NULL, NULL, NULL,
			$14, $15, $16, $17,
			NULL, NULL, NULL, NULL, NULL, NULL, NULL, NULL
		)
		ON CONFLICT (file_id, page_number) DO UPDATE SET
			ocr_text = EXCLUDED.ocr_text,
			time_process = EXCLUDED.time_process,
			extract_taxid = EXCLUDED.extract_taxid,
			extract_taxid_timeprocess = EXCLUDED.extract_taxid_timeprocess,
			extract_receipt = EXCLUDED.extract_receipt,
			extract_receipt_timeprocess = EXCLUDED.extract_receipt_timeprocess,
			extract_entity = EXCLUDED.extract_entity,
			extract_entity_timeprocess = EXCLUDED.extract_entity_timeprocess,
			extract_number_of_receipt = EXCLUDED.extract_number_of_receipt,
			extract_number_of_receipt_timeprocess = EXCLUDED.extract_number_of_receipt_timeprocess,
			category = NULL,
			category_status = EXCLUDED.category_status,
			category_error = NULL,
			category_time_secs = NULL,
			categorized_at = NULL,
			filename = EXCLUDED.filename,
			fullfile_path = EXCLUDED.fullfile_path,
			folder_timestamp = EXCLUDED.folder_timestamp,
			uploaded_at = EXCLUDED.uploaded_at
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		rec.FileID, rec.PageNumber, rec.OCRText, rec.TimeProcess,
		rec.ExtractTaxID, rec.ExtractTaxIDTimeprocess,
		rec.ExtractReceipt, rec.ExtractReceiptTimeprocess,
		rec.ExtractEntity, rec.ExtractEntityTimeprocess,
		rec.ExtractNumberOfReceipt, rec.ExtractNumberOfReceiptTimeprocess,
		rec.CategoryStatus,
		rec.Filename, rec.FullfilePath, rec.FolderTimestamp, rec.UploadedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("pageRecordRepo.Upsert: %w", err)
	}
	return nil
}

func (r *pageRecordRepo) ListAll(ctx context.Context) ([]domain.PageRecord, error) {
	var records []domain.PageRecord
	err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM uploaded_files_page ORDER BY uploaded_at, id`)
	if err != nil {
		return nil, fmt.Errorf("pageRecordRepo.ListAll: %w", err)
	}
	return records, nil
}

func (r *pageRecordRepo) BeginBatch(ctx context.Context) (port.ClassificationBatch, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("pageRecordRepo.BeginBatch: %w", err)
	}
	return &classificationBatch{tx: tx}, nil
}

type classificationBatch struct {
	tx *sqlx.Tx
}

func (b *classificationBatch) SelectPending(ctx context.Context, limit int) ([]domain.ClassificationCandidate, error) {
	var rows []domain.ClassificationCandidate
	// SKIP LOCKED keeps concurrent backfill invocations from paying for the
	// same model call twice.
	err := b.tx.SelectContext(ctx, &rows,
		`SELECT id, ocr_text FROM uploaded_files_page
		 WHERE category_status = $1
		 ORDER BY id
		 LIMIT $2
		 FOR UPDATE SKIP LOCKED`,
		domain.CategoryStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("classificationBatch.SelectPending: %w", err)
	}
	return rows, nil
}

func (b *classificationBatch) MarkClassified(ctx context.Context, id int64, category string, elapsedSecs float64) error {
	result, err := b.tx.ExecContext(ctx,
		`UPDATE uploaded_files_page
		 SET category = $1, category_status = $2, category_error = NULL,
		     category_time_secs = $3, categorized_at = $4
		 WHERE id = $5`,
		category, domain.CategoryStatusClassified, elapsedSecs, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("classificationBatch.MarkClassified: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (b *classificationBatch) MarkFailed(ctx context.Context, id int64, reason string, elapsedSecs float64) error {
	result, err := b.tx.ExecContext(ctx,
		`UPDATE uploaded_files_page
		 SET category = NULL, category_status = $1, category_error = $2,
		     category_time_secs = $3, categorized_at = $4
		 WHERE id = $5`,
		domain.CategoryStatusFailed, reason, elapsedSecs, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("classificationBatch.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (b *classificationBatch) Commit() error {
	return b.tx.Commit()
}

func (b *classificationBatch) Rollback() error {
	return b.tx.Rollback()
}
