package domain

import "time"

// PageRecord represents a single page of a scanned document and its derived fields.
// One row in uploaded_files_page per processed page.
type PageRecord struct {
	ID         int64 `db:"id" json:"id"`
	FileID     int64 `db:"file_id" json:"file_id"`
	PageNumber int   `db:"page_number" json:"page_number"`

	OCRText     *string    `db:"ocr_text" json:"ocr_text"`
	TimeProcess *time.Time `db:"time_process" json:"time_process"`

	ExtractTaxID                      *string    `db:"extract_taxid" json:"extract_taxid"`
	ExtractTaxIDTimeprocess           *time.Time `db:"extract_taxid_timeprocess" json:"extract_taxid_timeprocess"`
	ExtractReceipt                    *string    `db:"extract_receipt" json:"extract_receipt"`
	ExtractReceiptTimeprocess         *time.Time `db:"extract_receipt_timeprocess" json:"extract_receipt_timeprocess"`
	ExtractEntity                     *string    `db:"extract_entity" json:"extract_entity"`
	ExtractEntityTimeprocess          *time.Time `db:"extract_entity_timeprocess" json:"extract_entity_timeprocess"`
	ExtractNumberOfReceipt            *string    `db:"extract_number_of_receipt" json:"extract_number_of_receipt"`
	ExtractNumberOfReceiptTimeprocess *time.Time `db:"extract_number_of_receipt_timeprocess" json:"extract_number_of_receipt_timeprocess"`

	// LLM-derived classification. Kept separate from the regex extract_receipt
	// field so downstream consumers can tell a matched code from a category label.
	Category         *string        `db:"category" json:"category"`
	CategoryStatus   CategoryStatus `db:"category_status" json:"category_status"`
	CategoryError    *string        `db:"category_error" json:"category_error"`
	CategoryTimeSecs *float64       `db:"category_time_secs" json:"category_time_secs"`
	CategorizedAt    *time.Time     `db:"categorized_at" json:"categorized_at"`

	Filename        string    `db:"filename" json:"filename"`
	FullfilePath    string    `db:"fullfile_path" json:"fullfile_path"`
	FolderTimestamp string    `db:"folder_timestamp" json:"folder_timestamp"`
	UploadedAt      time.Time `db:"uploaded_at" json:"uploaded_at"`

	// Reserved fields populated by other collaborators (similarity detection,
	// accounting review). Written as NULL at creation.
	SimilarityScore  *float64   `db:"similarity_score" json:"similarity_score"`
	SimilarToFileID  *int64     `db:"similar_to_file_id" json:"similar_to_file_id"`
	SimilarityStatus *string    `db:"similarity_status" json:"similarity_status"`
	TotalAmount      *float64   `db:"total_amount" json:"total_amount"`
	Owner            *string    `db:"owner" json:"owner"`
	WorkDetail       *string    `db:"work_detail" json:"work_detail"`
	ClientIP         *string    `db:"client_ip" json:"client_ip"`
	ReceiptDate      *time.Time `db:"receipt_date" json:"receipt_date"`
}

// ExtractedFields holds the result of one regex extraction pass over OCR text.
// Every field is independently nullable; Timeprocess applies to all of them.
type ExtractedFields struct {
	TaxID           *string   `json:"extract_taxid"`
	Receipt         *string   `json:"extract_receipt"`
	Entity          *string   `json:"extract_entity"`
	NumberOfReceipt *string   `json:"extract_number_of_receipt"`
	Timeprocess     time.Time `json:"timeprocess"`
}

// ClassificationCandidate is one backfill-eligible row: just enough of a
// PageRecord for the classification pass.
type ClassificationCandidate struct {
	ID      int64   `db:"id"`
	OCRText *string `db:"ocr_text"`
}

// ClassificationResult records the per-row outcome of a backfill pass.
type ClassificationResult struct {
	ID       int64          `json:"id"`
	Type     string         `json:"type,omitempty"`
	Status   CategoryStatus `json:"status"`
	Error    string         `json:"error,omitempty"`
	Duration float64        `json:"-"`
}

// CategoryCount is the number of classified pages carrying one category label.
type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count" json:"count"`
}

// DailyCount is the number of pages ingested on one calendar day.
type DailyCount struct {
	Day   time.Time `db:"day" json:"day"`
	Count int       `db:"count" json:"count"`
}

// Stats aggregates page counts for the dashboard.
type Stats struct {
	TotalPages      int             `db:"total_pages" json:"total_pages"`
	PendingPages    int             `db:"pending_pages" json:"pending_pages"`
	ClassifiedPages int             `db:"classified_pages" json:"classified_pages"`
	FailedPages     int             `db:"failed_pages" json:"failed_pages"`
	Categories      []CategoryCount `db:"-" json:"categories"`
	PagesPerDay     []DailyCount    `db:"-" json:"pages_per_day"`
}
