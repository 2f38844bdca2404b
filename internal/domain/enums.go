package domain

// CategoryStatus represents the classification lifecycle of a page record.
type CategoryStatus string

const (
	// CategoryStatusPending marks rows the backfill pass has not classified yet.
	CategoryStatusPending CategoryStatus = "pending"
	// CategoryStatusClassified marks rows carrying a model-assigned category.
	CategoryStatusClassified CategoryStatus = "classified"
	// CategoryStatusFailed marks rows whose classification call failed.
	// The failure reason lives in category_error; the row is not retried.
	CategoryStatusFailed CategoryStatus = "failed"
)

// OCREngine identifies a configured OCR backend.
type OCREngine string

const (
	OCREngineTyphoon   OCREngine = "typhoon"
	OCREngineTesseract OCREngine = "tesseract"
)
