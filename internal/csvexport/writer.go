// Package csvexport renders page records as CSV for spreadsheet import.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"receiptflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows. Without it Excel
// renders the Thai columns as mojibake.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"ID",
	"File ID",
	"Page Number",
	"Filename",
	"Tax ID",
	"Receipt Code",
	"Entity",
	"Receipt Number",
	"Category",
	"Category Status",
	"Category Error",
	"Classify Secs",
	"Categorized At",
	"Processed At",
	"Uploaded At",
}

// Writer wraps csv.Writer for exporting page records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WritePages converts a batch of page records to CSV rows and writes them.
func (w *Writer) WritePages(records []domain.PageRecord) error {
	for i := range records {
		row := pageToRow(&records[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func pageToRow(rec *domain.PageRecord) []string {
	row := make([]string, len(columns))

	row[0] = strconv.FormatInt(rec.ID, 10)
	row[1] = strconv.FormatInt(rec.FileID, 10)
	row[2] = strconv.Itoa(rec.PageNumber)
	row[3] = rec.Filename
	row[4] = strOrEmpty(rec.ExtractTaxID)
	row[5] = strOrEmpty(rec.ExtractReceipt)
	row[6] = strOrEmpty(rec.ExtractEntity)
	row[7] = strOrEmpty(rec.ExtractNumberOfReceipt)
	row[8] = strOrEmpty(rec.Category)
	row[9] = string(rec.CategoryStatus)
	row[10] = strOrEmpty(rec.CategoryError)
	row[11] = floatOrEmpty(rec.CategoryTimeSecs)
	row[12] = timeOrEmpty(rec.CategorizedAt)
	row[13] = timeOrEmpty(rec.TimeProcess)
	row[14] = rec.UploadedAt.Format(time.RFC3339)

	return row
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', 2, 64)
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
