// Package xlsxexport renders page records as an Excel workbook for the
// reporting frontend.
package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"receiptflow/internal/domain"
)

const sheetName = "Pages"

// columns defines the header row.
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

// WritePages writes all records to w as an xlsx workbook with one sheet.
func WritePages(w io.Writer, records []domain.PageRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for rowIdx := range records {
		row := pageToRow(&records[rowIdx])
		cell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return fmt.Errorf("row cell: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", rowIdx+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func pageToRow(rec *domain.PageRecord) []interface{} {
	return []interface{}{
		rec.ID,
		rec.FileID,
		rec.PageNumber,
		rec.Filename,
		strOrEmpty(rec.ExtractTaxID),
		strOrEmpty(rec.ExtractReceipt),
		strOrEmpty(rec.ExtractEntity),
		strOrEmpty(rec.ExtractNumberOfReceipt),
		strOrEmpty(rec.Category),
		string(rec.CategoryStatus),
		strOrEmpty(rec.CategoryError),
		floatOrEmpty(rec.CategoryTimeSecs),
		timeOrEmpty(rec.CategorizedAt),
		timeOrEmpty(rec.TimeProcess),
		rec.UploadedAt.Format(time.RFC3339),
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func floatOrEmpty(f *float64) interface{} {
	if f == nil {
		return ""
	}
	return *f
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
