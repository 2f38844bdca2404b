package service

import (
	"context"
	"io"

	"receiptflow/internal/csvexport"
	"receiptflow/internal/port"
	"receiptflow/internal/xlsxexport"
)

// ReportService exports page records for offline review.
type ReportService interface {
	// ExportPagesXLSX streams all page records as a spreadsheet to w.
	ExportPagesXLSX(ctx context.Context, w io.Writer) error
	// ExportPagesCSV streams all page records as BOM-prefixed CSV to w.
	ExportPagesCSV(ctx context.Context, w io.Writer) error
}

type reportService struct {
	pageRepo port.PageRecordRepository
}

// NewReportService creates a new ReportService.
func NewReportService(pageRepo port.PageRecordRepository) ReportService {
	return &reportService{pageRepo: pageRepo}
}

func (s *reportService) ExportPagesXLSX(ctx context.Context, w io.Writer) error {
	records, err := s.pageRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	return xlsxexport.WritePages(w, records)
}

func (s *reportService) ExportPagesCSV(ctx context.Context, w io.Writer) error {
	records, err := s.pageRepo.ListAll(ctx)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WritePages(records); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
