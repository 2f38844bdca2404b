package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"receiptflow/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler handles report export endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportPages handles GET /api/v1/report/pages.xlsx
func (h *ReportHandler) ExportPages(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportService.ExportPagesXLSX(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("pages_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportPagesCSV handles GET /api/v1/report/pages.csv
func (h *ReportHandler) ExportPagesCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportService.ExportPagesCSV(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("pages_%s.csv", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
