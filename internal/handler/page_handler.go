package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"receiptflow/internal/service"
)

// PageHandler handles the per-page OCR endpoint.
type PageHandler struct {
	extraction service.ExtractionService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(extraction service.ExtractionService) *PageHandler {
	return &PageHandler{extraction: extraction}
}

// ocrRequest is the request body for POST /ocr.
type ocrRequest struct {
	Filepath        string `json:"filepath" binding:"required"`
	PageNum         int    `json:"page_num" binding:"required"`
	FileID          int64  `json:"file_id" binding:"required"`
	Filename        string `json:"filename"`
	FullfilePath    string `json:"fullfile_path"`
	FolderTimestamp string `json:"folder_timestamp"`
}

// extractPayload mirrors the extraction result the upstream orchestrator
// consumes: four nullable fields, each paired with the pass timestamp.
type extractPayload struct {
	ExtractTaxID                      *string   `json:"extract_taxid"`
	ExtractTaxIDTimeprocess           time.Time `json:"extract_taxid_timeprocess"`
	ExtractReceipt                    *string   `json:"extract_receipt"`
	ExtractReceiptTimeprocess         time.Time `json:"extract_receipt_timeprocess"`
	ExtractEntity                     *string   `json:"extract_entity"`
	ExtractEntityTimeprocess          time.Time `json:"extract_entity_timeprocess"`
	ExtractNumberOfReceipt            *string   `json:"extract_number_of_receipt"`
	ExtractNumberOfReceiptTimeprocess time.Time `json:"extract_number_of_receipt_timeprocess"`
}

// ProcessPage handles POST /ocr
func (h *PageHandler) ProcessPage(c *gin.Context) {
	var req ocrRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "filepath, page_num and file_id are required")
		return
	}

	result, err := h.extraction.ProcessPage(c.Request.Context(), &service.ProcessPageInput{
		Filepath:        req.Filepath,
		PageNum:         req.PageNum,
		FileID:          req.FileID,
		Filename:        req.Filename,
		FullfilePath:    req.FullfilePath,
		FolderTimestamp: req.FolderTimestamp,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if result.Status == service.StatusTimeoutSkipped {
		c.JSON(http.StatusOK, gin.H{
			"status":      result.Status,
			"file_id":     result.FileID,
			"page_number": result.PageNumber,
			"message":     result.Message,
		})
		return
	}

	f := result.Extract
	c.JSON(http.StatusOK, gin.H{
		"status":       result.Status,
		"file_id":      result.FileID,
		"page_number":  result.PageNumber,
		"time_process": result.TimeProcess,
		"extract": extractPayload{
			ExtractTaxID:                      f.TaxID,
			ExtractTaxIDTimeprocess:           f.Timeprocess,
			ExtractReceipt:                    f.Receipt,
			ExtractReceiptTimeprocess:         f.Timeprocess,
			ExtractEntity:                     f.Entity,
			ExtractEntityTimeprocess:          f.Timeprocess,
			ExtractNumberOfReceipt:            f.NumberOfReceipt,
			ExtractNumberOfReceiptTimeprocess: f.Timeprocess,
		},
	})
}
