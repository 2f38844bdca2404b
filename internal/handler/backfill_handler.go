package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"receiptflow/internal/service"
)

// BackfillHandler handles the classification backfill endpoint.
type BackfillHandler struct {
	backfill service.BackfillService
}

// NewBackfillHandler creates a new BackfillHandler.
func NewBackfillHandler(backfill service.BackfillService) *BackfillHandler {
	return &BackfillHandler{backfill: backfill}
}

// Process handles POST /process
//
// Database failures are reported in the payload rather than as an HTTP error;
// the callers poll this endpoint and inspect the body.
func (h *BackfillHandler) Process(c *gin.Context) {
	report, err := h.backfill.Process(c.Request.Context())
	if err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] backfill batch failed: %v", requestID, err)
		c.JSON(http.StatusOK, gin.H{"error": "classification batch failed; see server logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"processed": report.Processed,
		"details":   report.Details,
	})
}
