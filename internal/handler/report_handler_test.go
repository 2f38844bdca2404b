package handler_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"receiptflow/internal/csvexport"
	"receiptflow/internal/handler"
	"receiptflow/mocks"
)

func TestReportHandler_ExportPages_Success(t *testing.T) {
	mockSvc := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockSvc)

	mockSvc.On("ExportPagesXLSX", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(1).(io.Writer)
			_, _ = w.Write([]byte("PK\x03\x04 fake workbook"))
		}).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/report/pages.xlsx", http.NoBody)

	h.ExportPages(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="pages_`)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.xlsx"`)
	assert.NotEmpty(t, w.Body.Bytes())
	mockSvc.AssertExpectations(t)
}

func TestReportHandler_ExportPagesCSV_Success(t *testing.T) {
	mockSvc := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockSvc)

	mockSvc.On("ExportPagesCSV", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(1).(io.Writer)
			_, _ = w.Write(csvexport.BOM)
			_, _ = w.Write([]byte("ID,File ID\n1,42\n"))
		}).
		Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/report/pages.csv", http.NoBody)

	h.ExportPagesCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `.csv"`)

	body := w.Body.Bytes()
	assert.Equal(t, csvexport.BOM, body[:3])
	mockSvc.AssertExpectations(t)
}

func TestReportHandler_ExportPages_Error(t *testing.T) {
	mockSvc := new(mocks.MockReportService)
	h := handler.NewReportHandler(mockSvc)

	mockSvc.On("ExportPagesXLSX", mock.Anything, mock.Anything).Return(errors.New("db down"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/report/pages.xlsx", http.NoBody)

	h.ExportPages(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
