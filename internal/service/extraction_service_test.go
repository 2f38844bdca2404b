package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"receiptflow/internal/config"
	"receiptflow/internal/domain"
	"receiptflow/internal/service"
	"receiptflow/mocks"
)

func setupExtractionService(timeoutSecs int) (service.ExtractionService, *mocks.MockPageRecordRepo, *mocks.MockOCREngine) {
	repo := new(mocks.MockPageRecordRepo)
	engine := new(mocks.MockOCREngine)
	svc := service.NewExtractionService(repo, engine, &config.OCRConfig{TimeoutSecs: timeoutSecs})
	return svc, repo, engine
}

func writeTempPage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page_1.png")
	if err := os.WriteFile(path, []byte("not a real image"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractionService_ProcessPage_Success(t *testing.T) {
	svc, repo, engine := setupExtractionService(180)
	path := writeTempPage(t)

	ocrText := "บริษัท ทดสอบ จำกัด\nเลขประจำตัวผู้เสียภาษี 0105536001234\nRECEIPT-2024-001\nเลขที่ 457"
	engine.On("ExtractText", mock.Anything, path).Return(ocrText, nil)
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.PageRecord")).Return(nil)

	result, err := svc.ProcessPage(context.Background(), &service.ProcessPageInput{
		Filepath: path,
		PageNum:  1,
		FileID:   42,
	})

	assert.NoError(t, err)
	assert.Equal(t, service.StatusSuccess, result.Status)
	assert.Equal(t, int64(42), result.FileID)
	assert.Equal(t, 1, result.PageNumber)
	assert.NotNil(t, result.TimeProcess)
	assert.NotNil(t, result.Extract)
	assert.Equal(t, "0105536001234", *result.Extract.TaxID)
	assert.Equal(t, "RECEIPT-2024-001", *result.Extract.Receipt)
	assert.Equal(t, "บริษัท ทดสอบ จำกัด", *result.Extract.Entity)
	assert.Equal(t, "457", *result.Extract.NumberOfReceipt)

	repo.AssertExpectations(t)
	engine.AssertExpectations(t)
}

func TestExtractionService_ProcessPage_PersistsRecord(t *testing.T) {
	svc, repo, engine := setupExtractionService(180)
	path := writeTempPage(t)

	ocrText := "เลขประจำตัวผู้เสียภาษี 1234567890123"
	engine.On("ExtractText", mock.Anything, path).Return(ocrText, nil)

	var saved *domain.PageRecord
	repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.PageRecord")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.PageRecord)
		}).
		Return(nil)

	_, err := svc.ProcessPage(context.Background(), &service.ProcessPageInput{
		Filepath: path,
		PageNum:  3,
		FileID:   7,
		Filename: "scan.pdf",
	})

	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, int64(7), saved.FileID)
	assert.Equal(t, 3, saved.PageNumber)
	assert.Equal(t, "scan.pdf", saved.Filename)
	assert.Equal(t, ocrText, *saved.OCRText)
	assert.Equal(t, "1234567890123", *saved.ExtractTaxID)
	assert.Nil(t, saved.ExtractReceipt)
	assert.Equal(t, domain.CategoryStatusPending, saved.CategoryStatus)
	assert.NotNil(t, saved.TimeProcess)
}

func TestExtractionService_ProcessPage_FileNotFound(t *testing.T) {
	svc, repo, engine := setupExtractionService(180)

	result, err := svc.ProcessPage(context.Background(), &service.ProcessPageInput{
		Filepath: filepath.Join(t.TempDir(), "missing.png"),
		PageNum:  1,
		FileID:   1,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	engine.AssertNotCalled(t, "ExtractText", mock.Anything, mock.Anything)
}

func TestExtractionService_ProcessPage_Timeout(t *testing.T) {
	svc, repo, engine := setupExtractionService(1)
	path := writeTempPage(t)

	engine.On("ExtractText", mock.Anything, path).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return("", context.DeadlineExceeded)

	result, err := svc.ProcessPage(context.Background(), &service.ProcessPageInput{
		Filepath: path,
		PageNum:  2,
		FileID:   9,
	})

	assert.NoError(t, err)
	assert.Equal(t, service.StatusTimeoutSkipped, result.Status)
	assert.Equal(t, int64(9), result.FileID)
	assert.Equal(t, 2, result.PageNumber)
	assert.Equal(t, "OCR timeout after 1 seconds. Skipped.", result.Message)
	assert.Nil(t, result.Extract)

	// A timed-out page must leave no row behind.
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestExtractionService_ProcessPage_EngineError(t *testing.T) {
	svc, repo, engine := setupExtractionService(180)
	path := writeTempPage(t)

	engine.On("ExtractText", mock.Anything, path).Return("", errors.New("engine exploded"))

	result, err := svc.ProcessPage(context.Background(), &service.ProcessPageInput{
		Filepath: path,
		PageNum:  1,
		FileID:   1,
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrOCRFailed)
	assert.Contains(t, err.Error(), "engine exploded")
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestExtractionService_ProcessPage_RepoError(t *testing.T) {
	svc, repo, engine := setupExtractionService(180)
	path := writeTempPage(t)

	engine.On("ExtractText", mock.Anything, path).Return("some ocr text", nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down"))

	result, err := svc.ProcessPage(context.Background(), &service.ProcessPageInput{
		Filepath: path,
		PageNum:  1,
		FileID:   1,
	})

	assert.Nil(t, result)
	assert.Error(t, err)
}

func TestExtractionService_ProcessPage_SlowEngineWithinBudget(t *testing.T) {
	svc, repo, engine := setupExtractionService(180)
	path := writeTempPage(t)

	engine.On("ExtractText", mock.Anything, path).
		Run(func(mock.Arguments) { time.Sleep(20 * time.Millisecond) }).
		Return("slow but fine", nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ProcessPage(context.Background(), &service.ProcessPageInput{
		Filepath: path,
		PageNum:  1,
		FileID:   1,
	})

	assert.NoError(t, err)
	assert.Equal(t, service.StatusSuccess, result.Status)
}
