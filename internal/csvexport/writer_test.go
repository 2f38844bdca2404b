package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receiptflow/internal/csvexport"
	"receiptflow/internal/domain"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestWriter_HeaderAndRows(t *testing.T) {
	uploaded := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

	records := []domain.PageRecord{
		{
			ID:               1,
			FileID:           42,
			PageNumber:       1,
			Filename:         "scan.pdf",
			ExtractTaxID:     strPtr("0105536001234"),
			ExtractEntity:    strPtr("บริษัท ทดสอบ จำกัด"),
			Category:         strPtr("ค่าน้ำมัน"),
			CategoryStatus:   domain.CategoryStatusClassified,
			CategoryTimeSecs: floatPtr(1.42),
			UploadedAt:       uploaded,
		},
		{
			ID:             2,
			FileID:         42,
			PageNumber:     2,
			CategoryStatus: domain.CategoryStatusPending,
			UploadedAt:     uploaded,
		},
	}

	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WritePages(records))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Uploaded At", rows[0][14])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "42", rows[1][1])
	assert.Equal(t, "0105536001234", rows[1][4])
	assert.Equal(t, "บริษัท ทดสอบ จำกัด", rows[1][6])
	assert.Equal(t, "ค่าน้ำมัน", rows[1][8])
	assert.Equal(t, "classified", rows[1][9])
	assert.Equal(t, "1.42", rows[1][11])
	assert.Equal(t, "2026-03-15T09:30:00Z", rows[1][14])

	assert.Equal(t, "pending", rows[2][9])
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "", rows[2][11])
}

func TestWriter_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WritePages(nil))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
