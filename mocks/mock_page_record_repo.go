package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"receiptflow/internal/domain"
	"receiptflow/internal/port"
)

// MockPageRecordRepo is a mock implementation of port.PageRecordRepository.
type MockPageRecordRepo struct {
	mock.Mock
}

func (m *MockPageRecordRepo) Upsert(ctx context.Context, rec *domain.PageRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockPageRecordRepo) ListAll(ctx context.Context) ([]domain.PageRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PageRecord), args.Error(1)
}

func (m *MockPageRecordRepo) BeginBatch(ctx context.Context) (port.ClassificationBatch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.ClassificationBatch), args.Error(1)
}

// MockClassificationBatch is a mock implementation of port.ClassificationBatch.
type MockClassificationBatch struct {
	mock.Mock
}

func (m *MockClassificationBatch) SelectPending(ctx context.Context, limit int) ([]domain.ClassificationCandidate, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassificationCandidate), args.Error(1)
}

func (m *MockClassificationBatch) MarkClassified(ctx context.Context, id int64, category string, elapsedSecs float64) error {
	args := m.Called(ctx, id, category, elapsedSecs)
	return args.Error(0)
}

func (m *MockClassificationBatch) MarkFailed(ctx context.Context, id int64, reason string, elapsedSecs float64) error {
	args := m.Called(ctx, id, reason, elapsedSecs)
	return args.Error(0)
}

func (m *MockClassificationBatch) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClassificationBatch) Rollback() error {
	args := m.Called()
	return args.Error(0)
}
