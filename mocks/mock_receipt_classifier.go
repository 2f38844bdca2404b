package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockReceiptClassifier is a mock implementation of port.ReceiptClassifier.
type MockReceiptClassifier struct {
	mock.Mock
}

func (m *MockReceiptClassifier) Classify(ctx context.Context, ocrText string) (string, error) {
	args := m.Called(ctx, ocrText)
	return args.String(0), args.Error(1)
}
