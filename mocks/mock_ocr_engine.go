package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockOCREngine is a mock implementation of port.OCREngine.
type MockOCREngine struct {
	mock.Mock
}

func (m *MockOCREngine) ExtractText(ctx context.Context, filepath string) (string, error) {
	args := m.Called(ctx, filepath)
	return args.String(0), args.Error(1)
}
