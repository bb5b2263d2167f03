package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invex/internal/domain"
)

// MockDocumentLoader is a mock implementation of port.DocumentLoader.
type MockDocumentLoader struct {
	mock.Mock
}

func (m *MockDocumentLoader) Load(ctx context.Context, doc domain.UploadedDocument) ([]domain.PageImage, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PageImage), args.Error(1)
}
