package session

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SetDocument(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func (m *MockStore) Document(ctx context.Context, chatID int64) (string, error) {
	args := m.Called(ctx, chatID)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Clear(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
