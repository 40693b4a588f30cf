package telegram

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockMessenger is a mock implementation of Messenger using testify/mock.
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendMessage(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

func (m *MockMessenger) DownloadDocument(ctx context.Context, fileID string) ([]byte, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
