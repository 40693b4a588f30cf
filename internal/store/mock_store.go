package store

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) RecordExchange(ctx context.Context, ex Exchange) (Exchange, error) {
	args := m.Called(ctx, ex)
	return args.Get(0).(Exchange), args.Error(1)
}

func (m *MockStore) RecentExchanges(ctx context.Context, chatID int64, limit int) ([]Exchange, error) {
	args := m.Called(ctx, chatID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Exchange), args.Error(1)
}
