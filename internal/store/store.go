package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ExchangeKind distinguishes Q&A replies from summaries.
type ExchangeKind string

const (
	KindAnswer  ExchangeKind = "answer"
	KindSummary ExchangeKind = "summary"
)

// Exchange is one completed bot interaction: what was asked and what the
// provider produced.
type Exchange struct {
	ID        uuid.UUID
	ChatID    int64
	Kind      ExchangeKind
	Questions []string
	Topics    []string
	Reply     string
	CreatedAt time.Time
}

// Store persists exchange history.
type Store interface {
	RecordExchange(ctx context.Context, ex Exchange) (Exchange, error)
	RecentExchanges(ctx context.Context, chatID int64, limit int) ([]Exchange, error)
}
