package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process Store for tests and single-instance
// deployments without Redis. Entries expire lazily on read.
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	docs map[int64]memoryEntry
}

type memoryEntry struct {
	text      string
	expiresAt time.Time
}

// NewMemoryStore builds an in-memory store. A non-positive ttl disables
// expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:  ttl,
		docs: make(map[int64]memoryEntry),
	}
}

func (s *MemoryStore) SetDocument(_ context.Context, chatID int64, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := memoryEntry{text: text}
	if s.ttl > 0 {
		entry.expiresAt = time.Now().Add(s.ttl)
	}
	s.docs[chatID] = entry
	return nil
}

func (s *MemoryStore) Document(_ context.Context, chatID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.docs[chatID]
	if !ok {
		return "", nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.docs, chatID)
		return "", nil
	}
	return entry.text, nil
}

func (s *MemoryStore) Clear(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, chatID)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
