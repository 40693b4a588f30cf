package session

import "context"

// Store holds per-chat conversation state: the document text a chat has
// uploaded, retained until its questions arrive or the TTL expires.
type Store interface {
	// SetDocument stores the chat's current document text.
	SetDocument(ctx context.Context, chatID int64, text string) error

	// Document returns the chat's stored document text, or "" when none
	// is present.
	Document(ctx context.Context, chatID int64) (string, error)

	// Clear removes the chat's stored state.
	Clear(ctx context.Context, chatID int64) error

	// Close releases the underlying connection.
	Close() error
}
