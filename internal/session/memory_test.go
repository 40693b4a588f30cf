package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	if err := store.SetDocument(ctx, 1, "document text"); err != nil {
		t.Fatalf("SetDocument failed: %v", err)
	}

	text, err := store.Document(ctx, 1)
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if text != "document text" {
		t.Errorf("expected stored text, got %q", text)
	}
}

func TestMemoryStoreMissingChat(t *testing.T) {
	store := NewMemoryStore(0)

	text, err := store.Document(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty text for unknown chat, got %q", text)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	_ = store.SetDocument(ctx, 1, "text")
	if err := store.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	text, _ := store.Document(ctx, 1)
	if text != "" {
		t.Errorf("expected cleared session, got %q", text)
	}
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore(10 * time.Millisecond)
	ctx := context.Background()

	_ = store.SetDocument(ctx, 1, "text")
	time.Sleep(20 * time.Millisecond)

	text, err := store.Document(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected expired session, got %q", text)
	}
}

func TestMemoryStoreIsolatesChats(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	_ = store.SetDocument(ctx, 1, "one")
	_ = store.SetDocument(ctx, 2, "two")

	text, _ := store.Document(ctx, 1)
	if text != "one" {
		t.Errorf("chat 1: expected %q, got %q", "one", text)
	}
	text, _ = store.Document(ctx, 2)
	if text != "two" {
		t.Errorf("chat 2: expected %q, got %q", "two", text)
	}
}
