package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	client.http.SetBaseURL(server.URL)
	return client
}

func TestSendMessage(t *testing.T) {
	var got sendMessageRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	if err := client.SendMessage(context.Background(), 42, "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChatID != 42 || got.Text != "hello" {
		t.Errorf("unexpected payload %+v", got)
	}
}

func TestSendMessageSplitsLongText(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		var req sendMessageRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Text) > 4000 {
			t.Errorf("piece %d exceeds limit: %d bytes", calls, len(req.Text))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	long := strings.Repeat("study notes line\n", 500) // ~8500 bytes
	if err := client.SendMessage(context.Background(), 42, long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls < 2 {
		t.Errorf("expected the message to be split, got %d calls", calls)
	}
}

func TestSendMessageAPIFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	})

	if err := client.SendMessage(context.Background(), 42, "hello"); err == nil {
		t.Fatal("expected error on API failure")
	}
}

func TestNewClientRequiresToken(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for missing token")
	}
}
