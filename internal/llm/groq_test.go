package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestGroqClient(t *testing.T, handler http.HandlerFunc) *GroqClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newGroqClient("test-key", "llama3-70b-8192", server.URL)
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	return client
}

func TestGroqGenerate(t *testing.T) {
	client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if body["model"] != "llama3-70b-8192" {
			t.Errorf("unexpected model %v", body["model"])
		}
		if body["max_tokens"] != float64(4096) {
			t.Errorf("expected max_tokens 4096, got %v", body["max_tokens"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": "generated text"},
					"finish_reason": "stop",
				},
			},
		})
	})

	text, err := client.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "generated text" {
		t.Errorf("unexpected reply %q", text)
	}
}

func TestGroqGenerateNoChoices(t *testing.T) {
	client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","choices":[]}`))
	})

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on empty choices")
	}
}

func TestGroqGenerateServerError(t *testing.T) {
	client := newTestGroqClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	if _, err := client.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on 5xx status")
	}
}

func TestNewGroqClientRequiresKey(t *testing.T) {
	if _, err := NewGroqClient("", "llama3-70b-8192"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
