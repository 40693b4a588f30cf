package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestCohereClient(t *testing.T, handler http.HandlerFunc) *CohereClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewCohereClient("test-key", "command-light")
	if err != nil {
		t.Fatalf("failed to build client: %v", err)
	}
	client.http.SetBaseURL(server.URL)
	return client
}

func TestCohereGenerate(t *testing.T) {
	client := newTestCohereClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}

		var req cohereGenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "command-light" {
			t.Errorf("unexpected model %q", req.Model)
		}
		if req.MaxTokens != 400 {
			t.Errorf("expected max_tokens 400, got %d", req.MaxTokens)
		}
		if req.Temperature != 0.7 {
			t.Errorf("expected temperature 0.7, got %v", req.Temperature)
		}
		if req.Prompt != "hello" {
			t.Errorf("unexpected prompt %q", req.Prompt)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"generations": []map[string]string{{"text": "hi there"}},
		})
	})

	text, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hi there" {
		t.Errorf("unexpected reply %q", text)
	}
}

func TestCohereGenerateNonSuccessStatus(t *testing.T) {
	client := newTestCohereClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on non-2xx status")
	}
}

func TestCohereGenerateEmptyGenerations(t *testing.T) {
	client := newTestCohereClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"generations":[]}`))
	})

	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error on empty generations")
	}
}

func TestNewCohereClientRequiresKey(t *testing.T) {
	if _, err := NewCohereClient("", "command-light"); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
