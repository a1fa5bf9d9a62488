package providers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func perplexityOKResponse(content string) string {
	resp := map[string]any{
		"model": "sonar",
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
		"usage": map[string]any{
			"prompt_tokens":     120,
			"completion_tokens": 80,
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func newTestPerplexityClient(baseURL string) *PerplexityClient {
	return NewPerplexityClient(PerplexityConfig{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		RateLimit:  1000,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	})
}

func TestPerplexityClient_SolveImage(t *testing.T) {
	image := []byte{0x89, 0x50, 0x4e, 0x47}

	t.Run("successful solve", func(t *testing.T) {
		var gotReq perplexityRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected auth header: %s", auth)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(perplexityOKResponse("```json\n{\"latex\": \"x = 2\", \"answer\": \"2\"}\n```")))
		}))
		defer server.Close()

		client := newTestPerplexityClient(server.URL)
		result, err := client.SolveImage(context.Background(), image, "image/png")
		if err != nil {
			t.Fatalf("SolveImage() error = %v", err)
		}

		if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content == "" {
			t.Error("expected a single non-empty user message")
		}
		if len(gotReq.Attachments) != 1 {
			t.Fatalf("expected 1 attachment, got %d", len(gotReq.Attachments))
		}
		att := gotReq.Attachments[0]
		if att.MimeType != "image/png" {
			t.Errorf("attachment mime = %s, want image/png", att.MimeType)
		}
		if att.Data != base64.StdEncoding.EncodeToString(image) {
			t.Error("attachment data is not the base64 image")
		}

		if result.Provider != PerplexityName {
			t.Errorf("Provider = %s, want %s", result.Provider, PerplexityName)
		}
		if result.ModelUsed != "sonar" {
			t.Errorf("ModelUsed = %s, want sonar", result.ModelUsed)
		}
		if result.PromptTokens != 120 || result.CompletionTokens != 80 {
			t.Errorf("tokens = %d/%d, want 120/80", result.PromptTokens, result.CompletionTokens)
		}
		if result.CostUSD <= 0 {
			t.Error("expected positive cost")
		}
		if result.Parsed == nil {
			t.Fatal("expected parsed JSON from fenced content")
		}
		obj, ok := result.Parsed.(map[string]any)
		if !ok || obj["latex"] != "x = 2" {
			t.Errorf("Parsed = %#v, want object with latex", result.Parsed)
		}
		if result.Attempts != 1 {
			t.Errorf("Attempts = %d, want 1", result.Attempts)
		}
		if result.RequestID == "" {
			t.Error("expected a request ID")
		}
	})

	t.Run("retries transient errors", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(perplexityOKResponse(`{"answer": "7"}`)))
		}))
		defer server.Close()

		client := newTestPerplexityClient(server.URL)
		result, err := client.SolveImage(context.Background(), image, "image/jpeg")
		if err != nil {
			t.Fatalf("SolveImage() error = %v", err)
		}
		if calls != 2 {
			t.Errorf("server calls = %d, want 2", calls)
		}
		if result.Attempts != 2 {
			t.Errorf("Attempts = %d, want 2", result.Attempts)
		}
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "bad key"}`))
		}))
		defer server.Close()

		client := newTestPerplexityClient(server.URL)
		_, err := client.SolveImage(context.Background(), image, "image/png")
		if err == nil {
			t.Fatal("expected error for 401 response")
		}
		if calls != 1 {
			t.Errorf("server calls = %d, want 1 (no retry)", calls)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"model": "sonar", "choices": []}`))
		}))
		defer server.Close()

		client := newTestPerplexityClient(server.URL)
		_, err := client.SolveImage(context.Background(), image, "image/png")
		if err == nil {
			t.Fatal("expected error for empty choices")
		}
	})

	t.Run("unparseable content still returns raw text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(perplexityOKResponse("I could not read the image.")))
		}))
		defer server.Close()

		client := newTestPerplexityClient(server.URL)
		result, err := client.SolveImage(context.Background(), image, "image/png")
		if err != nil {
			t.Fatalf("SolveImage() error = %v", err)
		}
		if result.RawText != "I could not read the image." {
			t.Errorf("RawText = %q", result.RawText)
		}
		if result.Parsed != nil {
			t.Errorf("Parsed = %#v, want nil", result.Parsed)
		}
		if result.SchemaValid {
			t.Error("SchemaValid = true for unparseable content")
		}
	})
}
