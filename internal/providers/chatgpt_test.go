package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chatgptOKResponse(content string) string {
	resp := map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]any{
			"prompt_tokens":     200,
			"completion_tokens": 100,
			"total_tokens":      300,
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestChatGPTClient_SolveImage(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff}

	t.Run("successful solve", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("failed to decode request: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(chatgptOKResponse(`{"latex": "y = 3x", "answer": "3"}`)))
		}))
		defer server.Close()

		client := NewChatGPTClient(ChatGPTConfig{
			APIKey:     "test-key",
			BaseURL:    server.URL,
			RateLimit:  1000,
			RetryDelay: time.Millisecond,
		})

		result, err := client.SolveImage(context.Background(), image, "image/jpeg")
		if err != nil {
			t.Fatalf("SolveImage() error = %v", err)
		}

		// The request must carry the image as a base64 data URL part.
		raw, _ := json.Marshal(gotBody)
		if !strings.Contains(string(raw), "data:image/jpeg;base64,") {
			t.Error("request does not contain a data URL image part")
		}

		if result.Provider != ChatGPTName {
			t.Errorf("Provider = %s, want %s", result.Provider, ChatGPTName)
		}
		if result.PromptTokens != 200 || result.CompletionTokens != 100 {
			t.Errorf("tokens = %d/%d, want 200/100", result.PromptTokens, result.CompletionTokens)
		}
		obj, ok := result.Parsed.(map[string]any)
		if !ok || obj["answer"] != "3" {
			t.Errorf("Parsed = %#v, want object with answer", result.Parsed)
		}
		if !result.SchemaValid {
			t.Error("SchemaValid = false for valid solution object")
		}
	})

	t.Run("empty content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(chatgptOKResponse("")))
		}))
		defer server.Close()

		client := NewChatGPTClient(ChatGPTConfig{
			APIKey:     "test-key",
			BaseURL:    server.URL,
			RateLimit:  1000,
			RetryDelay: time.Millisecond,
		})

		_, err := client.SolveImage(context.Background(), image, "image/jpeg")
		if err == nil {
			t.Fatal("expected error for empty content")
		}
	})
}
