package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHuggingFaceClient_Chat(t *testing.T) {
	t.Run("successful generation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != "POST" {
				t.Errorf("unexpected method: %s", r.Method)
			}
			if !strings.HasPrefix(r.URL.Path, "/models/") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected authorization: %s", auth)
			}

			var req hfRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if !strings.Contains(req.Inputs, "raw notes") {
				t.Errorf("prompt not forwarded, inputs = %q", req.Inputs)
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]map[string]string{
				{"generated_text": `{"date":"2024-01-01"}`},
			})
		}))
		defer server.Close()

		client := NewHuggingFaceClient(HuggingFaceConfig{
			APIKey:  "test-key",
			BaseURL: server.URL,
		})

		result, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: "user", Content: "raw notes"}},
		})
		if err != nil {
			t.Fatalf("Chat() error = %v", err)
		}
		if result.Content != `{"date":"2024-01-01"}` {
			t.Errorf("Content = %q", result.Content)
		}
		if result.Provider != HuggingFaceName {
			t.Errorf("Provider = %q, want %q", result.Provider, HuggingFaceName)
		}
		if result.ModelUsed != huggingFaceDefaultModel {
			t.Errorf("ModelUsed = %q, want default model", result.ModelUsed)
		}
	})

	t.Run("rate limit is transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewHuggingFaceClient(HuggingFaceConfig{BaseURL: server.URL})
		_, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: "user", Content: "x"}},
		})
		if err == nil {
			t.Fatal("expected error for 429")
		}
		if !IsTransient(err) {
			t.Errorf("429 should classify as transient, got %v", err)
		}
	})

	t.Run("bad request is terminal", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewHuggingFaceClient(HuggingFaceConfig{BaseURL: server.URL})
		_, err := client.Chat(context.Background(), &ChatRequest{
			Messages: []Message{{Role: "user", Content: "x"}},
		})
		if err == nil {
			t.Fatal("expected error for 400")
		}
		if IsTransient(err) {
			t.Errorf("400 should be terminal, got %v", err)
		}
	})
}

func TestExtractGeneratedText(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"array shape", `[{"generated_text":"hello"}]`, "hello", false},
		{"object shape", `{"generated_text":"hello"}`, "hello", false},
		{"plain string", `"hello"`, "hello", false},
		{"unrecognized", `{"error":"model overloaded"}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractGeneratedText([]byte(tt.body))
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractGeneratedText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractGeneratedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRetryableStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 521, 524} {
		if !retryableStatus(code) {
			t.Errorf("retryableStatus(%d) = false, want true", code)
		}
	}
	for _, code := range []int{200, 400, 401, 404, 422} {
		if retryableStatus(code) {
			t.Errorf("retryableStatus(%d) = true, want false", code)
		}
	}
}
