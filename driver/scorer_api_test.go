package driver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"feed-curator/domain"
	"feed-curator/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func scorerConfig(host string) config.ScorerConfig {
	return config.ScorerConfig{
		Host:        host,
		APIPath:     "/api/generate",
		Model:       "test-model",
		Timeout:     5 * time.Second,
		NumPredict:  200,
		NumCtx:      2048,
		Temperature: 0.0,
	}
}

func testItem() *domain.ContentItem {
	return &domain.ContentItem{
		Fingerprint: "fp-test-1",
		Category:    "golang",
		Title:       "Go 1.26 released",
		Body:        "The Go team announced the release of Go 1.26 with faster builds.",
	}
}

func TestContentScorerAPIClient_ParsesClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("failed to decode request payload: %v", err)
		}

		if payload["model"] != "test-model" {
			t.Errorf("expected model test-model, got %v", payload["model"])
		}

		prompt, _ := payload["prompt"].(string)
		if !strings.Contains(prompt, "Go 1.26 released") {
			t.Errorf("prompt does not carry the item title")
		}
		if !strings.Contains(prompt, `"golang"`) {
			t.Errorf("prompt does not carry the category")
		}

		resp := OllamaResponse{
			Model: "test-model",
			Response: "Here is my assessment:\n" +
				`{"relevance_score": 0.82, "summary": "A release note.", "key_topics": ["go", "releases"], "filtered_reason": ""}`,
			Done: true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	got, err := ContentScorerAPIClient(context.Background(), testItem(), "Prefer release notes.", scorerConfig(server.URL), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RelevanceScore != 0.82 {
		t.Errorf("expected score 0.82, got %v", got.RelevanceScore)
	}
	if got.Summary != "A release note." {
		t.Errorf("unexpected summary: %q", got.Summary)
	}
	if len(got.KeyTopics) != 2 || got.KeyTopics[0] != "go" {
		t.Errorf("unexpected key topics: %v", got.KeyTopics)
	}
	if got.FilteredReason != "" {
		t.Errorf("expected empty filtered reason, got %q", got.FilteredReason)
	}
}

func TestContentScorerAPIClient_ClampsScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := OllamaResponse{
			Response: `{"relevance_score": 1.7, "summary": "s", "key_topics": []}`,
			Done:     true,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	got, err := ContentScorerAPIClient(context.Background(), testItem(), "", scorerConfig(server.URL), testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RelevanceScore != 1.0 {
		t.Errorf("expected score clamped to 1.0, got %v", got.RelevanceScore)
	}
}

func TestContentScorerAPIClient_Returns429(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "queue full"}`))
	}))
	defer server.Close()

	_, err := ContentScorerAPIClient(context.Background(), testItem(), "", scorerConfig(server.URL), testLogger())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrScorerOverloaded) {
		t.Errorf("expected ErrScorerOverloaded, got: %v", err)
	}
}

func TestContentScorerAPIClient_ServerErrorCarriesStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := ContentScorerAPIClient(context.Background(), testItem(), "", scorerConfig(server.URL), testLogger())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got: %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError {
		t.Errorf("expected code 500, got %d", statusErr.Code)
	}
}

func TestContentScorerAPIClient_MalformedReplies(t *testing.T) {
	tests := map[string]string{
		"prose only":      "I cannot evaluate this item, sorry.",
		"unbalanced json": `{"relevance_score": 0.5, "summary": "x"`,
		"missing score":   `{"summary": "no score here", "key_topics": []}`,
	}

	for name, response := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				resp := OllamaResponse{Response: response, Done: true}
				_ = json.NewEncoder(w).Encode(resp)
			}))
			defer server.Close()

			_, err := ContentScorerAPIClient(context.Background(), testItem(), "", scorerConfig(server.URL), testLogger())
			if !errors.Is(err, domain.ErrMalformedScorerResponse) {
				t.Errorf("expected ErrMalformedScorerResponse, got: %v", err)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"prose around", "Sure!\n{\"a\": 1}\nHope that helps.", `{"a": 1}`, true},
		{"nested braces", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`, true},
		{"brace inside string", `{"a": "}{"}`, `{"a": "}{"}`, true},
		{"escaped quote", `{"a": "say \"hi\" {now}"}`, `{"a": "say \"hi\" {now}"}`, true},
		{"no object", "just words", "", false},
		{"never closed", `{"a": 1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.raw)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("hello", 10); got != "hello" {
		t.Errorf("short string must pass through, got %q", got)
	}

	// Multibyte runes must not be split mid-sequence.
	got := truncateRunes(strings.Repeat("あ", 10), 3)
	if got != "あああ" {
		t.Errorf("expected three runes, got %q", got)
	}
}
