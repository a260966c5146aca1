package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/metrics"
)

type chatRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatServer(t *testing.T, content string, got *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if got != nil {
			if err := json.NewDecoder(r.Body).Decode(got); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test-chat",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 30, "completion_tokens": 7, "total_tokens": 37},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Complete(t *testing.T) {
	var req chatRequest
	srv := chatServer(t, "  ¿Dónde puedo repostar?\n", &req)
	before := testutil.ToFloat64(metrics.LLMTokensTotal.WithLabelValues("translate", "test-chat"))

	out, err := newTestClient(srv.URL).Complete(context.Background(), domain.CompletionRequest{
		Op:     "translate",
		System: "translate",
		User:   "Onde posso abastecer?",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != "¿Dónde puedo repostar?" {
		t.Errorf("got %q", out)
	}
	if req.Model != "test-chat" {
		t.Errorf("model = %q", req.Model)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "Onde posso abastecer?" {
		t.Errorf("unexpected messages %+v", req.Messages)
	}
	if d := testutil.ToFloat64(metrics.LLMTokensTotal.WithLabelValues("translate", "test-chat")) - before; d != 37 {
		t.Errorf("tokens recorded = %f, want 37", d)
	}
}

func TestClient_Complete_NoSystem(t *testing.T) {
	var req chatRequest
	srv := chatServer(t, "ok", &req)

	if _, err := newTestClient(srv.URL).Complete(context.Background(), domain.CompletionRequest{User: "hola"}); err != nil {
		t.Fatal(err)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
		t.Errorf("unexpected messages %+v", req.Messages)
	}
}

func TestClient_Complete_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Complete(context.Background(), domain.CompletionRequest{Op: "answer", User: "q"})
	if !errors.Is(err, domain.ErrCollaborator) {
		t.Fatalf("expected ErrCollaborator, got %v", err)
	}
}

func TestClient_APIErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "openai error envelope",
			status:     http.StatusTooManyRequests,
			body:       `{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`,
			wantStatus: http.StatusTooManyRequests,
			wantMsg:    "rate limit exceeded",
		},
		{
			name:       "nebius detail",
			status:     http.StatusBadRequest,
			body:       `{"detail":"model not found"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "model not found",
		},
		{
			name:       "plain text",
			status:     http.StatusServiceUnavailable,
			body:       `upstream down`,
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "upstream down",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Complete(context.Background(), domain.CompletionRequest{Op: "answer", User: "q"})
			var ce *domain.CollaboratorError
			if !errors.As(err, &ce) {
				t.Fatalf("expected CollaboratorError, got %v", err)
			}
			if ce.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", ce.Status, tt.wantStatus)
			}
			if !strings.Contains(ce.Message, tt.wantMsg) {
				t.Errorf("message %q does not contain %q", ce.Message, tt.wantMsg)
			}
			if ce.Op != "answer" {
				t.Errorf("op = %q", ce.Op)
			}
		})
	}
}

func TestClient_HealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-chat","object":"model"}]}`))
	}))
	defer srv.Close()

	if err := newTestClient(srv.URL).HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer down.Close()

	if err := newTestClient(down.URL).HealthCheck(context.Background()); !errors.Is(err, domain.ErrCollaborator) {
		t.Errorf("expected ErrCollaborator, got %v", err)
	}
}
