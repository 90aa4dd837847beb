package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func serve(t *testing.T, status int, body any, check func(*http.Request, map[string]any)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			raw, _ := io.ReadAll(r.Body)
			var req map[string]any
			_ = json.Unmarshal(raw, &req)
			check(r, req)
		}
		w.Header().Set("Content-Type", "application/json")
		if status == http.StatusTooManyRequests {
			w.Header().Set("Retry-After", "7")
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

var tipRequest = Request{
	System:    "You are a CPR instructor.",
	Prompt:    "Review my session.",
	Schema:    tipSchema,
	MaxTokens: 256,
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropic_Generate(t *testing.T) {
	url := serve(t, http.StatusOK, anthropicMessage(`{"headline":"Keep the beat"}`, "end_turn"),
		func(r *http.Request, body map[string]any) {
			if body["model"] != "claude-haiku-4-5-20251001" {
				t.Errorf("model = %v", body["model"])
			}
			msgs, _ := body["messages"].([]any)
			if len(msgs) != 1 {
				t.Errorf("messages = %v", body["messages"])
			}
		})

	p, err := newAnthropic(Endpoint{APIKey: "k", Model: "claude-haiku", BaseURL: url})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Generate(context.Background(), tipRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Stop != StopEnd {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAnthropic_Truncated(t *testing.T) {
	url := serve(t, http.StatusOK, anthropicMessage(`{"headline":"Keep`, "max_tokens"), nil)
	p, _ := newAnthropic(Endpoint{APIKey: "k", Model: "claude-haiku", BaseURL: url})
	if _, err := p.Generate(context.Background(), tipRequest); !IsKind(err, KindTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
}

func TestAnthropic_RateLimit(t *testing.T) {
	url := serve(t, http.StatusTooManyRequests, map[string]any{
		"type":  "error",
		"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
	}, nil)
	p, _ := newAnthropic(Endpoint{APIKey: "k", Model: "claude-haiku", BaseURL: url})

	_, err := p.Generate(context.Background(), tipRequest)
	if !IsKind(err, KindRateLimited) {
		t.Fatalf("expected rate limit, got %v", err)
	}
	if e := err.(*Error); e.RetryAfter != 7*time.Second {
		t.Errorf("RetryAfter = %v, want 7s", e.RetryAfter)
	}
}

func openaiCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": finish}},
		"usage":   map[string]any{"prompt_tokens": 40, "completion_tokens": 20, "total_tokens": 60},
	}
}

func TestOpenAI_Generate(t *testing.T) {
	url := serve(t, http.StatusOK, openaiCompletion(`{"headline":"Nice"}`, "stop"),
		func(r *http.Request, body map[string]any) {
			msgs, _ := body["messages"].([]any)
			if len(msgs) != 2 {
				t.Errorf("expected system and user messages, got %v", msgs)
			}
			rf, _ := body["response_format"].(map[string]any)
			if rf["type"] != "json_schema" {
				t.Errorf("response_format = %v", rf)
			}
		})

	p, err := newOpenAI(Endpoint{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url})
	if err != nil {
		t.Fatal(err)
	}
	resp, err := p.Generate(context.Background(), tipRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.Total() != 60 || resp.Model != "gpt-4o-mini" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestOpenAI_InvalidReply(t *testing.T) {
	url := serve(t, http.StatusOK, openaiCompletion(`Great job!`, "stop"), nil)
	p, _ := newOpenAI(Endpoint{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url})
	if _, err := p.Generate(context.Background(), tipRequest); !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid response, got %v", err)
	}
}

func TestOpenAI_ServerError(t *testing.T) {
	url := serve(t, http.StatusServiceUnavailable, map[string]any{
		"error": map[string]any{"message": "overloaded", "type": "server_error"},
	}, nil)
	p, _ := newOpenAI(Endpoint{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url})
	if _, err := p.Generate(context.Background(), tipRequest); !IsKind(err, KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestOpenRouter_KeepsModelAndBaseURL(t *testing.T) {
	p, err := newOpenRouter(Endpoint{APIKey: "k", Model: "gpt-mini"})
	if err != nil {
		t.Fatal(err)
	}
	if p.ModelID() != "gpt-mini" {
		t.Errorf("OpenRouter model should not be aliased, got %q", p.ModelID())
	}
	if p.name != "openrouter" {
		t.Errorf("name = %q", p.name)
	}
}

func TestMissingKey(t *testing.T) {
	if _, err := newAnthropic(Endpoint{}); err == nil || !strings.Contains(err.Error(), "CPRCOACH_ANTHROPIC_API_KEY") {
		t.Errorf("anthropic: %v", err)
	}
	if _, err := newOpenRouter(Endpoint{}); err == nil || !strings.Contains(err.Error(), "CPRCOACH_OPENROUTER_API_KEY") {
		t.Errorf("openrouter: %v", err)
	}
	if _, err := newGemini(context.Background(), Endpoint{}); err == nil {
		t.Error("gemini: expected error")
	}
}

func TestAlias(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		want    string
	}{
		{"claude-haiku", anthropicAliases, "claude-haiku-4-5-20251001"},
		{"gemini-pro", geminiAliases, "gemini-2.5-pro"},
		{"gpt-mini", openaiAliases, "gpt-4.1-mini"},
		{"gemini-2.0-flash", geminiAliases, "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := alias(tt.name, tt.aliases); got != tt.want {
			t.Errorf("alias(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
