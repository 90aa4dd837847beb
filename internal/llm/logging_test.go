package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/cprcoach/internal/store"
)

type recordingRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var objectSchema = &Schema{Name: "test-object", Definition: map[string]any{"type": "object"}}

func TestLogging_RecordsSuccess(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"headline":"ok"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	repo := &recordingRepo{}
	p := WithLogging(mock, "mock", repo, quietLogger())

	ctx := WithPurpose(context.Background(), "practice-tip")
	if _, err := p.Generate(ctx, Request{System: "sys", Prompt: "hi", Schema: objectSchema}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Purpose != "practice-tip" || ev.Provider != "mock" || ev.Model != "mock" {
		t.Errorf("unexpected event metadata: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 4 {
		t.Errorf("unexpected event usage: %+v", ev)
	}
	for _, want := range []string{"[system]\nsys", "[user]\nhi", "[schema] test-object"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Errorf("request body missing %q:\n%s", want, ev.RequestBody)
		}
	}
	if ev.ResponseBody != `{"headline":"ok"}` {
		t.Errorf("response body = %q", ev.ResponseBody)
	}
}

func TestLogging_RecordsFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &Error{Kind: KindRateLimited, Provider: "mock"}})
	repo := &recordingRepo{}
	p := WithLogging(mock, "mock", repo, quietLogger())

	_, err := p.Generate(context.Background(), Request{Prompt: "x"})
	if !IsKind(err, KindRateLimited) {
		t.Fatalf("expected rate limit, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Errorf("expected failed event, got %+v", repo.events)
	}
}

func TestLogging_RecorderErrorIgnored(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithLogging(mock, "mock", repo, quietLogger())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("recorder failure should not fail the request: %v", err)
	}
}

func TestLogging_NilRecorderAndLogger(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPurpose(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Errorf("PurposeFrom(empty) = %q", p)
	}
	if p := PurposeFrom(WithPurpose(ctx, "debrief")); p != "debrief" {
		t.Errorf("PurposeFrom = %q, want debrief", p)
	}
}
