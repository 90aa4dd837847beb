package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// noSleep records requested waits without blocking.
func noSleep(waits *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
}

func newTestRetry(p Provider, attempts int, waits *[]time.Duration) *retrying {
	r := WithRetry(p, RetryPolicy{MaxAttempts: attempts, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Second}).(*retrying)
	r.sleep = noSleep(waits)
	return r
}

func TestRetry_RecoversFromTransientErrors(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: KindUnavailable, Provider: "mock"}},
		MockResponse{Err: &Error{Kind: KindRateLimited, Provider: "mock", RetryAfter: 3 * time.Second}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	var waits []time.Duration
	r := newTestRetry(mock, 3, &waits)

	if _, err := r.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("calls = %d, want 3", mock.CallCount())
	}
	if len(waits) != 2 {
		t.Fatalf("waits = %v", waits)
	}
	if waits[0] < 80*time.Millisecond || waits[0] > 120*time.Millisecond {
		t.Errorf("first wait %v outside jitter band", waits[0])
	}
	if waits[1] != 3*time.Second {
		t.Errorf("second wait = %v, want Retry-After", waits[1])
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: KindUnavailable}},
		MockResponse{Err: &Error{Kind: KindUnavailable}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	var waits []time.Duration
	r := newTestRetry(mock, 2, &waits)

	if _, err := r.Generate(context.Background(), Request{}); !IsKind(err, KindUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: KindInvalidResponse}},
		MockResponse{Err: &Error{Kind: KindInvalidResponse}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	var waits []time.Duration
	r := newTestRetry(mock, 5, &waits)

	if _, err := r.Generate(context.Background(), Request{}); !IsKind(err, KindInvalidResponse) {
		t.Fatalf("expected invalid response, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_TruncationIsFinal(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: KindTruncated}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	var waits []time.Duration
	r := newTestRetry(mock, 3, &waits)

	if _, err := r.Generate(context.Background(), Request{}); !IsKind(err, KindTruncated) {
		t.Fatalf("expected truncated, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &Error{Kind: KindUnavailable}},
		MockResponse{Content: json.RawMessage(`{}`)},
	)
	var waits []time.Duration
	r := newTestRetry(mock, 3, &waits)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Generate(ctx, Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_DelayIsCapped(t *testing.T) {
	r := WithRetry(NewMockProvider(), RetryPolicy{MaxAttempts: 10, BaseDelay: time.Second, MaxDelay: 2 * time.Second}).(*retrying)
	if d := r.delay(8, errors.New("x")); d > 2400*time.Millisecond {
		t.Errorf("delay = %v, want capped near 2s", d)
	}
}

type slowProvider struct{ MockProvider }

func (s *slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(&slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	base := NewMockProvider()
	if WithTimeout(base, 0) != Provider(base) {
		t.Error("zero timeout should return the provider unchanged")
	}
}
