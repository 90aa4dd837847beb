package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryPolicy bounds the retry stage.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// retrying retries transient failures with capped exponential backoff.
// Invalid replies get a single second chance; truncation and context
// errors are final.
type retrying struct {
	Provider
	policy RetryPolicy
	sleep  func(context.Context, time.Duration) error
}

// WithRetry wraps p in the retry stage.
func WithRetry(p Provider, policy RetryPolicy) Provider {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &retrying{Provider: p, policy: policy, sleep: sleepCtx}
}

func (r *retrying) Generate(ctx context.Context, req Request) (*Response, error) {
	invalidSeen := false
	var err error
	for attempt := 0; attempt < r.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			if serr := r.sleep(ctx, r.delay(attempt, err)); serr != nil {
				return nil, serr
			}
		}
		var resp *Response
		resp, err = r.Provider.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
		switch {
		case IsKind(err, KindTruncated):
			return nil, err
		case IsKind(err, KindInvalidResponse):
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
	}
	return nil, err
}

// delay is the wait before the given attempt: the server's Retry-After
// when present, else BaseDelay doubled per attempt with ±20% jitter.
func (r *retrying) delay(attempt int, prev error) time.Duration {
	var e *Error
	if errors.As(prev, &e) && e.RetryAfter > 0 {
		return e.RetryAfter
	}
	d := r.policy.BaseDelay << (attempt - 1)
	if r.policy.MaxDelay > 0 && (d > r.policy.MaxDelay || d <= 0) {
		d = r.policy.MaxDelay
	}
	jitter := time.Duration(float64(d) * 0.2 * (2*rand.Float64() - 1))
	return max(d+jitter, 0)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// deadline bounds each Generate call, retries included.
type deadline struct {
	Provider
	timeout time.Duration
}

// WithTimeout wraps p so every call is cancelled after d. A zero d
// returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &deadline{Provider: p, timeout: d}
}

func (t *deadline) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Provider.Generate(ctx, req)
}
