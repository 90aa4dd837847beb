package llm

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/cprcoach/internal/store"
)

// RequestRecorder journals LLM calls. store.EventRepo satisfies it.
type RequestRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// recorded logs every call and, with a recorder, journals it for
// `cprcoach llm list`.
type recorded struct {
	Provider
	name     string
	recorder RequestRecorder
	logger   *slog.Logger
}

// WithLogging wraps p in the logging stage. rec and logger may be nil.
func WithLogging(p Provider, name string, rec RequestRecorder, logger *slog.Logger) Provider {
	if logger == nil {
		logger = slog.Default()
	}
	return &recorded{Provider: p, name: name, recorder: rec, logger: logger}
}

func (l *recorded) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.Provider.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.Provider.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}

	log := l.logger.With(
		slog.String("provider", ev.Provider),
		slog.String("model", ev.Model),
		slog.String("purpose", ev.Purpose),
		slog.Int64("latency_ms", ev.LatencyMs),
	)
	if err != nil {
		ev.ErrorMessage = err.Error()
		log.Warn("llm request failed", slog.String("error", err.Error()))
	} else {
		log.Info("llm request",
			slog.Int("input_tokens", ev.InputTokens),
			slog.Int("output_tokens", ev.OutputTokens))
	}

	if l.recorder != nil {
		// The caller's context may already be cancelled by the deadline.
		if rerr := l.recorder.AppendLLMRequest(context.WithoutCancel(ctx), ev); rerr != nil {
			l.logger.Warn("journal llm request", slog.String("error", rerr.Error()))
		}
	}
	return resp, err
}

// transcript renders a request for `cprcoach llm view`.
func transcript(req Request) string {
	var b strings.Builder
	if req.System != "" {
		b.WriteString("[system]\n" + req.System + "\n\n")
	}
	b.WriteString("[user]\n" + req.Prompt + "\n")
	if req.Schema != nil {
		b.WriteString("\n[schema] " + req.Schema.Name + "\n")
	}
	return b.String()
}
