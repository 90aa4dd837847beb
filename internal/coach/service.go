// Package coach generates optional LLM feedback on quiz attempts and
// practice sessions.
package coach

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/cprcoach/internal/assessment"
	"github.com/abhisek/cprcoach/internal/llm"
)

// Service asks the LLM for debriefs and tips. Calls block; run them off the
// UI goroutine.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a coach backed by provider.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type debriefOutput struct {
	Summary string `json:"summary"`
	Points  []struct {
		QuestionID string `json:"question_id"`
		Text       string `json:"text"`
	} `json:"points"`
	Encouragement string `json:"encouragement"`
}

// Debrief explains the missed questions of a quiz attempt.
func (s *Service) Debrief(ctx context.Context, input DebriefInput) (*Debrief, error) {
	ctx = llm.WithPurpose(ctx, "debrief")

	req := llm.Request{
		System:      debriefSystemPrompt,
		Prompt:      buildDebriefUserMessage(input),
		Schema:      DebriefSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("debrief generation: %w", err)
	}

	var out debriefOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse debrief response: %w", err)
	}

	d := &Debrief{Summary: out.Summary, Encouragement: out.Encouragement}
	for _, p := range out.Points {
		d.Points = append(d.Points, Point{QuestionID: p.QuestionID, Text: p.Text})
	}
	return d, nil
}

type tipOutput struct {
	Headline string `json:"headline"`
	Advice   string `json:"advice"`
}

// PracticeTip comments on a finished practice session.
func (s *Service) PracticeTip(ctx context.Context, input TipInput) (*Tip, error) {
	ctx = llm.WithPurpose(ctx, "practice-tip")

	req := llm.Request{
		System:      tipSystemPrompt,
		Prompt:      buildTipUserMessage(input),
		Schema:      TipSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("practice tip generation: %w", err)
	}

	var out tipOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse practice tip response: %w", err)
	}
	return &Tip{Headline: out.Headline, Advice: out.Advice}, nil
}

// MissedFrom builds the missed-question list for a finished attempt.
func MissedFrom(questions []assessment.Question, r *assessment.Result) []Missed {
	if r == nil {
		return nil
	}
	var out []Missed
	for _, i := range r.Missed(questions) {
		q := questions[i]
		m := Missed{QuestionID: q.ID, Prompt: q.Prompt, Correct: q.Options[q.Correct]}
		if i < len(r.Answers) {
			if a := r.Answers[i]; a >= 0 && a < len(q.Options) {
				m.Chosen = q.Options[a]
			}
		}
		out = append(out, m)
	}
	return out
}
