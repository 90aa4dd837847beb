package coach

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/abhisek/cprcoach/internal/assessment"
	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/llm"
	"github.com/abhisek/cprcoach/internal/practice"
	"github.com/abhisek/cprcoach/internal/progress"
)

func validDebriefJSON() json.RawMessage {
	return json.RawMessage(`{
		"summary": "You know the basics but mixed up the compression rate.",
		"points": [
			{"question_id": "q2", "text": "Guidelines call for 100 to 120 compressions per minute."}
		],
		"encouragement": "One more try and you will have it."
	}`)
}

func TestService_Debrief(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validDebriefJSON()})
	svc := NewService(mock, DefaultConfig())

	d, err := svc.Debrief(t.Context(), DebriefInput{
		Lang:     i18n.English,
		AgeGroup: progress.Adults,
		Score:    88,
		Passed:   true,
		Missed: []Missed{{
			QuestionID: "q2",
			Prompt:     "What is the correct compression rate for CPR?",
			Chosen:     "80-100 compressions per minute",
			Correct:    "100-120 compressions per minute",
		}},
	})
	if err != nil {
		t.Fatalf("Debrief: %v", err)
	}
	if len(d.Points) != 1 || d.Points[0].QuestionID != "q2" {
		t.Errorf("unexpected points: %+v", d.Points)
	}
	if d.Encouragement == "" {
		t.Error("expected encouragement")
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "assessment-debrief" {
		t.Error("expected schema name 'assessment-debrief'")
	}
	msg := req.Prompt
	for _, want := range []string{"Score: 88% (passed)", "[q2]", "Learner answered: 80-100", "Respond in: English"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestService_DebriefProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.Error{Kind: llm.KindRateLimited, Provider: "mock"}})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Debrief(t.Context(), DebriefInput{})
	if !llm.IsKind(err, llm.KindRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
}

func TestService_DebriefBadJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`"nope"`)})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Debrief(t.Context(), DebriefInput{}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestService_PracticeTip(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"headline": "Speed up a little", "advice": "Aim for the beat of a fast song."}`),
	})
	svc := NewService(mock, DefaultConfig())

	tip, err := svc.PracticeTip(t.Context(), TipInput{
		Lang:     i18n.Spanish,
		AgeGroup: progress.Children,
		Summary: practice.Summary{
			Compressions: 90,
			AvgRate:      90,
			Duration:     60,
			Tier:         practice.TierTooSlow,
		},
	})
	if err != nil {
		t.Fatalf("PracticeTip: %v", err)
	}
	if tip.Headline != "Speed up a little" {
		t.Errorf("headline = %q", tip.Headline)
	}

	req := mock.Calls[0]
	if req.Schema.Name != "practice-tip" {
		t.Errorf("schema = %q", req.Schema.Name)
	}
	msg := req.Prompt
	for _, want := range []string{"Session length: 1:00", "Final rate: 90", "Push faster", "Español", "child"} {
		if !strings.Contains(msg, want) {
			t.Errorf("prompt missing %q:\n%s", want, msg)
		}
	}
}

func TestMissedFrom(t *testing.T) {
	a := assessment.NewAttempt(nil)
	for i, q := range a.Questions() {
		a.SelectAnswer(i, q.Correct)
	}
	a.SelectAnswer(2, 0)
	a.SelectAnswer(4, assessment.Unanswered)
	r := a.Finish()

	missed := MissedFrom(a.Questions(), r)
	if len(missed) != 2 {
		t.Fatalf("expected 2 missed, got %d", len(missed))
	}
	if missed[0].QuestionID != "q3" || missed[0].Chosen != "At least 1 inch (2.5 cm)" {
		t.Errorf("unexpected first miss: %+v", missed[0])
	}
	if missed[1].QuestionID != "q5" || missed[1].Chosen != "" {
		t.Errorf("unexpected second miss: %+v", missed[1])
	}
	if MissedFrom(a.Questions(), nil) != nil {
		t.Error("expected nil for nil result")
	}
}
