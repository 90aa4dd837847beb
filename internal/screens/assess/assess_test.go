package assess

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cprcoach/internal/assessment"
	"github.com/abhisek/cprcoach/internal/coach"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/screen"
)

type mockCoach struct {
	calls int
	last  coach.DebriefInput
}

func (m *mockCoach) Debrief(_ context.Context, in coach.DebriefInput) (*coach.Debrief, error) {
	m.calls++
	m.last = in
	return &coach.Debrief{Summary: "Almost there.", Encouragement: "Try again!"}, nil
}

func keyMsg(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// answerAll answers every question, correctly unless listed in wrong, and
// returns the command produced by the final "next".
func answerAll(a *AssessScreen, wrong map[int]bool) tea.Cmd {
	var cmd tea.Cmd
	for i, q := range assessment.Basic {
		opt := q.Correct
		if wrong[i] {
			opt = (q.Correct + 1) % len(q.Options)
		}
		a.Update(keyMsg(rune('1' + opt)))
		_, cmd = a.Update(keyMsg('n'))
	}
	return cmd
}

func TestStartFromIntro(t *testing.T) {
	a := New(progress.NewStore(), nil, nil)
	if !strings.Contains(a.View(100, 80), "Assessment Details") {
		t.Error("intro should show details")
	}
	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if a.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", a.phase)
	}
	if !strings.Contains(a.View(100, 80), "Question 1 of 8") {
		t.Error("question view should show position")
	}
}

func TestPassingAttemptRecordsScoreAndCertification(t *testing.T) {
	st := progress.NewStore()
	a := New(st, nil, nil)
	a.Update(keyMsg('s'))

	msgs := collect(answerAll(a, map[int]bool{3: true}))
	if a.phase != phaseResults {
		t.Fatalf("phase = %v, want results", a.phase)
	}
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	fin, ok := msgs[0].(FinishedMsg)
	if !ok {
		t.Fatalf("expected FinishedMsg, got %T", msgs[0])
	}
	if fin.Result.Score != 88 || !fin.Result.Passed {
		t.Errorf("result = %+v", fin.Result)
	}

	p := st.Progress()
	if p.AssessmentScores[assessment.ID] != 88 {
		t.Errorf("recorded score = %d", p.AssessmentScores[assessment.ID])
	}
	if !p.HasCertification(assessment.CertificationID) {
		t.Error("expected certification")
	}

	view := a.View(100, 200)
	for _, want := range []string{"Congratulations!", "Good Job!", "Certification Earned!", "Your answer:"} {
		if !strings.Contains(view, want) {
			t.Errorf("results missing %q", want)
		}
	}
}

func TestFailingAttempt(t *testing.T) {
	st := progress.NewStore()
	a := New(st, nil, nil)
	a.Update(keyMsg('s'))
	answerAll(a, map[int]bool{0: true, 1: true})

	p := st.Progress()
	if p.AssessmentScores[assessment.ID] != 75 {
		t.Errorf("score = %d, want 75", p.AssessmentScores[assessment.ID])
	}
	if len(p.CertificationsEarned) != 0 {
		t.Error("failing attempt must not certify")
	}
	if !strings.Contains(a.View(100, 200), "Keep Studying!") {
		t.Error("expected failing grade")
	}
}

func TestNavigationKeepsAnswers(t *testing.T) {
	a := New(progress.NewStore(), nil, nil)
	a.Update(keyMsg('s'))

	a.Update(keyMsg('2'))
	a.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	a.Update(tea.KeyPressMsg{Code: tea.KeyLeft})

	if a.attempt.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", a.attempt.Cursor())
	}
	if a.choice.ChosenIndex != 1 {
		t.Errorf("restored choice = %d, want 1", a.choice.ChosenIndex)
	}

	a.Update(keyMsg('b'))
	if a.attempt.Cursor() != 0 {
		t.Error("previous on first question should stay put")
	}
}

func TestArrowsAndEnterSelect(t *testing.T) {
	a := New(progress.NewStore(), nil, nil)
	a.Update(keyMsg('s'))
	a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	a.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	a.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if got := a.attempt.Answer(0); got != 2 {
		t.Errorf("answer = %d, want 2", got)
	}
}

func TestFinishEarlyCountsUnanswered(t *testing.T) {
	st := progress.NewStore()
	a := New(st, nil, nil)
	a.Update(keyMsg('s'))
	a.Update(keyMsg(rune('1' + assessment.Basic[0].Correct)))
	a.Update(keyMsg('f'))

	if a.phase != phaseResults {
		t.Fatal("f should finish the attempt")
	}
	if got := st.Progress().AssessmentScores[assessment.ID]; got != 13 {
		t.Errorf("score = %d, want 13", got)
	}
	if !strings.Contains(a.View(100, 200), "(no answer)") {
		t.Error("review should flag unanswered questions")
	}
}

func TestEscAbandonsWithoutRecording(t *testing.T) {
	st := progress.NewStore()
	a := New(st, nil, nil)
	a.Update(keyMsg('s'))
	a.Update(keyMsg('1'))
	a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})

	if a.phase != phaseIntro {
		t.Errorf("phase = %v, want intro", a.phase)
	}
	if len(st.Progress().AssessmentScores) != 0 {
		t.Error("abandoned attempt must not record a score")
	}
}

func TestRetakeStartsFresh(t *testing.T) {
	a := New(progress.NewStore(), nil, nil)
	a.Update(keyMsg('s'))
	answerAll(a, nil)
	first := a.attempt.ID()

	a.Update(keyMsg('r'))
	if a.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", a.phase)
	}
	if a.attempt.ID() == first {
		t.Error("retake should start a new attempt")
	}
	if a.attempt.Answered() != 0 {
		t.Error("retake should clear answers")
	}
}

func TestContinueLearning(t *testing.T) {
	a := New(progress.NewStore(), nil, nil)
	a.Update(keyMsg('s'))
	answerAll(a, nil)

	_, cmd := a.Update(keyMsg('l'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if msg, ok := cmd().(screen.SwitchTabMsg); !ok || msg.Tab != screen.TabLearn {
		t.Errorf("got %#v, want switch to learn", cmd())
	}
}

func TestCoachDebriefOnMisses(t *testing.T) {
	st := progress.NewStore()
	mc := &mockCoach{}
	a := New(st, mc, nil)
	a.Update(keyMsg('s'))

	msgs := collect(answerAll(a, map[int]bool{5: true}))
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want finish + debrief", len(msgs))
	}
	for _, m := range msgs {
		a.Update(m)
	}
	if mc.calls != 1 || len(mc.last.Missed) != 1 || mc.last.Missed[0].QuestionID != "q6" {
		t.Errorf("debrief input = %+v", mc.last)
	}
	if !strings.Contains(a.View(100, 200), "Almost there.") {
		t.Error("results should include the debrief")
	}
}

func TestNoDebriefOnPerfectScore(t *testing.T) {
	mc := &mockCoach{}
	a := New(progress.NewStore(), mc, nil)
	a.Update(keyMsg('s'))

	msgs := collect(answerAll(a, nil))
	if len(msgs) != 1 || mc.calls != 0 {
		t.Errorf("perfect score should not ask the coach: msgs=%d calls=%d", len(msgs), mc.calls)
	}
}

func TestIntroListsHistory(t *testing.T) {
	st := progress.NewStore()
	st.UpdateAssessmentScore(assessment.ID, 92)
	st.EarnCertification(assessment.CertificationID)

	view := New(st, nil, nil).View(100, 200)
	for _, want := range []string{"Previous Attempts", "CPR Basic Assessment", "92%", "CPR Basic Certification"} {
		if !strings.Contains(view, want) {
			t.Errorf("intro missing %q", want)
		}
	}
}

func TestReopenLastResults(t *testing.T) {
	a := New(progress.NewStore(), nil, nil)
	a.Update(keyMsg('v'))
	if a.phase != phaseIntro {
		t.Fatal("nothing to reopen before an attempt")
	}

	a.Update(keyMsg('s'))
	answerAll(a, nil)
	a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if a.phase != phaseIntro {
		t.Fatalf("phase = %v, want intro", a.phase)
	}
	a.Update(keyMsg('v'))
	if a.phase != phaseResults {
		t.Fatalf("phase = %v, want results", a.phase)
	}

	// An abandoned retake leaves nothing to reopen.
	a.Update(keyMsg('r'))
	a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	a.Update(keyMsg('v'))
	if a.phase != phaseIntro {
		t.Errorf("phase = %v, want intro after abandoned retake", a.phase)
	}
}
