// Package assessment runs the CPR knowledge quiz and awards certification.
package assessment

import (
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

const (
	// ID is the assessment identifier scores are recorded under.
	ID = "cpr-basic"
	// CertificationID is awarded on a passing attempt.
	CertificationID = "cpr-basic"
	// CertificationName is the display name of CertificationID.
	CertificationName = "CPR Basic Certification"
	// PassScore is the minimum passing percentage.
	PassScore = 80
)

// Unanswered marks a question with no recorded choice.
const Unanswered = -1

// Recorder receives assessment outcomes.
type Recorder interface {
	UpdateAssessmentScore(assessmentID string, score int)
	EarnCertification(certID string)
}

// Result is the outcome of a finished attempt.
type Result struct {
	AttemptID       string
	Score           int
	Correct         int
	Total           int
	Passed          bool
	CertificationID string
	Duration        time.Duration
	Answers         []int
	FinishedAt      time.Time
}

// Grade returns the headline for a score.
func (r Result) Grade() string {
	switch {
	case r.Score >= 90:
		return "Excellent!"
	case r.Score >= PassScore:
		return "Good Job!"
	default:
		return "Keep Studying!"
	}
}

// Missed returns the indexes of questions not answered correctly.
func (r Result) Missed(questions []Question) []int {
	var out []int
	for i, q := range questions {
		if i >= len(r.Answers) || r.Answers[i] != q.Correct {
			out = append(out, i)
		}
	}
	return out
}

// Attempt is one run through the quiz.
type Attempt struct {
	id        string
	questions []Question
	answers   []int
	cursor    int
	startedAt time.Time
	result    *Result

	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures an Attempt.
type Option func(*Attempt)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(a *Attempt) { a.now = now }
}

// WithLogger sets the attempt logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Attempt) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithQuestions replaces the question bank.
func WithQuestions(qs []Question) Option {
	return func(a *Attempt) { a.questions = qs }
}

// NewAttempt starts an attempt on the Basic quiz. rec may be nil.
func NewAttempt(rec Recorder, opts ...Option) *Attempt {
	a := &Attempt{
		questions: Basic,
		recorder:  rec,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.begin()
	return a
}

func (a *Attempt) begin() {
	a.id = uuid.NewString()
	a.answers = make([]int, len(a.questions))
	for i := range a.answers {
		a.answers[i] = Unanswered
	}
	a.cursor = 0
	a.result = nil
	a.startedAt = a.now()
}

func (a *Attempt) ID() string            { return a.id }
func (a *Attempt) Questions() []Question { return a.questions }
func (a *Attempt) Cursor() int           { return a.cursor }
func (a *Attempt) Len() int              { return len(a.questions) }
func (a *Attempt) Result() *Result       { return a.result }
func (a *Attempt) Finished() bool        { return a.result != nil }
func (a *Attempt) StartedAt() time.Time  { return a.startedAt }

// Current returns the question under the cursor.
func (a *Attempt) Current() Question {
	return a.questions[a.cursor]
}

// Answer returns the recorded choice for question i, or Unanswered.
func (a *Attempt) Answer(i int) int {
	if i < 0 || i >= len(a.answers) {
		return Unanswered
	}
	return a.answers[i]
}

// Answered counts questions with a recorded choice.
func (a *Attempt) Answered() int {
	n := 0
	for _, v := range a.answers {
		if v != Unanswered {
			n++
		}
	}
	return n
}

// SelectAnswer records option for question, replacing any earlier choice.
// The option index is not range-checked. Answers after Finish are ignored.
func (a *Attempt) SelectAnswer(question, option int) {
	if a.result != nil || question < 0 || question >= len(a.answers) {
		return
	}
	a.answers[question] = option
}

// Select records option for the current question.
func (a *Attempt) Select(option int) {
	a.SelectAnswer(a.cursor, option)
}

// Advance moves to the next question. On the last question it finishes
// the attempt and returns the result; otherwise it returns nil.
func (a *Attempt) Advance() *Result {
	if a.result != nil {
		return a.result
	}
	if a.cursor < len(a.questions)-1 {
		a.cursor++
		return nil
	}
	return a.Finish()
}

// Retreat moves to the previous question, stopping at the first.
func (a *Attempt) Retreat() {
	if a.result == nil && a.cursor > 0 {
		a.cursor--
	}
}

// Finish scores the attempt. The score is always recorded; the
// certification only on a pass. Calling Finish again returns the same
// result without recording twice.
func (a *Attempt) Finish() *Result {
	if a.result != nil {
		return a.result
	}
	finished := a.now()
	r := Score(a.questions, a.answers)
	r.AttemptID = a.id
	r.Duration = finished.Sub(a.startedAt).Round(time.Second)
	r.FinishedAt = finished
	a.result = &r

	if a.recorder != nil {
		a.recorder.UpdateAssessmentScore(ID, r.Score)
		if r.Passed {
			a.recorder.EarnCertification(r.CertificationID)
		}
	}
	a.logger.Info("assessment finished",
		slog.String("attempt_id", r.AttemptID),
		slog.Int("score", r.Score),
		slog.Int("correct", r.Correct),
		slog.Bool("passed", r.Passed),
	)
	return a.result
}

// Retake discards answers and the cursor and starts over. Recorded scores
// are left alone.
func (a *Attempt) Retake() {
	a.begin()
}

// Score grades answers against questions. Missing and out-of-range answers
// count as wrong.
func Score(questions []Question, answers []int) Result {
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.Correct {
			correct++
		}
	}
	r := Result{
		Correct: correct,
		Total:   len(questions),
		Answers: append([]int(nil), answers...),
	}
	if r.Total > 0 {
		r.Score = int(math.Round(100 * float64(correct) / float64(r.Total)))
	}
	r.Passed = r.Score >= PassScore
	if r.Passed {
		r.CertificationID = CertificationID
	}
	return r
}
