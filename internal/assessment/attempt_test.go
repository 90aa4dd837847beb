package assessment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	scores map[string][]int
	certs  []string
}

func (f *fakeRecorder) UpdateAssessmentScore(id string, score int) {
	if f.scores == nil {
		f.scores = make(map[string][]int)
	}
	f.scores[id] = append(f.scores[id], score)
}

func (f *fakeRecorder) EarnCertification(id string) {
	f.certs = append(f.certs, id)
}

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

// answerCorrectly answers the first n questions correctly and the rest wrong.
func answerCorrectly(a *Attempt, n int) {
	for i, q := range a.Questions() {
		if i < n {
			a.SelectAnswer(i, q.Correct)
		} else {
			a.SelectAnswer(i, (q.Correct+1)%len(q.Options))
		}
	}
}

func TestBasicBankShape(t *testing.T) {
	require.Len(t, Basic, 8)
	seen := map[string]bool{}
	for _, q := range Basic {
		assert.False(t, seen[q.ID], "duplicate id %s", q.ID)
		seen[q.ID] = true
		assert.Len(t, q.Options, 4, q.ID)
		assert.True(t, q.Correct >= 0 && q.Correct < len(q.Options), q.ID)
		assert.NotEmpty(t, q.Explanation, q.ID)
	}
	assert.Equal(t, "100-120 compressions per minute", Basic[1].Options[Basic[1].Correct])
}

func TestNewAttemptStartsUnanswered(t *testing.T) {
	a := NewAttempt(nil)
	assert.NotEmpty(t, a.ID())
	assert.Equal(t, 0, a.Cursor())
	assert.Equal(t, 0, a.Answered())
	for i := range a.Questions() {
		assert.Equal(t, Unanswered, a.Answer(i))
	}
	assert.Equal(t, Unanswered, a.Answer(99))
	assert.False(t, a.Finished())
}

func TestPassingAttemptEarnsCertification(t *testing.T) {
	rec := &fakeRecorder{}
	clock := &stepClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), step: 95 * time.Second}
	a := NewAttempt(rec, WithClock(clock.now))
	answerCorrectly(a, 7)

	r := a.Finish()
	require.NotNil(t, r)
	assert.Equal(t, 88, r.Score)
	assert.Equal(t, 7, r.Correct)
	assert.Equal(t, 8, r.Total)
	assert.True(t, r.Passed)
	assert.Equal(t, CertificationID, r.CertificationID)
	assert.Equal(t, 95*time.Second, r.Duration)
	assert.Equal(t, "Good Job!", r.Grade())
	assert.Equal(t, []int{7}, r.Missed(a.Questions()))

	assert.Equal(t, []int{88}, rec.scores[ID])
	assert.Equal(t, []string{CertificationID}, rec.certs)
}

func TestFailingAttemptRecordsScoreOnly(t *testing.T) {
	rec := &fakeRecorder{}
	a := NewAttempt(rec)
	answerCorrectly(a, 6)

	r := a.Finish()
	assert.Equal(t, 75, r.Score)
	assert.False(t, r.Passed)
	assert.Empty(t, r.CertificationID)
	assert.Equal(t, "Keep Studying!", r.Grade())
	assert.Equal(t, []int{75}, rec.scores[ID])
	assert.Empty(t, rec.certs)
}

func TestPerfectScore(t *testing.T) {
	a := NewAttempt(nil)
	answerCorrectly(a, 8)
	r := a.Finish()
	assert.Equal(t, 100, r.Score)
	assert.Equal(t, "Excellent!", r.Grade())
	assert.Empty(t, r.Missed(a.Questions()))
}

func TestUnansweredCountsAsWrong(t *testing.T) {
	a := NewAttempt(nil)
	a.SelectAnswer(0, Basic[0].Correct)
	r := a.Finish()
	assert.Equal(t, 13, r.Score)
	assert.Equal(t, 1, r.Correct)
	assert.Len(t, r.Missed(a.Questions()), 7)
}

func TestOutOfRangeOptionIsWrong(t *testing.T) {
	a := NewAttempt(nil)
	a.SelectAnswer(0, 42)
	assert.Equal(t, 42, a.Answer(0))
	r := a.Finish()
	assert.Equal(t, 0, r.Correct)
}

func TestSelectReplacesEarlierChoice(t *testing.T) {
	a := NewAttempt(nil)
	a.Select(3)
	a.Select(Basic[0].Correct)
	assert.Equal(t, Basic[0].Correct, a.Answer(0))
	assert.Equal(t, 1, a.Answered())
}

func TestNavigationClamps(t *testing.T) {
	a := NewAttempt(nil)
	a.Retreat()
	assert.Equal(t, 0, a.Cursor())

	for i := 0; i < 7; i++ {
		assert.Nil(t, a.Advance())
	}
	assert.Equal(t, 7, a.Cursor())
	assert.Equal(t, "q8", a.Current().ID)

	a.Retreat()
	assert.Equal(t, 6, a.Cursor())
}

func TestAdvancePastLastFinishes(t *testing.T) {
	rec := &fakeRecorder{}
	a := NewAttempt(rec)
	answerCorrectly(a, 8)
	var r *Result
	for r == nil {
		r = a.Advance()
	}
	assert.True(t, a.Finished())
	assert.Equal(t, 100, r.Score)
	assert.Same(t, r, a.Advance())
}

func TestFinishTwiceRecordsOnce(t *testing.T) {
	rec := &fakeRecorder{}
	a := NewAttempt(rec)
	answerCorrectly(a, 8)
	first := a.Finish()
	second := a.Finish()
	assert.Same(t, first, second)
	assert.Len(t, rec.scores[ID], 1)
	assert.Len(t, rec.certs, 1)
}

func TestAnswersFrozenAfterFinish(t *testing.T) {
	a := NewAttempt(nil)
	a.Finish()
	a.SelectAnswer(0, Basic[0].Correct)
	assert.Equal(t, Unanswered, a.Answer(0))
}

func TestRetakeResets(t *testing.T) {
	rec := &fakeRecorder{}
	a := NewAttempt(rec)
	firstID := a.ID()
	answerCorrectly(a, 8)
	a.Advance()
	a.Finish()

	a.Retake()
	assert.NotEqual(t, firstID, a.ID())
	assert.False(t, a.Finished())
	assert.Equal(t, 0, a.Cursor())
	assert.Equal(t, 0, a.Answered())

	answerCorrectly(a, 2)
	a.Finish()
	assert.Equal(t, []int{100, 25}, rec.scores[ID])
	assert.Len(t, rec.certs, 1)
}

func TestScoreEmptyBank(t *testing.T) {
	r := Score(nil, nil)
	assert.Equal(t, 0, r.Score)
	assert.False(t, r.Passed)
}
