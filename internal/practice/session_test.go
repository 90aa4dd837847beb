package practice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	minutes []int
}

func (r *recorder) AddPracticeTime(m int) { r.minutes = append(r.minutes, m) }

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		rate int
		want Tier
	}{
		{0, TierTooSlow},
		{99, TierTooSlow},
		{100, TierOnTarget},
		{110, TierOnTarget},
		{120, TierOnTarget},
		{121, TierTooFast},
		{300, TierTooFast},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.rate), "rate %d", tt.rate)
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0, Rate(5, 0))
	assert.Equal(t, 110, Rate(110, 60))
	assert.Equal(t, 120, Rate(2, 1))
	assert.Equal(t, 103, Rate(31, 18)) // 103.33
}

func TestRateBand(t *testing.T) {
	assert.Equal(t, BandGood, RateBand(100))
	assert.Equal(t, BandGood, RateBand(120))
	assert.Equal(t, BandWarn, RateBand(80))
	assert.Equal(t, BandWarn, RateBand(140))
	assert.Equal(t, BandBad, RateBand(79))
	assert.Equal(t, BandBad, RateBand(141))
	assert.Equal(t, BandGood, DepthBand(85))
	assert.Equal(t, BandWarn, DepthBand(60))
	assert.Equal(t, BandBad, DepthBand(59))
}

func TestEndToEndOnTarget(t *testing.T) {
	rec := &recorder{}
	s := NewSession(rec)

	epoch, ok := s.Start()
	require.True(t, ok)
	assert.Equal(t, Active, s.State())
	assert.Equal(t, startedFeedback, s.Feedback())

	taps := 0
	for sec := 1; sec <= 60; sec++ {
		require.True(t, s.Tick(epoch))
		for taps < sec*110/60 {
			require.True(t, s.Tap())
			taps++
		}
	}

	assert.Equal(t, 60, s.Elapsed())
	assert.Equal(t, 110, s.Compressions())
	assert.Equal(t, 110, s.Rate())
	assert.Equal(t, TierOnTarget, s.Tier())
	assert.Equal(t, "Perfect rate! Keep going", s.Feedback())

	sum := s.Reset()
	require.NotNil(t, sum)
	assert.Equal(t, []int{1}, rec.minutes)
	assert.Equal(t, 110, sum.Compressions)
	assert.Equal(t, 85, sum.CorrectRate)
	assert.Equal(t, 85, sum.AvgDepth)
	assert.Equal(t, 110, sum.AvgRate)
	assert.Equal(t, 60, sum.Duration)
	assert.NotEmpty(t, sum.ID)

	assert.Equal(t, Idle, s.State())
	assert.Zero(t, s.Elapsed())
	assert.Zero(t, s.Compressions())
	assert.Zero(t, s.Rate())
	assert.Empty(t, s.Feedback())
	assert.Same(t, sum, s.LastSummary())
}

func TestOffTargetScore(t *testing.T) {
	s := NewSession(nil)
	epoch, _ := s.Start()
	s.Tick(epoch)
	s.Tap() // 60/min

	assert.Equal(t, TierTooSlow, s.Tier())
	assert.Equal(t, "Push faster! Aim for 100-120 per minute", s.Feedback())

	sum := s.Reset()
	require.NotNil(t, sum)
	assert.Equal(t, 60, sum.CorrectRate)
	assert.Equal(t, 0, sum.Minutes)
}

func TestTooFastFeedback(t *testing.T) {
	s := NewSession(nil)
	epoch, _ := s.Start()
	s.Tick(epoch)
	s.Tap()
	s.Tap()
	s.Tap() // 180/min
	assert.Equal(t, TierTooFast, s.Tier())
	assert.Equal(t, "Slow down a bit. Keep it steady", s.Feedback())
}

func TestTapBeforeFirstTickRateIsZero(t *testing.T) {
	s := NewSession(nil)
	s.Start()
	require.True(t, s.Tap())
	assert.Equal(t, 1, s.Compressions())
	assert.Equal(t, 0, s.Rate())
	assert.Equal(t, TierTooSlow, s.Tier())
}

func TestIdleIgnoresInput(t *testing.T) {
	s := NewSession(nil)
	assert.False(t, s.Tap())
	assert.False(t, s.Pause())
	assert.False(t, s.Tick(s.Epoch()))
	assert.Equal(t, Idle, s.State())
	assert.Zero(t, s.Compressions())
}

func TestPauseFreezesCounters(t *testing.T) {
	s := NewSession(nil)
	epoch, _ := s.Start()
	s.Tick(epoch)
	s.Tap()

	require.True(t, s.Pause())
	assert.Equal(t, Paused, s.State())
	assert.Equal(t, pausedFeedback, s.Feedback())

	assert.False(t, s.Tap())
	assert.False(t, s.Tick(epoch))
	assert.False(t, s.Tick(s.Epoch()))
	assert.Equal(t, 1, s.Elapsed())
	assert.Equal(t, 1, s.Compressions())
	assert.False(t, s.Pause())
}

func TestResumeKeepsCounters(t *testing.T) {
	s := NewSession(nil)
	first, _ := s.Start()
	s.Tick(first)
	s.Tap()
	s.Pause()

	second, ok := s.Resume()
	require.True(t, ok)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, s.Elapsed())
	assert.Equal(t, 1, s.Compressions())

	assert.False(t, s.Tick(first), "tick from before the pause must be dropped")
	assert.True(t, s.Tick(second))
	assert.Equal(t, 2, s.Elapsed())
}

func TestResumeOnlyFromPaused(t *testing.T) {
	s := NewSession(nil)
	_, ok := s.Resume()
	assert.False(t, ok)
	assert.Equal(t, Idle, s.State())
}

func TestStartWhileActiveIsNoop(t *testing.T) {
	s := NewSession(nil)
	epoch, _ := s.Start()
	s.Tick(epoch)
	again, ok := s.Start()
	assert.False(t, ok)
	assert.Equal(t, epoch, again)
	assert.Equal(t, 1, s.Elapsed())
}

func TestResetInvalidatesTicks(t *testing.T) {
	s := NewSession(nil)
	epoch, _ := s.Start()
	s.Tick(epoch)
	s.Reset()

	next, _ := s.Start()
	assert.False(t, s.Tick(epoch))
	assert.True(t, s.Tick(next))
	assert.Equal(t, 1, s.Elapsed())
}

func TestResetFromPausedCommits(t *testing.T) {
	rec := &recorder{}
	s := NewSession(rec)
	epoch, _ := s.Start()
	for i := 0; i < 90; i++ {
		s.Tick(epoch)
	}
	s.Pause()

	sum := s.Reset()
	require.NotNil(t, sum)
	assert.Equal(t, 90, sum.Duration)
	assert.Equal(t, []int{2}, rec.minutes) // 1.5 rounds up
}

func TestResetWithoutElapsedTimeRecordsNothing(t *testing.T) {
	rec := &recorder{}
	s := NewSession(rec)
	s.Start()
	s.Tap()
	assert.Nil(t, s.Reset())
	assert.Empty(t, rec.minutes)
	assert.Nil(t, s.Reset())
}

func TestStartFromIdleClearsCounters(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSession(nil, WithClock(func() time.Time { return now }))
	epoch, _ := s.Start()
	s.Tick(epoch)
	s.Tap()
	s.Reset()

	s.Start()
	assert.Zero(t, s.Elapsed())
	assert.Zero(t, s.Compressions())
	assert.Equal(t, TierNone, s.Tier())
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "0:00", FormatClock(0))
	assert.Equal(t, "1:05", FormatClock(65))
	assert.Equal(t, "12:00", FormatClock(720))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "State(9)", State(9).String())
}
