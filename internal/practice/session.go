// Package practice implements the tap-driven compression practice loop.
package practice

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
)

// State is the phase of a practice session.
type State int

const (
	Idle State = iota
	Active
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Epoch identifies one uninterrupted Active period. A tick carrying an
// older epoch is stale and must be dropped.
type Epoch uint64

// Recorder receives practice minutes when a session is reset.
type Recorder interface {
	AddPracticeTime(minutes int)
}

// Summary describes a finished session.
type Summary struct {
	ID           string
	StartedAt    time.Time
	Compressions int
	// CorrectRate is the technique score: 85 when the final rate was on
	// target, 60 otherwise.
	CorrectRate int
	AvgDepth    int
	AvgRate     int
	Duration    int // seconds
	Minutes     int // credited to the recorder
	Tier        Tier
}

const (
	onTargetScore    = 85
	offTargetScore   = 60
	placeholderDepth = 85
)

// Session is a single practice session state machine. It is not safe for
// concurrent use; drive it from the UI goroutine.
type Session struct {
	state    State
	epoch    Epoch
	elapsed  int
	count    int
	rate     int
	tier     Tier
	feedback string

	id        string
	startedAt time.Time
	last      *Summary

	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession creates an idle session that credits minutes to rec. rec may
// be nil.
func NewSession(rec Recorder, opts ...Option) *Session {
	s := &Session{
		recorder: rec,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) State() State          { return s.state }
func (s *Session) Epoch() Epoch          { return s.epoch }
func (s *Session) Elapsed() int          { return s.elapsed }
func (s *Session) Compressions() int     { return s.count }
func (s *Session) Rate() int             { return s.rate }
func (s *Session) Tier() Tier            { return s.tier }
func (s *Session) Feedback() string      { return s.feedback }
func (s *Session) LastSummary() *Summary { return s.last }

// Start begins a fresh session from Idle or resumes a paused one. It
// returns the epoch the caller must attach to ticks, and false if the
// session was already active.
func (s *Session) Start() (Epoch, bool) {
	switch s.state {
	case Active:
		return s.epoch, false
	case Idle:
		s.elapsed = 0
		s.count = 0
		s.rate = 0
		s.tier = TierNone
		s.id = uuid.NewString()
		s.startedAt = s.now()
		s.feedback = startedFeedback
		s.logger.Debug("practice started", slog.String("session_id", s.id))
	case Paused:
		if s.tier != TierNone {
			s.feedback = s.tier.Advice()
		} else {
			s.feedback = startedFeedback
		}
		s.logger.Debug("practice resumed", slog.String("session_id", s.id))
	}
	s.state = Active
	s.epoch++
	return s.epoch, true
}

// Resume is Start for a paused session.
func (s *Session) Resume() (Epoch, bool) {
	if s.state != Paused {
		return s.epoch, false
	}
	return s.Start()
}

// Pause freezes an active session. It is a no-op in any other state.
func (s *Session) Pause() bool {
	if s.state != Active {
		return false
	}
	s.state = Paused
	s.epoch++
	s.feedback = pausedFeedback
	return true
}

// Tick advances the clock by one second. It reports whether the tick was
// accepted; callers re-arm the timer only when it was.
func (s *Session) Tick(e Epoch) bool {
	if s.state != Active || e != s.epoch {
		return false
	}
	s.elapsed++
	return true
}

// Tap registers one compression. Taps outside Active are ignored.
func (s *Session) Tap() bool {
	if s.state != Active {
		return false
	}
	s.count++
	s.rate = Rate(s.count, s.elapsed)
	s.tier = Classify(s.rate)
	s.feedback = s.tier.Advice()
	return true
}

// Reset ends the session from any state and returns to Idle. When any
// time has elapsed a summary is produced and the rounded minutes are
// credited to the recorder; otherwise it returns nil.
func (s *Session) Reset() *Summary {
	var sum *Summary
	if s.elapsed > 0 {
		score := offTargetScore
		if s.rate >= MinTargetRate && s.rate <= MaxTargetRate {
			score = onTargetScore
		}
		sum = &Summary{
			ID:           s.id,
			StartedAt:    s.startedAt,
			Compressions: s.count,
			CorrectRate:  score,
			AvgDepth:     placeholderDepth,
			AvgRate:      s.rate,
			Duration:     s.elapsed,
			Minutes:      int(math.Round(float64(s.elapsed) / 60)),
			Tier:         s.tier,
		}
		if s.recorder != nil {
			s.recorder.AddPracticeTime(sum.Minutes)
		}
		s.last = sum
		s.logger.Info("practice session finished",
			slog.String("session_id", sum.ID),
			slog.Int("compressions", sum.Compressions),
			slog.Int("rate", sum.AvgRate),
			slog.Int("duration_s", sum.Duration),
			slog.Int("minutes", sum.Minutes),
		)
	}

	s.state = Idle
	s.epoch++
	s.elapsed = 0
	s.count = 0
	s.rate = 0
	s.tier = TierNone
	s.feedback = ""
	return sum
}

// Rate is compressions per minute, rounded, or 0 when no time has passed.
func Rate(count, elapsedSeconds int) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	return int(math.Round(float64(count) / (float64(elapsedSeconds) / 60)))
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
