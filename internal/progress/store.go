// Package progress owns the learner's settings and accumulated progress.
//
// A Store is created once at startup and handed to every screen. All
// mutation happens on the UI goroutine, so the store does no locking.
// Subscribers are notified synchronously after each change.
package progress

import (
	"log/slog"

	"github.com/abhisek/cprcoach/internal/i18n"
)

// Listener receives a copy of the state after every mutation.
type Listener func(Snapshot)

// Store is the single writable handle on settings and progress.
type Store struct {
	state     Snapshot
	listeners []subscription
	nextID    int
	logger    *slog.Logger
}

type subscription struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSettings overrides the initial settings.
func WithSettings(settings Settings) Option {
	return func(s *Store) {
		s.state.Settings = settings
	}
}

// NewStore creates a store with default settings and empty progress.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state: Snapshot{
			Settings: DefaultSettings(),
			Progress: Progress{
				AssessmentScores: map[string]int{},
			},
			CurrentMode: ModeTutorial,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	return s.state.clone()
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	return s.state.Settings
}

// Progress returns a copy of the current progress.
func (s *Store) Progress() Progress {
	return s.state.clone().Progress
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(action string) {
	s.logger.Debug("progress updated", slog.String("action", action))
	if len(s.listeners) == 0 {
		return
	}
	subs := append([]subscription(nil), s.listeners...)
	for _, sub := range subs {
		sub.fn(s.state.clone())
	}
}

func (s *Store) SetLanguage(lang i18n.Lang) {
	s.state.Settings.Language = lang
	s.notify("set_language")
}

func (s *Store) SetAgeGroup(group AgeGroup) {
	s.state.Settings.AgeGroup = group
	s.notify("set_age_group")
}

func (s *Store) SetSoundEnabled(enabled bool) {
	s.state.Settings.SoundEnabled = enabled
	s.notify("set_sound")
}

func (s *Store) SetHapticsEnabled(enabled bool) {
	s.state.Settings.HapticsEnabled = enabled
	s.notify("set_haptics")
}

func (s *Store) SetHighContrastMode(enabled bool) {
	s.state.Settings.HighContrastMode = enabled
	s.notify("set_high_contrast")
}

func (s *Store) SetProfileName(name string) {
	s.state.Settings.ProfileName = name
	s.notify("set_profile_name")
}

// SetCurrentMode records which part of the app the learner is in.
func (s *Store) SetCurrentMode(mode TrainingMode) {
	s.state.CurrentMode = mode
	s.notify("set_current_mode")
}

// SetCurrentLesson records the lesson being viewed; "" clears it.
func (s *Store) SetCurrentLesson(id string) {
	s.state.CurrentLesson = id
	s.notify("set_current_lesson")
}

// CompleteLesson records a lesson completion. Repeated completions of the
// same lesson are all kept.
func (s *Store) CompleteLesson(id string) {
	s.state.Progress.CompletedLessons = recordLessonCompletion(s.state.Progress.CompletedLessons, id)
	s.notify("complete_lesson")
}

// recordLessonCompletion is the single policy point for how completions
// accumulate.
func recordLessonCompletion(completed []string, id string) []string {
	return append(completed, id)
}

// UpdateAssessmentScore overwrites the latest score for an assessment.
func (s *Store) UpdateAssessmentScore(assessmentID string, score int) {
	if s.state.Progress.AssessmentScores == nil {
		s.state.Progress.AssessmentScores = map[string]int{}
	}
	s.state.Progress.AssessmentScores[assessmentID] = score
	s.notify("update_assessment_score")
}

// AddPracticeTime adds minutes to the practice total. The value is not
// clamped.
func (s *Store) AddPracticeTime(minutes int) {
	s.state.Progress.PracticeTime += minutes
	s.notify("add_practice_time")
}

// EarnCertification appends a certification. Earning the same one again
// appends it again.
func (s *Store) EarnCertification(id string) {
	s.state.Progress.CertificationsEarned = append(s.state.Progress.CertificationsEarned, id)
	s.notify("earn_certification")
}

// Restore replaces the whole state, for loading a saved journal.
func (s *Store) Restore(snap Snapshot) {
	s.state = snap.clone()
	if s.state.CurrentMode == "" {
		s.state.CurrentMode = ModeTutorial
	}
	s.notify("restore")
}
