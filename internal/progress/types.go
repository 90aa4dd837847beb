package progress

import "github.com/abhisek/cprcoach/internal/i18n"

// AgeGroup selects the presentation theme and some display text.
type AgeGroup string

const (
	Children AgeGroup = "children"
	Teens    AgeGroup = "teens"
	Adults   AgeGroup = "adults"
)

// AgeGroups lists the groups in display order.
var AgeGroups = []AgeGroup{Children, Teens, Adults}

// Valid reports whether g is a known age group.
func (g AgeGroup) Valid() bool {
	switch g {
	case Children, Teens, Adults:
		return true
	}
	return false
}

// LabelKey returns the translation key for the group's label.
func (g AgeGroup) LabelKey() i18n.Key {
	switch g {
	case Children:
		return i18n.SettingsChildren
	case Teens:
		return i18n.SettingsTeens
	}
	return i18n.SettingsAdults
}

// TrainingMode is the part of the app the learner last worked in.
type TrainingMode string

const (
	ModeTutorial   TrainingMode = "tutorial"
	ModePractice   TrainingMode = "practice"
	ModeAssessment TrainingMode = "assessment"
)

// Settings are the learner's presentation preferences.
type Settings struct {
	Language         i18n.Lang `json:"language"`
	AgeGroup         AgeGroup  `json:"age_group"`
	SoundEnabled     bool      `json:"sound_enabled"`
	HapticsEnabled   bool      `json:"haptics_enabled"`
	HighContrastMode bool      `json:"high_contrast_mode"`
	ProfileName      string    `json:"profile_name,omitempty"`
}

// Progress is everything the learner has accomplished.
type Progress struct {
	CompletedLessons     []string       `json:"completed_lessons"`
	AssessmentScores     map[string]int `json:"assessment_scores"`
	PracticeTime         int            `json:"practice_time"`
	CertificationsEarned []string       `json:"certifications_earned"`
}

// Snapshot is a copy of the store's state. Mutating it has no effect on
// the store.
type Snapshot struct {
	Settings      Settings     `json:"settings"`
	Progress      Progress     `json:"progress"`
	CurrentMode   TrainingMode `json:"current_mode"`
	CurrentLesson string       `json:"current_lesson,omitempty"`
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{
		Language:       i18n.DefaultLang,
		AgeGroup:       Adults,
		SoundEnabled:   true,
		HapticsEnabled: true,
	}
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Progress.CompletedLessons = append([]string(nil), s.Progress.CompletedLessons...)
	out.Progress.CertificationsEarned = append([]string(nil), s.Progress.CertificationsEarned...)
	out.Progress.AssessmentScores = make(map[string]int, len(s.Progress.AssessmentScores))
	for k, v := range s.Progress.AssessmentScores {
		out.Progress.AssessmentScores[k] = v
	}
	return out
}

// AverageScore is the mean of all recorded assessment scores, 0 if none.
func (p Progress) AverageScore() int {
	if len(p.AssessmentScores) == 0 {
		return 0
	}
	sum := 0
	for _, v := range p.AssessmentScores {
		sum += v
	}
	return int(float64(sum)/float64(len(p.AssessmentScores)) + 0.5)
}

// CompletionPercent is the share of total lessons completed, counting
// repeated completions. It is not clamped.
func (p Progress) CompletionPercent(total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(len(p.CompletedLessons)) / float64(total) * 100
}

// RecentLessons returns up to n of the most recently completed lessons,
// oldest first.
func (p Progress) RecentLessons(n int) []string {
	if n <= 0 {
		return nil
	}
	l := p.CompletedLessons
	if len(l) > n {
		l = l[len(l)-n:]
	}
	return append([]string(nil), l...)
}

// HasCompleted reports whether id appears in the completed lessons.
func (p Progress) HasCompleted(id string) bool {
	for _, l := range p.CompletedLessons {
		if l == id {
			return true
		}
	}
	return false
}

// HasCertification reports whether id has been earned at least once.
func (p Progress) HasCertification(id string) bool {
	for _, c := range p.CertificationsEarned {
		if c == id {
			return true
		}
	}
	return false
}
