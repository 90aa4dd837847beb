package coach

import (
	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/practice"
	"github.com/abhisek/cprcoach/internal/progress"
)

// Debrief explains a finished assessment.
type Debrief struct {
	Summary       string
	Points        []Point
	Encouragement string
}

// Point is the explanation for one missed question.
type Point struct {
	QuestionID string
	Text       string
}

// Missed is a wrongly answered (or skipped) question.
type Missed struct {
	QuestionID string
	Prompt     string
	Chosen     string // empty when unanswered
	Correct    string
}

// DebriefInput holds the context for a quiz debrief.
type DebriefInput struct {
	Lang     i18n.Lang
	AgeGroup progress.AgeGroup
	Score    int
	Passed   bool
	Missed   []Missed
}

// Tip comments on a finished practice session.
type Tip struct {
	Headline string
	Advice   string
}

// TipInput holds the context for a practice tip.
type TipInput struct {
	Lang     i18n.Lang
	AgeGroup progress.AgeGroup
	Summary  practice.Summary
}
