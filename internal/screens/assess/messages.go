package assess

import (
	"github.com/abhisek/cprcoach/internal/assessment"
	"github.com/abhisek/cprcoach/internal/coach"
)

// debriefReadyMsg carries the coach's explanation for a finished attempt.
type debriefReadyMsg struct {
	attemptID string
	debrief   *coach.Debrief
	err       error
}

// FinishedMsg is emitted once per finished attempt.
type FinishedMsg struct {
	Result assessment.Result
}
