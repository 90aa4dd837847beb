package practice

import (
	"github.com/abhisek/cprcoach/internal/coach"
	drill "github.com/abhisek/cprcoach/internal/practice"
)

// tickMsg is the one-second clock for the session identified by epoch.
type tickMsg struct {
	epoch drill.Epoch
}

// tipReadyMsg carries the coach's comment on a finished session.
type tipReadyMsg struct {
	sessionID string
	tip       *coach.Tip
	err       error
}

// FinishedMsg is emitted when a session with elapsed time is reset.
type FinishedMsg struct {
	Summary drill.Summary
}
