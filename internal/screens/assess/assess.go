// Package assess is the certification quiz tab.
package assess

import (
	"context"
	"log/slog"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cprcoach/internal/assessment"
	"github.com/abhisek/cprcoach/internal/coach"
	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/screen"
	"github.com/abhisek/cprcoach/internal/ui/components"
	"github.com/abhisek/cprcoach/internal/ui/layout"
)

// Coach explains missed questions. *coach.Service implements it.
type Coach interface {
	Debrief(ctx context.Context, input coach.DebriefInput) (*coach.Debrief, error)
}

type phase int

const (
	phaseIntro phase = iota
	phaseQuestion
	phaseResults
)

// AssessScreen walks through intro, questions and results.
type AssessScreen struct {
	store  *progress.Store
	coach  Coach
	logger *slog.Logger

	phase   phase
	attempt *assessment.Attempt
	choice  components.MultiChoice

	debrief        *coach.Debrief
	debriefPending bool
	debriefErr     error

	vp viewport.Model
}

var _ screen.Screen = (*AssessScreen)(nil)

// New creates an AssessScreen recording into store. c may be nil.
func New(store *progress.Store, c Coach, logger *slog.Logger) *AssessScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AssessScreen{
		store:  store,
		coach:  c,
		logger: logger,
		vp:     viewport.New(),
	}
}

func (a *AssessScreen) Init() tea.Cmd {
	if a.store.Snapshot().CurrentMode != progress.ModeAssessment {
		a.store.SetCurrentMode(progress.ModeAssessment)
	}
	return nil
}

func (a *AssessScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case debriefReadyMsg:
		if a.attempt == nil || a.attempt.ID() != msg.attemptID {
			return a, nil
		}
		a.debriefPending = false
		a.debrief, a.debriefErr = msg.debrief, msg.err
		return a, nil

	case tea.KeyPressMsg:
		switch a.phase {
		case phaseIntro:
			return a, a.updateIntro(msg)
		case phaseQuestion:
			return a, a.updateQuestion(msg)
		case phaseResults:
			return a, a.updateResults(msg)
		}
	}
	return a, nil
}

func (a *AssessScreen) updateIntro(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "s":
		a.start()
	case "v":
		if a.hasResult() {
			a.phase = phaseResults
			a.vp.GotoTop()
		}
	case "up", "k":
		a.vp.ScrollUp(1)
	case "down", "j":
		a.vp.ScrollDown(1)
	}
	return nil
}

// hasResult reports whether the last attempt was finished rather than
// abandoned, so its results can be reopened from the intro.
func (a *AssessScreen) hasResult() bool {
	return a.attempt != nil && a.attempt.Finished()
}

func (a *AssessScreen) start() {
	if a.attempt == nil {
		a.attempt = assessment.NewAttempt(a.store, assessment.WithLogger(a.logger))
	} else {
		a.attempt.Retake()
	}
	a.debrief, a.debriefErr, a.debriefPending = nil, nil, false
	a.phase = phaseQuestion
	a.syncChoice()
	a.vp.GotoTop()
}

// syncChoice rebuilds the option list for the question under the cursor.
func (a *AssessScreen) syncChoice() {
	q := a.attempt.Current()
	a.choice = components.NewMultiChoice(q.Prompt, q.Options, q.Correct, a.attempt.Answer(a.attempt.Cursor()))
}

func (a *AssessScreen) updateQuestion(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "n", "right":
		if r := a.attempt.Advance(); r != nil {
			return a.finished(r)
		}
		a.syncChoice()
	case "b", "left":
		a.attempt.Retreat()
		a.syncChoice()
	case "f":
		return a.finished(a.attempt.Finish())
	case "esc":
		// Abandon without recording.
		a.phase = phaseIntro
	default:
		before := a.choice.ChosenIndex
		a.choice, _ = a.choice.Update(msg)
		if a.choice.ChosenIndex != before {
			a.attempt.Select(a.choice.ChosenIndex)
		}
	}
	return nil
}

// finished moves to the results and announces the attempt. A coach, when
// configured, is asked to explain any misses.
func (a *AssessScreen) finished(r *assessment.Result) tea.Cmd {
	a.phase = phaseResults
	a.vp.GotoTop()

	res := *r
	cmds := []tea.Cmd{func() tea.Msg { return FinishedMsg{Result: res} }}

	missed := coach.MissedFrom(a.attempt.Questions(), r)
	if a.coach != nil && len(missed) > 0 {
		a.debriefPending = true
		settings := a.store.Settings()
		in := coach.DebriefInput{
			Lang:     settings.Language,
			AgeGroup: settings.AgeGroup,
			Score:    res.Score,
			Passed:   res.Passed,
			Missed:   missed,
		}
		c, logger, id := a.coach, a.logger, a.attempt.ID()
		cmds = append(cmds, func() tea.Msg {
			d, err := c.Debrief(context.Background(), in)
			if err != nil {
				logger.Warn("assessment debrief failed", slog.String("attempt_id", id), slog.Any("error", err))
			}
			return debriefReadyMsg{attemptID: id, debrief: d, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (a *AssessScreen) updateResults(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "r":
		a.start()
	case "l":
		return screen.SwitchTo(screen.TabLearn)
	case "esc":
		a.phase = phaseIntro
		a.vp.GotoTop()
	case "up", "k":
		a.vp.ScrollUp(1)
	case "down", "j":
		a.vp.ScrollDown(1)
	case "pgup":
		a.vp.PageUp()
	case "pgdown":
		a.vp.PageDown()
	}
	return nil
}

func (a *AssessScreen) View(width, height int) string {
	var content string
	switch a.phase {
	case phaseQuestion:
		content = a.viewQuestion(width)
	case phaseResults:
		content = a.viewResults(width)
	default:
		content = a.viewIntro(width)
	}
	a.vp.SetWidth(width)
	a.vp.SetHeight(height)
	a.vp.SetContent(content)
	return a.vp.View()
}

func (a *AssessScreen) Title() string {
	return i18n.T(a.store.Settings().Language, i18n.NavAssess)
}

func (a *AssessScreen) KeyHints() []layout.KeyHint {
	switch a.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "←/b", Description: "Previous"},
			{Key: "→/n", Description: "Next"},
			{Key: "f", Description: "Finish"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case phaseResults:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Scroll"},
			{Key: "r", Description: "Retake"},
			{Key: "l", Description: "Continue learning"},
			{Key: "Tab", Description: "Next tab"},
		}
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Start assessment"}}
	if a.hasResult() {
		hints = append(hints, layout.KeyHint{Key: "v", Description: "Last results"})
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: "Next tab"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
}
