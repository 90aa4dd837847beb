package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cprcoach/internal/assessment"
	"github.com/abhisek/cprcoach/internal/coach"
	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/router"
	"github.com/abhisek/cprcoach/internal/screen"
	"github.com/abhisek/cprcoach/internal/screens/assess"
	"github.com/abhisek/cprcoach/internal/screens/home"
	"github.com/abhisek/cprcoach/internal/screens/learn"
	practicescreen "github.com/abhisek/cprcoach/internal/screens/practice"
	"github.com/abhisek/cprcoach/internal/screens/settings"
	"github.com/abhisek/cprcoach/internal/screens/welcome"
	"github.com/abhisek/cprcoach/internal/store"
	"github.com/abhisek/cprcoach/internal/ui/layout"
	"github.com/abhisek/cprcoach/internal/ui/theme"
)

// Journal records finished activities. *store.Journal implements it.
type Journal interface {
	RecordPractice(ctx context.Context, data store.PracticeSessionEventData)
	RecordAssessment(ctx context.Context, data store.AssessmentEventData)
}

// Options configures the TUI.
type Options struct {
	Store      *progress.Store
	Journal    Journal        // optional
	Coach      *coach.Service // optional
	Logger     *slog.Logger
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	store   *progress.Store
	journal Journal
	logger  *slog.Logger

	router *router.Router
	tabs   []screen.Screen
	active screen.Tab

	width  int
	height int
}

// newAppModel builds the tab screens and the theme subscription.
func newAppModel(opts Options) AppModel {
	st := opts.Store
	if st == nil {
		st = progress.NewStore()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var practiceCoach practicescreen.Coach
	var assessCoach assess.Coach
	if opts.Coach != nil {
		practiceCoach = opts.Coach
		assessCoach = opts.Coach
	}

	tabs := make([]screen.Screen, len(screen.Tabs))
	tabs[screen.TabHome] = home.New(st)
	tabs[screen.TabLearn] = learn.New(st)
	tabs[screen.TabPractice] = practicescreen.New(st, practiceCoach, logger)
	tabs[screen.TabAssess] = assess.New(st, assessCoach, logger)
	tabs[screen.TabProfile] = settings.New(st)

	applyTheme(st.Settings())
	st.Subscribe(func(s progress.Snapshot) { applyTheme(s.Settings) })

	var initial screen.Screen = tabs[screen.TabHome]
	if !opts.SkipSplash {
		initial = welcome.New(st.Settings().Language, func() screen.Screen {
			return tabs[screen.TabHome]
		})
	}

	return AppModel{
		store:   st,
		journal: opts.Journal,
		logger:  logger,
		router:  router.New(initial),
		tabs:    tabs,
		active:  screen.TabHome,
	}
}

// applyTheme keeps the palette in step with the age group and contrast
// settings.
func applyTheme(s progress.Settings) {
	p := theme.ForAge(s.AgeGroup, s.HighContrastMode)
	if p != theme.Current() {
		theme.Apply(p, s.HighContrastMode)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

// onTab reports whether a tab screen is in front, as opposed to the splash.
func (m AppModel) onTab() bool {
	return m.router.Depth() == 1 && m.router.Active() == m.tabs[m.active]
}

func (m AppModel) switchTab(t screen.Tab) tea.Cmd {
	if int(t) < 0 || int(t) >= len(m.tabs) {
		return nil
	}
	m.active = t
	return m.router.Replace(m.tabs[t])
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			if !m.onTab() {
				break
			}
			step := 1
			if msg.String() == "shift+tab" {
				step = -1
			}
			n := len(m.tabs)
			next := screen.Tab((int(m.active) + step + n) % n)
			cmd := m.switchTab(next)
			m.active = next
			return m, cmd
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case screen.SwitchTabMsg:
		cmd := m.switchTab(msg.Tab)
		m.active = msg.Tab
		return m, cmd

	case practicescreen.FinishedMsg:
		m.recordPractice(msg)
		return m, nil

	case assess.FinishedMsg:
		m.recordAssessment(msg)
		return m, nil

	case router.ReplaceScreenMsg:
		// The splash hands over to the home tab.
		for i, t := range m.tabs {
			if t == msg.Screen {
				m.active = screen.Tab(i)
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) recordPractice(msg practicescreen.FinishedMsg) {
	if m.journal == nil {
		return
	}
	s := msg.Summary
	m.journal.RecordPractice(context.Background(), store.PracticeSessionEventData{
		SessionID:    s.ID,
		StartedAt:    s.StartedAt,
		Compressions: s.Compressions,
		AvgRate:      s.AvgRate,
		CorrectRate:  s.CorrectRate,
		AvgDepth:     s.AvgDepth,
		DurationSecs: s.Duration,
		Minutes:      s.Minutes,
		Tier:         string(s.Tier),
	})
}

func (m AppModel) recordAssessment(msg assess.FinishedMsg) {
	if m.journal == nil {
		return
	}
	r := msg.Result
	m.journal.RecordAssessment(context.Background(), store.AssessmentEventData{
		AttemptID:    r.AttemptID,
		AssessmentID: assessment.ID,
		Score:        r.Score,
		Correct:      r.Correct,
		Total:        r.Total,
		Passed:       r.Passed,
		DurationSecs: int(r.Duration.Seconds()),
		Answers:      r.Answers,
	})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	lang := m.store.Settings().Language
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(i18n.T(lang, i18n.LayoutTooSmall), m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.headerCenter(), m.status(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	content := m.router.View(m.width, layout.BodyHeight(header, footer, m.height))
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// headerCenter is the tab bar while a tab is in front, otherwise the
// active screen's title.
// keyHints asks the active screen for its hints, falling back to
// localized defaults.
func (m AppModel) keyHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	lang := m.store.Settings().Language
	first := layout.KeyHint{Key: "Any key", Description: i18n.T(lang, i18n.HintContinue)}
	if m.router.Depth() > 1 {
		first = layout.KeyHint{Key: "Esc", Description: i18n.T(lang, i18n.HintBack)}
	}
	return []layout.KeyHint{first, {Key: "Ctrl+C", Description: i18n.T(lang, i18n.HintQuit)}}
}

func (m AppModel) headerCenter() string {
	if !m.onTab() {
		if a := m.router.Active(); a != nil {
			return a.Title()
		}
		return ""
	}
	lang := m.store.Settings().Language
	labels := make([]string, len(screen.Tabs))
	for i, t := range screen.Tabs {
		labels[i] = i18n.T(lang, t.LabelKey())
	}
	return layout.RenderTabs(labels, int(m.active))
}

func (m AppModel) status() string {
	snap := m.store.Snapshot()
	name := snap.Settings.ProfileName
	if name == "" {
		name = "Guest"
	}
	return fmt.Sprintf("%s  ✪ %d  ◷ %dm",
		name, len(snap.Progress.CertificationsEarned), snap.Progress.PracticeTime)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
