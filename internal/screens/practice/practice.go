// Package practice is the compression practice tab: a tap pad driven by a
// one-second clock, with rate feedback and session results.
package practice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/coach"
	"github.com/abhisek/cprcoach/internal/i18n"
	drill "github.com/abhisek/cprcoach/internal/practice"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/screen"
	"github.com/abhisek/cprcoach/internal/ui/components"
	"github.com/abhisek/cprcoach/internal/ui/layout"
	"github.com/abhisek/cprcoach/internal/ui/theme"
)

// Coach comments on finished sessions. *coach.Service implements it.
type Coach interface {
	PracticeTip(ctx context.Context, input coach.TipInput) (*coach.Tip, error)
}

const heartPad = `  ▄██▄  ▄██▄
 ████████████
  ██████████
    ██████
      ██`

// PracticeScreen drives a drill.Session from key presses and ticks.
type PracticeScreen struct {
	store   *progress.Store
	session *drill.Session
	coach   Coach
	logger  *slog.Logger

	tip        *coach.Tip
	tipPending bool
	tipErr     error
	pressed    bool // last tap not yet followed by a tick
	vp         viewport.Model
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.Blurrer = (*PracticeScreen)(nil)

// New creates a PracticeScreen that credits minutes to store. c may be nil.
func New(store *progress.Store, c Coach, logger *slog.Logger) *PracticeScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PracticeScreen{
		store:   store,
		session: drill.NewSession(store, drill.WithLogger(logger)),
		coach:   c,
		logger:  logger,
		vp:      viewport.New(),
	}
}

func (p *PracticeScreen) Init() tea.Cmd {
	if p.store.Snapshot().CurrentMode != progress.ModePractice {
		p.store.SetCurrentMode(progress.ModePractice)
	}
	return nil
}

// Blur pauses a running session so no time accrues while another tab is
// in front.
func (p *PracticeScreen) Blur() tea.Cmd {
	p.session.Pause()
	return nil
}

func tick(e drill.Epoch) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{epoch: e}
	})
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		p.pressed = false
		if p.session.Tick(msg.epoch) {
			return p, tick(msg.epoch)
		}
		return p, nil

	case tipReadyMsg:
		last := p.session.LastSummary()
		if last == nil || last.ID != msg.sessionID {
			return p, nil
		}
		p.tipPending = false
		p.tip, p.tipErr = msg.tip, msg.err
		return p, nil

	case tea.KeyPressMsg:
		return p, p.handleKey(msg.String())
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "s":
		if e, ok := p.session.Start(); ok {
			return tick(e)
		}
	case "p":
		p.session.Pause()
	case "r":
		return p.finish()
	case "space", "enter":
		p.pressed = p.session.Tap()
	case "up", "k":
		p.vp.ScrollUp(1)
	case "down", "j":
		p.vp.ScrollDown(1)
	}
	return nil
}

// finish resets the session. A session with elapsed time is announced and,
// when a coach is configured, sent off for a tip.
func (p *PracticeScreen) finish() tea.Cmd {
	sum := p.session.Reset()
	if sum == nil {
		return nil
	}
	p.tip, p.tipErr = nil, nil

	done := *sum
	cmds := []tea.Cmd{func() tea.Msg { return FinishedMsg{Summary: done} }}

	if p.coach != nil {
		p.tipPending = true
		settings := p.store.Settings()
		in := coach.TipInput{Lang: settings.Language, AgeGroup: settings.AgeGroup, Summary: done}
		c := p.coach
		logger := p.logger
		cmds = append(cmds, func() tea.Msg {
			tip, err := c.PracticeTip(context.Background(), in)
			if err != nil {
				logger.Warn("practice tip failed", slog.String("session_id", done.ID), slog.Any("error", err))
			}
			return tipReadyMsg{sessionID: done.ID, tip: tip, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (p *PracticeScreen) View(width, height int) string {
	lang := p.store.Settings().Language
	cw := components.ContentWidth(width)

	sections := []string{
		theme.Title.Width(cw).Render("CPR Practice") + "\n" +
			theme.Subtitle.Width(cw).Render("Build muscle memory with interactive training"),
		p.renderPad(lang, cw),
	}
	if last := p.session.LastSummary(); last != nil {
		sections = append(sections, p.renderResults(*last, cw))
	}
	sections = append(sections, renderTips(cw))

	p.vp.SetWidth(width)
	p.vp.SetHeight(height)
	p.vp.SetContent(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(sections, "\n\n")))
	return p.vp.View()
}

func (p *PracticeScreen) renderPad(lang i18n.Lang, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.Secondary)
	value := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	rate := p.session.Rate()

	stat := func(name, v string, vs lipgloss.Style) string {
		return lipgloss.NewStyle().Width(18).Align(lipgloss.Center).
			Render(label.Render(name) + "\n" + vs.Render(v))
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Time", drill.FormatClock(p.session.Elapsed()), value),
		stat("Compressions", fmt.Sprintf("%d", p.session.Compressions()), value),
		stat("Rate/Min", fmt.Sprintf("%d", rate), bandStyle(drill.RateBand(rate))),
	)

	active := p.session.State() == drill.Active
	heartColor := theme.TextDim
	instruction := "Start practice to begin"
	if active {
		heartColor = theme.Primary
		instruction = "Press and release rapidly"
		if p.pressed {
			heartColor = theme.Accent
		}
	}
	pad := lipgloss.NewStyle().Foreground(heartColor).Render(heartPad) + "\n" +
		lipgloss.NewStyle().Foreground(theme.Primary).Render(instruction)

	lines := []string{
		theme.Selected.Render("◷ Practice Session"),
		"",
		stats,
		"",
		pad,
	}
	if fb := p.session.Feedback(); fb != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fb))
	}
	lines = append(lines, "", p.renderControls(lang))

	return components.Panel(lipgloss.NewStyle().Width(cw-6).Align(lipgloss.Center).Render(strings.Join(lines, "\n")), cw)
}

func (p *PracticeScreen) renderControls(lang i18n.Lang) string {
	var primary components.Button
	switch p.session.State() {
	case drill.Active:
		primary = components.NewButton("p", i18n.T(lang, i18n.ActionPause), true, nil)
	case drill.Paused:
		primary = components.NewButton("s", i18n.T(lang, i18n.ActionResume), true, nil)
	default:
		primary = components.NewButton("s", i18n.T(lang, i18n.ActionStart), true, nil)
	}
	retry := components.NewButton("r", i18n.T(lang, i18n.ActionRetry), true, nil)
	tap := components.NewButton("space", "Compress", p.session.State() == drill.Active, nil)
	return lipgloss.JoinHorizontal(lipgloss.Center, primary.View(), "  ", tap.View(), "  ", retry.View())
}

func (p *PracticeScreen) renderResults(sum drill.Summary, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	row := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-20s", name)) + value.Render(v)
	}

	lines := []string{
		theme.Selected.Render("↗ Session Results"),
		"",
		row("Total Compressions", fmt.Sprintf("%d", sum.Compressions)),
		row("Average Rate", fmt.Sprintf("%d/min", sum.AvgRate)),
		row("Session Time", drill.FormatClock(sum.Duration)),
		row("Technique Score", fmt.Sprintf("%d%%", sum.CorrectRate)),
		row("Depth", bandStyle(drill.DepthBand(sum.AvgDepth)).Render(fmt.Sprintf("%d%%", sum.AvgDepth))),
		"",
		components.NewProgressBar("Overall Performance", float64(sum.CorrectRate)/100, true, cw-6).View(),
	}

	switch {
	case p.tipPending:
		lines = append(lines, "", theme.Hint.Render("Coach is reviewing your session..."))
	case p.tip != nil:
		lines = append(lines, "",
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Coach: "+p.tip.Headline),
			theme.Body.Render(p.tip.Advice))
	case p.tipErr != nil:
		lines = append(lines, "", theme.Hint.Render("Coach unavailable right now."))
	}

	return components.Panel(strings.Join(lines, "\n"), cw)
}

func renderTips(cw int) string {
	lines := []string{theme.Selected.Render("◎ Practice Tips")}
	for _, tip := range drill.Tips {
		lines = append(lines, theme.Body.Render("• "+tip))
	}
	return components.Panel(strings.Join(lines, "\n"), cw)
}

func bandStyle(b drill.Band) lipgloss.Style {
	switch b {
	case drill.BandGood:
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	case drill.BandWarn:
		return lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
}

func (p *PracticeScreen) Title() string {
	return i18n.T(p.store.Settings().Language, i18n.NavPractice)
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "s", Description: "Start"},
		{Key: "p", Description: "Pause"},
		{Key: "Space", Description: "Compress"},
		{Key: "r", Description: "Reset"},
		{Key: "Tab", Description: "Next tab"},
	}
}
