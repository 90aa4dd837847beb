// Package learn is the step-by-step CPR lesson tab.
package learn

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/lessons"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/screen"
	"github.com/abhisek/cprcoach/internal/ui/components"
	"github.com/abhisek/cprcoach/internal/ui/layout"
	"github.com/abhisek/cprcoach/internal/ui/theme"
)

// LearnScreen lists the CPR steps. Enter expands a step's details; c marks
// the selected step complete.
type LearnScreen struct {
	store    *progress.Store
	cursor   int
	expanded int // index of the open step, -1 when none
	vp       viewport.Model
}

var _ screen.Screen = (*LearnScreen)(nil)

// New creates a LearnScreen writing completions to store.
func New(store *progress.Store) *LearnScreen {
	return &LearnScreen{
		store:    store,
		expanded: -1,
		vp:       viewport.New(),
	}
}

func (l *LearnScreen) Init() tea.Cmd {
	if l.store.Snapshot().CurrentMode != progress.ModeTutorial {
		l.store.SetCurrentMode(progress.ModeTutorial)
	}
	return nil
}

func (l *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
	case "down", "j":
		if l.cursor < len(lessons.Steps)-1 {
			l.cursor++
		}
	case "enter", "space":
		l.toggle()
	case "c":
		l.complete()
	case "p":
		return l, screen.SwitchTo(screen.TabPractice)
	case "pgup":
		l.vp.PageUp()
	case "pgdown":
		l.vp.PageDown()
	}
	return l, nil
}

func (l *LearnScreen) toggle() {
	if l.expanded == l.cursor {
		l.expanded = -1
		l.store.SetCurrentLesson("")
		return
	}
	l.expanded = l.cursor
	l.store.SetCurrentLesson(lessons.Steps[l.cursor].ID)
}

// complete records the selected step. Completed steps hide the action, so
// a second press is ignored.
func (l *LearnScreen) complete() {
	step := lessons.Steps[l.cursor]
	if l.store.Progress().HasCompleted(step.ID) {
		return
	}
	l.store.CompleteLesson(step.ID)
	if l.expanded >= 0 {
		l.expanded = -1
		l.store.SetCurrentLesson("")
	}
}

func (l *LearnScreen) View(width, height int) string {
	snap := l.store.Snapshot()
	lang := snap.Settings.Language
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("CPR Training Steps") + "\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Learn the essential steps to save a life") + "\n\n")
	b.WriteString(components.NewProgressBar("Learning Progress",
		lessons.Percent(snap.Progress.CompletedLessons)/100, true, cw).View() + "\n\n")

	cursorTop, cursorBottom := 0, 0
	for i, step := range lessons.Steps {
		if i == l.cursor {
			cursorTop = lipgloss.Height(b.String()) - 1
		}
		b.WriteString(l.renderStep(lang, step, i, snap.Progress.HasCompleted(step.ID), cw) + "\n")
		if i == l.cursor {
			cursorBottom = lipgloss.Height(b.String()) - 1
		}
	}

	b.WriteString("\n" + renderPracticeCall(cw) + "\n\n")
	g := lessons.GuidelineFor(snap.Settings.AgeGroup)
	b.WriteString(components.Panel(theme.Selected.Render("✎ "+strings.ToUpper(g.Title))+"\n"+theme.Body.Render(g.Text), cw))

	l.vp.SetWidth(width)
	l.vp.SetHeight(height)
	l.vp.SetContent(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(b.String()))
	switch {
	case cursorTop < l.vp.YOffset():
		l.vp.SetYOffset(cursorTop)
	case cursorBottom >= l.vp.YOffset()+height:
		l.vp.SetYOffset(cursorBottom - height + 1)
	}
	return l.vp.View()
}

func (l *LearnScreen) renderStep(lang i18n.Lang, step lessons.Step, i int, done bool, cw int) string {
	selected := i == l.cursor

	marker := "  "
	if selected {
		marker = "▸ "
	}
	num := fmt.Sprintf("%d.", step.Number)
	status := ""
	if done {
		status = "  " + theme.Correct.Render("✓")
	}

	titleStyle := theme.Unselected
	if selected {
		titleStyle = theme.Selected
	}
	head := titleStyle.Render(marker+num+" "+step.Title(lang)) + status
	desc := theme.Hint.Render("     " + step.Description(lang))

	lines := []string{head, desc}
	if i == l.expanded {
		lines = append(lines, "", theme.Selected.Render("     Detailed Instructions:"))
		for _, d := range step.Details {
			lines = append(lines, theme.Body.Render("       • "+d))
		}
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("     Pro Tips:"))
		for _, tip := range step.Tips {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Render("       💡 "+tip))
		}
	}
	if selected {
		actions := "     " + theme.Hint.Render("[enter] "+detailsLabel(i == l.expanded))
		if !done {
			actions += theme.Hint.Render("   [c] Mark Complete")
		}
		lines = append(lines, actions)
	}

	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func detailsLabel(open bool) string {
	if open {
		return "Hide Details"
	}
	return "Learn More"
}

func renderPracticeCall(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("▶ Ready to Practice?")
	body := theme.Body.Render("Now that you've learned the steps, practice with our interactive simulator to build muscle memory and confidence.")
	hint := theme.Hint.Render("[p] Start Practice Session")
	return components.AccentPanel(title+"\n"+body+"\n"+hint, cw, theme.Accent)
}

func (l *LearnScreen) Title() string {
	return i18n.T(l.store.Settings().Language, i18n.NavLearn)
}

func (l *LearnScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Step"},
		{Key: "Enter", Description: "Details"},
		{Key: "c", Description: "Complete"},
		{Key: "p", Description: "Practice"},
		{Key: "Tab", Description: "Next tab"},
	}
}
