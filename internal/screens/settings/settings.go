// Package settings is the profile tab: learner name, presentation
// preferences and a progress summary.
package settings

import (
	"fmt"
	"strings"

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

const maxNameLen = 32

// Row indexes in the settings menu.
const (
	rowName = iota
	rowLanguage
	rowAgeGroup
	rowSound
	rowHaptics
	rowHighContrast
	rowCount
)

// SettingsScreen edits the store's settings in place.
type SettingsScreen struct {
	store   *progress.Store
	menu    components.Menu
	editing bool
	name    components.TextInput
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.Blurrer = (*SettingsScreen)(nil)

// New creates a SettingsScreen over store.
func New(store *progress.Store) *SettingsScreen {
	s := &SettingsScreen{store: store}
	items := make([]components.MenuItem, rowCount)
	for i := range items {
		row := i
		items[i].Action = func() tea.Cmd { return s.activate(row, 1) }
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

// Blur drops an unfinished name edit.
func (s *SettingsScreen) Blur() tea.Cmd {
	s.editing = false
	return nil
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.editing {
		return s, s.updateName(msg)
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h":
		return s, s.activate(s.menu.Selected, -1)
	case "right", "l", "space":
		return s, s.activate(s.menu.Selected, 1)
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) updateName(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			s.editing = false
			if v := s.name.Value(); v != s.store.Settings().ProfileName {
				s.store.SetProfileName(v)
			}
			return nil
		case "esc":
			s.editing = false
			return nil
		}
	}
	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	return cmd
}

// activate applies the row's action. dir steps choice rows forwards or
// backwards; toggles ignore it.
func (s *SettingsScreen) activate(row, dir int) tea.Cmd {
	st := s.store.Settings()
	switch row {
	case rowName:
		s.editing = true
		s.name = components.NewTextInput("Your name", st.ProfileName, maxNameLen)
		return s.name.Init()
	case rowLanguage:
		s.store.SetLanguage(cycle(i18n.Supported(), st.Language, dir))
	case rowAgeGroup:
		s.store.SetAgeGroup(cycle(progress.AgeGroups, st.AgeGroup, dir))
	case rowSound:
		s.store.SetSoundEnabled(!st.SoundEnabled)
	case rowHaptics:
		s.store.SetHapticsEnabled(!st.HapticsEnabled)
	case rowHighContrast:
		s.store.SetHighContrastMode(!st.HighContrastMode)
	}
	return nil
}

// cycle returns the element dir steps from cur, wrapping around. An
// unknown cur starts from the first element.
func cycle[T comparable](all []T, cur T, dir int) T {
	idx := 0
	for i, v := range all {
		if v == cur {
			idx = i
			break
		}
	}
	n := len(all)
	return all[((idx+dir)%n+n)%n]
}

func onOff(b bool) string {
	if b {
		return "● On"
	}
	return "○ Off"
}

func (s *SettingsScreen) View(width, height int) string {
	snap := s.store.Snapshot()
	st := snap.Settings
	lang := st.Language
	cw := components.ContentWidth(width)

	name := st.ProfileName
	if name == "" {
		name = theme.Hint.Render("(not set)")
	}
	if s.editing {
		name = s.name.View()
	}

	labels := []struct{ label, value string }{
		{"Profile Name", name},
		{i18n.T(lang, i18n.SettingsLanguage), "‹ " + lang.Name() + " ›"},
		{i18n.T(lang, i18n.SettingsAgeGroup), "‹ " + i18n.T(lang, st.AgeGroup.LabelKey()) + " ›"},
		{i18n.T(lang, i18n.SettingsSound), onOff(st.SoundEnabled)},
		{i18n.T(lang, i18n.SettingsHaptics), onOff(st.HapticsEnabled)},
		{i18n.T(lang, i18n.SettingsHighContrast), onOff(st.HighContrastMode)},
	}
	menu := s.menu
	menu.Items = make([]components.MenuItem, len(labels))
	for i, l := range labels {
		menu.Items[i] = components.MenuItem{Label: l.label, Value: l.value}
	}

	title := theme.Title.Width(cw).Render("⚙ " + i18n.T(lang, i18n.ActionSettings))
	prefs := components.Panel(menu.View(), cw)

	return components.Center(title+"\n\n"+prefs+"\n\n"+renderSummary(lang, snap.Progress, cw), width, height)
}

func renderSummary(lang i18n.Lang, p progress.Progress, cw int) string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	row := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-22s", name)) + value.Render(v)
	}
	lines := []string{
		theme.Selected.Render("◎ " + i18n.T(lang, i18n.HomeProgress)),
		row(i18n.T(lang, i18n.HomeCompletedLessons), fmt.Sprintf("%d/%d", lessons.CompletedSteps(p.CompletedLessons), len(lessons.Steps))),
		row(i18n.T(lang, i18n.HomePracticeTime), fmt.Sprintf("%dm", p.PracticeTime)),
		row(i18n.T(lang, i18n.HomeCertifications), fmt.Sprintf("%d", len(p.CertificationsEarned))),
		row("Average Score", fmt.Sprintf("%d%%", p.AverageScore())),
	}
	return components.Panel(strings.Join(lines, "\n"), cw)
}

func (s *SettingsScreen) Title() string {
	return i18n.T(s.store.Settings().Language, i18n.NavProfile)
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "←→", Description: "Change"},
		{Key: "Enter", Description: "Toggle/Edit"},
		{Key: "Tab", Description: "Next tab"},
	}
}
