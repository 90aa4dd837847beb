package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/screen"
	"github.com/abhisek/cprcoach/internal/ui/components"
	"github.com/abhisek/cprcoach/internal/ui/layout"
)

// action is a quick-action menu entry.
type action struct {
	key i18n.Key
	tab screen.Tab
}

var actions = []action{
	{i18n.HomeStartLearning, screen.TabLearn},
	{i18n.HomeContinuePractice, screen.TabPractice},
	{i18n.HomeTakeAssessment, screen.TabAssess},
}

// HomeScreen is the dashboard tab: greeting, quick actions, progress and
// recent activity.
type HomeScreen struct {
	store *progress.Store
	menu  components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen reading from store.
func New(store *progress.Store) *HomeScreen {
	items := make([]components.MenuItem, len(actions))
	for i, a := range actions {
		tab := a.tab
		items[i] = components.MenuItem{
			Label:  string(a.key),
			Action: func() tea.Cmd { return screen.SwitchTo(tab) },
		}
	}
	return &HomeScreen{
		store: store,
		menu:  components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	snap := h.store.Snapshot()
	lang := snap.Settings.Language
	compact := height < 30

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderWelcome(lang, snap.Settings.AgeGroup, cw))
	if !compact {
		sections = append(sections, lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(RenderMascot(VariantFor(snap.Progress))))
	}

	labels := make([]string, len(actions))
	for i, a := range actions {
		labels[i] = components.PillButton(i18n.T(lang, a.key), i == h.menu.Selected, 30)
	}
	sections = append(sections, lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(labels, "\n")))

	sections = append(sections, renderProgress(lang, snap.Progress, cw))
	if !compact {
		sections = append(sections, renderActivity(lang, snap.Progress, cw))
	}
	sections = append(sections, renderDisclaimer(cw))

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return i18n.T(h.store.Settings().Language, i18n.NavHome)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Go"},
		{Key: "Tab", Description: "Next tab"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
