package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/router"
	"github.com/abhisek/cprcoach/internal/screen"
	"github.com/abhisek/cprcoach/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const heartArt = ` ▄███▄   ▄███▄
█████████████████
 ▀███████████████▀
   ▀█████████▀
     ▀█████▀
       ▀█▀`

// One beat of an ECG trace; scrolled left a column per tick.
const pulseTrace = "────────╮╭──╮  ╭────"

type tickMsg time.Time

// WelcomeScreen shows a heartbeat splash before handing over to the first
// tab. Any key skips it.
type WelcomeScreen struct {
	lang         i18n.Lang
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(lang i18n.Lang, homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		lang:        lang,
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	// The heart "beats" by alternating between primary and accent.
	heartColor := theme.Primary
	if w.elapsed >= phase1End && (w.tickCount/4)%2 == 1 {
		heartColor = theme.Accent
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(heartColor).Render(heartArt))

	if w.elapsed >= phase1End {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Render(trace(w.tickCount, 40)))
	}

	if w.elapsed >= phase2End {
		sections = append(sections, "", RenderBanner(width), "")

		tagline := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(i18n.T(w.lang, i18n.HomeSubtitle))
		sections = append(sections, tagline)

		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", hint)
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// trace returns width runes of the repeating ECG line shifted by offset.
func trace(offset, width int) string {
	beat := []rune(pulseTrace)
	out := make([]rune, width)
	for i := range out {
		out[i] = beat[(i+offset)%len(beat)]
	}
	return string(out)
}
