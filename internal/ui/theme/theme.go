// Package theme holds the colors and lipgloss styles shared by every screen.
// The palette follows the learner's age group and is swapped at runtime
// with Apply.
package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/progress"
)

// Palette is the age-dependent part of the color scheme, as hex strings.
type Palette struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
}

// Named colors.
const (
	Coral     = "#FF6F61"
	Purple    = "#6B5B95"
	Green     = "#88B04B"
	Pink      = "#F7CAC9"
	Yellow    = "#FFD700"
	Lime      = "#32CD32"
	Magenta   = "#FF1493"
	Cyan      = "#00CED1"
	Violet    = "#9370DB"
	Orange    = "#FF8C00"
	White     = "#FFFFFF"
	Black     = "#000000"
	Gray      = "#808080"
	LightGray = "#F5F5F5"
	DarkGray  = "#333333"
)

var agePalettes = map[progress.AgeGroup]Palette{
	progress.Children: {Primary: Yellow, Secondary: Pink, Accent: Lime, Background: LightGray},
	progress.Teens:    {Primary: Magenta, Secondary: Cyan, Accent: Violet, Background: White},
	progress.Adults:   {Primary: Coral, Secondary: Purple, Accent: Green, Background: White},
}

var highContrast = Palette{Primary: Yellow, Secondary: White, Accent: Cyan, Background: Black}

// ForAge returns the palette for an age group. Unknown groups get the adult
// palette. High contrast overrides the age palette entirely.
func ForAge(g progress.AgeGroup, hc bool) Palette {
	if hc {
		return highContrast
	}
	if p, ok := agePalettes[g]; ok {
		return p
	}
	return agePalettes[progress.Adults]
}

// Color palette
var (
	Primary   = lipgloss.Color(Coral)
	Secondary = lipgloss.Color(Purple)
	Accent    = lipgloss.Color(Green)

	Success = lipgloss.Color(Green)
	Warning = lipgloss.Color(Yellow)
	Error   = lipgloss.Color(Coral)
	Info    = lipgloss.Color(Purple)

	Text    = lipgloss.Color("#F8FAFC")
	TextDim = lipgloss.Color("#94A3B8")
	BgDark  = lipgloss.Color("#0F172A")
	BgCard  = lipgloss.Color("#1E293B")
	Border  = lipgloss.Color("#334155")
)

// Typography
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Hint     lipgloss.Style
)

// Layout
var (
	Header lipgloss.Style
	Footer lipgloss.Style
	Card   lipgloss.Style
)

// States
var (
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Correct    lipgloss.Style
	Incorrect  lipgloss.Style
)

// Components
var (
	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
	ButtonActive   lipgloss.Style
	ButtonInactive lipgloss.Style
)

var current = ForAge(progress.Adults, false)

func init() {
	Apply(current, false)
}

// Current returns the palette most recently applied.
func Current() Palette {
	return current
}

// Apply swaps the package colors to p and rebuilds every style. In high
// contrast mode the neutral colors are pushed to pure white on black as
// well. Call it from the UI goroutine only.
func Apply(p Palette, hc bool) {
	current = p

	Primary = lipgloss.Color(p.Primary)
	Secondary = lipgloss.Color(p.Secondary)
	Accent = lipgloss.Color(p.Accent)

	if hc {
		Text = lipgloss.Color(White)
		TextDim = lipgloss.Color(White)
		BgDark = lipgloss.Color(Black)
		BgCard = lipgloss.Color(Black)
		Border = lipgloss.Color(White)
		Success = lipgloss.Color(Lime)
		Error = lipgloss.Color(Orange)
	} else {
		Text = lipgloss.Color("#F8FAFC")
		TextDim = lipgloss.Color("#94A3B8")
		BgDark = lipgloss.Color("#0F172A")
		BgCard = lipgloss.Color("#1E293B")
		Border = lipgloss.Color("#334155")
		Success = lipgloss.Color(Green)
		Error = lipgloss.Color(Coral)
	}

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
		Foreground(TextDim).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Unselected = lipgloss.NewStyle().
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	ProgressFilled = lipgloss.NewStyle().
		Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
		Background(Border)

	ButtonActive = lipgloss.NewStyle().
		Background(Primary).
		Foreground(BgDark).
		Bold(true).
		Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
}

// ApplyFor is Apply(ForAge(g, hc), hc).
func ApplyFor(g progress.AgeGroup, hc bool) {
	Apply(ForAge(g, hc), hc)
}
