// Package layout draws the chrome around the active screen: a header bar
// with the tab strip, a footer of key hints and the fallback shown when
// the terminal is too small.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// HeaderHeight includes the rounded border.
	HeaderHeight = 3
)

// AppName is shown at the left of the header.
const AppName = "♥ CPR Coach"

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// BodyHeight is the space left for the screen between header and footer.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// RenderMinSizeMessage centres heading above the required and current
// terminal sizes.
func RenderMinSizeMessage(heading string, width, height int) string {
	need := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d×%d", MinWidth, MinHeight))
	have := lipgloss.NewStyle().Foreground(theme.Error).
		Render(fmt.Sprintf("%d×%d", width, height))
	body := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("♥ "+heading),
		"",
		need+" ← "+have,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// RenderTabs renders the tab labels on one line with the active one
// highlighted. An out-of-range active index highlights nothing.
func RenderTabs(labels []string, active int) string {
	on := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Primary).Bold(true)
	off := lipgloss.NewStyle().Foreground(theme.TextDim)
	parts := make([]string, len(labels))
	for i, l := range labels {
		st := off
		if i == active {
			st = on
		}
		parts[i] = st.Render(" " + l + " ")
	}
	return strings.Join(parts, " ")
}

// RenderHeader lays out the app name, center (tabs or a title) and a
// right-aligned status line inside a bordered bar.
func RenderHeader(center, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + AppName)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	used := lipgloss.Width(name) + lipgloss.Width(center) + lipgloss.Width(right)
	// Center the middle column when it fits, otherwise pack left.
	lead := max((inner-lipgloss.Width(center))/2-lipgloss.Width(name), 1)
	trail := max(inner-used-lead, 1)

	return bar(width).Render(name + strings.Repeat(" ", lead) + center + strings.Repeat(" ", trail) + right)
}

// RenderFooter renders hints left to right and drops those that would
// overflow the bar.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Secondary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := descStyle.Render(" · ")

	room := width - 6
	line := ""
	for _, h := range hints {
		part := keyStyle.Render(" "+h.Key+" ") + " " + descStyle.Render(h.Description)
		next := part
		if line != "" {
			next = line + sep + part
		}
		if lipgloss.Width(next) > room {
			break
		}
		line = next
	}
	return bar(width).Render("  " + line)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the terminal.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(BodyHeight(header, footer, height)).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}
