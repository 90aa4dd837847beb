package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/lessons"
	"github.com/abhisek/cprcoach/internal/progress"
	"github.com/abhisek/cprcoach/internal/ui/components"
	"github.com/abhisek/cprcoach/internal/ui/theme"
)

const (
	recentCount = 3

	disclaimerTitle = "⚠ Important Notice"
	disclaimerText  = "This app provides educational training only. In a real emergency, always call emergency services immediately. Professional CPR certification requires hands-on training with a certified instructor."
)

// WelcomeMessage decorates the localized greeting for younger audiences.
func WelcomeMessage(lang i18n.Lang, g progress.AgeGroup) string {
	msg := i18n.T(lang, i18n.HomeWelcome)
	switch g {
	case progress.Children:
		return "🌟 " + msg + " 🌟"
	case progress.Teens:
		return "🚀 " + msg + " 🚀"
	}
	return msg
}

func renderWelcome(lang i18n.Lang, g progress.AgeGroup, cw int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(strings.ToUpper(WelcomeMessage(lang, g)))
	sub := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(i18n.T(lang, i18n.HomeSubtitle))

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n" + sub)
}

// renderProgress is the "Your Progress" card: lesson completion bar plus
// practice time, certifications and average quiz score.
func renderProgress(lang i18n.Lang, p progress.Progress, cw int) string {
	heading := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("◎ " + strings.ToUpper(i18n.T(lang, i18n.HomeProgress)))

	bar := components.NewProgressBar(
		i18n.T(lang, i18n.HomeCompletedLessons),
		p.CompletionPercent(len(lessons.Steps))/100,
		true,
		cw-6,
	).View()

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	value := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	stat := func(icon string, color lipgloss.Style, name, v string) string {
		return color.Render(icon) + " " + label.Render(name) + " " + value.Render(v)
	}

	stats := strings.Join([]string{
		stat("◷", lipgloss.NewStyle().Foreground(theme.Secondary), i18n.T(lang, i18n.HomePracticeTime), fmt.Sprintf("%dm", p.PracticeTime)),
		stat("✪", lipgloss.NewStyle().Foreground(theme.Accent), i18n.T(lang, i18n.HomeCertifications), fmt.Sprintf("%d", len(p.CertificationsEarned))),
		stat("✎", lipgloss.NewStyle().Foreground(theme.Info), "Avg score", fmt.Sprintf("%d%%", p.AverageScore())),
	}, "   ")

	return components.Panel(heading+"\n\n"+bar+"\n\n"+stats, cw)
}

// renderActivity lists the most recent completions, or a prompt to begin.
func renderActivity(lang i18n.Lang, p progress.Progress, cw int) string {
	heading := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("♥ RECENT ACTIVITY")

	var lines []string
	recent := p.RecentLessons(recentCount)
	if len(recent) == 0 {
		lines = append(lines, theme.Hint.Render("Start your first lesson to see activity here!"))
	}
	for _, id := range recent {
		name := id
		if step, ok := lessons.Find(id); ok {
			name = step.Title(lang)
		}
		lines = append(lines, theme.Body.Render("✔ Completed: "+name))
	}

	return components.Panel(heading+"\n"+strings.Join(lines, "\n"), cw)
}

func renderDisclaimer(cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render(disclaimerTitle)
	body := lipgloss.NewStyle().Foreground(theme.Text).Render(disclaimerText)
	return components.AccentPanel(title+"\n"+body, cw, theme.Warning)
}
