package assess

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cprcoach/internal/assessment"
	"github.com/abhisek/cprcoach/internal/practice"
	"github.com/abhisek/cprcoach/internal/ui/components"
	"github.com/abhisek/cprcoach/internal/ui/theme"
)

const guidelinesText = "This assessment tests your theoretical knowledge of CPR. While passing indicates good understanding, hands-on practice with a certified instructor is essential for real-world application. This certification is for educational purposes only."

func centered(width int, sections ...string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(sections, "\n\n"))
}

func heading(icon, text string) string {
	return theme.Selected.Render(icon + " " + text)
}

func (a *AssessScreen) viewIntro(width int) string {
	cw := components.ContentWidth(width)
	p := a.store.Progress()

	sections := []string{
		theme.Title.Width(cw).Render("CPR Assessment") + "\n" +
			theme.Subtitle.Width(cw).Render("Test your knowledge and earn certification"),
	}

	details := []string{
		heading("☑", "Assessment Details"),
		"",
		fmt.Sprintf("📝 %d multiple choice questions", len(assessment.Basic)),
		"⏱ No time limit - take your time",
		fmt.Sprintf("🎯 %d%% score required to pass", assessment.PassScore),
		"🏆 Earn " + assessment.CertificationName,
		"🔄 Retake as many times as needed",
	}
	sections = append(sections, components.Panel(strings.Join(details, "\n"), cw))

	if len(p.AssessmentScores) > 0 {
		ids := make([]string, 0, len(p.AssessmentScores))
		for id := range p.AssessmentScores {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		lines := []string{heading("↗", "Previous Attempts")}
		for _, id := range ids {
			lines = append(lines, fmt.Sprintf("%-30s %s", assessmentName(id),
				lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("%d%%", p.AssessmentScores[id]))))
		}
		sections = append(sections, components.Panel(strings.Join(lines, "\n"), cw))
	}

	if len(p.CertificationsEarned) > 0 {
		lines := []string{heading("✪", "Your Certifications")}
		for _, c := range p.CertificationsEarned {
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Warning).Render("✪ "+certificationName(c)))
		}
		sections = append(sections, components.AccentPanel(strings.Join(lines, "\n"), cw, theme.Warning))
	}

	sections = append(sections,
		components.PillButton("Start Assessment", true, 30),
		components.Panel(heading("📋", "Assessment Guidelines")+"\n"+theme.Hint.Render(guidelinesText), cw),
	)
	return centered(width, sections...)
}

func (a *AssessScreen) viewQuestion(width int) string {
	cw := components.ContentWidth(width)
	at := a.attempt
	n, total := at.Cursor()+1, at.Len()

	header := theme.Title.Width(cw).Render(fmt.Sprintf("Question %d of %d", n, total))
	bar := components.NewProgressBar(fmt.Sprintf("%d answered", at.Answered()),
		float64(n)/float64(total), false, cw).View()

	body := lipgloss.NewStyle().Width(cw - 6).Align(lipgloss.Left).Render(a.choice.View())

	var nav []string
	if at.Cursor() > 0 {
		nav = append(nav, theme.ButtonInactive.Render("← Previous"))
	}
	if n < total {
		nav = append(nav, theme.ButtonActive.Render("Next →"))
	} else {
		nav = append(nav, theme.ButtonActive.Render("Finish ✓"))
	}

	return centered(width, header, bar, components.Panel(body, cw), strings.Join(nav, "  "))
}

func (a *AssessScreen) viewResults(width int) string {
	cw := components.ContentWidth(width)
	r := a.attempt.Result()

	mood := "Keep Learning! 📚"
	if r.Passed {
		mood = "Congratulations! 🎉"
	}
	sections := []string{
		theme.Title.Width(cw).Render("Assessment Results") + "\n" +
			theme.Subtitle.Width(cw).Render(mood),
	}

	scoreStyle, mark := theme.Incorrect, "✗"
	if r.Passed {
		scoreStyle, mark = theme.Correct, "✓"
	}
	scoreCard := []string{
		scoreStyle.Render(fmt.Sprintf("%s  %d%%", mark, r.Score)),
		theme.Selected.Render(r.Grade()),
		"",
		components.NewProgressBar("Your Score", float64(r.Score)/100, false, cw-6).View(),
		"",
		fmt.Sprintf("Correct Answers  %d/%d     Time Spent  %s", r.Correct, r.Total, formatDuration(r)),
	}
	sections = append(sections, components.Panel(lipgloss.NewStyle().Width(cw-6).Align(lipgloss.Center).Render(strings.Join(scoreCard, "\n")), cw))

	if r.Passed {
		cert := []string{
			lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render("✪ Certification Earned!"),
			certificationName(r.CertificationID),
			theme.Hint.Render("Earned on " + r.FinishedAt.Format("Jan 2, 2006")),
		}
		sections = append(sections, components.AccentPanel(strings.Join(cert, "\n"), cw, theme.Warning))
	}

	if d := a.renderDebrief(); d != "" {
		sections = append(sections, components.AccentPanel(d, cw, theme.Info))
	}

	sections = append(sections, components.Panel(a.renderReview(r), cw))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center,
		theme.ButtonInactive.Render("[r] Retake Assessment"), "  ",
		theme.ButtonActive.Render("[l] Continue Learning")))

	return centered(width, sections...)
}

func (a *AssessScreen) renderReview(r *assessment.Result) string {
	lines := []string{heading("◎", "Answer Review")}
	for i, q := range a.attempt.Questions() {
		chosen := assessment.Unanswered
		if i < len(r.Answers) {
			chosen = r.Answers[i]
		}
		ok := chosen == q.Correct

		status := theme.Incorrect.Render("✗")
		if ok {
			status = theme.Correct.Render("✓")
		}
		lines = append(lines, "",
			theme.Selected.Render(fmt.Sprintf("Q%d", i+1))+" "+status,
			theme.Body.Render(q.Prompt),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓ Correct: "+q.Options[q.Correct]),
		)
		if !ok {
			answer := "(no answer)"
			if chosen >= 0 && chosen < len(q.Options) {
				answer = q.Options[chosen]
			}
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.Error).Render("✗ Your answer: "+answer))
		}
		lines = append(lines, theme.Hint.Render(q.Explanation))
	}
	return lipgloss.NewStyle().Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
}

func (a *AssessScreen) renderDebrief() string {
	switch {
	case a.debriefPending:
		return theme.Hint.Render("Coach is reviewing your answers...")
	case a.debrief != nil:
		lines := []string{
			lipgloss.NewStyle().Foreground(theme.Info).Bold(true).Render("Coach"),
			theme.Body.Render(a.debrief.Summary),
		}
		for _, p := range a.debrief.Points {
			lines = append(lines, theme.Body.Render("• "+p.Text))
		}
		if a.debrief.Encouragement != "" {
			lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.Accent).Render(a.debrief.Encouragement))
		}
		return strings.Join(lines, "\n")
	case a.debriefErr != nil:
		return theme.Hint.Render("Coach unavailable right now.")
	}
	return ""
}

func formatDuration(r *assessment.Result) string {
	return practice.FormatClock(int(r.Duration.Seconds()))
}

func assessmentName(id string) string {
	if id == assessment.ID {
		return "CPR Basic Assessment"
	}
	return id
}

func certificationName(id string) string {
	if id == assessment.CertificationID {
		return assessment.CertificationName
	}
	return id
}
