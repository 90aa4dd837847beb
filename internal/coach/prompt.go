package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/cprcoach/internal/i18n"
	"github.com/abhisek/cprcoach/internal/practice"
	"github.com/abhisek/cprcoach/internal/progress"
)

const debriefSystemPrompt = `You are a calm, precise CPR instructor. A learner just finished a multiple-choice CPR knowledge quiz. Explain what they got wrong using current adult CPR guidance. Never give medical advice beyond standard layperson CPR.`

const tipSystemPrompt = `You are a CPR instructor reviewing a learner's chest compression practice on a rate trainer. The target rate is 100-120 compressions per minute. Give short, practical advice.`

func audience(g progress.AgeGroup) string {
	switch g {
	case progress.Children:
		return "a child aged 8-12; use very simple words and a friendly tone"
	case progress.Teens:
		return "a teenager aged 13-17; be direct and upbeat"
	}
	return "an adult"
}

func writeAudience(b *strings.Builder, lang i18n.Lang, g progress.AgeGroup) {
	if !lang.Valid() {
		lang = i18n.DefaultLang
	}
	fmt.Fprintf(b, "Audience: %s\n", audience(g))
	fmt.Fprintf(b, "Respond in: %s (%s)\n", lang.Name(), lang)
}

func buildDebriefUserMessage(input DebriefInput) string {
	var b strings.Builder
	writeAudience(&b, input.Lang, input.AgeGroup)

	result := "did not pass"
	if input.Passed {
		result = "passed"
	}
	fmt.Fprintf(&b, "Score: %d%% (%s)\n", input.Score, result)

	b.WriteString("\nMissed Questions:\n")
	for _, m := range input.Missed {
		chosen := m.Chosen
		if chosen == "" {
			chosen = "(no answer)"
		}
		fmt.Fprintf(&b, "- [%s] %s\n  Learner answered: %s\n  Correct answer: %s\n", m.QuestionID, m.Prompt, chosen, m.Correct)
	}

	b.WriteString(`
Instructions:
1. Write a 1-2 sentence summary of the result.
2. For each missed question, add one point with its question_id explaining why the correct answer is right.
3. End with one short encouraging sentence.
Use plain text only.`)
	return b.String()
}

func buildTipUserMessage(input TipInput) string {
	var b strings.Builder
	writeAudience(&b, input.Lang, input.AgeGroup)

	s := input.Summary
	fmt.Fprintf(&b, "Session length: %s\n", practice.FormatClock(s.Duration))
	fmt.Fprintf(&b, "Compressions: %d\n", s.Compressions)
	fmt.Fprintf(&b, "Final rate: %d per minute\n", s.AvgRate)
	if s.Tier != practice.TierNone {
		fmt.Fprintf(&b, "Rate feedback: %s\n", s.Tier.Advice())
	}

	b.WriteString(`
Instructions:
Give a short headline and 2-3 sentences of advice for the next session. Mention rhythm cues if the rate was off target.`)
	return b.String()
}
