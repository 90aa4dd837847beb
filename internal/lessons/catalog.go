// Package lessons holds the fixed CPR step catalog and derives learning
// progress from completed lesson IDs.
package lessons

import (
	"strings"

	"github.com/abhisek/cprcoach/internal/i18n"
)

// StepPrefix prefixes every step lesson ID.
const StepPrefix = "step"

// Step is one CPR lesson.
type Step struct {
	ID             string
	Number         int
	TitleKey       i18n.Key
	DescriptionKey i18n.Key
	Details        []string
	Tips           []string
}

// Title returns the localized step title.
func (s Step) Title(lang i18n.Lang) string { return i18n.T(lang, s.TitleKey) }

// Description returns the localized step description.
func (s Step) Description(lang i18n.Lang) string { return i18n.T(lang, s.DescriptionKey) }

// Steps is the ordered CPR lesson list.
var Steps = []Step{
	{
		ID:             "step1",
		Number:         1,
		TitleKey:       i18n.Step1Title,
		DescriptionKey: i18n.Step1Description,
		Details: []string{
			"Tap the person's shoulders firmly",
			`Shout "Are you okay?" loudly`,
			"Look for any response or movement",
			"If no response, proceed to call for help",
		},
		Tips: []string{
			"Be loud and clear when checking responsiveness",
			"Don't be afraid to shake shoulders firmly",
			"Look for any signs of consciousness",
		},
	},
	{
		ID:             "step2",
		Number:         2,
		TitleKey:       i18n.Step2Title,
		DescriptionKey: i18n.Step2Description,
		Details: []string{
			"Call 911 (or local emergency number) immediately",
			"Request an AED if available nearby",
			"Ask someone else to help if possible",
			"Stay on the line for instructions",
		},
		Tips: []string{
			"Don't delay calling for professional help",
			"Delegate tasks to bystanders if available",
			"AEDs can significantly improve survival rates",
		},
	},
	{
		ID:             "step3",
		Number:         3,
		TitleKey:       i18n.Step3Title,
		DescriptionKey: i18n.Step3Description,
		Details: []string{
			"Place two fingers on the carotid artery",
			"Check for 5-10 seconds maximum",
			"Feel for a strong, regular pulse",
			"If no pulse or unsure, begin CPR",
		},
		Tips: []string{
			"Don't spend too long checking for pulse",
			"When in doubt, start CPR",
			"Carotid artery is on the side of the neck",
		},
	},
	{
		ID:             "step4",
		Number:         4,
		TitleKey:       i18n.Step4Title,
		DescriptionKey: i18n.Step4Description,
		Details: []string{
			"Place heel of one hand on center of chest",
			"Place other hand on top, interlocking fingers",
			"Keep arms straight and shoulders over hands",
			"Position between the nipples on breastbone",
		},
		Tips: []string{
			"Hand placement is critical for effectiveness",
			"Keep your back straight to avoid injury",
			"Don't place hands on ribs or stomach",
		},
	},
	{
		ID:             "step5",
		Number:         5,
		TitleKey:       i18n.Step5Title,
		DescriptionKey: i18n.Step5Description,
		Details: []string{
			"Push hard and fast at least 2 inches deep",
			"Compress at rate of 100-120 per minute",
			"Allow complete chest recoil between compressions",
			`Count out loud: "1 and 2 and 3..."`,
		},
		Tips: []string{
			"Use your whole body weight, not just arms",
			`Think of the beat of "Stayin' Alive"`,
			"Don't be afraid to push hard - broken ribs heal",
		},
	},
	{
		ID:             "step6",
		Number:         6,
		TitleKey:       i18n.Step6Title,
		DescriptionKey: i18n.Step6Description,
		Details: []string{
			"After 30 compressions, tilt head back",
			"Lift chin to open airway",
			"Pinch nose closed and seal mouth",
			"Give 2 breaths, each lasting 1 second",
		},
		Tips: []string{
			"Watch for chest rise with each breath",
			"Don't over-ventilate",
			"Return to compressions immediately after breaths",
		},
	},
}

// Find returns the step with the given ID.
func Find(id string) (Step, bool) {
	for _, s := range Steps {
		if s.ID == id {
			return s, true
		}
	}
	return Step{}, false
}

// CompletedSteps counts completed lesson IDs that name a step. Duplicates
// are counted as recorded.
func CompletedSteps(completed []string) int {
	n := 0
	for _, id := range completed {
		if strings.HasPrefix(id, StepPrefix) {
			n++
		}
	}
	return n
}

// Percent is learning progress over the step catalog, in [0, 100] for
// duplicate-free input.
func Percent(completed []string) float64 {
	return float64(CompletedSteps(completed)) / float64(len(Steps)) * 100
}

// NextStep returns the first step not in completed, or false when all are
// done.
func NextStep(completed []string) (Step, bool) {
	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}
	for _, s := range Steps {
		if !done[s.ID] {
			return s, true
		}
	}
	return Step{}, false
}
