package lessons

import "github.com/abhisek/cprcoach/internal/progress"

// Guideline is the age-specific note shown under the step list.
type Guideline struct {
	Title string
	Text  string
}

// GuidelineFor returns the note for an age group. Unknown groups get the
// adult note.
func GuidelineFor(g progress.AgeGroup) Guideline {
	switch g {
	case progress.Children:
		return Guideline{
			Title: "For Kids",
			Text:  "Remember: CPR on children and infants is different from adults. Always get help from grown-ups in real emergencies!",
		}
	case progress.Teens:
		return Guideline{
			Title: "For Teens",
			Text:  "You're learning important life-saving skills! Practice regularly and consider getting certified through your school or local Red Cross.",
		}
	}
	return Guideline{
		Title: "Adult Guidelines",
		Text:  "These guidelines follow American Heart Association standards. Consider getting hands-on certification from a qualified instructor.",
	}
}
