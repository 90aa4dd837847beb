package assessment

// Question is one multiple-choice item.
type Question struct {
	ID          string
	Prompt      string
	Options     []string
	Correct     int
	Explanation string
}

// Basic is the fixed CPR knowledge quiz.
var Basic = []Question{
	{
		ID:     "q1",
		Prompt: "What is the first step when you find an unresponsive person?",
		Options: []string{
			"Start chest compressions immediately",
			"Check for responsiveness and call for help",
			"Check for a pulse",
			"Give rescue breaths",
		},
		Correct:     1,
		Explanation: "Always check for responsiveness first by tapping shoulders and shouting, then call for help immediately.",
	},
	{
		ID:     "q2",
		Prompt: "What is the correct compression rate for CPR?",
		Options: []string{
			"60-80 compressions per minute",
			"80-100 compressions per minute",
			"100-120 compressions per minute",
			"120-140 compressions per minute",
		},
		Correct:     2,
		Explanation: "The American Heart Association recommends 100-120 compressions per minute for effective CPR.",
	},
	{
		ID:     "q3",
		Prompt: "How deep should chest compressions be for an adult?",
		Options: []string{
			"At least 1 inch (2.5 cm)",
			"At least 1.5 inches (3.8 cm)",
			"At least 2 inches (5 cm)",
			"At least 3 inches (7.6 cm)",
		},
		Correct:     2,
		Explanation: "Compressions should be at least 2 inches (5 cm) deep but not more than 2.4 inches (6 cm).",
	},
	{
		ID:     "q4",
		Prompt: "What is the correct ratio of compressions to breaths in CPR?",
		Options: []string{
			"15:2",
			"30:2",
			"20:2",
			"25:2",
		},
		Correct:     1,
		Explanation: "The standard ratio is 30 chest compressions followed by 2 rescue breaths.",
	},
	{
		ID:     "q5",
		Prompt: "Where should you place your hands for chest compressions?",
		Options: []string{
			"On the upper chest near the collar bone",
			"On the lower half of the breastbone",
			"On the left side of the chest over the heart",
			"On the stomach just below the ribs",
		},
		Correct:     1,
		Explanation: "Place the heel of your hand on the lower half of the breastbone, between the nipples.",
	},
	{
		ID:     "q6",
		Prompt: "When should you stop CPR?",
		Options: []string{
			"After 5 minutes if no response",
			"When you get tired",
			"When emergency services arrive or the person starts breathing normally",
			"After 30 compressions",
		},
		Correct:     2,
		Explanation: "Continue CPR until emergency services take over, the person starts breathing normally, or you become too exhausted to continue.",
	},
	{
		ID:     "q7",
		Prompt: "What should you do if you are not trained in rescue breathing?",
		Options: []string{
			"Don't perform CPR at all",
			"Perform hands-only CPR (compressions only)",
			"Wait for someone trained to arrive",
			"Try rescue breathing anyway",
		},
		Correct:     1,
		Explanation: "Hands-only CPR (continuous chest compressions) is better than no CPR and can be life-saving.",
	},
	{
		ID:     "q8",
		Prompt: "How often should you switch with another person during CPR?",
		Options: []string{
			"Every 30 seconds",
			"Every 1 minute",
			"Every 2 minutes",
			"Every 5 minutes",
		},
		Correct:     2,
		Explanation: "Switch every 2 minutes to prevent fatigue and maintain effective compressions.",
	},
}
