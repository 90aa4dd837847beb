package coach

import "github.com/abhisek/cprcoach/internal/llm"

// DebriefSchema defines the JSON schema for an assessment debrief.
var DebriefSchema = &llm.Schema{
	Name:        "assessment-debrief",
	Description: "Explanations for missed CPR quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "1-2 sentence overview of how the learner did",
			},
			"points": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question_id": map[string]any{
							"type":        "string",
							"description": "ID of the missed question, e.g. q3",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "Why the correct answer is right (1-2 sentences)",
						},
					},
					"required":             []any{"question_id", "text"},
					"additionalProperties": false,
				},
			},
			"encouragement": map[string]any{
				"type":        "string",
				"description": "One short encouraging sentence",
			},
		},
		"required":             []any{"summary", "points", "encouragement"},
		"additionalProperties": false,
	},
}

// TipSchema defines the JSON schema for a practice tip.
var TipSchema = &llm.Schema{
	Name:        "practice-tip",
	Description: "Feedback on a chest compression practice session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "Short headline (3-8 words)",
			},
			"advice": map[string]any{
				"type":        "string",
				"description": "Concrete advice for the next session (2-3 sentences)",
			},
		},
		"required":             []any{"headline", "advice"},
		"additionalProperties": false,
	},
}
