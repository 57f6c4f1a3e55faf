package practice

import "github.com/abhisek/wordquiz/internal/llm"

// SentencesSchema defines the JSON schema for example sentence generation.
var SentencesSchema = &llm.Schema{
	Name:        "example-sentences",
	Description: "Example English sentences using a vocabulary word, each with a Korean translation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentences": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"english": map[string]any{
							"type":        "string",
							"description": "A natural sentence using the word",
						},
						"korean": map[string]any{
							"type":        "string",
							"description": "Korean translation of the sentence",
						},
					},
					"required":             []any{"english", "korean"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"sentences"},
		"additionalProperties": false,
	},
}

// FeedbackSchema defines the JSON schema for reviewing a learner sentence.
var FeedbackSchema = &llm.Schema{
	Name:        "sentence-feedback",
	Description: "Feedback on a learner's sentence using a vocabulary word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the sentence is grammatical and uses the word correctly",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One to three sentences of encouraging feedback",
			},
			"suggestion": map[string]any{
				"type":        "string",
				"description": "An improved version of the sentence, or empty if none is needed",
			},
		},
		"required":             []any{"correct", "feedback", "suggestion"},
		"additionalProperties": false,
	},
}
