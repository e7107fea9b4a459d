package assistant

import "github.com/Shivaram1629/smart-research-assistant/internal/llm"

// SummarySchema defines the JSON schema for document summary responses.
var SummarySchema = &llm.Schema{
	Name:        "document-summary",
	Description: "A concise summary of the loaded document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"description": "Summary of the document in at most 150 words, plain prose",
			},
		},
		"required":             []any{"summary"},
		"additionalProperties": false,
	},
}

// AnswerSchema defines the JSON schema for question-answering responses.
var AnswerSchema = &llm.Schema{
	Name:        "document-answer",
	Description: "An answer to a question, grounded in the document text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"answer": map[string]any{
				"type":        "string",
				"description": "The answer, or a plain statement that the document does not contain the information",
			},
			"citations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "Verbatim passages from the document that support the answer. Empty when declined.",
			},
			"declined": map[string]any{
				"type":        "boolean",
				"description": "True when the document does not contain enough information to answer",
			},
		},
		"required":             []any{"answer", "citations", "declined"},
		"additionalProperties": false,
	},
}

// ChallengeSchema defines the JSON schema for challenge generation
// responses: exactly three comprehension questions.
var ChallengeSchema = &llm.Schema{
	Name:        "challenge-questions",
	Description: "Three comprehension questions answerable from the document alone",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 3,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the user, self-contained",
						},
						"expected_answer_summary": map[string]any{
							"type":        "string",
							"description": "Brief summary of what a correct answer contains",
						},
						"source_reference": map[string]any{
							"type":        "string",
							"description": "Where in the document the answer lives: a short quote or page/section locator",
						},
						"reasoning": map[string]any{
							"type":        "string",
							"enum":        []any{"recall", "inference", "synthesis"},
							"description": "The kind of comprehension the question tests",
						},
					},
					"required":             []any{"prompt", "expected_answer_summary", "source_reference", "reasoning"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// EvaluationSchema defines the JSON schema for answer-grading responses.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "A graded evaluation of a user's answer to a challenge question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Numeric grade from 0 (no relevant content) to 100 (fully correct and complete)",
			},
			"verdict": map[string]any{
				"type":        "string",
				"enum":        []any{"correct", "partially_correct", "incorrect"},
				"description": "Overall judgment consistent with the score",
			},
			"strengths": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "What the answer got right, grounded in the document",
			},
			"gaps": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"description": "What the answer missed or got wrong",
			},
			"justification": map[string]any{
				"type":        "string",
				"description": "Brief explanation of the grade, referencing the document text",
			},
		},
		"required":             []any{"score", "verdict", "strengths", "gaps", "justification"},
		"additionalProperties": false,
	},
}
