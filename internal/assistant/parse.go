package assistant

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// summaryWordCap is the hard ceiling on summary length. The prompt
// already asks for it, but models overshoot; the cap is enforced here
// after parsing rather than trusted.
const summaryWordCap = 150

// scoreClampMargin is how far outside [0,100] a score may land and
// still be clamped rather than rejected. A score of 103 is a rounding
// quirk; a score of 740 is a malformed reply.
const scoreClampMargin = 10

// summaryOutput is the raw LLM summary response before validation.
type summaryOutput struct {
	Summary string `json:"summary"`
}

// answerOutput is the raw LLM answer response before validation.
type answerOutput struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
	Declined  bool     `json:"declined"`
}

// challengeOutput is the raw LLM challenge response before validation.
type challengeOutput struct {
	Questions []struct {
		Prompt                string `json:"prompt"`
		ExpectedAnswerSummary string `json:"expected_answer_summary"`
		SourceReference       string `json:"source_reference"`
		Reasoning             string `json:"reasoning"`
	} `json:"questions"`
}

// evaluationOutput is the raw LLM evaluation response before validation.
// Score is a pointer so a missing field is distinguishable from 0.
type evaluationOutput struct {
	Score         *int     `json:"score"`
	Verdict       string   `json:"verdict"`
	Strengths     []string `json:"strengths"`
	Gaps          []string `json:"gaps"`
	Justification string   `json:"justification"`
}

// parseSummary decodes a summary reply and enforces the word cap.
func parseSummary(content json.RawMessage, truncatedContext bool) (Summary, error) {
	var raw summaryOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return Summary{}, wrapError(KindMalformedResponse, err, "decoding summary reply")
	}
	text := strings.TrimSpace(raw.Summary)
	if text == "" {
		return Summary{}, newError(KindMalformedResponse, "summary reply has empty summary text")
	}
	return Summary{
		Text:      capWords(text, summaryWordCap),
		Truncated: truncatedContext,
	}, nil
}

// parseAnswer decodes an answer reply and grounds its citations
// against the context the model was shown. Declined answers never
// carry citations.
func parseAnswer(content json.RawMessage, contextText string, truncatedContext bool) (Answer, error) {
	var raw answerOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return Answer{}, wrapError(KindMalformedResponse, err, "decoding answer reply")
	}
	if strings.TrimSpace(raw.Answer) == "" {
		return Answer{}, newError(KindMalformedResponse, "answer reply has empty answer text")
	}

	ans := Answer{
		Text:      strings.TrimSpace(raw.Answer),
		Declined:  raw.Declined,
		Truncated: truncatedContext,
	}
	if !raw.Declined {
		ans.Citations = groundCitations(contextText, raw.Citations)
	}
	return ans, nil
}

// parseChallenge decodes a challenge reply into a batch of exactly
// three distinct questions, assigning each a fresh ID.
func parseChallenge(content json.RawMessage) ([]ChallengeQuestion, error) {
	var raw challengeOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, wrapError(KindMalformedResponse, err, "decoding challenge reply")
	}
	if len(raw.Questions) != challengeBatchSize {
		return nil, newError(KindMalformedResponse, "challenge reply has %d questions, want %d", len(raw.Questions), challengeBatchSize)
	}

	seen := make(map[string]bool, challengeBatchSize)
	questions := make([]ChallengeQuestion, 0, challengeBatchSize)
	for i, q := range raw.Questions {
		prompt := strings.TrimSpace(q.Prompt)
		if prompt == "" {
			return nil, newError(KindMalformedResponse, "challenge question %d has empty prompt", i+1)
		}
		key := normalize(prompt)
		if seen[key] {
			return nil, newError(KindMalformedResponse, "challenge reply repeats question %q", prompt)
		}
		seen[key] = true

		kind := ReasoningKind(q.Reasoning)
		switch kind {
		case ReasoningRecall, ReasoningInference, ReasoningSynthesis:
		default:
			return nil, newError(KindMalformedResponse, "challenge question %d has unknown reasoning kind %q", i+1, q.Reasoning)
		}

		questions = append(questions, ChallengeQuestion{
			ID:                    uuid.NewString(),
			Prompt:                prompt,
			ExpectedAnswerSummary: strings.TrimSpace(q.ExpectedAnswerSummary),
			SourceReference:       strings.TrimSpace(q.SourceReference),
			Reasoning:             kind,
		})
	}
	return questions, nil
}

// parseEvaluation decodes a grading reply, clamping near-miss scores
// and rejecting wildly out-of-range ones.
func parseEvaluation(content json.RawMessage, questionID, userAnswer string) (Evaluation, error) {
	var raw evaluationOutput
	if err := json.Unmarshal(content, &raw); err != nil {
		return Evaluation{}, wrapError(KindMalformedResponse, err, "decoding evaluation reply")
	}

	if raw.Score == nil {
		return Evaluation{}, newError(KindMalformedResponse, "evaluation reply is missing the score field")
	}
	score, err := clampScore(*raw.Score)
	if err != nil {
		return Evaluation{}, err
	}

	verdict := Verdict(raw.Verdict)
	switch verdict {
	case VerdictCorrect, VerdictPartiallyCorrect, VerdictIncorrect:
	default:
		return Evaluation{}, newError(KindMalformedResponse, "evaluation reply has unknown verdict %q", raw.Verdict)
	}
	if strings.TrimSpace(raw.Justification) == "" {
		return Evaluation{}, newError(KindMalformedResponse, "evaluation reply has empty justification")
	}

	return Evaluation{
		QuestionID:    questionID,
		UserAnswer:    userAnswer,
		Score:         score,
		Verdict:       verdict,
		Strengths:     raw.Strengths,
		Gaps:          raw.Gaps,
		Justification: strings.TrimSpace(raw.Justification),
	}, nil
}

// clampScore pulls a slightly out-of-range score back into [0,100]
// and rejects anything further out.
func clampScore(score int) (int, error) {
	switch {
	case score >= 0 && score <= 100:
		return score, nil
	case score < 0 && score >= -scoreClampMargin:
		fmt.Fprintf(os.Stderr, "warning: clamping out-of-range score %d to 0\n", score)
		return 0, nil
	case score > 100 && score <= 100+scoreClampMargin:
		fmt.Fprintf(os.Stderr, "warning: clamping out-of-range score %d to 100\n", score)
		return 100, nil
	default:
		return 0, newError(KindMalformedResponse, "evaluation score %d is outside the accepted range", score)
	}
}

// capWords truncates text to at most max words, appending an ellipsis
// when anything was cut.
func capWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}
	return strings.Join(words[:max], " ") + "…"
}
