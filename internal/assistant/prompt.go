package assistant

import (
	"fmt"
	"strings"
)

const summarySystemPrompt = `You are a research assistant summarizing a document for its reader.

Rules:
- Base the summary strictly on the document text provided. Do not add outside knowledge.
- Write a concise summary of no more than 150 words.
- Capture the document's main topic, key claims or findings, and overall structure.
- Use plain prose, no bullet points, no headings.
- Do not mention that you are an AI or that you were given a document; just summarize it.`

const askSystemPrompt = `You are a research assistant answering questions about a single document.

Rules:
- Answer strictly from the document text provided. Do not use outside knowledge.
- Every answer must cite the document: quote the exact supporting passage(s) in the "citations" array, copied verbatim from the document text.
- If the document does not contain enough information to answer, say so plainly, set "declined" to true, and leave "citations" empty. Never guess.
- Prior turns of this conversation may be included for context. Resolve pronouns and follow-up references ("it", "that section") against them, but ground the answer itself only in the document text.
- Keep answers focused and factual.`

const challengeSystemPrompt = `You are a research assistant creating comprehension questions about a single document.

Rules:
- Generate exactly 3 questions, all answerable from the document text provided alone.
- Each question must be distinct: no two questions may test the same fact or passage.
- Mix reasoning kinds across the set: "recall" (locate a stated fact), "inference" (conclude something the text implies), "synthesis" (connect multiple parts of the text).
- For each question, provide a brief expected answer summary and a source reference naming where in the document the answer lives (a short quote or a page/section locator).
- Questions must be self-contained: a reader with the document open should understand them without extra context.`

const evaluateSystemPrompt = `You are a research assistant grading a reader's answer to a comprehension question about a document.

Rules:
- Judge the user's answer only against the document text and the expected answer provided. Do not use outside knowledge.
- Score from 0 to 100: 90-100 fully correct and complete, 70-89 correct with minor gaps, 40-69 partially correct, 1-39 mostly incorrect, 0 no relevant content.
- Set "verdict" to "correct" (score >= 80), "partially_correct" (40-79), or "incorrect" (below 40).
- List concrete strengths (what the answer got right) and gaps (what it missed or got wrong), each grounded in the document.
- The justification must reference the document text, briefly.`

// buildSummaryUser composes the user message for a summary request.
func buildSummaryUser(contextText string) string {
	var b strings.Builder
	b.WriteString("Document text:\n\n")
	b.WriteString(contextText)
	return b.String()
}

// buildAskUser composes the user message for a question, folding the
// replay window in ahead of the current question so the model sees the
// conversation in order.
func buildAskUser(contextText, question string, window []Turn) string {
	var b strings.Builder
	b.WriteString("Document text:\n\n")
	b.WriteString(contextText)

	if len(window) > 0 {
		b.WriteString("\n\nPrior turns in this conversation (oldest first):\n")
		for i, t := range window {
			fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n", i+1, t.Question, t.Answer)
		}
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

// buildChallengeUser composes the user message for challenge
// generation. Prior prompts from a discarded batch are passed so a
// regeneration does not reproduce them.
func buildChallengeUser(contextText string, priorPrompts []string) string {
	var b strings.Builder
	b.WriteString("Document text:\n\n")
	b.WriteString(contextText)

	if len(priorPrompts) > 0 {
		b.WriteString("\n\nDo not repeat any of these previously generated questions:\n")
		for i, p := range priorPrompts {
			fmt.Fprintf(&b, "%d. %s\n", i+1, p)
		}
	}
	return b.String()
}

// buildEvaluateUser composes the user message for grading an answer.
func buildEvaluateUser(contextText string, q ChallengeQuestion, userAnswer string) string {
	var b strings.Builder
	b.WriteString("Document text:\n\n")
	b.WriteString(contextText)

	b.WriteString("\n\nQuestion: ")
	b.WriteString(q.Prompt)
	b.WriteString("\nExpected answer summary: ")
	b.WriteString(q.ExpectedAnswerSummary)
	b.WriteString("\nSource reference: ")
	b.WriteString(q.SourceReference)
	b.WriteString("\n\nUser's answer: ")
	b.WriteString(userAnswer)
	return b.String()
}
