package assistant

import "time"

// Summary is the result of the summarize operation.
type Summary struct {
	// Text is the summary, hard-capped at 150 words.
	Text string

	// Truncated is true when the document exceeded the context budget
	// and only a prefix was summarized. Degraded-confidence signal.
	Truncated bool
}

// Answer is the result of an ask operation.
type Answer struct {
	// Text is the grounded answer.
	Text string

	// Citations are spans of document text supporting the answer.
	// Only citations that actually ground to the supplied context are
	// kept; a declined answer never carries citations.
	Citations []string

	// Declined is true when the document does not contain enough
	// information to answer.
	Declined bool

	// Truncated mirrors Summary.Truncated.
	Truncated bool
}

// Turn is one completed question/answer exchange, appended to the
// conversation log after a successful ask and never mutated.
type Turn struct {
	Question  string
	Answer    string
	Citations []string
	Timestamp time.Time
}

// ReasoningKind labels the comprehension skill a challenge question
// targets. The three questions of a batch span distinct kinds.
type ReasoningKind string

const (
	ReasoningRecall    ReasoningKind = "recall"
	ReasoningInference ReasoningKind = "inference"
	ReasoningSynthesis ReasoningKind = "synthesis"
)

// ChallengeQuestion is one generated comprehension question. The
// expected answer and source reference are kept server-side for the
// evaluate step and withheld from the user-facing view.
type ChallengeQuestion struct {
	ID                    string
	Prompt                string
	ExpectedAnswerSummary string
	SourceReference       string
	Reasoning             ReasoningKind
}

// Verdict is the categorical outcome of an evaluation.
type Verdict string

const (
	VerdictCorrect          Verdict = "correct"
	VerdictPartiallyCorrect Verdict = "partially_correct"
	VerdictIncorrect        Verdict = "incorrect"
)

// Evaluation is the graded result for one submitted answer. Immutable
// once created; resubmitting the same question replaces it wholesale.
type Evaluation struct {
	QuestionID    string
	UserAnswer    string
	Score         int // 0-100
	Verdict       Verdict
	Strengths     []string
	Gaps          []string
	Justification string
}
