package app

import (
	"time"

	"github.com/Shivaram1629/smart-research-assistant/internal/assistant"
	"github.com/Shivaram1629/smart-research-assistant/internal/document"
)

// documentLoadedMsg is sent when text extraction and session load finish.
type documentLoadedMsg struct {
	Doc document.Document
	Err error
}

// summaryReadyMsg is sent when the summary call completes.
type summaryReadyMsg struct {
	Summary assistant.Summary
	Err     error
}

// answerReadyMsg is sent when a question has been answered.
type answerReadyMsg struct {
	Question string
	Answer   assistant.Answer
	Err      error
}

// challengeReadyMsg is sent when a challenge batch has been generated.
type challengeReadyMsg struct {
	Questions []assistant.ChallengeQuestion
	Err       error
}

// evaluationReadyMsg is sent when an answer has been graded.
type evaluationReadyMsg struct {
	Evaluation assistant.Evaluation
	Err        error
}

// spinnerTickMsg animates the loading indicator.
type spinnerTickMsg time.Time
