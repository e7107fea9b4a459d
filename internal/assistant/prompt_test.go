package assistant

import (
	"strings"
	"testing"
	"time"
)

func TestBuildAskUser_FoldsReplayWindow(t *testing.T) {
	window := []Turn{
		{Question: "What is ATP?", Answer: "The cell's energy currency.", Timestamp: time.Now()},
		{Question: "Where is it made?", Answer: "In the mitochondria.", Timestamp: time.Now()},
	}
	msg := buildAskUser("doc text here", "How much is produced?", window)

	if !strings.Contains(msg, "doc text here") {
		t.Error("message missing document context")
	}
	if !strings.Contains(msg, "Question: How much is produced?") {
		t.Error("message missing the current question")
	}
	// Turns appear oldest first, before the current question.
	first := strings.Index(msg, "What is ATP?")
	second := strings.Index(msg, "Where is it made?")
	current := strings.Index(msg, "How much is produced?")
	if first < 0 || second < 0 || first > second || second > current {
		t.Errorf("turn ordering wrong: first=%d second=%d current=%d", first, second, current)
	}
}

func TestBuildAskUser_NoWindow(t *testing.T) {
	msg := buildAskUser("ctx", "q", nil)
	if strings.Contains(msg, "Prior turns") {
		t.Error("empty window still rendered a prior-turns section")
	}
}

func TestBuildChallengeUser_ListsPriorPrompts(t *testing.T) {
	msg := buildChallengeUser("ctx", []string{"Old question one?", "Old question two?"})
	if !strings.Contains(msg, "Do not repeat") {
		t.Error("message missing the dedup instruction")
	}
	if !strings.Contains(msg, "Old question two?") {
		t.Error("message missing a prior prompt")
	}

	fresh := buildChallengeUser("ctx", nil)
	if strings.Contains(fresh, "Do not repeat") {
		t.Error("dedup section rendered with no prior prompts")
	}
}

func TestBuildEvaluateUser_CarriesHiddenFields(t *testing.T) {
	q := ChallengeQuestion{
		Prompt:                "Where does the Krebs cycle run?",
		ExpectedAnswerSummary: "In the mitochondrial matrix.",
		SourceReference:       "Page 2",
	}
	msg := buildEvaluateUser("ctx", q, "in the matrix")
	for _, want := range []string{q.Prompt, q.ExpectedAnswerSummary, q.SourceReference, "in the matrix"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}
