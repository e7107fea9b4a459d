package assistant

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Shivaram1629/smart-research-assistant/internal/document"
	"github.com/Shivaram1629/smart-research-assistant/internal/llm"
)

func newChallengeSession(t *testing.T, responses ...llm.MockResponse) (*Session, *llm.MockProvider) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	s := NewSession(mock, Config{Timeout: 5 * time.Second})
	if err := s.LoadDocument(document.New("cell.txt", cellText)); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	return s, mock
}

func TestGenerateChallenge_BatchOfThree(t *testing.T) {
	s, _ := newChallengeSession(t, llm.MockResponse{
		Content: challengeJSON("What produces ATP?", "Why the matrix?", "Connect the two pathways."),
	})

	qs, err := s.GenerateChallenge(context.Background())
	if err != nil {
		t.Fatalf("GenerateChallenge: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}

	got, err := s.ChallengeQuestions()
	if err != nil {
		t.Fatalf("ChallengeQuestions: %v", err)
	}
	if got[0].ID != qs[0].ID {
		t.Error("ChallengeQuestions does not return the active batch")
	}
}

func TestChallengeQuestions_NoneActive(t *testing.T) {
	s, _ := newChallengeSession(t)
	if _, err := s.ChallengeQuestions(); !IsKind(err, KindInvalidChallengeState) {
		t.Fatalf("err = %v, want KindInvalidChallengeState", err)
	}
}

func TestEvaluateAnswer_RecordsAndOverwrites(t *testing.T) {
	s, _ := newChallengeSession(t,
		llm.MockResponse{Content: challengeJSON("q1?", "q2?", "q3?")},
		llm.MockResponse{Content: evaluationJSON(40, "partially_correct")},
		llm.MockResponse{Content: evaluationJSON(90, "correct")},
	)

	qs, err := s.GenerateChallenge(context.Background())
	if err != nil {
		t.Fatalf("GenerateChallenge: %v", err)
	}

	first, err := s.EvaluateAnswer(context.Background(), qs[0].ID, "vague answer")
	if err != nil {
		t.Fatalf("first EvaluateAnswer: %v", err)
	}
	if first.Score != 40 {
		t.Errorf("first score = %d", first.Score)
	}

	// Resubmission replaces the earlier evaluation.
	second, err := s.EvaluateAnswer(context.Background(), qs[0].ID, "better answer")
	if err != nil {
		t.Fatalf("second EvaluateAnswer: %v", err)
	}
	if second.Score != 90 {
		t.Errorf("second score = %d", second.Score)
	}

	recorded, ok := s.EvaluationFor(qs[0].ID)
	if !ok {
		t.Fatal("no evaluation recorded")
	}
	if recorded.Score != 90 || recorded.UserAnswer != "better answer" {
		t.Errorf("recorded = %+v, want the latest submission", recorded)
	}
}

func TestEvaluateAnswer_UnknownQuestionID(t *testing.T) {
	s, mock := newChallengeSession(t, llm.MockResponse{
		Content: challengeJSON("q1?", "q2?", "q3?"),
	})
	if _, err := s.GenerateChallenge(context.Background()); err != nil {
		t.Fatalf("GenerateChallenge: %v", err)
	}

	calls := len(mock.Calls)
	_, err := s.EvaluateAnswer(context.Background(), "no-such-id", "a")
	if !IsKind(err, KindInvalidChallengeState) {
		t.Fatalf("err = %v, want KindInvalidChallengeState", err)
	}
	if len(mock.Calls) != calls {
		t.Error("invalid question ID still reached the provider")
	}
}

func TestGenerateChallenge_RegenerationDiscardsPriorBatch(t *testing.T) {
	s, mock := newChallengeSession(t,
		llm.MockResponse{Content: challengeJSON("a?", "b?", "c?")},
		llm.MockResponse{Content: challengeJSON("d?", "e?", "f?")},
	)

	first, err := s.GenerateChallenge(context.Background())
	if err != nil {
		t.Fatalf("first GenerateChallenge: %v", err)
	}
	second, err := s.GenerateChallenge(context.Background())
	if err != nil {
		t.Fatalf("second GenerateChallenge: %v", err)
	}

	// Old IDs are dead.
	if _, err := s.EvaluateAnswer(context.Background(), first[0].ID, "x"); !IsKind(err, KindInvalidChallengeState) {
		t.Errorf("stale ID: err = %v, want KindInvalidChallengeState", err)
	}
	for _, q := range second {
		if q.ID == first[0].ID {
			t.Error("regenerated batch reused an old ID")
		}
	}

	// Regeneration request asks the model to avoid the old prompts.
	regen := mock.Calls[1].Messages[0].Content
	if !strings.Contains(regen, "a?") || !strings.Contains(regen, "Do not repeat") {
		t.Error("regeneration request missing prior-prompt dedup list")
	}
}

func TestEvaluateAnswer_MalformedReplyCommitsNothing(t *testing.T) {
	s, _ := newChallengeSession(t,
		llm.MockResponse{Content: challengeJSON("q1?", "q2?", "q3?")},
		llm.MockResponse{Content: json.RawMessage(`{"verdict":"correct","strengths":[],"gaps":[],"justification":"ok"}`)},
	)

	qs, err := s.GenerateChallenge(context.Background())
	if err != nil {
		t.Fatalf("GenerateChallenge: %v", err)
	}

	// Reply is missing the score field.
	if _, err := s.EvaluateAnswer(context.Background(), qs[0].ID, "a"); !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse", err)
	}
	if _, ok := s.EvaluationFor(qs[0].ID); ok {
		t.Error("failed evaluation was recorded")
	}
}

func TestGenerateChallenge_FailureKeepsOldBatch(t *testing.T) {
	s, _ := newChallengeSession(t,
		llm.MockResponse{Content: challengeJSON("a?", "b?", "c?")},
		llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)},
		llm.MockResponse{Content: evaluationJSON(80, "correct")},
	)

	first, err := s.GenerateChallenge(context.Background())
	if err != nil {
		t.Fatalf("GenerateChallenge: %v", err)
	}

	if _, err := s.GenerateChallenge(context.Background()); !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse", err)
	}

	// The old batch is still the active one.
	if _, err := s.EvaluateAnswer(context.Background(), first[0].ID, "answer"); err != nil {
		t.Errorf("old batch unusable after failed regeneration: %v", err)
	}
}
