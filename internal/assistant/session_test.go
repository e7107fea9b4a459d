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

const cellText = "Mitochondria are the powerhouse of the cell. " +
	"They produce ATP through oxidative phosphorylation. " +
	"The Krebs cycle runs in the mitochondrial matrix."

func newTestSession(t *testing.T, mock *llm.MockProvider) *Session {
	t.Helper()
	s := NewSession(mock, Config{Timeout: 5 * time.Second})
	if err := s.LoadDocument(document.New("cell.txt", cellText)); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	return s
}

func answerJSON(text string, citations ...string) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"answer":    text,
		"citations": citations,
		"declined":  false,
	})
	return raw
}

func TestSession_Summarize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"The document explains how mitochondria produce ATP."}`),
	})
	s := newTestSession(t, mock)

	sum, err := s.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.Contains(sum.Text, "mitochondria") {
		t.Errorf("summary = %q", sum.Text)
	}
	if len(mock.Calls) != 1 {
		t.Fatalf("provider calls = %d, want 1", len(mock.Calls))
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "powerhouse") {
		t.Error("request does not carry the document text")
	}
	// Summaries are stateless.
	if len(s.History()) != 0 {
		t.Error("summary polluted conversation memory")
	}
}

func TestSession_AskGroundedWithCitations(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: answerJSON("In the mitochondrial matrix.", "The Krebs cycle runs in the mitochondrial matrix."),
	})
	s := newTestSession(t, mock)

	ans, err := s.Ask(context.Background(), "Where does the Krebs cycle run?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(ans.Citations) != 1 {
		t.Fatalf("Citations = %v, want the quoted passage", ans.Citations)
	}
	if len(s.History()) != 1 {
		t.Fatalf("history length = %d, want the exchange committed", len(s.History()))
	}
}

func TestSession_AskReplaysPriorTurns(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: answerJSON("They produce ATP.")},
		llm.MockResponse{Content: answerJSON("Oxidative phosphorylation.")},
	)
	s := newTestSession(t, mock)

	if _, err := s.Ask(context.Background(), "What do mitochondria do?"); err != nil {
		t.Fatalf("first Ask: %v", err)
	}
	if _, err := s.Ask(context.Background(), "How do they do that?"); err != nil {
		t.Fatalf("second Ask: %v", err)
	}

	second := mock.Calls[1].Messages[0].Content
	if !strings.Contains(second, "What do mitochondria do?") || !strings.Contains(second, "They produce ATP.") {
		t.Error("second request missing the prior turn")
	}
}

func TestSession_AskFailureLeavesMemoryUnchanged(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"answer":"","citations":[],"declined":false}`),
	})
	s := newTestSession(t, mock)

	_, err := s.Ask(context.Background(), "anything?")
	if !IsKind(err, KindMalformedResponse) {
		t.Fatalf("err = %v, want KindMalformedResponse", err)
	}
	if len(s.History()) != 0 {
		t.Error("failed call committed a turn to memory")
	}
}

func TestSession_OperationsRequireDocument(t *testing.T) {
	s := NewSession(llm.NewMockProvider(), Config{})
	if _, err := s.Summarize(context.Background()); !IsKind(err, KindEmptyDocument) {
		t.Errorf("Summarize without document: err = %v", err)
	}
	if _, err := s.Ask(context.Background(), "q"); !IsKind(err, KindEmptyDocument) {
		t.Errorf("Ask without document: err = %v", err)
	}
	if _, err := s.GenerateChallenge(context.Background()); !IsKind(err, KindEmptyDocument) {
		t.Errorf("GenerateChallenge without document: err = %v", err)
	}
}

func TestSession_LoadDocumentRejectsEmptyAndKeepsCurrent(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: answerJSON("ok")})
	s := newTestSession(t, mock)
	if _, err := s.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask: %v", err)
	}

	err := s.LoadDocument(document.New("blank.txt", "  \n "))
	if !IsKind(err, KindEmptyDocument) {
		t.Fatalf("err = %v, want KindEmptyDocument", err)
	}

	// Previous document and its history survive the rejected load.
	if doc, ok := s.Document(); !ok || doc.Filename != "cell.txt" {
		t.Error("previous document was dropped")
	}
	if len(s.History()) != 1 {
		t.Error("history was dropped on a rejected load")
	}
}

func TestSession_LoadDocumentResetsState(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: answerJSON("ok")},
		llm.MockResponse{Content: challengeJSON("q1?", "q2?", "q3?")},
	)
	s := newTestSession(t, mock)
	if _, err := s.Ask(context.Background(), "q"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	qs, err := s.GenerateChallenge(context.Background())
	if err != nil {
		t.Fatalf("GenerateChallenge: %v", err)
	}

	if err := s.LoadDocument(document.New("next.txt", "A different paper entirely.")); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	if len(s.History()) != 0 {
		t.Error("memory survived a document switch")
	}
	if _, err := s.EvaluateAnswer(context.Background(), qs[0].ID, "a"); !IsKind(err, KindInvalidChallengeState) {
		t.Errorf("stale question ID after reload: err = %v, want KindInvalidChallengeState", err)
	}
}

// blockingProvider blocks until the context is done, standing in for a
// hung upstream.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingProvider) ModelID() string { return "blocking" }

func TestSession_TimeoutMapsToUpstreamTimeout(t *testing.T) {
	s := NewSession(blockingProvider{}, Config{Timeout: 20 * time.Millisecond})
	if err := s.LoadDocument(document.New("cell.txt", cellText)); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	_, err := s.Ask(context.Background(), "q")
	if !IsKind(err, KindUpstreamTimeout) {
		t.Fatalf("err = %v, want KindUpstreamTimeout", err)
	}
	if len(s.History()) != 0 {
		t.Error("timed-out call committed a turn")
	}
}

func TestSession_ProviderFailureMapsToUnavailable(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})
	s := newTestSession(t, mock)

	_, err := s.Ask(context.Background(), "q")
	if !IsKind(err, KindUpstreamUnavailable) {
		t.Fatalf("err = %v, want KindUpstreamUnavailable", err)
	}
}

func TestSession_TruncatedContextFlagsResult(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"summary":"ok"}`),
	})
	s := NewSession(mock, Config{ContextCharBudget: 30, Timeout: 5 * time.Second})
	if err := s.LoadDocument(document.New("cell.txt", cellText)); err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}

	sum, err := s.Summarize(context.Background())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !sum.Truncated {
		t.Error("Truncated = false, want true for an over-budget document")
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "DOCUMENT TRUNCATED") {
		t.Error("request missing the truncation marker")
	}
}
