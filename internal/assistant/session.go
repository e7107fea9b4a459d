package assistant

import (
	"context"
	"errors"
	"sync"

	"github.com/Shivaram1629/smart-research-assistant/internal/document"
	"github.com/Shivaram1629/smart-research-assistant/internal/llm"
)

// Session is the single entry point for reasoning about one document.
// It owns the conversation memory and the challenge state, serializes
// all operations with a mutex, and guarantees that a failed model call
// never mutates state: parsing and validation happen first, the commit
// happens last.
type Session struct {
	mu       sync.Mutex
	provider llm.Provider
	config   Config

	doc       document.Document
	docLoaded bool
	memory    Memory
	challenge *challengeState
}

// NewSession creates a session backed by the given provider. No
// document is loaded yet; every operation except LoadDocument fails
// until one is.
func NewSession(provider llm.Provider, cfg Config) *Session {
	return &Session{
		provider:  provider,
		config:    cfg.withDefaults(),
		challenge: newChallengeState(),
	}
}

// LoadDocument installs a document and resets all per-document state:
// conversation memory and any challenge batch belong to the previous
// document and are discarded. An empty document is rejected and the
// previous document, if any, stays loaded.
func (s *Session) LoadDocument(doc document.Document) error {
	if doc.Empty() {
		return newError(KindEmptyDocument, "document %q has no text content", doc.Filename)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.docLoaded = true
	s.memory.Clear()
	s.challenge.reset()
	return nil
}

// Document returns the loaded document and whether one is loaded.
func (s *Session) Document() (document.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, s.docLoaded
}

// History returns the conversation turns so far, oldest first.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memory.Turns()
}

// Summarize produces a summary of the loaded document, at most 150
// words. Summaries are stateless: they neither read nor write
// conversation memory.
func (s *Session) Summarize(ctx context.Context) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contextText, truncated, err := s.contextText()
	if err != nil {
		return Summary{}, err
	}

	resp, err := s.generate(ctx, "summary", summarySystemPrompt, buildSummaryUser(contextText), SummarySchema)
	if err != nil {
		return Summary{}, err
	}
	return parseSummary(resp.Content, truncated)
}

// Ask answers a question about the loaded document. The reply is
// grounded in the document text and cites it; when the document cannot
// answer, the reply says so and declines rather than guessing. The
// exchange is appended to memory only after the reply parses cleanly.
func (s *Session) Ask(ctx context.Context, question string) (Answer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contextText, truncated, err := s.contextText()
	if err != nil {
		return Answer{}, err
	}

	window := s.memory.ReplayWindow(s.config.MemoryMaxTurns, s.config.MemoryCharBudget)
	userMsg := buildAskUser(contextText, question, window)

	resp, err := s.generate(ctx, "ask", askSystemPrompt, userMsg, AnswerSchema)
	if err != nil {
		return Answer{}, err
	}

	ans, err := parseAnswer(resp.Content, contextText, truncated)
	if err != nil {
		return Answer{}, err
	}

	s.memory.Append(question, ans)
	return ans, nil
}

// GenerateChallenge produces a fresh batch of exactly three
// comprehension questions. Any prior batch is discarded along with its
// evaluations; question IDs from it become invalid. The prior batch is
// replaced only once the new one has parsed and validated, so a failed
// generation leaves the old batch usable.
func (s *Session) GenerateChallenge(ctx context.Context) ([]ChallengeQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	contextText, _, err := s.contextText()
	if err != nil {
		return nil, err
	}

	avoid := make([]string, 0, len(s.challenge.priorPrompts)+len(s.challenge.batch))
	avoid = append(avoid, s.challenge.priorPrompts...)
	for _, q := range s.challenge.batch {
		avoid = append(avoid, q.Prompt)
	}
	userMsg := buildChallengeUser(contextText, avoid)

	resp, err := s.generate(ctx, "challenge-gen", challengeSystemPrompt, userMsg, ChallengeSchema)
	if err != nil {
		return nil, err
	}

	questions, err := parseChallenge(resp.Content)
	if err != nil {
		return nil, err
	}

	s.challenge.setBatch(questions)
	return s.challenge.questions(), nil
}

// ChallengeQuestions returns the active batch, or an error when none
// has been generated for the loaded document.
func (s *Session) ChallengeQuestions() ([]ChallengeQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.challenge.batch) == 0 {
		return nil, newError(KindInvalidChallengeState, "no challenge batch is active; generate one first")
	}
	return s.challenge.questions(), nil
}

// EvaluateAnswer grades a user's answer to a question from the active
// batch. Resubmitting an answer for the same question replaces the
// earlier evaluation. IDs from a discarded batch are rejected.
func (s *Session) EvaluateAnswer(ctx context.Context, questionID, userAnswer string) (Evaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.challenge.lookup(questionID)
	if err != nil {
		return Evaluation{}, err
	}

	contextText, _, err := s.contextText()
	if err != nil {
		return Evaluation{}, err
	}

	userMsg := buildEvaluateUser(contextText, q, userAnswer)
	resp, err := s.generate(ctx, "evaluate", evaluateSystemPrompt, userMsg, EvaluationSchema)
	if err != nil {
		return Evaluation{}, err
	}

	eval, err := parseEvaluation(resp.Content, questionID, userAnswer)
	if err != nil {
		return Evaluation{}, err
	}

	s.challenge.record(eval)
	return eval, nil
}

// EvaluationFor returns the recorded evaluation for a question in the
// active batch, if one exists.
func (s *Session) EvaluationFor(questionID string) (Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.challenge.evaluationFor(questionID)
}

// contextText builds the grounding context for the loaded document.
// Callers must hold s.mu.
func (s *Session) contextText() (string, bool, error) {
	if !s.docLoaded {
		return "", false, newError(KindEmptyDocument, "no document loaded")
	}
	return buildContext(s.doc, s.config.ContextCharBudget)
}

// generate runs one model call under the session's timeout and maps
// transport failures onto the session error taxonomy. Callers must
// hold s.mu: the session issues at most one model call at a time.
func (s *Session) generate(ctx context.Context, purpose, system, userMsg string, schema *llm.Schema) (*llm.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, purpose)

	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      schema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, mapProviderError(err)
	}
	return resp, nil
}

// mapProviderError translates provider-layer failures into the
// session error taxonomy callers branch on.
func mapProviderError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return wrapError(KindUpstreamTimeout, err, "model call timed out")
	case errors.Is(err, context.Canceled):
		return wrapError(KindUpstreamTimeout, err, "model call canceled")
	}

	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return wrapError(KindMalformedResponse, err, "model reply failed validation")
	}
	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return wrapError(KindMalformedResponse, err, "model reply was cut off at the token limit")
	}
	return wrapError(KindUpstreamUnavailable, err, "model call failed")
}
