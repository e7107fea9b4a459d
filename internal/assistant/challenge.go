package assistant

import "fmt"

// challengeBatchSize is the number of questions in every challenge
// batch. The schema, the prompt, and the parser all assume it.
const challengeBatchSize = 3

// challengeState tracks the active challenge batch and its
// evaluations. Regenerating discards the whole prior batch: question
// IDs from a stale batch can no longer be answered. Not safe for
// concurrent use on its own; Session serializes access.
type challengeState struct {
	batch        []ChallengeQuestion
	evaluations  map[string]Evaluation // by question ID, last write wins
	priorPrompts []string              // prompts from discarded batches, for dedup
}

func newChallengeState() *challengeState {
	return &challengeState{evaluations: make(map[string]Evaluation)}
}

// setBatch installs a freshly generated batch, discarding any prior
// batch and its evaluations. The discarded prompts are remembered so
// the next generation can avoid repeating them.
func (c *challengeState) setBatch(questions []ChallengeQuestion) {
	for _, q := range c.batch {
		c.priorPrompts = append(c.priorPrompts, q.Prompt)
	}
	c.batch = questions
	c.evaluations = make(map[string]Evaluation)
}

// reset drops all challenge state. Used when a new document is loaded.
func (c *challengeState) reset() {
	c.batch = nil
	c.priorPrompts = nil
	c.evaluations = make(map[string]Evaluation)
}

// questions returns a copy of the active batch in generation order.
func (c *challengeState) questions() []ChallengeQuestion {
	out := make([]ChallengeQuestion, len(c.batch))
	copy(out, c.batch)
	return out
}

// lookup finds a question in the active batch by ID. IDs from a
// discarded batch fail here: the batch they belonged to no longer
// exists.
func (c *challengeState) lookup(questionID string) (ChallengeQuestion, error) {
	if len(c.batch) == 0 {
		return ChallengeQuestion{}, newError(KindInvalidChallengeState, "no challenge batch is active; generate one first")
	}
	for _, q := range c.batch {
		if q.ID == questionID {
			return q, nil
		}
	}
	return ChallengeQuestion{}, newError(KindInvalidChallengeState, "question %q is not part of the active challenge batch", questionID)
}

// record stores an evaluation for a question in the active batch.
// Resubmitting an answer overwrites the prior evaluation.
func (c *challengeState) record(eval Evaluation) {
	c.evaluations[eval.QuestionID] = eval
}

// evaluationFor returns the recorded evaluation for a question, if any.
func (c *challengeState) evaluationFor(questionID string) (Evaluation, bool) {
	eval, ok := c.evaluations[questionID]
	return eval, ok
}

// progress summarizes how much of the active batch has been answered.
func (c *challengeState) progress() string {
	return fmt.Sprintf("%d/%d answered", len(c.evaluations), len(c.batch))
}
