package assistant

import "time"

// Memory holds the chronological question/answer history of a session.
// It is unbounded in storage; the replay window applied when composing
// prompts is what bounds how much of it the model sees. Not safe for
// concurrent use on its own; Session serializes access.
type Memory struct {
	turns []Turn
}

// Append records a completed exchange. Called only after a model reply
// has been parsed and validated, so the history never contains turns
// from failed calls.
func (m *Memory) Append(question string, answer Answer) {
	m.turns = append(m.turns, Turn{
		Question:  question,
		Answer:    answer.Text,
		Citations: answer.Citations,
		Timestamp: time.Now(),
	})
}

// Len returns the number of recorded turns.
func (m *Memory) Len() int { return len(m.turns) }

// Clear drops all history. Used when a new document is loaded.
func (m *Memory) Clear() { m.turns = nil }

// Turns returns a copy of the full history, oldest first.
func (m *Memory) Turns() []Turn {
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// ReplayWindow selects the most recent turns to include in a prompt,
// bounded by both a turn count and a character budget. It walks
// backward from the newest turn, admitting turns while both bounds
// hold, then returns the admitted turns in chronological order. A turn
// that would blow the character budget is excluded along with
// everything older than it.
func (m *Memory) ReplayWindow(maxTurns, charBudget int) []Turn {
	if maxTurns <= 0 || len(m.turns) == 0 {
		return nil
	}

	used := 0
	start := len(m.turns)
	for i := len(m.turns) - 1; i >= 0 && len(m.turns)-i <= maxTurns; i-- {
		size := len(m.turns[i].Question) + len(m.turns[i].Answer)
		if charBudget > 0 && used+size > charBudget {
			break
		}
		used += size
		start = i
	}

	if start == len(m.turns) {
		return nil
	}
	window := make([]Turn, len(m.turns)-start)
	copy(window, m.turns[start:])
	return window
}
