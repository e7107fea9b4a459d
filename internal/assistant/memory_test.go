package assistant

import (
	"strings"
	"testing"
)

func TestMemory_AppendAndTurns(t *testing.T) {
	var m Memory
	m.Append("What is ATP?", Answer{Text: "The cell's energy currency.", Citations: []string{"ATP is the energy currency"}})
	m.Append("Where is it made?", Answer{Text: "In the mitochondria."})

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}

	turns := m.Turns()
	if turns[0].Question != "What is ATP?" {
		t.Errorf("turns[0].Question = %q, want oldest first", turns[0].Question)
	}
	if turns[1].Answer != "In the mitochondria." {
		t.Errorf("turns[1].Answer = %q", turns[1].Answer)
	}
	if turns[0].Timestamp.IsZero() {
		t.Error("turn timestamp not set")
	}
}

func TestMemory_Clear(t *testing.T) {
	var m Memory
	m.Append("q", Answer{Text: "a"})
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", m.Len())
	}
	if got := m.ReplayWindow(3, 1000); got != nil {
		t.Errorf("ReplayWindow after Clear = %v, want nil", got)
	}
}

func TestReplayWindow_TurnCap(t *testing.T) {
	var m Memory
	m.Append("q1", Answer{Text: "a1"})
	m.Append("q2", Answer{Text: "a2"})
	m.Append("q3", Answer{Text: "a3"})
	m.Append("q4", Answer{Text: "a4"})

	window := m.ReplayWindow(2, 0)
	if len(window) != 2 {
		t.Fatalf("window length = %d, want 2", len(window))
	}
	if window[0].Question != "q3" || window[1].Question != "q4" {
		t.Errorf("window = [%s, %s], want most recent two in order", window[0].Question, window[1].Question)
	}
}

func TestReplayWindow_CharBudget(t *testing.T) {
	var m Memory
	m.Append("old", Answer{Text: strings.Repeat("x", 500)})
	m.Append("q2", Answer{Text: "short"})

	// Budget admits the newest turn but not the 500-char one before it.
	window := m.ReplayWindow(3, 100)
	if len(window) != 1 {
		t.Fatalf("window length = %d, want 1", len(window))
	}
	if window[0].Question != "q2" {
		t.Errorf("window[0].Question = %q, want newest turn", window[0].Question)
	}
}

func TestReplayWindow_BudgetExcludesOlderEvenIfTheyFit(t *testing.T) {
	var m Memory
	m.Append("tiny", Answer{Text: "a"})
	m.Append("big", Answer{Text: strings.Repeat("x", 200)})
	m.Append("last", Answer{Text: "b"})

	// The big middle turn blows the budget; "tiny" is older than it
	// and must be excluded too, even though it would fit on its own.
	window := m.ReplayWindow(3, 50)
	if len(window) != 1 {
		t.Fatalf("window length = %d, want 1", len(window))
	}
	if window[0].Question != "last" {
		t.Errorf("window[0].Question = %q, want only the newest turn", window[0].Question)
	}
}

func TestReplayWindow_ZeroTurns(t *testing.T) {
	var m Memory
	m.Append("q", Answer{Text: "a"})
	if got := m.ReplayWindow(0, 1000); got != nil {
		t.Errorf("ReplayWindow(0, _) = %v, want nil", got)
	}
}
