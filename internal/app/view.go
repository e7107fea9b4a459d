package app

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/Shivaram1629/smart-research-assistant/internal/assistant"
	"github.com/Shivaram1629/smart-research-assistant/internal/ui/layout"
	"github.com/Shivaram1629/smart-research-assistant/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (m Model) title() string {
	switch m.mode {
	case modePicker:
		return "Load a Document"
	case modeSummary:
		return "Summary"
	case modeAsk:
		return "Ask"
	case modeChallenge:
		return "Challenge"
	case modeScore:
		return "Results"
	default:
		return ""
	}
}

func (m Model) keyHints() []layout.KeyHint {
	if m.busy {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	switch m.mode {
	case modePicker:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Load"},
			{Key: "Esc", Description: "Quit"},
		}
	case modeMenu:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Quit"},
		}
	case modeSummary, modeScore:
		return []layout.KeyHint{{Key: "any key", Description: "Back to menu"}}
	case modeChallenge:
		if m.lastEval != nil {
			return []layout.KeyHint{{Key: "any key", Description: "Next question"}}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (m Model) renderContent(width, height int) string {
	if m.busy {
		return m.renderLoading(width, height)
	}

	var body string
	switch m.mode {
	case modePicker:
		body = m.renderPicker(width)
	case modeMenu:
		body = m.renderMenu(width)
	case modeSummary:
		body = m.renderSummary(width)
	case modeAsk:
		body = m.renderAsk(width, height)
	case modeChallenge:
		body = m.renderChallenge(width)
	case modeScore:
		body = m.renderScore(width)
	}

	if m.errText != "" {
		body = theme.Incorrect.Render("  "+m.errText) + "\n\n" + body
	}
	return body
}

func (m Model) renderLoading(width, height int) string {
	frame := spinnerFrames[m.spin%len(spinnerFrames)]
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Primary).
		Render(frame + " Thinking...")
}

func (m Model) renderPicker(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Smart Research Assistant"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Upload a document, then ask it anything."))
	b.WriteString("\n\n  Document path:\n\n  ")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) renderMenu(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("  %s — %d words, %d lines, ~%d min read",
		m.doc.Filename, m.stats.Words, m.stats.Lines, m.stats.ReadingMins)))
	b.WriteString("\n\n")
	b.WriteString(m.menu.View())
	return b.String()
}

func (m Model) renderSummary(width int) string {
	card := theme.Card.Width(min(width-4, 96)).Render(theme.Body.Render(m.summary.Text))
	out := "\n" + card
	if m.summary.Truncated {
		out += "\n" + theme.Hint.Render("  Document truncated to fit the model context.")
	}
	return out
}

func (m Model) renderAsk(width, height int) string {
	var b strings.Builder

	// Show as many recent exchanges as fit above the input line.
	entries := m.transcript
	if len(entries) > 4 {
		entries = entries[len(entries)-4:]
	}
	for _, e := range entries {
		b.WriteString(theme.Selected.Render("  You: "))
		b.WriteString(theme.Body.Render(e.Question))
		b.WriteString("\n")
		b.WriteString(theme.Body.Render("  " + wrap(e.Answer, width-4)))
		b.WriteString("\n")
		for _, c := range e.Citations {
			b.WriteString(theme.Citation.Render("    " + `"` + truncateText(c, width-8) + `"`))
			b.WriteString("\n")
		}
		if e.Declined {
			b.WriteString(theme.Hint.Render("    (the document does not cover this)"))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(m.input.View())
	return b.String()
}

func (m Model) renderChallenge(width int) string {
	if len(m.questions) == 0 || m.current >= len(m.questions) {
		return ""
	}
	q := m.questions[m.current]

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  Question %d of %d · %s", m.current+1, len(m.questions), q.Reasoning)))
	b.WriteString("\n\n")
	b.WriteString(theme.Card.Width(min(width-4, 96)).Render(theme.Body.Render(q.Prompt)))
	b.WriteString("\n\n")

	if m.lastEval != nil {
		b.WriteString(m.renderEvaluation(*m.lastEval, width))
	} else {
		b.WriteString("  ")
		b.WriteString(m.input.View())
	}
	return b.String()
}

func (m Model) renderEvaluation(eval assistant.Evaluation, width int) string {
	var b strings.Builder

	style := theme.Incorrect
	switch eval.Verdict {
	case assistant.VerdictCorrect:
		style = theme.Correct
	case assistant.VerdictPartiallyCorrect:
		style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	}
	b.WriteString(style.Render(fmt.Sprintf("  %d/100 — %s", eval.Score, eval.Verdict)))
	b.WriteString("\n\n")

	for _, s := range eval.Strengths {
		b.WriteString(theme.Correct.Render("  + "))
		b.WriteString(theme.Body.Render(wrap(s, width-6)))
		b.WriteString("\n")
	}
	for _, g := range eval.Gaps {
		b.WriteString(theme.Incorrect.Render("  - "))
		b.WriteString(theme.Body.Render(wrap(g, width-6)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  " + wrap(eval.Justification, width-4)))
	return b.String()
}

func (m Model) renderScore(width int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Width(width).Render("Challenge Complete"))
	b.WriteString("\n\n")

	total := 0
	for i, eval := range m.evaluations {
		total += eval.Score
		b.WriteString(theme.Body.Render(fmt.Sprintf("  Q%d: %d/100 (%s)", i+1, eval.Score, eval.Verdict)))
		b.WriteString("\n")
	}
	if len(m.evaluations) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Selected.Render(fmt.Sprintf("  Total: %d/%d", total, len(m.evaluations)*100)))
	}
	return b.String()
}

func truncateText(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// wrap breaks text into lines of at most width characters, indenting
// continuation lines to match the transcript layout.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	var lines []string
	var line string
	for _, w := range words {
		if line == "" {
			line = w
			continue
		}
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n  ")
}
