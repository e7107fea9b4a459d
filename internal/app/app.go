package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/Shivaram1629/smart-research-assistant/internal/assistant"
	"github.com/Shivaram1629/smart-research-assistant/internal/document"
	"github.com/Shivaram1629/smart-research-assistant/internal/store"
	"github.com/Shivaram1629/smart-research-assistant/internal/ui/components"
	"github.com/Shivaram1629/smart-research-assistant/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Session   *assistant.Session
	EventRepo store.EventRepo

	// Document, when non-nil, is already loaded into the session and
	// the UI starts at the menu instead of the file picker.
	Document *document.Document
}

// mode is the UI state. The app is a single-model state machine:
// picker -> menu, and from the menu into summary, ask, or challenge.
type mode int

const (
	modePicker mode = iota
	modeLoading
	modeMenu
	modeSummary
	modeAsk
	modeChallenge
	modeScore
)

// transcriptEntry is one rendered exchange in the ask view.
type transcriptEntry struct {
	Question  string
	Answer    string
	Citations []string
	Declined  bool
}

// Model is the root Bubble Tea model.
type Model struct {
	session   *assistant.Session
	eventRepo store.EventRepo
	sessionID string

	mode    mode
	width   int
	height  int
	busy    bool
	spin    int
	errText string

	doc   document.Document
	stats document.Stats

	input components.TextInput
	menu  components.Menu

	summary    assistant.Summary
	transcript []transcriptEntry

	questions   []assistant.ChallengeQuestion
	current     int
	evaluations []assistant.Evaluation
	lastEval    *assistant.Evaluation
}

func newModel(opts Options) Model {
	m := Model{
		session:   opts.Session,
		eventRepo: opts.EventRepo,
		sessionID: uuid.NewString(),
		mode:      modePicker,
		input:     components.NewTextInput("Path to a .pdf, .docx, .txt, or .md file", 0),
	}
	if opts.Document != nil {
		m.doc = *opts.Document
		m.stats = document.ComputeStats(m.doc)
		m.mode = modeMenu
		m.menu = m.mainMenu()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.mode == modeMenu {
		return m.logEvent("document_loaded", m.doc.Filename, "")
	}
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinnerTickMsg:
		if !m.busy {
			return m, nil
		}
		m.spin++
		return m, spinnerTick()

	case documentLoadedMsg:
		return m.handleDocumentLoaded(msg)
	case summaryReadyMsg:
		return m.handleSummaryReady(msg)
	case answerReadyMsg:
		return m.handleAnswerReady(msg)
	case challengeReadyMsg:
		return m.handleChallengeReady(msg)
	case evaluationReadyMsg:
		return m.handleEvaluationReady(msg)

	case startSummaryMsg:
		m.busy = true
		return m, tea.Batch(m.summarize(), spinnerTick())
	case startAskMsg:
		m.mode = modeAsk
		m.input = components.NewTextInput("Ask about the document...", 0)
		return m, m.input.Init()
	case startChallengeMsg:
		m.busy = true
		return m, tea.Batch(m.generateChallenge(), spinnerTick())
	case startPickerMsg:
		m.mode = modePicker
		m.input = components.NewTextInput("Path to a .pdf, .docx, .txt, or .md file", 0)
		return m, m.input.Init()

	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m.handleEscape()
	}

	if m.busy {
		return m, nil
	}

	switch m.mode {
	case modePicker:
		if msg.String() == "enter" {
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return m, nil
			}
			m.busy = true
			m.errText = ""
			return m, tea.Batch(m.loadDocument(path), spinnerTick())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeMenu:
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd

	case modeSummary, modeScore:
		// Any key returns to the menu.
		m.mode = modeMenu
		m.menu = m.mainMenu()
		return m, nil

	case modeAsk:
		if msg.String() == "enter" {
			question := strings.TrimSpace(m.input.Value())
			if question == "" {
				return m, nil
			}
			m.busy = true
			m.errText = ""
			m.input.Reset()
			return m, tea.Batch(m.ask(question), spinnerTick())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modeChallenge:
		if m.lastEval != nil {
			// Feedback shown; any key advances.
			m.lastEval = nil
			m.current++
			if m.current >= len(m.questions) {
				m.mode = modeScore
			}
			return m, nil
		}
		if msg.String() == "enter" {
			answer := strings.TrimSpace(m.input.Value())
			if answer == "" {
				return m, nil
			}
			m.busy = true
			m.errText = ""
			m.input.Reset()
			return m, tea.Batch(m.evaluate(m.questions[m.current].ID, answer), spinnerTick())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePicker, modeMenu:
		return m, tea.Quit
	default:
		m.mode = modeMenu
		m.menu = m.mainMenu()
		m.errText = ""
		m.lastEval = nil
		return m, nil
	}
}

func (m Model) handleDocumentLoaded(msg documentLoadedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.errText = msg.Err.Error()
		return m, nil
	}
	m.doc = msg.Doc
	m.stats = document.ComputeStats(m.doc)
	m.summary = assistant.Summary{}
	m.transcript = nil
	m.questions = nil
	m.evaluations = nil
	m.mode = modeMenu
	m.menu = m.mainMenu()
	return m, m.logEvent("document_loaded", m.doc.Filename, "")
}

func (m Model) handleSummaryReady(msg summaryReadyMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.errText = msg.Err.Error()
		m.mode = modeMenu
		m.menu = m.mainMenu()
		return m, nil
	}
	m.summary = msg.Summary
	m.mode = modeSummary
	return m, m.logEvent("summary", m.doc.Filename, "")
}

func (m Model) handleAnswerReady(msg answerReadyMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.errText = msg.Err.Error()
		return m, nil
	}
	m.transcript = append(m.transcript, transcriptEntry{
		Question:  msg.Question,
		Answer:    msg.Answer.Text,
		Citations: msg.Answer.Citations,
		Declined:  msg.Answer.Declined,
	})
	return m, m.logEvent("question_asked", m.doc.Filename, msg.Question)
}

func (m Model) handleChallengeReady(msg challengeReadyMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.errText = msg.Err.Error()
		m.mode = modeMenu
		m.menu = m.mainMenu()
		return m, nil
	}
	m.questions = msg.Questions
	m.current = 0
	m.evaluations = nil
	m.lastEval = nil
	m.mode = modeChallenge
	m.input = components.NewTextInput("Your answer...", 0)
	return m, tea.Batch(m.input.Init(), m.logEvent("challenge_generated", m.doc.Filename, ""))
}

func (m Model) handleEvaluationReady(msg evaluationReadyMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m.errText = msg.Err.Error()
		return m, nil
	}
	eval := msg.Evaluation
	m.evaluations = append(m.evaluations, eval)
	m.lastEval = &eval
	return m, m.logEvent("answer_evaluated", m.doc.Filename, fmt.Sprintf("score=%d", eval.Score))
}

func (m Model) mainMenu() components.Menu {
	return components.NewMenu([]components.MenuItem{
		{Label: "Summarize document", Action: func() tea.Cmd { return startSummary }},
		{Label: "Ask a question", Action: func() tea.Cmd { return startAsk }},
		{Label: "Challenge me", Action: func() tea.Cmd { return startChallenge }},
		{Label: "Load another document", Action: func() tea.Cmd { return startPicker }},
	})
}

// Menu actions arrive as messages so the selected item can flip the
// model's mode before the async work starts.

type startSummaryMsg struct{}
type startAskMsg struct{}
type startChallengeMsg struct{}
type startPickerMsg struct{}

func startSummary() tea.Msg   { return startSummaryMsg{} }
func startAsk() tea.Msg       { return startAskMsg{} }
func startChallenge() tea.Msg { return startChallengeMsg{} }
func startPicker() tea.Msg    { return startPickerMsg{} }

// Commands

func (m Model) loadDocument(path string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		doc, err := document.Extract(path)
		if err != nil {
			return documentLoadedMsg{Err: err}
		}
		if err := session.LoadDocument(doc); err != nil {
			return documentLoadedMsg{Err: err}
		}
		return documentLoadedMsg{Doc: doc}
	}
}

func (m Model) summarize() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		sum, err := session.Summarize(context.Background())
		return summaryReadyMsg{Summary: sum, Err: err}
	}
}

func (m Model) ask(question string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		ans, err := session.Ask(context.Background(), question)
		return answerReadyMsg{Question: question, Answer: ans, Err: err}
	}
}

func (m Model) generateChallenge() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		qs, err := session.GenerateChallenge(context.Background())
		return challengeReadyMsg{Questions: qs, Err: err}
	}
}

func (m Model) evaluate(questionID, answer string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		eval, err := session.EvaluateAnswer(context.Background(), questionID, answer)
		return evaluationReadyMsg{Evaluation: eval, Err: err}
	}
}

// logEvent appends a session event in the background. Telemetry never
// blocks or fails the UI.
func (m Model) logEvent(action, doc, detail string) tea.Cmd {
	repo := m.eventRepo
	sessionID := m.sessionID
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		err := repo.AppendSessionEvent(context.Background(), store.SessionEventData{
			SessionID: sessionID,
			Action:    action,
			Document:  doc,
			Detail:    detail,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log session event: %v\n", err)
		}
		return nil
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.title(), m.doc.Filename, m.stats.Words, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.renderContent(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
