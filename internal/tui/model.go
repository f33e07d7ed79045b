// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     tui
// Description: Bubbletea front-end for the expression engine
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/msto63/pascal/foundation/calc"
	plog "github.com/msto63/pascal/foundation/core/log"
	"github.com/msto63/pascal/internal/history"
	"github.com/msto63/pascal/internal/shell"
)

// maxInputHistory bounds the Up/Down recall list
const maxInputHistory = 100

// Config holds TUI configuration
type Config struct {
	Engine    *calc.Engine
	Logger    *plog.Logger
	Debug     bool
	Recorder  history.Recorder
	SessionID string
}

// transcriptEntry is one evaluated line as shown in the scrollback
type transcriptEntry struct {
	input  string
	debug  []string
	result string
	ok     bool
}

// recordedMsg reports the outcome of writing a history entry
type recordedMsg struct {
	err error
}

// Model is the bubbletea model of the calculator
type Model struct {
	input    textinput.Model
	viewport viewport.Model
	ready    bool
	width    int
	height   int

	entries []transcriptEntry
	debug   bool

	inputHistory []string
	historyIndex int // -1: no recall in progress
	currentInput string

	engine    *calc.Engine
	recorder  history.Recorder
	logger    *plog.Logger
	sessionID string
}

// New creates a new calculator model
func New(cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = plog.Discard()
	}
	if cfg.Engine == nil {
		cfg.Engine = calc.New(calc.Options{Logger: cfg.Logger})
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.New().String()
	}

	ti := textinput.New()
	ti.Prompt = shell.DefaultPrompt
	ti.Placeholder = "Ausdruck eingeben, z.B. 2 ** 10 / 4"
	ti.CharLimit = calc.DefaultMaxInputLength
	ti.PromptStyle = ExpressionStyle
	ti.Focus()

	return Model{
		input:        ti,
		debug:        cfg.Debug,
		historyIndex: -1,
		engine:       cfg.Engine,
		recorder:     cfg.Recorder,
		logger:       cfg.Logger.WithName("tui").WithSessionID(cfg.SessionID),
		sessionID:    cfg.SessionID,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2
		footerHeight := 5 // input box + help
		viewportHeight := msg.Height - headerHeight - footerHeight - 2
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - 8 - len(m.input.Prompt)
		m.updateViewportContent()
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.logger.WarnWithErr("Failed to record history", msg.err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyCtrlD:
		m.debug = !m.debug
		return m, nil

	case tea.KeyCtrlL:
		m.entries = nil
		m.updateViewportContent()
		return m, nil

	case tea.KeyEnter:
		line := m.input.Value()
		if line == shell.ExitCommand {
			return m, tea.Quit
		}
		m.remember(line)
		m.input.Reset()
		cmd := m.evaluate(line)
		return m, cmd

	case tea.KeyUp:
		if len(m.inputHistory) > 0 {
			if m.historyIndex == -1 {
				m.currentInput = m.input.Value()
				m.historyIndex = len(m.inputHistory) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.inputHistory[m.historyIndex])
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if m.historyIndex != -1 {
			if m.historyIndex < len(m.inputHistory)-1 {
				m.historyIndex++
				m.input.SetValue(m.inputHistory[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue(m.currentInput)
			}
			m.input.CursorEnd()
		}
		return m, nil

	case tea.KeyPgUp:
		m.viewport.ViewUp()
		return m, nil

	case tea.KeyPgDown:
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// remember appends line to the recall list unless it repeats the last one
func (m *Model) remember(line string) {
	m.historyIndex = -1
	m.currentInput = ""
	if strings.TrimSpace(line) == "" {
		return
	}
	if n := len(m.inputHistory); n > 0 && m.inputHistory[n-1] == line {
		return
	}
	m.inputHistory = append(m.inputHistory, line)
	if len(m.inputHistory) > maxInputHistory {
		m.inputHistory = m.inputHistory[len(m.inputHistory)-maxInputHistory:]
	}
}

// evaluate appends the outcome of line to the transcript and returns the
// command that records it.
func (m *Model) evaluate(line string) tea.Cmd {
	res, err := m.engine.Evaluate(context.Background(), line)
	if err != nil {
		m.logger.LogError(err, plog.Fields{"expression": line})
	}

	entry := transcriptEntry{
		input:  line,
		result: shell.ResultLine(res, err),
		ok:     err == nil,
	}
	if m.debug {
		entry.debug = shell.DebugLines(res)
	}
	m.entries = append(m.entries, entry)
	m.updateViewportContent()

	if m.recorder == nil {
		return nil
	}
	recorder := m.recorder
	record := &history.Entry{SessionID: m.sessionID, Expression: line, Result: entry.result, OK: entry.ok}
	return func() tea.Msg {
		return recordedMsg{err: recorder.Add(context.Background(), record)}
	}
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Lade Rechner..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(TranscriptPanelStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(InputStyle.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())
	return b.String()
}

func (m Model) renderHeader() string {
	header := LogoStyle.Render("Pascal") + "  " + SubHeaderStyle.Render(shell.DefaultBanner)
	if m.debug {
		header += "  " + DebugBadgeStyle.Render("DEBUG")
	}
	return header
}

func (m Model) renderHelpBar() string {
	debugHint := "Debug an"
	if m.debug {
		debugHint = "Debug aus"
	}
	items := []string{
		RenderKeyHint("Enter", "auswerten"),
		RenderKeyHint("↑/↓", "Historie"),
		RenderKeyHint("Ctrl+D", debugHint),
		RenderKeyHint("Ctrl+L", "leeren"),
		RenderKeyHint("Esc", "beenden"),
	}
	return HelpStyle.Render(strings.Join(items, "  "))
}

// transcript renders the scrollback
func (m Model) transcript() string {
	var content strings.Builder
	for _, e := range m.entries {
		content.WriteString(ExpressionStyle.Render(shell.DefaultPrompt + e.input))
		content.WriteString("\n")
		for _, l := range e.debug {
			content.WriteString(DebugStyle.Render(l))
			content.WriteString("\n")
		}
		if e.ok {
			content.WriteString(ResultStyle.Render(e.result))
		} else {
			content.WriteString(ErrorStyle.Render(e.result))
		}
		content.WriteString("\n")
	}
	return content.String()
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

// Run starts the calculator TUI
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
