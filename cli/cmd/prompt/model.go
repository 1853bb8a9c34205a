package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const (
	inputPrompt  = "> "
	charLimit    = 4096
	defaultWidth = 80
)

// outcome is how the user left the prompt.
type outcome int

const (
	pending outcome = iota
	answered
	closed      // Ctrl+D on an empty line
	interrupted // Ctrl+C or Esc
)

// model reads a single answer.
type model struct {
	label   string
	input   textinput.Model
	history *History
	histIdx int    // index into history; history.Len() is the draft
	draft   string // text typed before browsing history
	result  outcome
}

func newModel(label string, history *History) model {
	ti := textinput.New()
	ti.Prompt = inputPrompt
	ti.TextStyle = inputStyle
	ti.CharLimit = charLimit
	ti.Width = defaultWidth
	ti.Focus()

	return model{
		label:   label,
		input:   ti,
		history: history,
		histIdx: history.Len(),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.input.Width = max(1, msg.Width-len(inputPrompt)-1)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.result = interrupted

		return m, tea.Quit

	case tea.KeyCtrlD:
		if m.input.Value() != "" {
			return m, nil
		}

		m.result = closed

		return m, tea.Quit

	case tea.KeyEnter:
		m.result = answered

		return m, tea.Quit

	case tea.KeyUp:
		return m.recall(m.histIdx - 1), nil

	case tea.KeyDown:
		return m.recall(m.histIdx + 1), nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.histIdx == m.history.Len() {
		m.draft = m.input.Value()
	}

	return m, cmd
}

// recall shows history entry i, or the draft when i is past the newest.
func (m model) recall(i int) model {
	n := m.history.Len()
	if i < 0 || i > n {
		return m
	}

	if m.histIdx == n {
		m.draft = m.input.Value()
	}

	m.histIdx = i

	if i == n {
		m.input.SetValue(m.draft)
	} else if line, err := m.history.Line(i); err == nil {
		m.input.SetValue(line)
	}

	m.input.CursorEnd()

	return m
}

// answer is the text entered, empty unless the prompt was answered.
func (m model) answer() string {
	if m.result != answered {
		return ""
	}

	return m.input.Value()
}

func (m model) View() string {
	var b strings.Builder

	if m.label != "" {
		b.WriteString(labelStyle.Render(m.label))
		b.WriteByte('\n')
	}

	switch m.result {
	case pending:
		b.WriteString(m.input.View())

		if n := m.history.Len(); n > 0 && m.input.Value() == "" {
			b.WriteString(hintStyle.Render("  (↑ for previous answers)"))
		}

	case answered:
		b.WriteString(inputPrompt)
		b.WriteString(answerStyle.Render(m.input.Value()))

	case closed, interrupted:
		b.WriteString(inputPrompt)
	}

	b.WriteByte('\n')

	return b.String()
}
