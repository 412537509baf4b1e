package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxInputHistory bounds the number of recalled expressions.
const maxInputHistory = 100

// InputModel is a single-line editor with a recall history.
type InputModel struct {
	value     []rune
	cursorPos int
	history   []string
	// histIdx is len(history) while editing a fresh line.
	histIdx int
	draft   string
	width   int
}

// NewInputModel creates an empty input line.
func NewInputModel() InputModel {
	return InputModel{}
}

// Value returns the current text.
func (m InputModel) Value() string { return string(m.value) }

// SetValue replaces the text and moves the cursor to the end.
func (m *InputModel) SetValue(s string) {
	m.value = []rune(s)
	m.cursorPos = len(m.value)
}

// SetWidth updates the available width.
func (m *InputModel) SetWidth(w int) { m.width = w }

// HandleKey applies an editing key. Keys with a binding in KeyMap are
// handled by the model before they reach the input.
func (m *InputModel) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyBackspace:
		if m.cursorPos > 0 {
			m.value = append(m.value[:m.cursorPos-1], m.value[m.cursorPos:]...)
			m.cursorPos--
		}
	case tea.KeyDelete:
		if m.cursorPos < len(m.value) {
			m.value = append(m.value[:m.cursorPos], m.value[m.cursorPos+1:]...)
		}
	case tea.KeyLeft:
		if m.cursorPos > 0 {
			m.cursorPos--
		}
	case tea.KeyRight:
		if m.cursorPos < len(m.value) {
			m.cursorPos++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		m.cursorPos = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.cursorPos = len(m.value)
	case tea.KeyCtrlU:
		m.value = m.value[m.cursorPos:]
		m.cursorPos = 0
	case tea.KeySpace:
		m.insert([]rune{' '})
	case tea.KeyRunes:
		m.insert(msg.Runes)
	}
}

func (m *InputModel) insert(rs []rune) {
	tail := append([]rune(nil), m.value[m.cursorPos:]...)
	m.value = append(append(m.value[:m.cursorPos], rs...), tail...)
	m.cursorPos += len(rs)
}

// Submit returns the trimmed text, records it in the history and clears
// the line.
func (m *InputModel) Submit() string {
	line := strings.TrimSpace(string(m.value))
	if line != "" && (len(m.history) == 0 || m.history[len(m.history)-1] != line) {
		m.history = append(m.history, line)
		if len(m.history) > maxInputHistory {
			m.history = m.history[1:]
		}
	}
	m.histIdx = len(m.history)
	m.draft = ""
	m.SetValue("")
	return line
}

// Prev recalls the previous history entry, keeping the current line as a
// draft.
func (m *InputModel) Prev() {
	if m.histIdx == 0 {
		return
	}
	if m.histIdx == len(m.history) {
		m.draft = string(m.value)
	}
	m.histIdx--
	m.SetValue(m.history[m.histIdx])
}

// Next moves forward in the history, ending on the draft.
func (m *InputModel) Next() {
	if m.histIdx >= len(m.history) {
		return
	}
	m.histIdx++
	if m.histIdx == len(m.history) {
		m.SetValue(m.draft)
		return
	}
	m.SetValue(m.history[m.histIdx])
}

// View renders the prompt and the line with a cursor.
func (m InputModel) View(prompt string, busy bool) string {
	display := string(m.value)
	if m.cursorPos >= len(m.value) {
		display += "|"
	} else {
		display = string(m.value[:m.cursorPos]) + "|" + string(m.value[m.cursorPos:])
	}
	if len(m.value) == 0 {
		display = "|" + inputPlaceholderStyle.Render(" e.g. modpow 4 13 497, compare mul 2 3, prime")
	}
	if busy {
		display = inputPlaceholderStyle.Render("working... (esc to cancel)")
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, inputPromptStyle.Render(prompt), " ", display)
	return inputStyle.Width(max(m.width-2, 0)).Render(line)
}
