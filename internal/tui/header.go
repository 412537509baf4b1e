package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/uintcalc/internal/format"
)

// HeaderModel renders the top bar: title, version, current width and the
// session time.
type HeaderModel struct {
	startTime time.Time
	version   string
	width     string
	bits      int
	digitBits int
	cols      int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
	}
}

// SetCalculatorInfo shows the active width.
func (h *HeaderModel) SetCalculatorInfo(name string, bits, digitBits int) {
	h.width = name
	h.bits = bits
	h.digitBits = digitBits
}

// SetWidth updates the available width in columns.
func (h *HeaderModel) SetWidth(w int) {
	h.cols = w
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "uintcalc"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)

	pipe := versionStyle.Render(" | ")
	widthInfo := elapsedStyle.Render(fmt.Sprintf("%s (%d bits, %d-bit digits)", h.width, h.bits, h.digitBits))
	session := versionStyle.Render(fmt.Sprintf("Session: %s", format.FormatETA(time.Since(h.startTime))))

	leftPart := title + pipe + widthInfo
	gap := max(h.cols-2-lipgloss.Width(leftPart)-lipgloss.Width(session), 1)

	return headerStyle.Width(h.cols).Render(leftPart + spaces(gap) + session)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
