package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key hints and the session status.
type FooterModel struct {
	bindings []key.Binding
	busy     bool
	lastErr  bool
	width    int
}

// NewFooterModel creates a footer listing the given bindings.
func NewFooterModel(bindings []key.Binding) FooterModel {
	return FooterModel{bindings: bindings}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetBusy marks a background task as running.
func (f *FooterModel) SetBusy(busy bool) { f.busy = busy }

// SetError marks the last evaluation as failed.
func (f *FooterModel) SetError(failed bool) { f.lastErr = failed }

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(hints, footerDescStyle.Render("  "))

	var status string
	switch {
	case f.busy:
		status = statusRunningStyle.Render("WORKING")
	case f.lastErr:
		status = statusErrorStyle.Render("ERROR")
	default:
		status = statusDoneStyle.Render("READY")
	}
	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(status)-1, 1)
	return left + spaces(gap) + status
}
