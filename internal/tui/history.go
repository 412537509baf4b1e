package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/format"
	"github.com/agbru/uintcalc/internal/orchestration"
)

// maxHistoryEntries bounds the scrollback.
const maxHistoryEntries = 500

// EntryKind distinguishes history entries for styling.
type EntryKind int

const (
	EntryResult EntryKind = iota
	EntryInfo
	EntryError
)

// Entry is one item of the history panel.
type Entry struct {
	Time     time.Time
	Kind     EntryKind
	Width    string
	Expr     string
	Lines    []string
	Flags    biguint.Flags
	Duration time.Duration
}

// HistoryModel is the scrollable list of evaluations.
type HistoryModel struct {
	entries []Entry
	// offset counts lines scrolled up from the bottom.
	offset int
	width  int
	height int
}

// NewHistoryModel creates an empty history.
func NewHistoryModel() HistoryModel {
	return HistoryModel{}
}

// SetSize updates dimensions.
func (h *HistoryModel) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

// Len returns the number of entries.
func (h HistoryModel) Len() int { return len(h.entries) }

// Add appends an entry and scrolls to the bottom.
func (h *HistoryModel) Add(e Entry) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	h.entries = append(h.entries, e)
	if len(h.entries) > maxHistoryEntries {
		h.entries = h.entries[len(h.entries)-maxHistoryEntries:]
	}
	h.offset = 0
}

// AddInfo appends a plain message.
func (h *HistoryModel) AddInfo(text string) {
	h.Add(Entry{Kind: EntryInfo, Lines: []string{text}})
}

// AddError appends an error message.
func (h *HistoryModel) AddError(expr string, err error) {
	h.Add(Entry{Kind: EntryError, Expr: expr, Lines: []string{err.Error()}})
}

// AddComparison appends one entry per width of a cross-check.
func (h *HistoryModel) AddComparison(results []orchestration.EvaluationResult) {
	for _, r := range results {
		if r.Err != nil {
			h.Add(Entry{Kind: EntryError, Width: r.Name, Lines: []string{r.Err.Error()}, Duration: r.Duration})
			continue
		}
		h.Add(Entry{Kind: EntryResult, Width: r.Name, Lines: r.Result.Values, Flags: r.Result.Flags, Duration: r.Duration})
	}
}

// Reset clears the history.
func (h *HistoryModel) Reset() {
	h.entries = nil
	h.offset = 0
}

// Scroll moves the view by delta lines; positive values scroll up.
func (h *HistoryModel) Scroll(delta int) {
	h.offset = max(0, min(h.offset+delta, max(0, len(h.lines())-h.visibleRows())))
}

// visibleRows is the panel height minus the borders and the title.
func (h HistoryModel) visibleRows() int {
	return max(h.height-3, 1)
}

// lines renders every entry into display lines.
func (h HistoryModel) lines() []string {
	var out []string
	valueWidth := max(h.width-8, 16)
	for _, e := range h.entries {
		stamp := logTimeStyle.Render(e.Time.Format("15:04:05"))
		switch e.Kind {
		case EntryInfo:
			for _, l := range e.Lines {
				out = append(out, stamp+" "+logInfoStyle.Render(l))
			}
		case EntryError:
			head := stamp + " " + logErrorStyle.Render("error")
			if e.Width != "" {
				head += " " + logWidthStyle.Render(e.Width)
			}
			if e.Expr != "" {
				head += " " + e.Expr
			}
			out = append(out, head)
			for _, l := range e.Lines {
				out = append(out, "  "+logErrorStyle.Render(l))
			}
		default:
			head := stamp + " " + logWidthStyle.Render(e.Width)
			if e.Expr != "" {
				head += " " + logExprStyle.Render(e.Expr)
			}
			head += " " + logTimeStyle.Render(format.FormatExecutionDuration(e.Duration))
			if e.Flags != 0 {
				head += " " + logFlagStyle.Render("["+e.Flags.String()+"]")
			}
			out = append(out, head)
			for _, v := range e.Lines {
				for _, chunk := range wrap(v, valueWidth) {
					out = append(out, "  "+logSuccessStyle.Render(chunk))
				}
			}
		}
	}
	return out
}

// wrap splits s into chunks of at most width runes.
func wrap(s string, width int) []string {
	rs := []rune(s)
	if len(rs) <= width {
		return []string{s}
	}
	var chunks []string
	for len(rs) > width {
		chunks = append(chunks, string(rs[:width]))
		rs = rs[width:]
	}
	return append(chunks, string(rs))
}

// View renders the panel.
func (h HistoryModel) View() string {
	rows := h.visibleRows()
	all := h.lines()
	end := len(all) - h.offset
	start := max(0, end-rows)
	var visible []string
	if end > 0 {
		visible = all[start:end]
	}

	var b strings.Builder
	if len(all) == 0 {
		b.WriteString(metricLabelStyle.Render("  No evaluations yet. Type an operation and press enter."))
	} else {
		b.WriteString(strings.Join(visible, "\n"))
	}
	title := "History"
	if h.offset > 0 {
		title = fmt.Sprintf("History (+%d)", h.offset)
	}
	body := lipgloss.JoinVertical(lipgloss.Left, panelTitleStyle.Render(title), b.String())
	return panelStyle.
		Width(max(h.width-2, 0)).
		Height(rows + 1).
		Render(body)
}
