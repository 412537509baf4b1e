package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/uintcalc/internal/format"
	"github.com/agbru/uintcalc/internal/metrics"
)

// sparklineSamples is the number of samples kept per sparkline.
const sparklineSamples = 60

// MetricsModel displays runtime memory, system load and the progress of a
// running prime search.
type MetricsModel struct {
	mem          metrics.MemorySnapshot
	numGoroutine int
	cpu          *Series
	sysMem       *Series
	latency      *Series
	searching    bool
	progress     float64
	eta          time.Duration
	width        int
	height       int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpu:     NewSeries(sparklineSamples),
		sysMem:  NewSeries(sparklineSamples),
		latency: NewSeries(sparklineSamples),
	}
}

// SetSize updates dimensions and fits the sparklines to the inner width.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if n := w - 16; n > 0 {
		m.cpu.SetLimit(n)
		m.sysMem.SetLimit(n)
		m.latency.SetLimit(n)
	}
}

// UpdateMemStats stores a runtime memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg.Snapshot
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats records a system-wide CPU and memory sample.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.sysMem.Push(msg.MemPercent)
}

// RecordEvaluation adds the duration of a finished evaluation to the
// latency sparkline.
func (m *MetricsModel) RecordEvaluation(d time.Duration) {
	m.latency.Push(float64(d.Microseconds()))
}

// StartSearch shows the search progress bar.
func (m *MetricsModel) StartSearch() {
	m.searching = true
	m.progress = 0
	m.eta = 0
}

// UpdateProgress stores the aggregated search progress.
func (m *MetricsModel) UpdateProgress(msg ProgressMsg) {
	m.progress = msg.AverageProgress
	m.eta = msg.ETA
}

// StopSearch hides the search progress bar.
func (m *MetricsModel) StopSearch() {
	m.searching = false
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("Runtime"))

	colWidth := max(m.width-4, 0)
	lines := []string{
		formatMetricCol("Heap:", format.FormatBytes(m.mem.HeapAlloc)+" / "+format.FormatBytes(m.mem.Sys), colWidth),
		formatMetricCol("GC:", fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
		formatMetricCol(fmt.Sprintf("CPU %3.0f%%", m.cpu.Last()), cpuSparklineStyle.Render(RenderSparkline(m.cpu.Values(), 100)), colWidth),
		formatMetricCol(fmt.Sprintf("MEM %3.0f%%", m.sysMem.Last()), memSparklineStyle.Render(RenderSparkline(m.sysMem.Values(), 100)), colWidth),
		formatMetricCol(fmt.Sprintf("EVAL %.0fµs", m.latency.Last()), cpuSparklineStyle.Render(RenderSparkline(m.latency.Values(), m.latency.Peak())), colWidth),
	}
	if m.searching {
		barWidth := max(colWidth-26, 10)
		lines = append(lines, " "+chartBarStyle.Render(format.FormatProgressBarWithETA(m.progress, m.eta, barWidth)))
	}
	for _, l := range lines {
		rows.WriteString("\n")
		rows.WriteString(l)
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
