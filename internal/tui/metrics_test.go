package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/agbru/uintcalc/internal/metrics"
)

func TestMetricsModel_UpdateMemStats(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()

	msg := MemStatsMsg{
		Snapshot:     metrics.MemorySnapshot{HeapAlloc: 50 << 20, Sys: 80 << 20, NumGC: 10},
		NumGoroutine: 8,
	}
	m.UpdateMemStats(msg)

	if m.mem != msg.Snapshot {
		t.Errorf("expected snapshot %+v, got %+v", msg.Snapshot, m.mem)
	}
	if m.numGoroutine != 8 {
		t.Errorf("expected numGoroutine 8, got %d", m.numGoroutine)
	}
}

func TestMetricsModel_UpdateSysStats(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.UpdateSysStats(SysStatsMsg{CPUPercent: 12, MemPercent: 40})
	m.UpdateSysStats(SysStatsMsg{CPUPercent: 30, MemPercent: 41})

	if got := m.cpu.Last(); got != 30 {
		t.Errorf("expected last CPU sample 30, got %f", got)
	}
	if got := m.sysMem.Len(); got != 2 {
		t.Errorf("expected 2 memory samples, got %d", got)
	}
}

func TestMetricsModel_SearchLifecycle(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.SetSize(60, 12)

	m.StartSearch()
	m.UpdateProgress(ProgressMsg{AverageProgress: 0.5, ETA: 3 * time.Second})
	if m.progress != 0.5 || m.eta != 3*time.Second {
		t.Errorf("unexpected progress state: %f %v", m.progress, m.eta)
	}
	if view := m.View(); !strings.Contains(view, "50.0%") {
		t.Errorf("expected progress bar in view, got:\n%s", view)
	}

	m.StopSearch()
	if view := m.View(); strings.Contains(view, "50.0%") {
		t.Errorf("expected no progress bar after StopSearch, got:\n%s", view)
	}

	m.StartSearch()
	if m.progress != 0 {
		t.Errorf("expected StartSearch to reset progress, got %f", m.progress)
	}
}

func TestMetricsModel_View(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.SetSize(60, 12)
	m.UpdateMemStats(MemStatsMsg{Snapshot: metrics.MemorySnapshot{HeapAlloc: 2048, Sys: 4096, NumGC: 3}, NumGoroutine: 5})

	view := m.View()
	for _, want := range []string{"Runtime", "Heap:", "2.0 KiB", "GC:", "Goroutines:", "CPU", "MEM"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestMetricsModel_SetSize(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.SetSize(56, 10)

	if m.width != 56 || m.height != 10 {
		t.Errorf("expected 56x10, got %dx%d", m.width, m.height)
	}
	if got := m.cpu.Cap(); got != 40 {
		t.Errorf("expected sparkline capacity 40, got %d", got)
	}

	// Too narrow for a sparkline: capacity is unchanged.
	m.SetSize(10, 10)
	if got := m.cpu.Cap(); got != 40 {
		t.Errorf("expected capacity to stay 40, got %d", got)
	}
}

func TestFormatMetricCol(t *testing.T) {
	t.Parallel()
	got := formatMetricCol("Heap:", "1.0 KiB", 30)
	if !strings.Contains(got, "Heap:") || !strings.Contains(got, "1.0 KiB") {
		t.Errorf("unexpected cell %q", got)
	}
	if w := len([]rune(stripANSI(got))); w < 30 {
		t.Errorf("expected cell padded to 30 columns, got %d", w)
	}
}

// stripANSI removes SGR escape sequences.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
