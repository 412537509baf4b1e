package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/config"
	apperrors "github.com/agbru/uintcalc/internal/errors"
)

func newTestModel(t *testing.T, width string) Model {
	t.Helper()
	m, err := NewModel(context.Background(), calc.NewDefaultFactory(), config.AppConfig{Width: width, Timeout: time.Minute}, "v1.0.0")
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

// submit types line, presses enter and feeds the resulting message back
// into the model.
func submit(t *testing.T, m Model, line string) Model {
	t.Helper()
	typeText(&m.input, line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			updated, _ = m.Update(msg)
			m = updated.(Model)
		}
	}
	return m
}

func lastEntry(t *testing.T, m Model) Entry {
	t.Helper()
	if m.history.Len() == 0 {
		t.Fatal("history is empty")
	}
	return m.history.entries[m.history.Len()-1]
}

func TestNewModel_UnknownWidth(t *testing.T) {
	t.Parallel()
	if _, err := NewModel(context.Background(), calc.NewDefaultFactory(), config.AppConfig{Width: "u7"}, "dev"); err == nil {
		t.Fatal("expected an error for an unknown width")
	}
}

func TestModel_Evaluate(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "u64x8")
	m = submit(t, m, "add 18446744073709551615 2")

	e := lastEntry(t, m)
	if e.Kind != EntryResult {
		t.Fatalf("expected a result entry, got %+v", e)
	}
	if got := strings.Join(e.Lines, " "); got != "1" {
		t.Errorf("value = %q, want 1", got)
	}
	if !m.flags.Flags().Has(biguint.Overflow) {
		t.Errorf("expected overflow in the flags panel, got %v", m.flags.Flags())
	}
}

func TestModel_StrictEvaluation(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "u64x8")
	m = submit(t, m, "strict")
	if !m.strict {
		t.Fatal("expected strict mode")
	}
	m = submit(t, m, "sub 0 1")

	e := lastEntry(t, m)
	if e.Kind != EntryError {
		t.Fatalf("expected an error entry, got %+v", e)
	}
	if !m.flags.Flags().Has(biguint.Underflow) {
		t.Errorf("expected underflow in the flags panel, got %v", m.flags.Flags())
	}
	if !m.footer.lastErr {
		t.Error("expected the footer to show the error state")
	}
}

func TestModel_Commands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		line  string
		check func(t *testing.T, m Model)
	}{
		{"width", "width u512", func(t *testing.T, m Model) {
			if m.current.Name() != "u512" {
				t.Errorf("current width = %s", m.current.Name())
			}
		}},
		{"unknown width", "width u7", func(t *testing.T, m Model) {
			if lastEntry(t, m).Kind != EntryError || m.current.Name() != "u256" {
				t.Error("expected an error and an unchanged width")
			}
		}},
		{"radix", "radix 16", func(t *testing.T, m Model) {
			if m.format.Radix != 16 {
				t.Errorf("radix = %d", m.format.Radix)
			}
		}},
		{"bad radix", "radix 99", func(t *testing.T, m Model) {
			if m.format.Radix != 10 || lastEntry(t, m).Kind != EntryError {
				t.Error("expected the radix to be rejected")
			}
		}},
		{"stride", "stride 3 ,", func(t *testing.T, m Model) {
			if m.format.Stride != 3 || m.format.Delimiter != "," {
				t.Errorf("format = %+v", m.format)
			}
		}},
		{"help", "help", func(t *testing.T, m Model) {
			if !m.showHelp {
				t.Error("expected the help overlay")
			}
		}},
		{"parse error", "frobnicate 1", func(t *testing.T, m Model) {
			if lastEntry(t, m).Kind != EntryError {
				t.Error("expected an error entry")
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, submit(t, newTestModel(t, "u256"), tt.line))
		})
	}
}

func TestModel_FormattedResult(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "u256")
	m = submit(t, m, "radix 16")
	m = submit(t, m, "stride 4")
	m = submit(t, m, "shl 1 16")

	if got := strings.Join(lastEntry(t, m).Lines, " "); got != "1_0000" {
		t.Errorf("value = %q, want 1_0000", got)
	}
}

func TestModel_Compare(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "u256")
	typeText(&m.input, "compare mul 6 7")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.busy || cmd == nil {
		t.Fatal("expected a running comparison task")
	}

	// Input is ignored while a task runs.
	typeText(&m.input, "add 1 1")
	if _, c := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); c != nil {
		t.Error("expected enter to be ignored while busy")
	}

	done, ok := cmd().(TaskDoneMsg)
	if !ok {
		t.Fatal("expected a TaskDoneMsg")
	}
	if done.ExitCode != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want success", done.ExitCode)
	}
	updated, _ = m.Update(done)
	m = updated.(Model)
	if m.busy {
		t.Error("expected the task to be finished")
	}
}

func TestModel_StaleTaskDone(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "u256")
	m.beginTask()
	updated, _ := m.Update(TaskDoneMsg{Generation: m.generation - 1})
	if !updated.(Model).busy {
		t.Error("a stale TaskDoneMsg must not end the current task")
	}
	updated, _ = updated.Update(TaskDoneMsg{Generation: m.generation, ExitCode: apperrors.ExitErrorMismatch})
	um := updated.(Model)
	if um.busy || lastEntry(t, um).Kind != EntryError {
		t.Error("expected the mismatch to end the task with an error entry")
	}
}

func TestModel_Keys(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "u256")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.current.Name() == "u256" {
		t.Error("tab should move to another width")
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(Model)
	if m.current.Name() != "u256" {
		t.Errorf("shift+tab should return to u256, got %s", m.current.Name())
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyF1})
	m = updated.(Model)
	if !m.showHelp || !strings.Contains(m.View(), "UINTCALC - HELP") {
		t.Error("f1 should open the help overlay")
	}
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.showHelp {
		t.Error("esc should close the help overlay")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)
	if m.history.Len() != 0 {
		t.Error("ctrl+l should clear the history")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a QuitMsg")
	}
}

func TestModel_Cancel(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "u256")
	ctx, _ := m.beginTask()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = updated.(Model)
	if m.busy {
		t.Error("esc should stop the task")
	}
	select {
	case <-ctx.Done():
	default:
		t.Error("expected the task context to be canceled")
	}
}

func TestModel_ProgressAndStats(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, "u256")
	m.metrics.StartSearch()

	updated, _ := m.Update(ProgressMsg{AverageProgress: 0.25})
	updated, _ = updated.Update(SysStatsMsg{CPUPercent: 10, MemPercent: 20})
	m = updated.(Model)
	if m.metrics.progress != 0.25 || m.metrics.cpu.Last() != 10 {
		t.Errorf("unexpected metrics state: %f %f", m.metrics.progress, m.metrics.cpu.Last())
	}

	if _, cmd := m.Update(TickMsg(time.Now())); cmd == nil {
		t.Error("expected sampling commands on tick")
	}
}

func TestModel_View(t *testing.T) {
	t.Parallel()
	m, err := NewModel(context.Background(), calc.NewDefaultFactory(), config.AppConfig{Width: "u256"}, "v1.0.0")
	if err != nil {
		t.Fatal(err)
	}
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before sizing = %q", got)
	}

	m = newTestModel(t, "u256")
	m = submit(t, m, "mul 6 7")
	view := m.View()
	for _, want := range []string{"uintcalc v1.0.0", "u256 (256 bits, 64-bit digits)", "History", "42", "Flags (mul)", "Runtime", "u256>", "READY"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
