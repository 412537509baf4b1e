package tui

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/uintcalc/internal/errors"
	"github.com/agbru/uintcalc/internal/orchestration"
)

// programRef lets commands running off the update loop reach the program.
// Models are copied on every Update, so they share this pointer instead of
// holding the program directly.
type programRef struct {
	program atomic.Pointer[tea.Program]
}

// SetProgram records the running program.
func (r *programRef) SetProgram(p *tea.Program) { r.program.Store(p) }

// Send delivers msg to the program, or drops it before the program starts.
func (r *programRef) Send(msg tea.Msg) {
	if p := r.program.Load(); p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

// Verify interface compliance.
var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numTasks int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numTasks)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			TaskIndex:       ap.TaskIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter implements orchestration.ResultPresenter.
// It sends result messages to the TUI instead of writing to stdout.
type TUIResultPresenter struct {
	ref *programRef
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends cross-check results to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results})
}

// PresentResult sends a single width's result to the TUI.
func (t *TUIResultPresenter) PresentResult(result orchestration.EvaluationResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(EvalResultMsg{Result: result.Result, Err: result.Err})
}

// PresentPrime sends a found prime to the TUI.
func (t *TUIResultPresenter) PresentPrime(result orchestration.SearchResult, _ orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(PrimeResultMsg{Result: result})
}

// HandleError sends an error message to the TUI and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.ExitCode(err)
}
