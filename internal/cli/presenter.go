package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/uintcalc/internal/errors"
	"github.com/agbru/uintcalc/internal/format"
	"github.com/agbru/uintcalc/internal/metrics"
	"github.com/agbru/uintcalc/internal/orchestration"
	"github.com/agbru/uintcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// during evaluations and prime searches.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing work.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numTasks int, out io.Writer) {
	DisplayProgress(wg, progressChan, numTasks, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for evaluation results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// tableDuration formats a duration cell, showing sub-microsecond timings as
// "< 1µs".
func tableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// PresentComparisonTable displays one row per width with its duration, the
// raised flags and the value or failure. Padding is computed on the plain
// text so ANSI codes do not break the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.EvaluationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Width")
	maxDurationLen := len("Duration")
	maxFlagsLen := len("Flags")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(tableDuration(res.Duration)))
		if res.Err == nil {
			maxFlagsLen = max(maxFlagsLen, len(res.Result.Flags.String()))
		}
	}

	fmt.Fprintf(out, "%sWidth%s%s   %sDuration%s%s   %sFlags%s%s   %sValue%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Width")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxFlagsLen-len("Flags")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		duration := tableDuration(res.Duration)
		flags, flagsLen := "", 0
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			flags, flagsLen = FormatFlags(res.Result.Flags), len(res.Result.Flags.String())
			status = truncate(res.Result.Value(), false)
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			flags, padRight("", maxFlagsLen-flagsLen),
			status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays a single width's result.
func (CLIResultPresenter) PresentResult(result orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result.Result)
		return
	}
	DisplayResult(result.Result, opts.Verbose, out)
}

// PresentPrime displays the outcome of a prime search.
func (CLIResultPresenter) PresentPrime(result orchestration.SearchResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		fmt.Fprintln(out, result.Value)
		return
	}
	fmt.Fprintf(out, "%sprime%s %s\n", ui.ColorBold(), ui.ColorReset(),
		ui.Colorize(ui.ColorGreen(), truncate(result.Value, opts.Verbose)))
	fmt.Fprintf(out, "  %s%d-bit%s prime found after %s%s%s candidates on %d workers in %s%s%s.\n",
		ui.ColorBlue(), result.Bits, ui.ColorReset(),
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(result.Candidates)), ui.ColorReset(),
		result.Workers,
		ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
}

// HandleError handles evaluation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider supplies the current theme's colors to the error handler.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats shows the allocation delta of a run.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(snap.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", snap.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(snap.PauseTotalNs)/1e6)
}
