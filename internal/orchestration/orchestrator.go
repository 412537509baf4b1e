package orchestration

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/uintcalc/internal/calc"
	apperrors "github.com/agbru/uintcalc/internal/errors"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking worker
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// ExecuteEvaluations runs one request on several widths concurrently.
//
// Each width reports a single completed update on the progress channel, so a
// reporter can show how many widths are still running.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - calculators: The widths to evaluate on.
//   - req: The request, shared by all widths.
//   - progressReporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for displaying progress updates.
//
// Returns:
//   - []EvaluationResult: One result per calculator, in input order.
func ExecuteEvaluations(ctx context.Context, calculators []calc.Calculator, req calc.Request, progressReporter ProgressReporter, out io.Writer) []EvaluationResult {
	var g errgroup.Group
	results := make([]EvaluationResult, len(calculators))
	progressChan := make(chan ProgressUpdate, len(calculators)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(calculators), out)

	for i, c := range calculators {
		g.Go(func() error {
			startTime := time.Now()
			res, err := c.Eval(ctx, req)
			results[i] = EvaluationResult{
				Name: c.Name(), Bits: c.Bits(), Result: res, Duration: time.Since(startTime), Err: err,
			}
			progressChan <- ProgressUpdate{TaskIndex: i, Value: 1}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeComparisonResults checks a cross-width evaluation and prints a
// summary report.
//
// Widths of the same size must produce identical values and flags whatever
// their digit type; any disagreement is reported as a mismatch. Widths of
// different sizes are only displayed side by side, since wrapping results
// legitimately differ between them.
//
// Parameters:
//   - results: The per-width results to analyze.
//   - opts: The presentation options.
//   - presenter: The result presenter for display formatting.
//   - handler: Maps the first failure to an exit code when every width failed.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []EvaluationResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		if results[i].Bits != results[j].Bits {
			return results[i].Bits < results[j].Bits
		}
		return results[i].Name < results[j].Name
	})

	var firstError error
	successCount := 0
	for _, res := range results {
		if res.Err != nil {
			if firstError == nil {
				firstError = res.Err
			}
			continue
		}
		successCount++
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No width could evaluate the expression.\n")
		return handler.HandleError(firstError, 0, out)
	}

	if a, b, ok := findMismatch(results); ok {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %s and %s disagree on a %d-bit result.\n", a.Name, b.Name, a.Bits)
		return apperrors.ExitErrorMismatch
	}

	if !opts.Quiet {
		fmt.Fprintf(out, "\nGlobal Status: Success. Widths of equal size agree.\n")
	}
	return apperrors.ExitSuccess
}

// findMismatch returns the first pair of successful results with equal bit
// sizes whose values or flags differ.
func findMismatch(results []EvaluationResult) (EvaluationResult, EvaluationResult, bool) {
	reference := make(map[int]EvaluationResult)
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		ref, seen := reference[res.Bits]
		if !seen {
			reference[res.Bits] = res
			continue
		}
		if ref.Result.Flags != res.Result.Flags || !slices.Equal(ref.Result.Values, res.Result.Values) {
			return ref, res, true
		}
	}
	return EvaluationResult{}, EvaluationResult{}, false
}
