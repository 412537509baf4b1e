package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/uintcalc/internal/calc"
)

// EvaluationResult is the outcome of one expression on one width.
type EvaluationResult struct {
	// Name is the width name, e.g. "u256x32".
	Name string
	// Bits is the width in bits.
	Bits int
	// Result holds the rendered values and flags. It is zero if Err is set.
	Result calc.Result
	// Duration is the time taken by the evaluation.
	Duration time.Duration
	// Err contains any error that occurred during the evaluation.
	Err error
}

// SearchResult is the outcome of a prime search.
type SearchResult struct {
	// Width is the name of the width searched.
	Width string
	// Bits is the size of the prime.
	Bits int
	// Value is the prime, in decimal.
	Value string
	// Candidates is the number of values tested across all workers.
	Candidates uint64
	// Workers is the number of goroutines that searched.
	Workers int
	// Duration is the wall time of the search.
	Duration time.Duration
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Verbose bool
	Quiet   bool
}

// ProgressReporter defines the interface for displaying progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations render spinners or progress bars while the
// orchestration layer coordinates the work.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from tasks.
	//   - numTasks: The number of concurrent tasks being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numTasks int, out io.Writer) {
	f(wg, progressChan, numTasks, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter defines the interface for presenting results, allowing
// different output formats without modifying the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per width.
	PresentComparisonTable(results []EvaluationResult, out io.Writer)

	// PresentResult displays a single evaluation.
	PresentResult(result EvaluationResult, opts PresentationOptions, out io.Writer)

	// PresentPrime displays the outcome of a prime search.
	PresentPrime(result SearchResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler handles errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
