package orchestration

import (
	"time"

	"github.com/agbru/uintcalc/internal/format"
)

// ProgressUpdate reports the progress of one task, in [0, 1]. A task is a
// width in a cross-width evaluation or a worker in a prime search.
//
// Final marks an update that completes the whole run, such as the worker
// that found the prime. The other tasks are abandoned at that point.
type ProgressUpdate struct {
	TaskIndex int
	Value     float64
	Final     bool
}

// ProgressAggregator folds per-task updates into one figure for a display.
// A cross-width evaluation completes when every width has reported 1; a
// prime search completes on the first Final update. It is owned by a single
// display goroutine.
type ProgressAggregator struct {
	state    *format.ProgressWithETA
	numTasks int
	done     bool
}

// NewProgressAggregator returns nil when numTasks <= 0.
func NewProgressAggregator(numTasks int) *ProgressAggregator {
	if numTasks <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:    format.NewProgressWithETA(numTasks),
		numTasks: numTasks,
	}
}

// AggregatedProgress is the state after one update.
type AggregatedProgress struct {
	TaskIndex int
	// Value is the task's own progress, as sent.
	Value float64
	// AverageProgress is the mean over all tasks, or 1 once the run is done.
	AverageProgress float64
	ETA             time.Duration
}

// Update records one update. Updates that arrive after a Final one, from
// workers still unwinding, do not move the figures.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	ap := AggregatedProgress{TaskIndex: update.TaskIndex, Value: update.Value}
	if update.Final {
		a.done = true
	}
	if a.done {
		ap.AverageProgress = 1
		return ap
	}
	ap.AverageProgress, ap.ETA = a.state.UpdateWithETA(update.TaskIndex, update.Value)
	return ap
}

// CalculateAverage returns the current figure without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	if a.done {
		return 1
	}
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate, zero once the run is done.
func (a *ProgressAggregator) GetETA() time.Duration {
	if a.done {
		return 0
	}
	return a.state.GetETA()
}

// Done reports whether a Final update has been seen.
func (a *ProgressAggregator) Done() bool { return a.done }

func (a *ProgressAggregator) NumTasks() int { return a.numTasks }

// IsMultiTask reports whether several widths or workers share the display.
func (a *ProgressAggregator) IsMultiTask() bool { return a.numTasks > 1 }

// DrainChannel discards updates until progressChan is closed, so senders
// never block on a display that is not rendering.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
