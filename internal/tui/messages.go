package tui

import (
	"time"

	"github.com/agbru/uintcalc/internal/calc"
	"github.com/agbru/uintcalc/internal/metrics"
	"github.com/agbru/uintcalc/internal/orchestration"
)

// TickMsg drives the periodic sampling of system and memory statistics.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg struct {
	Snapshot     metrics.MemorySnapshot
	NumGoroutine int
}

// EvalResultMsg is the outcome of one evaluation on the current width.
type EvalResultMsg struct {
	Expr   string
	Result calc.Result
	Err    error
}

// ProgressMsg is an aggregated progress update from a prime search.
type ProgressMsg struct {
	TaskIndex       int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the per-width results of a cross-check.
type ComparisonResultsMsg struct {
	Results []orchestration.EvaluationResult
}

// PrimeResultMsg carries a found prime.
type PrimeResultMsg struct {
	Result orchestration.SearchResult
}

// ErrorMsg reports a failed cross-check or prime search.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TaskDoneMsg marks the end of a background task. Messages from a task
// that was superseded carry an older generation and are ignored.
type TaskDoneMsg struct {
	Generation uint64
	ExitCode   int
}
