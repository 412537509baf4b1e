// Package format renders durations, progress bars and digit groupings for the
// terminal and the TUI.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats an evaluation time for display. Most
// fixed-width operations finish in microseconds, so sub-millisecond values
// keep microsecond precision and sub-second values show milliseconds.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: e.g. "12µs", "340ms" or "2.5s".
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.String()
	}
}
