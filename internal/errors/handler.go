package apperrors

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the terminal escape sequences used when reporting
// errors. A nil ColorProvider prints without color.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColor struct{}

func (noColor) Red() string    { return "" }
func (noColor) Yellow() string { return "" }
func (noColor) Reset() string  { return "" }

// HandleCalculationError reports err on out and maps it to an exit code. It
// is shared by the CLI, the REPL and the TUI so that every front end exits
// with the same status for the same failure.
//
// Parameters:
//   - err: The error returned by an evaluation or a prime search. May be nil.
//   - duration: The time spent before the failure, shown for timeouts.
//   - out: The destination of the report.
//   - colors: The color provider; nil disables colors.
//
// Returns:
//   - int: The exit code matching the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColor{}
	}

	code := ExitCode(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached after %s.%s\n",
			colors.Red(), duration.Round(time.Millisecond), colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled by user.%s\n", colors.Yellow(), colors.Reset())
	case ExitErrorArithmetic:
		var arithErr ArithmeticError
		errors.As(err, &arithErr)
		fmt.Fprintf(out, "%sStatus: Arithmetic error. %v%s\n", colors.Red(), arithErr, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sStatus: Invalid input. %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sStatus: Failure. %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
