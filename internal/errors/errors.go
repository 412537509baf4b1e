package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Process exit codes shared by every front end.
const (
	ExitSuccess         = 0   // The evaluation or search succeeded.
	ExitErrorGeneric    = 1   // Any failure without a more specific code.
	ExitErrorTimeout    = 2   // The time limit was reached.
	ExitErrorMismatch   = 3   // Two widths of the same size disagreed on a result.
	ExitErrorConfig     = 4   // Invalid flags, environment or operands.
	ExitErrorArithmetic = 5   // A checked or strict evaluation failed.
	ExitErrorCanceled   = 130 // Interrupted, as after SIGINT.
)

// ConfigError is a user configuration mistake such as an unknown width or an
// out-of-range radix.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError formats a ConfigError.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure of an evaluation or of a prime search
// worker, keeping the cause inspectable with errors.Is and errors.As.
type CalculationError struct {
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports that Operation exceeded Limit.
type TimeoutError struct {
	Operation string
	Limit     time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError rejects one input field, typically an operand that does not
// parse.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// ArithmeticError reports an evaluation whose result cannot be trusted: a
// checked operation that had no representable result, or a strict-mode
// evaluation that raised status flags.
type ArithmeticError struct {
	// Op is the operation name, such as "cmul".
	Op string
	// Flags holds the names of the raised status flags. It is empty when a
	// checked operation failed.
	Flags []string
}

func (e ArithmeticError) Error() string {
	if len(e.Flags) == 0 {
		return fmt.Sprintf("%s: no representable result", e.Op)
	}
	return fmt.Sprintf("%s raised %s", e.Op, strings.Join(e.Flags, ", "))
}

// ExitCode classifies err into one of the Exit* codes. Wrapped errors are
// classified by the innermost match, timeouts first.
func ExitCode(err error) int {
	var (
		timeoutErr    TimeoutError
		arithErr      ArithmeticError
		configErr     ConfigError
		validationErr ValidationError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &arithErr):
		return ExitErrorArithmetic
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}
