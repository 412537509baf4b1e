package biguint

import (
	"errors"
	"fmt"
)

// NumberErrorKind classifies a failed conversion between text and a UInt.
type NumberErrorKind uint8

const (
	// NotAlphaNumeric: the text is empty or holds a character other than
	// 0-9, A-Z, a-z and the separator '_'.
	NotAlphaNumeric NumberErrorKind = iota + 1
	// OutOfValidRadixRange: the radix is outside [2, 62].
	OutOfValidRadixRange
	// NotFitToRadix: a digit is not valid in the radix.
	NotFitToRadix
	// TooBigNumber: the value does not fit in the width.
	TooBigNumber
)

// Sentinel errors matched by errors.Is against a *NumberError of the same kind.
var (
	ErrNotAlphaNumeric      = errors.New("not alphanumeric")
	ErrOutOfValidRadixRange = errors.New("radix out of range [2, 62]")
	ErrNotFitToRadix        = errors.New("digit does not fit the radix")
	ErrTooBigNumber         = errors.New("number too big for the width")
)

func (k NumberErrorKind) sentinel() error {
	switch k {
	case NotAlphaNumeric:
		return ErrNotAlphaNumeric
	case OutOfValidRadixRange:
		return ErrOutOfValidRadixRange
	case NotFitToRadix:
		return ErrNotFitToRadix
	case TooBigNumber:
		return ErrTooBigNumber
	}
	return nil
}

// String returns the name of the kind.
func (k NumberErrorKind) String() string {
	switch k {
	case NotAlphaNumeric:
		return "NotAlphaNumeric"
	case OutOfValidRadixRange:
		return "OutOfValidRadixRange"
	case NotFitToRadix:
		return "NotFitToRadix"
	case TooBigNumber:
		return "TooBigNumber"
	}
	return fmt.Sprintf("NumberErrorKind(%d)", uint8(k))
}

// NumberError reports a failed parse or render.
type NumberError struct {
	Kind  NumberErrorKind
	Input string
	Radix int
}

// Error names the input, the radix and the kind of failure.
func (e *NumberError) Error() string {
	if e.Input == "" && e.Kind == OutOfValidRadixRange {
		return fmt.Sprintf("biguint: radix %d: %v", e.Radix, e.Kind.sentinel())
	}
	return fmt.Sprintf("biguint: parsing %q in radix %d: %v", e.Input, e.Radix, e.Kind.sentinel())
}

// Unwrap returns the sentinel for the kind, for use with errors.Is.
func (e *NumberError) Unwrap() error { return e.Kind.sentinel() }
