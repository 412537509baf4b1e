package biguint

import "strings"

// Flags records the exceptional conditions raised by the operation that last
// governed each bit. An operation only rewrites the bits it is responsible for;
// unrelated bits survive until an operation that owns them runs or until
// ResetFlags is called.
type Flags uint8

const (
	// Overflow is set when an add, mul or pow result was truncated to the
	// width, or when a division by zero produced the Max sentinel.
	Overflow Flags = 1 << iota
	// Underflow is set when a subtraction wrapped past zero.
	Underflow
	// Infinity is set when the result stands for an infinite value.
	Infinity
	// DividedByZero is set when the divisor or modulus was zero.
	DividedByZero
	// Undefined is set for results with no mathematical meaning such as 0/0,
	// 0^0 or the logarithm of zero.
	Undefined
	// LeftCarry is set when a left shift pushed a one bit out of the top.
	LeftCarry
	// RightCarry is set when a right shift pushed a one bit out of the bottom.
	RightCarry
)

// AllFlags has every status bit set.
const AllFlags = Overflow | Underflow | Infinity | DividedByZero | Undefined | LeftCarry | RightCarry

var flagNames = []struct {
	flag Flags
	name string
}{
	{Overflow, "overflow"},
	{Underflow, "underflow"},
	{Infinity, "infinity"},
	{DividedByZero, "divided_by_zero"},
	{Undefined, "undefined"},
	{LeftCarry, "left_carry"},
	{RightCarry, "right_carry"},
}

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Names returns the lower-case names of the set bits in declaration order.
func (f Flags) Names() []string {
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return names
}

// String joins Names with "|", or returns "none".
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	return strings.Join(f.Names(), "|")
}

// Governed flag sets per operation family.
const (
	divFlags     = Overflow | Infinity | DividedByZero | Undefined
	remFlags     = DividedByZero | Undefined
	modularFlags = DividedByZero | Infinity | Undefined
	powFlags     = Overflow | Undefined
)

// Flags returns the status flags of x.
func (x UInt[T, W]) Flags() Flags { return x.flags }

// ResetFlags clears every status flag of x.
func (x *UInt[T, W]) ResetFlags() { x.flags = 0 }

// SetFlags sets the given bits on x, keeping the others.
func (x *UInt[T, W]) SetFlags(f Flags) { x.flags |= f }

// ClearFlags clears the given bits on x, keeping the others.
func (x *UInt[T, W]) ClearFlags(f Flags) { x.flags &^= f }

// IsOverflow and the predicates below report whether one status flag is
// set on x.
func (x UInt[T, W]) IsOverflow() bool      { return x.flags&Overflow != 0 }
func (x UInt[T, W]) IsUnderflow() bool     { return x.flags&Underflow != 0 }
func (x UInt[T, W]) IsInfinity() bool      { return x.flags&Infinity != 0 }
func (x UInt[T, W]) IsDividedByZero() bool { return x.flags&DividedByZero != 0 }
func (x UInt[T, W]) IsUndefined() bool     { return x.flags&Undefined != 0 }
func (x UInt[T, W]) IsLeftCarry() bool     { return x.flags&LeftCarry != 0 }
func (x UInt[T, W]) IsRightCarry() bool    { return x.flags&RightCarry != 0 }
