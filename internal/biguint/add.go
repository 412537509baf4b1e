package biguint

import "github.com/agbru/uintcalc/internal/digit"

func bit[T digit.Digit](b bool) T {
	if b {
		return 1
	}
	return 0
}

// pad returns y extended with zero digits to length l, or y itself when it
// already has that length.
func pad[T digit.Digit](y []T, l int) []T {
	if len(y) == l {
		return y
	}
	return resize(y, l)
}

// addKernel returns x + y + carry truncated to the width and whether a carry
// was lost. y may be longer than the width.
func (x UInt[T, W]) addKernel(y []T, carry bool) ([]T, bool) {
	n := digitCount[W]()
	l := max(n, len(y))
	z := resize(x.words(), l)
	c := addVVc(z, z, pad(y, l), bit[T](carry))
	return z[:n:n], c != 0 || !isZeroVec(z[n:])
}

// CarryingAdd returns x + y + carry and the carry out. Flags are untouched.
func (x UInt[T, W]) CarryingAdd(y UInt[T, W], carry bool) (UInt[T, W], bool) {
	z, c := x.addKernel(y.words(), carry)
	return x.with(z), c
}

// CarryingAddUint is CarryingAdd with a native operand.
func (x UInt[T, W]) CarryingAddUint(y uint64, carry bool) (UInt[T, W], bool) {
	z, c := x.addKernel(uintWords[T](y), carry)
	return x.with(z), c
}

// CarryingAddAssign sets x to x + y + carry and returns the carry out.
func (x *UInt[T, W]) CarryingAddAssign(y UInt[T, W], carry bool) bool {
	var c bool
	*x, c = x.CarryingAdd(y, carry)
	return c
}

// WrappingAdd returns x + y modulo 2^bits and sets Overflow when it wrapped.
func (x UInt[T, W]) WrappingAdd(y UInt[T, W]) UInt[T, W] {
	z, lost := x.addKernel(y.words(), false)
	return x.result(z, Overflow, flagIf(lost, Overflow))
}

// WrappingAddUint is WrappingAdd with a native operand.
func (x UInt[T, W]) WrappingAddUint(y uint64) UInt[T, W] {
	z, lost := x.addKernel(uintWords[T](y), false)
	return x.result(z, Overflow, flagIf(lost, Overflow))
}

// WrappingAddAssign is the in-place form of WrappingAdd.
func (x *UInt[T, W]) WrappingAddAssign(y UInt[T, W]) { *x = x.WrappingAdd(y) }
func (x *UInt[T, W]) WrappingAddAssignUint(y uint64) { *x = x.WrappingAddUint(y) }

// Add is WrappingAdd.
func (x UInt[T, W]) Add(y UInt[T, W]) UInt[T, W] { return x.WrappingAdd(y) }
func (x UInt[T, W]) AddUint(y uint64) UInt[T, W] { return x.WrappingAddUint(y) }
func (x *UInt[T, W]) AddAssign(y UInt[T, W])     { *x = x.WrappingAdd(y) }
func (x *UInt[T, W]) AddAssignUint(y uint64)     { *x = x.WrappingAddUint(y) }

// OverflowingAdd is WrappingAdd that also reports whether the sum wrapped.
func (x UInt[T, W]) OverflowingAdd(y UInt[T, W]) (UInt[T, W], bool) {
	r := x.WrappingAdd(y)
	return r, r.IsOverflow()
}

// OverflowingAddUint is OverflowingAdd with a native operand.
func (x UInt[T, W]) OverflowingAddUint(y uint64) (UInt[T, W], bool) {
	r := x.WrappingAddUint(y)
	return r, r.IsOverflow()
}

// OverflowingAddAssign is the in-place form of OverflowingAdd.
func (x *UInt[T, W]) OverflowingAddAssign(y UInt[T, W]) bool {
	*x = x.WrappingAdd(y)
	return x.IsOverflow()
}

// OverflowingAddAssignUint is OverflowingAddAssign with a native operand.
func (x *UInt[T, W]) OverflowingAddAssignUint(y uint64) bool {
	*x = x.WrappingAddUint(y)
	return x.IsOverflow()
}

// CheckedAdd returns x + y, or false when the sum does not fit.
func (x UInt[T, W]) CheckedAdd(y UInt[T, W]) (UInt[T, W], bool) {
	z, lost := x.addKernel(y.words(), false)
	if lost {
		return UInt[T, W]{}, false
	}
	return x.with(z), true
}

// CheckedAddUint is CheckedAdd with a native operand.
func (x UInt[T, W]) CheckedAddUint(y uint64) (UInt[T, W], bool) {
	z, lost := x.addKernel(uintWords[T](y), false)
	if lost {
		return UInt[T, W]{}, false
	}
	return x.with(z), true
}

// UncheckedAdd returns x + y and panics when the sum does not fit.
func (x UInt[T, W]) UncheckedAdd(y UInt[T, W]) UInt[T, W] {
	r, ok := x.CheckedAdd(y)
	if !ok {
		panic("biguint: addition overflow")
	}
	return r
}

// UncheckedAddUint is UncheckedAdd with a native operand.
func (x UInt[T, W]) UncheckedAddUint(y uint64) UInt[T, W] {
	r, ok := x.CheckedAddUint(y)
	if !ok {
		panic("biguint: addition overflow")
	}
	return r
}

// SaturatingAdd returns x + y, or Max when the sum does not fit.
func (x UInt[T, W]) SaturatingAdd(y UInt[T, W]) UInt[T, W] {
	z, lost := x.addKernel(y.words(), false)
	if lost {
		z = maxWords[T](digitCount[W]())
	}
	return x.with(z)
}

// SaturatingAddUint is SaturatingAdd with a native operand.
func (x UInt[T, W]) SaturatingAddUint(y uint64) UInt[T, W] {
	z, lost := x.addKernel(uintWords[T](y), false)
	if lost {
		z = maxWords[T](digitCount[W]())
	}
	return x.with(z)
}

// SaturatingAddAssign is the in-place form of SaturatingAdd.
func (x *UInt[T, W]) SaturatingAddAssign(y UInt[T, W]) { *x = x.SaturatingAdd(y) }
func (x *UInt[T, W]) SaturatingAddAssignUint(y uint64) { *x = x.SaturatingAddUint(y) }

// Increment adds one with wrapping semantics.
func (x UInt[T, W]) Increment() UInt[T, W] { return x.WrappingAddUint(1) }
