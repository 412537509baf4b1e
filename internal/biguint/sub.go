package biguint

// subKernel returns x - y - borrow truncated to the width and whether the
// difference went below zero. y may be longer than the width; the low digits
// of the wrapped difference do not depend on the extra length.
func (x UInt[T, W]) subKernel(y []T, borrow bool) ([]T, bool) {
	n := digitCount[W]()
	l := max(n, len(y))
	z := resize(x.words(), l)
	b := subVVb(z, z, pad(y, l), bit[T](borrow))
	return z[:n:n], b != 0
}

// CarryingSub returns x - y - borrow and the borrow out. Flags are untouched.
func (x UInt[T, W]) CarryingSub(y UInt[T, W], borrow bool) (UInt[T, W], bool) {
	z, b := x.subKernel(y.words(), borrow)
	return x.with(z), b
}

// CarryingSubUint is CarryingSub with a native operand.
func (x UInt[T, W]) CarryingSubUint(y uint64, borrow bool) (UInt[T, W], bool) {
	z, b := x.subKernel(uintWords[T](y), borrow)
	return x.with(z), b
}

// CarryingSubAssign is the in-place form of CarryingSub.
func (x *UInt[T, W]) CarryingSubAssign(y UInt[T, W], borrow bool) bool {
	var b bool
	*x, b = x.CarryingSub(y, borrow)
	return b
}

// WrappingSub returns x - y modulo 2^bits and sets Underflow when it wrapped.
func (x UInt[T, W]) WrappingSub(y UInt[T, W]) UInt[T, W] {
	z, lost := x.subKernel(y.words(), false)
	return x.result(z, Underflow, flagIf(lost, Underflow))
}

// WrappingSubUint is WrappingSub with a native operand.
func (x UInt[T, W]) WrappingSubUint(y uint64) UInt[T, W] {
	z, lost := x.subKernel(uintWords[T](y), false)
	return x.result(z, Underflow, flagIf(lost, Underflow))
}

// WrappingSubAssign is the in-place form of WrappingSub.
func (x *UInt[T, W]) WrappingSubAssign(y UInt[T, W]) { *x = x.WrappingSub(y) }
func (x *UInt[T, W]) WrappingSubAssignUint(y uint64) { *x = x.WrappingSubUint(y) }

// Sub is WrappingSub.
func (x UInt[T, W]) Sub(y UInt[T, W]) UInt[T, W] { return x.WrappingSub(y) }
func (x UInt[T, W]) SubUint(y uint64) UInt[T, W] { return x.WrappingSubUint(y) }
func (x *UInt[T, W]) SubAssign(y UInt[T, W])     { *x = x.WrappingSub(y) }
func (x *UInt[T, W]) SubAssignUint(y uint64)     { *x = x.WrappingSubUint(y) }

// OverflowingSub is WrappingSub that also reports whether it borrowed.
func (x UInt[T, W]) OverflowingSub(y UInt[T, W]) (UInt[T, W], bool) {
	r := x.WrappingSub(y)
	return r, r.IsUnderflow()
}

// OverflowingSubUint is OverflowingSub with a native operand.
func (x UInt[T, W]) OverflowingSubUint(y uint64) (UInt[T, W], bool) {
	r := x.WrappingSubUint(y)
	return r, r.IsUnderflow()
}

// OverflowingSubAssign is the in-place form of OverflowingSub.
func (x *UInt[T, W]) OverflowingSubAssign(y UInt[T, W]) bool {
	*x = x.WrappingSub(y)
	return x.IsUnderflow()
}

// OverflowingSubAssignUint is OverflowingSubAssign with a native operand.
func (x *UInt[T, W]) OverflowingSubAssignUint(y uint64) bool {
	*x = x.WrappingSubUint(y)
	return x.IsUnderflow()
}

// CheckedSub returns x - y, or false when y > x.
func (x UInt[T, W]) CheckedSub(y UInt[T, W]) (UInt[T, W], bool) {
	z, lost := x.subKernel(y.words(), false)
	if lost {
		return UInt[T, W]{}, false
	}
	return x.with(z), true
}

// CheckedSubUint is CheckedSub with a native operand.
func (x UInt[T, W]) CheckedSubUint(y uint64) (UInt[T, W], bool) {
	z, lost := x.subKernel(uintWords[T](y), false)
	if lost {
		return UInt[T, W]{}, false
	}
	return x.with(z), true
}

// UncheckedSub returns x - y and panics when y > x.
func (x UInt[T, W]) UncheckedSub(y UInt[T, W]) UInt[T, W] {
	r, ok := x.CheckedSub(y)
	if !ok {
		panic("biguint: subtraction underflow")
	}
	return r
}

// UncheckedSubUint is UncheckedSub with a native operand.
func (x UInt[T, W]) UncheckedSubUint(y uint64) UInt[T, W] {
	r, ok := x.CheckedSubUint(y)
	if !ok {
		panic("biguint: subtraction underflow")
	}
	return r
}

// SaturatingSub returns x - y, or zero when y > x.
func (x UInt[T, W]) SaturatingSub(y UInt[T, W]) UInt[T, W] {
	z, lost := x.subKernel(y.words(), false)
	if lost {
		z = make([]T, digitCount[W]())
	}
	return x.with(z)
}

// SaturatingSubUint is SaturatingSub with a native operand.
func (x UInt[T, W]) SaturatingSubUint(y uint64) UInt[T, W] {
	z, lost := x.subKernel(uintWords[T](y), false)
	if lost {
		z = make([]T, digitCount[W]())
	}
	return x.with(z)
}

// SaturatingSubAssign is the in-place form of SaturatingSub.
func (x *UInt[T, W]) SaturatingSubAssign(y UInt[T, W]) { *x = x.SaturatingSub(y) }
func (x *UInt[T, W]) SaturatingSubAssignUint(y uint64) { *x = x.SaturatingSubUint(y) }

// Decrement subtracts one with wrapping semantics.
func (x UInt[T, W]) Decrement() UInt[T, W] { return x.WrappingSubUint(1) }

// AbsDiff returns |x - y|. It never sets flags.
func (x UInt[T, W]) AbsDiff(y UInt[T, W]) UInt[T, W] {
	if x.Lt(y) {
		z, _ := y.subKernel(x.words(), false)
		return x.with(z)
	}
	z, _ := x.subKernel(y.words(), false)
	return x.with(z)
}
