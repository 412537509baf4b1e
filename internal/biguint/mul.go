package biguint

// mulKernel returns x * y truncated to the width and whether any non-zero
// digit was dropped. y may be longer than the width.
func (x UInt[T, W]) mulKernel(y []T) ([]T, bool) {
	n := digitCount[W]()
	p := mulVV(x.words(), y)
	return p[:n:n], !isZeroVec(p[n:])
}

// WideningMul returns the full double-width product x * y as its low and high
// halves. Flags are untouched.
func (x UInt[T, W]) WideningMul(y UInt[T, W]) (low, high UInt[T, W]) {
	return x.CarryingMul(y, UInt[T, W]{})
}

// CarryingMul returns x * y + carry as low and high halves. The sum always fits
// in two widths, which allows chaining multi-width products by hand.
func (x UInt[T, W]) CarryingMul(y, carry UInt[T, W]) (low, high UInt[T, W]) {
	n := digitCount[W]()
	p := mulVV(x.words(), y.words())
	c := addVV(p[:n], p[:n], carry.words())
	addVW(p[n:], p[n:], c)
	return x.with(p[:n:n]), x.with(p[n:])
}

// WideningMulUint multiplies by a single digit and returns the low width and
// the high digit.
func (x UInt[T, W]) WideningMulUint(y T) (UInt[T, W], T) {
	return x.CarryingMulUint(y, 0)
}

// CarryingMulUint returns x * y + carry as the low width and the high digit.
func (x UInt[T, W]) CarryingMulUint(y, carry T) (UInt[T, W], T) {
	z := make([]T, digitCount[W]())
	hi := mulAddVWW(z, x.words(), y, carry)
	return x.with(z), hi
}

// WrappingMul returns x * y modulo 2^bits and sets Overflow when the product
// was truncated.
func (x UInt[T, W]) WrappingMul(y UInt[T, W]) UInt[T, W] {
	z, lost := x.mulKernel(y.words())
	return x.result(z, Overflow, flagIf(lost, Overflow))
}

// WrappingMulUint is WrappingMul with a native operand.
func (x UInt[T, W]) WrappingMulUint(y uint64) UInt[T, W] {
	z, lost := x.mulKernel(uintWords[T](y))
	return x.result(z, Overflow, flagIf(lost, Overflow))
}

// WrappingMulAssign is the in-place form of WrappingMul.
func (x *UInt[T, W]) WrappingMulAssign(y UInt[T, W]) { *x = x.WrappingMul(y) }
func (x *UInt[T, W]) WrappingMulAssignUint(y uint64) { *x = x.WrappingMulUint(y) }

// Mul is WrappingMul.
func (x UInt[T, W]) Mul(y UInt[T, W]) UInt[T, W] { return x.WrappingMul(y) }
func (x UInt[T, W]) MulUint(y uint64) UInt[T, W] { return x.WrappingMulUint(y) }
func (x *UInt[T, W]) MulAssign(y UInt[T, W])     { *x = x.WrappingMul(y) }
func (x *UInt[T, W]) MulAssignUint(y uint64)     { *x = x.WrappingMulUint(y) }

// OverflowingMul is WrappingMul that also reports whether the product wrapped.
func (x UInt[T, W]) OverflowingMul(y UInt[T, W]) (UInt[T, W], bool) {
	r := x.WrappingMul(y)
	return r, r.IsOverflow()
}

// OverflowingMulUint is OverflowingMul with a native operand.
func (x UInt[T, W]) OverflowingMulUint(y uint64) (UInt[T, W], bool) {
	r := x.WrappingMulUint(y)
	return r, r.IsOverflow()
}

// OverflowingMulAssign is the in-place form of OverflowingMul.
func (x *UInt[T, W]) OverflowingMulAssign(y UInt[T, W]) bool {
	*x = x.WrappingMul(y)
	return x.IsOverflow()
}

// OverflowingMulAssignUint is OverflowingMulAssign with a native operand.
func (x *UInt[T, W]) OverflowingMulAssignUint(y uint64) bool {
	*x = x.WrappingMulUint(y)
	return x.IsOverflow()
}

// CheckedMul returns x * y, or false when the product does not fit.
func (x UInt[T, W]) CheckedMul(y UInt[T, W]) (UInt[T, W], bool) {
	z, lost := x.mulKernel(y.words())
	if lost {
		return UInt[T, W]{}, false
	}
	return x.with(z), true
}

// CheckedMulUint is CheckedMul with a native operand.
func (x UInt[T, W]) CheckedMulUint(y uint64) (UInt[T, W], bool) {
	z, lost := x.mulKernel(uintWords[T](y))
	if lost {
		return UInt[T, W]{}, false
	}
	return x.with(z), true
}

// UncheckedMul returns x * y and panics when the product does not fit.
func (x UInt[T, W]) UncheckedMul(y UInt[T, W]) UInt[T, W] {
	r, ok := x.CheckedMul(y)
	if !ok {
		panic("biguint: multiplication overflow")
	}
	return r
}

// UncheckedMulUint is UncheckedMul with a native operand.
func (x UInt[T, W]) UncheckedMulUint(y uint64) UInt[T, W] {
	r, ok := x.CheckedMulUint(y)
	if !ok {
		panic("biguint: multiplication overflow")
	}
	return r
}

// SaturatingMul returns x * y, or Max when the product does not fit.
func (x UInt[T, W]) SaturatingMul(y UInt[T, W]) UInt[T, W] {
	z, lost := x.mulKernel(y.words())
	if lost {
		z = maxWords[T](digitCount[W]())
	}
	return x.with(z)
}

// SaturatingMulUint is SaturatingMul with a native operand.
func (x UInt[T, W]) SaturatingMulUint(y uint64) UInt[T, W] {
	z, lost := x.mulKernel(uintWords[T](y))
	if lost {
		z = maxWords[T](digitCount[W]())
	}
	return x.with(z)
}

// SaturatingMulAssign is the in-place form of SaturatingMul.
func (x *UInt[T, W]) SaturatingMulAssign(y UInt[T, W]) { *x = x.SaturatingMul(y) }
func (x *UInt[T, W]) SaturatingMulAssignUint(y uint64) { *x = x.SaturatingMulUint(y) }
