package biguint

import "github.com/agbru/uintcalc/internal/digit"

// wordsToUint64 returns the low 64 bits of x.
func wordsToUint64[T digit.Digit](x []T) uint64 {
	w := digit.Bits[T]()
	var v uint64
	for i, d := range x {
		if i*w >= 64 {
			break
		}
		v |= uint64(d) << uint(i*w)
	}
	return v
}

// divmodUint divides x by a non-zero native divisor. Divisors that fit in one
// digit take the single-digit path.
func (x UInt[T, W]) divmodUint(y uint64) ([]T, uint64) {
	if y <= uint64(digit.Max[T]()) {
		q := make([]T, digitCount[W]())
		return q, uint64(divWVW(q, 0, x.words(), T(y)))
	}
	q, r := divmodVV(x.words(), uintWords[T](y))
	return q, wordsToUint64(r)
}

// quotient applies the division flag contract to q. A zero divisor yields Max
// with Overflow, Infinity and DividedByZero set, plus Undefined for 0/0.
func (x UInt[T, W]) quotient(q []T, byZero bool) UInt[T, W] {
	if byZero {
		return x.result(maxWords[T](digitCount[W]()), divFlags,
			Overflow|Infinity|DividedByZero|flagIf(x.IsZero(), Undefined))
	}
	return x.result(q, divFlags, 0)
}

// remainder applies the remainder flag contract to r. A zero divisor yields
// zero with DividedByZero set, plus Undefined for 0 % 0.
func (x UInt[T, W]) remainder(r []T, byZero bool) UInt[T, W] {
	if byZero {
		return x.result(make([]T, digitCount[W]()), remFlags,
			DividedByZero|flagIf(x.IsZero(), Undefined))
	}
	return x.result(r, remFlags, 0)
}

// DivideFully returns the quotient and remainder of x / y. Both results carry
// the flags of the division and remainder contracts respectively.
func (x UInt[T, W]) DivideFully(y UInt[T, W]) (quotient, remainder UInt[T, W]) {
	if y.IsZero() {
		return x.quotient(nil, true), x.remainder(nil, true)
	}
	q, r := divmodVV(x.words(), y.words())
	return x.quotient(q, false), x.remainder(r, false)
}

// DivideFullyUint is DivideFully with a native divisor. A zero divisor yields
// the Max sentinel and a zero remainder.
func (x UInt[T, W]) DivideFullyUint(y uint64) (UInt[T, W], uint64) {
	if y == 0 {
		return x.quotient(nil, true), 0
	}
	q, r := x.divmodUint(y)
	return x.quotient(q, false), r
}

// WrappingDiv returns x / y. Division by zero returns Max and sets Overflow,
// Infinity and DividedByZero.
func (x UInt[T, W]) WrappingDiv(y UInt[T, W]) UInt[T, W] {
	if y.IsZero() {
		return x.quotient(nil, true)
	}
	q, _ := divmodVV(x.words(), y.words())
	return x.quotient(q, false)
}

// WrappingDivUint is WrappingDiv with a native operand.
func (x UInt[T, W]) WrappingDivUint(y uint64) UInt[T, W] {
	if y == 0 {
		return x.quotient(nil, true)
	}
	q, _ := x.divmodUint(y)
	return x.quotient(q, false)
}

// WrappingDivAssign is the in-place form of WrappingDiv.
func (x *UInt[T, W]) WrappingDivAssign(y UInt[T, W]) { *x = x.WrappingDiv(y) }
func (x *UInt[T, W]) WrappingDivAssignUint(y uint64) { *x = x.WrappingDivUint(y) }

// Div is WrappingDiv.
func (x UInt[T, W]) Div(y UInt[T, W]) UInt[T, W] { return x.WrappingDiv(y) }
func (x UInt[T, W]) DivUint(y uint64) UInt[T, W] { return x.WrappingDivUint(y) }
func (x *UInt[T, W]) DivAssign(y UInt[T, W])     { *x = x.WrappingDiv(y) }
func (x *UInt[T, W]) DivAssignUint(y uint64)     { *x = x.WrappingDivUint(y) }

// OverflowingDiv is WrappingDiv that also reports a division by zero.
func (x UInt[T, W]) OverflowingDiv(y UInt[T, W]) (UInt[T, W], bool) {
	r := x.WrappingDiv(y)
	return r, r.IsOverflow()
}

// OverflowingDivUint is OverflowingDiv with a native operand.
func (x UInt[T, W]) OverflowingDivUint(y uint64) (UInt[T, W], bool) {
	r := x.WrappingDivUint(y)
	return r, r.IsOverflow()
}

// OverflowingDivAssign is the in-place form of OverflowingDiv.
func (x *UInt[T, W]) OverflowingDivAssign(y UInt[T, W]) bool {
	*x = x.WrappingDiv(y)
	return x.IsOverflow()
}

// OverflowingDivAssignUint is OverflowingDivAssign with a native operand.
func (x *UInt[T, W]) OverflowingDivAssignUint(y uint64) bool {
	*x = x.WrappingDivUint(y)
	return x.IsOverflow()
}

// CheckedDiv returns x / y, or false when y is zero.
func (x UInt[T, W]) CheckedDiv(y UInt[T, W]) (UInt[T, W], bool) {
	if y.IsZero() {
		return UInt[T, W]{}, false
	}
	return x.WrappingDiv(y), true
}

// CheckedDivUint is CheckedDiv with a native operand.
func (x UInt[T, W]) CheckedDivUint(y uint64) (UInt[T, W], bool) {
	if y == 0 {
		return UInt[T, W]{}, false
	}
	return x.WrappingDivUint(y), true
}

// UncheckedDiv returns x / y and panics when y is zero.
func (x UInt[T, W]) UncheckedDiv(y UInt[T, W]) UInt[T, W] {
	if y.IsZero() {
		panic("biguint: division by zero")
	}
	return x.WrappingDiv(y)
}

// UncheckedDivUint is UncheckedDiv with a native operand.
func (x UInt[T, W]) UncheckedDivUint(y uint64) UInt[T, W] {
	if y == 0 {
		panic("biguint: division by zero")
	}
	return x.WrappingDivUint(y)
}

// SaturatingDiv is WrappingDiv: a quotient cannot exceed its dividend, and a
// zero divisor already saturates to Max.
func (x UInt[T, W]) SaturatingDiv(y UInt[T, W]) UInt[T, W] { return x.WrappingDiv(y) }
func (x UInt[T, W]) SaturatingDivUint(y uint64) UInt[T, W] { return x.WrappingDivUint(y) }
func (x *UInt[T, W]) SaturatingDivAssign(y UInt[T, W])     { *x = x.WrappingDiv(y) }
func (x *UInt[T, W]) SaturatingDivAssignUint(y uint64)     { *x = x.WrappingDivUint(y) }

// WrappingRem returns x % y. A zero divisor returns zero and sets
// DividedByZero.
func (x UInt[T, W]) WrappingRem(y UInt[T, W]) UInt[T, W] {
	if y.IsZero() {
		return x.remainder(nil, true)
	}
	_, r := divmodVV(x.words(), y.words())
	return x.remainder(r, false)
}

// WrappingRemUint is WrappingRem with a native divisor. The remainder is
// returned as a UInt so that it carries the flags.
func (x UInt[T, W]) WrappingRemUint(y uint64) UInt[T, W] {
	if y == 0 {
		return x.remainder(nil, true)
	}
	_, r := x.divmodUint(y)
	return x.remainder(resize(uintWords[T](r), digitCount[W]()), false)
}

// WrappingRemAssign is the in-place form of WrappingRem.
func (x *UInt[T, W]) WrappingRemAssign(y UInt[T, W]) { *x = x.WrappingRem(y) }
func (x *UInt[T, W]) WrappingRemAssignUint(y uint64) { *x = x.WrappingRemUint(y) }

// Rem is WrappingRem.
func (x UInt[T, W]) Rem(y UInt[T, W]) UInt[T, W] { return x.WrappingRem(y) }
func (x UInt[T, W]) RemUint(y uint64) UInt[T, W] { return x.WrappingRemUint(y) }
func (x *UInt[T, W]) RemAssign(y UInt[T, W])     { *x = x.WrappingRem(y) }
func (x *UInt[T, W]) RemAssignUint(y uint64)     { *x = x.WrappingRemUint(y) }

// OverflowingRem is WrappingRem that also reports a division by zero.
func (x UInt[T, W]) OverflowingRem(y UInt[T, W]) (UInt[T, W], bool) {
	r := x.WrappingRem(y)
	return r, r.IsDividedByZero()
}

// OverflowingRemUint is OverflowingRem with a native operand.
func (x UInt[T, W]) OverflowingRemUint(y uint64) (UInt[T, W], bool) {
	r := x.WrappingRemUint(y)
	return r, r.IsDividedByZero()
}

// OverflowingRemAssign is the in-place form of OverflowingRem.
func (x *UInt[T, W]) OverflowingRemAssign(y UInt[T, W]) bool {
	*x = x.WrappingRem(y)
	return x.IsDividedByZero()
}

// OverflowingRemAssignUint is OverflowingRemAssign with a native operand.
func (x *UInt[T, W]) OverflowingRemAssignUint(y uint64) bool {
	*x = x.WrappingRemUint(y)
	return x.IsDividedByZero()
}

// CheckedRem returns x mod y, or false when y is zero.
func (x UInt[T, W]) CheckedRem(y UInt[T, W]) (UInt[T, W], bool) {
	if y.IsZero() {
		return UInt[T, W]{}, false
	}
	return x.WrappingRem(y), true
}

// CheckedRemUint is CheckedRem with a native operand.
func (x UInt[T, W]) CheckedRemUint(y uint64) (UInt[T, W], bool) {
	if y == 0 {
		return UInt[T, W]{}, false
	}
	return x.WrappingRemUint(y), true
}

// UncheckedRem returns x mod y and panics when y is zero.
func (x UInt[T, W]) UncheckedRem(y UInt[T, W]) UInt[T, W] {
	if y.IsZero() {
		panic("biguint: division by zero")
	}
	return x.WrappingRem(y)
}

// UncheckedRemUint is UncheckedRem with a native operand.
func (x UInt[T, W]) UncheckedRemUint(y uint64) UInt[T, W] {
	if y == 0 {
		panic("biguint: division by zero")
	}
	return x.WrappingRemUint(y)
}

// SaturatingRem is WrappingRem; a remainder never exceeds its operands.
func (x UInt[T, W]) SaturatingRem(y UInt[T, W]) UInt[T, W] { return x.WrappingRem(y) }
func (x UInt[T, W]) SaturatingRemUint(y uint64) UInt[T, W] { return x.WrappingRemUint(y) }

// IsMultipleOf reports whether y divides x. Only zero is a multiple of zero.
func (x UInt[T, W]) IsMultipleOf(y UInt[T, W]) bool {
	if y.IsZero() {
		return x.IsZero()
	}
	_, r := divmodVV(x.words(), y.words())
	return isZeroVec(r)
}

// IsMultipleOfUint is IsMultipleOf with a native operand.
func (x UInt[T, W]) IsMultipleOfUint(y uint64) bool {
	if y == 0 {
		return x.IsZero()
	}
	_, r := x.divmodUint(y)
	return r == 0
}

// NextMultipleOf returns the smallest multiple of y that is not less than x.
// A result beyond the width wraps and sets Overflow. It panics when y is zero.
func (x UInt[T, W]) NextMultipleOf(y UInt[T, W]) UInt[T, W] {
	if y.IsZero() {
		panic("biguint: next multiple of zero")
	}
	_, r := divmodVV(x.words(), y.words())
	if isZeroVec(r) {
		return x.result(x.words(), Overflow, 0)
	}
	gap, _ := y.subKernel(r, false)
	z, lost := x.addKernel(gap, false)
	return x.result(z, Overflow, flagIf(lost, Overflow))
}

// NextMultipleOfUint is NextMultipleOf with a native operand.
func (x UInt[T, W]) NextMultipleOfUint(y uint64) UInt[T, W] {
	if y == 0 {
		panic("biguint: next multiple of zero")
	}
	_, r := x.divmodUint(y)
	if r == 0 {
		return x.result(x.words(), Overflow, 0)
	}
	z, lost := x.addKernel(uintWords[T](y-r), false)
	return x.result(z, Overflow, flagIf(lost, Overflow))
}

// NextMultipleOfAssign is the in-place form of NextMultipleOf.
func (x *UInt[T, W]) NextMultipleOfAssign(y UInt[T, W]) { *x = x.NextMultipleOf(y) }
func (x *UInt[T, W]) NextMultipleOfAssignUint(y uint64) { *x = x.NextMultipleOfUint(y) }

// CheckedNextMultipleOf is NextMultipleOf that returns false instead of
// wrapping or panicking.
func (x UInt[T, W]) CheckedNextMultipleOf(y UInt[T, W]) (UInt[T, W], bool) {
	if y.IsZero() {
		return UInt[T, W]{}, false
	}
	r := x.NextMultipleOf(y)
	if r.IsOverflow() {
		return UInt[T, W]{}, false
	}
	return r, true
}

// CheckedNextMultipleOfUint is CheckedNextMultipleOf with a native operand.
func (x UInt[T, W]) CheckedNextMultipleOfUint(y uint64) (UInt[T, W], bool) {
	if y == 0 {
		return UInt[T, W]{}, false
	}
	r := x.NextMultipleOfUint(y)
	if r.IsOverflow() {
		return UInt[T, W]{}, false
	}
	return r, true
}

// Midpoint returns (x + y) / 2 rounded down without intermediate overflow.
func (x UInt[T, W]) Midpoint(y UInt[T, W]) UInt[T, W] {
	a, b := x.words(), y.words()
	n := len(a)
	and, xor := make([]T, n), make([]T, n)
	for i := range a {
		and[i] = a[i] & b[i]
		xor[i] = a[i] ^ b[i]
	}
	shrVU(xor, xor, 1)
	addVV(and, and, xor)
	return x.with(and)
}
