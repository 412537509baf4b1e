package biguint

import "github.com/agbru/uintcalc/internal/digit"

// powWords returns base^exp truncated to n digits and whether the exact
// result needed more. Bits of exp are consumed from the top, so every
// intermediate power divides the final one and an intermediate overflow
// always implies a final overflow.
func powWords[T digit.Digit](base, exp []T, n int) ([]T, bool) {
	r := resize([]T{1}, n)
	w := digit.Bits[T]()
	lost := false
	for i := normLen(exp)*w - 1; i >= 0; i-- {
		p := mulVV(r, r)
		lost = lost || !isZeroVec(p[n:])
		r = p[:n:n]
		if exp[i/w]>>uint(i%w)&1 != 0 {
			p = mulVV(r, base)
			lost = lost || !isZeroVec(p[n:])
			r = p[:n:n]
		}
	}
	return r, lost
}

func (x UInt[T, W]) pow(exp []T) UInt[T, W] {
	z, lost := powWords(x.words(), exp, digitCount[W]())
	undefined := isZeroVec(exp) && x.IsZero()
	return x.result(z, powFlags, flagIf(lost, Overflow)|flagIf(undefined, Undefined))
}

// Pow returns x^exp modulo 2^bits, setting Overflow when the power was
// truncated. 0^0 is 1 with Undefined set.
func (x UInt[T, W]) Pow(exp UInt[T, W]) UInt[T, W] { return x.pow(exp.words()) }
func (x UInt[T, W]) PowUint(exp uint64) UInt[T, W] { return x.pow(uintWords[T](exp)) }
func (x *UInt[T, W]) PowAssign(exp UInt[T, W])     { *x = x.Pow(exp) }
func (x *UInt[T, W]) PowAssignUint(exp uint64)     { *x = x.PowUint(exp) }

// WrappingPow is Pow.
func (x UInt[T, W]) WrappingPow(exp UInt[T, W]) UInt[T, W] { return x.Pow(exp) }
func (x UInt[T, W]) WrappingPowUint(exp uint64) UInt[T, W] { return x.PowUint(exp) }

// OverflowingPow is Pow that also reports whether the power was truncated.
func (x UInt[T, W]) OverflowingPow(exp UInt[T, W]) (UInt[T, W], bool) {
	r := x.Pow(exp)
	return r, r.IsOverflow()
}

// OverflowingPowUint is OverflowingPow with a native operand.
func (x UInt[T, W]) OverflowingPowUint(exp uint64) (UInt[T, W], bool) {
	r := x.PowUint(exp)
	return r, r.IsOverflow()
}

// CheckedPow returns x^exp, or false when it does not fit or is 0^0.
func (x UInt[T, W]) CheckedPow(exp UInt[T, W]) (UInt[T, W], bool) {
	r := x.Pow(exp)
	if r.IsOverflow() || r.IsUndefined() {
		return UInt[T, W]{}, false
	}
	return r, true
}

// CheckedPowUint is CheckedPow with a native operand.
func (x UInt[T, W]) CheckedPowUint(exp uint64) (UInt[T, W], bool) {
	return x.CheckedPow(FromUint[T, W](exp))
}

// UncheckedPow returns x^exp and panics when the power does not fit.
func (x UInt[T, W]) UncheckedPow(exp UInt[T, W]) UInt[T, W] {
	r, ok := x.CheckedPow(exp)
	if !ok {
		panic("biguint: power overflow or 0^0")
	}
	return r
}

// UncheckedPowUint is UncheckedPow with a native operand.
func (x UInt[T, W]) UncheckedPowUint(exp uint64) UInt[T, W] {
	return x.UncheckedPow(FromUint[T, W](exp))
}

// SaturatingPow returns x^exp, or Max when it does not fit.
func (x UInt[T, W]) SaturatingPow(exp UInt[T, W]) UInt[T, W] {
	z, lost := powWords(x.words(), exp.words(), digitCount[W]())
	if lost {
		z = maxWords[T](digitCount[W]())
	}
	return x.with(z)
}

// SaturatingPowUint is SaturatingPow with a native operand.
func (x UInt[T, W]) SaturatingPowUint(exp uint64) UInt[T, W] {
	return x.SaturatingPow(FromUint[T, W](exp))
}

// ilog returns the largest e with base^e <= x, or false when x is zero or
// base <= 1.
func (x UInt[T, W]) ilog(base []T) (uint64, bool) {
	if x.IsZero() || normLen(base) == 0 || normLen(base) == 1 && base[0] == 1 {
		return 0, false
	}
	q := x.words()
	var e uint64
	for cmpVV(q, base) >= 0 {
		q, _ = divmodVV(q, base)
		e++
	}
	return e, true
}

func (x UInt[T, W]) logResult(e uint64, ok bool) UInt[T, W] {
	return x.result(resize(uintWords[T](e), digitCount[W]()), Undefined, flagIf(!ok, Undefined))
}

// Ilog returns the largest e with base^e <= x. When x is zero or base <= 1
// the result is zero with Undefined set.
func (x UInt[T, W]) Ilog(base UInt[T, W]) UInt[T, W] { return x.logResult(x.ilog(base.words())) }
func (x UInt[T, W]) IlogUint(base uint64) UInt[T, W] { return x.logResult(x.ilog(uintWords[T](base))) }

// Ilog2 returns the index of the highest set bit.
func (x UInt[T, W]) Ilog2() UInt[T, W] {
	bl := x.BitLen()
	return x.logResult(uint64(max(bl-1, 0)), bl > 0)
}

// Ilog10 returns the number of decimal digits of x minus one.
func (x UInt[T, W]) Ilog10() UInt[T, W] { return x.IlogUint(10) }

// IlogAssign is the in-place form of Ilog.
func (x *UInt[T, W]) IlogAssign(base UInt[T, W]) { *x = x.Ilog(base) }
func (x *UInt[T, W]) IlogAssignUint(base uint64) { *x = x.IlogUint(base) }

// CheckedIlog returns false where Ilog would set Undefined.
func (x UInt[T, W]) CheckedIlog(base UInt[T, W]) (UInt[T, W], bool) {
	return x.checkedLog(x.Ilog(base))
}

// CheckedIlogUint is CheckedIlog with a native operand.
func (x UInt[T, W]) CheckedIlogUint(base uint64) (UInt[T, W], bool) {
	return x.checkedLog(x.IlogUint(base))
}

// CheckedIlog2 and CheckedIlog10 return false when x is zero.
func (x UInt[T, W]) CheckedIlog2() (UInt[T, W], bool)  { return x.checkedLog(x.Ilog2()) }
func (x UInt[T, W]) CheckedIlog10() (UInt[T, W], bool) { return x.checkedLog(x.Ilog10()) }

func (x UInt[T, W]) checkedLog(r UInt[T, W]) (UInt[T, W], bool) {
	if r.IsUndefined() {
		return UInt[T, W]{}, false
	}
	return r, true
}

// UncheckedIlog returns Ilog(base) and panics where it would set Undefined.
func (x UInt[T, W]) UncheckedIlog(base UInt[T, W]) UInt[T, W] {
	return mustLog(x.CheckedIlog(base))
}

// UncheckedIlogUint is UncheckedIlog with a native operand.
func (x UInt[T, W]) UncheckedIlogUint(base uint64) UInt[T, W] {
	return mustLog(x.CheckedIlogUint(base))
}

// UncheckedIlog2 and UncheckedIlog10 panic when x is zero.
func (x UInt[T, W]) UncheckedIlog2() UInt[T, W]  { return mustLog(x.CheckedIlog2()) }
func (x UInt[T, W]) UncheckedIlog10() UInt[T, W] { return mustLog(x.CheckedIlog10()) }

func mustLog[T digit.Digit, W Width](r UInt[T, W], ok bool) UInt[T, W] {
	if !ok {
		panic("biguint: logarithm of zero or with base <= 1")
	}
	return r
}

// iroot returns the largest r with r^e <= x found by setting bits from the
// top, and false for e == 0.
func (x UInt[T, W]) iroot(e uint64) ([]T, bool) {
	n := digitCount[W]()
	switch {
	case e == 0:
		if x.IsZero() {
			return make([]T, n), false
		}
		return maxWords[T](n), false
	case x.IsZero() || e == 1:
		return resize(x.words(), n), true
	}

	bl := uint64(x.BitLen())
	w := uint64(digit.Bits[T]())
	exp := uintWords[T](e)
	xw := x.words()
	top := bl / e
	if bl%e != 0 {
		top++
	}
	r := make([]T, n)
	for i := int64(top) - 1; i >= 0; i-- {
		cand := resize(r, n)
		cand[uint64(i)/w] |= T(1) << (uint64(i) % w)
		p, lost := powWords(cand, exp, n)
		if !lost && cmpVV(p, xw) <= 0 {
			r = cand
		}
	}
	return r, true
}

func (x UInt[T, W]) rootResult(z []T, ok bool) UInt[T, W] {
	return x.result(z, Undefined, flagIf(!ok, Undefined))
}

// IrootUint returns the largest r with r^exp <= x. exp == 0 sets Undefined and
// returns Max for non-zero x and zero otherwise.
func (x UInt[T, W]) IrootUint(exp uint64) UInt[T, W] { return x.rootResult(x.iroot(exp)) }

// Iroot is IrootUint with a same-width exponent. Exponents beyond 64 bits
// exceed the width, so the root of any non-zero value is then 1.
func (x UInt[T, W]) Iroot(exp UInt[T, W]) UInt[T, W] {
	if exp.FitsUint64() {
		return x.IrootUint(exp.IntoUint64())
	}
	if x.IsZero() {
		return x.rootResult(make([]T, digitCount[W]()), true)
	}
	return x.rootResult(resize([]T{1}, digitCount[W]()), true)
}

// Isqrt returns the integer square root of x.
func (x UInt[T, W]) Isqrt() UInt[T, W] { return x.IrootUint(2) }

// IrootAssign is the in-place form of Iroot.
func (x *UInt[T, W]) IrootAssign(exp UInt[T, W]) { *x = x.Iroot(exp) }
func (x *UInt[T, W]) IrootAssignUint(exp uint64) { *x = x.IrootUint(exp) }
func (x *UInt[T, W]) IsqrtAssign()               { *x = x.Isqrt() }

// CheckedIroot returns false where Iroot would set Undefined.
func (x UInt[T, W]) CheckedIroot(exp UInt[T, W]) (UInt[T, W], bool) {
	return x.checkedLog(x.Iroot(exp))
}

// CheckedIrootUint is CheckedIroot with a native operand.
func (x UInt[T, W]) CheckedIrootUint(exp uint64) (UInt[T, W], bool) {
	return x.checkedLog(x.IrootUint(exp))
}

// UncheckedIrootUint returns IrootUint(exp) and panics when exp is zero.
func (x UInt[T, W]) UncheckedIrootUint(exp uint64) UInt[T, W] {
	r, ok := x.CheckedIrootUint(exp)
	if !ok {
		panic("biguint: zeroth root")
	}
	return r
}
