package biguint

import "github.com/agbru/uintcalc/internal/digit"

// reduce returns x mod m as len(m) digits. m must be non-zero.
func reduce[T digit.Digit](x, m []T) []T {
	_, r := divmodVV(x, m)
	return r
}

// modulusZero is the result of every modular operation with a zero modulus.
func (x UInt[T, W]) modulusZero() UInt[T, W] {
	return x.result(maxWords[T](digitCount[W]()), modularFlags, modularFlags)
}

func (x UInt[T, W]) modAdd(y []T, m UInt[T, W]) UInt[T, W] {
	if m.IsZero() {
		return x.modulusZero()
	}
	mw := m.words()
	a, b := reduce(x.words(), mw), reduce(y, mw)
	if c := addVV(a, a, b); c != 0 || cmpVV(a, mw) >= 0 {
		subVV(a, a, mw)
	}
	return x.result(a, modularFlags, 0)
}

// ModularAdd returns (x + y) mod m computed without truncation. A zero modulus
// returns Max and sets DividedByZero, Infinity and Undefined.
func (x UInt[T, W]) ModularAdd(y, m UInt[T, W]) UInt[T, W] { return x.modAdd(y.words(), m) }

// ModularAddUint is ModularAdd with a native addend.
func (x UInt[T, W]) ModularAddUint(y uint64, m UInt[T, W]) UInt[T, W] {
	return x.modAdd(uintWords[T](y), m)
}

// ModularAddAssign is the in-place form of ModularAdd.
func (x *UInt[T, W]) ModularAddAssign(y, m UInt[T, W]) { *x = x.ModularAdd(y, m) }
func (x *UInt[T, W]) ModularAddAssignUint(y uint64, m UInt[T, W]) {
	*x = x.ModularAddUint(y, m)
}

func (x UInt[T, W]) modSub(y []T, m UInt[T, W]) UInt[T, W] {
	if m.IsZero() {
		return x.modulusZero()
	}
	mw := m.words()
	a, b := reduce(x.words(), mw), reduce(y, mw)
	if borrow := subVV(a, a, b); borrow != 0 {
		addVV(a, a, mw)
	}
	return x.result(a, modularFlags, 0)
}

// ModularSub returns (x - y) mod m as a value in [0, m).
func (x UInt[T, W]) ModularSub(y, m UInt[T, W]) UInt[T, W] { return x.modSub(y.words(), m) }

// ModularSubUint is ModularSub with a native operand.
func (x UInt[T, W]) ModularSubUint(y uint64, m UInt[T, W]) UInt[T, W] {
	return x.modSub(uintWords[T](y), m)
}

// ModularSubAssign is the in-place form of ModularSub.
func (x *UInt[T, W]) ModularSubAssign(y, m UInt[T, W]) { *x = x.ModularSub(y, m) }
func (x *UInt[T, W]) ModularSubAssignUint(y uint64, m UInt[T, W]) {
	*x = x.ModularSubUint(y, m)
}

func (x UInt[T, W]) modMul(y []T, m UInt[T, W]) UInt[T, W] {
	if m.IsZero() {
		return x.modulusZero()
	}
	mw := m.words()
	a, b := reduce(x.words(), mw), reduce(y, mw)
	return x.result(reduce(mulVV(a, b), mw), modularFlags, 0)
}

// ModularMul returns (x * y) mod m. The double-width product is reduced by
// long division, so nothing is truncated.
func (x UInt[T, W]) ModularMul(y, m UInt[T, W]) UInt[T, W] { return x.modMul(y.words(), m) }

// ModularMulUint is ModularMul with a native operand.
func (x UInt[T, W]) ModularMulUint(y uint64, m UInt[T, W]) UInt[T, W] {
	return x.modMul(uintWords[T](y), m)
}

// ModularMulAssign is the in-place form of ModularMul.
func (x *UInt[T, W]) ModularMulAssign(y, m UInt[T, W]) { *x = x.ModularMul(y, m) }
func (x *UInt[T, W]) ModularMulAssignUint(y uint64, m UInt[T, W]) {
	*x = x.ModularMulUint(y, m)
}

func (x UInt[T, W]) modDiv(y []T, m UInt[T, W]) UInt[T, W] {
	if m.IsZero() {
		return x.modulusZero()
	}
	mw := m.words()
	a, b := reduce(x.words(), mw), reduce(y, mw)
	if isZeroVec(b) {
		return x.result(maxWords[T](digitCount[W]()), modularFlags|Overflow,
			Overflow|Infinity|DividedByZero|flagIf(isZeroVec(a), Undefined))
	}
	q, _ := divmodVV(a, b)
	return x.result(q, modularFlags|Overflow, 0)
}

// ModularDiv divides the residue of x by the residue of y, both taken modulo
// m. A zero divisor residue behaves like a division by zero.
func (x UInt[T, W]) ModularDiv(y, m UInt[T, W]) UInt[T, W] { return x.modDiv(y.words(), m) }

// ModularDivUint is ModularDiv with a native operand.
func (x UInt[T, W]) ModularDivUint(y uint64, m UInt[T, W]) UInt[T, W] {
	return x.modDiv(uintWords[T](y), m)
}

// ModularDivAssign is the in-place form of ModularDiv.
func (x *UInt[T, W]) ModularDivAssign(y, m UInt[T, W]) { *x = x.ModularDiv(y, m) }
func (x *UInt[T, W]) ModularDivAssignUint(y uint64, m UInt[T, W]) {
	*x = x.ModularDivUint(y, m)
}

func (x UInt[T, W]) modRem(y []T, m UInt[T, W]) UInt[T, W] {
	if m.IsZero() {
		return x.modulusZero()
	}
	mw := m.words()
	a, b := reduce(x.words(), mw), reduce(y, mw)
	if isZeroVec(b) {
		return x.result(make([]T, digitCount[W]()), modularFlags,
			DividedByZero|flagIf(isZeroVec(a), Undefined))
	}
	_, r := divmodVV(a, b)
	return x.result(r, modularFlags, 0)
}

// ModularRem returns the residue of x modulo the residue of y, both taken
// modulo m.
func (x UInt[T, W]) ModularRem(y, m UInt[T, W]) UInt[T, W] { return x.modRem(y.words(), m) }

// ModularRemUint is ModularRem with a native operand.
func (x UInt[T, W]) ModularRemUint(y uint64, m UInt[T, W]) UInt[T, W] {
	return x.modRem(uintWords[T](y), m)
}

// ModularRemAssign is the in-place form of ModularRem.
func (x *UInt[T, W]) ModularRemAssign(y, m UInt[T, W]) { *x = x.ModularRem(y, m) }
func (x *UInt[T, W]) ModularRemAssignUint(y uint64, m UInt[T, W]) {
	*x = x.ModularRemUint(y, m)
}

// modPow computes base^exp mod m by left-to-right square-and-multiply with a
// reduction after every product. exp is little-endian.
func (x UInt[T, W]) modPow(exp []T, m UInt[T, W]) UInt[T, W] {
	if m.IsZero() {
		return x.modulusZero()
	}
	mw := m.words()
	base := reduce(x.words(), mw)
	one := resize([]T{1}, len(mw))
	r := reduce(one, mw)
	w := digit.Bits[T]()
	for i := normLen(exp)*w - 1; i >= 0; i-- {
		r = reduce(mulVV(r, r), mw)
		if exp[i/w]>>uint(i%w)&1 != 0 {
			r = reduce(mulVV(r, base), mw)
		}
	}
	undefined := isZeroVec(exp) && isZeroVec(x.words())
	return x.result(r, modularFlags, flagIf(undefined, Undefined))
}

// ModularPow returns x^exp mod m. 0^0 is 1 with Undefined set.
func (x UInt[T, W]) ModularPow(exp, m UInt[T, W]) UInt[T, W] { return x.modPow(exp.words(), m) }

// ModularPowUint is ModularPow with a native operand.
func (x UInt[T, W]) ModularPowUint(exp uint64, m UInt[T, W]) UInt[T, W] {
	return x.modPow(uintWords[T](exp), m)
}

// ModularPowAssign is the in-place form of ModularPow.
func (x *UInt[T, W]) ModularPowAssign(exp, m UInt[T, W]) { *x = x.ModularPow(exp, m) }
func (x *UInt[T, W]) ModularPowAssignUint(exp uint64, m UInt[T, W]) {
	*x = x.ModularPowUint(exp, m)
}
