package biguint

// Gcd returns the greatest common divisor of x and y. Gcd(0, 0) is 0.
func (x UInt[T, W]) Gcd(y UInt[T, W]) UInt[T, W] {
	a, b := x.words(), y.words()
	for !isZeroVec(b) {
		_, r := divmodVV(a, b)
		a, b = b, r
	}
	return x.with(resize(a, digitCount[W]()))
}

// GcdUint is Gcd with a native operand.
func (x UInt[T, W]) GcdUint(y uint64) UInt[T, W] {
	return x.Gcd(FromUint[T, W](y))
}

// GcdAssign is the in-place form of Gcd.
func (x *UInt[T, W]) GcdAssign(y UInt[T, W]) { *x = x.Gcd(y) }

// Lcm returns the least common multiple of x and y, setting Overflow when it
// does not fit. The Lcm of zero and anything is zero.
func (x UInt[T, W]) Lcm(y UInt[T, W]) UInt[T, W] {
	if x.IsZero() || y.IsZero() {
		return x.result(make([]T, digitCount[W]()), Overflow, 0)
	}
	q, _ := divmodVV(x.words(), x.Gcd(y).words())
	z, lost := x.with(q).mulKernel(y.words())
	return x.result(z, Overflow, flagIf(lost, Overflow))
}

// LcmUint is Lcm with a native operand.
func (x UInt[T, W]) LcmUint(y uint64) UInt[T, W] {
	return x.Lcm(FromUint[T, W](y))
}

// LcmAssign is the in-place form of Lcm.
func (x *UInt[T, W]) LcmAssign(y UInt[T, W]) { *x = x.Lcm(y) }
