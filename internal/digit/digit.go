// Package digit defines the capability set a native unsigned integer type must
// offer to serve as a single word ("digit") of a fixed-width big integer:
// carrying add and subtract, widening multiply, wide divide-with-remainder,
// bit counting and the min/max constants.
//
// Every helper is generic over Digit and lowers to the 64-bit math/bits
// intrinsic of the same name. Narrower digits are widened to uint64, operated
// on, and split back, which is exact because the intermediate result of two
// 32-bit (or narrower) words always fits in 64 bits.
package digit

import "math/bits"

// Digit is the set of native unsigned integer types usable as words.
// Go has no native 128-bit integer, so uint64 is the widest digit.
type Digit interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Bits returns the width of T in bits.
func Bits[T Digit]() int {
	return bits.Len64(uint64(^T(0)))
}

// Bytes returns the width of T in bytes.
func Bytes[T Digit]() int {
	return Bits[T]() / 8
}

// Max returns the all-ones value of T.
func Max[T Digit]() T {
	return ^T(0)
}

// Add returns x + y + carry and the carry out. carry must be 0 or 1.
func Add[T Digit](x, y, carry T) (sum, carryOut T) {
	w := Bits[T]()
	if w == 64 {
		s, c := bits.Add64(uint64(x), uint64(y), uint64(carry))
		return T(s), T(c)
	}
	s := uint64(x) + uint64(y) + uint64(carry)
	return T(s), T(s >> uint(w))
}

// Sub returns x - y - borrow and the borrow out. borrow must be 0 or 1.
func Sub[T Digit](x, y, borrow T) (diff, borrowOut T) {
	if Bits[T]() == 64 {
		d, b := bits.Sub64(uint64(x), uint64(y), uint64(borrow))
		return T(d), T(b)
	}
	d := uint64(x) - uint64(y) - uint64(borrow)
	return T(d), T(d >> 63)
}

// Mul returns the double-width product of x and y as (hi, lo).
func Mul[T Digit](x, y T) (hi, lo T) {
	w := Bits[T]()
	if w == 64 {
		h, l := bits.Mul64(uint64(x), uint64(y))
		return T(h), T(l)
	}
	p := uint64(x) * uint64(y)
	return T(p >> uint(w)), T(p)
}

// MulAdd returns x*y + c as (hi, lo). The result never overflows two words.
func MulAdd[T Digit](x, y, c T) (hi, lo T) {
	w := Bits[T]()
	if w == 64 {
		h, l := bits.Mul64(uint64(x), uint64(y))
		var cc uint64
		l, cc = bits.Add64(l, uint64(c), 0)
		return T(h + cc), T(l)
	}
	p := uint64(x)*uint64(y) + uint64(c)
	return T(p >> uint(w)), T(p)
}

// Div returns the quotient and remainder of (hi, lo) divided by y.
// It panics if y is zero or if hi >= y, i.e. when the quotient would not fit
// in a single word.
func Div[T Digit](hi, lo, y T) (quo, rem T) {
	if y == 0 {
		panic("digit: division by zero")
	}
	if hi >= y {
		panic("digit: quotient overflow")
	}
	w := Bits[T]()
	if w == 64 {
		q, r := bits.Div64(uint64(hi), uint64(lo), uint64(y))
		return T(q), T(r)
	}
	n := uint64(hi)<<uint(w) | uint64(lo)
	return T(n / uint64(y)), T(n % uint64(y))
}

// LeadingZeros returns the number of leading zero bits in x.
func LeadingZeros[T Digit](x T) int {
	return bits.LeadingZeros64(uint64(x)) - (64 - Bits[T]())
}

// TrailingZeros returns the number of trailing zero bits in x; the width of T
// for x == 0.
func TrailingZeros[T Digit](x T) int {
	if x == 0 {
		return Bits[T]()
	}
	return bits.TrailingZeros64(uint64(x))
}

// OnesCount returns the number of one bits in x.
func OnesCount[T Digit](x T) int {
	return bits.OnesCount64(uint64(x))
}

// Len returns the minimum number of bits required to represent x.
func Len[T Digit](x T) int {
	return bits.Len64(uint64(x))
}

// Reverse returns x with its bits in reversed order.
func Reverse[T Digit](x T) T {
	return T(bits.Reverse64(uint64(x)) >> uint(64-Bits[T]()))
}

// ReverseBytes returns x with its bytes in reversed order.
func ReverseBytes[T Digit](x T) T {
	return T(bits.ReverseBytes64(uint64(x)) >> uint(64-Bits[T]()))
}
