package biguint

import (
	"encoding/binary"

	"github.com/agbru/uintcalc/internal/digit"
)

var littleEndianHost = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

func (x UInt[T, W]) zip(y UInt[T, W], op func(a, b T) T) UInt[T, W] {
	a, b := x.words(), y.words()
	z := make([]T, len(a))
	for i := range z {
		z[i] = op(a[i], b[i])
	}
	return x.with(z)
}

// And returns the bitwise AND of x and y.
func (x UInt[T, W]) And(y UInt[T, W]) UInt[T, W] {
	return x.zip(y, func(a, b T) T { return a & b })
}

// Or returns the bitwise OR of x and y.
func (x UInt[T, W]) Or(y UInt[T, W]) UInt[T, W] {
	return x.zip(y, func(a, b T) T { return a | b })
}

// Xor returns the bitwise XOR of x and y.
func (x UInt[T, W]) Xor(y UInt[T, W]) UInt[T, W] {
	return x.zip(y, func(a, b T) T { return a ^ b })
}

// Flip returns the bitwise complement of x.
func (x UInt[T, W]) Flip() UInt[T, W] {
	a := x.words()
	z := make([]T, len(a))
	for i, d := range a {
		z[i] = ^d
	}
	return x.with(z)
}

// AndAssign is the in-place form of And.
func (x *UInt[T, W]) AndAssign(y UInt[T, W]) { *x = x.And(y) }
func (x *UInt[T, W]) OrAssign(y UInt[T, W])  { *x = x.Or(y) }
func (x *UInt[T, W]) XorAssign(y UInt[T, W]) { *x = x.Xor(y) }
func (x *UInt[T, W]) FlipAssign()            { *x = x.Flip() }

// shiftLeftWords returns x << s in len(x) digits and whether a one bit was
// shifted out.
func shiftLeftWords[T digit.Digit](x []T, s uint) ([]T, bool) {
	n := len(x)
	w := uint(digit.Bits[T]())
	z := make([]T, n)
	if s >= uint(n)*w {
		return z, !isZeroVec(x)
	}
	d, b := int(s/w), s%w
	lost := !isZeroVec(x[n-d:])
	c := shlVU(z[d:], x[:n-d], b)
	return z, lost || c != 0
}

// shiftRightWords returns x >> s in len(x) digits and whether a one bit was
// shifted out.
func shiftRightWords[T digit.Digit](x []T, s uint) ([]T, bool) {
	n := len(x)
	w := uint(digit.Bits[T]())
	z := make([]T, n)
	if s >= uint(n)*w {
		return z, !isZeroVec(x)
	}
	d, b := int(s/w), s%w
	lost := !isZeroVec(x[:d])
	c := shrVU(z[:n-d], x[d:], b)
	return z, lost || c != 0
}

// ShiftLeft returns x << n. LeftCarry reports whether a one bit was shifted
// out; shifting by the width or more clears the value.
func (x UInt[T, W]) ShiftLeft(n uint) UInt[T, W] {
	z, lost := shiftLeftWords(x.words(), n)
	return x.result(z, LeftCarry, flagIf(lost, LeftCarry))
}

// ShiftRight returns x >> n. RightCarry reports whether a one bit was shifted
// out.
func (x UInt[T, W]) ShiftRight(n uint) UInt[T, W] {
	z, lost := shiftRightWords(x.words(), n)
	return x.result(z, RightCarry, flagIf(lost, RightCarry))
}

// ShiftLeftAssign is the in-place form of ShiftLeft.
func (x *UInt[T, W]) ShiftLeftAssign(n uint)  { *x = x.ShiftLeft(n) }
func (x *UInt[T, W]) ShiftRightAssign(n uint) { *x = x.ShiftRight(n) }

// CheckedShiftLeft returns false when n is not less than the width.
func (x UInt[T, W]) CheckedShiftLeft(n uint) (UInt[T, W], bool) {
	if n >= uint(x.SizeInBits()) {
		return UInt[T, W]{}, false
	}
	return x.ShiftLeft(n), true
}

// CheckedShiftRight returns false when n is not less than the width.
func (x UInt[T, W]) CheckedShiftRight(n uint) (UInt[T, W], bool) {
	if n >= uint(x.SizeInBits()) {
		return UInt[T, W]{}, false
	}
	return x.ShiftRight(n), true
}

// UncheckedShiftLeft panics when n is not less than the width.
func (x UInt[T, W]) UncheckedShiftLeft(n uint) UInt[T, W] {
	r, ok := x.CheckedShiftLeft(n)
	if !ok {
		panic("biguint: shift amount out of range")
	}
	return r
}

// UncheckedShiftRight panics when n is not less than the width.
func (x UInt[T, W]) UncheckedShiftRight(n uint) UInt[T, W] {
	r, ok := x.CheckedShiftRight(n)
	if !ok {
		panic("biguint: shift amount out of range")
	}
	return r
}

// RotateLeft rotates x left by n modulo the width. It never touches flags.
func (x UInt[T, W]) RotateLeft(n uint) UInt[T, W] {
	bits := uint(x.SizeInBits())
	n %= bits
	a := x.words()
	if n == 0 {
		return x.with(resize(a, len(a)))
	}
	hi, _ := shiftLeftWords(a, n)
	lo, _ := shiftRightWords(a, bits-n)
	for i := range hi {
		hi[i] |= lo[i]
	}
	return x.with(hi)
}

// RotateRight rotates x right by n modulo the width. It never touches flags.
func (x UInt[T, W]) RotateRight(n uint) UInt[T, W] {
	bits := uint(x.SizeInBits())
	return x.RotateLeft(bits - n%bits)
}

// RotateLeftAssign is the in-place form of RotateLeft.
func (x *UInt[T, W]) RotateLeftAssign(n uint)  { *x = x.RotateLeft(n) }
func (x *UInt[T, W]) RotateRightAssign(n uint) { *x = x.RotateRight(n) }

// ReverseBits reverses the order of all bits of x.
func (x UInt[T, W]) ReverseBits() UInt[T, W] {
	a := x.words()
	n := len(a)
	z := make([]T, n)
	for i, d := range a {
		z[n-1-i] = digit.Reverse(d)
	}
	return x.with(z)
}

// SwapBytes reverses the order of all bytes of x.
func (x UInt[T, W]) SwapBytes() UInt[T, W] {
	a := x.words()
	n := len(a)
	z := make([]T, n)
	for i, d := range a {
		z[n-1-i] = digit.ReverseBytes(d)
	}
	return x.with(z)
}

// ReverseBitsAssign is the in-place form of ReverseBits.
func (x *UInt[T, W]) ReverseBitsAssign() { *x = x.ReverseBits() }
func (x *UInt[T, W]) SwapBytesAssign()   { *x = x.SwapBytes() }

// ToBE converts x to big-endian byte order; a no-op on big-endian hosts.
func (x UInt[T, W]) ToBE() UInt[T, W] {
	if littleEndianHost {
		return x.SwapBytes()
	}
	return x
}

// ToLE converts x to little-endian byte order; a no-op on little-endian
// hosts.
func (x UInt[T, W]) ToLE() UInt[T, W] {
	if littleEndianHost {
		return x
	}
	return x.SwapBytes()
}

// FromBE converts a big-endian value to host byte order.
func FromBE[T digit.Digit, W Width](x UInt[T, W]) UInt[T, W] { return x.ToBE() }

// FromLE converts a little-endian value to host byte order.
func FromLE[T digit.Digit, W Width](x UInt[T, W]) UInt[T, W] { return x.ToLE() }
