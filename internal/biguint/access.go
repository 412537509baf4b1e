package biguint

import "github.com/agbru/uintcalc/internal/digit"

// SizeInBits returns the width of x in bits.
func (x UInt[T, W]) SizeInBits() int { return digitCount[W]() * digit.Bits[T]() }

// SizeInBytes returns the width of x in bytes.
func (x UInt[T, W]) SizeInBytes() int { return digitCount[W]() * digit.Bytes[T]() }

// Length returns the number of digits.
func (x UInt[T, W]) Length() int { return digitCount[W]() }

// Digits returns a copy of the little-endian digits of x.
func (x UInt[T, W]) Digits() []T { return resize(x.words(), digitCount[W]()) }

// GetDigit returns digit i, or false when i is out of range.
func (x UInt[T, W]) GetDigit(i int) (T, bool) {
	if i < 0 || i >= digitCount[W]() {
		return 0, false
	}
	return x.words()[i], true
}

// GetDigitUnchecked returns digit i and panics when it is out of range.
func (x UInt[T, W]) GetDigitUnchecked(i int) T {
	return x.words()[i]
}

// SetDigit replaces digit i and reports whether i was in range.
func (x *UInt[T, W]) SetDigit(i int, v T) bool {
	if i < 0 || i >= digitCount[W]() {
		return false
	}
	z := resize(x.words(), digitCount[W]())
	z[i] = v
	x.digits = z
	return true
}

// SetDigitUnchecked replaces digit i and panics when it is out of range.
func (x *UInt[T, W]) SetDigitUnchecked(i int, v T) {
	if !x.SetDigit(i, v) {
		panic("biguint: digit index out of range")
	}
}

func (x UInt[T, W]) bitPos(pos uint) (int, uint) {
	w := uint(digit.Bits[T]())
	return int(pos / w), pos % w
}

// IsBitSet reports whether bit pos is one. ok is false when pos is outside the
// width. Bit 0 is the least significant bit.
func (x UInt[T, W]) IsBitSet(pos uint) (set, ok bool) {
	if pos >= uint(x.SizeInBits()) {
		return false, false
	}
	return x.IsBitSetUnchecked(pos), true
}

// IsBitSetUnchecked is IsBitSet for a pos known to be in range.
func (x UInt[T, W]) IsBitSetUnchecked(pos uint) bool {
	i, b := x.bitPos(pos)
	return x.words()[i]>>b&1 != 0
}

// SetBit sets bit pos to one and reports whether pos was in range.
func (x *UInt[T, W]) SetBit(pos uint) bool {
	if pos >= uint(x.SizeInBits()) {
		return false
	}
	i, b := x.bitPos(pos)
	z := resize(x.words(), digitCount[W]())
	z[i] |= T(1) << b
	x.digits = z
	return true
}

// ClearBit sets bit pos to zero and reports whether pos was in range.
func (x *UInt[T, W]) ClearBit(pos uint) bool {
	if pos >= uint(x.SizeInBits()) {
		return false
	}
	i, b := x.bitPos(pos)
	z := resize(x.words(), digitCount[W]())
	z[i] &^= T(1) << b
	x.digits = z
	return true
}

// CountOnes returns the number of set bits.
func (x UInt[T, W]) CountOnes() int {
	n := 0
	for _, d := range x.words() {
		n += digit.OnesCount(d)
	}
	return n
}

// CountZeros returns the number of clear bits.
func (x UInt[T, W]) CountZeros() int { return x.SizeInBits() - x.CountOnes() }

// LeadingZeros counts zero bits from the most significant end.
func (x UInt[T, W]) LeadingZeros() int {
	z := x.words()
	n := 0
	for i := len(z) - 1; i >= 0; i-- {
		lz := digit.LeadingZeros(z[i])
		n += lz
		if lz < digit.Bits[T]() {
			break
		}
	}
	return n
}

// LeadingOnes counts one bits from the most significant end.
func (x UInt[T, W]) LeadingOnes() int { return x.Flip().LeadingZeros() }

// TrailingZeros counts zero bits from the least significant end.
func (x UInt[T, W]) TrailingZeros() int {
	n := 0
	for _, d := range x.words() {
		tz := digit.TrailingZeros(d)
		n += tz
		if tz < digit.Bits[T]() {
			break
		}
	}
	return n
}

// TrailingOnes counts one bits from the least significant end.
func (x UInt[T, W]) TrailingOnes() int { return x.Flip().TrailingZeros() }

func (x UInt[T, W]) countDigits(fromTop bool, v T) int {
	z := x.words()
	n := 0
	for i := range z {
		j := i
		if fromTop {
			j = len(z) - 1 - i
		}
		if z[j] != v {
			break
		}
		n++
	}
	return n
}

// LeadingMaxDigits and the three forms below count whole digits that are
// all ones or all zeros, from the top or from the bottom.
func (x UInt[T, W]) LeadingMaxDigits() int   { return x.countDigits(true, digit.Max[T]()) }
func (x UInt[T, W]) LeadingZeroDigits() int  { return x.countDigits(true, 0) }
func (x UInt[T, W]) TrailingMaxDigits() int  { return x.countDigits(false, digit.Max[T]()) }
func (x UInt[T, W]) TrailingZeroDigits() int { return x.countDigits(false, 0) }

// BitLen returns the number of bits up to and including the highest set bit.
func (x UInt[T, W]) BitLen() int { return x.SizeInBits() - x.LeadingZeros() }

// GetUpperBits keeps the n bits ending at the highest set bit of x in place
// and clears the rest. When n >= BitLen the whole value is returned.
func (x UInt[T, W]) GetUpperBits(n uint) UInt[T, W] {
	bl := uint(x.BitLen())
	if n >= bl {
		return x
	}
	return x.And(Submax[T, W](bl - n).Flip())
}

// GetLowerBits returns x with every bit at position n and above cleared.
func (x UInt[T, W]) GetLowerBits(n uint) UInt[T, W] {
	if n >= uint(x.BitLen()) {
		return x
	}
	return x.And(Submax[T, W](n))
}

// IsZero reports whether x is 0. Flags are ignored.
func (x UInt[T, W]) IsZero() bool { return isZeroVec(x.digits) }

// IsOne reports whether x is 1.
func (x UInt[T, W]) IsOne() bool {
	z := x.words()
	return z[0] == 1 && isZeroVec(z[1:])
}

// IsMax reports whether every bit of x is set.
func (x UInt[T, W]) IsMax() bool {
	return x.LeadingMaxDigits() == digitCount[W]()
}

// IsOdd and IsEven test the lowest bit.
func (x UInt[T, W]) IsOdd() bool  { return x.words()[0]&1 != 0 }
func (x UInt[T, W]) IsEven() bool { return !x.IsOdd() }
