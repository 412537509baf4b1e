// Package biguint implements fixed-width unsigned integers wider than a machine
// word. A UInt[T, W] holds W.Digits() little-endian words of the native
// unsigned type T together with a Flags byte.
//
// Results never grow beyond the width: where a mathematical result does not
// fit, the operation truncates and reports it according to its policy.
//
//   - Wrapping* truncates and records the condition in Flags.
//   - Overflowing* does the same and also returns it as a bool.
//   - Checked* returns ok == false instead of a truncated value.
//   - Unchecked* panics.
//   - Saturating* clamps to zero or Max.
//   - Modular* reduces modulo an explicit modulus.
//
// Values are immutable: every operation allocates a fresh digit slice, so a
// plain assignment copies a UInt. The zero value is a valid zero. Methods
// with an Assign suffix replace the receiver in place.
package biguint

import "github.com/agbru/uintcalc/internal/digit"

// UInt is a fixed-width unsigned integer of W.Digits() words of type T.
type UInt[T digit.Digit, W Width] struct {
	digits []T // len 0 (zero value) or exactly W.Digits()
	flags  Flags
}

// words returns the digits of x with length N. The returned slice may alias
// x and must not be written.
func (x UInt[T, W]) words() []T {
	n := digitCount[W]()
	if len(x.digits) == n {
		return x.digits
	}
	return make([]T, n)
}

// with returns a value holding z and the flags of x.
func (x UInt[T, W]) with(z []T) UInt[T, W] {
	return UInt[T, W]{digits: z, flags: x.flags}
}

// result returns a value holding z whose flags are those of x with the bits in
// mask replaced by set.
func (x UInt[T, W]) result(z []T, mask, set Flags) UInt[T, W] {
	return UInt[T, W]{digits: z, flags: x.flags&^mask | set&mask}
}

func flagIf(cond bool, f Flags) Flags {
	if cond {
		return f
	}
	return 0
}

func maxWords[T digit.Digit](n int) []T {
	z := make([]T, n)
	for i := range z {
		z[i] = digit.Max[T]()
	}
	return z
}

// uintWords splits v into ceil(64/bits(T)) little-endian digits.
func uintWords[T digit.Digit](v uint64) []T {
	w := digit.Bits[T]()
	z := make([]T, (64+w-1)/w)
	for i := range z {
		z[i] = T(v)
		if w < 64 {
			v >>= uint(w)
		}
	}
	return z
}

// resize returns a copy of x zero-extended or truncated to n digits.
func resize[T digit.Digit](x []T, n int) []T {
	z := make([]T, n)
	copy(z, x)
	return z
}

func isZeroVec[T digit.Digit](x []T) bool {
	for _, d := range x {
		if d != 0 {
			return false
		}
	}
	return true
}

// Zero returns 0.
func Zero[T digit.Digit, W Width]() UInt[T, W] {
	return UInt[T, W]{digits: make([]T, digitCount[W]())}
}

// One returns 1.
func One[T digit.Digit, W Width]() UInt[T, W] {
	z := make([]T, digitCount[W]())
	z[0] = 1
	return UInt[T, W]{digits: z}
}

// Max returns the value with every bit set.
func Max[T digit.Digit, W Width]() UInt[T, W] {
	return UInt[T, W]{digits: maxWords[T](digitCount[W]())}
}

// Submax returns the value whose lowest bits bits are set. bits larger than
// the width yield Max.
func Submax[T digit.Digit, W Width](bits uint) UInt[T, W] {
	n := digitCount[W]()
	w := uint(digit.Bits[T]())
	z := make([]T, n)
	for i := range z {
		switch {
		case bits >= w:
			z[i] = digit.Max[T]()
			bits -= w
		case bits > 0:
			z[i] = digit.Max[T]() >> (w - bits)
			bits = 0
		}
	}
	return UInt[T, W]{digits: z}
}

// Halfmax returns Submax of half the width.
func Halfmax[T digit.Digit, W Width]() UInt[T, W] {
	return Submax[T, W](uint(digitCount[W]() * digit.Bits[T]() / 2))
}

// FromArray copies a into a new value. Short input is zero-extended, long
// input keeps its least significant digits.
func FromArray[T digit.Digit, W Width](a []T) UInt[T, W] {
	return UInt[T, W]{digits: resize(a, digitCount[W]())}
}

// FromUint returns v as a UInt. Bits of v beyond the width are dropped.
func FromUint[T digit.Digit, W Width](v uint64) UInt[T, W] {
	return UInt[T, W]{digits: resize(uintWords[T](v), digitCount[W]())}
}

// FromOther converts between widths and digit types. The value is truncated to
// the target width; flags are not carried over.
func FromOther[T digit.Digit, W Width, T2 digit.Digit, W2 Width](x UInt[T2, W2]) UInt[T, W] {
	n := digitCount[W]()
	w, w2 := digit.Bits[T](), digit.Bits[T2]()
	src := x.words()
	if w == w2 {
		z := make([]T, n)
		for i := 0; i < n && i < len(src); i++ {
			z[i] = T(src[i])
		}
		return UInt[T, W]{digits: z}
	}
	return FromLEBytes[T, W](x.ToLEBytes())
}

// GenerateCheckBits returns the value with only bit pos set, or false when pos
// is outside the width.
func GenerateCheckBits[T digit.Digit, W Width](pos uint) (UInt[T, W], bool) {
	n := digitCount[W]()
	w := uint(digit.Bits[T]())
	if pos >= uint(n)*w {
		return UInt[T, W]{}, false
	}
	z := make([]T, n)
	z[pos/w] = T(1) << (pos % w)
	return UInt[T, W]{digits: z}, true
}

// GenerateCheckBitsUnchecked is GenerateCheckBits for a pos known to be in
// range. It panics otherwise.
func GenerateCheckBitsUnchecked[T digit.Digit, W Width](pos uint) UInt[T, W] {
	x, ok := GenerateCheckBits[T, W](pos)
	if !ok {
		panic("biguint: bit position out of range")
	}
	return x
}
