package biguint

import (
	"math/big"

	"github.com/agbru/uintcalc/internal/digit"
)

// ToLEBytes returns the SizeInBytes bytes of x, least significant first.
func (x UInt[T, W]) ToLEBytes() []byte {
	nb := digit.Bytes[T]()
	a := x.words()
	b := make([]byte, len(a)*nb)
	for i, d := range a {
		v := uint64(d)
		for j := 0; j < nb; j++ {
			b[i*nb+j] = byte(v)
			v >>= 8
		}
	}
	return b
}

// ToBEBytes returns the SizeInBytes bytes of x, most significant first.
func (x UInt[T, W]) ToBEBytes() []byte {
	b := x.ToLEBytes()
	reverseBytes(b)
	return b
}

// FromLEBytes reads a little-endian byte string. Short input is
// zero-extended; long input keeps its least significant bytes.
func FromLEBytes[T digit.Digit, W Width](b []byte) UInt[T, W] {
	n := digitCount[W]()
	nb := digit.Bytes[T]()
	z := make([]T, n)
	for i := 0; i < len(b) && i < n*nb; i++ {
		z[i/nb] |= T(b[i]) << uint(8*(i%nb))
	}
	return UInt[T, W]{digits: z}
}

// FromBEBytes reads a big-endian byte string. Short input is zero-extended;
// long input keeps its trailing, least significant bytes.
func FromBEBytes[T digit.Digit, W Width](b []byte) UInt[T, W] {
	le := append([]byte(nil), b...)
	reverseBytes(le)
	return FromLEBytes[T, W](le)
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// FromBigInt converts v. ok is false for nil or negative v, and for values
// that do not fit; the latter are truncated to the width.
func FromBigInt[T digit.Digit, W Width](v *big.Int) (UInt[T, W], bool) {
	if v == nil || v.Sign() < 0 {
		return Zero[T, W](), false
	}
	x := FromBEBytes[T, W](v.Bytes())
	return x, v.BitLen() <= x.SizeInBits()
}

// ToBigInt returns x as a new big.Int.
func (x UInt[T, W]) ToBigInt() *big.Int {
	return new(big.Int).SetBytes(x.ToBEBytes())
}

// IntoUint64 returns the low 64 bits of x.
func (x UInt[T, W]) IntoUint64() uint64 { return wordsToUint64(x.words()) }

// IntoUint32 and the forms below truncate x to a narrower native type.
func (x UInt[T, W]) IntoUint32() uint32 { return uint32(x.IntoUint64()) }
func (x UInt[T, W]) IntoUint16() uint16 { return uint16(x.IntoUint64()) }
func (x UInt[T, W]) IntoUint8() uint8   { return uint8(x.IntoUint64()) }
func (x UInt[T, W]) IntoUint() uint     { return uint(x.IntoUint64()) }

// FitsUint64 reports whether IntoUint64 is lossless.
func (x UInt[T, W]) FitsUint64() bool { return x.BitLen() <= 64 }
