package biguint

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/agbru/uintcalc/internal/digit"
)

//go:generate mockgen -destination=mocks/mock_random.go -package=mocks github.com/agbru/uintcalc/internal/biguint RandomSource

// RandomSource supplies random bytes. Any io.Reader qualifies.
type RandomSource interface {
	Read(p []byte) (n int, err error)
}

// fastSource reads from the math/rand/v2 global generator, which is safe for
// concurrent use and seeded per process.
type fastSource struct{}

// Read fills p with pseudo-random bytes and never fails.
func (fastSource) Read(p []byte) (int, error) {
	for i := 0; i < len(p); i += 8 {
		v := rand.Uint64()
		for j := i; j < len(p) && j < i+8; j++ {
			p[j] = byte(v)
			v >>= 8
		}
	}
	return len(p), nil
}

var (
	// FastSource backs the Any* functions. It is not suitable for secrets.
	FastSource RandomSource = fastSource{}
	// SecureSource backs the Random* functions.
	SecureSource RandomSource = crand.Reader
)

func must[T digit.Digit, W Width](x UInt[T, W], err error) UInt[T, W] {
	if err != nil {
		panic(fmt.Sprintf("biguint: random source failed: %v", err))
	}
	return x
}

// AnyFrom returns a uniformly distributed value read from src.
func AnyFrom[T digit.Digit, W Width](src RandomSource) (UInt[T, W], error) {
	b := make([]byte, digitCount[W]()*digit.Bytes[T]())
	if _, err := io.ReadFull(src, b); err != nil {
		return UInt[T, W]{}, err
	}
	return FromLEBytes[T, W](b), nil
}

// AnyOddFrom returns a random odd value.
func AnyOddFrom[T digit.Digit, W Width](src RandomSource) (UInt[T, W], error) {
	x, err := AnyFrom[T, W](src)
	if err != nil {
		return x, err
	}
	x.SetBit(0)
	return x, nil
}

// AnyWithMSBSetFrom returns a random value with the top bit set.
func AnyWithMSBSetFrom[T digit.Digit, W Width](src RandomSource) (UInt[T, W], error) {
	x, err := AnyFrom[T, W](src)
	if err != nil {
		return x, err
	}
	x.SetBit(uint(x.SizeInBits() - 1))
	return x, nil
}

// AnyOddWithMSBSetFrom returns a random odd value with the top bit set.
func AnyOddWithMSBSetFrom[T digit.Digit, W Width](src RandomSource) (UInt[T, W], error) {
	x, err := AnyWithMSBSetFrom[T, W](src)
	if err != nil {
		return x, err
	}
	x.SetBit(0)
	return x, nil
}

// AnyLessThanFrom returns a uniformly distributed value in [0, bound). Samples
// are masked to the bit length of bound and rejected until one falls below
// it, so at most half of the draws are wasted on average. It panics when
// bound is zero.
func AnyLessThanFrom[T digit.Digit, W Width](src RandomSource, bound UInt[T, W]) (UInt[T, W], error) {
	if bound.IsZero() {
		panic("biguint: random bound is zero")
	}
	mask := Submax[T, W](uint(bound.BitLen()))
	for {
		x, err := AnyFrom[T, W](src)
		if err != nil {
			return x, err
		}
		if x = x.And(mask); x.Lt(bound) {
			return x, nil
		}
	}
}

// AnyOddLessThanFrom returns a random odd value in [1, bound). It panics when
// bound <= 1.
func AnyOddLessThanFrom[T digit.Digit, W Width](src RandomSource, bound UInt[T, W]) (UInt[T, W], error) {
	if bound.LeUint(1) {
		panic("biguint: no odd value below the bound")
	}
	for {
		x, err := AnyLessThanFrom(src, bound)
		if err != nil {
			return x, err
		}
		x.SetBit(0)
		if x.Lt(bound) {
			return x, nil
		}
	}
}

// AnyPrimeContext draws odd candidates from src until one passes
// IsPrimeUsingMillerRabin. With msbSet the candidates use the full width.
// The search has no upper bound on the number of draws; ctx is checked before
// every candidate.
func AnyPrimeContext[T digit.Digit, W Width](ctx context.Context, src RandomSource, repetitions int, msbSet bool) (UInt[T, W], error) {
	for {
		if err := ctx.Err(); err != nil {
			return UInt[T, W]{}, err
		}
		var (
			x   UInt[T, W]
			err error
		)
		if msbSet {
			x, err = AnyOddWithMSBSetFrom[T, W](src)
		} else {
			x, err = AnyOddFrom[T, W](src)
		}
		if err != nil {
			return x, err
		}
		prime, err := x.IsPrimeUsingMillerRabinFrom(src, repetitions)
		if err != nil {
			return UInt[T, W]{}, err
		}
		if prime {
			return x, nil
		}
	}
}

// AnyPrimeUsingMillerRabinFrom draws candidates from src until one passes
// the Miller-Rabin test.
func AnyPrimeUsingMillerRabinFrom[T digit.Digit, W Width](src RandomSource, repetitions int) (UInt[T, W], error) {
	return AnyPrimeContext[T, W](context.Background(), src, repetitions, false)
}

// AnyPrimeWithMSBSetUsingMillerRabinFrom is AnyPrimeUsingMillerRabinFrom
// restricted to values with the top bit set.
func AnyPrimeWithMSBSetUsingMillerRabinFrom[T digit.Digit, W Width](src RandomSource, repetitions int) (UInt[T, W], error) {
	return AnyPrimeContext[T, W](context.Background(), src, repetitions, true)
}

// Any and the forms below draw from FastSource.
func Any[T digit.Digit, W Width]() UInt[T, W] { return must(AnyFrom[T, W](FastSource)) }
func AnyOdd[T digit.Digit, W Width]() UInt[T, W] {
	return must(AnyOddFrom[T, W](FastSource))
}
func AnyWithMSBSet[T digit.Digit, W Width]() UInt[T, W] {
	return must(AnyWithMSBSetFrom[T, W](FastSource))
}
func AnyOddWithMSBSet[T digit.Digit, W Width]() UInt[T, W] {
	return must(AnyOddWithMSBSetFrom[T, W](FastSource))
}
func AnyLessThan[T digit.Digit, W Width](bound UInt[T, W]) UInt[T, W] {
	return must(AnyLessThanFrom(FastSource, bound))
}
func AnyOddLessThan[T digit.Digit, W Width](bound UInt[T, W]) UInt[T, W] {
	return must(AnyOddLessThanFrom(FastSource, bound))
}
func AnyPrimeUsingMillerRabin[T digit.Digit, W Width](repetitions int) UInt[T, W] {
	return must(AnyPrimeUsingMillerRabinFrom[T, W](FastSource, repetitions))
}
func AnyPrimeWithMSBSetUsingMillerRabin[T digit.Digit, W Width](repetitions int) UInt[T, W] {
	return must(AnyPrimeWithMSBSetUsingMillerRabinFrom[T, W](FastSource, repetitions))
}

// Random and the forms below draw from SecureSource.
func Random[T digit.Digit, W Width]() UInt[T, W] { return must(AnyFrom[T, W](SecureSource)) }
func RandomOdd[T digit.Digit, W Width]() UInt[T, W] {
	return must(AnyOddFrom[T, W](SecureSource))
}
func RandomWithMSBSet[T digit.Digit, W Width]() UInt[T, W] {
	return must(AnyWithMSBSetFrom[T, W](SecureSource))
}
func RandomOddWithMSBSet[T digit.Digit, W Width]() UInt[T, W] {
	return must(AnyOddWithMSBSetFrom[T, W](SecureSource))
}
func RandomLessThan[T digit.Digit, W Width](bound UInt[T, W]) UInt[T, W] {
	return must(AnyLessThanFrom(SecureSource, bound))
}
func RandomOddLessThan[T digit.Digit, W Width](bound UInt[T, W]) UInt[T, W] {
	return must(AnyOddLessThanFrom(SecureSource, bound))
}
func RandomPrimeUsingMillerRabin[T digit.Digit, W Width](repetitions int) UInt[T, W] {
	return must(AnyPrimeUsingMillerRabinFrom[T, W](SecureSource, repetitions))
}
func RandomPrimeWithMSBSetUsingMillerRabin[T digit.Digit, W Width](repetitions int) UInt[T, W] {
	return must(AnyPrimeWithMSBSetUsingMillerRabinFrom[T, W](SecureSource, repetitions))
}
