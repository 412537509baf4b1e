package biguint

// Below trialDivisionLimit primality is decided by trial division alone.
const trialDivisionLimit = 10000

// Witness sets that make Miller-Rabin exact below 2^32 and 2^64.
var (
	witnesses32 = []uint64{2, 7, 61}
	witnesses64 = []uint64{2, 325, 9375, 28178, 450775, 9780504, 1795265022}
)

// smallPrimes are tried as divisors before the probabilistic rounds.
var smallPrimes = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
	157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229, 233,
	239, 241, 251,
}

func isPrimeTrial(v uint64) bool {
	if v < 2 {
		return false
	}
	if v < 4 {
		return true
	}
	if v%2 == 0 {
		return false
	}
	for d := uint64(3); d*d <= v; d += 2 {
		if v%d == 0 {
			return false
		}
	}
	return true
}

// IsPrimeUsingMillerRabin tests x for primality. Values below 10,000 are
// decided by trial division and values below 2^64 by fixed witness sets, both
// exactly. Larger values get repetitions rounds with random witnesses from
// FastSource, so a composite passes with probability at most 4^-repetitions.
func (x UInt[T, W]) IsPrimeUsingMillerRabin(repetitions int) bool {
	prime, err := x.IsPrimeUsingMillerRabinFrom(FastSource, repetitions)
	if err != nil {
		panic("biguint: random source failed: " + err.Error())
	}
	return prime
}

// IsPrimeUsingMillerRabinFrom is IsPrimeUsingMillerRabin with the random
// witnesses drawn from src.
func (x UInt[T, W]) IsPrimeUsingMillerRabinFrom(src RandomSource, repetitions int) (bool, error) {
	switch bl := x.BitLen(); {
	case x.LtUint(trialDivisionLimit):
		return isPrimeTrial(x.IntoUint64()), nil
	case x.IsEven():
		return false, nil
	case bl <= 32:
		return x.millerRabinFixed(witnesses32), nil
	case bl <= 64:
		return x.millerRabinFixed(witnesses64), nil
	}

	for _, p := range smallPrimes {
		if x.IsMultipleOfUint(p) {
			return false, nil
		}
	}
	nm1, d, s := x.decompose()
	bound := x.WrappingSubUint(3)
	for i := 0; i < repetitions; i++ {
		a, err := AnyLessThanFrom(src, bound)
		if err != nil {
			return false, err
		}
		if !x.millerRabinRound(a.WrappingAddUint(2), d, nm1, s) {
			return false, nil
		}
	}
	return true, nil
}

// decompose writes x - 1 as d * 2^s with d odd.
func (x UInt[T, W]) decompose() (nm1, d UInt[T, W], s uint) {
	nm1 = x.WrappingSubUint(1)
	s = uint(nm1.TrailingZeros())
	return nm1, nm1.ShiftRight(s), s
}

func (x UInt[T, W]) millerRabinFixed(witnesses []uint64) bool {
	nm1, d, s := x.decompose()
	for _, w := range witnesses {
		a := FromUint[T, W](w).WrappingRem(x)
		if a.IsZero() {
			continue
		}
		if !x.millerRabinRound(a, d, nm1, s) {
			return false
		}
	}
	return true
}

// millerRabinRound reports whether witness a fails to prove x composite.
func (x UInt[T, W]) millerRabinRound(a, d, nm1 UInt[T, W], s uint) bool {
	y := a.ModularPow(d, x)
	if y.IsOne() || y.Eq(nm1) {
		return true
	}
	for r := uint(1); r < s; r++ {
		y = y.ModularMul(y, x)
		if y.Eq(nm1) {
			return true
		}
		if y.IsOne() {
			return false
		}
	}
	return false
}
