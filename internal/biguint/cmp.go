package biguint

import "github.com/agbru/uintcalc/internal/digit"

// Cmp compares x and y and returns -1, 0 or +1. Flags are ignored.
func (x UInt[T, W]) Cmp(y UInt[T, W]) int {
	a, b := x.words(), y.words()
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Eq, Lt, Gt, Le and Ge are shorthands over Cmp.
func (x UInt[T, W]) Eq(y UInt[T, W]) bool { return x.Cmp(y) == 0 }
func (x UInt[T, W]) Lt(y UInt[T, W]) bool { return x.Cmp(y) < 0 }
func (x UInt[T, W]) Gt(y UInt[T, W]) bool { return x.Cmp(y) > 0 }
func (x UInt[T, W]) Le(y UInt[T, W]) bool { return x.Cmp(y) <= 0 }
func (x UInt[T, W]) Ge(y UInt[T, W]) bool { return x.Cmp(y) >= 0 }

// CmpUint compares x with a native value. Any set digit above the low 64
// bits makes x the greater one without building a promoted copy of y.
func (x UInt[T, W]) CmpUint(y uint64) int {
	a := x.words()
	w := digit.Bits[T]()
	low := min(len(a), (64+w-1)/w)
	if !isZeroVec(a[low:]) {
		return 1
	}
	v := wordsToUint64(a[:low])
	switch {
	case v < y:
		return -1
	case v > y:
		return 1
	}
	return 0
}

// EqUint is Eq with a native operand.
// EqUint and its siblings are shorthands over CmpUint.
func (x UInt[T, W]) EqUint(y uint64) bool { return x.CmpUint(y) == 0 }
func (x UInt[T, W]) LtUint(y uint64) bool { return x.CmpUint(y) < 0 }
func (x UInt[T, W]) GtUint(y uint64) bool { return x.CmpUint(y) > 0 }
func (x UInt[T, W]) LeUint(y uint64) bool { return x.CmpUint(y) <= 0 }
func (x UInt[T, W]) GeUint(y uint64) bool { return x.CmpUint(y) >= 0 }

// Min returns the smaller of x and y.
func (x UInt[T, W]) Min(y UInt[T, W]) UInt[T, W] { return MinOf(x, y) }

// Max returns the larger of x and y.
func (x UInt[T, W]) Max(y UInt[T, W]) UInt[T, W] { return MaxOf(x, y) }

// MinOf returns the smallest of its arguments, or zero when called without any.
func MinOf[T digit.Digit, W Width](xs ...UInt[T, W]) UInt[T, W] {
	var m UInt[T, W]
	for i, x := range xs {
		if i == 0 || x.Lt(m) {
			m = x
		}
	}
	return m
}

// MaxOf returns the largest of its arguments, or zero when called without any.
func MaxOf[T digit.Digit, W Width](xs ...UInt[T, W]) UInt[T, W] {
	var m UInt[T, W]
	for i, x := range xs {
		if i == 0 || x.Gt(m) {
			m = x
		}
	}
	return m
}
