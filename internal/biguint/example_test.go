package biguint_test

import (
	"fmt"

	"github.com/agbru/uintcalc/internal/biguint"
)

// ExampleUInt_Add shows the wrapping addition and the flag it leaves behind.
func ExampleUInt_Add() {
	x := biguint.Max[uint64, biguint.W4]()
	y := x.AddUint(1)
	fmt.Println(y, y.Flags())

	z := biguint.FromUint[uint64, biguint.W4](40).AddUint(2)
	fmt.Println(z, z.Flags())
	// Output:
	// 0 overflow
	// 42 none
}

// ExampleUInt_CheckedMul shows the checked form reporting an overflow
// instead of wrapping.
func ExampleUInt_CheckedMul() {
	x := biguint.GenerateCheckBitsUnchecked[uint32, biguint.W4](100)
	if _, ok := x.CheckedMul(x); !ok {
		fmt.Println("2^200 does not fit in 128 bits")
	}
	// Output:
	// 2^200 does not fit in 128 bits
}

// ExampleFromStrRadix parses and renders in several radixes.
func ExampleFromStrRadix() {
	x, err := biguint.FromStrRadix[uint64, biguint.W2]("ff_ff", 16)
	if err != nil {
		fmt.Println(err)
		return
	}
	s, _ := x.ToStringWithRadixAndStride(10, 3)
	fmt.Println(s)
	fmt.Printf("%#x %b\n", x, x.ShiftRight(12))

	_, err = biguint.FromStrRadix[uint64, biguint.W2]("12", 99)
	fmt.Println(err)
	// Output:
	// 65_535
	// 0xffff 1111
	// biguint: parsing "12" in radix 99: radix out of range [2, 62]
}

// ExampleUInt_ModularPow computes a modular power without overflow.
func ExampleUInt_ModularPow() {
	m := biguint.FromUint[uint64, biguint.W4](497)
	fmt.Println(biguint.FromUint[uint64, biguint.W4](4).ModularPowUint(13, m))
	// Output:
	// 445
}

// ExampleUInt_IsPrimeUsingMillerRabin tests a Mersenne number.
func ExampleUInt_IsPrimeUsingMillerRabin() {
	m127 := biguint.GenerateCheckBitsUnchecked[uint64, biguint.W4](127).Decrement()
	fmt.Println(m127, m127.IsPrimeUsingMillerRabin(20))
	// Output:
	// 170141183460469231731687303715884105727 true
}

// ExampleUInt_LeadingMaxDigits inspects the digit layout of Max - 1.
func ExampleUInt_LeadingMaxDigits() {
	x := biguint.Max[uint64, biguint.W4]().SubUint(1)
	fmt.Println(x.LeadingMaxDigits(), x.TrailingZeroDigits(), x.CountOnes(), x.CountZeros())
	fmt.Println(x.IsMax(), x.IsEven(), x.IsZero())
	// Output:
	// 3 0 255 1
	// false true false
}

// ExampleUInt_IsUnderflow reads the flags a wrapped subtraction leaves.
func ExampleUInt_IsUnderflow() {
	x := biguint.FromUint[uint64, biguint.W4](0).SubUint(1)
	fmt.Println(x.IsUnderflow(), x.IsOverflow(), x.IsMax())
	fmt.Println(x.GtUint(1), x.Eq(biguint.Max[uint64, biguint.W4]()))
	// Output:
	// true false true
	// true true
}
