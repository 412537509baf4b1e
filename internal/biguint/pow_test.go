package biguint

import (
	"math/big"
	"testing"
)

func TestPow(t *testing.T) {
	t.Parallel()
	if r := u256(3).PowUint(5); !r.EqUint(243) || r.Flags() != 0 {
		t.Errorf("3^5 = %s flags %v", r, r.Flags())
	}
	if r := u256(2).PowUint(255); r.IsOverflow() || r.BitLen() != 256 {
		t.Errorf("2^255 = %s flags %v", r, r.Flags())
	}
	if r := u256(2).PowUint(256); !r.IsZero() || !r.IsOverflow() {
		t.Errorf("2^256 = %s flags %v", r, r.Flags())
	}
	if r := u256(2).SaturatingPowUint(256); !r.IsMax() {
		t.Errorf("2^256 saturating = %s", r)
	}
	if _, ok := u256(10).CheckedPowUint(78); ok {
		t.Error("10^78 fits in 256 bits")
	}
	r, ok := u256(10).CheckedPowUint(77)
	want := new(big.Int).Exp(big.NewInt(10), big.NewInt(77), nil)
	if !ok || r.ToBigInt().Cmp(want) != 0 {
		t.Errorf("10^77 = %s, %v", r, ok)
	}
	if _, of := u256(7).OverflowingPow(u256(200)); !of {
		t.Error("7^200 did not overflow")
	}

	// Wrapped powers agree with exact powers modulo 2^256.
	got := u256(7).PowUint(200)
	exact := new(big.Int).Exp(big.NewInt(7), big.NewInt(200), new(big.Int).Lsh(big.NewInt(1), 256))
	if got.ToBigInt().Cmp(exact) != 0 {
		t.Errorf("7^200 mod 2^256 = %s, want %s", got, exact)
	}
}

func TestPowZeroToZero(t *testing.T) {
	t.Parallel()
	r := U256{}.PowUint(0)
	if !r.IsOne() || !r.IsUndefined() {
		t.Errorf("0^0 = %s flags %v", r, r.Flags())
	}
	if _, ok := (U256{}).CheckedPow(U256{}); ok {
		t.Error("CheckedPow(0, 0) ok = true")
	}
	if r := (U256{}).PowUint(3); !r.IsZero() || r.Flags() != 0 {
		t.Errorf("0^3 = %s flags %v", r, r.Flags())
	}
	// Undefined is governed by pow, so a later power clears it.
	r.PowAssignUint(1)
	if r.IsUndefined() {
		t.Error("Undefined survived 1^1")
	}
}

func TestIlog(t *testing.T) {
	t.Parallel()
	p77, _ := u256(10).CheckedPowUint(77)
	tests := []struct {
		name string
		got  U256
		want uint64
	}{
		{"log10 10^77", p77.Ilog10(), 77},
		{"log10 10^77-1", p77.Decrement().Ilog10(), 76},
		{"log2 2^200", GenerateCheckBitsUnchecked[uint64, W4](200).Ilog2(), 200},
		{"log2 1", u256(1).Ilog2(), 0},
		{"log3 81", u256(81).IlogUint(3), 4},
		{"log3 80", u256(80).IlogUint(3), 3},
		{"log base 2^64", Max[uint64, W4]().Ilog(FromUint[uint64, W4](1<<63).WrappingMulUint(2)), 3},
		{"base above value", u256(5).IlogUint(6), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !tt.got.EqUint(tt.want) || tt.got.IsUndefined() {
				t.Errorf("got %s flags %v, want %d", tt.got, tt.got.Flags(), tt.want)
			}
		})
	}

	for name, r := range map[string]U256{
		"zero":   U256{}.Ilog10(),
		"base 1": u256(9).IlogUint(1),
		"base 0": u256(9).Ilog(U256{}),
		"log2 0": U256{}.Ilog2(),
	} {
		if !r.IsZero() || !r.IsUndefined() {
			t.Errorf("%s: got %s flags %v, want 0 undefined", name, r, r.Flags())
		}
	}
	if _, ok := (U256{}).CheckedIlog10(); ok {
		t.Error("CheckedIlog10(0) ok = true")
	}
	if r, ok := u256(1000).CheckedIlogUint(10); !ok || !r.EqUint(3) {
		t.Errorf("CheckedIlogUint(1000, 10) = %s, %v", r, ok)
	}
}

func TestIroot(t *testing.T) {
	t.Parallel()
	e20, _ := u256(10).CheckedPowUint(20)
	tests := []struct {
		name string
		got  U256
		want *big.Int
	}{
		{"sqrt 10^20", e20.Isqrt(), big.NewInt(10_000_000_000)},
		{"sqrt 99", u256(99).Isqrt(), big.NewInt(9)},
		{"sqrt 100", u256(100).Isqrt(), big.NewInt(10)},
		{"cbrt 1000", u256(1000).IrootUint(3), big.NewInt(10)},
		{"cbrt 999", u256(999).IrootUint(3), big.NewInt(9)},
		{"root above bit length", u256(5).IrootUint(100), big.NewInt(1)},
		{"first root", u256(77).IrootUint(1), big.NewInt(77)},
		{"root of zero", U256{}.IrootUint(3), big.NewInt(0)},
		{"huge exponent", u256(77).Iroot(Max[uint64, W4]()), big.NewInt(1)},
		{"sqrt of Max", Max[uint64, W4]().Isqrt(), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got.ToBigInt().Cmp(tt.want) != 0 || tt.got.IsUndefined() {
				t.Errorf("got %s flags %v, want %s", tt.got, tt.got.Flags(), tt.want)
			}
		})
	}

	r := u256(5).IrootUint(0)
	if !r.IsMax() || !r.IsUndefined() {
		t.Errorf("0th root of 5 = %s flags %v", r, r.Flags())
	}
	if _, ok := u256(5).CheckedIrootUint(0); ok {
		t.Error("CheckedIrootUint(0) ok = true")
	}
	if r := (U256{}).IrootUint(0); !r.IsZero() || !r.IsUndefined() {
		t.Errorf("0th root of 0 = %s flags %v", r, r.Flags())
	}
}

func TestGcdLcm(t *testing.T) {
	t.Parallel()
	if g := u256(48).Gcd(u256(18)); !g.EqUint(6) {
		t.Errorf("gcd(48, 18) = %s", g)
	}
	if g := u256(0).GcdUint(9); !g.EqUint(9) {
		t.Errorf("gcd(0, 9) = %s", g)
	}
	if g := (U256{}).Gcd(U256{}); !g.IsZero() {
		t.Errorf("gcd(0, 0) = %s", g)
	}
	if l := u256(4).LcmUint(6); !l.EqUint(12) || l.IsOverflow() {
		t.Errorf("lcm(4, 6) = %s", l)
	}
	if l := u256(4).Lcm(U256{}); !l.IsZero() {
		t.Errorf("lcm(4, 0) = %s", l)
	}
	m := Max[uint64, W4]()
	if l := m.Lcm(m.Decrement()); !l.IsOverflow() {
		t.Errorf("lcm(Max, Max-1) did not overflow: %s", l)
	}
}
