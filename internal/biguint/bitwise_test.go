package biguint

import "testing"

func u64x8(v uint64) U64x8 { return FromUint[uint8, W8](v) }

func TestLogicOperations(t *testing.T) {
	t.Parallel()
	a, b := u64x8(0b1100), u64x8(0b1010)
	tests := []struct {
		name string
		got  U64x8
		want uint64
	}{
		{"and", a.And(b), 0b1000},
		{"or", a.Or(b), 0b1110},
		{"xor", a.Xor(b), 0b0110},
		{"flip", a.Flip(), ^uint64(0b1100)},
		{"xor self", a.Xor(a), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.got.IntoUint64(); got != tt.want {
				t.Errorf("got %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestShifts(t *testing.T) {
	t.Parallel()
	x := u64x8(0xF000000000000001)

	l := x.ShiftLeft(4)
	if l.IntoUint64() != 0x10 || !l.IsLeftCarry() {
		t.Errorf("ShiftLeft(4) = %#x flags %v", l.IntoUint64(), l.Flags())
	}
	r := x.ShiftRight(1)
	if r.IntoUint64() != 0x7800000000000000 || !r.IsRightCarry() {
		t.Errorf("ShiftRight(1) = %#x flags %v", r.IntoUint64(), r.Flags())
	}
	// Each shift governs only its own carry flag.
	r.ShiftLeftAssign(1)
	if r.IntoUint64() != 0xF000000000000000 || !r.IsRightCarry() || r.IsLeftCarry() {
		t.Errorf("ShiftLeftAssign(1) = %#x flags %v", r.IntoUint64(), r.Flags())
	}
	r.ShiftRightAssign(60)
	if !r.EqUint(0xF) || r.IsRightCarry() {
		t.Errorf("ShiftRightAssign(60) = %#x flags %v", r.IntoUint64(), r.Flags())
	}

	if z := x.ShiftLeft(64); !z.IsZero() || !z.IsLeftCarry() {
		t.Errorf("ShiftLeft(64) = %s flags %v", z, z.Flags())
	}
	if z := (U64x8{}).ShiftRight(200); !z.IsZero() || z.IsRightCarry() {
		t.Errorf("zero ShiftRight(200) = %s flags %v", z, z.Flags())
	}
	if _, ok := x.CheckedShiftLeft(64); ok {
		t.Error("CheckedShiftLeft(64) ok = true")
	}
	if v, ok := x.CheckedShiftRight(63); !ok || !v.IsOne() {
		t.Errorf("CheckedShiftRight(63) = %s, %v", v, ok)
	}
	defer func() {
		if recover() == nil {
			t.Error("UncheckedShiftRight(64) did not panic")
		}
	}()
	x.UncheckedShiftRight(64)
}

func TestShiftsAcrossDigitSizes(t *testing.T) {
	t.Parallel()
	for _, s := range []uint{0, 1, 7, 8, 9, 31, 32, 33, 63} {
		want := uint64(0x8000000000000001) << s
		if got := FromUint[uint8, W8](0x8000000000000001).ShiftLeft(s).IntoUint64(); got != want {
			t.Errorf("uint8 digits << %d = %#x, want %#x", s, got, want)
		}
		if got := FromUint[uint32, W2](0x8000000000000001).ShiftLeft(s).IntoUint64(); got != want {
			t.Errorf("uint32 digits << %d = %#x, want %#x", s, got, want)
		}
		want = uint64(0x8000000000000001) >> s
		if got := FromUint[uint16, W4](0x8000000000000001).ShiftRight(s).IntoUint64(); got != want {
			t.Errorf("uint16 digits >> %d = %#x, want %#x", s, got, want)
		}
	}
}

func TestRotate(t *testing.T) {
	t.Parallel()
	x := u64x8(0xF000000000000001)
	x.SetFlags(Overflow)

	l := x.RotateLeft(4)
	if l.IntoUint64() != 0x1F {
		t.Errorf("RotateLeft(4) = %#x", l.IntoUint64())
	}
	if l.Flags() != Overflow {
		t.Errorf("RotateLeft changed flags to %v", l.Flags())
	}
	if got := x.RotateLeft(68); !got.Eq(l) {
		t.Errorf("RotateLeft(68) = %#x, want %#x", got.IntoUint64(), l.IntoUint64())
	}
	if got := l.RotateRight(4); !got.Eq(x) {
		t.Errorf("RotateRight(4) = %#x", got.IntoUint64())
	}
	if got := x.RotateRight(0); !got.Eq(x) {
		t.Errorf("RotateRight(0) = %#x", got.IntoUint64())
	}
	x.RotateRightAssign(64)
	if x.IntoUint64() != 0xF000000000000001 {
		t.Errorf("RotateRightAssign(64) = %#x", x.IntoUint64())
	}
}

func TestReverseAndSwap(t *testing.T) {
	t.Parallel()
	if got := u64x8(1).ReverseBits().IntoUint64(); got != 1<<63 {
		t.Errorf("ReverseBits(1) = %#x", got)
	}
	if got := FromUint[uint32, W2](0x00000000_0000F00F).ReverseBits().IntoUint64(); got != 0xF00F0000_00000000 {
		t.Errorf("ReverseBits with uint32 digits = %#x", got)
	}

	for name, x := range map[string]interface{ IntoUint64() uint64 }{
		"uint8":  FromUint[uint8, W8](0x0102030405060708).SwapBytes(),
		"uint16": FromUint[uint16, W4](0x0102030405060708).SwapBytes(),
		"uint64": FromUint[uint64, W1](0x0102030405060708).SwapBytes(),
	} {
		if got := x.IntoUint64(); got != 0x0807060504030201 {
			t.Errorf("SwapBytes with %s digits = %#x", name, got)
		}
	}
}

func TestByteOrderConversion(t *testing.T) {
	t.Parallel()
	x := u64x8(0x0102030405060708)
	if got := FromBE(x.ToBE()); !got.Eq(x) {
		t.Errorf("FromBE(ToBE(x)) = %#x", got.IntoUint64())
	}
	if got := FromLE(x.ToLE()); !got.Eq(x) {
		t.Errorf("FromLE(ToLE(x)) = %#x", got.IntoUint64())
	}
	be, le := x.ToBE(), x.ToLE()
	if littleEndianHost {
		if !le.Eq(x) || !be.Eq(x.SwapBytes()) {
			t.Errorf("little-endian host: ToLE = %#x, ToBE = %#x", le.IntoUint64(), be.IntoUint64())
		}
	} else if !be.Eq(x) || !le.Eq(x.SwapBytes()) {
		t.Errorf("big-endian host: ToLE = %#x, ToBE = %#x", le.IntoUint64(), be.IntoUint64())
	}
}
