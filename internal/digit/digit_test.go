package digit

import (
	"math"
	"math/big"
	"testing"
)

func TestBits(t *testing.T) {
	t.Parallel()
	if got := Bits[uint8](); got != 8 {
		t.Errorf("Bits[uint8]() = %d, want 8", got)
	}
	if got := Bits[uint16](); got != 16 {
		t.Errorf("Bits[uint16]() = %d, want 16", got)
	}
	if got := Bits[uint32](); got != 32 {
		t.Errorf("Bits[uint32]() = %d, want 32", got)
	}
	if got := Bits[uint64](); got != 64 {
		t.Errorf("Bits[uint64]() = %d, want 64", got)
	}
	if got := Bytes[uint32](); got != 4 {
		t.Errorf("Bytes[uint32]() = %d, want 4", got)
	}
}

func TestAddCarry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		x, y, c   uint8
		sum, carr uint8
	}{
		{"no carry", 1, 2, 0, 3, 0},
		{"carry in", 1, 2, 1, 4, 0},
		{"wraps", 255, 1, 0, 0, 1},
		{"wraps with carry in", 255, 255, 1, 255, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, c := Add(tt.x, tt.y, tt.c)
			if s != tt.sum || c != tt.carr {
				t.Errorf("Add(%d, %d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, tt.c, s, c, tt.sum, tt.carr)
			}
		})
	}

	s, c := Add(uint64(math.MaxUint64), 1, 0)
	if s != 0 || c != 1 {
		t.Errorf("Add(MaxUint64, 1, 0) = (%d, %d), want (0, 1)", s, c)
	}
}

func TestSubBorrow(t *testing.T) {
	t.Parallel()
	d, b := Sub(uint16(0), 1, 0)
	if d != math.MaxUint16 || b != 1 {
		t.Errorf("Sub(0, 1, 0) = (%d, %d), want (%d, 1)", d, b, math.MaxUint16)
	}
	d, b = Sub(uint16(10), 3, 1)
	if d != 6 || b != 0 {
		t.Errorf("Sub(10, 3, 1) = (%d, %d), want (6, 0)", d, b)
	}
	d32, b32 := Sub(uint32(5), 5, 1)
	if d32 != math.MaxUint32 || b32 != 1 {
		t.Errorf("Sub(5, 5, 1) = (%d, %d), want (%d, 1)", d32, b32, uint32(math.MaxUint32))
	}
	d64, b64 := Sub(uint64(0), 0, 1)
	if d64 != math.MaxUint64 || b64 != 1 {
		t.Errorf("Sub(0, 0, 1) = (%d, %d), want (MaxUint64, 1)", d64, b64)
	}
}

func TestMulAndDivRoundTrip(t *testing.T) {
	t.Parallel()
	pairs := [][2]uint64{
		{0, 0},
		{1, math.MaxUint64},
		{math.MaxUint64, math.MaxUint64},
		{0xDEADBEEFCAFEBABE, 0x0123456789ABCDEF},
	}
	for _, p := range pairs {
		hi, lo := Mul(p[0], p[1])
		want := new(big.Int).Mul(new(big.Int).SetUint64(p[0]), new(big.Int).SetUint64(p[1]))
		got := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
		got.Or(got, new(big.Int).SetUint64(lo))
		if got.Cmp(want) != 0 {
			t.Errorf("Mul(%#x, %#x) = %s, want %s", p[0], p[1], got, want)
		}
		if p[1] != 0 && hi < p[1] {
			q, r := Div(hi, lo, p[1])
			if q != p[0] || r != 0 {
				t.Errorf("Div(Mul(%#x, %#x)) = (%#x, %#x), want (%#x, 0)", p[0], p[1], q, r, p[0])
			}
		}
	}

	hi, lo := MulAdd(uint8(255), 255, 255)
	if uint16(hi)<<8|uint16(lo) != 255*255+255 {
		t.Errorf("MulAdd(255, 255, 255) = (%d, %d)", hi, lo)
	}
	q, r := Div(uint8(3), 0xE8, 10) // 1000 / 10
	if q != 100 || r != 0 {
		t.Errorf("Div(3, 0xE8, 10) = (%d, %d), want (100, 0)", q, r)
	}
}

func TestDivPanics(t *testing.T) {
	t.Parallel()
	for name, fn := range map[string]func(){
		"zero divisor": func() { Div(uint32(0), 1, 0) },
		"overflow":     func() { Div(uint32(5), 1, 5) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
}

func TestBitCounts(t *testing.T) {
	t.Parallel()
	if got := LeadingZeros(uint8(1)); got != 7 {
		t.Errorf("LeadingZeros(uint8(1)) = %d, want 7", got)
	}
	if got := LeadingZeros(uint16(0)); got != 16 {
		t.Errorf("LeadingZeros(uint16(0)) = %d, want 16", got)
	}
	if got := TrailingZeros(uint32(0)); got != 32 {
		t.Errorf("TrailingZeros(uint32(0)) = %d, want 32", got)
	}
	if got := TrailingZeros(uint64(8)); got != 3 {
		t.Errorf("TrailingZeros(8) = %d, want 3", got)
	}
	if got := OnesCount(uint16(0xF0F0)); got != 8 {
		t.Errorf("OnesCount(0xF0F0) = %d, want 8", got)
	}
	if got := Len(uint32(0x100)); got != 9 {
		t.Errorf("Len(0x100) = %d, want 9", got)
	}
	if got := Reverse(uint8(0b0000_0001)); got != 0b1000_0000 {
		t.Errorf("Reverse(1) = %#b, want 0b10000000", got)
	}
	if got := ReverseBytes(uint32(0x11223344)); got != 0x44332211 {
		t.Errorf("ReverseBytes(0x11223344) = %#x", got)
	}
	if got := Max[uint16](); got != math.MaxUint16 {
		t.Errorf("Max[uint16]() = %d", got)
	}
}
