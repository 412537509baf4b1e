package biguint

// Width fixes the number of digits of a UInt at compile time. Implementations
// are zero-size marker types; mixing two widths in one operation does not
// type-check.
type Width interface {
	Digits() int
}

// Width markers for 1 to 128 digits.
type (
	W1   struct{}
	W2   struct{}
	W4   struct{}
	W8   struct{}
	W16  struct{}
	W32  struct{}
	W64  struct{}
	W128 struct{}
)

// Digits returns the digit count of each width.
func (W1) Digits() int   { return 1 }
func (W2) Digits() int   { return 2 }
func (W4) Digits() int   { return 4 }
func (W8) Digits() int   { return 8 }
func (W16) Digits() int  { return 16 }
func (W32) Digits() int  { return 32 }
func (W64) Digits() int  { return 64 }
func (W128) Digits() int { return 128 }

// Predefined widths backed by 64-bit digits.
type (
	U128  = UInt[uint64, W2]
	U256  = UInt[uint64, W4]
	U512  = UInt[uint64, W8]
	U1024 = UInt[uint64, W16]
	U2048 = UInt[uint64, W32]
	U4096 = UInt[uint64, W64]
)

// Predefined widths backed by narrower digits. The 8- and 16-bit variants
// exist mostly to exercise carry propagation across many small words.
type (
	U256x32  = UInt[uint32, W8]
	U512x32  = UInt[uint32, W16]
	U1024x32 = UInt[uint32, W32]
	U64x8    = UInt[uint8, W8]
	U128x16  = UInt[uint16, W8]
)

func digitCount[W Width]() int {
	var w W
	return w.Digits()
}
