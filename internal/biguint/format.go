package biguint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/agbru/uintcalc/internal/digit"
)

const (
	MinRadix = 2
	MaxRadix = 62

	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// digitValue returns the value of c in the given radix convention, or -1 for a
// character outside 0-9A-Za-z. Letters are case-insensitive up to radix 36.
func digitValue(c byte, radix int) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	case 'a' <= c && c <= 'z':
		if radix <= 36 {
			return int(c-'a') + 10
		}
		return int(c-'a') + 36
	}
	return -1
}

func parseWords[T digit.Digit](s string, radix, n int) ([]T, error) {
	fail := func(k NumberErrorKind) error {
		return &NumberError{Kind: k, Input: s, Radix: radix}
	}

	seen := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '_':
		case digitValue(c, MaxRadix) < 0:
			return nil, fail(NotAlphaNumeric)
		default:
			seen = true
		}
	}
	if !seen {
		return nil, fail(NotAlphaNumeric)
	}
	if radix < MinRadix || radix > MaxRadix {
		return nil, fail(OutOfValidRadixRange)
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '_' && digitValue(s[i], radix) >= radix {
			return nil, fail(NotFitToRadix)
		}
	}

	z := make([]T, n)
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			continue
		}
		if c := mulAddVWW(z, z, T(radix), T(digitValue(s[i], radix))); c != 0 {
			return nil, fail(TooBigNumber)
		}
	}
	return z, nil
}

// FromStrRadix parses text in the given radix. '_' may appear anywhere as a
// visual separator. Errors are *NumberError; the checks run in the order
// NotAlphaNumeric, OutOfValidRadixRange, NotFitToRadix, TooBigNumber.
func FromStrRadix[T digit.Digit, W Width](text string, radix int) (UInt[T, W], error) {
	z, err := parseWords[T](text, radix, digitCount[W]())
	if err != nil {
		return UInt[T, W]{}, err
	}
	return UInt[T, W]{digits: z}, nil
}

// FromString parses decimal text.
func FromString[T digit.Digit, W Width](text string) (UInt[T, W], error) {
	return FromStrRadix[T, W](text, 10)
}

// MustFromString is FromString that panics on error. Meant for constants in
// tests and examples.
func MustFromString[T digit.Digit, W Width](text string) UInt[T, W] {
	x, err := FromString[T, W](text)
	if err != nil {
		panic(err)
	}
	return x
}

// bigBase returns the largest power of radix that fits in a digit together
// with its exponent.
func bigBase[T digit.Digit](radix int) (T, int) {
	limit := uint64(digit.Max[T]())
	bb, k := uint64(radix), 1
	for bb <= limit/uint64(radix) {
		bb *= uint64(radix)
		k++
	}
	return T(bb), k
}

// renderWords returns x in the given radix, least significant digit first.
func renderWords[T digit.Digit](x []T, radix int) []byte {
	if isZeroVec(x) {
		return []byte{'0'}
	}
	bb, k := bigBase[T](radix)
	q := resize(x, len(x))
	var out []byte
	for n := normLen(q); n > 0; n = normLen(q) {
		r := uint64(divWVW(q[:n], 0, q[:n], bb))
		for i := 0; i < k; i++ {
			out = append(out, alphabet[r%uint64(radix)])
			r /= uint64(radix)
		}
	}
	for len(out) > 1 && out[len(out)-1] == '0' {
		out = out[:len(out)-1]
	}
	return out
}

// ToStringWithRadixAndStrideAndDelimiter renders x in radix, inserting delim
// every stride digits counted from the least significant end. stride 0
// disables grouping.
func (x UInt[T, W]) ToStringWithRadixAndStrideAndDelimiter(radix, stride int, delim string) (string, error) {
	if radix < MinRadix || radix > MaxRadix {
		return "", &NumberError{Kind: OutOfValidRadixRange, Radix: radix}
	}
	rev := renderWords(x.words(), radix)
	var sb strings.Builder
	sb.Grow(len(rev) + len(rev)/max(stride, 1)*len(delim))
	for i := len(rev) - 1; i >= 0; i-- {
		sb.WriteByte(rev[i])
		if stride > 0 && i > 0 && i%stride == 0 {
			sb.WriteString(delim)
		}
	}
	return sb.String(), nil
}

// ToStringWithRadixAndStride groups digits with '_'.
func (x UInt[T, W]) ToStringWithRadixAndStride(radix, stride int) (string, error) {
	return x.ToStringWithRadixAndStrideAndDelimiter(radix, stride, "_")
}

// ToStringWithRadix renders x in radix 2..62 without grouping.
func (x UInt[T, W]) ToStringWithRadix(radix int) (string, error) {
	return x.ToStringWithRadixAndStrideAndDelimiter(radix, 0, "")
}

// String returns x in decimal.
func (x UInt[T, W]) String() string {
	return string(reversed(renderWords(x.words(), 10)))
}

func reversed(b []byte) []byte {
	reverseBytes(b)
	return b
}

// Format implements fmt.Formatter for the verbs b, o, d, x, X, s and v. The
// '#' flag adds a 0b, 0, 0x or 0X prefix; width, '-' and '0' pad as for
// integers.
func (x UInt[T, W]) Format(f fmt.State, verb rune) {
	radix, prefix := 10, ""
	switch verb {
	case 'b':
		radix, prefix = 2, "0b"
	case 'o', 'O':
		radix, prefix = 8, "0"
	case 'd', 's', 'v':
	case 'x':
		radix, prefix = 16, "0x"
	case 'X':
		radix, prefix = 16, "0X"
	default:
		fmt.Fprintf(f, "%%!%c(biguint=%s)", verb, x.String())
		return
	}
	body := string(reversed(renderWords(x.words(), radix)))
	if verb == 'x' {
		body = strings.ToLower(body)
	}
	if !f.Flag('#') && verb != 'O' {
		prefix = ""
	}
	if verb == 'O' {
		prefix = "0o"
	}

	pad := 0
	if w, ok := f.Width(); ok {
		pad = w - len(prefix) - len(body)
	}
	switch {
	case pad <= 0:
		fmt.Fprint(f, prefix, body)
	case f.Flag('-'):
		fmt.Fprint(f, prefix, body, strings.Repeat(" ", pad))
	case f.Flag('0'):
		fmt.Fprint(f, prefix, strings.Repeat("0", pad), body)
	default:
		fmt.Fprint(f, strings.Repeat(" ", pad), prefix, body)
	}
}

// MarshalText encodes x as decimal text.
func (x UInt[T, W]) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText decodes decimal text into x and clears its flags.
func (x *UInt[T, W]) UnmarshalText(text []byte) error {
	v, err := FromString[T, W](string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON encodes x as a quoted decimal string, since most JSON decoders
// cannot hold integers beyond 53 bits.
func (x UInt[T, W]) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON accepts a quoted decimal string or a bare JSON number.
// A JSON null leaves x unchanged.
func (x *UInt[T, W]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return x.UnmarshalText([]byte(s))
	}
	return x.UnmarshalText(data)
}
