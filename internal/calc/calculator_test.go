package calc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/biguint/mocks"
	apperrors "github.com/agbru/uintcalc/internal/errors"
)

const max64 = "18446744073709551615"

func TestEval(t *testing.T) {
	t.Parallel()
	c := New[uint8, biguint.W8]("u64x8")

	tests := []struct {
		expr      string
		want      string
		wantFlags biguint.Flags
	}{
		{"add 2 3", "5", 0},
		{"sub 0 1", max64, biguint.Underflow},
		{"mul 0xff 2", "510", 0},
		{"div 7 0", max64, biguint.Overflow | biguint.Infinity | biguint.DividedByZero},
		{"rem 7 0", "0", biguint.DividedByZero},
		{"divmod 17 5", "3 2", 0},
		{"wmul " + max64 + " 2", "18446744073709551614 1", 0},
		{"pow 2 10", "1024", 0},
		{"pow 2 64", "0", biguint.Overflow},
		{"inc " + max64, "0", biguint.Overflow},
		{"dec 0", max64, biguint.Underflow},
		{"absdiff 3 10", "7", 0},
		{"midpoint 4 10", "7", 0},
		{"nextmul 10 4", "12", 0},
		{"sadd " + max64 + " 1", max64, 0},
		{"ssub 1 2", "0", 0},
		{"smul " + max64 + " 3", max64, 0},
		{"spow 10 20", max64, 0},
		{"cadd 1 2", "3", 0},
		{"modadd 5 4 7", "2", 0},
		{"modsub 3 5 7", "5", 0},
		{"modmul 5 6 7", "2", 0},
		{"moddiv 17 9 7", "1", 0},
		{"modrem 17 13 10", "1", 0},
		{"modpow 4 13 497", "445", 0},
		{"and 12 10", "8", 0},
		{"or 12 10", "14", 0},
		{"xor 12 10", "6", 0},
		{"not 0", max64, 0},
		{"shl 1 4", "16", 0},
		{"shl 0x8000000000000000 1", "0", biguint.LeftCarry},
		{"shr 3 1", "1", biguint.RightCarry},
		{"rotl 0x8000000000000001 4", "24", 0},
		{"rotr 24 4", "9223372036854775809", 0},
		{"revbits 1", "9223372036854775808", 0},
		{"swapbytes 1", "72057594037927936", 0},
		{"log2 1024", "10", 0},
		{"log10 0", "0", biguint.Undefined},
		{"log 81 3", "4", 0},
		{"sqrt 17", "4", 0},
		{"root 27 3", "3", 0},
		{"gcd 12 18", "6", 0},
		{"lcm 4 6", "12", 0},
		{"cmp 3 5", "-1", 0},
		{"cmp 5 5", "0", 0},
		{"isprime 97", "true", 0},
		{"isprime 91", "false", 0},
		{"bits 255", "8", 0},
		{"ones 255", "8", 0},
		{"zeros 255", "56", 0},
		{"lz 1", "63", 0},
		{"tz 8", "3", 0},
		{"ADD 0b101 0o7", "12", 0},
		{"add 1_000 24", "1024", 0},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			t.Parallel()
			req, err := ParseExpression(tt.expr)
			if err != nil {
				t.Fatalf("ParseExpression: %v", err)
			}
			res, err := c.Eval(context.Background(), req)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if res.Value() != tt.want {
				t.Errorf("value = %q, want %q", res.Value(), tt.want)
			}
			if res.Flags != tt.wantFlags {
				t.Errorf("flags = %v, want %v", res.Flags, tt.wantFlags)
			}
			if res.Width != "u64x8" {
				t.Errorf("width = %q", res.Width)
			}
		})
	}
}

func TestEvalFormat(t *testing.T) {
	t.Parallel()
	c := New[uint64, biguint.W4]("u256")
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"hex grouped", Request{Op: "mul", Args: []string{"0xffff", "0xffff"}, Format: Format{Radix: 16, Stride: 4, Delimiter: "_"}}, "FFFE_0001"},
		{"hex input", Request{Op: "add", Args: []string{"ff", "1"}, Format: Format{Radix: 16}}, "100"},
		{"decimal thousands", Request{Op: "pow", Args: []string{"10", "6"}, Format: Format{Radix: 10, Stride: 3, Delimiter: ","}}, "1,000,000"},
		{"zero radix means decimal", Request{Op: "add", Args: []string{"40", "2"}}, "42"},
		{"radix 36 keeps letters", Request{Op: "add", Args: []string{"0x", "1"}, Format: Format{Radix: 36}}, "Y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := c.Eval(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if res.Value() != tt.want {
				t.Errorf("value = %q, want %q", res.Value(), tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	t.Parallel()
	c := New[uint32, biguint.W8]("u256x32")

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name  string
		ctx   context.Context
		req   Request
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown op",
			req:  Request{Op: "frobnicate", Args: []string{"1"}},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrUnknownOp) {
					t.Errorf("err = %v, want ErrUnknownOp", err)
				}
			},
		},
		{
			name: "arity",
			req:  Request{Op: "add", Args: []string{"1"}},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrArity) {
					t.Errorf("err = %v, want ErrArity", err)
				}
			},
		},
		{
			name: "digit outside radix",
			req:  Request{Op: "add", Args: []string{"1", "12z"}},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, biguint.ErrNotFitToRadix) {
					t.Errorf("err = %v, want ErrNotFitToRadix", err)
				}
				if !strings.HasPrefix(err.Error(), "argument 2:") {
					t.Errorf("err = %q, want argument position", err)
				}
			},
		},
		{
			name: "too big",
			req:  Request{Op: "add", Args: []string{"0x1" + strings.Repeat("0", 64), "1"}},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, biguint.ErrTooBigNumber) {
					t.Errorf("err = %v, want ErrTooBigNumber", err)
				}
			},
		},
		{
			name: "bad count",
			req:  Request{Op: "shl", Args: []string{"1", "-3"}},
			check: func(t *testing.T, err error) {
				var ve apperrors.ValidationError
				if !errors.As(err, &ve) || ve.Field != "argument 2" {
					t.Errorf("err = %v, want ValidationError on argument 2", err)
				}
			},
		},
		{
			name: "checked failure",
			req:  Request{Op: "cmul", Args: []string{"0x1" + strings.Repeat("0", 40), "0x1" + strings.Repeat("0", 40)}},
			check: func(t *testing.T, err error) {
				var ae apperrors.ArithmeticError
				if !errors.As(err, &ae) || ae.Op != "cmul" || len(ae.Flags) != 0 {
					t.Errorf("err = %v, want ArithmeticError for cmul", err)
				}
			},
		},
		{
			name: "checked division by zero",
			req:  Request{Op: "cdiv", Args: []string{"1", "0"}},
			check: func(t *testing.T, err error) {
				var ae apperrors.ArithmeticError
				if !errors.As(err, &ae) {
					t.Errorf("err = %v, want ArithmeticError", err)
				}
			},
		},
		{
			name: "next multiple of zero",
			req:  Request{Op: "nextmul", Args: []string{"10", "0"}},
			check: func(t *testing.T, err error) {
				var ae apperrors.ArithmeticError
				if !errors.As(err, &ae) || ae.Op != "nextmul" {
					t.Errorf("err = %v, want ArithmeticError for nextmul", err)
				}
			},
		},
		{
			name: "strict mode",
			req:  Request{Op: "sub", Args: []string{"0", "1"}, Strict: true},
			check: func(t *testing.T, err error) {
				var ae apperrors.ArithmeticError
				if !errors.As(err, &ae) || len(ae.Flags) != 1 || ae.Flags[0] != "underflow" {
					t.Errorf("err = %v, want underflow ArithmeticError", err)
				}
			},
		},
		{
			name: "canceled context",
			ctx:  canceled,
			req:  Request{Op: "add", Args: []string{"1", "2"}},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, context.Canceled) {
					t.Errorf("err = %v, want context.Canceled", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := tt.ctx
			if ctx == nil {
				ctx = context.Background()
			}
			_, err := c.Eval(ctx, tt.req)
			if err == nil {
				t.Fatal("expected an error")
			}
			tt.check(t, err)
		})
	}
}

func TestStrictModePassesCleanResults(t *testing.T) {
	t.Parallel()
	c := New[uint64, biguint.W2]("u128")
	res, err := c.Eval(context.Background(), Request{Op: "mul", Args: []string{"6", "7"}, Strict: true})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.Value() != "42" || res.Flags != 0 {
		t.Errorf("got %s %v", res.Value(), res.Flags)
	}
}

func TestWidthsAgreeOnSmallValues(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	exprs := []string{"mul 65535 65521", "modpow 3 1000 1000003", "gcd 462 1071", "sqrt 4000000", "isprime 65521"}
	for _, expr := range exprs {
		req, _ := ParseExpression(expr)
		var want string
		for _, name := range f.List() {
			res, err := f.MustGet(name).Eval(context.Background(), req)
			if err != nil {
				t.Fatalf("%s on %s: %v", expr, name, err)
			}
			if want == "" {
				want = res.Value()
			} else if res.Value() != want {
				t.Errorf("%s on %s = %s, want %s", expr, name, res.Value(), want)
			}
		}
	}
}

func TestCalculatorShape(t *testing.T) {
	t.Parallel()
	tests := []struct {
		c         Calculator
		bits      int
		digitBits int
	}{
		{New[uint64, biguint.W4]("u256"), 256, 64},
		{New[uint32, biguint.W16]("u512x32"), 512, 32},
		{New[uint8, biguint.W8]("u64x8"), 64, 8},
		{New[uint16, biguint.W8]("u128x16"), 128, 16},
	}
	for _, tt := range tests {
		if tt.c.Bits() != tt.bits || tt.c.DigitBits() != tt.digitBits {
			t.Errorf("%s: bits %d/%d, want %d/%d", tt.c.Name(), tt.c.Bits(), tt.c.DigitBits(), tt.bits, tt.digitBits)
		}
	}

	ops := tests[0].c.Ops()
	for i := 1; i < len(ops); i++ {
		if ops[i-1].Name >= ops[i].Name {
			t.Fatalf("Ops not sorted at %s, %s", ops[i-1].Name, ops[i].Name)
		}
	}
	info, ok := Lookup(tests[0].c, "modpow")
	if !ok || info.Args != "x y m" {
		t.Errorf("Lookup(modpow) = %+v, %v", info, ok)
	}
	if _, ok := Lookup(tests[0].c, "nope"); ok {
		t.Error("Lookup found an unknown op")
	}
}

func TestParseExpression(t *testing.T) {
	t.Parallel()
	req, err := ParseExpression("  ModPow 4\t13  497 ")
	if err != nil {
		t.Fatal(err)
	}
	if req.Op != "modpow" || strings.Join(req.Args, ",") != "4,13,497" {
		t.Errorf("got %+v", req)
	}
	if _, err := ParseExpression("   "); !errors.Is(err, ErrEmptyExpression) {
		t.Errorf("blank: err = %v", err)
	}
}

func TestProbe(t *testing.T) {
	t.Parallel()
	c := New[uint8, biguint.W8]("u64x8")

	// 0xFFFFFFFFFFFFFFC5 in little-endian order is prime.
	cand, err := c.Probe(bytes.NewReader([]byte{0xC5, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}), 10)
	if err != nil {
		t.Fatal(err)
	}
	if !cand.Prime || cand.Value != "18446744073709551557" {
		t.Errorf("got %+v", cand)
	}

	ctrl := gomock.NewController(t)
	src := mocks.NewMockRandomSource(ctrl)
	src.EXPECT().Read(gomock.Len(8)).DoAndReturn(func(p []byte) (int, error) {
		for i := range p {
			p[i] = 0xFF
		}
		return len(p), nil
	})
	cand, err = c.Probe(src, 10)
	if err != nil {
		t.Fatal(err)
	}
	if cand.Prime || cand.Value != "" {
		t.Errorf("got %+v, want an unrendered composite for 2^64-1", cand)
	}

	failing := mocks.NewMockRandomSource(ctrl)
	failing.EXPECT().Read(gomock.Any()).Return(0, io.ErrUnexpectedEOF)
	if _, err := c.Probe(failing, 10); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("err = %v, want io.ErrUnexpectedEOF", err)
	}
}
