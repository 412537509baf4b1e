package calc

import (
	"sort"
	"strconv"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/digit"
)

// Operand kinds in an op signature.
const (
	kindValue = 'v' // a value of the calculator width
	kindCount = 'n' // a native uint64 such as a shift amount
)

// OpInfo describes one operation for help screens and completion.
type OpInfo struct {
	Name    string
	Args    string
	Summary string
}

type operands[T digit.Digit, W biguint.Width] struct {
	v           []biguint.UInt[T, W]
	n           []uint64
	repetitions int
}

type outcome[T digit.Digit, W biguint.Width] struct {
	values []biguint.UInt[T, W]
	text   []string
	failed bool
}

type op[T digit.Digit, W biguint.Width] struct {
	args    string
	usage   string
	summary string
	eval    func(in operands[T, W]) outcome[T, W]
}

func values[T digit.Digit, W biguint.Width](vs ...biguint.UInt[T, W]) outcome[T, W] {
	return outcome[T, W]{values: vs}
}

func checked[T digit.Digit, W biguint.Width](v biguint.UInt[T, W], ok bool) outcome[T, W] {
	if !ok {
		return outcome[T, W]{failed: true}
	}
	return values(v)
}

func text[T digit.Digit, W biguint.Width](s ...string) outcome[T, W] {
	return outcome[T, W]{text: s}
}

func unary[T digit.Digit, W biguint.Width](summary string, f func(biguint.UInt[T, W]) biguint.UInt[T, W]) op[T, W] {
	return op[T, W]{args: "v", usage: "x", summary: summary, eval: func(in operands[T, W]) outcome[T, W] {
		return values(f(in.v[0]))
	}}
}

func binary[T digit.Digit, W biguint.Width](summary string, f func(x, y biguint.UInt[T, W]) biguint.UInt[T, W]) op[T, W] {
	return op[T, W]{args: "vv", usage: "x y", summary: summary, eval: func(in operands[T, W]) outcome[T, W] {
		return values(f(in.v[0], in.v[1]))
	}}
}

func checkedBinary[T digit.Digit, W biguint.Width](summary string, f func(x, y biguint.UInt[T, W]) (biguint.UInt[T, W], bool)) op[T, W] {
	return op[T, W]{args: "vv", usage: "x y", summary: summary, eval: func(in operands[T, W]) outcome[T, W] {
		return checked(f(in.v[0], in.v[1]))
	}}
}

func modular[T digit.Digit, W biguint.Width](summary string, f func(x, y, m biguint.UInt[T, W]) biguint.UInt[T, W]) op[T, W] {
	return op[T, W]{args: "vvv", usage: "x y m", summary: summary, eval: func(in operands[T, W]) outcome[T, W] {
		return values(f(in.v[0], in.v[1], in.v[2]))
	}}
}

func counted[T digit.Digit, W biguint.Width](summary string, f func(biguint.UInt[T, W], uint) biguint.UInt[T, W]) op[T, W] {
	return op[T, W]{args: "vn", usage: "x n", summary: summary, eval: func(in operands[T, W]) outcome[T, W] {
		n := in.n[0]
		if n > uint64(^uint(0)) {
			n = uint64(^uint(0))
		}
		return values(f(in.v[0], uint(n)))
	}}
}

func count[T digit.Digit, W biguint.Width](summary string, f func(x biguint.UInt[T, W]) int) op[T, W] {
	return op[T, W]{args: "v", usage: "x", summary: summary, eval: func(in operands[T, W]) outcome[T, W] {
		return text[T, W](strconv.Itoa(f(in.v[0])))
	}}
}

type u[T digit.Digit, W biguint.Width] = biguint.UInt[T, W]

func opTable[T digit.Digit, W biguint.Width]() map[string]op[T, W] {
	return map[string]op[T, W]{
		// Wrapping arithmetic.
		"add": binary("wrapping addition", u[T, W].Add),
		"sub": binary("wrapping subtraction", u[T, W].Sub),
		"mul": binary("wrapping multiplication", u[T, W].Mul),
		"div": binary("quotient; Max with flags on a zero divisor", u[T, W].Div),
		"rem": binary("remainder; zero with flags on a zero divisor", u[T, W].Rem),
		"pow": binary("wrapping power", u[T, W].Pow),
		"divmod": {args: "vv", usage: "x y", summary: "quotient and remainder", eval: func(in operands[T, W]) outcome[T, W] {
			q, r := in.v[0].DivideFully(in.v[1])
			return values(q, r)
		}},
		"wmul": {args: "vv", usage: "x y", summary: "full product as low and high halves", eval: func(in operands[T, W]) outcome[T, W] {
			lo, hi := in.v[0].WideningMul(in.v[1])
			return values(lo, hi)
		}},
		"inc":      unary("wrapping increment", u[T, W].Increment),
		"dec":      unary("wrapping decrement", u[T, W].Decrement),
		"absdiff":  binary("absolute difference", u[T, W].AbsDiff),
		"midpoint": binary("(x + y) / 2 without overflow", u[T, W].Midpoint),
		"nextmul": {args: "vv", usage: "x y", summary: "smallest multiple of y not below x", eval: func(in operands[T, W]) outcome[T, W] {
			if in.v[1].IsZero() {
				return outcome[T, W]{failed: true}
			}
			return values(in.v[0].NextMultipleOf(in.v[1]))
		}},

		// Saturating and checked policies.
		"sadd": binary("saturating addition", u[T, W].SaturatingAdd),
		"ssub": binary("saturating subtraction", u[T, W].SaturatingSub),
		"smul": binary("saturating multiplication", u[T, W].SaturatingMul),
		"spow": binary("saturating power", u[T, W].SaturatingPow),
		"cadd": checkedBinary("checked addition", u[T, W].CheckedAdd),
		"csub": checkedBinary("checked subtraction", u[T, W].CheckedSub),
		"cmul": checkedBinary("checked multiplication", u[T, W].CheckedMul),
		"cdiv": checkedBinary("checked division", u[T, W].CheckedDiv),
		"crem": checkedBinary("checked remainder", u[T, W].CheckedRem),
		"cpow": checkedBinary("checked power", u[T, W].CheckedPow),

		// Modular arithmetic.
		"modadd": modular("(x + y) mod m", u[T, W].ModularAdd),
		"modsub": modular("(x - y) mod m", u[T, W].ModularSub),
		"modmul": modular("(x * y) mod m", u[T, W].ModularMul),
		"moddiv": modular("(x mod m) / (y mod m)", u[T, W].ModularDiv),
		"modrem": modular("(x mod m) % (y mod m)", u[T, W].ModularRem),
		"modpow": modular("x^y mod m", u[T, W].ModularPow),

		// Bitwise.
		"and":       binary("bitwise and", u[T, W].And),
		"or":        binary("bitwise or", u[T, W].Or),
		"xor":       binary("bitwise xor", u[T, W].Xor),
		"not":       unary("bitwise complement", u[T, W].Flip),
		"shl":       counted("shift left", u[T, W].ShiftLeft),
		"shr":       counted("shift right", u[T, W].ShiftRight),
		"rotl":      counted("rotate left", u[T, W].RotateLeft),
		"rotr":      counted("rotate right", u[T, W].RotateRight),
		"revbits":   unary("reverse the bit order", u[T, W].ReverseBits),
		"swapbytes": unary("reverse the byte order", u[T, W].SwapBytes),

		// Logarithms and roots.
		"log2":  unary("floor of log2", u[T, W].Ilog2),
		"log10": unary("floor of log10", u[T, W].Ilog10),
		"log":   binary("floor of log in base y", u[T, W].Ilog),
		"sqrt":  unary("floor of the square root", u[T, W].Isqrt),
		"root": {args: "vn", usage: "x n", summary: "floor of the n-th root", eval: func(in operands[T, W]) outcome[T, W] {
			return values(in.v[0].IrootUint(in.n[0]))
		}},
		"gcd": binary("greatest common divisor", u[T, W].Gcd),
		"lcm": binary("least common multiple", u[T, W].Lcm),

		// Queries.
		"cmp": {args: "vv", usage: "x y", summary: "-1, 0 or 1", eval: func(in operands[T, W]) outcome[T, W] {
			return text[T, W](strconv.Itoa(in.v[0].Cmp(in.v[1])))
		}},
		"isprime": {args: "v", usage: "x", summary: "Miller-Rabin primality test", eval: func(in operands[T, W]) outcome[T, W] {
			return text[T, W](strconv.FormatBool(in.v[0].IsPrimeUsingMillerRabin(in.repetitions)))
		}},
		"bits":  count("significant bit length", u[T, W].BitLen),
		"ones":  count("number of one bits", u[T, W].CountOnes),
		"zeros": count("number of zero bits", u[T, W].CountZeros),
		"lz":    count("leading zero bits", u[T, W].LeadingZeros),
		"tz":    count("trailing zero bits", u[T, W].TrailingZeros),
	}
}

func describe[T digit.Digit, W biguint.Width](ops map[string]op[T, W]) []OpInfo {
	infos := make([]OpInfo, 0, len(ops))
	for name, o := range ops {
		infos = append(infos, OpInfo{Name: name, Args: o.usage, Summary: o.summary})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}
