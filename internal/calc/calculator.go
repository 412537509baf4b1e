package calc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/uintcalc/internal/biguint"
	"github.com/agbru/uintcalc/internal/digit"
	apperrors "github.com/agbru/uintcalc/internal/errors"
)

// DefaultRepetitions is the number of random Miller-Rabin witnesses used by
// isprime and by the prime search when the caller does not choose one.
const DefaultRepetitions = 20

var (
	// ErrUnknownOp is returned for an operation name that is not registered.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrArity is returned when an operation receives the wrong number of
	// arguments.
	ErrArity = errors.New("wrong number of arguments")
)

var tracer = otel.Tracer("github.com/agbru/uintcalc/internal/calc")

// Format controls how result values are rendered.
type Format struct {
	Radix     int
	Stride    int
	Delimiter string
}

// DefaultFormat renders plain decimal.
var DefaultFormat = Format{Radix: 10, Delimiter: "_"}

// Request is a single evaluation.
type Request struct {
	Op   string
	Args []string
	// Format is used for rendering and as the default input radix.
	Format Format
	// Repetitions is the witness count for isprime; zero selects
	// DefaultRepetitions.
	Repetitions int
	// Strict turns any raised status flag into an ArithmeticError.
	Strict bool
}

// Result is the outcome of an evaluation.
type Result struct {
	Op       string
	Width    string
	Values   []string
	Flags    biguint.Flags
	Duration time.Duration
}

// Value joins the rendered values with a space.
func (r Result) Value() string { return strings.Join(r.Values, " ") }

// Candidate is one probe of the prime search. Value is rendered in decimal
// only for primes.
type Candidate struct {
	Value string
	Prime bool
}

// Calculator evaluates operations at one fixed width.
type Calculator interface {
	// Name is the registry key, such as "u256".
	Name() string
	// Bits is the width in bits.
	Bits() int
	// DigitBits is the size of one digit in bits.
	DigitBits() int
	// Ops lists the supported operations in sorted order.
	Ops() []OpInfo
	// Eval runs one operation.
	Eval(ctx context.Context, req Request) (Result, error)
	// Probe draws one odd candidate with the top bit set from src and tests
	// it with the given number of Miller-Rabin witnesses.
	Probe(src biguint.RandomSource, repetitions int) (Candidate, error)
}

type typedCalculator[T digit.Digit, W biguint.Width] struct {
	name string
	ops  map[string]op[T, W]
}

// New returns a Calculator for the UInt[T, W] instantiation registered under
// name.
func New[T digit.Digit, W biguint.Width](name string) Calculator {
	return &typedCalculator[T, W]{name: name, ops: opTable[T, W]()}
}

func (c *typedCalculator[T, W]) Name() string { return c.name }

func (c *typedCalculator[T, W]) Bits() int { return biguint.Zero[T, W]().SizeInBits() }

func (c *typedCalculator[T, W]) DigitBits() int { return digit.Bits[T]() }

func (c *typedCalculator[T, W]) Ops() []OpInfo { return describe(c.ops) }

func (c *typedCalculator[T, W]) Eval(ctx context.Context, req Request) (res Result, err error) {
	ctx, span := tracer.Start(ctx, "calc.Eval", trace.WithAttributes(
		attribute.String("calc.width", c.name),
		attribute.String("calc.op", req.Op),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("calc.flags", res.Flags.String()))
		}
		span.End()
	}()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	o, ok := c.ops[strings.ToLower(req.Op)]
	if !ok {
		return Result{}, fmt.Errorf("%w %q", ErrUnknownOp, req.Op)
	}
	if len(req.Args) != len(o.args) {
		return Result{}, fmt.Errorf("%s expects %d arguments, got %d: %w", req.Op, len(o.args), len(req.Args), ErrArity)
	}
	f := req.Format
	if f.Radix == 0 {
		f.Radix = 10
	}
	in, err := c.parseOperands(o.args, req.Args, f.Radix)
	if err != nil {
		return Result{}, err
	}
	in.repetitions = req.Repetitions
	if in.repetitions <= 0 {
		in.repetitions = DefaultRepetitions
	}

	start := time.Now()
	out := o.eval(in)
	res = Result{Op: strings.ToLower(req.Op), Width: c.name, Duration: time.Since(start)}
	if out.failed {
		return res, apperrors.ArithmeticError{Op: res.Op}
	}
	for _, v := range out.values {
		res.Flags |= v.Flags()
		s, err := v.ToStringWithRadixAndStrideAndDelimiter(f.Radix, f.Stride, f.Delimiter)
		if err != nil {
			return Result{}, err
		}
		res.Values = append(res.Values, s)
	}
	res.Values = append(res.Values, out.text...)
	if req.Strict && res.Flags != 0 {
		return res, apperrors.ArithmeticError{Op: res.Op, Flags: res.Flags.Names()}
	}
	return res, nil
}

func (c *typedCalculator[T, W]) parseOperands(kinds string, args []string, radix int) (operands[T, W], error) {
	var in operands[T, W]
	for i, a := range args {
		switch kinds[i] {
		case kindValue:
			v, err := ParseValue[T, W](a, radix)
			if err != nil {
				return in, fmt.Errorf("argument %d: %w", i+1, err)
			}
			in.v = append(in.v, v)
		case kindCount:
			n, err := strconv.ParseUint(strings.ReplaceAll(a, "_", ""), 10, 64)
			if err != nil {
				return in, apperrors.ValidationError{
					Field:   fmt.Sprintf("argument %d", i+1),
					Message: fmt.Sprintf("%q is not a native unsigned integer", a),
				}
			}
			in.n = append(in.n, n)
		}
	}
	return in, nil
}

func (c *typedCalculator[T, W]) Probe(src biguint.RandomSource, repetitions int) (Candidate, error) {
	x, err := biguint.AnyOddWithMSBSetFrom[T, W](src)
	if err != nil {
		return Candidate{}, err
	}
	prime, err := x.IsPrimeUsingMillerRabinFrom(src, repetitions)
	if err != nil {
		return Candidate{}, err
	}
	if !prime {
		return Candidate{}, nil
	}
	return Candidate{Value: x.String(), Prime: true}, nil
}

// ParseValue parses text as a UInt[T, W]. A 0x, 0o or 0b prefix overrides
// radix unless the prefix letter is itself a digit of radix.
func ParseValue[T digit.Digit, W biguint.Width](text string, radix int) (biguint.UInt[T, W], error) {
	if len(text) > 2 && text[0] == '0' {
		switch {
		case (text[1] == 'x' || text[1] == 'X') && radix < 34:
			return biguint.FromStrRadix[T, W](text[2:], 16)
		case (text[1] == 'o' || text[1] == 'O') && radix < 25:
			return biguint.FromStrRadix[T, W](text[2:], 8)
		case (text[1] == 'b' || text[1] == 'B') && radix < 12:
			return biguint.FromStrRadix[T, W](text[2:], 2)
		}
	}
	return biguint.FromStrRadix[T, W](text, radix)
}
