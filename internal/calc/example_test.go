package calc_test

import (
	"context"
	"fmt"

	"github.com/agbru/uintcalc/internal/calc"
)

// ExampleCalculator_Eval evaluates expressions at 256 bits.
func ExampleCalculator_Eval() {
	c := calc.GlobalFactory().MustGet("u256")
	for _, expr := range []string{"mul 0xffffffff 0xffffffff", "sub 0 1", "cdiv 1 0"} {
		req, _ := calc.ParseExpression(expr)
		req.Format = calc.Format{Radix: 16, Stride: 8, Delimiter: "_"}
		res, err := c.Eval(context.Background(), req)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(res.Value(), res.Flags)
	}
	// Output:
	// FFFFFFFE_00000001 none
	// FFFFFFFF_FFFFFFFF_FFFFFFFF_FFFFFFFF_FFFFFFFF_FFFFFFFF_FFFFFFFF_FFFFFFFF underflow
	// error: cdiv: no representable result
}
