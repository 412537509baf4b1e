package calc

import (
	"errors"
	"strings"
)

// ErrEmptyExpression is returned by ParseExpression for blank input.
var ErrEmptyExpression = errors.New("empty expression")

// ParseExpression splits a prefix expression such as "mul 0xff 3" into an
// operation and its arguments. Format, repetitions and strictness are left
// for the caller to fill in.
func ParseExpression(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Request{}, ErrEmptyExpression
	}
	return Request{Op: strings.ToLower(fields[0]), Args: fields[1:]}, nil
}

// Lookup returns the description of op, if the calculator supports it.
func Lookup(c Calculator, op string) (OpInfo, bool) {
	for _, info := range c.Ops() {
		if info.Name == op {
			return info, true
		}
	}
	return OpInfo{}, false
}
