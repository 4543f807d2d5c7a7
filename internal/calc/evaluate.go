package calc

import (
	"fmt"

	"github.com/XJIeI5/flatcalc/internal/parser"
	"github.com/informitas/stack"
)

// EvaluatePostfix walks a reverse polish sequence with a value stack. For an
// operator the top value is the right operand, so "8 2 /" is 8/2.
func EvaluatePostfix(postfix []parser.Token) (float64, error) {
	locals := stack.NewStack[float64]()

	for i, t := range postfix {
		if t.Kind == parser.Number {
			locals.Push(t.Value)
			continue
		}
		if t.Op == nil {
			return 0, fmt.Errorf("%w: token %d has no operator", ErrMalformedStack, i)
		}
		if locals.Size() < 2 {
			return 0, fmt.Errorf("%w: '%s' at %d needs two operands, have %d",
				ErrMalformedStack, t.Op.Symbol(), i, locals.Size())
		}
		b, _ := locals.Pop()
		a, _ := locals.Pop()
		res, err := t.Op.Exec(a, b)
		if err != nil {
			return 0, fmt.Errorf("%v %s %v: %w", a, t.Op.Symbol(), b, err)
		}
		locals.Push(res)
	}

	if locals.Size() != 1 {
		return 0, fmt.Errorf("%w: %d values left on stack", ErrMalformedStack, locals.Size())
	}
	res, _ := locals.Pop()
	return res, nil
}
