// Package calc evaluates flat arithmetic expressions such as "2+3*4".
//
// Numbers are non-negative decimals, operators are + - * / with the usual
// priorities and left to right evaluation inside one priority. There are no
// parentheses and no unary operators. Every function here is pure and safe
// for concurrent use.
package calc

import (
	"github.com/XJIeI5/flatcalc/internal/parser"
)

// Evaluate runs the pipeline and reports the internal failure as is:
// ErrInvalidSyntax, ErrDivisionByZero or ErrMalformedStack. The postfix form
// is returned whenever the expression passed validation.
func Evaluate(expr string) (float64, []parser.Token, error) {
	postfix, ok := parser.ParseToPostfix(expr)
	if !ok {
		return 0, nil, ErrInvalidSyntax
	}
	res, err := EvaluatePostfix(postfix)
	if err != nil {
		return 0, postfix, err
	}
	return res, postfix, nil
}

// Calculate is the caller facing entry point. Any failure is an
// *InvalidExpressionError.
func Calculate(expr string) (float64, error) {
	res, _, err := Evaluate(expr)
	if err != nil {
		return 0, &InvalidExpressionError{Expression: expr, Cause: err}
	}
	return res, nil
}
