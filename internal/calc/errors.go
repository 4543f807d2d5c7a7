package calc

import (
	"errors"

	op "github.com/XJIeI5/flatcalc/internal/operation"
)

const InvalidExpressionMessage = "Invalid expression provided"

var (
	ErrInvalidExpression = errors.New("invalid expression")

	ErrInvalidSyntax  = errors.New("expression does not match grammar")
	ErrDivisionByZero = op.ErrZeroDivision
	ErrMalformedStack = errors.New("malformed postfix expression")
)

// InvalidExpressionError is the only error Calculate returns. Its message
// never depends on the cause; Unwrap exposes the cause for logs and tests.
type InvalidExpressionError struct {
	Expression string
	Cause      error
}

func (e *InvalidExpressionError) Error() string { return InvalidExpressionMessage }

func (e *InvalidExpressionError) Unwrap() error { return e.Cause }

func (e *InvalidExpressionError) Is(target error) bool {
	return target == ErrInvalidExpression
}

const (
	ReasonOK             = "ok"
	ReasonInvalidSyntax  = "invalid_syntax"
	ReasonDivisionByZero = "division_by_zero"
	ReasonMalformedStack = "malformed_stack"
	ReasonUnknown        = "unknown"
)

func Reason(err error) string {
	switch {
	case err == nil:
		return ReasonOK
	case errors.Is(err, ErrInvalidSyntax):
		return ReasonInvalidSyntax
	case errors.Is(err, ErrDivisionByZero):
		return ReasonDivisionByZero
	case errors.Is(err, ErrMalformedStack):
		return ReasonMalformedStack
	default:
		return ReasonUnknown
	}
}
