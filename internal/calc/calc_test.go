package calc_test

import (
	"errors"
	"testing"

	"github.com/XJIeI5/flatcalc/internal/calc"
	op "github.com/XJIeI5/flatcalc/internal/operation"
	"github.com/XJIeI5/flatcalc/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	cases := []struct {
		expr     string
		expected float64
	}{
		{"2+3*4", 14},
		{"2*3+4", 10},
		{"8/4/2", 1},
		{"10-3-2", 5},
		{"1.5+2.5", 4},
		{"200/5+1", 41},
		{"1+2*3/4", 2.5},
		{"6/3*2", 4},
		{"1-2+3", 2},
		{"0/5", 0},
		{"2*3-4*5", -14},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()
			got, err := calc.Calculate(tc.expr)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, got, 1e-9)
		})
	}
}

func TestCalculateDecimalTolerance(t *testing.T) {
	got, err := calc.Calculate("0.1+0.2")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, got, 1e-9)
}

func TestCalculateRejectsMalformed(t *testing.T) {
	for _, expr := range []string{"", "42", "+2", "2+", "2++3", "2 3", "2+a", "(1+2)*3"} {
		_, err := calc.Calculate(expr)
		require.Error(t, err, "%q", expr)
		assert.ErrorIs(t, err, calc.ErrInvalidExpression)
		assert.ErrorIs(t, err, calc.ErrInvalidSyntax)
		assert.Equal(t, calc.InvalidExpressionMessage, err.Error())
	}
}

func TestCalculateDivisionByZero(t *testing.T) {
	for _, expr := range []string{"5/0", "1+5/0.0", "3/2/0", "1/0*0"} {
		_, err := calc.Calculate(expr)
		require.Error(t, err, expr)
		assert.ErrorIs(t, err, calc.ErrInvalidExpression)
		assert.ErrorIs(t, err, calc.ErrDivisionByZero)
		assert.NotErrorIs(t, err, calc.ErrInvalidSyntax)
		assert.Equal(t, calc.InvalidExpressionMessage, err.Error())
		assert.Equal(t, calc.ReasonDivisionByZero, calc.Reason(err))
	}
}

func TestCalculateErrorCarriesExpression(t *testing.T) {
	_, err := calc.Calculate("2+")
	var invalid *calc.InvalidExpressionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "2+", invalid.Expression)
	assert.Equal(t, calc.ErrInvalidSyntax, invalid.Cause)
}

func TestCalculateIsIdempotent(t *testing.T) {
	first, err := calc.Calculate("7/3+1.25*4-0.5")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := calc.Calculate("7/3+1.25*4-0.5")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEvaluateReturnsPostfix(t *testing.T) {
	res, postfix, err := calc.Evaluate("2+3*4")
	require.NoError(t, err)
	assert.Equal(t, 14.0, res)
	assert.Equal(t, "2 3 4 * +", parser.Format(postfix))

	_, postfix, err = calc.Evaluate("1/0")
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)
	assert.Equal(t, "1 0 /", parser.Format(postfix))

	_, postfix, err = calc.Evaluate("1/")
	assert.Equal(t, calc.ErrInvalidSyntax, err)
	assert.Nil(t, postfix)
}

func TestEvaluatePostfixOperandOrder(t *testing.T) {
	got, err := calc.EvaluatePostfix([]parser.Token{
		parser.NumberToken(10), parser.NumberToken(4), parser.OperatorToken(op.Sub),
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)

	got, err = calc.EvaluatePostfix([]parser.Token{
		parser.NumberToken(1), parser.NumberToken(4), parser.OperatorToken(op.Div),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.25, got)
}

func TestEvaluatePostfixMalformed(t *testing.T) {
	cases := map[string][]parser.Token{
		"empty":          nil,
		"two values":     {parser.NumberToken(1), parser.NumberToken(2)},
		"lone operator":  {parser.OperatorToken(op.Add)},
		"one operand":    {parser.NumberToken(1), parser.OperatorToken(op.Mult)},
		"nil operator":   {parser.NumberToken(1), parser.NumberToken(2), {Kind: parser.Operator}},
		"infix order":    {parser.NumberToken(1), parser.OperatorToken(op.Add), parser.NumberToken(2)},
		"extra operator": {parser.NumberToken(1), parser.NumberToken(2), parser.OperatorToken(op.Add), parser.OperatorToken(op.Add)},
	}

	for name, postfix := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := calc.EvaluatePostfix(postfix)
			assert.ErrorIs(t, err, calc.ErrMalformedStack)
			assert.Equal(t, calc.ReasonMalformedStack, calc.Reason(err))
		})
	}
}

func TestReason(t *testing.T) {
	assert.Equal(t, calc.ReasonOK, calc.Reason(nil))
	assert.Equal(t, calc.ReasonInvalidSyntax, calc.Reason(calc.ErrInvalidSyntax))
	assert.Equal(t, calc.ReasonUnknown, calc.Reason(errors.New("boom")))

	_, err := calc.Calculate("2**2")
	assert.Equal(t, calc.ReasonInvalidSyntax, calc.Reason(err))
}
