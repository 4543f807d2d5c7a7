package parser_test

import (
	"math"
	"strings"
	"testing"

	op "github.com/XJIeI5/flatcalc/internal/operation"
	"github.com/XJIeI5/flatcalc/internal/parser"
	"github.com/stretchr/testify/assert"
)

func TestValidateAccepts(t *testing.T) {
	for _, expr := range []string{
		"1+2",
		"2+3*4",
		"8/4/2",
		"1.5+2.5",
		"0.1+0.2",
		"10-3-2",
		"100*0",
		"007/3",
	} {
		assert.True(t, parser.Validate(expr), expr)
	}
}

func TestValidateRejects(t *testing.T) {
	for _, expr := range []string{
		"",
		"42",
		"4.2",
		"+2",
		"2+",
		"2++3",
		"2 3",
		"2 + 3",
		"2+a",
		"(1+2)",
		"-1+2",
		"1.+2",
		".5+2",
		"1..5+2",
		"2^3",
		"1+2\n",
		"١+٢",
	} {
		assert.False(t, parser.Validate(expr), "%q", expr)
	}
}

func TestTokenize(t *testing.T) {
	tokens := parser.Tokenize("12.5*3-0.25")
	assert.Equal(t, []parser.Token{
		parser.NumberToken(12.5),
		parser.OperatorToken(op.Mult),
		parser.NumberToken(3),
		parser.OperatorToken(op.Sub),
		parser.NumberToken(0.25),
	}, tokens)
}

func TestTokenizeSkipsUnknown(t *testing.T) {
	tokens := parser.Tokenize("2 + 3")
	assert.Equal(t, []parser.Token{
		parser.NumberToken(2),
		parser.OperatorToken(op.Add),
		parser.NumberToken(3),
	}, tokens)
	assert.Equal(t, "2 + 3", parser.Format(tokens))
	assert.Empty(t, parser.Tokenize(" \t()a"))
}

func TestProcedureOfActions(t *testing.T) {
	compare(t, "2+2*2", "2 2 2 * +")
	compare(t, "200/5+1", "200 5 / 1 +")
	compare(t, "1+2*3/4", "1 2 3 * 4 / +")
	compare(t, "2*3+4", "2 3 * 4 +")
}

func TestEqualPriorityIsLeftToRight(t *testing.T) {
	compare(t, "8/4/2", "8 4 / 2 /")
	compare(t, "10-3-2", "10 3 - 2 -")
	compare(t, "1-2+3", "1 2 - 3 +")
	compare(t, "6/3*2", "6 3 / 2 *")
}

func TestFloatNumber(t *testing.T) {
	compare(t, "2.5+5", "2.5 5 +")
	compare(t, "0.1+0.2", "0.1 0.2 +")
}

func TestParseToPostfixRejects(t *testing.T) {
	tokens, ok := parser.ParseToPostfix("2++3")
	assert.False(t, ok)
	assert.Nil(t, tokens)
}

func TestToPostfixEmpty(t *testing.T) {
	assert.Empty(t, parser.ToPostfix(nil))
}

func compare(t *testing.T, expr, expectedExpr string) {
	t.Helper()
	tokens, ok := parser.ParseToPostfix(expr)
	if !ok {
		t.Errorf("expression '%s' rejected", expr)
		return
	}
	if val := parser.Format(tokens); val != expectedExpr {
		t.Errorf("value is not '%s', got '%s'", expectedExpr, val)
	}
}

func TestTokenizeHugeNumber(t *testing.T) {
	huge := "1" + strings.Repeat("0", 400)
	tokens := parser.Tokenize(huge + "+1")
	if assert.Len(t, tokens, 3) {
		assert.True(t, math.IsInf(tokens[0].Value, 1))
	}
}
