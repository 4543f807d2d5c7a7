package parser

import (
	"strconv"
	"strings"

	op "github.com/XJIeI5/flatcalc/internal/operation"
)

type Kind int

const (
	Number Kind = iota
	Operator
)

type Token struct {
	Kind  Kind
	Value float64
	Op    op.Operator
}

func NumberToken(v float64) Token { return Token{Kind: Number, Value: v} }

func OperatorToken(o op.Operator) Token { return Token{Kind: Operator, Op: o} }

func (t Token) String() string {
	if t.Kind == Operator {
		if t.Op == nil {
			return "?"
		}
		return t.Op.Symbol()
	}
	return strconv.FormatFloat(t.Value, 'f', -1, 64)
}

// Format renders tokens separated by single spaces, e.g. "2 3 4 * +".
func Format(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
