package parser

import (
	"errors"
	"strconv"

	op "github.com/XJIeI5/flatcalc/internal/operation"
	"github.com/informitas/stack"
)

// Tokenize expects input accepted by Validate. Characters that belong to
// neither a number nor an operator are skipped.
func Tokenize(expr string) []Token {
	matches := tokenPattern.FindAllString(expr, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		if oper, ok := op.Lookup(m); ok {
			tokens = append(tokens, OperatorToken(oper))
			continue
		}
		// out of range literals keep the +Inf ParseFloat returns
		v, err := strconv.ParseFloat(m, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		tokens = append(tokens, NumberToken(v))
	}
	return tokens
}

// ToPostfix reorders infix tokens into reverse polish order. Operators of
// equal priority are popped before the new one is pushed, so they evaluate
// left to right: 8/4/2 becomes 8 4 / 2 /.
func ToPostfix(tokens []Token) []Token {
	res := make([]Token, 0, len(tokens))
	s := stack.NewStack[op.Operator]()

	for _, t := range tokens {
		if t.Kind == Number {
			res = append(res, t)
			continue
		}
		res = append(res, popHigherOrEqual(s, op.Priority(t.Op))...)
		s.Push(t.Op)
	}

	for !s.IsEmpty() {
		oper, _ := s.Pop()
		res = append(res, OperatorToken(oper))
	}
	return res
}

func popHigherOrEqual(operStack *stack.Stack[op.Operator], priority int) []Token {
	var popped []Token
	for operStack.Size() > 0 {
		peek, _ := operStack.Top()
		if op.Priority(peek) < priority {
			break
		}
		oper, _ := operStack.Pop()
		popped = append(popped, OperatorToken(oper))
	}
	return popped
}

// ParseToPostfix validates, tokenizes and converts expr. The second result
// is false when expr is rejected by Validate.
func ParseToPostfix(expr string) ([]Token, bool) {
	if !Validate(expr) {
		return nil, false
	}
	return ToPostfix(Tokenize(expr)), true
}
