package parser

import "regexp"

var (
	// At least one "number operator" group followed by a final number.
	// A bare number such as "42" does not match.
	expressionPattern = regexp.MustCompile(`^(\d+(\.\d+)?[+\-*/])+(\d+(\.\d+)?)$`)
	tokenPattern      = regexp.MustCompile(`\d+(\.\d+)?|[+\-*/]`)
)

func Validate(expr string) bool {
	return expressionPattern.MatchString(expr)
}
