package op

var (
	Add  Operator = add{}
	Sub  Operator = sub{}
	Mult Operator = mult{}
	Div  Operator = div{}
)

var Operators = []Operator{Add, Sub, Mult, Div}

var operationPriority = map[Operator]int{
	Add:  1,
	Sub:  1,
	Mult: 2,
	Div:  2,
}

// Priority returns 0 for operators outside the table.
func Priority(o Operator) int {
	return operationPriority[o]
}

func Lookup(symbol string) (Operator, bool) {
	for _, o := range Operators {
		if o.Symbol() == symbol {
			return o, true
		}
	}
	return nil, false
}
