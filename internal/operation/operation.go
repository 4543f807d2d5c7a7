package op

import "errors"

var ErrZeroDivision = errors.New("division by zero")

type Operator interface {
	Symbol() string
	Name() string
	Exec(a, b float64) (float64, error)
}

// ADD
type add struct{}

func (a add) Symbol() string { return "+" }
func (a add) Name() string   { return "add" }

func (ad add) Exec(a, b float64) (float64, error) { return a + b, nil }

// SUB
type sub struct{}

func (s sub) Symbol() string { return "-" }
func (s sub) Name() string   { return "sub" }

func (s sub) Exec(a, b float64) (float64, error) { return a - b, nil }

// MULT
type mult struct{}

func (m mult) Symbol() string { return "*" }
func (m mult) Name() string   { return "mult" }

func (m mult) Exec(a, b float64) (float64, error) { return a * b, nil }

// DIV
type div struct{}

func (d div) Symbol() string { return "/" }
func (d div) Name() string   { return "div" }

// Exec fails only when b is exactly zero.
func (d div) Exec(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrZeroDivision
	}
	return a / b, nil
}
