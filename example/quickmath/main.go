// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command quickmath computes a single arithmetic operation, with both
// operands and the operator supplied through configuration. Try it
// with:
//
//	FIRST=6 SECOND=7 OPERATOR='*' go run ./example/quickmath
package main

import (
	"fmt"

	"github.com/z5labs/microcfg"
)

type operator rune

const (
	opSum            operator = '+'
	opSubtraction    operator = '-'
	opMultiplication operator = '*'
	opDivision       operator = '/'
)

func parseOperator(s string) (operator, error) {
	switch s {
	case "+":
		return opSum, nil
	case "-":
		return opSubtraction, nil
	case "*":
		return opMultiplication, nil
	case "/":
		return opDivision, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

var (
	first = microcfg.Required[uint64]("FIRST", microcfg.Chain{
		microcfg.ParseUint64(),
	})
	second = microcfg.Required[uint64]("SECOND", microcfg.Chain{
		microcfg.ParseUint64(),
	})
	op = microcfg.Required[operator]("OPERATOR", microcfg.Chain{
		microcfg.Parse(parseOperator),
	})
)

func main() {
	a, b := first(), second()

	var result uint64
	switch op() {
	case opSum:
		result = a + b
	case opSubtraction:
		result = a - b
	case opMultiplication:
		result = a * b
	case opDivision:
		result = a / b
	}

	fmt.Printf("%d %c %d = %d\n", a, op(), b, result)
}
