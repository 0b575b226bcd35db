/*
 * DiceCalc
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package value contains the result type of dice expressions.

A Value is an integer paired with its derivation trail. The trail records every
literal, every individual die and every operator glyph which contributed to the
integer so that a result like 10 can be shown as:

	10 <= (5 (2 + 3) + 5)

Values are only created by the functions of this package. Each arithmetic
function computes the new integer and the new trail in one step so that both
cannot get out of sync.
*/
package value

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

/*
Operator glyphs which are inserted into derivation trails
*/
const (
	SymbolPlus  = "+"
	SymbolMinus = "-"
	SymbolTimes = "x"
	SymbolDiv   = "÷"
)

/*
Arithmetic related error types
*/
var (
	ErrOverflow       = errors.New("Integer overflow")
	ErrDivisionByZero = errors.New("Division by zero")
)

// Derivation trail
// ================

/*
Kind is a single element of a derivation trail. It is one of Direct, Roll
or Token.
*/
type Kind interface {
	fmt.Stringer

	isKind()
}

/*
Direct is a literal or a computed number.
*/
type Direct int64

func (Direct) isKind() {}

/*
String returns the number as a decimal string.
*/
func (d Direct) String() string {
	return strconv.FormatInt(int64(d), 10)
}

/*
Roll contains the individual die outcomes of a single roll in roll order.
*/
type Roll []Kind

func (Roll) isKind() {}

/*
String returns the outcomes in parentheses.
*/
func (r Roll) String() string {
	return "(" + joinKinds(r) + ")"
}

/*
Token is an operator glyph which is placed between two operands.
*/
type Token string

func (Token) isKind() {}

/*
String returns the glyph.
*/
func (t Token) String() string {
	return string(t)
}

// Value
// =====

/*
Value is the result of an expression together with its derivation trail.
*/
type Value struct {
	current int64  // Computed result
	all     []Kind // Derivation trail
}

/*
NewDirect creates a new value from a single number.
*/
func NewDirect(v int64) *Value {
	return &Value{v, []Kind{Direct(v)}}
}

/*
NewRoll creates a new value from the outcomes of a single dice roll. The value
is the sum of all outcomes. The trail contains the sum followed by the
individual outcomes.
*/
func NewRoll(outcomes []int64) (*Value, error) {
	return newRoll(outcomes, false)
}

/*
NewNegatedRoll creates a new value from the outcomes of a single dice roll
which counts against the result (e.g. -1d6). The value is the negated sum of
all outcomes.
*/
func NewNegatedRoll(outcomes []int64) (*Value, error) {
	return newRoll(outcomes, true)
}

/*
newRoll creates a new roll value.
*/
func newRoll(outcomes []int64, negate bool) (*Value, error) {
	var sum int64

	roll := make(Roll, 0, len(outcomes)*2)

	for i, o := range outcomes {
		var ok bool

		if sum, ok = addInt(sum, o); !ok {
			return nil, ErrOverflow
		}

		if i > 0 {
			roll = append(roll, Token(SymbolPlus))
		}
		roll = append(roll, Direct(o))
	}

	if negate {
		sum = -sum
	}

	return &Value{sum, []Kind{Direct(sum), roll}}, nil
}

/*
Current returns the computed result.
*/
func (v *Value) Current() int64 {
	return v.current
}

/*
Trail returns a copy of the derivation trail.
*/
func (v *Value) Trail() []Kind {
	return append([]Kind(nil), v.all...)
}

/*
Equal checks if two values have the same result. The derivation trail is
not compared.
*/
func (v *Value) Equal(other *Value) bool {
	return other != nil && v.current == other.current
}

/*
Clone returns a copy of this value.
*/
func (v *Value) Clone() *Value {
	return &Value{v.current, v.Trail()}
}

/*
String returns the result followed by its derivation trail.
*/
func (v *Value) String() string {
	return fmt.Sprintf("%v <= (%v)", v.current, joinKinds(v.all))
}

// Arithmetic
// ==========

/*
Add adds two values.
*/
func Add(left, right *Value) (*Value, error) {
	res, ok := addInt(left.current, right.current)
	if !ok {
		return nil, ErrOverflow
	}

	return combine(left, SymbolPlus, right, res), nil
}

/*
Sub subtracts the right value from the left value.
*/
func Sub(left, right *Value) (*Value, error) {
	a, b := left.current, right.current

	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return nil, ErrOverflow
	}

	return combine(left, SymbolMinus, right, a-b), nil
}

/*
Mul multiplies two values.
*/
func Mul(left, right *Value) (*Value, error) {
	a, b := left.current, right.current

	if a != 0 && b != 0 {
		if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
			return nil, ErrOverflow
		}

		if c := a * b; c/b != a {
			return nil, ErrOverflow
		}
	}

	return combine(left, SymbolTimes, right, a*b), nil
}

/*
Div divides the left value by the right value. The result is truncated
towards zero.
*/
func Div(left, right *Value) (*Value, error) {
	a, b := left.current, right.current

	if b == 0 {
		return nil, ErrDivisionByZero
	}

	if a == math.MinInt64 && b == -1 {
		return nil, ErrOverflow
	}

	return combine(left, SymbolDiv, right, a/b), nil
}

/*
Neg negates a value. The trail of the result is only the negated number.
*/
func Neg(v *Value) (*Value, error) {
	if v.current == math.MinInt64 {
		return nil, ErrOverflow
	}

	return NewDirect(-v.current), nil
}

// Helper functions
// ================

/*
combine builds a new value from two operands and an operator glyph.
*/
func combine(left *Value, op string, right *Value, res int64) *Value {
	all := make([]Kind, 0, len(left.all)+len(right.all)+1)

	all = append(all, left.all...)
	all = append(all, Token(op))
	all = append(all, right.all...)

	return &Value{res, all}
}

/*
addInt adds two integers. Returns false if the result overflows.
*/
func addInt(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

/*
joinKinds joins the string representations of a list of kinds with spaces.
*/
func joinKinds(kinds []Kind) string {
	var buf strings.Builder

	for i, k := range kinds {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(k.String())
	}

	return buf.String()
}
