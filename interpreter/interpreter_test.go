/*
 * DiceCalc
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package interpreter

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/krotik/dicecalc/parser"
	"github.com/krotik/dicecalc/value"
	"github.com/krotik/ecal/util"
)

func evalString(input string, src Source) (*value.Value, error) {
	ast, err := parser.Parse("mytest", input)
	if err != nil {
		return nil, err
	}

	return NewInterpreter("mytest", src).Evaluate(ast)
}

func TestArithmetic(t *testing.T) {

	for input, expected := range map[string]int64{
		"1":               1,
		"-1":              -1,
		"2 + 3 * 2":       8,
		"2 + (3 * 2)":     8,
		"2 * (3 + 2)":     10,
		"1 / 2":           0,
		"6 / 3":           2,
		"1 + 2 * 3":       7,
		"(1 + 2) * 3":     9,
		"10 - 2 - 3":      5,
		"7 / 2":           3,
		"-7 / 2":          -3,
		"7 / -2":          -3,
		"--5":             5,
		"- (3 - 5)":       2,
		"2 * 3 / 4":       1,
		"24 / 2 / 3":      4,
		"1 - 2 + 3":       2,
		"８ ÷ ２ × ３ − １": 11,
	} {
		res, err := evalString(input, NewSequenceSource())
		if err != nil || res.Current() != expected {
			t.Error("Unexpected result for", input, ":", res, err)
			return
		}
	}

	res, err := evalString("5 - 1 * 3", NewSequenceSource())
	if err != nil || res.String() != "2 <= (5 - 1 x 3)" {
		t.Error("Unexpected result:", res, err)
		return
	}

	// Negation and groups collapse the trail

	res, err = evalString("-(2 + 3) + 1", NewSequenceSource())
	if err != nil || res.String() != "-4 <= (-5 + 1)" {
		t.Error("Unexpected result:", res, err)
		return
	}

	res, err = evalString("(2 + 3) / 2", NewSequenceSource())
	if err != nil || res.String() != "2 <= (2 + 3 ÷ 2)" {
		t.Error("Unexpected result:", res, err)
		return
	}
}

func TestRolls(t *testing.T) {

	res, err := evalString("5 + 2d6", NewSequenceSource(2, 3))
	if err != nil || res.String() != "10 <= (5 (2 + 3) + 5)" {
		t.Error("Unexpected result:", res, err)
		return
	}

	res, err = evalString("-1d6", NewSequenceSource(4))
	if err != nil || res.String() != "-4 <= (-4 (4))" {
		t.Error("Unexpected result:", res, err)
		return
	}

	res, err = evalString("(1+1)d(3*2) x 2", NewSequenceSource(6, 1))
	if err != nil || res.String() != "14 <= (7 (6 + 1) x 2)" {
		t.Error("Unexpected result:", res, err)
		return
	}

	// Faces larger than the die wrap around

	res, err = evalString("3d4", NewSequenceSource(5, 4, 0))
	if err != nil || res.String() != "9 <= (9 (1 + 4 + 4))" {
		t.Error("Unexpected result:", res, err)
		return
	}

	// Chained rolls use the result of the first roll as quantity

	res, err = evalString("2d6d2", NewSequenceSource(1, 2, 1, 2, 2))
	if err != nil || res.String() != "5 <= (5 (1 + 2 + 2))" {
		t.Error("Unexpected result:", res, err)
		return
	}

	// The sequence source can be replayed

	src := NewSequenceSource(3, 5)

	res1, err := evalString("2d6", src)
	if err != nil {
		t.Error(err)
		return
	}

	src.Reset()

	res2, err := evalString("2d6", src)
	if err != nil || !res1.Equal(res2) || res1.String() != res2.String() {
		t.Error("Unexpected result:", res1, res2, err)
		return
	}
}

func TestDiceBounds(t *testing.T) {

	src, err := NewRandomSource()
	if err != nil {
		t.Error(err)
		return
	}

	for _, faces := range []int{1, 2, 6, 20, 100} {
		res, err := evalString(fmt.Sprintf("500d%v", faces), src)
		if err != nil {
			t.Error(err)
			return
		}

		trail := res.Trail()
		roll := trail[1].(value.Roll)

		var sum int64
		var count int

		for _, k := range roll {
			if d, ok := k.(value.Direct); ok {
				if d < 1 || int(d) > faces {
					t.Error("Die out of bounds:", d, "faces:", faces)
					return
				}
				sum += int64(d)
				count++
			}
		}

		if count != 500 || sum != res.Current() || trail[0] != value.Direct(sum) {
			t.Error("Unexpected roll:", count, sum, res.Current())
			return
		}
	}
}

func TestReplay(t *testing.T) {

	res1, err := evalString("10d20 + 3d6 * 2", NewSeededSource(42))
	if err != nil {
		t.Error(err)
		return
	}

	res2, err := evalString("10d20 + 3d6 * 2", NewSeededSource(42))
	if err != nil {
		t.Error(err)
		return
	}

	if !res1.Equal(res2) || res1.String() != res2.String() {
		t.Error("Seeded evaluations should be equal:", res1, res2)
		return
	}
}

func TestRuntimeErrors(t *testing.T) {

	_, err := evalString("1 / 0", NewSequenceSource())
	if err == nil || err.Error() != "Evaluation error in mytest: Division by zero (cannot calculate 1 div 0) (Line:1 Pos:3)" {
		t.Error("Unexpected result:", err)
		return
	}

	re := err.(*RuntimeError)
	if !errors.Is(err, ErrDivisionByZero) || re.Span.String() != "0..5" || re.Node.Name != parser.NodeDIV {
		t.Error("Unexpected error details:", re.Span, re.Node)
		return
	}

	_, err = evalString("1 + 4 / (2 - 2)", NewSequenceSource())
	if !errors.Is(err, ErrDivisionByZero) || err.(*RuntimeError).Span.String() != "4..15" {
		t.Error("Unexpected result:", err)
		return
	}

	for _, input := range []string{
		"9223372036854775807 + 1",
		"-9223372036854775807 - 2",
		"9223372036854775807 * 2",
		"-(-9223372036854775807 - 1)",
		"(-9223372036854775807 - 1) / -1",
	} {
		if _, err := evalString(input, NewSequenceSource()); !errors.Is(err, ErrOverflow) {
			t.Error("Unexpected result for", input, ":", err)
			return
		}
	}

	_, err = evalString("0d6", NewSequenceSource())
	if err == nil || err.Error() != "Evaluation error in mytest: Invalid dice (cannot roll zero dice) (Line:1 Pos:2)" {
		t.Error("Unexpected result:", err)
		return
	}

	for _, input := range []string{"2d0", "2d-1", "(1-1)d6"} {
		if _, err := evalString(input, NewSequenceSource()); !errors.Is(err, ErrInvalidDice) {
			t.Error("Unexpected result for", input, ":", err)
			return
		}
	}

	for _, input := range []string{"1001d6", "-1001d6", "1d1000001"} {
		if _, err := evalString(input, NewSequenceSource()); !errors.Is(err, ErrTooManyDice) {
			t.Error("Unexpected result for", input, ":", err)
			return
		}
	}

	// Errors in operands are passed on unchanged

	_, err = evalString("(1 / 0)d6", NewSequenceSource())
	if re, ok := err.(*RuntimeError); !ok || re.Node.Name != parser.NodeDIV {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestDiceLimits(t *testing.T) {

	ast, err := parser.Parse("mytest", "1001d1")
	if err != nil {
		t.Error(err)
		return
	}

	i := NewInterpreter("mytest", NewSequenceSource(1))

	if _, err := i.Evaluate(ast); !errors.Is(err, ErrTooManyDice) {
		t.Error("Unexpected result:", err)
		return
	}

	i.MaxDiceQuantity = 0

	if res, err := i.Evaluate(ast); err != nil || res.Current() != 1001 {
		t.Error("Unexpected result:", res, err)
		return
	}

	// A disabled limit still has a hard ceiling

	for _, input := range []string{"9223372036854775807d1", "-9223372036854775807d1", "100001d1"} {
		ast, err := parser.Parse("mytest", input)
		if err != nil {
			t.Error(err)
			return
		}

		if _, err := i.Evaluate(ast); !errors.Is(err, ErrTooManyDice) {
			t.Error("Unexpected result for", input, ":", err)
			return
		}
	}

	i.MaxDiceQuantity = -1

	ast, _ = parser.Parse("mytest", "100001d1")
	if _, err := i.Evaluate(ast); err == nil ||
		err.Error() != "Evaluation error in mytest: Dice limit exceeded (cannot roll 100001 dice (maximum is 100000)) (Line:1 Pos:7)" {
		t.Error("Unexpected result:", err)
		return
	}

	ast, _ = parser.Parse("mytest", "100000d1")
	if res, err := i.Evaluate(ast); err != nil || res.Current() != HardMaxDiceQuantity {
		t.Error("Unexpected result:", res, err)
		return
	}

	// Configured limits above the hard ceiling are capped

	i.MaxDiceQuantity = HardMaxDiceQuantity * 10

	ast, _ = parser.Parse("mytest", "100001d1")
	if _, err := i.Evaluate(ast); !errors.Is(err, ErrTooManyDice) {
		t.Error("Unexpected result:", err)
		return
	}

	i.MaxDiceQuantity = 5

	ast, _ = parser.Parse("mytest", "6d6")
	if _, err := i.Evaluate(ast); err == nil ||
		err.Error() != "Evaluation error in mytest: Dice limit exceeded (cannot roll 6 dice (maximum is 5)) (Line:1 Pos:2)" {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestLogging(t *testing.T) {

	ast, err := parser.Parse("mytest", "3d6 + 1d4")
	if err != nil {
		t.Error(err)
		return
	}

	logger := util.NewMemoryLogger(10)

	i := NewInterpreter("mytest", NewSequenceSource(1, 2, 3, 4))
	i.Logger = logger

	if res, err := i.Evaluate(ast); err != nil || res.Current() != 10 {
		t.Error("Unexpected result:", res, err)
		return
	}

	if res := logger.String(); !strings.Contains(res, "Rolled 3 times with a d6: 1, 2, 3") ||
		!strings.Contains(res, "Rolled 1 time with a d4: 4") {
		t.Error("Unexpected log output:", res)
		return
	}

	// No logger is fine

	i.Logger = nil
	i.Source.(*SequenceSource).Reset()

	if res, err := i.Evaluate(ast); err != nil || res.Current() != 10 {
		t.Error("Unexpected result:", res, err)
		return
	}
}

func TestInvalidTrees(t *testing.T) {
	i := NewInterpreter("mytest", NewSequenceSource())

	if _, err := i.Evaluate(nil); err == nil ||
		err.Error() != "Evaluation error in mytest: Invalid construct (no expression given)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := i.Evaluate(&parser.ASTNode{Name: "foo"}); err == nil ||
		err.Error() != "Evaluation error in mytest: Unknown node kind (unknown node `foo`)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := i.Evaluate(&parser.ASTNode{Name: parser.NodeVALUE}); !errors.Is(err, ErrInvalidNode) {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := i.Evaluate(&parser.ASTNode{Name: parser.NodeROLL}); err == nil ||
		err.Error() != "Evaluation error in mytest: Invalid construct (node `roll` has 0 children)" {
		t.Error("Unexpected result:", err)
		return
	}

	one := &parser.ASTNode{Name: parser.NodeVALUE, Value: value.NewDirect(1)}

	if _, err := NewInterpreter("mytest", nil).Evaluate(one); err == nil ||
		err.Error() != "Evaluation error in mytest: Invalid construct (no source of randomness given)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := i.Evaluate(&parser.ASTNode{Name: parser.NodePLUS,
		Children: []*parser.ASTNode{one}}); err == nil ||
		err.Error() != "Evaluation error in mytest: Invalid construct (node `plus` has 1 child)" {
		t.Error("Unexpected result:", err)
		return
	}

	if _, err := i.Evaluate(&parser.ASTNode{Name: parser.NodeGROUP,
		Children: []*parser.ASTNode{one, one}}); !errors.Is(err, ErrInvalidNode) {
		t.Error("Unexpected result:", err)
		return
	}
}

func TestSequenceSource(t *testing.T) {
	src := NewSequenceSource(1, 6, 7)

	for _, expected := range []int{0, 5, 0, 0} {
		if res := src.Intn(6); res != expected {
			t.Error("Unexpected result:", res, "expected:", expected)
			return
		}
	}

	if res := NewSequenceSource().Intn(6); res != 0 {
		t.Error("Unexpected result:", res)
		return
	}

	if res := NewSequenceSource(-1).Intn(6); res != 4 {
		t.Error("Unexpected result:", res)
		return
	}

	if _, err := NewSeed(); err != nil {
		t.Error(err)
		return
	}
}
