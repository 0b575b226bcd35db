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
Package interpreter evaluates parsed dice expressions.

The interpreter walks an AST produced by the parser package bottom-up and
produces a value.Value which carries the result and its derivation trail.
Dice are rolled through an injectable Source so that evaluations can be
replayed with a fixed seed or a fixed sequence of faces.

An Interpreter is not safe for concurrent use.
*/
package interpreter

import (
	"fmt"
	"math"
	"strings"

	"github.com/krotik/common/stringutil"
	"github.com/krotik/dicecalc/config"
	"github.com/krotik/dicecalc/parser"
	"github.com/krotik/dicecalc/value"
	"github.com/krotik/ecal/util"
)

/*
HardMaxDiceQuantity is the maximum number of dice in one roll. It applies
even if the configured limit is disabled.
*/
const HardMaxDiceQuantity = 100000

/*
evalFunc evaluates a single AST node.
*/
type evalFunc func(*Interpreter, *parser.ASTNode) (*value.Value, error)

/*
evalMap maps node names to evaluation functions
*/
var evalMap map[string]evalFunc

/*
arithmeticMap maps binary node names to arithmetic functions
*/
var arithmeticMap = map[string]func(left, right *value.Value) (*value.Value, error){
	parser.NodePLUS:  value.Add,
	parser.NodeMINUS: value.Sub,
	parser.NodeTIMES: value.Mul,
	parser.NodeDIV:   value.Div,
}

func init() {
	evalMap = map[string]evalFunc{
		parser.NodeVALUE: evalValue,
		parser.NodeGROUP: evalGroup,
		parser.NodeROLL:  evalRoll,
		parser.NodePLUS:  evalArithmetic,
		parser.NodeMINUS: evalArithmetic,
		parser.NodeTIMES: evalArithmetic,
		parser.NodeDIV:   evalArithmetic,
	}
}

/*
Interpreter evaluates dice expressions.
*/
type Interpreter struct {
	Name            string      // Name of the evaluated source
	Source          Source      // Source of randomness for dice rolls (must not be nil)
	Logger          util.Logger // Logger for roll activity
	MaxDiceQuantity int64       // Maximum number of dice in one roll (<= 0 for HardMaxDiceQuantity)
	MaxDiceFaces    int64       // Maximum number of faces of a die (<= 0 for no limit)
}

/*
NewInterpreter creates a new interpreter which rolls dice with a given source.
The dice limits are taken from the configuration.
*/
func NewInterpreter(name string, src Source) *Interpreter {
	return &Interpreter{
		Name:            name,
		Source:          src,
		Logger:          util.NewNullLogger(),
		MaxDiceQuantity: config.Int(config.MaxDiceQuantity),
		MaxDiceFaces:    config.Int(config.MaxDiceFaces),
	}
}

/*
Evaluate evaluates a given AST and returns its value.
*/
func (i *Interpreter) Evaluate(ast *parser.ASTNode) (*value.Value, error) {
	if ast == nil {
		return nil, &RuntimeError{i.Name, ErrInvalidNode, "no expression given", nil, parser.Span{}, 0, 0}
	} else if i.Source == nil {
		return nil, &RuntimeError{i.Name, ErrInvalidNode, "no source of randomness given", ast, ast.Span, 0, 0}
	}

	return i.eval(ast)
}

/*
eval evaluates a single node.
*/
func (i *Interpreter) eval(node *parser.ASTNode) (*value.Value, error) {
	f, ok := evalMap[node.Name]
	if !ok {
		return nil, i.newRuntimeError(ErrUnknownNode, fmt.Sprintf("unknown node `%v`", node.Name), node)
	}

	return f(i, node)
}

/*
checkChildren makes sure that a node has an expected number of children.
*/
func (i *Interpreter) checkChildren(node *parser.ASTNode, counts ...int) error {
	for _, c := range counts {
		if len(node.Children) == c {
			return nil
		}
	}

	return i.newRuntimeError(ErrInvalidNode, fmt.Sprintf("node `%v` has %v child%v",
		node.Name, len(node.Children), pluralChildren(len(node.Children))), node)
}

// Evaluation functions
// ====================

/*
evalValue returns a copy of a literal.
*/
func evalValue(i *Interpreter, node *parser.ASTNode) (*value.Value, error) {
	if node.Value == nil {
		return nil, i.newRuntimeError(ErrInvalidNode, "literal without value", node)
	}

	return node.Value.Clone(), nil
}

/*
evalGroup returns the value of the grouped expression unchanged.
*/
func evalGroup(i *Interpreter, node *parser.ASTNode) (*value.Value, error) {
	if err := i.checkChildren(node, 1); err != nil {
		return nil, err
	}

	return i.eval(node.Children[0])
}

/*
evalArithmetic evaluates negation and the binary operators.
*/
func evalArithmetic(i *Interpreter, node *parser.ASTNode) (*value.Value, error) {
	if node.IsUnary() {
		v, err := i.eval(node.Children[0])
		if err != nil {
			return nil, err
		}

		res, err := value.Neg(v)
		if err != nil {
			return nil, i.newRuntimeError(err, fmt.Sprintf("cannot negate %v", v.Current()), node)
		}

		return res, nil
	}

	if err := i.checkChildren(node, 2); err != nil {
		return nil, err
	}

	left, err := i.eval(node.Children[0])
	if err != nil {
		return nil, err
	}

	right, err := i.eval(node.Children[1])
	if err != nil {
		return nil, err
	}

	res, err := arithmeticMap[node.Name](left, right)
	if err != nil {
		return nil, i.newRuntimeError(err, fmt.Sprintf("cannot calculate %v %v %v",
			left.Current(), node.Name, right.Current()), node)
	}

	return res, nil
}

/*
evalRoll rolls a number of dice. A negative quantity rolls the dice against
the result.
*/
func evalRoll(i *Interpreter, node *parser.ASTNode) (*value.Value, error) {
	if err := i.checkChildren(node, 2); err != nil {
		return nil, err
	}

	quantity, err := i.eval(node.Children[0])
	if err != nil {
		return nil, err
	}

	faces, err := i.eval(node.Children[1])
	if err != nil {
		return nil, err
	}

	n, f := quantity.Current(), faces.Current()

	if n == 0 {
		return nil, i.newRuntimeError(ErrInvalidDice, "cannot roll zero dice", node)
	} else if f < 1 {
		return nil, i.newRuntimeError(ErrInvalidDice,
			fmt.Sprintf("a die needs at least one face, got %v", f), node)
	}

	limit := i.MaxDiceQuantity
	if limit <= 0 || limit > HardMaxDiceQuantity {
		limit = HardMaxDiceQuantity
	}

	if n > limit || n < -limit {
		return nil, i.newRuntimeError(ErrTooManyDice,
			fmt.Sprintf("cannot roll %v dice (maximum is %v)", n, limit), node)
	} else if (i.MaxDiceFaces > 0 && f > i.MaxDiceFaces) || f > math.MaxInt32 {
		return nil, i.newRuntimeError(ErrTooManyDice,
			fmt.Sprintf("cannot roll a die with %v faces", f), node)
	}

	negative := n < 0
	if negative {
		n = -n
	}

	outcomes := make([]int64, n)
	for j := range outcomes {
		outcomes[j] = int64(i.Source.Intn(int(f))) + 1
	}

	i.logRoll(outcomes, f)

	var res *value.Value

	if negative {
		res, err = value.NewNegatedRoll(outcomes)
	} else {
		res, err = value.NewRoll(outcomes)
	}

	if err != nil {
		return nil, i.newRuntimeError(err, fmt.Sprintf("cannot sum %v dice", n), node)
	}

	return res, nil
}

// Helper functions
// ================

/*
logRoll logs the outcomes of a roll.
*/
func (i *Interpreter) logRoll(outcomes []int64, faces int64) {
	if i.Logger == nil {
		return
	}

	strs := make([]string, len(outcomes))
	for j, o := range outcomes {
		strs[j] = fmt.Sprint(o)
	}

	i.Logger.LogDebug(fmt.Sprintf("Rolled %v time%v with a d%v: %v",
		len(outcomes), stringutil.Plural(len(outcomes)), faces, strings.Join(strs, ", ")))
}

/*
pluralChildren returns the plural suffix of child.
*/
func pluralChildren(l int) string {
	if l == 1 {
		return ""
	}
	return "ren"
}
