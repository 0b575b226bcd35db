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

	"github.com/krotik/dicecalc/parser"
	"github.com/krotik/dicecalc/value"
)

/*
newRuntimeError creates a new RuntimeError object.
*/
func (i *Interpreter) newRuntimeError(t error, d string, node *parser.ASTNode) error {
	var line, pos int

	if node.Token != nil {
		line, pos = node.Token.Lline, node.Token.Lpos
	}

	return &RuntimeError{i.Name, t, d, node, node.Span, line, pos}
}

/*
RuntimeError is an evaluation related error
*/
type RuntimeError struct {
	Source string          // Name of the source which was given to the parser
	Type   error           // Error type (to be used for equal checks)
	Detail string          // Details of this error
	Node   *parser.ASTNode // AST Node where the error occurred
	Span   parser.Span     // Byte range of the offending expression
	Line   int             // Line of the error
	Pos    int             // Position of the error
}

/*
Error returns a human-readable string representation of this error.
*/
func (re *RuntimeError) Error() string {
	ret := fmt.Sprintf("Evaluation error in %s: %v (%v)", re.Source, re.Type, re.Detail)

	if re.Line != 0 {
		return fmt.Sprintf("%s (Line:%d Pos:%d)", ret, re.Line, re.Pos)
	}

	return ret
}

/*
Unwrap returns the error type so errors.Is can be used on runtime errors.
*/
func (re *RuntimeError) Unwrap() error {
	return re.Type
}

/*
Runtime related error types
*/
var (
	ErrDivisionByZero = value.ErrDivisionByZero
	ErrOverflow       = value.ErrOverflow
	ErrInvalidDice    = errors.New("Invalid dice")
	ErrTooManyDice    = errors.New("Dice limit exceeded")
	ErrUnknownNode    = errors.New("Unknown node kind")
	ErrInvalidNode    = errors.New("Invalid construct")
)
