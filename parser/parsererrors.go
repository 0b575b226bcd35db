/*
 * DiceCalc
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package parser

import (
	"errors"
	"fmt"
)

/*
newParserError creates a new ParserError object.
*/
func (p *parser) newParserError(t error, d string, label string, span Span, token LexToken) error {
	return &Error{p.name, t, d, label, p.lexer.Input(), span, token.Lline, token.Lpos}
}

/*
Error models a parser related error. It contains everything which is needed
to render the offending part of the input (e.g. with a caret underline).
*/
type Error struct {
	Source string // Name of the source which was given to the parser
	Type   error  // Error type (to be used for equal checks)
	Detail string // Details of this error
	Label  string // Short label for the offending input
	Input  string // Full input which was given to the parser
	Span   Span   // Byte range of the offending input
	Line   int    // Line of the error
	Pos    int    // Position of the error
}

/*
Error returns a human-readable string representation of this error.
*/
func (pe *Error) Error() string {
	var ret string

	if pe.Detail != "" {
		ret = fmt.Sprintf("Parse error in %s: %v (%v)", pe.Source, pe.Type, pe.Detail)
	} else {
		ret = fmt.Sprintf("Parse error in %s: %v", pe.Source, pe.Type)
	}

	if pe.Line != 0 {
		return fmt.Sprintf("%s (Line:%d Pos:%d)", ret, pe.Line, pe.Pos)
	}

	return ret
}

/*
Unwrap returns the error type so errors.Is can be used on parser errors.
*/
func (pe *Error) Unwrap() error {
	return pe.Type
}

/*
Parser related error types
*/
var (
	ErrUnexpectedEnd   = errors.New("Unexpected end")
	ErrLexicalError    = errors.New("Lexical error")
	ErrUnexpectedToken = errors.New("Unexpected term")
	ErrUnclosedGroup   = errors.New("Missing closing parenthesis")
	ErrTrailingInput   = errors.New("Unexpected trailing characters")
	ErrInvalidNumber   = errors.New("Invalid number")
	ErrNestingTooDeep  = errors.New("Expression nested too deeply")
)
