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
Package parser contains the dice expression parser.

Lexer

NewLexer() creates a lexer which converts a given expression into tokens. The
lexer is pull based: every call to NextToken() scans exactly one token.

Based on a talk by Rob Pike: Lexical Scanning in Go

https://www.youtube.com/watch?v=HxaD_trXwRE

Parser

Parse() is a recursive descent parser which produces a parse tree from the
tokens of a lexer. The parser pulls tokens on demand and only ever looks at
the previous and the current token.

Grammar (lowest to highest precedence):

	expression := term
	term       := factor ( ('+'|'-') factor )*
	factor     := roll ( ('*'|'/') roll )*
	roll       := unary ( 'd' unary )*
	unary      := '-' unary | primary
	primary    := Number | '(' expression ')'

All binary operators are left-associative.
*/
package parser

/*
LexTokenID represents a unique lexer token ID
*/
type LexTokenID int

/*
Available lexer token types
*/
const (
	TokenError LexTokenID = iota // Unrecognized input
	TokenEOF                     // End-of-file token

	TokenNUMBER // Integer number
	TokenFLOAT  // Floating point number (not supported by the grammar)

	TOKENodeSYMBOLS // Used to separate symbols from other tokens in this list

	TokenLPAREN
	TokenRPAREN
	TokenPLUS
	TokenMINUS
	TokenTIMES
	TokenDIV
	TokenDICE
)

/*
String returns a display name for a token kind.
*/
func (id LexTokenID) String() string {
	if name, ok := tokenNameMap[id]; ok {
		return name
	}
	return "unknown"
}

/*
Display names of token kinds
*/
var tokenNameMap = map[LexTokenID]string{
	TokenError:  "error",
	TokenEOF:    "EOF",
	TokenNUMBER: "number",
	TokenFLOAT:  "float",
	TokenLPAREN: "(",
	TokenRPAREN: ")",
	TokenPLUS:   "+",
	TokenMINUS:  "-",
	TokenTIMES:  "*",
	TokenDIV:    "/",
	TokenDICE:   "d",
}

// Parser AST nodes
// ================

/*
Available parser AST node types
*/
const (
	NodeVALUE = "value"
	NodeGROUP = "group"
	NodeROLL  = "roll"

	// Simple arithmetic expressions

	NodePLUS  = "plus"
	NodeMINUS = "minus"
	NodeTIMES = "times"
	NodeDIV   = "div"
)

/*
Map of operator tokens to the AST nodes they produce
*/
var operatorNodeMap = map[LexTokenID]string{
	TokenPLUS:  NodePLUS,
	TokenMINUS: NodeMINUS,
	TokenTIMES: NodeTIMES,
	TokenDIV:   NodeDIV,
	TokenDICE:  NodeROLL,
}
