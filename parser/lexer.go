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
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

/*
Span is a half-open byte range [Start, End) in the input of the lexer.
*/
type Span struct {
	Start int // First byte
	End   int // First byte after the range
}

/*
Len returns the number of bytes in this span.
*/
func (s Span) Len() int {
	return s.End - s.Start
}

/*
String returns a string representation of this span.
*/
func (s Span) String() string {
	return fmt.Sprintf("%v..%v", s.Start, s.End)
}

/*
LexToken represents a token which is returned by the lexer.
*/
type LexToken struct {
	ID    LexTokenID // Token kind
	Pos   int        // Starting position (in bytes)
	Val   string     // Token value (the lexeme)
	Lline int        // Line in the input this token appears
	Lpos  int        // Position in the input line this token appears
}

/*
Span returns the byte range of this token in the original input.
*/
func (t LexToken) Span() Span {
	return Span{t.Pos, t.Pos + len(t.Val)}
}

/*
PosString returns the position of this token in the original input as a string.
*/
func (t LexToken) PosString() string {
	return fmt.Sprintf("Line %v, Pos %v", t.Lline, t.Lpos)
}

/*
String returns a string representation of a token.
*/
func (t LexToken) String() string {

	switch {

	case t.ID == TokenEOF:
		return "EOF"

	case t.ID == TokenError:
		return fmt.Sprintf("Error: %q (%s)", t.Val, t.PosString())

	case t.ID > TOKENodeSYMBOLS:
		return t.Val
	}

	return fmt.Sprintf("%q", t.Val)
}

/*
Map of symbols - every symbol is a single rune
*/
var symbolMap = map[rune]LexTokenID{
	'(': TokenLPAREN,
	')': TokenRPAREN,
	'+': TokenPLUS,
	'-': TokenMINUS,
	'−': TokenMINUS,
	'*': TokenTIMES,
	'×': TokenTIMES,
	'x': TokenTIMES,
	'X': TokenTIMES,
	'/': TokenDIV,
	'÷': TokenDIV,
	'd': TokenDICE,
	'D': TokenDICE,
}

// Lexer
// =====

/*
RuneEOF is a special rune which represents the end of the input
*/
const RuneEOF = -1

/*
Lexer data structure
*/
type Lexer struct {
	name   string // Name to identify the input
	input  string // Input string of the lexer
	pos    int    // Current rune pointer
	line   int    // Current line pointer
	lastnl int    // Last newline position
	start  int    // Start position of the current read token
}

/*
NewLexer creates a new lexer for a given input.
*/
func NewLexer(name string, input string) *Lexer {
	return &Lexer{name, input, 0, 0, 0, 0}
}

/*
LexToList lexes a given input. Returns a list of tokens which always ends
with an EOF token.
*/
func LexToList(name string, input string) []LexToken {
	var tokens []LexToken

	l := NewLexer(name, input)

	for {
		t := l.NextToken()
		tokens = append(tokens, t)

		if t.ID == TokenEOF {
			break
		}
	}

	return tokens
}

/*
Input returns the input of this lexer.
*/
func (l *Lexer) Input() string {
	return l.input
}

/*
NextToken scans the next token. Unknown input produces an error token which
covers a single rune. Once the end of the input has been reached every call
returns an EOF token.
*/
func (l *Lexer) NextToken() LexToken {

	l.skipWhiteSpace()
	l.startNew()

	r := l.next(false)

	if r == RuneEOF {
		return l.emitToken(TokenEOF)
	}

	r = narrowRune(r)

	if id, ok := symbolMap[r]; ok {
		return l.emitToken(id)
	}

	if isDigit(r) {
		return l.lexNumber()
	}

	return l.emitToken(TokenError)
}

/*
next returns the next rune in the input and advances the current rune pointer
if the peek flag is not set. If the peek flag is set then the rune pointer
is not advanced.
*/
func (l *Lexer) next(peek bool) rune {

	// Check if we reached the end

	if l.pos >= len(l.input) {
		return RuneEOF
	}

	// Decode the next rune - invalid encodings are returned as
	// utf8.RuneError with a width of 1

	r, w := utf8.DecodeRuneInString(l.input[l.pos:])

	if !peek {
		l.pos += w
	}

	return r
}

/*
startNew starts a new token.
*/
func (l *Lexer) startNew() {
	l.start = l.pos
}

/*
emitToken creates a token from the current read position.
*/
func (l *Lexer) emitToken(t LexTokenID) LexToken {
	return LexToken{t, l.start, l.input[l.start:l.pos],
		l.line + 1, l.start - l.lastnl + 1}
}

// State functions
// ===============

/*
lexNumber lexes an integer or a floating point number. The first digit has
already been read.
*/
func (l *Lexer) lexNumber() LexToken {
	l.skipDigits()

	if narrowRune(l.next(true)) != '.' {
		return l.emitToken(TokenNUMBER)
	}

	l.next(false)
	l.skipDigits()

	return l.emitToken(TokenFLOAT)
}

// Helper functions
// ================

/*
skipWhiteSpace skips any number of whitespace characters.
*/
func (l *Lexer) skipWhiteSpace() {
	for r := l.next(true); r != RuneEOF && unicode.IsSpace(r); r = l.next(true) {
		l.next(false)

		if r == '\n' {
			l.line++
			l.lastnl = l.pos
		}
	}
}

/*
skipDigits skips any number of decimal digits.
*/
func (l *Lexer) skipDigits() {
	for isDigit(narrowRune(l.next(true))) {
		l.next(false)
	}
}

/*
narrowRune folds full-width forms (e.g. '２' or '＋') to their narrow counterpart.
*/
func narrowRune(r rune) rune {
	if r == RuneEOF {
		return r
	}

	if n := width.LookupRune(r).Narrow(); n != 0 {
		return n
	}

	return r
}

/*
isDigit checks if a rune is a decimal digit.
*/
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
