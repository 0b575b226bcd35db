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
	"strconv"
	"strings"
	"unicode"

	"github.com/krotik/dicecalc/value"
	"golang.org/x/text/width"
)

/*
maxTrailingDisplay is the maximum number of runes of trailing input which
are shown in an error message
*/
const maxTrailingDisplay = 10

/*
maxNestingDepth is the maximum number of nested negations and parentheses
*/
const maxNestingDepth = 1000

/*
Parser data structure
*/
type parser struct {
	name     string   // Name to identify the input
	lexer    *Lexer   // Lexer which provides the tokens
	previous LexToken // Token which was consumed last
	current  LexToken // Current lookahead token
	depth    int      // Current nesting depth
}

/*
Parse parses a given input string and returns an AST. Every input either
produces a complete AST or a *parser.Error.
*/
func Parse(name string, input string) (*ASTNode, error) {
	p := &parser{name: name, lexer: NewLexer(name, input)}

	// Fetch the first token - unknown input fails right here

	if err := p.fetch(); err != nil {
		return nil, err
	}

	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if !p.isAtEnd() {
		return nil, p.trailingError()
	}

	return expr, nil
}

// Grammar rules
// =============

/*
expression := term
*/
func (p *parser) expression() (*ASTNode, error) {
	return p.term()
}

/*
term := factor ( ('+'|'-') factor )*
*/
func (p *parser) term() (*ASTNode, error) {
	return p.leftAssociative(p.factor, TokenPLUS, TokenMINUS)
}

/*
factor := roll ( ('*'|'/') roll )*
*/
func (p *parser) factor() (*ASTNode, error) {
	return p.leftAssociative(p.roll, TokenTIMES, TokenDIV)
}

/*
roll := unary ( 'd' unary )*
*/
func (p *parser) roll() (*ASTNode, error) {
	return p.leftAssociative(p.unary, TokenDICE)
}

/*
unary := '-' unary | primary
*/
func (p *parser) unary() (*ASTNode, error) {

	if !p.check(TokenMINUS) {
		return p.primary()
	}

	operator, err := p.consume()
	if err != nil {
		return nil, err
	}

	if err := p.enter(operator); err != nil {
		return nil, err
	}
	defer p.leave()

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}

	return newOperatorNode(operator, operand), nil
}

/*
primary := Number | '(' expression ')'
*/
func (p *parser) primary() (*ASTNode, error) {
	token := p.current

	switch token.ID {

	case TokenNUMBER:
		if _, err := p.consume(); err != nil {
			return nil, err
		}

		return p.value(token)

	case TokenLPAREN:
		if _, err := p.consume(); err != nil {
			return nil, err
		}

		if err := p.enter(token); err != nil {
			return nil, err
		}
		defer p.leave()

		inner, err := p.expression()
		if err != nil {
			return nil, err
		}

		if !p.check(TokenRPAREN) {
			return nil, p.newParserError(ErrUnclosedGroup,
				fmt.Sprintf("expected `%v`, found `%v`", TokenRPAREN, p.current.ID),
				fmt.Sprintf("expected `%v`", TokenRPAREN), p.current.Span(), p.current)
		}

		closing, err := p.consume()
		if err != nil {
			return nil, err
		}

		return &ASTNode{NodeGROUP, &token, []*ASTNode{inner}, nil,
			Span{token.Pos, closing.Span().End}}, nil

	case TokenEOF:
		return nil, p.newParserError(ErrUnexpectedEnd,
			fmt.Sprintf("expected a number or parenthesis, found `%v`", token.ID),
			"expected a number or parenthesis", token.Span(), token)
	}

	return nil, p.newParserError(ErrUnexpectedToken,
		fmt.Sprintf("expected a number or parenthesis, found `%v`", token.ID),
		"expected a number or parenthesis", token.Span(), token)
}

/*
value creates a literal node from a number token.
*/
func (p *parser) value(token LexToken) (*ASTNode, error) {

	// Full-width digits are converted before parsing

	i, err := strconv.ParseInt(width.Narrow.String(token.Val), 10, 64)
	if err != nil {
		label := "invalid number"
		if errors.Is(err, strconv.ErrRange) {
			label = "number is too large"
		}

		return nil, p.newParserError(ErrInvalidNumber,
			fmt.Sprintf("could not parse number `%v`", token.Val),
			label, token.Span(), token)
	}

	return newValueNode(token, value.NewDirect(i)), nil
}

// Helper functions
// ================

/*
leftAssociative parses a sequence of operands which are separated by one of
the given operators. The result is a left nested tree.
*/
func (p *parser) leftAssociative(operand func() (*ASTNode, error),
	operators ...LexTokenID) (*ASTNode, error) {

	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.check(operators...) {

		operator, err := p.consume()
		if err != nil {
			return nil, err
		}

		right, err := operand()
		if err != nil {
			return nil, err
		}

		expr = newOperatorNode(operator, expr, right)
	}

	return expr, nil
}

/*
fetch reads the next token from the lexer into the current token. Lexer
errors are reported as soon as they are fetched.
*/
func (p *parser) fetch() error {
	p.current = p.lexer.NextToken()

	if p.current.ID == TokenError {
		return p.newParserError(ErrLexicalError,
			fmt.Sprintf("unrecognized character %q", p.current.Val),
			"unrecognized character", p.current.Span(), p.current)
	}

	return nil
}

/*
consume returns the current token and advances to the next token. At the
end of the input the current EOF token is returned without advancing.
*/
func (p *parser) consume() (LexToken, error) {
	if p.isAtEnd() {
		return p.current, nil
	}

	p.previous = p.current

	return p.previous, p.fetch()
}

/*
enter increases the nesting depth. Returns an error if the depth exceeds
the maximum.
*/
func (p *parser) enter(token LexToken) error {
	p.depth++

	if p.depth > maxNestingDepth {
		return p.newParserError(ErrNestingTooDeep,
			fmt.Sprintf("more than %v nested levels", maxNestingDepth),
			"nested too deeply", token.Span(), token)
	}

	return nil
}

/*
leave decreases the nesting depth.
*/
func (p *parser) leave() {
	p.depth--
}

/*
check checks if the current token is one of the given token types.
*/
func (p *parser) check(ids ...LexTokenID) bool {
	for _, id := range ids {
		if p.current.ID == id {
			return true
		}
	}
	return false
}

/*
isAtEnd checks if the end of the input has been reached.
*/
func (p *parser) isAtEnd() bool {
	return p.current.ID == TokenEOF
}

/*
trailingError creates an error for input which follows a complete expression.
*/
func (p *parser) trailingError() error {
	input := p.lexer.Input()
	remainder := strings.TrimRightFunc(input[p.current.Pos:], unicode.IsSpace)

	display := []rune(remainder)
	if len(display) > maxTrailingDisplay {
		display = display[:maxTrailingDisplay]
	}

	return p.newParserError(ErrTrailingInput,
		fmt.Sprintf("unexpected trailing characters `%v`", string(display)), "here",
		Span{p.current.Pos, p.current.Pos + len(remainder)}, p.current)
}
