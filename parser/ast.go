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
	"bytes"
	"fmt"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/common/stringutil"
	"github.com/krotik/dicecalc/value"
)

/*
ASTNode models a node in the AST.

Depending on its name a node has a fixed number of children:

	value       no children, Value holds the literal
	minus       1 child (negation) or 2 children (subtraction)
	plus        2 children
	times       2 children
	div         2 children
	group       1 child (the parenthesised expression)
	roll        2 children (quantity and faces)
*/
type ASTNode struct {
	Name     string       // Name of the node
	Token    *LexToken    // Lexer token of this ASTNode
	Children []*ASTNode   // Child nodes
	Value    *value.Value // Literal value (only set for value nodes)
	Span     Span         // Byte range of the whole subtree in the input
}

/*
newValueNode creates a new literal node.
*/
func newValueNode(token LexToken, v *value.Value) *ASTNode {
	return &ASTNode{NodeVALUE, &token, nil, v, token.Span()}
}

/*
newOperatorNode creates a new node for an operator token.
*/
func newOperatorNode(token LexToken, children ...*ASTNode) *ASTNode {
	name, ok := operatorNodeMap[token.ID]
	errorutil.AssertTrue(ok, fmt.Sprintf("Token %v is not an operator", token.ID))

	span := token.Span()

	for _, c := range children {
		if c.Span.Start < span.Start {
			span.Start = c.Span.Start
		}
		if c.Span.End > span.End {
			span.End = c.Span.End
		}
	}

	return &ASTNode{name, &token, children, nil, span}
}

/*
IsUnary returns true if this node is a negation.
*/
func (n *ASTNode) IsUnary() bool {
	return n.Name == NodeMINUS && len(n.Children) == 1
}

/*
String returns a string representation of this token.
*/
func (n *ASTNode) String() string {
	var buf bytes.Buffer
	n.levelString(0, &buf)
	return buf.String()
}

/*
levelString function to recursively print the tree.
*/
func (n *ASTNode) levelString(indent int, buf *bytes.Buffer) {

	// Print current level

	buf.WriteString(stringutil.GenerateRollingString(" ", indent*2))

	if n.Name == NodeVALUE {
		buf.WriteString(fmt.Sprintf("%v: %q", n.Name, n.Token.Val))
	} else {
		buf.WriteString(n.Name)
	}

	buf.WriteString("\n")

	// Print children

	for _, child := range n.Children {
		child.levelString(indent+1, buf)
	}
}
