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
	"text/template"

	"github.com/krotik/common/errorutil"
)

/*
Map of pretty printer templates for AST nodes

There is special treatment for NodeVALUE.
*/
var prettyPrinterMap = map[string]*template.Template{
	NodeGROUP + "_1": template.Must(template.New(NodeGROUP).Parse("({{.c1}})")),
	NodeROLL + "_2":  template.Must(template.New(NodeROLL).Parse("{{.c1}}d{{.c2}}")),

	// Simple arithmetic expressions

	NodePLUS + "_2":  template.Must(template.New(NodePLUS).Parse("{{.c1}} + {{.c2}}")),
	NodeMINUS + "_1": template.Must(template.New(NodeMINUS).Parse("-{{.c1}}")),
	NodeMINUS + "_2": template.Must(template.New(NodeMINUS).Parse("{{.c1}} - {{.c2}}")),
	NodeTIMES + "_2": template.Must(template.New(NodeTIMES).Parse("{{.c1}} * {{.c2}}")),
	NodeDIV + "_2":   template.Must(template.New(NodeDIV).Parse("{{.c1}} / {{.c2}}")),
}

/*
PrettyPrint produces a normalized expression from a given AST. Operator
aliases are written in their ASCII form and parentheses are kept as they
were written.
*/
func PrettyPrint(ast *ASTNode) (string, error) {
	var visit func(ast *ASTNode) (string, error)

	visit = func(ast *ASTNode) (string, error) {

		// Handle special cases which don't have children

		if ast.Name == NodeVALUE {
			errorutil.AssertTrue(ast.Value != nil, "Value node without value")
			return fmt.Sprint(ast.Value.Current()), nil
		}

		var children map[string]string
		var tempKey = ast.Name
		var buf bytes.Buffer

		// First pretty print children

		if len(ast.Children) > 0 {
			children = make(map[string]string)
			for i, child := range ast.Children {
				res, err := visit(child)
				if err != nil {
					return "", err
				}

				children[fmt.Sprint("c", i+1)] = res
			}

			tempKey += fmt.Sprint("_", len(children))
		}

		// Retrieve the template

		temp, ok := prettyPrinterMap[tempKey]
		if !ok {
			return "", fmt.Errorf("Could not find template for %v (tempkey: %v)",
				ast.Name, tempKey)
		}

		// Use the children as parameters for template

		errorutil.AssertOk(temp.Execute(&buf, children))

		return buf.String(), nil
	}

	return visit(ast)
}
