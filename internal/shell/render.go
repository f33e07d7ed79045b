// ============================================================================
// Pascal - Interaktiver Ausdrucksrechner
// ============================================================================
//
// Package:     shell
// Description: Line rendering shared by the interactive front-ends
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package shell

import (
	"strings"

	"github.com/msto63/pascal/foundation/calc"
	"github.com/msto63/pascal/foundation/calc/ast"
)

// SyntaxErrorMessage is printed for every failed evaluation
const SyntaxErrorMessage = "Syntax error."

// DebugLines renders the token stream and syntax tree of a result. The
// tree is left out when parsing never ran.
func DebugLines(res *calc.Result) []string {
	if res == nil {
		return nil
	}

	lines := []string{"", "Tokens:"}
	for _, tok := range res.Tokens {
		lines = append(lines, tok.String())
	}
	if res.Tree != nil {
		lines = append(lines, "", "Syntax tree:")
		lines = append(lines, strings.Split(strings.TrimSuffix(ast.Print(res.Tree), "\n"), "\n")...)
	}
	return lines
}

// ResultLine is the line shown for an evaluation outcome
func ResultLine(res *calc.Result, err error) string {
	if err != nil || res == nil {
		return SyntaxErrorMessage
	}
	return res.Value.String()
}
