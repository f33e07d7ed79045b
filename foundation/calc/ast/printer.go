// File: printer.go
// Title: AST Tree Printer
// Description: Renders a syntax tree as an indented, one node per line
//              listing for debug output.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial printer

package ast

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Print renders n one node per line. Children are indented two spaces
// deeper than their parent. The output ends with a newline.
func Print(n Node) string {
	var sb strings.Builder
	printNode(&sb, n, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, n Node, depth int) {
	sb.WriteString(strings.Repeat(indentUnit, depth))

	switch n := n.(type) {
	case BoolLiteral:
		fmt.Fprintf(sb, "Bool %t\n", n.Value)
	case NumberLiteral:
		fmt.Fprintf(sb, "Number %s\n", n.Value)
	case NamedConstant:
		fmt.Fprintf(sb, "Constant %s\n", n.Name)
	case Call:
		fmt.Fprintf(sb, "Call %s:\n", n.Name)
		printNode(sb, n.Arg, depth+1)
	case Group:
		sb.WriteString("Group:\n")
		printNode(sb, n.Inner, depth+1)
	case Unary:
		fmt.Fprintf(sb, "Unary %s:\n", n.Op)
		printNode(sb, n.Operand, depth+1)
	case Binary:
		fmt.Fprintf(sb, "Binary %s:\n", n.Op)
		printNode(sb, n.Left, depth+1)
		printNode(sb, n.Right, depth+1)
	case Invalid:
		sb.WriteString("Invalid\n")
	default:
		fmt.Fprintf(sb, "Unknown %T\n", n)
	}
}
