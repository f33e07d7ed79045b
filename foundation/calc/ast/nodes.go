// File: nodes.go
// Title: Expression AST Nodes
// Description: Defines the closed set of syntax tree nodes produced by the
//              parser. Node is a sealed interface; consumers switch over
//              the concrete types.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial node set

// Package ast defines the expression syntax tree.
//
// The tree is a tagged union: every node kind is a struct implementing the
// unexported marker method of Node, so no type outside this package can be
// a Node. Evaluation and printing are single type switches over the kinds.
// Each node owns its children exclusively; trees are never shared.
package ast

import "github.com/msto63/pascal/foundation/utils/mathx"

// Node is any expression tree node
type Node interface {
	node()
}

// BoolLiteral is true or false
type BoolLiteral struct {
	Value bool
}

// NumberLiteral is a numeric constant from the source
type NumberLiteral struct {
	Value mathx.Decimal
}

// NamedConstant refers to a builtin constant such as PI
type NamedConstant struct {
	Name string
}

// Call applies a builtin unary function to its argument
type Call struct {
	Name string
	Arg  Node
}

// Group is a parenthesised sub-expression
type Group struct {
	Inner Node
}

// Unary is a prefix operator: - or !
type Unary struct {
	Op      string
	Operand Node
}

// Binary is an infix operator application
type Binary struct {
	Left  Node
	Op    string
	Right Node
}

// Invalid marks a failed parse. A tree containing it consists of nothing else.
type Invalid struct{}

func (BoolLiteral) node()   {}
func (NumberLiteral) node() {}
func (NamedConstant) node() {}
func (Call) node()          {}
func (Group) node()         {}
func (Unary) node()         {}
func (Binary) node()        {}
func (Invalid) node()       {}

// IsInvalid reports whether n is the parse failure sentinel
func IsInvalid(n Node) bool {
	_, ok := n.(Invalid)
	return ok
}
