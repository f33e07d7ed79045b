// File: evaluator.go
// Title: Tree-Walking Evaluator
// Description: Evaluates a syntax tree to a Value. Type mismatches, unknown
//              names and arithmetic failures make the result absent.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial evaluator

// Package evaluator computes the value of an expression tree.
//
// Both operands of a binary operator are always evaluated, including for
// && and ||. Number operands support + - * / ** and the comparisons;
// boolean operands support && || ^. Anything else has no value.
package evaluator

import (
	"fmt"

	"github.com/msto63/pascal/foundation/calc/ast"
	"github.com/msto63/pascal/foundation/calc/builtin"
)

// EvalError explains why an expression has no value
type EvalError struct {
	Op     string // operator, function or constant name involved
	Reason string
	Cause  error
}

// Error implements the error interface
func (e *EvalError) Error() string {
	msg := e.Reason
	if e.Op != "" {
		msg = fmt.Sprintf("%s: %s", e.Op, e.Reason)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the arithmetic cause, if any
func (e *EvalError) Unwrap() error {
	return e.Cause
}

// Evaluate returns the value of node, or false when it has none
func Evaluate(node ast.Node) (Value, bool) {
	v, err := Eval(node)
	return v, err == nil
}

// Eval returns the value of node or an *EvalError describing why there is none
func Eval(node ast.Node) (Value, error) {
	switch n := node.(type) {
	case ast.BoolLiteral:
		return Boolean(n.Value), nil

	case ast.NumberLiteral:
		return Number(n.Value), nil

	case ast.Group:
		return Eval(n.Inner)

	case ast.NamedConstant:
		v, ok := builtin.Constant(n.Name)
		if !ok {
			return Value{}, &EvalError{Op: n.Name, Reason: "unknown constant"}
		}
		return Number(v), nil

	case ast.Call:
		return evalCall(n)

	case ast.Unary:
		return evalUnary(n)

	case ast.Binary:
		return evalBinary(n)

	case ast.Invalid:
		return Value{}, &EvalError{Reason: "invalid expression"}

	default:
		return Value{}, &EvalError{Reason: fmt.Sprintf("unsupported node %T", node)}
	}
}

func evalCall(n ast.Call) (Value, error) {
	arg, err := Eval(n.Arg)
	if err != nil {
		return Value{}, err
	}
	x, ok := arg.Number()
	if !ok {
		return Value{}, &EvalError{Op: n.Name, Reason: "argument is not a number"}
	}
	fn, ok := builtin.Function(n.Name)
	if !ok {
		return Value{}, &EvalError{Op: n.Name, Reason: "unknown function"}
	}
	result, err := fn(x)
	if err != nil {
		return Value{}, &EvalError{Op: n.Name, Reason: "no result", Cause: err}
	}
	return Number(result), nil
}

func evalUnary(n ast.Unary) (Value, error) {
	operand, err := Eval(n.Operand)
	if err != nil {
		return Value{}, err
	}
	switch n.Op {
	case "-":
		if x, ok := operand.Number(); ok {
			return Number(x.Neg()), nil
		}
	case "!":
		if b, ok := operand.Bool(); ok {
			return Boolean(!b), nil
		}
	}
	return Value{}, &EvalError{Op: n.Op, Reason: "operand type " + operand.Kind().String() + " not supported"}
}

func evalBinary(n ast.Binary) (Value, error) {
	left, lErr := Eval(n.Left)
	right, rErr := Eval(n.Right)
	if lErr != nil {
		return Value{}, lErr
	}
	if rErr != nil {
		return Value{}, rErr
	}

	if a, ok := left.Number(); ok {
		if b, ok := right.Number(); ok {
			return numberOp(n.Op, a, b)
		}
	}
	if a, ok := left.Bool(); ok {
		if b, ok := right.Bool(); ok {
			return booleanOp(n.Op, a, b)
		}
	}
	return Value{}, &EvalError{
		Op:     n.Op,
		Reason: fmt.Sprintf("operand types %s and %s not supported", left.Kind(), right.Kind()),
	}
}
