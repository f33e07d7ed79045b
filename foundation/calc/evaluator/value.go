// File: value.go
// Title: Evaluation Values
// Description: The tagged result of evaluating an expression: a number or
//              a boolean.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial value type

package evaluator

import "github.com/msto63/pascal/foundation/utils/mathx"

// Kind tags a Value
type Kind int

const (
	KindNumber Kind = iota
	KindBoolean
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is either a Number or a Boolean
type Value struct {
	kind    Kind
	number  mathx.Decimal
	boolean bool
}

// Number wraps a decimal
func Number(d mathx.Decimal) Value {
	return Value{kind: KindNumber, number: d}
}

// Boolean wraps a bool
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, boolean: b}
}

// Kind returns the tag
func (v Value) Kind() Kind { return v.kind }

// Number returns the decimal and whether v is a number
func (v Value) Number() (mathx.Decimal, bool) {
	return v.number, v.kind == KindNumber
}

// Bool returns the boolean and whether v is a boolean
func (v Value) Bool() (bool, bool) {
	return v.boolean, v.kind == KindBoolean
}

// String renders the value as the shell prints it: decimals via
// mathx.Decimal.String, booleans as True or False.
func (v Value) String() string {
	if v.kind == KindBoolean {
		if v.boolean {
			return "True"
		}
		return "False"
	}
	return v.number.String()
}
