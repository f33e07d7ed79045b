// File: builtin.go
// Title: Builtin Constants and Functions
// Description: Read-only tables of the named constants and the unary
//              numeric functions available in expressions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial constant and function tables

// Package builtin holds the fixed constant and function tables. The tables
// are initialised once and never written afterwards, so concurrent lookups
// need no locking.
package builtin

import (
	"math"
	"sort"

	"github.com/msto63/pascal/foundation/utils/mathx"
)

// Func is a unary numeric function
type Func func(x mathx.Decimal) (mathx.Decimal, error)

var constants = map[string]mathx.Decimal{
	"PI":  mathx.MustNewDecimal("3.14159265358979323846264338328"),
	"pi":  mathx.MustNewDecimal("3.14159265358979323846264338328"),
	"TAU": mathx.MustNewDecimal("6.28318530717958647692528676656"),
	"tau": mathx.MustNewDecimal("6.28318530717958647692528676656"),
	"e":   mathx.MustNewDecimal("2.71828182845904523536028747135"),
	"PHI": mathx.MustNewDecimal("1.61803398874989484820458683437"),
	"phi": mathx.MustNewDecimal("1.61803398874989484820458683437"),
}

var functions = map[string]Func{
	"sqrt":  float(math.Sqrt),
	"cbrt":  float(math.Cbrt),
	"sin":   float(math.Sin),
	"cos":   float(math.Cos),
	"tan":   float(math.Tan),
	"asin":  float(math.Asin),
	"acos":  float(math.Acos),
	"atan":  float(math.Atan),
	"sinh":  float(math.Sinh),
	"cosh":  float(math.Cosh),
	"tanh":  float(math.Tanh),
	"asinh": float(math.Asinh),
	"acosh": float(math.Acosh),
	"atanh": float(math.Atanh),
	"exp":   float(math.Exp),
	"ln":    float(math.Log),
	"log":   float(math.Log10),
	"floor": exact(mathx.Decimal.Floor),
	"ceil":  exact(mathx.Decimal.Ceil),
	"trunc": exact(mathx.Decimal.Truncate),
	"abs":   exact(mathx.Decimal.Abs),
	"round": exact(func(x mathx.Decimal) mathx.Decimal { return x.Round(0, mathx.RoundHalfEven) }),
	"sign":  exact(func(x mathx.Decimal) mathx.Decimal { return mathx.NewDecimalFromInt(int64(x.Sign())) }),
}

// float lifts a float64 function. Results that are NaN or infinite are errors.
func float(fn func(float64) float64) Func {
	return func(x mathx.Decimal) (mathx.Decimal, error) {
		return mathx.FromFloat64(fn(x.Float64()))
	}
}

// exact lifts a function computed on the decimal itself
func exact(fn func(mathx.Decimal) mathx.Decimal) Func {
	return func(x mathx.Decimal) (mathx.Decimal, error) {
		return fn(x), nil
	}
}

// Constant returns the value of a named constant
func Constant(name string) (mathx.Decimal, bool) {
	v, ok := constants[name]
	return v, ok
}

// IsConstant reports whether name is a known constant
func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// Function returns the named unary function
func Function(name string) (Func, bool) {
	fn, ok := functions[name]
	return fn, ok
}

// ConstantNames returns the constant names in sorted order
func ConstantNames() []string {
	return sortedKeys(constants)
}

// FunctionNames returns the function names in sorted order
func FunctionNames() []string {
	return sortedKeys(functions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
