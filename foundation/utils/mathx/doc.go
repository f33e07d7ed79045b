// Package mathx provides the arbitrary-precision Decimal used for numeric
// values in expressions.
//
// A Decimal is an exact rational number. Addition, subtraction,
// multiplication and division are exact; operations that leave the
// rationals (powers with fractional exponents, trigonometry) go through
// float64 and come back via FromFloat64, which rejects NaN and infinities.
//
// The zero value is a valid zero.
package mathx
