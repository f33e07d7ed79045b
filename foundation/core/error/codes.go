// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures of the
//              expression pipeline and of the surrounding services.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.2.0: Calculator and arithmetic codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Expression pipeline
	CodeCalcLex    Code = "CALC_LEX"
	CodeCalcSyntax Code = "CALC_SYNTAX"
	CodeCalcEval   Code = "CALC_EVAL"

	// Arithmetic
	CodeDivisionByZero  Code = "DIVISION_BY_ZERO"
	CodeNotFinite       Code = "NOT_FINITE"
	CodeValueOutOfRange Code = "VALUE_OUT_OF_RANGE"

	// Storage
	CodeDatabaseError Code = "DATABASE_ERROR"

	// Service
	CodeServiceUnavailable Code = "SERVICE_UNAVAILABLE"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeCalcLex, CodeCalcSyntax, CodeCalcEval,
		CodeDivisionByZero, CodeNotFinite, CodeValueOutOfRange,
		CodeDatabaseError, CodeServiceUnavailable,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeCalcLex, CodeCalcSyntax, CodeCalcEval:
		return "calc"
	case CodeDivisionByZero, CodeNotFinite, CodeValueOutOfRange:
		return "arithmetic"
	case CodeDatabaseError:
		return "database"
	case CodeServiceUnavailable:
		return "service"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}
