// File: severity.go
// Title: Error Severity Levels
// Description: Severity levels used to choose the log level of an error.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.2.0: Severity derived from calculator codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers rejected user input such as a malformed expression
	SeverityLow Severity = iota

	// SeverityMedium covers failures with a workaround
	SeverityMedium

	// SeverityHigh covers failing infrastructure like the history database
	SeverityHigh

	// SeverityCritical makes the process unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines the default severity for a code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeServiceUnavailable:
		return SeverityCritical
	case CodeDatabaseError, CodeConfigError, CodeInvalidConfig, CodeInternal:
		return SeverityHigh
	case CodeCalcLex, CodeCalcSyntax, CodeCalcEval,
		CodeDivisionByZero, CodeNotFinite, CodeValueOutOfRange,
		CodeInvalidInput, CodeNotFound:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
