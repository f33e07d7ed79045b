// Package error provides the structured error type used across Pascal.
//
// Errors carry a Code, a Severity, an operation name and free-form details.
// They wrap standard errors and stay compatible with errors.Is and errors.As:
//
//	err := perr.New("division by zero").
//		WithCode(perr.CodeCalcEval).
//		WithOperation("decimal.Divide").
//		WithDetail("dividend", "1")
package error
