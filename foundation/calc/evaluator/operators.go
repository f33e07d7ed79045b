package evaluator

import (
	perr "github.com/msto63/pascal/foundation/core/error"
	"github.com/msto63/pascal/foundation/utils/mathx"
)

// maxResultBits bounds every intermediate number, so the work per node
// stays bounded no matter how operators are chained.
const maxResultBits = 2 * mathx.MaxExactBits

func numberOp(op string, a, b mathx.Decimal) (Value, error) {
	switch op {
	case "+":
		return bounded(op, a.Add(b), nil)
	case "-":
		return bounded(op, a.Subtract(b), nil)
	case "*":
		return bounded(op, a.Multiply(b), nil)
	case "/":
		q, err := a.Divide(b)
		return bounded(op, q, err)
	case "**":
		p, err := a.Pow(b)
		return bounded(op, p, err)
	case "<":
		return Boolean(a.Compare(b) < 0), nil
	case ">":
		return Boolean(a.Compare(b) > 0), nil
	case "<=":
		return Boolean(a.Compare(b) <= 0), nil
	case ">=":
		return Boolean(a.Compare(b) >= 0), nil
	case "==":
		return Boolean(a.Equal(b)), nil
	case "!=":
		return Boolean(!a.Equal(b)), nil
	}
	return Value{}, &EvalError{Op: op, Reason: "operator not defined for numbers"}
}

func bounded(op string, d mathx.Decimal, err error) (Value, error) {
	if err != nil {
		return Value{}, &EvalError{Op: op, Reason: "no result", Cause: err}
	}
	if d.BitLen() > maxResultBits {
		return Value{}, &EvalError{Op: op, Reason: "no result", Cause: perr.New("result too large").
			WithCode(perr.CodeValueOutOfRange).
			WithDetail("bits", d.BitLen())}
	}
	return Number(d), nil
}

// booleanOp has no short circuit: both operands are already evaluated
func booleanOp(op string, a, b bool) (Value, error) {
	switch op {
	case "&&":
		return Boolean(a && b), nil
	case "||":
		return Boolean(a || b), nil
	case "^":
		return Boolean(a != b), nil
	}
	return Value{}, &EvalError{Op: op, Reason: "operator not defined for booleans"}
}
