// File: decimal.go
// Title: Decimal Arithmetic Implementation
// Description: Exact decimal arithmetic on top of math/big.Rat with
//              construction from literal parts and float64 bridging.
// Author: msto63
// Version: v0.2.1
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.2.0: Literal construction, float bridge, nil-safe zero value
// - 2026-10-17 v0.2.1: Size bound for exact powers

package mathx

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	perr "github.com/msto63/pascal/foundation/core/error"
)

// MaxDisplayPlaces is the number of fractional digits shown for values
// without a finite decimal expansion.
const MaxDisplayPlaces = 28

var (
	bigOne = big.NewInt(1)
	bigTen = big.NewInt(10)
)

// Decimal represents a decimal number with arbitrary precision
type Decimal struct {
	value *big.Rat
}

func (d Decimal) rat() *big.Rat {
	if d.value == nil {
		return new(big.Rat)
	}
	return d.value
}

// NewDecimal creates a Decimal from a string such as "123.45", "-1e3" or "1/3"
func NewDecimal(s string) (Decimal, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return Decimal{}, perr.New("invalid decimal format").
			WithCode(perr.CodeInvalidInput).
			WithOperation("mathx.NewDecimal").
			WithDetail("input", s)
	}
	return Decimal{value: r}, nil
}

// MustNewDecimal creates a Decimal from a string, panicking on error.
// Intended for package-level constants.
func MustNewDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDecimalFromInt creates a new Decimal from an integer
func NewDecimalFromInt(i int64) Decimal {
	return Decimal{value: new(big.Rat).SetInt64(i)}
}

// NewDecimalFromBigInt creates a Decimal holding a copy of i
func NewDecimalFromBigInt(i *big.Int) Decimal {
	return Decimal{value: new(big.Rat).SetInt(i)}
}

// NewDecimalFromDigits returns digits * 10^scale, where digits is a
// non-empty string of ASCII decimal digits.
func NewDecimalFromDigits(digits string, scale int64) (Decimal, error) {
	mantissa, ok := new(big.Int).SetString(digits, 10)
	if !ok || digits == "" || strings.ContainsAny(digits, "+-") {
		return Decimal{}, perr.New("invalid digit sequence").
			WithCode(perr.CodeInvalidInput).
			WithOperation("mathx.NewDecimalFromDigits").
			WithDetail("digits", digits)
	}

	pow := pow10(abs64(scale))
	r := new(big.Rat)
	if scale >= 0 {
		r.SetInt(mantissa.Mul(mantissa, pow))
	} else {
		r.SetFrac(mantissa, pow)
	}
	return Decimal{value: r}, nil
}

// FromFloat64 converts f using its shortest decimal representation, so
// 0.1 becomes exactly 1/10. NaN and infinities are rejected.
func FromFloat64(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, perr.New("value is not a finite number").
			WithCode(perr.CodeNotFinite).
			WithOperation("mathx.FromFloat64").
			WithDetail("value", strconv.FormatFloat(f, 'g', -1, 64))
	}
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(f, 'g', -1, 64))
	if !ok {
		r = new(big.Rat).SetFloat64(f)
	}
	return Decimal{value: r}, nil
}

// One returns a decimal representing one
func One() Decimal {
	return NewDecimalFromInt(1)
}

// Add returns d + other
func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{value: new(big.Rat).Add(d.rat(), other.rat())}
}

// Subtract returns d - other
func (d Decimal) Subtract(other Decimal) Decimal {
	return Decimal{value: new(big.Rat).Sub(d.rat(), other.rat())}
}

// Multiply returns d * other
func (d Decimal) Multiply(other Decimal) Decimal {
	return Decimal{value: new(big.Rat).Mul(d.rat(), other.rat())}
}

// Divide returns d / other. Dividing by zero is an error.
func (d Decimal) Divide(other Decimal) (Decimal, error) {
	if other.IsZero() {
		return Decimal{}, perr.New("division by zero").
			WithCode(perr.CodeDivisionByZero).
			WithOperation("mathx.Divide").
			WithDetail("dividend", d.String())
	}
	return Decimal{value: new(big.Rat).Quo(d.rat(), other.rat())}, nil
}

// Pow returns d raised to the power exp. Integer exponents are computed
// exactly while the result stays within MaxExactBits, everything else
// through float64.
func (d Decimal) Pow(exp Decimal) (Decimal, error) {
	if exp.IsInteger() {
		if n, ok := exp.int64(); ok && abs64(n) <= maxExactExponent && d.powBits(n) <= MaxExactBits {
			return d.powInt(n)
		}
	}
	return FromFloat64(math.Pow(d.Float64(), exp.Float64()))
}

const maxExactExponent = 1024

// MaxExactBits bounds the size of exactly computed powers, measured as
// the bit length of the larger of numerator and denominator.
const MaxExactBits = 1 << 15

// powBits estimates the bit length of d**n from above
func (d Decimal) powBits(n int64) int64 {
	return abs64(n) * int64(d.BitLen())
}

func (d Decimal) powInt(n int64) (Decimal, error) {
	base := d
	if n < 0 {
		inv, err := One().Divide(d)
		if err != nil {
			return Decimal{}, err
		}
		base, n = inv, -n
	}
	num := new(big.Int).Exp(base.rat().Num(), big.NewInt(n), nil)
	den := new(big.Int).Exp(base.rat().Denom(), big.NewInt(n), nil)
	return Decimal{value: new(big.Rat).SetFrac(num, den)}, nil
}

// Abs returns |d|
func (d Decimal) Abs() Decimal {
	return Decimal{value: new(big.Rat).Abs(d.rat())}
}

// Neg returns -d
func (d Decimal) Neg() Decimal {
	return Decimal{value: new(big.Rat).Neg(d.rat())}
}

// IsZero returns true if d equals zero
func (d Decimal) IsZero() bool {
	return d.rat().Sign() == 0
}

// IsInteger reports whether d has no fractional part
func (d Decimal) IsInteger() bool {
	return d.rat().IsInt()
}

// Sign returns -1, 0 or +1
func (d Decimal) Sign() int {
	return d.rat().Sign()
}

// Compare returns -1 if d < other, 0 if equal, +1 if d > other
func (d Decimal) Compare(other Decimal) int {
	return d.rat().Cmp(other.rat())
}

// Equal returns true if d equals other
func (d Decimal) Equal(other Decimal) bool {
	return d.Compare(other) == 0
}

// Float64 returns the nearest float64. Magnitudes beyond float64 range
// become infinities.
func (d Decimal) Float64() float64 {
	f, _ := d.rat().Float64()
	return f
}

func (d Decimal) int64() (int64, bool) {
	r := d.rat()
	if !r.IsInt() || !r.Num().IsInt64() {
		return 0, false
	}
	return r.Num().Int64(), true
}

// BitLen returns the bit length of the larger of numerator and denominator
func (d Decimal) BitLen() int {
	r := d.rat()
	n, m := r.Num().BitLen(), r.Denom().BitLen()
	if m > n {
		return m
	}
	return n
}

// String renders integers plainly, finite decimal expansions exactly and
// everything else rounded half-even to MaxDisplayPlaces fractional digits
// with trailing zeros removed.
func (d Decimal) String() string {
	r := d.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	if places, ok := terminatingPlaces(r.Denom()); ok {
		return r.FloatString(places)
	}
	s := d.Round(MaxDisplayPlaces, RoundHalfEven).rat().FloatString(MaxDisplayPlaces)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		s = "0"
	}
	return s
}

// terminatingPlaces returns the number of fractional digits of 1/den when
// den has no prime factors other than 2 and 5.
func terminatingPlaces(den *big.Int) (int, bool) {
	n := new(big.Int).Set(den)
	twos := int(n.TrailingZeroBits())
	n.Rsh(n, uint(twos))

	five := big.NewInt(5)
	fives := 0
	q, m := new(big.Int), new(big.Int)
	for {
		q.QuoRem(n, five, m)
		if m.Sign() != 0 {
			break
		}
		n.Set(q)
		fives++
	}
	if n.Cmp(bigOne) != 0 {
		return 0, false
	}
	if twos > fives {
		return twos, true
	}
	return fives, true
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(n), nil)
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
