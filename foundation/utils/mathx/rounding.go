// File: rounding.go
// Title: Decimal Rounding
// Description: Exact rounding of decimals to a number of fractional places
//              under the usual rounding modes.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.2.0: Exact integer based rounding, half-even implemented

package mathx

import "math/big"

// RoundingMode defines how decimal numbers are rounded
type RoundingMode int

const (
	// RoundHalfUp rounds ties away from zero
	RoundHalfUp RoundingMode = iota

	// RoundHalfEven rounds ties to the even neighbour (banker's rounding)
	RoundHalfEven

	// RoundHalfDown rounds ties toward zero
	RoundHalfDown

	// RoundUp rounds away from zero
	RoundUp

	// RoundDown rounds toward zero (truncation)
	RoundDown

	// RoundFloor rounds toward negative infinity
	RoundFloor

	// RoundCeiling rounds toward positive infinity
	RoundCeiling
)

// Round rounds d to places fractional digits. Negative places are treated as 0.
func (d Decimal) Round(places int, mode RoundingMode) Decimal {
	if places < 0 {
		places = 0
	}
	scale := pow10(int64(places))

	r := d.rat()
	num := new(big.Int).Mul(r.Num(), scale)
	den := r.Denom()

	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if rem.Sign() != 0 && roundsAway(q, rem, den, r.Sign(), mode) {
		if r.Sign() < 0 {
			q.Sub(q, bigOne)
		} else {
			q.Add(q, bigOne)
		}
	}
	return Decimal{value: new(big.Rat).SetFrac(q, scale)}
}

// roundsAway decides whether the truncated quotient q moves one step away
// from zero, given a non-zero remainder rem over den.
func roundsAway(q, rem, den *big.Int, sign int, mode RoundingMode) bool {
	switch mode {
	case RoundUp:
		return true
	case RoundDown:
		return false
	case RoundFloor:
		return sign < 0
	case RoundCeiling:
		return sign > 0
	}

	twice := new(big.Int).Abs(rem)
	twice.Lsh(twice, 1)
	switch c := twice.Cmp(den); {
	case c > 0:
		return true
	case c < 0:
		return false
	}

	switch mode {
	case RoundHalfUp:
		return true
	case RoundHalfDown:
		return false
	default:
		return q.Bit(0) == 1
	}
}

// Floor returns the greatest integer not above d
func (d Decimal) Floor() Decimal {
	return d.Round(0, RoundFloor)
}

// Ceil returns the least integer not below d
func (d Decimal) Ceil() Decimal {
	return d.Round(0, RoundCeiling)
}

// Truncate drops the fractional part of d
func (d Decimal) Truncate() Decimal {
	return d.Round(0, RoundDown)
}
