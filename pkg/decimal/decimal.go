package decimal

import (
	"github.com/shopspring/decimal"
)

// Shared decimal arithmetic helpers used across the simulation core.
// Everything here is pure; callers own rounding policy.

// Clamp restricts v to the closed interval [lo, hi].
func Clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

// ClampFloor returns v, or floor when v is below it.
func ClampFloor(v, floor decimal.Decimal) decimal.Decimal {
	if v.LessThan(floor) {
		return floor
	}
	return v
}

// Lerp linearly interpolates between (x0, y0) and (x1, y1) at x.
// x is assumed to lie within [x0, x1]; x0 must differ from x1.
func Lerp(x0, y0, x1, y1, x decimal.Decimal) decimal.Decimal {
	span := x1.Sub(x0)
	t := x.Sub(x0).Div(span)
	return y0.Add(y1.Sub(y0).Mul(t))
}

// Ratio divides num by den, reporting false when den is zero instead of
// panicking. The zero value is returned alongside false.
func Ratio(num, den decimal.Decimal) (decimal.Decimal, bool) {
	if den.IsZero() {
		return decimal.Zero, false
	}
	return num.Div(den), true
}

// Percent converts a fraction to its percentage representation (0.25 -> 25).
func Percent(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(decimal.NewFromInt(100))
}

// Annualize scales a total observed over months to a 12-month equivalent.
// Returns zero when months is not positive.
func Annualize(total decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 {
		return decimal.Zero
	}
	return total.Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(int64(months)))
}

// InUnitInterval reports whether v lies in [0, 1].
func InUnitInterval(v decimal.Decimal) bool {
	return !v.LessThan(decimal.Zero) && !v.GreaterThan(decimal.NewFromInt(1))
}
