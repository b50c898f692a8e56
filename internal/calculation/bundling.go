package calculation

import (
	"github.com/shopspring/decimal"

	agencydec "github.com/agencysim/growth-simulator/pkg/decimal"
)

// anchor is one documented (policies-per-customer, value) benchmark point.
type anchor struct {
	ppc   decimal.Decimal
	value decimal.Decimal
}

func newAnchor(ppc, value float64) anchor {
	return anchor{ppc: decimal.NewFromFloat(ppc), value: decimal.NewFromFloat(value)}
}

// Documented bundling anchor points. Retention is flat at the lowest anchor
// for ppc <= 1.0 (no extrapolation below it) and hard-capped at the highest
// anchor for ppc > 1.8. The LTV multiplier follows the same shape.
var (
	retentionAnchors = []anchor{
		newAnchor(1.0, 0.67),
		newAnchor(1.5, 0.91),
		newAnchor(1.8, 0.95),
	}
	ltvMultiplierAnchors = []anchor{
		newAnchor(1.0, 1.0),
		newAnchor(1.5, 2.5),
		newAnchor(1.8, 3.5),
	}
)

// interpolateAnchors evaluates a piecewise-linear curve through anchors
// (ascending by ppc), flat beyond both ends.
func interpolateAnchors(anchors []anchor, ppc decimal.Decimal) decimal.Decimal {
	first := anchors[0]
	if ppc.LessThanOrEqual(first.ppc) {
		return first.value
	}
	last := anchors[len(anchors)-1]
	if ppc.GreaterThanOrEqual(last.ppc) {
		return last.value
	}
	for i := 1; i < len(anchors); i++ {
		if ppc.LessThanOrEqual(anchors[i].ppc) {
			lo, hi := anchors[i-1], anchors[i]
			return agencydec.Lerp(lo.ppc, lo.value, hi.ppc, hi.value, ppc)
		}
	}
	return last.value
}

// RetentionForPPC is the modeled annual retention rate for a given
// policies-per-customer.
func RetentionForPPC(ppc decimal.Decimal) decimal.Decimal {
	return interpolateAnchors(retentionAnchors, ppc)
}

// LTVMultiplier is the lifetime-value multiplier for a given
// policies-per-customer, relative to a monoline customer.
func LTVMultiplier(ppc decimal.Decimal) decimal.Decimal {
	return interpolateAnchors(ltvMultiplierAnchors, ppc)
}

// MaxRetention is the bundling model's retention ceiling. Improvements from
// programs are capped here as well.
func MaxRetention() decimal.Decimal {
	return retentionAnchors[len(retentionAnchors)-1].value
}

// MonthlyChurnRate spreads annual attrition evenly across twelve months.
func MonthlyChurnRate(annualRetention decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(annualRetention).Div(monthsPerYear)
}

// RetentionProfitMultiplier models the compounding value of improving
// retention by delta over horizonYears: relative to the baseline-retention
// counterfactual the surviving customer base grows by (1+delta) each year,
// so year y contributes (1+delta)^y profit units against the baseline's 1.
// The result is cumulative improved profit over cumulative baseline profit;
// it is 1 when delta is zero or the horizon is empty.
func RetentionProfitMultiplier(delta decimal.Decimal, horizonYears int) decimal.Decimal {
	if horizonYears <= 0 {
		return decimal.NewFromInt(1)
	}
	growth := decimal.NewFromInt(1).Add(delta)
	factor := decimal.NewFromInt(1)
	improved := decimal.Zero
	for y := 1; y <= horizonYears; y++ {
		factor = factor.Mul(growth)
		improved = improved.Add(factor)
	}
	baseline := decimal.NewFromInt(int64(horizonYears))
	return improved.Div(baseline)
}
