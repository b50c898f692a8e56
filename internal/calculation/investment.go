package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/agencysim/growth-simulator/internal/domain"
	agencydec "github.com/agencysim/growth-simulator/pkg/decimal"
)

// Program names used in evaluations and reports.
const (
	ProgramClaimsPrevention = "claims_prevention"
	ProgramRenewalReview    = "renewal_review"
	ProgramCrossSell        = "cross_sell"
)

// EvaluateROI computes ROI percent and payback months for an annual
// cost/benefit pair. paybackValid is false when the benefit is non-positive:
// the program never breaks even, and the payback figure is meaningless
// rather than infinite.
func EvaluateROI(annualCost, annualBenefit decimal.Decimal) (roiPercent, paybackMonths decimal.Decimal, paybackValid bool) {
	if annualCost.GreaterThan(decimal.Zero) {
		roiPercent = agencydec.Percent(annualBenefit.Sub(annualCost).Div(annualCost))
	}
	if annualBenefit.LessThanOrEqual(decimal.Zero) {
		return roiPercent, decimal.Zero, false
	}
	paybackMonths = annualCost.Div(annualBenefit.Div(monthsPerYear))
	return roiPercent, paybackMonths, true
}

func newEvaluation(name string, annualCost, annualBenefit decimal.Decimal) domain.ProgramEvaluation {
	roi, payback, ok := EvaluateROI(annualCost, annualBenefit)
	return domain.ProgramEvaluation{
		Name:          name,
		AnnualCost:    annualCost,
		AnnualBenefit: annualBenefit,
		ROIPercent:    roi,
		PaybackMonths: payback,
		PaybackValid:  ok,
	}
}

// ClaimsPreventionBenefit is the annual claim cost avoided:
// prevention rate x average claim cost x expected claims per year.
func ClaimsPreventionBenefit(p domain.ClaimsPreventionProgram) decimal.Decimal {
	return p.PreventionRate.Mul(p.AvgClaimCost).Mul(p.ExpectedClaimsPerYear)
}

// EvaluateClaimsPrevention rates the claims-prevention automation program.
func EvaluateClaimsPrevention(p domain.ClaimsPreventionProgram) domain.ProgramEvaluation {
	return newEvaluation(ProgramClaimsPrevention, p.AnnualCost, ClaimsPreventionBenefit(p))
}

// EvaluateRenewalReview rates the proactive renewal review program. Its
// benefit is derived, not a direct dollar figure: the retention delta is fed
// through the bundling model's compounding profit multiplier and applied to
// the agency's baseline annual profit, giving the annualized gain over the
// program horizon.
func EvaluateRenewalReview(p domain.RenewalReviewProgram, baselineAnnualProfit decimal.Decimal) domain.ProgramEvaluation {
	multiplier := RetentionProfitMultiplier(p.RetentionDelta, p.HorizonYears)
	benefit := baselineAnnualProfit.Mul(multiplier.Sub(decimal.NewFromInt(1)))
	return newEvaluation(ProgramRenewalReview, p.AnnualCost, benefit)
}

// CrossSellBenefit is the annual commission from incremental attachment:
// attach rate x eligible customers x average commission per attached policy.
func CrossSellBenefit(p domain.CrossSellProgram, customers decimal.Decimal) decimal.Decimal {
	eligible := customers.Mul(p.EligibleFraction)
	return p.IncrementalAttachRate.Mul(eligible).Mul(p.AvgCommissionPerPolicy)
}

// EvaluateCrossSell rates the cross-sell program against a customer base.
func EvaluateCrossSell(p domain.CrossSellProgram, customers decimal.Decimal) domain.ProgramEvaluation {
	return newEvaluation(ProgramCrossSell, p.AnnualCost, CrossSellBenefit(p, customers))
}

// CrossSellMonthlyAttach is the policies attached to existing customers in
// one month by an active cross-sell program.
func CrossSellMonthlyAttach(p domain.CrossSellProgram, customers decimal.Decimal) decimal.Decimal {
	eligible := customers.Mul(p.EligibleFraction)
	return p.IncrementalAttachRate.Mul(eligible).Div(monthsPerYear)
}
