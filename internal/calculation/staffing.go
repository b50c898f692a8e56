package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/agencysim/growth-simulator/internal/domain"
	agencydec "github.com/agencysim/growth-simulator/pkg/decimal"
)

// Staffing model constants. Productivity bottoms out at 0.25 with no service
// support and caps at 1.0 at or above the 2.8:1 service-to-producer ratio.
var (
	optimalServiceRatio  = decimal.NewFromFloat(2.8)
	productivityFloor    = decimal.NewFromFloat(0.25)
	productivityCap      = decimal.NewFromInt(1)
	maxProducerCompRatio = decimal.NewFromFloat(0.35)
	maxTotalPayrollRatio = decimal.NewFromFloat(0.65)
	monthsPerYear        = decimal.NewFromInt(12)
)

// ProductivityMultiplier converts the service-to-producer ratio into the
// scaling factor applied to producer capacity: clamp(ratio/2.8, 0.25, 1.0).
// Producers must be positive; validation rejects zero-producer plans before
// the engine runs.
func ProductivityMultiplier(service, producers int) decimal.Decimal {
	ratio := decimal.NewFromInt(int64(service)).Div(decimal.NewFromInt(int64(producers)))
	return agencydec.Clamp(ratio.Div(optimalServiceRatio), productivityFloor, productivityCap)
}

// ServiceRatio returns service headcount per producer.
func ServiceRatio(plan domain.StaffingPlan) decimal.Decimal {
	return decimal.NewFromInt(int64(plan.Service)).Div(decimal.NewFromInt(int64(plan.Producers)))
}

// LeadCapacity is the monthly lead volume the producer bench can work
// without degradation, scaled by the productivity multiplier.
func LeadCapacity(plan domain.StaffingPlan) decimal.Decimal {
	multiplier := ProductivityMultiplier(plan.Service, plan.Producers)
	return plan.MaxLeadsPerProducer.
		Mul(decimal.NewFromInt(int64(plan.Producers))).
		Mul(multiplier)
}

// MonthlyPayroll is the loaded monthly payroll cost for the plan.
func MonthlyPayroll(plan domain.StaffingPlan) decimal.Decimal {
	annual := plan.ProducerAnnualComp.Mul(decimal.NewFromInt(int64(plan.Producers))).
		Add(plan.ServiceAnnualComp.Mul(decimal.NewFromInt(int64(plan.Service)))).
		Add(plan.AdminAnnualComp.Mul(decimal.NewFromInt(int64(plan.Admin))))
	return annual.Mul(plan.BenefitsMultiplier).Div(monthsPerYear)
}

// ProducerMonthlyComp is the loaded monthly cost of the producer bench alone.
func ProducerMonthlyComp(plan domain.StaffingPlan) decimal.Decimal {
	return plan.ProducerAnnualComp.
		Mul(decimal.NewFromInt(int64(plan.Producers))).
		Mul(plan.BenefitsMultiplier).
		Div(monthsPerYear)
}

// RevenuePerEmployee divides revenue across total headcount. ok is false for
// an empty roster.
func RevenuePerEmployee(totalRevenue decimal.Decimal, headcount int) (decimal.Decimal, bool) {
	if headcount <= 0 {
		return decimal.Zero, false
	}
	return totalRevenue.Div(decimal.NewFromInt(int64(headcount))), true
}

// CompensationCheck is the revenue-relative compensation ratio assessment
// shared by the staffing and commission models. Violations are warnings,
// not hard failures.
type CompensationCheck struct {
	ProducerCompRatio decimal.Decimal
	TotalPayrollRatio decimal.Decimal
	Warnings          []string
}

// CheckCompensation compares producer compensation and total payroll against
// revenue for the same period. With zero revenue the ratios are undefined and
// a single warning is emitted instead.
func CheckCompensation(producerComp, totalPayroll, revenue decimal.Decimal) CompensationCheck {
	if revenue.LessThanOrEqual(decimal.Zero) {
		return CompensationCheck{
			Warnings: []string{"compensation ratios undefined: no revenue"},
		}
	}
	check := CompensationCheck{
		ProducerCompRatio: producerComp.Div(revenue),
		TotalPayrollRatio: totalPayroll.Div(revenue),
	}
	if check.ProducerCompRatio.GreaterThan(maxProducerCompRatio) {
		check.Warnings = append(check.Warnings, fmt.Sprintf(
			"producer compensation is %s%% of revenue (target <= %s%%)",
			agencydec.Percent(check.ProducerCompRatio).StringFixed(1),
			agencydec.Percent(maxProducerCompRatio).StringFixed(0)))
	}
	if check.TotalPayrollRatio.GreaterThan(maxTotalPayrollRatio) {
		check.Warnings = append(check.Warnings, fmt.Sprintf(
			"total payroll is %s%% of revenue (target <= %s%%)",
			agencydec.Percent(check.TotalPayrollRatio).StringFixed(1),
			agencydec.Percent(maxTotalPayrollRatio).StringFixed(0)))
	}
	return check
}
